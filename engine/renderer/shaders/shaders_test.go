package shaders

import (
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryProgramLoads(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			src, err := Load(name)
			require.NoError(t, err)
			assert.Equal(t, name, src.Name)
			assert.True(t, strings.HasPrefix(src.Vertex, "#version 410 core"))
			assert.True(t, strings.HasPrefix(src.Fragment, "#version 410 core"))
			assert.NotContains(t, src.Vertex, "#include")
			assert.NotContains(t, src.Fragment, "#include")
		})
	}
}

func TestFullscreenProgramsShareVertexStage(t *testing.T) {
	bayer, err := Load(BayerDither)
	require.NoError(t, err)
	filter, err := Load(Filter)
	require.NoError(t, err)
	assert.Equal(t, bayer.Vertex, filter.Vertex)
	assert.Contains(t, bayer.Vertex, "TexCoords")
}

func TestPhongDeclaresDeferredOutputs(t *testing.T) {
	src, err := Load(Phong)
	require.NoError(t, err)
	for _, out := range []string{"gPosition", "gAlbedo", "gNormal", "struct PointLight", "struct SpotLight"} {
		assert.Contains(t, src.Fragment, out)
	}
}

func TestKernelSizeIsUnsigned(t *testing.T) {
	for _, name := range []string{Prewitt, Filter} {
		src, err := Load(name)
		require.NoError(t, err)
		assert.Contains(t, src.Fragment, "uniform uint kernelSize;")
	}
}

// glslReserved holds the words GLSL 4.10 core reserves for future use. Any
// use of one is a compile error.
var glslReserved = strings.Fields(`
	common partition active asm class union enum typedef template this packed
	resource goto inline noinline volatile public static extern external
	interface long short half fixed unsigned superp input output
	hvec2 hvec3 hvec4 fvec2 fvec3 fvec4 sampler3DRect filter
	image1D image2D image3D imageCube iimage1D iimage2D iimage3D iimageCube
	uimage1D uimage2D uimage3D uimageCube image1DArray image2DArray
	iimage1DArray iimage2DArray uimage1DArray uimage2DArray
	image1DShadow image2DShadow image1DArrayShadow image2DArrayShadow
	imageBuffer iimageBuffer uimageBuffer sizeof cast namespace using
`)

var (
	glslComment = regexp.MustCompile(`(?s)//[^\n]*|/\*.*?\*/`)
	glslWord    = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
)

func TestProgramsAvoidReservedWords(t *testing.T) {
	reserved := make(map[string]bool, len(glslReserved))
	for _, w := range glslReserved {
		reserved[w] = true
	}
	for _, name := range Names() {
		src, err := Load(name)
		require.NoError(t, err)
		for stage, code := range map[string]string{"vertex": src.Vertex, "fragment": src.Fragment} {
			for _, w := range glslWord.FindAllString(glslComment.ReplaceAllString(code, ""), -1) {
				assert.False(t, reserved[w], "%s %s shader uses reserved word %q", name, stage, w)
			}
		}
	}
}

func TestLoaderOverride(t *testing.T) {
	fsys := fstest.MapFS{
		"custom.vert": {Data: []byte("#version 410 core\nvoid main() {}\n")},
		"custom.frag": {Data: []byte("#version 410 core\nvoid main() {}\n")},
	}
	src, err := Loader(fsys)("custom")
	require.NoError(t, err)
	assert.Equal(t, "custom", src.Name)

	_, err = Loader(fsys)("missing")
	assert.Error(t, err)
}

func TestDir(t *testing.T) {
	assert.Equal(t, FS(), Dir(""))
	_, err := Loader(Dir(t.TempDir()))(Phong)
	assert.Error(t, err)
}
