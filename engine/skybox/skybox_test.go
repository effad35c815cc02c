package skybox

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/device/devicetest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var src = shader.Source{Name: "skybox", Vertex: "v", Fragment: "f"}

func faces() [6]*texture.Image {
	var out [6]*texture.Image
	for i := range out {
		out[i] = &texture.Image{Width: 1, Height: 1, Channels: 3, Pixels: []byte{byte(i), 0, 0}}
	}
	return out
}

func TestDrawDisablesDepthWrites(t *testing.T) {
	dev := devicetest.New()
	sb, err := New(dev, src, faces())
	require.NoError(t, err)
	defer sb.Destroy()

	view := mgl32.Translate3D(4, 5, 6).Mul4(mgl32.HomogRotate3DY(0.5))
	sb.UpdateTransform(view, mgl32.Ident4())
	sb.Draw()

	require.Len(t, dev.Draws, 1)
	d := dev.Draws[0]
	assert.Equal(t, 36, d.Count)
	assert.False(t, d.DepthWrite)
	assert.Equal(t, device.DepthLessEqual, d.DepthFn)
	assert.Equal(t, sb.Cubemap().ID(), d.Textures[0])

	assert.True(t, dev.DepthWrite, "depth writes restored")
	assert.Equal(t, device.DepthLess, dev.DepthFn)

	got, ok := dev.UniformValue(d.Program, "view")
	require.True(t, ok)
	m := mgl32.Mat4(got.([16]float32))
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, m.Col(3), "translation dropped")
	assert.Equal(t, view.Mat3(), m.Mat3())
	assert.Equal(t, m, sb.View())
}

func TestCubemapFaces(t *testing.T) {
	dev := devicetest.New()
	sb, err := New(dev, src, faces())
	require.NoError(t, err)
	defer sb.Destroy()

	state := dev.Textures[sb.Cubemap().ID()]
	require.NotNil(t, state)
	assert.Len(t, state.Images, 6)
	assert.Equal(t, device.ClampToEdge, state.Params[device.ParamWrapR])
	assert.Equal(t, device.Linear, state.Params[device.ParamMagFilter])
}

func TestMissingFaceReleasesNothing(t *testing.T) {
	dev := devicetest.New()
	f := faces()
	f[3] = nil
	_, err := New(dev, src, f)
	assert.Error(t, err)
	assert.True(t, dev.Balanced())
}

func TestProgramFailureReleasesResources(t *testing.T) {
	dev := devicetest.New()
	dev.FailLink = "bad"
	_, err := New(dev, src, faces())
	assert.Error(t, err)
	assert.True(t, dev.Balanced())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 6)
	for i := range paths {
		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		for p := 0; p < 4; p++ {
			img.Set(p%2, p/2, color.RGBA{R: uint8(i * 40), A: 255})
		}
		paths[i] = filepath.Join(dir, string(rune('a'+i))+".png")
		f, err := os.Create(paths[i])
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, img))
		require.NoError(t, f.Close())
	}

	dev := devicetest.New()
	sb, err := Load(dev, src, paths, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, sb.Cubemap().Width())
	sb.Destroy()
	assert.True(t, dev.Balanced())

	_, err = Load(dev, src, paths[:5], 3)
	assert.Error(t, err)
}
