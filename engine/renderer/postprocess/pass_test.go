package postprocess

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/device/devicetest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubSources(name string) (shader.Source, error) {
	return shader.Source{Name: name, Vertex: "v", Fragment: "f"}, nil
}

func uniform(t *testing.T, dev *devicetest.Device, p Pass, name string) any {
	t.Helper()
	v, ok := dev.UniformValue(p.Program().ID(), name)
	require.True(t, ok, "uniform %s not written", name)
	return v
}

func solidInput(t *testing.T, dev device.Device) texture.Texture {
	t.Helper()
	data := make([]float32, 4*4*3)
	for i := range data {
		data[i] = 0.5
	}
	tex, err := texture.NewLookup(dev, texture.LookupDesc{
		Width: 4, Height: 4,
		InternalFormat: device.InternalRGB8,
		Format:         device.PixelRGB,
		Data:           data,
		Wrap:           device.ClampToEdge,
	})
	require.NoError(t, err)
	return tex
}

func TestBayerMatrix(t *testing.T) {
	m := BayerMatrix()
	require.Len(t, m, 48)
	assert.Equal(t, []float32{0, 0, 0}, m[0:3])
	assert.Equal(t, []float32{0.5, 0.5, 0.5}, m[3:6])
	assert.Equal(t, float32(5)/16, m[45])
}

func TestBayerDensity(t *testing.T) {
	dev := devicetest.New()
	p, err := NewBayerDither(dev, shader.Source{Name: "bayer_dither"})
	require.NoError(t, err)
	defer p.Destroy()

	p.SetDensity(512, 256)
	assert.Equal(t, float32(128), uniform(t, dev, p, "matrixHorizontalScale"))
	assert.Equal(t, float32(64), uniform(t, dev, p, "matrixVerticalScale"))

	w, h := p.Size()
	assert.Equal(t, 512, w)
	assert.Equal(t, 256, h)
}

func TestBayerDrawBindsUnits(t *testing.T) {
	dev := devicetest.New()
	input := solidInput(t, dev)
	defer input.Destroy()

	p, err := NewBayerDither(dev, shader.Source{Name: "bayer_dither"})
	require.NoError(t, err)
	defer p.Destroy()
	p.SetDensity(800, 600)

	dev.ResetRecords()
	p.Draw(input.ID())

	assert.Equal(t, int32(0), uniform(t, dev, p, "imageTexture"))
	assert.Equal(t, int32(1), uniform(t, dev, p, "bayerMatrixTexture"))

	require.Len(t, dev.Draws, 1)
	d := dev.Draws[0]
	assert.True(t, d.Indexed)
	assert.Equal(t, device.PrimitiveTriangles, d.Mode)
	assert.Equal(t, 6, d.Count)
	assert.Equal(t, device.IndexUint32, d.IndexType)
	assert.Equal(t, p.Program().ID(), d.Program)
	assert.Equal(t, input.ID(), d.Textures[0])

	matrix := dev.Textures[d.Textures[1]]
	require.NotNil(t, matrix)
	img := matrix.Images[device.Texture2D]
	assert.Equal(t, 4, img.Width)
	assert.Equal(t, device.PixelRGB, img.Format)
	assert.Equal(t, device.ScalarFloat, img.Type)
	assert.Equal(t, device.Repeat, matrix.Params[device.ParamWrapS])
	assert.Equal(t, device.Nearest, matrix.Params[device.ParamMinFilter])

	assert.Equal(t, uint32(0), dev.ActiveUnit)
	assert.Equal(t, uint32(0), dev.BoundVertexArray)
}

func TestPrewitt(t *testing.T) {
	dev := devicetest.New()
	p, err := NewPrewitt(dev, shader.Source{Name: "prewitt"})
	require.NoError(t, err)
	defer p.Destroy()

	assert.Equal(t, uint32(3), uniform(t, dev, p, "kernelSize"), "kernel size is written at construction")

	p.SetDensity(640, 480)
	assert.Equal(t, float32(640), uniform(t, dev, p, "imageHorizontalScale"))
	assert.Equal(t, float32(480), uniform(t, dev, p, "imageVerticalScale"))

	p.Draw(42)
	assert.Equal(t, int32(1), uniform(t, dev, p, "prewittVerticalTexture"))
	assert.Equal(t, int32(2), uniform(t, dev, p, "prewittHorizontalTexture"))

	d := dev.Draws[len(dev.Draws)-1]
	vertical := dev.Textures[d.Textures[1]].Images[device.Texture2D]
	horizontal := dev.Textures[d.Textures[2]].Images[device.Texture2D]
	assert.Equal(t, device.InternalRGBA8SNorm, vertical.InternalFormat)
	assert.Equal(t, device.PixelRed, vertical.Format)
	assert.Equal(t, []float32{1, 0, -1, 1, 0, -1, 1, 0, -1}, vertical.Pixels)
	assert.Equal(t, []float32{1, 1, 1, 0, 0, 0, -1, -1, -1}, horizontal.Pixels)
}

func TestPrewittNormalsHasNoLookups(t *testing.T) {
	dev := devicetest.New()
	p, err := NewPrewittNormals(dev, shader.Source{Name: "prewitt_normals"})
	require.NoError(t, err)
	defer p.Destroy()

	p.SetDensity(100, 50)
	p.Draw(7)
	d := dev.Draws[0]
	assert.Equal(t, map[uint32]uint32{0: 7}, d.Textures)
	assert.Equal(t, float32(100), uniform(t, dev, p, "imageHorizontalScale"))
}

func TestFilter(t *testing.T) {
	dev := devicetest.New()
	blur := UniformKernel([]float32{1, 2, 1, 2, 4, 2, 1, 2, 1})
	p, err := NewFilter(dev, shader.Source{Name: "filter"}, 3, blur)
	require.NoError(t, err)
	defer p.Destroy()

	assert.Equal(t, uint32(3), uniform(t, dev, p, "kernelSize"))
	p.Draw(9)
	assert.Equal(t, int32(1), uniform(t, dev, p, "kernelTexture"))

	kernel := dev.Textures[dev.Draws[0].Textures[1]].Images[device.Texture2D]
	assert.Equal(t, device.InternalRGBA8SNorm, kernel.InternalFormat)
	assert.Equal(t, device.PixelRGB, kernel.Format)
	assert.Len(t, kernel.Pixels, 27)

	_, err = NewFilter(dev, shader.Source{Name: "filter"}, 3, blur[:4])
	assert.Error(t, err)
}

func TestFailedProgramReleasesQuad(t *testing.T) {
	dev := devicetest.New()
	dev.FailLink = "boom"

	_, err := NewBayerDither(dev, shader.Source{Name: "bayer_dither"})
	var le *shader.LinkError
	assert.True(t, errors.As(err, &le))
	assert.True(t, dev.Balanced())
}

func TestNewFactory(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			dev := devicetest.New()
			var requested string
			sources := func(name string) (shader.Source, error) {
				requested = name
				return stubSources(name)
			}

			p, err := New(dev, kind, sources, WithKernel(1, []mgl32.Vec3{{1, 1, 1}}))
			require.NoError(t, err)
			assert.Equal(t, kind, p.Kind())
			assert.Equal(t, kind.ProgramName(), requested)

			p.Destroy()
			assert.True(t, dev.Balanced())
		})
	}
}

func TestNewFactoryErrors(t *testing.T) {
	dev := devicetest.New()
	_, err := New(dev, KindFilter, stubSources)
	assert.Error(t, err, "filter without a kernel")

	_, err = New(dev, KindBayerDither, func(string) (shader.Source, error) {
		return shader.Source{}, errors.New("no such file")
	})
	assert.ErrorContains(t, err, "no such file")

	_, err = New(dev, Kind(99), stubSources)
	assert.Error(t, err)
	assert.True(t, dev.Balanced())
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds() {
		got, err := ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}
	got, err := ParseKind("BAYER")
	require.NoError(t, err)
	assert.Equal(t, KindBayerDither, got)

	_, err = ParseKind("sobel")
	assert.ErrorContains(t, err, "sobel")
}
