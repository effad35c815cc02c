package light

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/device/devicetest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func program(t *testing.T) (*devicetest.Device, shader.Program) {
	t.Helper()
	dev := devicetest.New()
	p, err := shader.NewProgram(dev, shader.Source{Name: "phong", Vertex: "v", Fragment: "f"})
	require.NoError(t, err)
	p.Use()
	return dev, p
}

func TestPointLightApply(t *testing.T) {
	dev, p := program(t)
	l := NewPointLight(WithPosition(mgl32.Vec3{5, 0, 0}), WithColor(mgl32.Vec3{1, 0, 0}))
	l.Apply(p, "pointLight")

	get := func(name string) any {
		v, ok := dev.UniformValue(p.ID(), name)
		require.True(t, ok, name)
		return v
	}
	assert.Equal(t, [3]float32{5, 0, 0}, get("pointLight.position"))
	assert.Equal(t, [3]float32{0.1, 0, 0}, get("pointLight.ambient"))
	assert.Equal(t, [3]float32{0.5, 0, 0}, get("pointLight.diffuse"))
	assert.Equal(t, [3]float32{1, 0, 0}, get("pointLight.specular"))
	assert.Equal(t, float32(1), get("pointLight.constant"))
	assert.Equal(t, float32(0.09), get("pointLight.linear"))
	assert.Equal(t, float32(0.032), get("pointLight.quadratic"))

	_, ok := dev.UniformValue(p.ID(), "pointLight.direction")
	assert.False(t, ok, "point lights have no direction")
}

func TestSpotLightApply(t *testing.T) {
	dev, p := program(t)
	l := NewSpotLight()
	l.SetPosition(mgl32.Vec3{-5, 0, -1})
	l.SetDirection(mgl32.Vec3{2, 0, 0})
	l.Apply(p, "spotLight")

	start, end := l.Cutoff()
	assert.InDelta(t, 0.98481, start, 1e-4)
	assert.InDelta(t, 0.98163, end, 1e-4)

	v, _ := dev.UniformValue(p.ID(), "spotLight.direction")
	assert.Equal(t, [3]float32{1, 0, 0}, v)
	v, _ = dev.UniformValue(p.ID(), "spotLight.ambient")
	assert.Equal(t, [3]float32{0.2, 0.2, 0.2}, v)
	v, _ = dev.UniformValue(p.ID(), "spotLight.cutoffEnd")
	assert.Equal(t, end, v)
}

func TestSetDirectionIgnoresZero(t *testing.T) {
	l := NewSpotLight()
	l.SetDirection(mgl32.Vec3{})
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, l.Direction())
}

func TestOptions(t *testing.T) {
	l := NewPointLight(
		WithComponents(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{2, 2, 2}, mgl32.Vec3{3, 3, 3}),
		WithAttenuation(1, 0.7, 1.8),
	)
	assert.Equal(t, LightTypePoint, l.Type())
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, l.Diffuse())
	c, lin, q := l.Attenuation()
	assert.Equal(t, []float32{1, 0.7, 1.8}, []float32{c, lin, q})

	s := NewSpotLight(WithCutoff(0, 90), WithDirection(mgl32.Vec3{0, 0, -3}))
	start, end := s.Cutoff()
	assert.InDelta(t, 1, start, 1e-6)
	assert.InDelta(t, 0, end, 1e-6)
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, s.Direction())
	assert.Equal(t, "spot", s.Type().String())
}

func TestPoliceColor(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, PoliceColor(0))
	c := PoliceColor(0.1)
	assert.InDelta(t, 0.4794, c.X(), 1e-4)
	assert.InDelta(t, 1-0.4794, c.Z(), 1e-4)
}

func TestOrbitTransform(t *testing.T) {
	m := OrbitTransform(0, 5, 0.05)
	assertVec3(t, mgl32.Vec3{5, 0, 0}, WorldPosition(m), 1e-5)
	assert.InDelta(t, 0.05, m.At(0, 0), 1e-6)

	quarter := OrbitTransform(math.Pi/2, 5, 1)
	assertVec3(t, mgl32.Vec3{0, 0, -5}, WorldPosition(quarter), 1e-5)
}

// assertVec3 compares component-wise with an absolute tolerance. mgl32's
// ApproxEqual is relative and never accepts a tiny value against zero.
func assertVec3(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "want %v got %v", want, got)
	}
}
