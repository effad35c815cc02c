package light

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"

	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypePoint emits in all directions from a position and attenuates
	// with distance.
	LightTypePoint LightType = iota

	// LightTypeSpot emits in a cone from a position along a direction. It
	// attenuates with distance and fades between the inner and outer cutoff.
	LightTypeSpot
)

func (t LightType) String() string {
	switch t {
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	default:
		return fmt.Sprintf("LightType(%d)", int(t))
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	position  mgl32.Vec3
	direction mgl32.Vec3

	ambient  mgl32.Vec3
	diffuse  mgl32.Vec3
	specular mgl32.Vec3

	constant  float32
	linear    float32
	quadratic float32

	cutoffStart float32 // stored as cos(angle)
	cutoffEnd   float32 // stored as cos(angle)
}

// Light defines the interface for a Phong light source.
//
// A light writes itself into a GLSL struct uniform through Apply. Point
// lights write position, the three colour terms and the attenuation
// coefficients; spot lights also write direction and both cutoffs.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: point or spot
	Type() LightType

	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Direction returns the cone axis of a spot light.
	//
	// Returns:
	//   - mgl32.Vec3: the direction
	Direction() mgl32.Vec3

	// Ambient returns the ambient colour term.
	//
	// Returns:
	//   - mgl32.Vec3: the ambient colour
	Ambient() mgl32.Vec3

	// Diffuse returns the diffuse colour term.
	//
	// Returns:
	//   - mgl32.Vec3: the diffuse colour
	Diffuse() mgl32.Vec3

	// Specular returns the specular colour term.
	//
	// Returns:
	//   - mgl32.Vec3: the specular colour
	Specular() mgl32.Vec3

	// Attenuation returns the constant, linear and quadratic falloff terms.
	//
	// Returns:
	//   - constant, linear, quadratic: the falloff coefficients
	Attenuation() (constant, linear, quadratic float32)

	// Cutoff returns the cosines of the inner and outer cone angles of a
	// spot light.
	//
	// Returns:
	//   - start, end: cos(inner), cos(outer)
	Cutoff() (start, end float32)

	// SetPosition moves the light.
	//
	// Parameters:
	//   - position: world-space position
	SetPosition(position mgl32.Vec3)

	// SetDirection points a spot light.
	//
	// Parameters:
	//   - direction: cone axis, normalized on store
	SetDirection(direction mgl32.Vec3)

	// SetColor derives the three colour terms from one colour using the
	// light's ambient, diffuse and specular weights.
	//
	// Parameters:
	//   - color: base colour
	SetColor(color mgl32.Vec3)

	// Apply writes the light into the struct uniform called name on program.
	// The program must be in use.
	//
	// Parameters:
	//   - program: target program
	//   - name: GLSL struct uniform name, e.g. "pointLight"
	Apply(program shader.Program, name string)
}

var _ Light = &lightImpl{}

// Point light colour weights: ambient, diffuse and specular are these
// fractions of the light colour.
const (
	pointAmbient  = 0.1
	pointDiffuse  = 0.5
	pointSpecular = 1.0

	spotAmbient  = 0.2
	spotDiffuse  = 0.5
	spotSpecular = 1.0
)

// NewPointLight creates a white point light at the origin with attenuation
// (1, 0.09, 0.032).
//
// Parameters:
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the point light
func NewPointLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: LightTypePoint,
		constant:  1,
		linear:    0.09,
		quadratic: 0.032,
	}
	l.SetColor(mgl32.Vec3{1, 1, 1})
	for _, option := range options {
		option(l)
	}
	return l
}

// NewSpotLight creates a white spot light looking down +X with a 10 degree
// inner and 11 degree outer cone and attenuation (1, 0.09, 0.032).
//
// Parameters:
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the spot light
func NewSpotLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:   LightTypeSpot,
		direction:   mgl32.Vec3{1, 0, 0},
		constant:    1,
		linear:      0.09,
		quadratic:   0.032,
		cutoffStart: cosDeg(10),
		cutoffEnd:   cosDeg(11),
	}
	l.SetColor(mgl32.Vec3{1, 1, 1})
	for _, option := range options {
		option(l)
	}
	return l
}

func cosDeg(deg float32) float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(deg))))
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *lightImpl) Ambient() mgl32.Vec3 {
	return l.ambient
}

func (l *lightImpl) Diffuse() mgl32.Vec3 {
	return l.diffuse
}

func (l *lightImpl) Specular() mgl32.Vec3 {
	return l.specular
}

func (l *lightImpl) Attenuation() (constant, linear, quadratic float32) {
	return l.constant, l.linear, l.quadratic
}

func (l *lightImpl) Cutoff() (start, end float32) {
	return l.cutoffStart, l.cutoffEnd
}

func (l *lightImpl) SetPosition(position mgl32.Vec3) {
	l.position = position
}

func (l *lightImpl) SetDirection(direction mgl32.Vec3) {
	if direction.Len() == 0 {
		return
	}
	l.direction = direction.Normalize()
}

func (l *lightImpl) SetColor(color mgl32.Vec3) {
	switch l.lightType {
	case LightTypeSpot:
		l.ambient = color.Mul(spotAmbient)
		l.diffuse = color.Mul(spotDiffuse)
		l.specular = color.Mul(spotSpecular)
	default:
		l.ambient = color.Mul(pointAmbient)
		l.diffuse = color.Mul(pointDiffuse)
		l.specular = color.Mul(pointSpecular)
	}
}

func (l *lightImpl) Apply(program shader.Program, name string) {
	set := func(field string, u shader.Uniform) {
		program.Set(name+"."+field, u)
	}
	set("position", shader.Vec3(l.position))
	set("ambient", shader.Vec3(l.ambient))
	set("diffuse", shader.Vec3(l.diffuse))
	set("specular", shader.Vec3(l.specular))
	set("constant", shader.Float(l.constant))
	set("linear", shader.Float(l.linear))
	set("quadratic", shader.Float(l.quadratic))

	if l.lightType == LightTypeSpot {
		set("direction", shader.Vec3(l.direction))
		set("cutoffStart", shader.Float(l.cutoffStart))
		set("cutoffEnd", shader.Float(l.cutoffEnd))
	}
}
