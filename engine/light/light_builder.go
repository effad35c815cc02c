package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - position: world-space position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(position mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = position
	}
}

// WithDirection is an option builder that sets the direction of the light.
// The direction is normalized before storing.
//
// Parameters:
//   - direction: cone axis
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithDirection(direction mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetDirection(direction)
	}
}

// WithColor is an option builder that derives the colour terms from one colour.
//
// Parameters:
//   - color: base colour
//
// Returns:
//   - LightBuilderOption: a function that applies the colour option to a lightImpl
func WithColor(color mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetColor(color)
	}
}

// WithComponents sets the ambient, diffuse and specular terms directly.
//
// Parameters:
//   - ambient: ambient colour
//   - diffuse: diffuse colour
//   - specular: specular colour
//
// Returns:
//   - LightBuilderOption: a function that applies the colour terms to a lightImpl
func WithComponents(ambient, diffuse, specular mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.ambient = ambient
		l.diffuse = diffuse
		l.specular = specular
	}
}

// WithAttenuation sets the distance falloff coefficients.
//
// Parameters:
//   - constant: constant term
//   - linear: linear term
//   - quadratic: quadratic term
//
// Returns:
//   - LightBuilderOption: a function that applies the attenuation to a lightImpl
func WithAttenuation(constant, linear, quadratic float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.constant = constant
		l.linear = linear
		l.quadratic = quadratic
	}
}

// WithCutoff sets the spot cone from angles in degrees.
//
// Parameters:
//   - innerDeg: full-intensity half angle
//   - outerDeg: zero-intensity half angle
//
// Returns:
//   - LightBuilderOption: a function that applies the cone to a lightImpl
func WithCutoff(innerDeg, outerDeg float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.cutoffStart = cosDeg(innerDeg)
		l.cutoffEnd = cosDeg(outerDeg)
	}
}
