package game_object

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/light"

	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption is a function that configures a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the unique identifier for the GameObject.
//
// Parameters:
//   - id: the unique identifier
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the ID option
func WithID(id uint64) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.id = id
	}
}

// WithEnabled sets whether the GameObject is enabled for rendering.
//
// Parameters:
//   - enabled: true to enable rendering
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the enabled option
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.enabled.Store(enabled)
	}
}

// WithDrawable sets what the GameObject draws.
//
// Parameters:
//   - d: a mesh or model
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the drawable option
func WithDrawable(d Drawable) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.drawable = d
	}
}

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - position: the translation
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the position option
func WithPosition(position mgl32.Vec3) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.position = position
	}
}

// WithScale sets the initial scale.
//
// Parameters:
//   - scale: per-axis scale
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the scale option
func WithScale(scale mgl32.Vec3) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.scale = scale
	}
}

// WithUniformScale sets the same scale on every axis.
func WithUniformScale(s float32) GameObjectBuilderOption {
	return WithScale(mgl32.Vec3{s, s, s})
}

// WithRotation sets the initial Euler rotation in radians.
//
// Parameters:
//   - rotation: angles around X, Y and Z
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the rotation option
func WithRotation(rotation mgl32.Vec3) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.rotation = rotation
	}
}

// WithColor sets the marker colour.
//
// Parameters:
//   - color: the colour
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the colour option
func WithColor(color mgl32.Vec3) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.color = color
	}
}

// WithLight attaches a light that follows the object.
//
// Parameters:
//   - l: the light
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the light option
func WithLight(l light.Light) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.light = l
	}
}
