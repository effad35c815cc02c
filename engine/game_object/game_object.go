package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"

	"github.com/go-gl/mathgl/mgl32"
)

// Drawable is anything that draws itself with an active program. Both
// mesh.Mesh and model.Model satisfy it.
type Drawable interface {
	Draw(program shader.Program)
}

// Bounded is implemented by drawables that can report a model-space bounding
// sphere, which lets the scene skip them when they are off screen.
type Bounded interface {
	BoundingSphere() (center mgl32.Vec3, radius float32)
}

type gameObject struct {
	id       uint64
	enabled  atomic.Bool
	drawable Drawable
	light    light.Light
	color    mgl32.Vec3

	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3

	// pinned holds an explicit transform set with SetTransform. It wins over
	// position, rotation and scale until one of those is set again.
	pinned    bool
	transform mgl32.Mat4
}

// GameObject is a placed scene entity: a drawable with a transform. Objects
// drawn as light markers carry a flat colour and may own the light they mark,
// in which case the light follows the object.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Drawable returns what the object draws, or nil.
	//
	// Returns:
	//   - Drawable: the mesh or model
	Drawable() Drawable

	// Position returns the world-space translation of the object.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Rotation returns the Euler angles in radians, applied X then Y then Z.
	//
	// Returns:
	//   - mgl32.Vec3: the rotation
	Rotation() mgl32.Vec3

	// Scale returns the per-axis scale.
	//
	// Returns:
	//   - mgl32.Vec3: the scale
	Scale() mgl32.Vec3

	// Transform returns the model matrix, translate * rotate * scale unless a
	// transform was pinned with SetTransform.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	Transform() mgl32.Mat4

	// Color returns the flat colour used when the object is drawn as a marker.
	//
	// Returns:
	//   - mgl32.Vec3: the marker colour
	Color() mgl32.Vec3

	// Light returns the attached light, or nil.
	//
	// Returns:
	//   - light.Light: the light this object marks
	Light() light.Light

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetDrawable assigns what the object draws.
	//
	// Parameters:
	//   - d: the mesh or model
	SetDrawable(d Drawable)

	// SetPosition moves the object and clears any pinned transform.
	//
	// Parameters:
	//   - position: world-space translation
	SetPosition(position mgl32.Vec3)

	// SetRotation sets the Euler angles in radians and clears any pinned transform.
	//
	// Parameters:
	//   - rotation: angles around X, Y and Z
	SetRotation(rotation mgl32.Vec3)

	// SetScale sets the per-axis scale and clears any pinned transform.
	//
	// Parameters:
	//   - scale: the scale
	SetScale(scale mgl32.Vec3)

	// SetTransform pins an explicit model matrix. Position reports its
	// translation.
	//
	// Parameters:
	//   - m: the model matrix
	SetTransform(m mgl32.Mat4)

	// SetColor sets the marker colour. An attached light takes the same colour.
	//
	// Parameters:
	//   - color: the colour
	SetColor(color mgl32.Vec3)

	// SetLight attaches a light that follows the object's position and colour.
	//
	// Parameters:
	//   - l: the light, or nil to detach
	SetLight(l light.Light)
}

var _ GameObject = &gameObject{}

// NewGameObject creates an enabled GameObject at the origin with unit scale
// and a white marker colour.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	g := &gameObject{
		scale: mgl32.Vec3{1, 1, 1},
		color: mgl32.Vec3{1, 1, 1},
	}
	g.enabled.Store(true)
	for _, option := range options {
		option(g)
	}
	g.syncLight()
	return g
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Drawable() Drawable {
	return g.drawable
}

func (g *gameObject) Position() mgl32.Vec3 {
	if g.pinned {
		return light.WorldPosition(g.transform)
	}
	return g.position
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	return g.rotation
}

func (g *gameObject) Scale() mgl32.Vec3 {
	return g.scale
}

func (g *gameObject) Transform() mgl32.Mat4 {
	if g.pinned {
		return g.transform
	}
	rot := mgl32.HomogRotate3DZ(g.rotation.Z()).
		Mul4(mgl32.HomogRotate3DY(g.rotation.Y())).
		Mul4(mgl32.HomogRotate3DX(g.rotation.X()))
	return mgl32.Translate3D(g.position.Elem()).
		Mul4(rot).
		Mul4(mgl32.Scale3D(g.scale.Elem()))
}

func (g *gameObject) Color() mgl32.Vec3 {
	return g.color
}

func (g *gameObject) Light() light.Light {
	return g.light
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetDrawable(d Drawable) {
	g.drawable = d
}

func (g *gameObject) SetPosition(position mgl32.Vec3) {
	g.unpin()
	g.position = position
	g.syncLight()
}

func (g *gameObject) SetRotation(rotation mgl32.Vec3) {
	g.unpin()
	g.rotation = rotation
}

func (g *gameObject) SetScale(scale mgl32.Vec3) {
	g.unpin()
	g.scale = scale
}

func (g *gameObject) SetTransform(m mgl32.Mat4) {
	g.pinned = true
	g.transform = m
	g.syncLight()
}

func (g *gameObject) SetColor(color mgl32.Vec3) {
	g.color = color
	if g.light != nil {
		g.light.SetColor(color)
	}
}

func (g *gameObject) SetLight(l light.Light) {
	g.light = l
	g.syncLight()
}

// unpin folds a pinned transform back into position so later component edits
// start from where the object was last drawn.
func (g *gameObject) unpin() {
	if !g.pinned {
		return
	}
	g.position = light.WorldPosition(g.transform)
	g.pinned = false
}

func (g *gameObject) syncLight() {
	if g.light == nil {
		return
	}
	g.light.SetPosition(g.Position())
}
