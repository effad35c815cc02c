// Package scene holds what gets drawn into the deferred framebuffer: shaded
// objects, flat-coloured light markers, the scene lights and an optional
// skybox.
package scene

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/Carmen-Shannon/oxy-gl/engine/logging"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shaders"
	"github.com/Carmen-Shannon/oxy-gl/engine/skybox"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Uniform names shared by the Phong and light programs.
const (
	modelUniform      = "model"
	viewUniform       = "view"
	projectionUniform = "projection"
	viewPosUniform    = "viewPos"
	shininessUniform  = "material.shininess"
	lightColorUniform = "lightColor"
	pointLightUniform = "pointLight"
	spotLightUniform  = "spotLight"
)

// Sources resolves a program name to its shader sources.
type Sources func(name string) (shader.Source, error)

// Scene is the set of things drawn into the geometry buffer each frame.
//
// Objects are drawn with the Phong program and lit by the point light and a
// spot light riding on the camera. Markers are drawn with the light program in
// their flat colour. The skybox, if any, goes last. Ids are unique across
// objects and markers.
// A scene issues GL calls and belongs to the render thread.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Count returns the number of objects and markers in the scene.
	//
	// Returns:
	//   - int: objects plus markers
	Count() int

	// Add registers a shaded object. Objects without an ID are assigned one.
	//
	// Parameters:
	//   - obj: the object
	//
	// Returns:
	//   - uint64: the object ID
	Add(obj game_object.GameObject) uint64

	// AddMarker registers a flat-coloured marker. Markers without an ID are
	// assigned one.
	//
	// Parameters:
	//   - obj: the marker
	//
	// Returns:
	//   - uint64: the marker ID
	AddMarker(obj game_object.GameObject) uint64

	// Get retrieves an object or marker by ID, nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove drops an object or marker. Its drawable is not destroyed.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Objects returns the shaded objects in draw order.
	Objects() []game_object.GameObject

	// Markers returns the markers in draw order.
	Markers() []game_object.GameObject

	// PointLight returns the scene's point light.
	PointLight() light.Light

	// SpotLight returns the flashlight that follows the camera.
	SpotLight() light.Light

	// Orbiter returns the marker animated by Update, or nil.
	Orbiter() game_object.GameObject

	// Skybox returns the skybox, or nil.
	Skybox() skybox.Skybox

	// CullingDisabled returns whether off-screen objects are still drawn.
	CullingDisabled() bool

	// SetCullingDisabled turns frustum culling of bounded objects off or on.
	//
	// Parameters:
	//   - disabled: true to draw every object regardless of visibility
	SetCullingDisabled(disabled bool)

	// Culled returns how many objects the last DrawDeferred skipped.
	Culled() int

	// Update advances the orbiting light: its colour swings between blue and
	// red and it circles the Y axis once every 2π seconds.
	//
	// Parameters:
	//   - t: seconds since start
	Update(t float64)

	// DrawDeferred draws the scene into whatever framebuffer is bound: objects,
	// then markers, then the skybox with depth writes off.
	//
	// Parameters:
	//   - view: camera view matrix
	//   - projection: camera projection matrix
	//   - cameraPos: camera position, also the spot light position
	//   - cameraFront: camera direction, also the spot light direction
	DrawDeferred(view, projection mgl32.Mat4, cameraPos, cameraFront mgl32.Vec3)

	// Destroy frees both programs and every resource the scene owns.
	// Subsequent calls are no-ops.
	Destroy()
}

// destroyer is a resource the scene frees on Destroy.
type destroyer interface {
	Destroy()
}

type scene struct {
	name string
	dev  device.Device

	phong      shader.Program
	lightProg  shader.Program
	shininess  float32
	orbitRange float32

	nextID   uint64
	registry map[uint64]game_object.GameObject
	objects  []game_object.GameObject
	markers  []game_object.GameObject
	orbiter  game_object.GameObject

	pointLight light.Light
	spotLight  light.Light
	sky        skybox.Skybox

	cullingDisabled bool
	culled          int

	owned     []destroyer
	destroyed bool
}

var _ Scene = &scene{}

// NewScene builds the Phong and light programs and returns an empty scene
// with a white point light at the origin and a camera spot light.
//
// Parameters:
//   - name: the scene identifier
//   - dev: the device context
//   - sources: resolves the phong and light programs
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the scene
//   - error: error if a program fails to load, compile or link
func NewScene(name string, dev device.Device, sources Sources, options ...SceneBuilderOption) (Scene, error) {
	phongSrc, err := sources(shaders.Phong)
	if err != nil {
		return nil, errors.Wrap(err, "phong program")
	}
	lightSrc, err := sources(shaders.Light)
	if err != nil {
		return nil, errors.Wrap(err, "light program")
	}

	phong, err := shader.NewProgram(dev, phongSrc)
	if err != nil {
		return nil, err
	}
	lightProg, err := shader.NewProgram(dev, lightSrc)
	if err != nil {
		phong.Destroy()
		return nil, err
	}

	s := &scene{
		name:       name,
		dev:        dev,
		phong:      phong,
		lightProg:  lightProg,
		shininess:  32,
		orbitRange: 5,
		nextID:     1,
		registry:   make(map[uint64]game_object.GameObject),
		pointLight: light.NewPointLight(),
		spotLight:  light.NewSpotLight(),
	}
	for _, option := range options {
		option(s)
	}
	if s.orbiter != nil && s.orbiter.Light() == nil {
		s.orbiter.SetLight(s.pointLight)
		s.orbiter.SetColor(s.orbiter.Color())
	}

	logging.Get().WithFields(logrus.Fields{
		"scene":   s.name,
		"objects": len(s.objects),
		"markers": len(s.markers),
	}).Debug("scene created")
	return s, nil
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Count() int {
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	return s.register(obj, &s.objects)
}

func (s *scene) AddMarker(obj game_object.GameObject) uint64 {
	return s.register(obj, &s.markers)
}

// register assigns an ID if needed and appends obj to list.
func (s *scene) register(obj game_object.GameObject, list *[]game_object.GameObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	} else if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	s.registry[obj.ID()] = obj
	*list = append(*list, obj)
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	if _, ok := s.registry[id]; !ok {
		return
	}
	delete(s.registry, id)
	byID := func(g game_object.GameObject) bool { return g.ID() == id }
	s.objects = slices.DeleteFunc(s.objects, byID)
	s.markers = slices.DeleteFunc(s.markers, byID)
	if s.orbiter != nil && s.orbiter.ID() == id {
		s.orbiter = nil
	}
}

func (s *scene) Objects() []game_object.GameObject {
	return slices.Clone(s.objects)
}

func (s *scene) Markers() []game_object.GameObject {
	return slices.Clone(s.markers)
}

func (s *scene) PointLight() light.Light {
	return s.pointLight
}

func (s *scene) SpotLight() light.Light {
	return s.spotLight
}

func (s *scene) Orbiter() game_object.GameObject {
	return s.orbiter
}

func (s *scene) Skybox() skybox.Skybox {
	return s.sky
}

func (s *scene) CullingDisabled() bool {
	return s.cullingDisabled
}

func (s *scene) SetCullingDisabled(disabled bool) {
	s.cullingDisabled = disabled
}

func (s *scene) Culled() int {
	return s.culled
}

func (s *scene) Update(t float64) {
	orbiter := s.orbiter
	if orbiter == nil {
		return
	}

	scale := orbiter.Scale().X()
	orbiter.SetTransform(light.OrbitTransform(t, s.orbitRange, scale))
	orbiter.SetColor(light.PoliceColor(t))
}

func (s *scene) DrawDeferred(view, projection mgl32.Mat4, cameraPos, cameraFront mgl32.Vec3) {
	s.spotLight.SetPosition(cameraPos)
	s.spotLight.SetDirection(cameraFront)

	s.drawObjects(view, projection, cameraPos)
	s.drawMarkers(view, projection)

	if s.sky != nil {
		s.sky.UpdateTransform(view, projection)
		s.sky.Draw()
	}
}

func (s *scene) drawObjects(view, projection mgl32.Mat4, cameraPos mgl32.Vec3) {
	s.culled = 0
	if len(s.objects) == 0 {
		return
	}

	var frustum *common.Frustum
	if !s.cullingDisabled {
		f := common.ExtractFrustum(projection.Mul4(view))
		frustum = &f
	}

	p := s.phong
	p.Use()
	p.Set(shininessUniform, shader.Float(s.shininess))
	s.spotLight.Apply(p, spotLightUniform)
	s.pointLight.Apply(p, pointLightUniform)
	p.Set(viewPosUniform, shader.Vec3(cameraPos))
	p.Set(viewUniform, shader.Mat4(view))
	p.Set(projectionUniform, shader.Mat4(projection))

	for _, obj := range s.objects {
		d := obj.Drawable()
		if d == nil || !obj.Enabled() {
			continue
		}
		transform := obj.Transform()
		if frustum != nil && !visible(frustum, d, transform) {
			s.culled++
			continue
		}
		p.Set(modelUniform, shader.Mat4(transform))
		d.Draw(p)
	}
}

func (s *scene) drawMarkers(view, projection mgl32.Mat4) {
	if len(s.markers) == 0 {
		return
	}

	p := s.lightProg
	p.Use()
	p.Set(viewUniform, shader.Mat4(view))
	p.Set(projectionUniform, shader.Mat4(projection))

	for _, obj := range s.markers {
		d := obj.Drawable()
		if d == nil || !obj.Enabled() {
			continue
		}
		p.Set(lightColorUniform, shader.Vec3(obj.Color()))
		p.Set(modelUniform, shader.Mat4(obj.Transform()))
		d.Draw(p)
	}
}

// visible reports whether a bounded drawable placed at transform intersects
// the frustum. Unbounded drawables are always visible.
func visible(f *common.Frustum, d game_object.Drawable, transform mgl32.Mat4) bool {
	b, ok := d.(game_object.Bounded)
	if !ok {
		return true
	}
	center, radius := b.BoundingSphere()
	world := transform.Mul4x1(center.Vec4(1)).Vec3()
	scale := max(transform.Col(0).Vec3().Len(), transform.Col(1).Vec3().Len(), transform.Col(2).Vec3().Len())
	return f.ContainsSphere(world, radius*scale)
}

func (s *scene) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true

	s.phong.Destroy()
	s.lightProg.Destroy()
	for _, r := range s.owned {
		r.Destroy()
	}
	s.owned = nil
	s.registry = make(map[uint64]game_object.GameObject)
	s.objects, s.markers, s.orbiter = nil, nil, nil
}
