package scene

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gl/engine/model"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/skybox"

	"github.com/go-gl/mathgl/mgl32"
)

// markerScale is the size of a light marker relative to the unit cube.
const markerScale = 0.05

// CubePosition is where the textured crate sits.
var CubePosition = mgl32.Vec3{0, 0, -2}

// axisMarkers are fixed markers one unit along each axis, coloured by axis.
var axisMarkers = []struct {
	position mgl32.Vec3
	color    mgl32.Vec3
}{
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 0, 0}},
}

// Assets are the loaded resources the default scene is assembled from. Every
// field is optional.
type Assets struct {
	// CubeTextures are the crate's material textures, usually a diffuse and a
	// specular map.
	CubeTextures []texture.Texture

	// Model is drawn at the origin with an identity transform.
	Model model.Model

	// Skybox is drawn behind everything.
	Skybox skybox.Skybox
}

// NewTutorial assembles the default scene: the loaded model at the origin, a
// textured crate, axis markers on +X, +Y and +Z, and an orbiting police light
// carrying the point light. The scene takes ownership of assets even when an
// error is returned.
//
// Parameters:
//   - dev: the device context
//   - sources: resolves the phong and light programs
//   - assets: the loaded resources
//   - options: extra scene options applied after the defaults
//
// Returns:
//   - Scene: the scene
//   - error: error if a mesh or program could not be built
func NewTutorial(dev device.Device, sources Sources, assets Assets, options ...SceneBuilderOption) (Scene, error) {
	release := func(rs ...interface{ Destroy() }) {
		for _, r := range rs {
			r.Destroy()
		}
	}
	var owned []interface{ Destroy() }
	if assets.Model != nil {
		owned = append(owned, assets.Model)
	}
	if assets.Skybox != nil {
		owned = append(owned, assets.Skybox)
	}

	crate, err := NewCube(dev, assets.CubeTextures)
	if err != nil {
		for _, t := range assets.CubeTextures {
			t.Destroy()
		}
		release(owned...)
		return nil, err
	}
	owned = append(owned, crate)

	marker, err := NewCube(dev, nil)
	if err != nil {
		release(owned...)
		return nil, err
	}
	owned = append(owned, marker)

	var objects []game_object.GameObject
	if assets.Model != nil {
		objects = append(objects, game_object.NewGameObject(game_object.WithDrawable(assets.Model)))
	}
	objects = append(objects, game_object.NewGameObject(
		game_object.WithDrawable(crate),
		game_object.WithPosition(CubePosition),
	))

	markers := make([]game_object.GameObject, 0, len(axisMarkers))
	for _, m := range axisMarkers {
		markers = append(markers, game_object.NewGameObject(
			game_object.WithDrawable(marker),
			game_object.WithPosition(m.position),
			game_object.WithColor(m.color),
			game_object.WithUniformScale(markerScale),
		))
	}
	orbiter := game_object.NewGameObject(
		game_object.WithDrawable(marker),
		game_object.WithUniformScale(markerScale),
	)

	opts := []SceneBuilderOption{
		WithOrbiter(orbiter),
		WithMarkers(markers...),
		WithObjects(objects...),
		// owned already frees the skybox.
		func(s *scene) { s.sky = assets.Skybox },
		WithOwned(owned...),
	}
	s, err := NewScene("tutorial", dev, sources, append(opts, options...)...)
	if err != nil {
		release(owned...)
		return nil, err
	}
	s.Update(0)
	return s, nil
}
