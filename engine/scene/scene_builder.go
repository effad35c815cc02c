package scene

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/Carmen-Shannon/oxy-gl/engine/skybox"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithObjects adds initial shaded objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.register(obj, &s.objects)
		}
	}
}

// WithMarkers adds initial light markers to the scene.
//
// Parameters:
//   - markers: the markers to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMarkers(markers ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range markers {
			s.register(obj, &s.markers)
		}
	}
}

// WithOrbiter adds a marker that Update moves around the Y axis and recolours.
// Unless it already carries a light, the scene's point light is attached to it.
//
// Parameters:
//   - obj: the orbiting marker
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithOrbiter(obj game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		s.register(obj, &s.markers)
		s.orbiter = obj
	}
}

// WithOrbitRadius sets the distance of the orbiting light from the Y axis.
// Defaults to 5.
func WithOrbitRadius(radius float32) SceneBuilderOption {
	return func(s *scene) {
		s.orbitRange = radius
	}
}

// WithPointLight replaces the default point light.
//
// Parameters:
//   - l: the point light
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPointLight(l light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.pointLight = l
	}
}

// WithSpotLight replaces the default camera spot light.
//
// Parameters:
//   - l: the spot light
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSpotLight(l light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.spotLight = l
	}
}

// WithShininess sets the Phong specular exponent. Defaults to 32.
func WithShininess(shininess float32) SceneBuilderOption {
	return func(s *scene) {
		s.shininess = shininess
	}
}

// WithSkybox sets the skybox. The scene takes ownership of it.
//
// Parameters:
//   - sky: the skybox
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSkybox(sky skybox.Skybox) SceneBuilderOption {
	return func(s *scene) {
		if sky == nil {
			return
		}
		s.sky = sky
		s.owned = append(s.owned, sky)
	}
}

// WithOwned hands resources to the scene; they are freed by Destroy in the
// order given.
//
// Parameters:
//   - resources: meshes, models or anything else with a Destroy method
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithOwned(resources ...interface{ Destroy() }) SceneBuilderOption {
	return func(s *scene) {
		for _, r := range resources {
			s.owned = append(s.owned, r)
		}
	}
}

// WithCullingDisabled turns off frustum culling of bounded objects.
func WithCullingDisabled(disabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.cullingDisabled = disabled
	}
}
