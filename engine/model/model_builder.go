package model

// ModelBuilderOption is a functional option for configuring a Model via New.
type ModelBuilderOption func(*model)

// WithName is an option builder that overrides the imported model name.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithWorkers is an option builder that sets the texture decode pool size.
//
// Parameters:
//   - workers: number of decode workers, values below 1 use 1
//
// Returns:
//   - ModelBuilderOption: a function that applies the workers option to a model
func WithWorkers(workers int) ModelBuilderOption {
	return func(m *model) {
		m.workers = max(workers, 1)
	}
}

// WithFlipVertical is an option builder that stores texture rows bottom to top.
// glTF textures need no flip; this is for assets authored with a bottom-left UV origin.
//
// Parameters:
//   - flip: whether to flip decoded textures
//
// Returns:
//   - ModelBuilderOption: a function that applies the flip option to a model
func WithFlipVertical(flip bool) ModelBuilderOption {
	return func(m *model) {
		m.flipVertical = flip
	}
}
