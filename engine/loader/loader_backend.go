package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-gl/engine/model"
)

// loaderBackend imports one model file format into CPU side model data.
type loaderBackend interface {
	// Load imports the model at path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if loading fails
	Load(path string) (*model.ImportedModel, error)

	// LoadReader imports a model from a stream.
	//
	// Parameters:
	//   - r: the reader providing model data
	//   - name: model name
	//   - dir: directory relative resources resolve against
	//   - isGLB: true if the reader provides binary data
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if loading fails
	LoadReader(r io.Reader, name, dir string, isGLB bool) (*model.ImportedModel, error)
}
