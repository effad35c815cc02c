// Package loader imports model files and keeps the uploaded models in a cache keyed
// by path.
package loader

import (
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/logging"
	"github.com/Carmen-Shannon/oxy-gl/engine/model"

	"github.com/pkg/errors"
)

// ErrUnsupportedFormat is returned for model files no backend can read.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	dev          device.Device
	workers      int
	flipVertical bool

	modelCache map[string]model.Model

	backends map[string]loaderBackend
}

// Loader imports model files, uploads them and caches the result.
type Loader interface {
	// Import reads a model file into CPU side data without touching the device.
	// The backend is chosen by extension (.gltf, .glb).
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - *model.ImportedModel: the imported data
	//   - error: ErrUnsupportedFormat, ErrNoRootNode or a parse error
	Import(path string) (*model.ImportedModel, error)

	// Load imports and uploads a model file, returning the cached model when the path
	// was loaded before.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: the uploaded model
	//   - error: error if importing or uploading fails
	Load(path string) (model.Model, error)

	// LoadReader imports and uploads a model from a stream and caches it under name.
	//
	// Parameters:
	//   - name: the cache key and model name
	//   - r: the reader providing model data
	//   - dir: directory relative texture URIs resolve against
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - model.Model: the uploaded model
	//   - error: error if importing or uploading fails
	LoadReader(name string, r io.Reader, dir string, isGLB bool) (model.Model, error)

	// Get returns a cached model, nil if not loaded.
	Get(name string) model.Model

	// Models returns a copy of the cache.
	Models() map[string]model.Model

	// Destroy frees every cached model and empties the cache.
	Destroy()
}

var _ Loader = &loader{}

// NewLoader creates a Loader with the glTF backend registered for .gltf and .glb.
//
// Parameters:
//   - dev: the device models are uploaded to
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: the loader
func NewLoader(dev device.Device, options ...LoaderBuilderOption) Loader {
	gltf := newGLTFLoaderBackend()
	l := &loader{
		dev:        dev,
		workers:    1,
		modelCache: make(map[string]model.Model),
		backends: map[string]loaderBackend{
			".gltf": gltf,
			".glb":  gltf,
		},
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Import(path string) (*model.ImportedModel, error) {
	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}
	imported, err := backend.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}
	return imported, nil
}

func (l *loader) Load(path string) (model.Model, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	imported, err := l.Import(path)
	if err != nil {
		return nil, err
	}
	return l.upload(path, imported)
}

func (l *loader) LoadReader(name string, r io.Reader, dir string, isGLB bool) (model.Model, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}

	imported, err := newGLTFLoaderBackend().LoadReader(r, name, dir, isGLB)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load from reader %q", name)
	}
	return l.upload(name, imported)
}

func (l *loader) upload(key string, imported *model.ImportedModel) (model.Model, error) {
	m, err := model.New(l.dev, imported,
		model.WithWorkers(l.workers),
		model.WithFlipVertical(l.flipVertical),
	)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.modelCache[key] = m
	l.mu.Unlock()

	logging.Get().WithField("model", key).Info("model loaded")
	return m, nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

func (l *loader) Destroy() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.modelCache {
		m.Destroy()
	}
	l.modelCache = make(map[string]model.Model)
}

func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if b, ok := l.backends[ext]; ok {
		return b, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
}
