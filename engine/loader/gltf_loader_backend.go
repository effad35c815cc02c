package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-gl/engine/model"
)

// gltfLoaderBackendImpl is the loaderBackend for glTF and GLB files.
type gltfLoaderBackendImpl struct {
	importer gltfImporter
}

var _ loaderBackend = &gltfLoaderBackendImpl{}

func newGLTFLoaderBackend() loaderBackend {
	return &gltfLoaderBackendImpl{
		importer: newGLTFImporter(),
	}
}

func (b *gltfLoaderBackendImpl) Load(path string) (*model.ImportedModel, error) {
	return b.importer.Import(path)
}

func (b *gltfLoaderBackendImpl) LoadReader(r io.Reader, name, dir string, isGLB bool) (*model.ImportedModel, error) {
	return b.importer.ImportReader(r, name, dir, isGLB)
}
