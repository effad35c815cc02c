package shader

import (
	"io/fs"

	"github.com/pkg/errors"
)

// Source is the GLSL text of one program.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
}

// LoadSource reads and pre-processes a vertex and fragment shader from fsys.
//
// Parameters:
//   - fsys: file system holding the shader sources
//   - name: program name used in diagnostics
//   - vertexPath: path of the vertex stage
//   - fragmentPath: path of the fragment stage
//
// Returns:
//   - Source: the expanded sources
//   - error: error if either stage could not be read or expanded
func LoadSource(fsys fs.FS, name, vertexPath, fragmentPath string) (Source, error) {
	pp := NewPreProcessor(fsys)

	vertex, err := pp.Process(vertexPath)
	if err != nil {
		return Source{}, errors.Wrapf(err, "program %q vertex stage", name)
	}
	fragment, err := pp.Process(fragmentPath)
	if err != nil {
		return Source{}, errors.Wrapf(err, "program %q fragment stage", name)
	}
	return Source{Name: name, Vertex: vertex, Fragment: fragment}, nil
}
