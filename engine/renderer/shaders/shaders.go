// Package shaders embeds the GLSL programs the renderer ships with. Each
// program is a <name>.vert and <name>.frag pair at the root of the tree;
// shared code lives under include/ and is pulled in with #include.
package shaders

import (
	"embed"
	"io/fs"
	"os"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
)

// Program names.
const (
	Phong          = "phong"
	Light          = "light"
	Skybox         = "skybox"
	Gizmo          = "gizmo"
	Overlay        = "overlay"
	BayerDither    = "bayer_dither"
	Prewitt        = "prewitt"
	PrewittNormals = "prewitt_normals"
	Filter         = "filter"
)

//go:embed glsl
var embedded embed.FS

// Names lists every embedded program.
func Names() []string {
	return []string{Phong, Light, Skybox, Gizmo, Overlay, BayerDither, Prewitt, PrewittNormals, Filter}
}

// FS returns the embedded shader tree rooted at the program files.
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "glsl")
	if err != nil {
		panic(err)
	}
	return sub
}

// Dir returns the shader tree to load from. An empty dir selects the embedded
// sources; anything else is read from disk so shaders can be edited without a
// rebuild.
//
// Parameters:
//   - dir: directory laid out like the embedded tree, or ""
//
// Returns:
//   - fs.FS: the shader tree
func Dir(dir string) fs.FS {
	if dir == "" {
		return FS()
	}
	return os.DirFS(dir)
}

// Loader returns a function resolving program names inside fsys.
//
// Parameters:
//   - fsys: shader tree, usually FS() or Dir(path)
//
// Returns:
//   - func(string) (shader.Source, error): loads <name>.vert and <name>.frag
func Loader(fsys fs.FS) func(name string) (shader.Source, error) {
	return func(name string) (shader.Source, error) {
		return shader.LoadSource(fsys, name, name+".vert", name+".frag")
	}
}

// Load reads an embedded program.
func Load(name string) (shader.Source, error) {
	return Loader(FS())(name)
}
