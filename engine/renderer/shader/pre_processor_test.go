package shader

import (
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreProcessorExpandsIncludes(t *testing.T) {
	fsys := fstest.MapFS{
		"glsl/main.frag":         {Data: []byte("#version 410 core\n#include \"lib/light.glsl\"\nvoid main() {}")},
		"glsl/lib/light.glsl":    {Data: []byte("#include \"material.glsl\"\nstruct Light { vec3 a; };")},
		"glsl/lib/material.glsl": {Data: []byte("struct Material { float s; };")},
		"glsl/lib/unused.glsl":   {Data: []byte("garbage")},
	}
	pp := NewPreProcessor(fsys)

	out, err := pp.Process("glsl/main.frag")
	require.NoError(t, err)
	assert.Equal(t, "#version 410 core\nstruct Material { float s; };\nstruct Light { vec3 a; };\nvoid main() {}", out)
	assert.Equal(t, []string{"glsl/lib/light.glsl", "glsl/lib/material.glsl"}, pp.Includes())
}

func TestPreProcessorIncludesOnce(t *testing.T) {
	fsys := fstest.MapFS{
		"a.glsl":      {Data: []byte("#include \"common.glsl\"\n#include \"common.glsl\"\nA")},
		"common.glsl": {Data: []byte("C")},
	}
	out, err := NewPreProcessor(fsys).Process("a.glsl")
	require.NoError(t, err)
	assert.Equal(t, "C\nA", out)
}

func TestPreProcessorDetectsCycle(t *testing.T) {
	fsys := fstest.MapFS{
		"a.glsl": {Data: []byte("#include \"b.glsl\"")},
		"b.glsl": {Data: []byte("#include \"a.glsl\"")},
	}
	_, err := NewPreProcessor(fsys).Process("a.glsl")
	assert.True(t, errors.Is(err, ErrIncludeCycle), "got %v", err)
}

func TestPreProcessorErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.glsl":     {Data: []byte("#include <nope.glsl>")},
		"missing.glsl": {Data: []byte("#include \"gone.glsl\"")},
	}
	_, err := NewPreProcessor(fsys).Process("bad.glsl")
	assert.ErrorContains(t, err, "malformed include")

	_, err = NewPreProcessor(fsys).Process("missing.glsl")
	assert.ErrorContains(t, err, "gone.glsl")
}

func TestLoadSource(t *testing.T) {
	fsys := fstest.MapFS{
		"v.vert":   {Data: []byte("#include \"inc.glsl\"\nV")},
		"f.frag":   {Data: []byte("#include \"inc.glsl\"\nF")},
		"inc.glsl": {Data: []byte("I")},
	}
	src, err := LoadSource(fsys, "demo", "v.vert", "f.frag")
	require.NoError(t, err)
	assert.Equal(t, Source{Name: "demo", Vertex: "I\nV", Fragment: "I\nF"}, src)
}
