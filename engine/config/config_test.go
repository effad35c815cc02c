package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/framebuffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/postprocess"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, postprocess.KindBayerDither, cfg.Pipeline.PassKind())
	assert.Equal(t, framebuffer.SourceAlbedo, cfg.Pipeline.SourceAttachment())
	assert.Equal(t, [4]float32{0.2, 0.3, 0.3, 1.0}, cfg.Pipeline.ClearRGBA())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "bayer", cfg.Pipeline.Pass)
	assert.Len(t, cfg.Assets.Skybox, 6)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 512
  height: 256
pipeline:
  pass: filter
  source: normal
  kernel_size: 1
  kernel:
    - [0.5, 1, 2]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Window.Width)
	assert.Equal(t, "OpenGL Tutorial", cfg.Window.Title)
	assert.Equal(t, postprocess.KindFilter, cfg.Pipeline.PassKind())
	assert.Equal(t, framebuffer.SourceNormal, cfg.Pipeline.SourceAttachment())

	kernel, err := cfg.Pipeline.FilterKernel()
	require.NoError(t, err)
	assert.Equal(t, []mgl32.Vec3{{0.5, 1, 2}}, kernel)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "pipeline:\n  pass: prewitt\n")
	t.Setenv("OXYGL_PIPELINE_PASS", "prewitt_normals")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, postprocess.KindPrewittNormals, cfg.Pipeline.PassKind())
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown pass", "pipeline:\n  pass: sobel\n"},
		{"unknown source", "pipeline:\n  source: stencil\n"},
		{"zero width", "window:\n  width: 0\n"},
		{"kernel mismatch", "pipeline:\n  kernel_size: 2\n"},
		{"skybox faces", "assets:\n  skybox: [a.jpg, b.jpg]\n"},
		{"log level", "logging:\n  level: loud\n"},
		{"fov", "camera:\n  fov: 90\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	_, err := Load(writeConfig(t, "window: [unterminated"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidConfig))
}

func TestFilterKernelBroadcastsScalarWeights(t *testing.T) {
	p := PipelineConfig{KernelSize: 1, Kernel: [][]float32{{0.25}}}
	kernel, err := p.FilterKernel()
	require.NoError(t, err)
	assert.Equal(t, []mgl32.Vec3{{0.25, 0.25, 0.25}}, kernel)

	p.Kernel = [][]float32{{1, 2}}
	_, err = p.FilterKernel()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
