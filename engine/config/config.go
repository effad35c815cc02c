// Package config loads the viewer settings from defaults, an optional YAML
// file and OXYGL_* environment variables, in that order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/framebuffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/postprocess"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. OXYGL_PIPELINE_PASS.
const EnvPrefix = "OXYGL"

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Window    WindowConfig    `mapstructure:"window"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Camera    CameraConfig    `mapstructure:"camera"`
	Assets    AssetsConfig    `mapstructure:"assets"`
	Workers   int             `mapstructure:"workers"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Profiling ProfilingConfig `mapstructure:"profiling"`
}

// WindowConfig configures the GLFW window.
type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	VSync  bool   `mapstructure:"vsync"`
}

// PipelineConfig selects the post-process pass and its input.
type PipelineConfig struct {
	Pass        string      `mapstructure:"pass"`
	Source      string      `mapstructure:"source"`
	KernelSize  int         `mapstructure:"kernel_size"`
	Kernel      [][]float32 `mapstructure:"kernel"`
	GizmoSize   int         `mapstructure:"gizmo_size"`
	GizmoX      float32     `mapstructure:"gizmo_x"`
	GizmoY      float32     `mapstructure:"gizmo_y"`
	ClearColor  []float32   `mapstructure:"clear_color"`
	CheckErrors bool        `mapstructure:"check_errors"`
}

// CameraConfig tunes the free-fly controller.
type CameraConfig struct {
	MoveSpeed        float32 `mapstructure:"move_speed"`
	MouseSensitivity float32 `mapstructure:"mouse_sensitivity"`
	ScrollSpeed      float32 `mapstructure:"scroll_speed"`
	Fov              float32 `mapstructure:"fov"`
}

// AssetsConfig points at everything read from disk.
type AssetsConfig struct {
	ShaderDir    string   `mapstructure:"shader_dir"`
	Model        string   `mapstructure:"model"`
	CubeTextures []string `mapstructure:"cube_textures"`
	Skybox       []string `mapstructure:"skybox"`

	// FlipVertical flips the crate textures on decode. glTF and cubemap
	// images are never flipped.
	FlipVertical bool `mapstructure:"flip_vertical"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

// ProfilingConfig enables the once-per-second stats log.
type ProfilingConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DefaultConfig returns the settings the viewer runs with when nothing is
// configured.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "OpenGL Tutorial",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		Pipeline: PipelineConfig{
			Pass:       postprocess.KindBayerDither.String(),
			Source:     framebuffer.SourceAlbedo.String(),
			KernelSize: 3,
			Kernel: [][]float32{
				{0.0625, 0.0625, 0.0625}, {0.125, 0.125, 0.125}, {0.0625, 0.0625, 0.0625},
				{0.125, 0.125, 0.125}, {0.25, 0.25, 0.25}, {0.125, 0.125, 0.125},
				{0.0625, 0.0625, 0.0625}, {0.125, 0.125, 0.125}, {0.0625, 0.0625, 0.0625},
			},
			GizmoSize:  100,
			ClearColor: []float32{0.2, 0.3, 0.3, 1.0},
		},
		Camera: CameraConfig{
			MoveSpeed:        1.5,
			MouseSensitivity: 0.1,
			ScrollSpeed:      1.5,
			Fov:              45,
		},
		Assets: AssetsConfig{
			Model: "assets/models/backpack/backpack.gltf",
			CubeTextures: []string{
				"assets/textures/container2.png",
				"assets/textures/container2_specular.png",
			},
			Skybox: []string{
				"assets/skybox/right.jpg",
				"assets/skybox/left.jpg",
				"assets/skybox/top.jpg",
				"assets/skybox/bottom.jpg",
				"assets/skybox/front.jpg",
				"assets/skybox/back.jpg",
			},
			FlipVertical: true,
		},
		Workers: 4,
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// Load reads configuration.
//
// Parameters:
//   - cfgFile: explicit config file, or "" to look for config.yaml in the
//     working directory and $HOME/.oxygl
//
// Returns:
//   - *Config: the merged, validated settings
//   - error: error if the file is unreadable or a setting is invalid
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	if err := Bind(v, cfgFile); err != nil {
		return nil, err
	}
	return FromViper(v)
}

// Bind registers defaults, the config file and environment overrides on v.
// Callers that bind command-line flags to v do so after Bind.
//
// Parameters:
//   - v: the viper instance to populate
//   - cfgFile: explicit config file, or "" to search the default locations
//
// Returns:
//   - error: error if the config file exists but cannot be read
func Bind(v *viper.Viper, cfgFile string) error {
	setDefaults(v, DefaultConfig())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".oxygl"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "reading config file")
		}
	}
	return nil
}

// FromViper decodes and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("window.title", cfg.Window.Title)
	v.SetDefault("window.width", cfg.Window.Width)
	v.SetDefault("window.height", cfg.Window.Height)
	v.SetDefault("window.vsync", cfg.Window.VSync)

	v.SetDefault("pipeline.pass", cfg.Pipeline.Pass)
	v.SetDefault("pipeline.source", cfg.Pipeline.Source)
	v.SetDefault("pipeline.kernel_size", cfg.Pipeline.KernelSize)
	v.SetDefault("pipeline.kernel", cfg.Pipeline.Kernel)
	v.SetDefault("pipeline.gizmo_size", cfg.Pipeline.GizmoSize)
	v.SetDefault("pipeline.gizmo_x", cfg.Pipeline.GizmoX)
	v.SetDefault("pipeline.gizmo_y", cfg.Pipeline.GizmoY)
	v.SetDefault("pipeline.clear_color", cfg.Pipeline.ClearColor)
	v.SetDefault("pipeline.check_errors", cfg.Pipeline.CheckErrors)

	v.SetDefault("camera.move_speed", cfg.Camera.MoveSpeed)
	v.SetDefault("camera.mouse_sensitivity", cfg.Camera.MouseSensitivity)
	v.SetDefault("camera.scroll_speed", cfg.Camera.ScrollSpeed)
	v.SetDefault("camera.fov", cfg.Camera.Fov)

	v.SetDefault("assets.shader_dir", cfg.Assets.ShaderDir)
	v.SetDefault("assets.model", cfg.Assets.Model)
	v.SetDefault("assets.cube_textures", cfg.Assets.CubeTextures)
	v.SetDefault("assets.skybox", cfg.Assets.Skybox)
	v.SetDefault("assets.flip_vertical", cfg.Assets.FlipVertical)

	v.SetDefault("workers", cfg.Workers)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.console", cfg.Logging.Console)

	v.SetDefault("profiling.enabled", cfg.Profiling.Enabled)
}

// Validate checks the settings for values the pipeline cannot run with.
//
// Returns:
//   - error: an error wrapping ErrInvalidConfig, or nil
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := postprocess.ParseKind(c.Pipeline.Pass); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if _, err := framebuffer.ParseSource(c.Pipeline.Source); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if _, err := c.Pipeline.FilterKernel(); err != nil {
		return err
	}
	if c.Pipeline.GizmoSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "gizmo size %d", c.Pipeline.GizmoSize)
	}
	if len(c.Pipeline.ClearColor) != 4 {
		return errors.Wrapf(ErrInvalidConfig, "clear color needs 4 components, got %d", len(c.Pipeline.ClearColor))
	}
	if c.Camera.Fov < 1 || c.Camera.Fov > 45 {
		return errors.Wrapf(ErrInvalidConfig, "fov %.1f outside [1, 45]", c.Camera.Fov)
	}
	if n := len(c.Assets.Skybox); n != 0 && n != 6 {
		return errors.Wrapf(ErrInvalidConfig, "skybox needs 6 faces, got %d", n)
	}
	if len(c.Assets.CubeTextures) > 2 {
		return errors.Wrapf(ErrInvalidConfig, "cube takes a diffuse and a specular texture, got %d", len(c.Assets.CubeTextures))
	}
	if c.Workers <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "workers %d", c.Workers)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "log level %q", c.Logging.Level)
	}
	return nil
}

// PassKind returns the configured pass. Only valid after Validate.
func (p PipelineConfig) PassKind() postprocess.Kind {
	k, _ := postprocess.ParseKind(p.Pass)
	return k
}

// SourceAttachment returns the configured pass input. Only valid after
// Validate.
func (p PipelineConfig) SourceAttachment() framebuffer.Source {
	s, _ := framebuffer.ParseSource(p.Source)
	return s
}

// FilterKernel converts the configured kernel to RGB weights. Each entry is
// either one weight applied to all channels or three per-channel weights.
//
// Returns:
//   - []mgl32.Vec3: KernelSize*KernelSize weights, row major
//   - error: error if the kernel does not match its size
func (p PipelineConfig) FilterKernel() ([]mgl32.Vec3, error) {
	if p.KernelSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "kernel size %d", p.KernelSize)
	}
	if len(p.Kernel) != p.KernelSize*p.KernelSize {
		return nil, errors.Wrapf(ErrInvalidConfig, "kernel has %d entries, size %d needs %d",
			len(p.Kernel), p.KernelSize, p.KernelSize*p.KernelSize)
	}
	out := make([]mgl32.Vec3, len(p.Kernel))
	for i, w := range p.Kernel {
		switch len(w) {
		case 1:
			out[i] = mgl32.Vec3{w[0], w[0], w[0]}
		case 3:
			out[i] = mgl32.Vec3{w[0], w[1], w[2]}
		default:
			return nil, errors.Wrapf(ErrInvalidConfig, "kernel entry %d has %d weights", i, len(w))
		}
	}
	return out, nil
}

// ClearRGBA returns the deferred pass clear colour.
func (p PipelineConfig) ClearRGBA() [4]float32 {
	var c [4]float32
	copy(c[:], p.ClearColor)
	return c
}
