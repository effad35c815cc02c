package commands

import (
	"github.com/Carmen-Shannon/oxy-gl/engine"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/config"
	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/device/gldevice"
	"github.com/Carmen-Shannon/oxy-gl/engine/gizmo"
	"github.com/Carmen-Shannon/oxy-gl/engine/loader"
	"github.com/Carmen-Shannon/oxy-gl/engine/logging"
	"github.com/Carmen-Shannon/oxy-gl/engine/overlay"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/postprocess"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shaders"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/Carmen-Shannon/oxy-gl/engine/skybox"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"

	"github.com/pkg/errors"
)

// releaser collects cleanups for resources built before the engine takes
// ownership of them.
type releaser []func()

func (r *releaser) add(fn func()) {
	*r = append(*r, fn)
}

func (r *releaser) run() {
	for i := len(*r) - 1; i >= 0; i-- {
		(*r)[i]()
	}
	*r = nil
}

// runViewer opens the window and renders until it is closed.
func runViewer(cfg *config.Config) error {
	log := logging.Get()

	w, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithVSync(cfg.Window.VSync),
	)
	if err != nil {
		log.WithError(err).Error("window")
		return err
	}
	defer w.Close()

	dev, err := gldevice.New()
	if err != nil {
		log.WithError(err).Error("device")
		return err
	}

	e, err := buildEngine(dev, w, cfg)
	if err != nil {
		log.WithError(err).Error("setup failed")
		return err
	}
	defer e.Destroy()

	if cfg.Profiling.Enabled {
		e.EnableProfiler()
	}
	if err := e.Run(); err != nil {
		log.WithError(err).Error("render loop stopped")
		return err
	}
	return nil
}

func buildEngine(dev device.Device, w window.Window, cfg *config.Config) (engine.Engine, error) {
	var pending releaser
	defer pending.run()

	sources := shaders.Loader(shaders.Dir(cfg.Assets.ShaderDir))

	assets, err := loadAssets(dev, cfg, sources)
	if err != nil {
		return nil, err
	}
	s, err := scene.NewTutorial(dev, sources, assets)
	if err != nil {
		return nil, err
	}
	pending.add(s.Destroy)

	var passOpts []postprocess.PassBuilderOption
	if cfg.Pipeline.PassKind() == postprocess.KindFilter {
		kernel, err := cfg.Pipeline.FilterKernel()
		if err != nil {
			return nil, err
		}
		passOpts = append(passOpts, postprocess.WithKernel(cfg.Pipeline.KernelSize, kernel))
	}
	pass, err := postprocess.New(dev, cfg.Pipeline.PassKind(), sources, passOpts...)
	if err != nil {
		return nil, err
	}
	pending.add(pass.Destroy)

	gizmoSrc, err := sources(shaders.Gizmo)
	if err != nil {
		return nil, errors.Wrap(err, "gizmo program")
	}
	g, err := gizmo.New(dev, gizmoSrc)
	if err != nil {
		return nil, err
	}
	pending.add(g.Destroy)

	gizmoOffset := [2]float32{cfg.Pipeline.GizmoX, cfg.Pipeline.GizmoY}
	ov, err := overlay.New(overlay.NewGL3Renderer(dev, sources), overlay.WithGizmoOffset(gizmoOffset))
	if err != nil {
		return nil, err
	}
	pending.add(ov.Destroy)

	cam := camera.NewCamera(camera.WithFov(cfg.Camera.Fov))
	controller := camera.NewCameraController(cam,
		camera.WithMoveSpeed(cfg.Camera.MoveSpeed),
		camera.WithMouseSensitivity(cfg.Camera.MouseSensitivity),
		camera.WithScrollSpeed(cfg.Camera.ScrollSpeed),
	)

	e, err := engine.NewEngine(dev,
		engine.WithWindow(w),
		engine.WithCameraController(controller),
		engine.WithScene(s),
		engine.WithPass(pass, cfg.Pipeline.SourceAttachment()),
		engine.WithGizmo(g),
		engine.WithGizmoViewport(cfg.Pipeline.GizmoSize, gizmoOffset),
		engine.WithOverlay(ov),
		engine.WithClearColor(cfg.Pipeline.ClearRGBA()),
		engine.WithErrorChecks(cfg.Pipeline.CheckErrors),
		engine.WithProfiling(cfg.Profiling.Enabled),
	)
	if err != nil {
		return nil, err
	}
	pending = nil
	return e, nil
}

// loadAssets reads the crate textures, the model and the skybox faces. On
// error everything already loaded is released.
func loadAssets(dev device.Device, cfg *config.Config, sources func(string) (shader.Source, error)) (scene.Assets, error) {
	var assets scene.Assets
	var pending releaser
	defer pending.run()

	var decodeOpts []texture.DecodeOption
	if cfg.Assets.FlipVertical {
		decodeOpts = append(decodeOpts, texture.WithFlipVertical())
	}

	images, err := texture.DecodeFiles(cfg.Assets.CubeTextures, cfg.Workers, decodeOpts...)
	if err != nil {
		return assets, errors.Wrap(err, "crate textures")
	}
	roles := []texture.Type{texture.Diffuse, texture.Specular}
	for i, img := range images {
		tex, err := texture.New2D(dev, img, roles[i])
		if err != nil {
			return assets, errors.Wrapf(err, "crate texture %s", cfg.Assets.CubeTextures[i])
		}
		pending.add(tex.Destroy)
		assets.CubeTextures = append(assets.CubeTextures, tex)
	}

	if cfg.Assets.Model != "" {
		l := loader.NewLoader(dev, loader.WithWorkers(cfg.Workers))
		m, err := l.Load(cfg.Assets.Model)
		if err != nil {
			return assets, err
		}
		pending.add(m.Destroy)
		assets.Model = m
	}

	if len(cfg.Assets.Skybox) == 6 {
		src, err := sources(shaders.Skybox)
		if err != nil {
			return assets, errors.Wrap(err, "skybox program")
		}
		sky, err := skybox.Load(dev, src, cfg.Assets.Skybox, cfg.Workers)
		if err != nil {
			return assets, err
		}
		pending.add(sky.Destroy)
		assets.Skybox = sky
	}

	pending = nil
	logging.Get().WithField("model", cfg.Assets.Model).Info("assets loaded")
	return assets, nil
}
