package main

import (
	"glscene/internal/config"
	"glscene/internal/gpu"
	"glscene/internal/gpu/gl41"
	"glscene/internal/viewer"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/urfave/cli"
	"github.com/xlab/closer"
)

// Open the viewer window and render the configured skybox until it closes.
func View(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	applyOverrides(ctx, &cfg.Viewer)
	config.Apply(cfg.Viewer)

	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	window, err := viewer.OpenWindow("skyview", cfg.Viewer.Width, cfg.Viewer.Height)
	if err != nil {
		return err
	}
	dev, err := gl41.New()
	if err != nil {
		return err
	}

	camera := viewer.NewCamera(cfg.Viewer.Width, cfg.Viewer.Height, cfg.Viewer.FOV)
	r, err := viewer.NewRenderer(dev, cfg, camera)
	if err != nil {
		return err
	}
	defer r.Dispose(gl41.ContextActive)
	// closer runs its cleanups on its own goroutine, away from the GL
	// thread, so a signal only drops the handles.
	closer.Bind(dropHandles(r))

	clock := viewer.NewClock(cfg.Viewer.StartHour)
	logger.Noticef("rendering skybox from %.2fh at %.3f h/s", clock.Hours(), config.GetClockSpeed())
	viewer.NewApp(window, r, camera, clock).Run()
	return nil
}

func applyOverrides(ctx *cli.Context, v *config.Viewer) {
	if h := ctx.Float64("start-hour"); h >= 0 && h < 24 {
		v.StartHour = float32(h)
	}
	if s := ctx.Float64("clock-speed"); s >= 0 {
		v.ClockSpeed = float32(s)
	}
	if fps := ctx.Int("fps"); fps >= 0 {
		v.FPSLimit = fps
	}
}

type disposer interface {
	Dispose(alive gpu.Liveness)
}

func contextLost() bool { return false }

// dropHandles forgets the GPU handles of d without calling the driver.
func dropHandles(d disposer) func() {
	return func() {
		d.Dispose(contextLost)
	}
}
