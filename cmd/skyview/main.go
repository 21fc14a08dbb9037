package main

import (
	"os"
	"runtime"

	"github.com/urfave/cli"
	"github.com/xlab/closer"
)

func init() {
	// GLFW and OpenGL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	app := cli.NewApp()
	app.Name = "skyview"
	app.Usage = "render a day/night skybox driven by a simulated clock"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "TOML configuration file; built-in defaults are used when empty",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		setupLogging(ctx)
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:  "view",
			Usage: "open a window and render the configured skybox",
			Description: `
Load the skybox shaders and the day and night cube map faces, then render them
while a simulated clock advances the time of day. The sky brightens inside the
sunrise window and darkens inside the sunset window.

Keys: +/- change the clock speed, arrows turn the camera, Esc quits. Dragging
with the left mouse button also turns the camera.`,
			Flags: []cli.Flag{
				cli.Float64Flag{
					Name:  "start-hour",
					Value: -1,
					Usage: "simulated hour to start at (overrides the configuration)",
				},
				cli.Float64Flag{
					Name:  "clock-speed",
					Value: -1,
					Usage: "simulated hours per second (overrides the configuration)",
				},
				cli.IntFlag{
					Name:  "fps",
					Value: -1,
					Usage: "frame rate cap, 0 for unlimited (overrides the configuration)",
				},
			},
			Action: View,
		},
		{
			Name:   "faces",
			Usage:  "resolve and decode the skybox face files and list their sizes",
			Action: Faces,
		},
		{
			Name:   "config",
			Usage:  "print the effective configuration as TOML",
			Action: PrintConfig,
		},
	}

	if err := app.Run(os.Args); err != nil {
		closer.Fatalln(err)
	}
	closer.Close()
}
