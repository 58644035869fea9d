package cmd

import (
	"github.com/urfave/cli"
)

// NewApp assembles the command line interface.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "minirt"
	app.Usage = "render .rt scenes with a whitted-style ray tracer"
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
	}

	frameFlags := []cli.Flag{
		cli.IntFlag{
			Name:   "width",
			Value:  800,
			Usage:  "frame width",
			EnvVar: "MINIRT_WIDTH",
		},
		cli.IntFlag{
			Name:   "height",
			Value:  600,
			Usage:  "frame height",
			EnvVar: "MINIRT_HEIGHT",
		},
		cli.IntFlag{
			Name:   "workers",
			Value:  0,
			Usage:  "parallel tile workers (0 uses every CPU)",
			EnvVar: "MINIRT_WORKERS",
		},
		cli.BoolFlag{
			Name:  "normals",
			Usage: "render surface normals instead of shading",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a still frame",
			Description: `
Load a .rt scene (or builtin:<name>), trace one ray per pixel and write the
result as a PNG image.`,
			ArgsUsage: "scene.rt",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:   "out, o",
					Value:  "frame.png",
					Usage:  "image filename for the rendered frame",
					EnvVar: "MINIRT_OUT",
				},
				cli.Float64Flag{
					Name:  "scale",
					Value: 1.0,
					Usage: "resample the output image by this factor",
				},
			}, frameFlags...),
			Action: RenderFrame,
		},
		{
			Name:      "view",
			Usage:     "open an interactive window (Esc quits, N toggles normals, I toggles axes)",
			ArgsUsage: "scene.rt",
			Flags:     frameFlags,
			Action:    ViewScene,
		},
		{
			Name:      "serve",
			Usage:     "serve renders and pixel inspection over HTTP",
			ArgsUsage: "[scene.rt ...]",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:   "port",
					Value:  8080,
					Usage:  "port to serve on",
					EnvVar: "MINIRT_PORT",
				},
			},
			Action: ServeScenes,
		},
		{
			Name:      "info",
			Usage:     "print scene elements and primitive counts",
			ArgsUsage: "scene.rt",
			Action:    ShowSceneInfo,
		},
		{
			Name:      "convert",
			Usage:     "convert a wavefront obj mesh into a .rt scene",
			ArgsUsage: "input.obj output.rt",
			Action:    ConvertMesh,
		},
		{
			Name:      "move",
			Usage:     "translate scene elements",
			ArgsUsage: "input.rt output.rt dx,dy,dz",
			Action:    MoveScene,
		},
		{
			Name:      "reorient",
			Usage:     "rotate triangles about the origin (degrees, X then Y then Z)",
			ArgsUsage: "input.rt output.rt rx,ry,rz",
			Action:    ReorientScene,
		},
		{
			Name:      "resize",
			Usage:     "scale triangles about the origin",
			ArgsUsage: "input.rt output.rt factor",
			Action:    ResizeScene,
		},
	}

	return app
}
