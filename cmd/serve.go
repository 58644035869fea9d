package cmd

import (
	"github.com/df07/go-minirt/pkg/loaders"
	"github.com/df07/go-minirt/pkg/scene"
	"github.com/df07/go-minirt/web/server"
	"github.com/urfave/cli"
)

// ServeScenes starts the HTTP render service with the built-in scenes and any
// .rt files given as arguments.
func ServeScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	scenes := make(map[string]*scene.Scene)
	for _, name := range scene.BuiltinNames() {
		sc, err := scene.Builtin(name)
		if err != nil {
			return err
		}
		scenes[name] = sc
	}

	for _, path := range ctx.Args() {
		sc, err := loaders.LoadRT(path)
		if err != nil {
			return err
		}
		defer sc.Close()
		scenes[path] = sc
		logger.Noticef("serving %s", path)
	}

	return server.NewServer(ctx.Int("port"), scenes).Start()
}
