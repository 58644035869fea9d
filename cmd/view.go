package cmd

import (
	"context"
	"fmt"

	"github.com/df07/go-minirt/pkg/viewer"
	"github.com/urfave/cli"
)

// ViewScene opens an interactive window showing the scene.
func ViewScene(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}
	defer sc.Close()

	title := fmt.Sprintf("minirt - %s", ctx.Args().First())
	return viewer.Run(context.Background(), sc, renderOptions(ctx), title)
}
