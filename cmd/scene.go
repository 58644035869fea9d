package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-minirt/pkg/loaders"
	"github.com/df07/go-minirt/pkg/scene"
	"github.com/urfave/cli"
)

// builtinPrefix selects a compiled-in scene instead of a file
const builtinPrefix = "builtin:"

// loadScene reads the scene named by the first argument: a .rt file or
// builtin:<name>.
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	if ctx.NArg() < 1 {
		return nil, errors.New("missing scene argument (file.rt or builtin:<name>)")
	}
	source := ctx.Args().First()

	if name, ok := strings.CutPrefix(source, builtinPrefix); ok {
		sc, err := scene.Builtin(name)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(scene.BuiltinNames(), ", "))
		}
		logger.Infof("using built-in scene %q", name)
		return sc, nil
	}

	if filepath.Ext(source) != ".rt" {
		return nil, fmt.Errorf("unsupported scene %q: expected a .rt file", source)
	}
	logger.Noticef("loading scene: %s", source)
	return loaders.LoadRT(source)
}
