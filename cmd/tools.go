package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/loaders"
	"github.com/df07/go-minirt/pkg/rtedit"
	"github.com/urfave/cli"
)

// ConvertMesh converts a Wavefront OBJ mesh into a .rt scene.
func ConvertMesh(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 2 {
		return errors.New("expected input.obj and output.rt arguments")
	}
	in, out := ctx.Args().Get(0), ctx.Args().Get(1)

	mesh, err := loaders.LoadOBJ(in)
	if err != nil {
		return err
	}
	logger.Noticef("read %d vertices, %d triangles from %s", len(mesh.Vertices), len(mesh.Faces), in)

	return writeFile(out, func(w io.Writer) error {
		return loaders.WriteRT(w, mesh)
	})
}

// MoveScene translates scene elements by dx,dy,dz.
func MoveScene(ctx *cli.Context) error {
	return editScene(ctx, "dx,dy,dz", func(arg string, r io.Reader, w io.Writer) error {
		offset, err := parseTriple(arg)
		if err != nil {
			return err
		}
		return rtedit.Translate(r, w, offset)
	})
}

// ReorientScene rotates triangles by rx,ry,rz degrees.
func ReorientScene(ctx *cli.Context) error {
	return editScene(ctx, "rx,ry,rz", func(arg string, r io.Reader, w io.Writer) error {
		angles, err := parseTriple(arg)
		if err != nil {
			return err
		}
		return rtedit.Rotate(r, w, angles)
	})
}

// ResizeScene scales triangles by a positive factor.
func ResizeScene(ctx *cli.Context) error {
	return editScene(ctx, "factor", func(arg string, r io.Reader, w io.Writer) error {
		factor, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid scale factor %q", arg)
		}
		return rtedit.Scale(r, w, factor)
	})
}

func editScene(ctx *cli.Context, argName string, edit func(arg string, r io.Reader, w io.Writer) error) error {
	setupLogging(ctx)

	if ctx.NArg() != 3 {
		return fmt.Errorf("expected input.rt, output.rt and %s arguments", argName)
	}
	in, out, arg := ctx.Args().Get(0), ctx.Args().Get(1), ctx.Args().Get(2)
	if in == out {
		return errors.New("input and output must be different files")
	}

	src, err := os.Open(in)
	if err != nil {
		return err
	}
	defer src.Close()

	if err := writeFile(out, func(w io.Writer) error { return edit(arg, src, w) }); err != nil {
		return err
	}
	logger.Noticef("wrote %s", out)
	return nil
}

// writeFile creates path and removes it again if write fails
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func parseTriple(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var xyz [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid number %q in %q", p, s)
		}
		xyz[i] = v
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}
