package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/df07/go-minirt/pkg/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// RenderFrame renders a still frame to a PNG file.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}
	defer sc.Close()

	opts := renderOptions(ctx)
	rt, err := renderer.NewRaytracer(sc, opts)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fb, stats, err := rt.Render(sigCtx)
	if err != nil {
		return err
	}

	img, err := scaleFrame(fb, ctx.Float64("scale"))
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if err := writePNG(out, img); err != nil {
		return err
	}
	logger.Noticef("wrote %s (%dx%d)", out, img.Bounds().Dx(), img.Bounds().Dy())

	displayFrameStats(stats)
	return nil
}

func renderOptions(ctx *cli.Context) renderer.Options {
	opts := renderer.DefaultOptions()
	opts.Width = ctx.Int("width")
	opts.Height = ctx.Int("height")
	opts.Normals = ctx.Bool("normals")
	if w := ctx.Int("workers"); w > 0 {
		opts.Workers = w
	}
	return opts
}

// scaleFrame resamples the framebuffer by factor. Downscaling is smoothed,
// upscaling keeps hard pixel edges.
func scaleFrame(fb *renderer.Framebuffer, factor float64) (image.Image, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("invalid scale factor %g", factor)
	}
	if factor == 1 {
		return fb.ToImage(), nil
	}

	w := int(math.Round(float64(fb.Width) * factor))
	h := int(math.Round(float64(fb.Height) * factor))
	if w < 1 || h < 1 {
		return nil, errors.New("scale factor leaves an empty image")
	}
	return fb.Scaled(w, h, factor < 1), nil
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

func displayFrameStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pixels", "Hit pixels", "Coverage", "Tiles", "Workers", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.HitPixels),
		fmt.Sprintf("%02.1f %%", 100*stats.Coverage()),
		fmt.Sprintf("%d", stats.Tiles),
		fmt.Sprintf("%d", stats.Workers),
		stats.Duration.String(),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
