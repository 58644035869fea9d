package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-minirt/pkg/integrator"
	"github.com/df07/go-minirt/pkg/log"
	"github.com/df07/go-minirt/pkg/scene"
)

var logger = log.New("renderer")

// Raytracer renders one scene at a fixed image size
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	frame      CameraFrame
	opts       Options
}

// NewRaytracer prepares a render of sc with the given options
func NewRaytracer(sc *scene.Scene, opts Options) (*Raytracer, error) {
	if sc == nil {
		return nil, ErrNilScene
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	if !sc.Camera.Present {
		return nil, ErrNoCamera
	}
	opts = opts.normalized()

	var integ integrator.Integrator = integrator.NewLambert()
	if opts.Normals {
		integ = integrator.NewNormals()
	}

	return &Raytracer{
		scene:      sc,
		integrator: integ,
		frame:      BuildCameraFrame(sc.Camera, opts.Width, opts.Height),
		opts:       opts,
	}, nil
}

// Frame returns the camera frame used for primary rays
func (rt *Raytracer) Frame() CameraFrame {
	return rt.frame
}

// Render traces one ray through every pixel center and returns the framebuffer
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	start := time.Now()
	fb := NewFramebuffer(rt.opts.Width, rt.opts.Height)

	tiles := NewTileGrid(rt.opts.Width, rt.opts.Height, rt.opts.TileSize)
	pool := NewWorkerPool(NewTileRenderer(rt.scene, rt.integrator, rt.frame), rt.opts.Workers)

	stats, err := pool.Run(ctx, tiles, fb)
	stats.Duration = time.Since(start)
	if err != nil {
		return nil, stats, fmt.Errorf("render interrupted: %w", err)
	}

	logger.Debugf("rendered %dx%d in %v (%d tiles, %d workers, %.1f%% coverage)",
		rt.opts.Width, rt.opts.Height, stats.Duration, stats.Tiles, stats.Workers, 100*stats.Coverage())
	return fb, stats, nil
}

// RenderScene renders sc at width x height with default options
func RenderScene(sc *scene.Scene, width, height int) (*Framebuffer, error) {
	opts := DefaultOptions()
	opts.Width = width
	opts.Height = height

	fb, _, err := RenderContext(context.Background(), sc, opts)
	return fb, err
}

// RenderContext renders sc with opts, stopping early when ctx is cancelled
func RenderContext(ctx context.Context, sc *scene.Scene, opts Options) (*Framebuffer, RenderStats, error) {
	rt, err := NewRaytracer(sc, opts)
	if err != nil {
		return nil, RenderStats{}, err
	}
	return rt.Render(ctx)
}
