// Package viewer shows a rendered scene in a window with debug toggles.
package viewer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-minirt/pkg/log"
	"github.com/df07/go-minirt/pkg/overlay"
	"github.com/df07/go-minirt/pkg/renderer"
	"github.com/df07/go-minirt/pkg/scene"
)

var logger = log.New("viewer")

// Session owns the render state behind a window. Renders run in the
// background; a newer render cancels and supersedes an older one.
type Session struct {
	scene *scene.Scene
	opts  renderer.Options
	axes  *renderer.Framebuffer

	mu       sync.Mutex
	showAxes bool
	frame    *renderer.Framebuffer
	stats    renderer.RenderStats
	err      error
	running  bool
	gen      int // Incremented for every render started
	done     int // Generation of the frame currently held
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewSession validates the scene against opts and prepares the axes overlay
func NewSession(sc *scene.Scene, opts renderer.Options) (*Session, error) {
	rt, err := renderer.NewRaytracer(sc, opts)
	if err != nil {
		return nil, err
	}
	return &Session{
		scene: sc,
		opts:  opts,
		axes:  overlay.NewAxesLayer(rt.Frame()),
	}, nil
}

// Render starts a background render with the current options
func (s *Session) Render(ctx context.Context) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.gen++
	gen := s.gen
	opts := s.opts
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		rt, err := renderer.NewRaytracer(s.scene, opts)
		var fb *renderer.Framebuffer
		var stats renderer.RenderStats
		if err == nil {
			fb, stats, err = rt.Render(ctx)
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			return
		}
		s.running = false
		if err != nil {
			if ctx.Err() == nil {
				s.err = err
				logger.Errorf("render failed: %v", err)
			}
			return
		}
		s.frame, s.stats, s.done, s.err = fb, stats, gen, nil
		logger.Infof("frame %d ready in %v", gen, stats.Duration)
	}()
}

// Wait blocks until every started render has finished
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels any render in flight and waits for it
func (s *Session) Close() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	s.Wait()
}

// Frame returns the latest finished frame and its generation; nil before the first
func (s *Session) Frame() (*renderer.Framebuffer, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame, s.done
}

// Axes returns the overlay layer when it is visible
func (s *Session) Axes() (*renderer.Framebuffer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.axes, s.showAxes
}

// Err returns the error of the last failed render, if any
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// ToggleNormals switches between shading and the normal visualization and re-renders
func (s *Session) ToggleNormals(ctx context.Context) {
	s.mu.Lock()
	s.opts.Normals = !s.opts.Normals
	mode := s.modeLocked()
	s.mu.Unlock()

	logger.Infof("switching to %s", mode)
	s.Render(ctx)
}

// ToggleAxes shows or hides the axes overlay and returns the new state
func (s *Session) ToggleAxes() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showAxes = !s.showAxes
	return s.showAxes
}

// Size returns the render resolution
func (s *Session) Size() (int, int) {
	return s.opts.Width, s.opts.Height
}

// Status is the one-line HUD text
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := fmt.Sprintf("%s  %dx%d", s.modeLocked(), s.opts.Width, s.opts.Height)
	switch {
	case s.err != nil:
		return state + "  error: " + s.err.Error()
	case s.running:
		return state + "  rendering..."
	case s.frame != nil:
		return fmt.Sprintf("%s  %v  [N] normals  [I] axes  [Esc] quit", state, s.stats.Duration.Round(time.Millisecond))
	}
	return state
}

func (s *Session) modeLocked() string {
	if s.opts.Normals {
		return "normals"
	}
	return "shaded"
}
