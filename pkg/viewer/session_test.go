package viewer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/df07/go-minirt/pkg/renderer"
	"github.com/df07/go-minirt/pkg/scene"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(scene.NewRedSphereScene(), renderer.Options{Width: 41, Height: 41, Workers: 2})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestSession_RenderAndToggleNormals(t *testing.T) {
	s := newTestSession(t)

	if fb, _ := s.Frame(); fb != nil {
		t.Fatal("Expected no frame before the first render")
	}

	s.Render(context.Background())
	s.Wait()
	fb, gen := s.Frame()
	if fb == nil || gen != 1 {
		t.Fatalf("Expected first frame, got gen %d", gen)
	}
	if got := renderer.UnpackRGBA(fb.Pixel(20, 20)); got.R != 51 || got.G != 0 {
		t.Errorf("Expected ambient-lit center, got %v", got)
	}

	s.ToggleNormals(context.Background())
	s.Wait()
	fb, gen = s.Frame()
	if gen != 2 {
		t.Fatalf("Expected second frame, got gen %d", gen)
	}
	if got := fb.Pixel(20, 20); got != 0x8080FFFF {
		t.Errorf("Expected normal color at center, got %#08x", got)
	}
	if status := s.Status(); !strings.HasPrefix(status, "normals  41x41") {
		t.Errorf("Unexpected status %q", status)
	}
	if s.Err() != nil {
		t.Errorf("Unexpected error %v", s.Err())
	}
}

func TestSession_ToggleAxes(t *testing.T) {
	s := newTestSession(t)

	layer, visible := s.Axes()
	if visible || layer == nil {
		t.Fatal("Expected a hidden, prepared axes layer")
	}
	if !s.ToggleAxes() {
		t.Error("Expected axes visible after first toggle")
	}
	if s.ToggleAxes() {
		t.Error("Expected axes hidden after second toggle")
	}
}

func TestSession_CancelledRenderKeepsNoError(t *testing.T) {
	s := newTestSession(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Render(ctx)
	s.Wait()

	if fb, _ := s.Frame(); fb != nil {
		t.Error("Expected no frame from a cancelled render")
	}
	if s.Err() != nil {
		t.Errorf("Cancellation should not be reported as an error, got %v", s.Err())
	}
}

func TestNewSession_InvalidOptions(t *testing.T) {
	_, err := NewSession(scene.NewRedSphereScene(), renderer.Options{Width: 0, Height: 10})
	if !errors.Is(err, renderer.ErrInvalidSize) {
		t.Errorf("Expected ErrInvalidSize, got %v", err)
	}
}
