package renderer

import (
	"context"
	"image"
	"sync/atomic"
	"testing"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/scene"
)

// MockIntegrator returns a fixed color and counts calls
type MockIntegrator struct {
	returnColor core.Vec3
	hit         bool
	callCount   atomic.Int64
}

func (m *MockIntegrator) RayColor(ray core.Ray, sc *scene.Scene) (core.Vec3, bool) {
	m.callCount.Add(1)
	return m.returnColor, m.hit
}

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"exact fit", 64, 64, 32, 4},
		{"ragged edges", 70, 33, 32, 6},
		{"single tile", 10, 10, 32, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			// Tiles cover every pixel exactly once
			covered := make([]int, tt.width*tt.height)
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Expected tile ID %d, got %d", i, tile.ID)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[y*tt.width+x]++
					}
				}
			}
			for i, c := range covered {
				if c != 1 {
					t.Fatalf("Pixel %d covered %d times", i, c)
				}
			}
		})
	}
}

func TestTileRenderer_RenderTileBounds(t *testing.T) {
	sc := scene.NewRedSphereScene()
	mock := &MockIntegrator{returnColor: core.NewVec3(0, 0, 1), hit: true}
	fb := NewFramebuffer(16, 16)
	tr := NewTileRenderer(sc, mock, BuildCameraFrame(sc.Camera, 16, 16))

	stats := tr.RenderTileBounds(image.Rect(4, 4, 8, 10), fb)
	if stats.TotalPixels != 24 || stats.HitPixels != 24 {
		t.Errorf("Expected 24 pixels all hit, got %+v", stats)
	}
	if mock.callCount.Load() != 24 {
		t.Errorf("Expected 24 integrator calls, got %d", mock.callCount.Load())
	}
	if fb.Pixel(5, 5) != 0x0000FFFF {
		t.Errorf("Expected blue inside the tile, got %#08x", fb.Pixel(5, 5))
	}
	if fb.Pixel(0, 0) != 0 {
		t.Errorf("Expected untouched pixel outside the tile, got %#08x", fb.Pixel(0, 0))
	}
}

func TestWorkerPool_Run(t *testing.T) {
	sc := scene.NewRedSphereScene()
	mock := &MockIntegrator{returnColor: core.NewVec3(1, 1, 1)}
	fb := NewFramebuffer(50, 20)
	tr := NewTileRenderer(sc, mock, BuildCameraFrame(sc.Camera, 50, 20))

	pool := NewWorkerPool(tr, 3)
	if pool.GetNumWorkers() != 3 {
		t.Errorf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}

	stats, err := pool.Run(context.Background(), NewTileGrid(50, 20, 8), fb)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.TotalPixels != 1000 || stats.HitPixels != 0 || stats.Tiles != 21 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	for i, p := range fb.Pixels {
		if p != 0xFFFFFFFF {
			t.Fatalf("Pixel %d not rendered: %#08x", i, p)
		}
	}
}

func TestWorkerPool_DefaultsToCPUCount(t *testing.T) {
	if NewWorkerPool(nil, 0).GetNumWorkers() < 1 {
		t.Error("Expected at least one worker")
	}
}

func TestRenderStats_Coverage(t *testing.T) {
	if (RenderStats{}).Coverage() != 0 {
		t.Error("Expected zero coverage for an empty render")
	}
	if got := (RenderStats{TotalPixels: 4, HitPixels: 1}).Coverage(); got != 0.25 {
		t.Errorf("Expected 0.25, got %f", got)
	}
}
