package overlay

import (
	"testing"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/renderer"
	"github.com/df07/go-minirt/pkg/scene"
)

func frontCamera(dir core.Vec3) renderer.CameraFrame {
	cam := scene.Camera{
		Position:    core.NewVec3(0, 0, 5),
		Direction:   dir,
		FOV:         90,
		FocalLength: 1,
		Present:     true,
	}
	return renderer.BuildCameraFrame(cam, 101, 101)
}

func TestDrawAxes(t *testing.T) {
	fb := NewAxesLayer(frontCamera(core.NewVec3(0, 0, -1)))

	tests := []struct {
		name     string
		x, y     int
		expected uint32
	}{
		{"+X halfway", 75, 50, ColorX},
		{"+X at edge", 100, 50, ColorX},
		{"-X at edge", 0, 50, ColorNegX},
		{"+Y up", 50, 25, ColorY},
		{"+Y at edge", 50, 0, ColorY},
		{"-Y down", 50, 75, ColorNegY},
		{"Z axes collapse onto origin", 50, 50, ColorNegZ},
		{"corner untouched", 0, 0, 0},
		{"off axis untouched", 70, 70, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fb.Pixel(tt.x, tt.y); got != tt.expected {
				t.Errorf("Pixel (%d,%d): expected %#08x, got %#08x", tt.x, tt.y, tt.expected, got)
			}
		})
	}
}

func TestDrawAxes_OriginBehindCamera(t *testing.T) {
	fb := NewAxesLayer(frontCamera(core.NewVec3(0, 0, 1)))
	for i, p := range fb.Pixels {
		if p != 0 {
			t.Fatalf("Expected empty layer, pixel %d is %#08x", i, p)
		}
	}
}

func TestDrawLine(t *testing.T) {
	fb := renderer.NewFramebuffer(4, 4)
	DrawLine(fb, 0, 0, 3, 3, 0xFFFFFFFF)

	for i := 0; i < 4; i++ {
		if fb.Pixel(i, i) != 0xFFFFFFFF {
			t.Errorf("Expected diagonal pixel (%d,%d) set", i, i)
		}
	}
	if fb.Pixel(3, 0) != 0 {
		t.Error("Expected off-diagonal pixel untouched")
	}

	// Lines running off the buffer are clipped per pixel
	DrawLine(fb, -5, 1, 10, 1, 0x112233FF)
	for x := 0; x < 4; x++ {
		if fb.Pixel(x, 1) != 0x112233FF {
			t.Errorf("Expected clipped row pixel (%d,1) set", x)
		}
	}
}
