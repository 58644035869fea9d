package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/scene"
)

func vecNear(a, b core.Vec3) bool {
	return a.Subtract(b).Length() < 1e-9
}

func TestBuildCameraFrame_Basis(t *testing.T) {
	cam := scene.Camera{Position: core.NewVec3(0, 0, 0), Direction: core.NewVec3(0, 0, -1), FOV: 90, FocalLength: 1, Present: true}
	frame := BuildCameraFrame(cam, 200, 100)

	if !vecNear(frame.Right, core.NewVec3(1, 0, 0)) {
		t.Errorf("Expected right (1,0,0), got %v", frame.Right)
	}
	if !vecNear(frame.Up, core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected up (0,1,0), got %v", frame.Up)
	}
	if !vecNear(frame.Horizontal, core.NewVec3(2, 0, 0)) {
		t.Errorf("Expected horizontal (2,0,0), got %v", frame.Horizontal)
	}
	if !vecNear(frame.Vertical, core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected vertical (0,1,0), got %v", frame.Vertical)
	}
	if !vecNear(frame.LowerLeftCorner, core.NewVec3(-1, -0.5, -1)) {
		t.Errorf("Expected lower left (-1,-0.5,-1), got %v", frame.LowerLeftCorner)
	}
}

func TestBuildCameraFrame_UpFallback(t *testing.T) {
	directions := []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, -1, 0),
		core.NewVec3(0.01, 1, 0).Normalize(),
	}

	for _, dir := range directions {
		frame := BuildCameraFrame(scene.Camera{Direction: dir, FOV: 60, FocalLength: 1}, 64, 64)
		for name, v := range map[string]core.Vec3{"right": frame.Right, "up": frame.Up} {
			if math.IsNaN(v.X) || math.Abs(v.Length()-1) > 1e-9 {
				t.Errorf("direction %v: %s not unit length: %v", dir, name, v)
			}
		}
		if math.Abs(frame.Right.Dot(frame.Forward)) > 1e-9 || math.Abs(frame.Up.Dot(frame.Forward)) > 1e-9 {
			t.Errorf("direction %v: basis not orthogonal", dir)
		}
	}
}

func TestCameraFrame_RayForPixel(t *testing.T) {
	cam := scene.Camera{Position: core.NewVec3(1, 2, 3), Direction: core.NewVec3(0, 0, -1), FOV: 60, FocalLength: 1, Present: true}
	frame := BuildCameraFrame(cam, 3, 3)

	center := frame.RayForPixel(1, 1)
	if center.Origin != cam.Position {
		t.Errorf("Expected ray origin at camera, got %v", center.Origin)
	}
	if !vecNear(center.Direction, core.NewVec3(0, 0, -1)) {
		t.Errorf("Expected center ray along forward, got %v", center.Direction)
	}

	// Row 0 is the top of the image
	top := frame.RayForPixel(1, 0)
	if top.Direction.Y <= 0 {
		t.Errorf("Expected top row ray to point up, got %v", top.Direction)
	}
	left := frame.RayForPixel(0, 1)
	if left.Direction.X >= 0 {
		t.Errorf("Expected left column ray to point left, got %v", left.Direction)
	}
	if math.Abs(top.Direction.Length()-1) > 1e-9 {
		t.Errorf("Expected normalized direction, got %v", top.Direction)
	}
}

func TestCameraFrame_ProjectRoundTrip(t *testing.T) {
	cam := scene.Camera{Position: core.NewVec3(0, 1, 4), Direction: core.NewVec3(0.2, -0.3, -1).Normalize(), FOV: 70, FocalLength: 1, Present: true}
	frame := BuildCameraFrame(cam, 160, 90)

	for _, px := range [][2]int{{0, 0}, {80, 45}, {159, 89}, {17, 63}} {
		ray := frame.RayForPixel(px[0], px[1])
		x, y, ok := frame.Project(ray.At(7.5))
		if !ok {
			t.Fatalf("pixel %v: projection failed", px)
		}
		if math.Abs(x-(float64(px[0])+0.5)) > 1e-6 || math.Abs(y-(float64(px[1])+0.5)) > 1e-6 {
			t.Errorf("pixel %v: projected to (%f, %f)", px, x, y)
		}
	}

	if _, _, ok := frame.Project(cam.Position.Subtract(frame.Forward)); ok {
		t.Error("Expected projection of a point behind the camera to fail")
	}
}
