package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-minirt/pkg/core"
)

func TestPlane_Hit_BasicIntersection(t *testing.T) {
	// Horizontal plane at y=0, ray shooting down from y=5
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	hit, isHit := plane.Hit(ray, 0, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-5.0) > 1e-9 {
		t.Errorf("Expected t=5, got t=%f", hit.T)
	}
	if hit.Point.Length() > 1e-9 {
		t.Errorf("Expected hit point at origin, got %v", hit.Point)
	}

	// The ray already opposes the normal so orientation leaves it alone
	hit.SetFaceNormal(ray, hit.Normal)
	if hit.Normal != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected normal (0,1,0), got %v", hit.Normal)
	}
	if !hit.FrontFace {
		t.Error("Expected front face hit")
	}
}

func TestPlane_Hit_ParallelRay(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	tests := []struct {
		name      string
		direction core.Vec3
	}{
		{"exactly parallel", core.NewVec3(1, 0, 0)},
		{"within parallel threshold", core.NewVec3(1, 1e-7, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 1, 0), tt.direction)
			if got := plane.Intersect(ray); got != NoHit {
				t.Errorf("Expected miss for parallel ray, got t=%f", got)
			}
		})
	}
}

func TestPlane_Hit_BehindRay(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))

	hit, isHit := plane.Hit(ray, 0, math.Inf(1))
	if isHit {
		t.Errorf("Expected miss for intersection behind ray, but got hit at t=%f", hit.T)
	}
}

func TestPlane_Hit_FaceNormal(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	// Ray from below hits the back side
	ray := core.NewRay(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0))
	hit, ok := plane.Hit(ray, 0, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit from below")
	}
	if hit.FrontFace {
		t.Error("Expected back face hit")
	}

	hit.SetFaceNormal(ray, hit.Normal)
	if hit.Normal != core.NewVec3(0, -1, 0) {
		t.Errorf("Expected flipped normal (0,-1,0), got %v", hit.Normal)
	}
}

func TestPlane_Basis(t *testing.T) {
	normals := []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, 1, 0).Normalize(),
	}

	for _, n := range normals {
		plane := NewPlane(core.NewVec3(0, 0, 0), n)
		if math.Abs(plane.U.Dot(n)) > 1e-9 || math.Abs(plane.V.Dot(n)) > 1e-9 || math.Abs(plane.U.Dot(plane.V)) > 1e-9 {
			t.Errorf("normal %v: basis not orthogonal U=%v V=%v", n, plane.U, plane.V)
		}
		if math.Abs(plane.U.Length()-1) > 1e-9 || math.Abs(plane.V.Length()-1) > 1e-9 {
			t.Errorf("normal %v: basis not unit length U=%v V=%v", n, plane.U, plane.V)
		}
	}
}

func TestPlane_CheckerTile(t *testing.T) {
	// For normal (0,1,0) the basis is U=(0,0,1), V=(1,0,0)
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	tests := []struct {
		point    core.Vec3
		expected int
	}{
		{core.NewVec3(0.5, 0, 0.5), 0},
		{core.NewVec3(0.5, 0, 1.5), 1},
		{core.NewVec3(1.5, 0, 1.5), 2},
		{core.NewVec3(-0.5, 0, 0.5), -1},
	}

	for _, tt := range tests {
		rec := &HitRecord{Point: tt.point}
		if got := plane.CheckerTile(rec, 1.0); got != tt.expected {
			t.Errorf("point %v: expected tile %d, got %d", tt.point, tt.expected, got)
		}
	}
}
