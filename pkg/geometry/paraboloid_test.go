package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-minirt/pkg/core"
)

func TestParaboloid_Hit(t *testing.T) {
	// Axis +Z gives the local frame U=+X, V=+Y
	bowl := NewParaboloid(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 1, 1, 1, Elliptic)
	saddle := NewParaboloid(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 1, 1, 1, Hyperbolic)

	tests := []struct {
		name      string
		shape     *Paraboloid
		ray       core.Ray
		shouldHit bool
		expectedT float64
	}{
		{
			name:      "vertex from above (linear case)",
			shape:     bowl,
			ray:       core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)),
			shouldHit: true,
			expectedT: 5,
		},
		{
			name:      "off-axis from above",
			shape:     bowl,
			ray:       core.NewRay(core.NewVec3(0.5, 0, 5), core.NewVec3(0, 0, -1)),
			shouldHit: true,
			expectedT: 4.75,
		},
		{
			name:      "outside the rim",
			shape:     bowl,
			ray:       core.NewRay(core.NewVec3(2, 0, 5), core.NewVec3(0, 0, -1)),
			shouldHit: false,
		},
		{
			name:      "horizontal through the wall",
			shape:     bowl,
			ray:       core.NewRay(core.NewVec3(-5, 0, 0.5), core.NewVec3(1, 0, 0)),
			shouldHit: true,
			expectedT: 5 - math.Sqrt(0.5),
		},
		{
			name:      "saddle dips below the center",
			shape:     saddle,
			ray:       core.NewRay(core.NewVec3(0.5, 0, 5), core.NewVec3(0, 0, -1)),
			shouldHit: true,
			expectedT: 5.25,
		},
		{
			name:      "parallel degenerate ray",
			shape:     bowl,
			ray:       core.NewRay(core.NewVec3(5, 5, 5), core.NewVec3(0, 0, 0)),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := tt.shape.Hit(tt.ray, 0, math.Inf(1))
			if ok != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got %v", tt.shouldHit, ok)
			}
			if !ok {
				if got := tt.shape.Intersect(tt.ray); got != NoHit {
					t.Errorf("Expected NoHit, got %f", got)
				}
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if residual := tt.shape.Implicit(hit.Point); math.Abs(residual) > 1e-9 {
				t.Errorf("Hit point %v off surface, residual %g", hit.Point, residual)
			}
			if math.Abs(hit.Normal.Length()-1) > 1e-9 {
				t.Errorf("Expected unit normal, got %v", hit.Normal)
			}
		})
	}
}

func TestParaboloid_NormalIsGradient(t *testing.T) {
	bowl := NewParaboloid(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 1, 2, 1, Elliptic)
	ray := core.NewRay(core.NewVec3(0.5, 1, 5), core.NewVec3(0, 0, -1))

	hit, ok := bowl.Hit(ray, 0, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit")
	}

	// z = x² + y²/4 at (0.5, 1) gives gradient (2x, y/2, -1) = (1, 0.5, -1)
	expected := core.NewVec3(1, 0.5, -1).Normalize()
	if hit.Normal.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected normal %v, got %v", expected, hit.Normal)
	}
}

func TestParaboloid_CheckerTile(t *testing.T) {
	bowl := NewParaboloid(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 1, 1, 1, Elliptic)

	a := bowl.CheckerTile(&HitRecord{Point: core.NewVec3(0.1, 0.1, 0.02)}, 0.25)
	b := bowl.CheckerTile(&HitRecord{Point: core.NewVec3(0.3, 0.1, 0.1)}, 0.25)
	if b-a != 1 {
		t.Errorf("Expected adjacent tiles, got %d and %d", a, b)
	}
}
