package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/geometry"
	"github.com/df07/go-minirt/pkg/material"
)

func TestNew_Defaults(t *testing.T) {
	s := New()

	if s.Ambient.Present || s.Camera.Present || s.Light.Present {
		t.Error("Expected no singleton to be present in an empty scene")
	}
	if s.Camera.Direction != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected default camera direction (0,0,-1), got %v", s.Camera.Direction)
	}
	if s.Camera.FOV != 70 || s.Camera.FocalLength != 1 {
		t.Errorf("Expected fov 70 and focal length 1, got %f and %f", s.Camera.FOV, s.Camera.FocalLength)
	}
	if s.Light.Color != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected white default light, got %v", s.Light.Color)
	}
	if len(s.Primitives) != 0 {
		t.Errorf("Expected no primitives, got %d", len(s.Primitives))
	}
}

func TestScene_AddKeepsInsertionOrder(t *testing.T) {
	s := New()
	first := s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 1), core.NewVec3(1, 0, 0))
	second := s.Add(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), core.NewVec3(0, 1, 0))

	if s.Primitives[0] != first || s.Primitives[1] != second {
		t.Error("Expected primitives in insertion order")
	}
	if first.Kind() != KindSphere || second.Kind() != KindPlane {
		t.Errorf("Unexpected kinds %v, %v", first.Kind(), second.Kind())
	}

	counts := s.Counts()
	if counts[KindSphere] != 1 || counts[KindPlane] != 1 || counts[KindCylinder] != 0 {
		t.Errorf("Unexpected counts %v", counts)
	}
}

func TestScene_Validate(t *testing.T) {
	complete := func() *Scene {
		s := New()
		s.Ambient.Present = true
		s.Camera.Present = true
		s.Light.Present = true
		return s
	}

	tests := []struct {
		name     string
		mutate   func(s *Scene)
		expected error
	}{
		{"complete scene", func(s *Scene) {}, nil},
		{"missing ambient", func(s *Scene) { s.Ambient.Present = false }, ErrNoAmbient},
		{"missing camera", func(s *Scene) { s.Camera.Present = false }, ErrNoCamera},
		{"missing light", func(s *Scene) { s.Light.Present = false }, ErrNoLight},
		{"nil shape", func(s *Scene) { s.Primitives = append(s.Primitives, &Primitive{}) }, ErrInvalidPrimitive},
		{"zero checker scale", func(s *Scene) {
			p := s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 1), core.NewVec3(1, 1, 1))
			p.Checker = material.NewChecker(0)
		}, ErrInvalidPrimitive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := complete()
			tt.mutate(s)
			err := s.Validate()
			if tt.expected == nil {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestScene_CloseReleasesSharedBumpMapOnce(t *testing.T) {
	s := New()
	bm := material.NewBumpMap(1, 1, []float64{0.5})

	a := s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 1), core.NewVec3(1, 1, 1))
	a.Bump = bm
	b := s.Add(geometry.NewSphere(core.NewVec3(3, 0, 0), 1), core.NewVec3(1, 1, 1))
	b.Bump = bm.Retain()

	s.Close()
	if bm.Owners() != 0 {
		t.Errorf("Expected all owners released, got %d", bm.Owners())
	}
	if bm.Heights != nil {
		t.Error("Expected height data freed")
	}

	// Second close must not release again
	s.Close()
}

func TestBuiltin(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			s, err := Builtin(name)
			if err != nil {
				t.Fatalf("Builtin(%q) failed: %v", name, err)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Built-in scene %q invalid: %v", name, err)
			}
			if len(s.Primitives) == 0 {
				t.Errorf("Built-in scene %q has no primitives", name)
			}
		})
	}

	if _, err := Builtin("nope"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestKind_String(t *testing.T) {
	if KindParaboloid.String() != "paraboloid" || Kind(42).String() != "kind(42)" {
		t.Errorf("Unexpected kind names %q, %q", KindParaboloid.String(), Kind(42).String())
	}
}
