package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/geometry"
	"github.com/df07/go-minirt/pkg/material"
)

var builtins = map[string]func() *Scene{
	"default":    NewDefaultScene,
	"red-sphere": NewRedSphereScene,
	"cylinders":  NewCylinderScene,
}

// Builtin returns a freshly built scene registered under name
func Builtin(name string) (*Scene, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return build(), nil
}

// BuiltinNames lists the registered scene names in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lit(s *Scene) {
	s.Ambient = Ambient{Ratio: 0.2, Color: core.NewVec3(1, 1, 1), Present: true}
	s.Light = Light{Position: core.NewVec3(-4, 6, 2), Brightness: 0.8, Color: core.NewVec3(1, 1, 1), Present: true}
}

// NewDefaultScene creates a showcase with every primitive kind and decoration
func NewDefaultScene() *Scene {
	s := New()
	lit(s)
	s.Camera = Camera{
		Position:    core.NewVec3(0, 1.5, 6),
		Direction:   core.NewVec3(0, -0.2, -1).Normalize(),
		FOV:         60,
		FocalLength: 1,
		Present:     true,
	}

	ground := s.Add(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)), core.NewVec3(0.9, 0.9, 0.9))
	ground.Checker = material.NewChecker(1.0)

	glossy := s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 1.0), core.NewVec3(0.8, 0.1, 0.1))
	glossy.Material = material.NewMaterial(0.6, 64)

	striped := s.Add(geometry.NewSphere(core.NewVec3(2.2, -0.4, 0), 0.6), core.NewVec3(0.1, 0.3, 0.9))
	striped.Checker = material.NewChecker(0.3)

	s.Add(geometry.NewCylinder(core.NewVec3(-2.2, 0, -0.5), core.NewVec3(0, 1, 0), 0.5, 2.0), core.NewVec3(0.2, 0.8, 0.3))

	s.Add(geometry.NewTriangle(
		core.NewVec3(-1.5, -1, -3),
		core.NewVec3(1.5, -1, -3),
		core.NewVec3(0, 2, -3.5),
	), core.NewVec3(0.9, 0.8, 0.2))

	bowl := s.Add(geometry.NewParaboloid(core.NewVec3(1.2, -1, 1.5), core.NewVec3(0, 1, 0), 0.5, 0.5, 0.8, geometry.Elliptic), core.NewVec3(0.7, 0.4, 0.9))
	bowl.Material = material.NewMaterial(0.3, 16)

	return s
}

// NewRedSphereScene creates a single red sphere lit from above
func NewRedSphereScene() *Scene {
	s := New()
	s.Ambient = Ambient{Ratio: 0.2, Color: core.NewVec3(1, 1, 1), Present: true}
	s.Light = Light{Position: core.NewVec3(0, 5, -5), Brightness: 1, Color: core.NewVec3(1, 1, 1), Present: true}
	s.Camera = Camera{
		Position:    core.NewVec3(0, 0, 0),
		Direction:   core.NewVec3(0, 0, -1),
		FOV:         60,
		FocalLength: 1,
		Present:     true,
	}
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -5), 1.0), core.NewVec3(1, 0, 0))
	return s
}

// NewCylinderScene creates a row of capped cylinders in different orientations
func NewCylinderScene() *Scene {
	s := New()
	lit(s)
	s.Camera = Camera{
		Position:    core.NewVec3(0, 2, 7),
		Direction:   core.NewVec3(0, -0.25, -1).Normalize(),
		FOV:         55,
		FocalLength: 1,
		Present:     true,
	}

	s.Add(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)), core.NewVec3(0.6, 0.6, 0.6))

	axes := []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(1, 1, 0).Normalize(),
		core.NewVec3(1, 0, 0),
	}
	for i, axis := range axes {
		x := float64(i-1) * 2.5
		p := s.Add(geometry.NewCylinder(core.NewVec3(x, 0, 0), axis, 0.6, 1.6), core.NewVec3(0.3, 0.5+0.2*float64(i), 0.8))
		if i == 1 {
			p.Checker = material.NewChecker(0.25)
		}
	}
	return s
}
