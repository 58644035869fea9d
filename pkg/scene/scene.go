package scene

import (
	"fmt"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/geometry"
	"github.com/df07/go-minirt/pkg/material"
)

// Kind tags the shape variant of a primitive
type Kind int

const (
	KindSphere Kind = iota
	KindPlane
	KindCylinder
	KindTriangle
	KindParaboloid
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	case KindCylinder:
		return "cylinder"
	case KindTriangle:
		return "triangle"
	case KindParaboloid:
		return "paraboloid"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// KindOf returns the tag for a shape
func KindOf(shape geometry.Shape) Kind {
	switch shape.(type) {
	case *geometry.Sphere:
		return KindSphere
	case *geometry.Plane:
		return KindPlane
	case *geometry.Cylinder:
		return KindCylinder
	case *geometry.Triangle:
		return KindTriangle
	case *geometry.Paraboloid:
		return KindParaboloid
	default:
		return -1
	}
}

// Ambient is the uniform background illumination
type Ambient struct {
	Ratio   float64
	Color   core.Vec3
	Present bool
}

// Camera describes the viewpoint
type Camera struct {
	Position    core.Vec3
	Direction   core.Vec3 // Unit view direction
	FOV         float64   // Field of view in degrees, in (0, 180)
	FocalLength float64
	Present     bool
}

// Light is the single point light
type Light struct {
	Position   core.Vec3
	Brightness float64
	Color      core.Vec3
	Present    bool
}

// Radiance returns the light color scaled by brightness
func (l Light) Radiance() core.Vec3 {
	return l.Color.Multiply(l.Brightness)
}

// Decoration holds the optional surface features of a primitive
type Decoration struct {
	Checker      *material.Checker
	Bump         *material.BumpMap
	BumpStrength float64
	Material     *material.Material
}

// Primitive is one surface in the scene with its base color and decoration
type Primitive struct {
	Shape geometry.Shape
	Color core.Vec3
	Decoration
}

// Kind returns the shape variant of the primitive
func (p *Primitive) Kind() Kind {
	return KindOf(p.Shape)
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Ambient    Ambient
	Camera     Camera
	Light      Light
	Primitives []*Primitive // Scanned in insertion order
}

// New creates an empty scene with defaults for every singleton
func New() *Scene {
	return &Scene{
		Camera: Camera{
			Direction:   core.NewVec3(0, 0, -1),
			FOV:         70,
			FocalLength: 1,
		},
		Light: Light{
			Color: core.NewVec3(1, 1, 1),
		},
	}
}

// Add appends a primitive and returns it for further decoration
func (s *Scene) Add(shape geometry.Shape, color core.Vec3) *Primitive {
	p := &Primitive{Shape: shape, Color: color}
	s.Primitives = append(s.Primitives, p)
	return p
}

// Close releases every primitive's bump map reference. The scene must not be
// rendered afterwards. Calling Close twice is a no-op.
func (s *Scene) Close() {
	for _, p := range s.Primitives {
		if p.Bump != nil {
			p.Bump.Release()
			p.Bump = nil
		}
	}
	s.Primitives = nil
}

// Counts returns how many primitives of each kind the scene holds
func (s *Scene) Counts() map[Kind]int {
	counts := make(map[Kind]int)
	for _, p := range s.Primitives {
		counts[p.Kind()]++
	}
	return counts
}

// Validate checks the invariants the renderer relies on
func (s *Scene) Validate() error {
	if !s.Ambient.Present {
		return ErrNoAmbient
	}
	if !s.Camera.Present {
		return ErrNoCamera
	}
	if !s.Light.Present {
		return ErrNoLight
	}
	for i, p := range s.Primitives {
		if p.Shape == nil {
			return fmt.Errorf("%w: primitive %d has no shape", ErrInvalidPrimitive, i)
		}
		if p.Checker != nil && p.Checker.Scale <= 0 {
			return fmt.Errorf("%w: primitive %d has checker scale %g", ErrInvalidPrimitive, i, p.Checker.Scale)
		}
		if p.Bump != nil && p.Bump.Heights == nil {
			return fmt.Errorf("%w: primitive %d references a released bump map", ErrInvalidPrimitive, i)
		}
	}
	return nil
}
