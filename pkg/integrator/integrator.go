package integrator

import (
	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/scene"
)

// Integrator defines the interface for computing the color seen along a primary ray
type Integrator interface {
	// RayColor returns the color for the ray and whether it hit any primitive
	RayColor(ray core.Ray, sc *scene.Scene) (core.Vec3, bool)
}

// Normals visualizes the oriented surface normal as (n+1)/2, black on a miss
type Normals struct{}

// NewNormals creates the surface-normal debug integrator
func NewNormals() *Normals {
	return &Normals{}
}

// RayColor maps the hit normal into [0,1]³
func (Normals) RayColor(ray core.Ray, sc *scene.Scene) (core.Vec3, bool) {
	hit := sc.Hit(ray, scene.Unbounded)
	if !hit.Found {
		return core.Vec3{}, false
	}
	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5), true
}
