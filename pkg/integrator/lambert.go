package integrator

import (
	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/scene"
)

// Lambert shades hits with ambient, Lambertian diffuse, a hard shadow test
// and the primitive's precomputed specular highlight
type Lambert struct{}

// NewLambert creates the Lambert shading integrator
func NewLambert() *Lambert {
	return &Lambert{}
}

// RayColor traces the ray and shades the nearest hit
func (l Lambert) RayColor(ray core.Ray, sc *scene.Scene) (core.Vec3, bool) {
	hit := sc.Hit(ray, scene.Unbounded)
	return Shade(sc, hit), hit.Found
}

// Shade computes the outgoing color of a resolved hit. Channels are not clamped.
func Shade(sc *scene.Scene, hit scene.Hit) core.Vec3 {
	if !hit.Found {
		return core.Vec3{}
	}

	ambient := sc.Ambient.Color.Multiply(sc.Ambient.Ratio).MultiplyVec(hit.Albedo)
	if InShadow(sc, hit.Point) {
		return ambient
	}

	toLight := sc.Light.Position.Subtract(hit.Point).Normalize()
	diffuse := sc.Light.Radiance().Multiply(max(0, hit.Normal.Dot(toLight)))

	return ambient.Add(hit.Albedo.MultiplyVec(diffuse)).Add(hit.Specular)
}

// InShadow reports whether any primitive blocks the segment from point to the light.
// A point closer to the light than core.Epsilon is never shadowed.
func InShadow(sc *scene.Scene, point core.Vec3) bool {
	toLight := sc.Light.Position.Subtract(point)
	distance := toLight.Length()
	if distance <= core.Epsilon {
		return false
	}
	dir := toLight.Divide(distance)
	shadowRay := core.NewRay(point.Add(dir.Multiply(core.Epsilon)), dir)
	return sc.Occluded(shadowRay, distance-core.Epsilon)
}
