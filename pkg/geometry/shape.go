package geometry

import (
	"math"

	"github.com/df07/go-minirt/pkg/core"
)

// NoHit is the distance reported by Intersect when the ray misses
const NoHit = -1.0

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face

	// Surface parameterization used by bump mapping
	U, V      float64
	Tangent   core.Vec3
	Bitangent core.Vec3

	Part CylinderPart // Which part of a cylinder was hit; Side for other shapes
}

// SetFaceNormal orients the normal against the incoming ray.
// A normal perpendicular to the ray is left as is.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) <= 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Shape interface for objects that can be hit by rays.
//
// Hit returns a record with the outward geometric normal for the nearest
// intersection with tMin < t < tMax. Orientation against the ray is left to
// the caller so normal perturbation can run first.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool)
	Intersect(ray core.Ray) float64
	CheckerTile(rec *HitRecord, scale float64) int
}

// intersect returns the smallest positive distance at which s is hit, or NoHit
func intersect(s Shape, ray core.Ray) float64 {
	rec, ok := s.Hit(ray, 0, math.Inf(1))
	if !ok {
		return NoHit
	}
	return rec.T
}

// inRange reports whether t lies strictly inside (tMin, tMax)
func inRange(t, tMin, tMax float64) bool {
	return t > tMin && t < tMax
}

// SurfaceBasis returns two unit vectors spanning the plane perpendicular to n.
// The world Y axis is the reference unless n is nearly parallel to it.
func SurfaceBasis(n core.Vec3) (u, v core.Vec3) {
	up := core.NewVec3(0, 1, 0)
	if math.Abs(up.Dot(n)) > 0.999 {
		up = core.NewVec3(1, 0, 0)
	}
	u = up.Cross(n).Normalize()
	v = n.Cross(u).Normalize()
	return u, v
}

// planarTile is the checker tile index of an in-plane offset
func planarTile(rel, u, v core.Vec3, scale float64) int {
	return int(math.Floor(rel.Dot(u)/scale)) + int(math.Floor(rel.Dot(v)/scale))
}
