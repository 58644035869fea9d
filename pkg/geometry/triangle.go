package geometry

import (
	"math"

	"github.com/df07/go-minirt/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices

	normal core.Vec3 // Cached normal vector
	u, v   core.Vec3 // Cached in-plane basis along the first edge
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	t := &Triangle{
		V0: v0,
		V1: v1,
		V2: v2,
	}
	t.computeBasis()
	return t
}

// computeBasis caches the normal and an orthonormal in-plane basis
func (t *Triangle) computeBasis() {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	t.normal = edge1.Cross(edge2).Normalize()
	t.u = edge1.Normalize()
	t.v = edge2.Subtract(t.u.Multiply(edge2.Dot(t.u))).Normalize()
}

// Normal returns the geometric normal (V1-V0)×(V2-V0), normalized
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Intersect returns the nearest positive hit distance, or NoHit
func (t *Triangle) Intersect(ray core.Ray) float64 {
	return intersect(t, ray)
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	pvec := ray.Direction.Cross(edge2)
	det := edge1.Dot(pvec)

	// Ray lies in the triangle plane or the triangle is degenerate
	if math.Abs(det) < epsilon {
		return nil, false
	}
	invDet := 1.0 / det

	tvec := ray.Origin.Subtract(t.V0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return nil, false
	}

	qvec := tvec.Cross(edge1)
	v := ray.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return nil, false
	}

	dist := edge2.Dot(qvec) * invDet
	if !inRange(dist, tMin, tMax) {
		return nil, false
	}

	rec := &HitRecord{
		T:         dist,
		Point:     ray.At(dist),
		Normal:    t.normal,
		FrontFace: ray.Direction.Dot(t.normal) <= 0,
		U:         u,
		V:         v,
		Tangent:   t.u,
		Bitangent: t.normal.Cross(t.u).Normalize(),
	}
	return rec, true
}

// CheckerTile tiles the triangle plane along the first edge and its in-plane perpendicular
func (t *Triangle) CheckerTile(rec *HitRecord, scale float64) int {
	return planarTile(rec.Point.Subtract(t.V0), t.u, t.v, scale)
}
