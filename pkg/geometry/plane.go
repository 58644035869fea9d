package geometry

import (
	"math"

	"github.com/df07/go-minirt/pkg/core"
)

// Plane represents an infinite plane through Point with unit Normal.
// U and V span the plane and drive checker and bump coordinates.
type Plane struct {
	Point  core.Vec3
	Normal core.Vec3
	U, V   core.Vec3
}

// NewPlane creates a new plane. The normal is expected to be unit length.
func NewPlane(point, normal core.Vec3) *Plane {
	u, v := SurfaceBasis(normal)
	return &Plane{
		Point:  point,
		Normal: normal,
		U:      u,
		V:      v,
	}
}

// Intersect returns the nearest positive hit distance, or NoHit
func (p *Plane) Intersect(ray core.Ray) float64 {
	return intersect(p, ray)
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-6 {
		return nil, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if !inRange(t, tMin, tMax) {
		return nil, false
	}

	point := ray.At(t)
	rel := point.Subtract(p.Point)
	rec := &HitRecord{
		T:         t,
		Point:     point,
		Normal:    p.Normal,
		FrontFace: denominator < 0,
		U:         rel.Dot(p.U),
		V:         rel.Dot(p.V),
		Tangent:   p.U,
		Bitangent: p.V,
	}
	return rec, true
}

// CheckerTile tiles the plane in squares of side scale along U and V
func (p *Plane) CheckerTile(rec *HitRecord, scale float64) int {
	return planarTile(rec.Point.Subtract(p.Point), p.U, p.V, scale)
}
