package geometry

import (
	"math"

	"github.com/df07/go-minirt/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Intersect returns the nearest positive hit distance, or NoHit
func (s *Sphere) Intersect(ray core.Ray) float64 {
	return intersect(s, ray)
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return nil, false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first; the farther one covers rays starting inside
	root := (-halfB - sqrtD) / a
	if !inRange(root, tMin, tMax) {
		root = (-halfB + sqrtD) / a
		if !inRange(root, tMin, tMax) {
			return nil, false
		}
	}

	point := ray.At(root)
	outwardNormal := point.Subtract(s.Center).Normalize()

	rec := &HitRecord{
		T:      root,
		Point:  point,
		Normal: outwardNormal,
	}
	rec.FrontFace = ray.Direction.Dot(outwardNormal) <= 0

	// Spherical coordinates for bump mapping
	rec.U = (math.Atan2(outwardNormal.Z, outwardNormal.X) + math.Pi) / (2 * math.Pi)
	rec.V = math.Acos(clampUnit(outwardNormal.Y)) / math.Pi
	rec.Tangent = core.NewVec3(0, 1, 0).Cross(outwardNormal)
	if rec.Tangent.LengthSquared() < 1e-6 {
		rec.Tangent = core.NewVec3(1, 0, 0).Cross(outwardNormal)
	}
	rec.Tangent = rec.Tangent.Normalize()
	rec.Bitangent = outwardNormal.Cross(rec.Tangent)

	return rec, true
}

// CheckerTile tiles the sphere by arc length along longitude and latitude
func (s *Sphere) CheckerTile(rec *HitRecord, scale float64) int {
	n := rec.Point.Subtract(s.Center).Normalize()
	longitude := math.Atan2(n.Z, n.X)
	if longitude < 0 {
		longitude += 2 * math.Pi
	}
	latitude := math.Acos(clampUnit(n.Y))

	iu := int(math.Floor(longitude * s.Radius / scale))
	iv := int(math.Floor(latitude * s.Radius / scale))
	return iu + iv
}

func clampUnit(x float64) float64 {
	return max(-1, min(1, x))
}
