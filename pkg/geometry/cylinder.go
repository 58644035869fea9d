package geometry

import (
	"math"

	"github.com/df07/go-minirt/pkg/core"
)

// CylinderPart identifies which surface of a capped cylinder was hit
type CylinderPart int

const (
	Side CylinderPart = iota
	TopCap
	BottomCap
)

func (p CylinderPart) String() string {
	switch p {
	case Side:
		return "side"
	case TopCap:
		return "top"
	case BottomCap:
		return "bottom"
	default:
		return "none"
	}
}

// CylinderHit is the bare result of a cylinder intersection
type CylinderHit struct {
	T    float64
	Part CylinderPart
}

// Cylinder represents a finite cylinder closed by two disk caps.
// Center is the midpoint of the axis segment; the caps sit at Center ± Axis·Height/2.
type Cylinder struct {
	Center core.Vec3
	Axis   core.Vec3
	Radius float64
	Height float64

	// Cached basis perpendicular to the axis
	u, v core.Vec3
}

// NewCylinder creates a new capped cylinder. The axis is expected to be unit length.
func NewCylinder(center, axis core.Vec3, radius, height float64) *Cylinder {
	u, v := SurfaceBasis(axis)
	return &Cylinder{
		Center: center,
		Axis:   axis,
		Radius: radius,
		Height: height,
		u:      u,
		v:      v,
	}
}

// Intersect returns the nearest positive hit distance, or NoHit
func (c *Cylinder) Intersect(ray core.Ray) float64 {
	return intersect(c, ray)
}

// IntersectParts finds the nearest hit among the side and both caps within (tMin, tMax)
func (c *Cylinder) IntersectParts(ray core.Ray, tMin, tMax float64) (CylinderHit, bool) {
	best := CylinderHit{T: tMax, Part: -1}
	found := false

	if t, ok := c.intersectSide(ray, tMin, best.T); ok {
		best = CylinderHit{T: t, Part: Side}
		found = true
	}

	halfHeight := c.Height / 2
	caps := []struct {
		center core.Vec3
		part   CylinderPart
	}{
		{c.Center.Add(c.Axis.Multiply(halfHeight)), TopCap},
		{c.Center.Subtract(c.Axis.Multiply(halfHeight)), BottomCap},
	}
	for _, cp := range caps {
		if t, ok := c.intersectCap(ray, cp.center, tMin, best.T); ok {
			best = CylinderHit{T: t, Part: cp.part}
			found = true
		}
	}

	if !found {
		return CylinderHit{T: NoHit, Part: -1}, false
	}
	return best, true
}

// intersectSide solves the infinite side quadratic in the plane perpendicular to the
// axis and keeps the nearest root whose axial offset lies within the height
func (c *Cylinder) intersectSide(ray core.Ray, tMin, tMax float64) (float64, bool) {
	delta := ray.Origin.Subtract(c.Center)
	DV := ray.Direction.Dot(c.Axis) // D · V̂
	deltaV := delta.Dot(c.Axis)     // Δ · V̂

	// a = |D|² - (D·V̂)², b = 2[Δ·D - (Δ·V̂)(D·V̂)], cc = |Δ|² - (Δ·V̂)² - r²
	a := ray.Direction.LengthSquared() - DV*DV
	b := 2.0 * (delta.Dot(ray.Direction) - deltaV*DV)
	cc := delta.LengthSquared() - deltaV*deltaV - c.Radius*c.Radius

	// Ray is parallel to the axis and can only reach the caps
	if math.Abs(a) < 1e-8 {
		return 0, false
	}

	discriminant := b*b - 4*a*cc
	if discriminant < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(discriminant)

	halfHeight := c.Height / 2
	for _, t := range [2]float64{(-b - sqrtD) / (2 * a), (-b + sqrtD) / (2 * a)} {
		if !inRange(t, tMin, tMax) {
			continue
		}
		if math.Abs(deltaV+t*DV) <= halfHeight {
			return t, true
		}
	}
	return 0, false
}

// intersectCap intersects the disk of radius Radius centered at capCenter facing along the axis
func (c *Cylinder) intersectCap(ray core.Ray, capCenter core.Vec3, tMin, tMax float64) (float64, bool) {
	denominator := ray.Direction.Dot(c.Axis)
	if math.Abs(denominator) < 1e-6 {
		return 0, false
	}
	t := capCenter.Subtract(ray.Origin).Dot(c.Axis) / denominator
	if !inRange(t, tMin, tMax) {
		return 0, false
	}
	if ray.At(t).Subtract(capCenter).LengthSquared() > c.Radius*c.Radius {
		return 0, false
	}
	return t, true
}

// Hit tests if a ray intersects with the cylinder
func (c *Cylinder) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	hit, ok := c.IntersectParts(ray, tMin, tMax)
	if !ok {
		return nil, false
	}

	point := ray.At(hit.T)
	rel := point.Subtract(c.Center)
	axial := rel.Dot(c.Axis)
	rec := &HitRecord{
		T:     hit.T,
		Point: point,
		Part:  hit.Part,
	}

	switch hit.Part {
	case Side:
		radial := rel.Subtract(c.Axis.Multiply(axial))
		rec.Normal = radial.Normalize()
		rec.U = (c.angle(radial) + math.Pi) / (2 * math.Pi)
		rec.V = axial/c.Height + 0.5
		rec.Tangent = c.Axis.Cross(rec.Normal).Normalize()
		rec.Bitangent = c.Axis
	case TopCap, BottomCap:
		rec.Normal = c.Axis
		if hit.Part == BottomCap {
			rec.Normal = c.Axis.Negate()
		}
		capRel := rel.Subtract(c.Axis.Multiply(axial))
		rec.U = capRel.Dot(c.u)/(2*c.Radius) + 0.5
		rec.V = capRel.Dot(c.v)/(2*c.Radius) + 0.5
		rec.Tangent = c.u
		rec.Bitangent = c.v
	}
	rec.FrontFace = ray.Direction.Dot(rec.Normal) <= 0

	return rec, true
}

// angle returns the angle of a radial offset around the axis in (-π, π]
func (c *Cylinder) angle(radial core.Vec3) float64 {
	return math.Atan2(radial.Dot(c.v), radial.Dot(c.u))
}

// CheckerTile tiles the side by arc length and axial offset, and the caps in-plane
func (c *Cylinder) CheckerTile(rec *HitRecord, scale float64) int {
	rel := rec.Point.Subtract(c.Center)
	axial := rel.Dot(c.Axis)
	radial := rel.Subtract(c.Axis.Multiply(axial))

	if rec.Part != Side {
		return planarTile(radial, c.u, c.v, scale)
	}

	angle := c.angle(radial)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	iu := int(math.Floor(angle * c.Radius / scale))
	iv := int(math.Floor((axial + c.Height/2) / scale))
	return iu + iv
}
