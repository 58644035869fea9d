package geometry

import (
	"math"

	"github.com/df07/go-minirt/pkg/core"
)

// ParaboloidKind selects the sign of the first quadric term
type ParaboloidKind int

const (
	// Elliptic is the bowl x²/rx² + y²/ry² = z/h
	Elliptic ParaboloidKind = iota
	// Hyperbolic is the saddle y²/ry² - x²/rx² = z/h
	Hyperbolic
)

const (
	paraboloidRimTolerance    = 1e-4
	paraboloidHeightTolerance = 2e-4
)

// Paraboloid is a quadric opening along Axis from Center, clipped to |z| ≤ Height
// and to the unit ellipse x²/rx² + y²/ry² ≤ 1 in its local (U, V, Axis) frame.
type Paraboloid struct {
	Center core.Vec3
	Axis   core.Vec3
	U, V   core.Vec3
	RX, RY float64
	Height float64
	Kind   ParaboloidKind

	invRX2, invRY2, invH float64
	sx                   float64 // +1 elliptic, -1 hyperbolic
}

// NewParaboloid creates a paraboloid. The axis is expected to be unit length.
func NewParaboloid(center, axis core.Vec3, rx, ry, height float64, kind ParaboloidKind) *Paraboloid {
	u, v := SurfaceBasis(axis)
	p := &Paraboloid{
		Center: center,
		Axis:   axis,
		U:      u,
		V:      v,
		RX:     rx,
		RY:     ry,
		Height: height,
		Kind:   kind,
		invRX2: 1 / (rx * rx),
		invRY2: 1 / (ry * ry),
		invH:   1 / height,
		sx:     1,
	}
	if kind == Hyperbolic {
		p.sx = -1
	}
	return p
}

// Local maps a world point into the paraboloid frame
func (p *Paraboloid) Local(point core.Vec3) core.Vec3 {
	rel := point.Subtract(p.Center)
	return core.NewVec3(rel.Dot(p.U), rel.Dot(p.V), rel.Dot(p.Axis))
}

// Implicit evaluates sx·x²/rx² + y²/ry² - z/h at a world point; zero on the surface
func (p *Paraboloid) Implicit(point core.Vec3) float64 {
	l := p.Local(point)
	return p.sx*l.X*l.X*p.invRX2 + l.Y*l.Y*p.invRY2 - l.Z*p.invH
}

// Intersect returns the nearest positive hit distance, or NoHit
func (p *Paraboloid) Intersect(ray core.Ray) float64 {
	return intersect(p, ray)
}

// inside reports whether a local point lies within the clip region
func (p *Paraboloid) inside(l core.Vec3) bool {
	rim := l.X*l.X*p.invRX2 + l.Y*l.Y*p.invRY2
	return rim <= 1+paraboloidRimTolerance && math.Abs(l.Z) <= p.Height+paraboloidHeightTolerance
}

// Hit tests if a ray intersects with the paraboloid
func (p *Paraboloid) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	o := p.Local(ray.Origin)
	d := core.NewVec3(ray.Direction.Dot(p.U), ray.Direction.Dot(p.V), ray.Direction.Dot(p.Axis))

	a := p.sx*d.X*d.X*p.invRX2 + d.Y*d.Y*p.invRY2
	b := 2*(p.sx*o.X*d.X*p.invRX2+o.Y*d.Y*p.invRY2) - d.Z*p.invH
	c := p.sx*o.X*o.X*p.invRX2 + o.Y*o.Y*p.invRY2 - o.Z*p.invH

	var roots []float64
	if math.Abs(a) < 1e-8 {
		if math.Abs(b) < 1e-8 {
			return nil, false
		}
		roots = []float64{-c / b}
	} else {
		discriminant := b*b - 4*a*c
		if discriminant < 0 {
			return nil, false
		}
		sqrtD := math.Sqrt(discriminant)
		t0 := (-b - sqrtD) / (2 * a)
		t1 := (-b + sqrtD) / (2 * a)
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		roots = []float64{t0, t1}
	}

	for _, t := range roots {
		if !inRange(t, tMin, tMax) {
			continue
		}
		l := o.Add(d.Multiply(t))
		if !p.inside(l) {
			continue
		}
		return p.record(ray, t, l), true
	}
	return nil, false
}

func (p *Paraboloid) record(ray core.Ray, t float64, l core.Vec3) *HitRecord {
	// Gradient of the implicit surface in local coordinates, mapped back to world
	gx := 2 * p.sx * l.X * p.invRX2
	gy := 2 * l.Y * p.invRY2
	gz := -p.invH
	normal := p.U.Multiply(gx).Add(p.V.Multiply(gy)).Add(p.Axis.Multiply(gz)).Normalize()

	return &HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    normal,
		FrontFace: ray.Direction.Dot(normal) <= 0,
		U:         l.X/p.RX*0.5 + 0.5,
		V:         l.Y/p.RY*0.5 + 0.5,
		Tangent:   p.U,
		Bitangent: p.V,
	}
}

// CheckerTile tiles the paraboloid by its projected local x and y
func (p *Paraboloid) CheckerTile(rec *HitRecord, scale float64) int {
	l := p.Local(rec.Point)
	return int(math.Floor(l.X/scale)) + int(math.Floor(l.Y/scale))
}
