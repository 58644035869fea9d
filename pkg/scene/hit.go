package scene

import (
	"math"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/geometry"
)

// Unbounded is the maximum distance used for primary rays
var Unbounded = math.Inf(1)

// Hit is the resolved result of a ray-scene query
type Hit struct {
	Found     bool
	T         float64
	Point     core.Vec3
	Normal    core.Vec3 // Oriented against the incoming ray
	Albedo    core.Vec3
	Specular  core.Vec3 // Zero when the primitive has no material
	Primitive *Primitive
}

// Hit finds the nearest primitive with core.Epsilon < t < maxDistance and
// resolves its surface properties. Equal distances resolve to the primitive
// added first. A zero Hit with Found false is returned on a miss.
func (s *Scene) Hit(ray core.Ray, maxDistance float64) Hit {
	var (
		best    *geometry.HitRecord
		winner  *Primitive
		closest = maxDistance
	)
	for _, p := range s.Primitives {
		rec, ok := p.Shape.Hit(ray, core.Epsilon, closest)
		if !ok {
			continue
		}
		best = rec
		winner = p
		closest = rec.T
	}
	if winner == nil {
		return Hit{}
	}
	return s.resolve(ray, winner, best)
}

// Occluded reports whether any primitive lies on the ray within maxDistance
func (s *Scene) Occluded(ray core.Ray, maxDistance float64) bool {
	for _, p := range s.Primitives {
		if _, ok := p.Shape.Hit(ray, core.Epsilon, maxDistance); ok {
			return true
		}
	}
	return false
}

// resolve computes albedo, the perturbed and oriented normal, and the
// specular highlight for the winning primitive
func (s *Scene) resolve(ray core.Ray, p *Primitive, rec *geometry.HitRecord) Hit {
	hit := Hit{
		Found:     true,
		T:         rec.T,
		Point:     rec.Point,
		Albedo:    p.Color,
		Primitive: p,
	}

	if p.Checker != nil {
		hit.Albedo = p.Checker.Color(p.Color, p.Shape.CheckerTile(rec, p.Checker.Scale))
	}

	normal := rec.Normal
	if p.Bump != nil {
		normal = p.Bump.Perturb(normal, rec.Tangent, rec.Bitangent, rec.U, rec.V, p.BumpStrength)
	}

	rec.SetFaceNormal(ray, normal)
	hit.Normal = rec.Normal

	if p.Material != nil && s.Light.Present {
		toLight := s.Light.Position.Subtract(hit.Point).Normalize()
		toView := s.Camera.Position.Subtract(hit.Point).Normalize()
		hit.Specular = p.Material.Specular(hit.Normal, toLight, toView, s.Light.Radiance())
	}

	return hit
}
