package material

import (
	"math"

	"github.com/df07/go-minirt/pkg/core"
)

// Material carries the Blinn-Phong specular parameters of a primitive
type Material struct {
	Ks        float64 // Specular coefficient, ≥ 0
	Shininess float64 // Phong exponent, ≥ 0
}

// NewMaterial creates a specular material
func NewMaterial(ks, shininess float64) *Material {
	return &Material{Ks: ks, Shininess: shininess}
}

// Specular returns the Blinn-Phong highlight ks·light·max(0, N·H)^shininess.
// toLight and toView must be unit vectors leaving the surface point.
func (m *Material) Specular(normal, toLight, toView, light core.Vec3) core.Vec3 {
	half := toLight.Add(toView).Normalize()
	intensity := m.Ks * math.Pow(max(0, normal.Dot(half)), m.Shininess)
	return light.Multiply(intensity)
}
