package material

import "github.com/df07/go-minirt/pkg/core"

// Checker alternates a base color with its complement on a tiled parameterization
type Checker struct {
	Scale float64 // World-space tile size
}

// NewChecker creates a checker pattern with the given tile size
func NewChecker(scale float64) *Checker {
	return &Checker{Scale: scale}
}

// Color picks the base color on even tiles and 1 - base on odd tiles
func (c *Checker) Color(base core.Vec3, tile int) core.Vec3 {
	if tile&1 == 0 {
		return base
	}
	return base.Complement()
}
