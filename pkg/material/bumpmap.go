package material

import (
	"math"
	"sync/atomic"

	"github.com/df07/go-minirt/pkg/core"
)

// BumpMap is a grayscale height field used to perturb shading normals.
// A map may be shared by several primitives; each owner holds one reference.
type BumpMap struct {
	Width   int
	Height  int
	Heights []float64 // Row-major: Heights[y*Width + x], values in [0, 1]

	refs atomic.Int32
}

// NewBumpMap creates a height field with a single owner
func NewBumpMap(width, height int, heights []float64) *BumpMap {
	b := &BumpMap{
		Width:   width,
		Height:  height,
		Heights: heights,
	}
	b.refs.Store(1)
	return b
}

// Retain registers another owner and returns the map
func (b *BumpMap) Retain() *BumpMap {
	b.refs.Add(1)
	return b
}

// Release drops one owner. The height data is freed when the last owner
// releases, and Release reports true exactly once, at that point.
func (b *BumpMap) Release() bool {
	n := b.refs.Add(-1)
	if n < 0 {
		panic("material: bump map released more times than retained")
	}
	if n == 0 {
		b.Heights = nil
		return true
	}
	return false
}

// Owners returns the number of outstanding references
func (b *BumpMap) Owners() int {
	return int(b.refs.Load())
}

// Sample returns the height at (u, v) using nearest-neighbor lookup with wrapping.
// An empty map reads as a flat 0.5.
func (b *BumpMap) Sample(u, v float64) float64 {
	if b.Width <= 0 || b.Height <= 0 || len(b.Heights) < b.Width*b.Height {
		return 0.5
	}

	// Wrap UV coordinates to [0, 1)
	u -= math.Floor(u)
	v -= math.Floor(v)

	x := min(b.Width-1, max(0, int(math.Floor(u*float64(b.Width)))))
	y := min(b.Height-1, max(0, int(math.Floor(v*float64(b.Height)))))
	return b.Heights[y*b.Width+x]
}

// Perturb tilts normal along the tangent frame by the forward-difference height
// gradient at (u, v), scaled by strength, and re-normalizes
func (b *BumpMap) Perturb(normal, tangent, bitangent core.Vec3, u, v, strength float64) core.Vec3 {
	if b.Width <= 0 || b.Height <= 0 {
		return normal
	}
	du := 1.0 / float64(b.Width)
	dv := 1.0 / float64(b.Height)

	hc := b.Sample(u, v)
	hu := b.Sample(u+du, v)
	hv := b.Sample(u, v+dv)

	gradU := -(hu - hc) / (du + 1e-6)
	gradV := -(hv - hc) / (dv + 1e-6)

	offset := tangent.Multiply(gradU).Add(bitangent.Multiply(gradV)).Multiply(strength)
	perturbed := normal.Add(offset).Normalize()
	if perturbed == (core.Vec3{}) {
		return normal
	}
	return perturbed
}
