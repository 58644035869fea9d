// Package overlay draws debug annotations on top of rendered frames.
package overlay

import (
	"math"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/renderer"
)

// Axis colors as packed RGBA; negative half-axes use the dimmed variants
const (
	ColorX    uint32 = 0xFF3030FF
	ColorNegX uint32 = 0x801818FF
	ColorY    uint32 = 0x30FF30FF
	ColorNegY uint32 = 0x188018FF
	ColorZ    uint32 = 0x3080FFFF
	ColorNegZ uint32 = 0x184080FF
)

const (
	initialStep  = 1.0  // First distance probed along each axis
	minStep      = 0.01 // Give up when no probe lands on screen above this distance
	maxProbes    = 24
	bisectRounds = 20
	maxOffscreen = 1 << 16 // Origins projected further out than this are not drawn
)

type axis struct {
	dir   core.Vec3
	color uint32
}

var axes = []axis{
	{core.NewVec3(1, 0, 0), ColorX},
	{core.NewVec3(-1, 0, 0), ColorNegX},
	{core.NewVec3(0, 1, 0), ColorY},
	{core.NewVec3(0, -1, 0), ColorNegY},
	{core.NewVec3(0, 0, 1), ColorZ},
	{core.NewVec3(0, 0, -1), ColorNegZ},
}

// DrawAxes draws the six world half-axes from the projected world origin to
// where each leaves the screen. Nothing is drawn when the origin is behind
// the camera.
func DrawAxes(fb *renderer.Framebuffer, frame renderer.CameraFrame) {
	ox, oy, ok := project(frame, core.Vec3{})
	if !ok || abs(ox) > maxOffscreen || abs(oy) > maxOffscreen {
		return
	}
	for _, a := range axes {
		if ex, ey, ok := axisEnd(fb, frame, a.dir); ok {
			DrawLine(fb, ox, oy, ex, ey, a.color)
		}
	}
}

// NewAxesLayer returns a transparent framebuffer with only the axes drawn
func NewAxesLayer(frame renderer.CameraFrame) *renderer.Framebuffer {
	w, h := frame.Size()
	fb := renderer.NewFramebuffer(w, h)
	DrawAxes(fb, frame)
	return fb
}

// axisEnd finds the last on-screen pixel along dir. Probes double while they
// stay on screen and halve until one lands there; the final inside/outside
// pair is then bisected.
func axisEnd(fb *renderer.Framebuffer, frame renderer.CameraFrame, dir core.Vec3) (int, int, bool) {
	step := initialStep
	inside, outside := 0.0, 0.0
	foundInside, foundOutside := false, false
	ex, ey := 0, 0

	for i := 0; i < maxProbes; i++ {
		x, y, ok := project(frame, dir.Multiply(step))
		if ok && onScreen(fb, x, y) {
			inside, ex, ey = step, x, y
			foundInside = true
			step *= 2
			continue
		}
		if foundInside {
			outside, foundOutside = step, true
			break
		}
		step *= 0.5
		if step < minStep {
			break
		}
	}
	if !foundInside {
		return 0, 0, false
	}

	if foundOutside {
		lo, hi := inside, outside
		for i := 0; i < bisectRounds; i++ {
			mid := (lo + hi) * 0.5
			x, y, ok := project(frame, dir.Multiply(mid))
			if ok && onScreen(fb, x, y) {
				ex, ey, lo = x, y, mid
			} else {
				hi = mid
			}
		}
	}
	return ex, ey, true
}

func project(frame renderer.CameraFrame, p core.Vec3) (int, int, bool) {
	x, y, ok := frame.Project(p)
	if !ok {
		return 0, 0, false
	}
	return int(math.Floor(x)), int(math.Floor(y)), true
}

func onScreen(fb *renderer.Framebuffer, x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// DrawLine rasterizes a line with Bresenham's algorithm, skipping pixels
// outside the framebuffer
func DrawLine(fb *renderer.Framebuffer, x0, y0, x1, y1 int, color uint32) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPacked(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
