package renderer

import (
	"math"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/scene"
)

// CameraFrame is the viewport basis derived from a scene camera for one image size
type CameraFrame struct {
	Origin          core.Vec3
	Forward         core.Vec3
	Right           core.Vec3
	Up              core.Vec3
	Horizontal      core.Vec3 // Full viewport width along Right
	Vertical        core.Vec3 // Full viewport height along Up
	LowerLeftCorner core.Vec3

	width, height int
}

// BuildCameraFrame derives the orthonormal view basis and viewport corners.
// The FOV spans the viewport width; the height follows from the aspect ratio.
func BuildCameraFrame(cam scene.Camera, width, height int) CameraFrame {
	forward := cam.Direction.Normalize()
	upRef := core.NewVec3(0, 1, 0)
	if math.Abs(forward.Dot(upRef)) > 0.999 {
		upRef = core.NewVec3(0, 0, 1)
	}
	right := forward.Cross(upRef).Normalize()
	up := right.Cross(forward)

	focal := cam.FocalLength
	if focal <= 0 {
		focal = 1
	}
	aspect := float64(width) / float64(height)
	halfWidth := math.Tan(core.DegToRad(cam.FOV)/2) * focal
	halfHeight := halfWidth / aspect

	horizontal := right.Multiply(2 * halfWidth)
	vertical := up.Multiply(2 * halfHeight)
	lowerLeft := cam.Position.
		Add(forward.Multiply(focal)).
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5))

	return CameraFrame{
		Origin:          cam.Position,
		Forward:         forward,
		Right:           right,
		Up:              up,
		Horizontal:      horizontal,
		Vertical:        vertical,
		LowerLeftCorner: lowerLeft,
		width:           width,
		height:          height,
	}
}

// GetRay generates a ray for viewport coordinates (s, t) where 0 <= s,t <= 1
// and t = 0 is the bottom edge
func (f CameraFrame) GetRay(s, t float64) core.Ray {
	sample := f.LowerLeftCorner.
		Add(f.Horizontal.Multiply(s)).
		Add(f.Vertical.Multiply(t))
	return core.NewRay(f.Origin, sample.Subtract(f.Origin).Normalize())
}

// RayForPixel generates the primary ray through the center of pixel (x, y),
// with y = 0 the top row
func (f CameraFrame) RayForPixel(x, y int) core.Ray {
	s := (float64(x) + 0.5) / float64(f.width)
	t := 1 - (float64(y)+0.5)/float64(f.height)
	return f.GetRay(s, t)
}

// Project maps a world point to continuous pixel coordinates. ok is false for
// points on or behind the camera plane.
func (f CameraFrame) Project(p core.Vec3) (x, y float64, ok bool) {
	rel := p.Subtract(f.Origin)
	depth := rel.Dot(f.Forward)
	if depth <= 1e-9 {
		return 0, 0, false
	}

	// Intersect the viewport plane at focal distance along Forward
	focal := f.LowerLeftCorner.Add(f.Horizontal.Multiply(0.5)).Add(f.Vertical.Multiply(0.5)).Subtract(f.Origin).Dot(f.Forward)
	onPlane := rel.Multiply(focal / depth)
	offset := f.Origin.Add(onPlane).Subtract(f.LowerLeftCorner)

	s := offset.Dot(f.Horizontal) / f.Horizontal.LengthSquared()
	t := offset.Dot(f.Vertical) / f.Vertical.LengthSquared()
	return s * float64(f.width), (1 - t) * float64(f.height), true
}

// Size returns the image dimensions the frame was built for
func (f CameraFrame) Size() (width, height int) {
	return f.width, f.height
}
