package renderer

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/df07/go-minirt/pkg/core"
)

// Framebuffer stores pixels packed as R<<24 | G<<16 | B<<8 | A, row-major from the top row.
// It implements image.Image so it can be encoded or scaled directly.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []uint32
}

// NewFramebuffer allocates a black, fully transparent framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
}

// channelByte clamps to [0,1] and rounds to the nearest 8-bit value
func channelByte(v float64) uint32 {
	v = max(0, min(1, v))
	return uint32(v*255 + 0.5)
}

// PackRGBA converts a linear color into a fully opaque packed pixel
func PackRGBA(c core.Vec3) uint32 {
	return channelByte(c.X)<<24 | channelByte(c.Y)<<16 | channelByte(c.Z)<<8 | 0xFF
}

// UnpackRGBA splits a packed pixel into its channels
func UnpackRGBA(p uint32) color.RGBA {
	return color.RGBA{R: uint8(p >> 24), G: uint8(p >> 16), B: uint8(p >> 8), A: uint8(p)}
}

// Set writes color c to pixel (x, y)
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.Pixels[y*fb.Width+x] = PackRGBA(c)
}

// SetPacked writes an already packed pixel, ignoring coordinates outside the buffer
func (fb *Framebuffer) SetPacked(x, y int, p uint32) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = p
}

// Pixel returns the packed value of pixel (x, y)
func (fb *Framebuffer) Pixel(x, y int) uint32 {
	return fb.Pixels[y*fb.Width+x]
}

// ColorModel implements image.Image
func (fb *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// At implements image.Image
func (fb *Framebuffer) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return color.RGBA{}
	}
	return UnpackRGBA(fb.Pixel(x, y))
}

// Clone returns a deep copy
func (fb *Framebuffer) Clone() *Framebuffer {
	out := NewFramebuffer(fb.Width, fb.Height)
	copy(out.Pixels, fb.Pixels)
	return out
}

// ToImage converts the framebuffer into an *image.RGBA
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, UnpackRGBA(fb.Pixel(x, y)))
		}
	}
	return img
}

// Scaled resamples the framebuffer to width x height. Smooth selects Catmull-Rom
// filtering; otherwise nearest-neighbor keeps hard pixel edges.
func (fb *Framebuffer) Scaled(width, height int, smooth bool) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	var scaler xdraw.Scaler = xdraw.NearestNeighbor
	if smooth {
		scaler = xdraw.CatmullRom
	}
	scaler.Scale(dst, dst.Bounds(), fb.ToImage(), fb.Bounds(), xdraw.Src, nil)
	return dst
}
