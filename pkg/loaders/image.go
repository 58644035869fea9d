package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-minirt/pkg/material"
)

// LoadBumpMap loads a PNG or JPEG image as a height field. Each height is the
// mean of the 8-bit red, green and blue channels, scaled to [0,1].
func LoadBumpMap(filename string) (*material.BumpMap, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open bump map: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrBumpDecode, filename, err)
	}

	return BumpMapFromImage(img), nil
}

// BumpMapFromImage converts a decoded image into a row-major height field
func BumpMapFromImage(img image.Image) *material.BumpMap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	heights := make([]float64, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns 16-bit channels; keep the high byte
			sum := float64(r>>8) + float64(g>>8) + float64(b>>8)
			heights[y*width+x] = sum / (3 * 255)
		}
	}

	return material.NewBumpMap(width, height, heights)
}
