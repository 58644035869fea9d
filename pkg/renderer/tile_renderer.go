package renderer

import (
	"image"

	"github.com/df07/go-minirt/pkg/integrator"
	"github.com/df07/go-minirt/pkg/scene"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, in row-major order
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// TileRenderer traces the primary rays of a tile with an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	frame      CameraFrame
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(sc *scene.Scene, integ integrator.Integrator, frame CameraFrame) *TileRenderer {
	return &TileRenderer{
		scene:      sc,
		integrator: integ,
		frame:      frame,
	}
}

// RenderTileBounds renders pixels within bounds into fb. Tiles are disjoint, so
// concurrent calls for different bounds never write the same pixel.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, fb *Framebuffer) RenderStats {
	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		Tiles:       1,
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			color, hit := tr.integrator.RayColor(tr.frame.RayForPixel(x, y), tr.scene)
			fb.Set(x, y, color)
			if hit {
				stats.HitPixels++
			}
		}
	}

	return stats
}
