package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	HitPixels   int           // Pixels whose primary ray hit a primitive
	Tiles       int           // Number of tiles rendered
	Workers     int           // Worker goroutines used
	Duration    time.Duration // Wall time of the pass
}

// merge folds tile statistics into the pass totals
func (s *RenderStats) merge(tile RenderStats) {
	s.TotalPixels += tile.TotalPixels
	s.HitPixels += tile.HitPixels
	s.Tiles += tile.Tiles
}

// Coverage returns the fraction of pixels that hit geometry
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}
