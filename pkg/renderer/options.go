package renderer

import "runtime"

// Options controls a render pass
type Options struct {
	Width    int  // Image width in pixels
	Height   int  // Image height in pixels
	Workers  int  // Parallel tile workers; <= 0 means one per CPU
	TileSize int  // Tile edge length in pixels; <= 0 uses the default
	Normals  bool // Render surface normals instead of shading
}

const defaultTileSize = 32

// DefaultOptions returns an 800x600 render using every CPU
func DefaultOptions() Options {
	return Options{
		Width:    800,
		Height:   600,
		Workers:  runtime.NumCPU(),
		TileSize: defaultTileSize,
	}
}

// normalized fills zero values with defaults
func (o Options) normalized() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.TileSize <= 0 {
		o.TileSize = defaultTileSize
	}
	return o
}
