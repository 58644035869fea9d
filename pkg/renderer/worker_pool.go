package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int // Index into the result slice
}

// WorkerPool renders tiles in parallel with a fixed number of workers
type WorkerPool struct {
	renderer   *TileRenderer
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(renderer *TileRenderer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		renderer:   renderer,
		numWorkers: numWorkers,
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders every tile into fb and returns the merged statistics. Cancelling
// ctx stops workers before their next tile; the framebuffer is then incomplete.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, fb *Framebuffer) (RenderStats, error) {
	g, ctx := errgroup.WithContext(ctx)
	tasks := make(chan TileTask)
	results := make([]RenderStats, len(tiles))

	g.Go(func() error {
		defer close(tasks)
		for i, tile := range tiles {
			select {
			case tasks <- TileTask{Tile: tile, TaskID: i}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	workers := min(wp.numWorkers, max(1, len(tiles)))
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for task := range tasks {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[task.TaskID] = wp.renderer.RenderTileBounds(task.Tile.Bounds, fb)
			}
			return nil
		})
	}

	err := g.Wait()

	stats := RenderStats{Workers: workers}
	for _, r := range results {
		stats.merge(r)
	}
	return stats, err
}
