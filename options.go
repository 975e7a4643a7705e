package fractal

import "github.com/gogpu/fractal/internal/parallel"

// RenderOption configures how a render is partitioned across goroutines.
// Options affect scheduling only; the output bytes are the same for every
// combination.
//
// Example:
//
//	// Single-threaded render, one row per tile
//	grid, err := fractal.RenderMandelbrot(vp, 100, 2, 16,
//	    fractal.WithWorkers(1), fractal.WithTileSize(vp.Width, 1))
type RenderOption func(*renderOptions)

type renderOptions struct {
	workers    int
	tileWidth  int
	tileHeight int
}

func defaultRenderOptions() renderOptions {
	return renderOptions{
		workers:    0, // GOMAXPROCS
		tileWidth:  parallel.TileWidth,
		tileHeight: parallel.TileHeight,
	}
}

func applyRenderOptions(opts []RenderOption) renderOptions {
	o := defaultRenderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithWorkers sets the number of worker goroutines.
// Zero or a negative value uses GOMAXPROCS.
func WithWorkers(n int) RenderOption {
	return func(o *renderOptions) {
		o.workers = n
	}
}

// WithTileSize sets the size of the blocks of cells handed to workers.
// Non-positive dimensions keep the 64x64 default.
func WithTileSize(width, height int) RenderOption {
	return func(o *renderOptions) {
		if width > 0 {
			o.tileWidth = width
		}
		if height > 0 {
			o.tileHeight = height
		}
	}
}
