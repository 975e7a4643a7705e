package fractal

import (
	"log/slog"

	"github.com/gogpu/fractal/internal/parallel"
)

// cellFunc writes the value of the cell at (row, col) into dst.
type cellFunc = parallel.CellFunc

// fill allocates the output grid for vp and evaluates cell for every cell
// in parallel. All parameters must have been validated by the caller.
func fill(kind string, vp Viewport, format Format, opts []RenderOption, cell cellFunc) (*Grid, error) {
	grid, err := NewGrid(vp.Width, vp.Height, format)
	if err != nil {
		return nil, err
	}

	o := applyRenderOptions(opts)
	stats := parallel.Fill(grid.Pix, grid.Width, grid.Height, grid.Channels(), parallel.Config{
		Workers:    o.workers,
		TileWidth:  o.tileWidth,
		TileHeight: o.tileHeight,
	}, cell)

	Logger().Debug("fractal: rendered",
		slog.String("kind", kind),
		slog.Int("width", grid.Width),
		slog.Int("height", grid.Height),
		slog.String("format", format.String()),
		slog.Int("tiles", stats.Tiles),
		slog.Int("workers", stats.Workers))

	return grid, nil
}

// validateIters rejects negative iteration budgets.
func validateIters(maxIters int) error {
	if maxIters < 0 {
		return invalidf("max iterations %d must not be negative", maxIters)
	}
	return nil
}
