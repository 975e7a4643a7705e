// Package parallel provides the tile-parallel grid evaluator used by the
// fractal renderers.
//
// An output grid is cut into rectangular tiles (64x64 by default) that are
// dealt to a work-stealing WorkerPool. Every cell belongs to exactly one
// tile, so workers write disjoint bytes of the shared output buffer and need
// no locking. Because each cell value depends only on its own coordinates,
// the tile size and worker count change scheduling but never the result.
package parallel

// Default tile dimensions.
const (
	// TileWidth is the default tile width in cells.
	TileWidth = 64

	// TileHeight is the default tile height in cells.
	TileHeight = 64
)

// Tile is a rectangular block of grid cells. Tiles returned by Split never
// overlap and together cover the whole grid, so a tile is the unit of work
// handed to one worker.
type Tile struct {
	// X and Y are the column and row of the tile's top-left cell.
	X, Y int

	// Width and Height are the tile size in cells. Tiles on the right and
	// bottom edge are smaller when the grid is not evenly divisible.
	Width, Height int
}

// Contains reports whether the cell at (row, col) lies inside t.
func (t Tile) Contains(row, col int) bool {
	return col >= t.X && col < t.X+t.Width &&
		row >= t.Y && row < t.Y+t.Height
}

// Cells returns the number of cells in t.
func (t Tile) Cells() int {
	return t.Width * t.Height
}

// Split cuts a width×height grid into tiles of at most tileW×tileH cells,
// in row-major order. Non-positive tile dimensions select the defaults.
// It returns nil for an empty grid.
func Split(width, height, tileW, tileH int) []Tile {
	if width <= 0 || height <= 0 {
		return nil
	}
	if tileW <= 0 {
		tileW = TileWidth
	}
	if tileH <= 0 {
		tileH = TileHeight
	}

	cols := (width + tileW - 1) / tileW
	rows := (height + tileH - 1) / tileH
	tiles := make([]Tile, 0, cols*rows)

	for y := 0; y < height; y += tileH {
		th := min(tileH, height-y)
		for x := 0; x < width; x += tileW {
			tiles = append(tiles, Tile{
				X:      x,
				Y:      y,
				Width:  min(tileW, width-x),
				Height: th,
			})
		}
	}
	return tiles
}
