package parallel

import "runtime"

// CellFunc computes the value of one grid cell and writes it into dst,
// which holds exactly one cell's channels. It must not retain dst and must
// be safe to call from several goroutines at once.
type CellFunc func(row, col int, dst []byte)

// Config controls how Fill partitions the work. The zero value uses
// GOMAXPROCS workers and 64x64 tiles.
type Config struct {
	// Workers is the number of goroutines. Zero or negative uses
	// GOMAXPROCS; it is also capped at the number of tiles.
	Workers int

	// TileWidth and TileHeight are the tile size in cells. Zero or
	// negative selects TileWidth and TileHeight.
	TileWidth  int
	TileHeight int
}

// Stats describes how a Fill call was partitioned.
type Stats struct {
	// Tiles is the number of tiles the grid was cut into.
	Tiles int

	// Workers is the number of goroutines that shared them.
	Workers int
}

// Fill calls fn once for every cell of a row-major width×height grid with
// the given number of channels per cell, passing the cell's slice of pix.
// pix must hold at least width*height*channels bytes. Fill returns after
// every cell has been written.
func Fill(pix []byte, width, height, channels int, cfg Config, fn CellFunc) Stats {
	tiles := Split(width, height, cfg.TileWidth, cfg.TileHeight)
	if len(tiles) == 0 {
		return Stats{}
	}

	pool := NewWorkerPool(min(workerCount(cfg.Workers), len(tiles)))
	defer pool.Close()

	stride := width * channels
	jobs := make([]func(), len(tiles))
	for i, t := range tiles {
		jobs[i] = func() {
			for row := t.Y; row < t.Y+t.Height; row++ {
				line := pix[row*stride : (row+1)*stride]
				for col := t.X; col < t.X+t.Width; col++ {
					off := col * channels
					fn(row, col, line[off:off+channels:off+channels])
				}
			}
		}
	}
	pool.ExecuteAll(jobs)

	return Stats{Tiles: len(tiles), Workers: pool.Workers()}
}

func workerCount(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}
