package parallel

import (
	"bytes"
	"sync/atomic"
	"testing"
)

func cellValue(row, col int, dst []byte) {
	for ch := range dst {
		dst[ch] = byte(row*31 + col*7 + ch)
	}
}

func TestFill_WritesEveryCell(t *testing.T) {
	const w, h, ch = 53, 29, 3
	pix := make([]byte, w*h*ch)

	var calls atomic.Int64
	stats := Fill(pix, w, h, ch, Config{Workers: 4, TileWidth: 8, TileHeight: 8}, func(row, col int, dst []byte) {
		calls.Add(1)
		if len(dst) != ch {
			t.Errorf("len(dst) = %d, want %d", len(dst), ch)
		}
		cellValue(row, col, dst)
	})

	if calls.Load() != w*h {
		t.Errorf("cell calls = %d, want %d", calls.Load(), w*h)
	}
	if stats.Tiles != 7*4 {
		t.Errorf("Stats.Tiles = %d, want %d", stats.Tiles, 7*4)
	}
	if stats.Workers != 4 {
		t.Errorf("Stats.Workers = %d, want 4", stats.Workers)
	}

	for row := range h {
		for col := range w {
			for c := range ch {
				i := (row*w+col)*ch + c
				if want := byte(row*31 + col*7 + c); pix[i] != want {
					t.Fatalf("pix[%d] (row %d col %d ch %d) = %d, want %d", i, row, col, c, pix[i], want)
				}
			}
		}
	}
}

func TestFill_PartitionIndependent(t *testing.T) {
	const w, h = 77, 45
	configs := []Config{
		{Workers: 1, TileWidth: 1, TileHeight: 1},
		{Workers: 1},
		{Workers: 3, TileWidth: w, TileHeight: 1},
		{Workers: 8, TileWidth: 5, TileHeight: 9},
		{},
	}

	want := make([]byte, w*h)
	Fill(want, w, h, 1, configs[0], cellValue)

	for _, cfg := range configs[1:] {
		got := make([]byte, w*h)
		Fill(got, w, h, 1, cfg, cellValue)
		if !bytes.Equal(got, want) {
			t.Errorf("Fill with %+v differs from serial fill", cfg)
		}
	}
}

func TestFill_WorkersCappedByTiles(t *testing.T) {
	pix := make([]byte, 4)
	stats := Fill(pix, 2, 2, 1, Config{Workers: 16}, cellValue)
	if stats.Tiles != 1 || stats.Workers != 1 {
		t.Errorf("Stats = %+v, want 1 tile on 1 worker", stats)
	}
}

func TestFill_EmptyGrid(t *testing.T) {
	called := false
	stats := Fill(nil, 0, 0, 1, Config{}, func(int, int, []byte) { called = true })
	if called {
		t.Error("CellFunc called for empty grid")
	}
	if stats != (Stats{}) {
		t.Errorf("Stats = %+v, want zero", stats)
	}
}

func BenchmarkFill_HD(b *testing.B) {
	const w, h = 1920, 1080
	pix := make([]byte, w*h*3)
	b.ReportAllocs()
	b.SetBytes(int64(len(pix)))
	for b.Loop() {
		Fill(pix, w, h, 3, Config{}, cellValue)
	}
}
