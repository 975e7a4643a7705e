package fractal

import (
	"fmt"
	"image"
)

// Format is the pixel layout of a Grid.
type Format uint8

const (
	// FormatGray8 stores one byte per cell.
	FormatGray8 Format = iota

	// FormatRGB8 stores three bytes per cell in R, G, B order.
	FormatRGB8
)

// Channels returns the number of bytes per cell.
func (f Format) Channels() int {
	switch f {
	case FormatGray8:
		return 1
	case FormatRGB8:
		return 3
	default:
		return 0
	}
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "gray8"
	case FormatRGB8:
		return "rgb8"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// Grid is the output of a render: Height rows of Width cells, row-major,
// with the channel index varying fastest. Cells start zeroed (black).
type Grid struct {
	Width  int
	Height int
	Format Format
	Pix    []byte
}

// NewGrid allocates a zeroed grid.
func NewGrid(width, height int, format Format) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid size %dx%d must be positive", ErrInvalidArgument, width, height)
	}
	ch := format.Channels()
	if ch == 0 {
		return nil, fmt.Errorf("%w: unknown grid format %v", ErrInvalidArgument, format)
	}
	return &Grid{
		Width:  width,
		Height: height,
		Format: format,
		Pix:    make([]byte, width*height*ch),
	}, nil
}

// Channels returns the number of bytes per cell.
func (g *Grid) Channels() int {
	return g.Format.Channels()
}

// Stride returns the number of bytes per row.
func (g *Grid) Stride() int {
	return g.Width * g.Channels()
}

// At returns the bytes of the cell at (row, col). The slice aliases Pix.
// It returns nil for coordinates outside the grid.
func (g *Grid) At(row, col int) []byte {
	if row < 0 || row >= g.Height || col < 0 || col >= g.Width {
		return nil
	}
	ch := g.Channels()
	off := row*g.Stride() + col*ch
	return g.Pix[off : off+ch : off+ch]
}

// Image converts the grid to a standard library image: *image.Gray for
// grayscale grids and an opaque *image.RGBA for color grids. The pixel data
// is copied.
func (g *Grid) Image() image.Image {
	bounds := image.Rect(0, 0, g.Width, g.Height)

	switch g.Format {
	case FormatGray8:
		img := image.NewGray(bounds)
		copy(img.Pix, g.Pix)
		return img
	default:
		img := image.NewRGBA(bounds)
		for i, j := 0, 0; i+2 < len(g.Pix); i, j = i+3, j+4 {
			img.Pix[j+0] = g.Pix[i+0]
			img.Pix[j+1] = g.Pix[i+1]
			img.Pix[j+2] = g.Pix[i+2]
			img.Pix[j+3] = 0xff
		}
		return img
	}
}
