package encode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/fractal"
)

// Raw stream layout, before compression:
//
//	magic    [4]byte  "FRAC"
//	width    uint32   little endian
//	height   uint32   little endian
//	channels uint8    1 (gray8) or 3 (rgb8)
//	pix      width*height*channels bytes
var rawMagic = [4]byte{'F', 'R', 'A', 'C'}

// maxRawBytes bounds the pixel buffer ReadRaw will allocate.
const maxRawBytes = 1 << 30

type rawHeader struct {
	Magic    [4]byte
	Width    uint32
	Height   uint32
	Channels uint8
}

func writeRaw(w io.Writer, grid *fractal.Grid) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("encode: raw: %w", err)
	}

	hdr := rawHeader{
		Magic:    rawMagic,
		Width:    uint32(grid.Width),
		Height:   uint32(grid.Height),
		Channels: uint8(grid.Channels()),
	}
	if err := binary.Write(enc, binary.LittleEndian, hdr); err != nil {
		_ = enc.Close()
		return fmt.Errorf("encode: raw header: %w", err)
	}
	if _, err := enc.Write(grid.Pix); err != nil {
		_ = enc.Close()
		return fmt.Errorf("encode: raw pixels: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode: raw: %w", err)
	}
	return nil
}

// ReadRaw decodes a grid written in the [Raw] format.
func ReadRaw(r io.Reader) (*fractal.Grid, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("encode: raw: %w", err)
	}
	defer dec.Close()

	var hdr rawHeader
	if err := binary.Read(dec, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	if hdr.Magic != rawMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, hdr.Magic[:])
	}

	var format fractal.Format
	switch hdr.Channels {
	case 1:
		format = fractal.FormatGray8
	case 3:
		format = fractal.FormatRGB8
	default:
		return nil, fmt.Errorf("%w: %d channels", ErrCorrupt, hdr.Channels)
	}

	size := uint64(hdr.Width) * uint64(hdr.Height) * uint64(hdr.Channels)
	if size == 0 || size > maxRawBytes {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrCorrupt, hdr.Width, hdr.Height)
	}

	grid, err := fractal.NewGrid(int(hdr.Width), int(hdr.Height), format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if _, err := io.ReadFull(dec, grid.Pix); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: truncated pixel data", ErrCorrupt)
		}
		return nil, fmt.Errorf("encode: raw pixels: %w", err)
	}
	return grid, nil
}

// LoadRaw reads a raw grid from the file at path.
func LoadRaw(path string) (*fractal.Grid, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("encode: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadRaw(f)
}
