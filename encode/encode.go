// Package encode writes rendered fractal grids to image files.
//
// PNG and JPEG use the standard library encoders, BMP and TIFF use
// golang.org/x/image. The raw format is a small header followed by the grid
// bytes, compressed with zstd; it round-trips a [fractal.Grid] exactly and
// can be read back with [ReadRaw].
package encode

import (
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/fractal"
)

// Errors returned by this package.
var (
	// ErrUnsupportedFormat is returned for unknown format names or file
	// extensions.
	ErrUnsupportedFormat = errors.New("encode: unsupported format")

	// ErrCorrupt is returned when a raw stream has a bad header or is
	// truncated.
	ErrCorrupt = errors.New("encode: corrupt raw data")

	errNilGrid = errors.New("encode: nil grid")
)

// Format is an output file format.
type Format uint8

const (
	// PNG is lossless and the default.
	PNG Format = iota

	// JPEG is lossy; see [JPEGQuality].
	JPEG

	// BMP is uncompressed.
	BMP

	// TIFF is Deflate-compressed with a horizontal predictor.
	TIFF

	// Raw is the zstd-compressed grid dump read by [ReadRaw].
	Raw
)

// JPEGQuality is the quality used for JPEG output.
const JPEGQuality = 90

var formatNames = map[Format]string{
	PNG:  "png",
	JPEG: "jpeg",
	BMP:  "bmp",
	TIFF: "tiff",
	Raw:  "raw",
}

// String returns the format name.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Ext returns the canonical file extension, including the dot.
func (f Format) Ext() string {
	switch f {
	case JPEG:
		return ".jpg"
	case BMP:
		return ".bmp"
	case TIFF:
		return ".tiff"
	case Raw:
		return ".raw.zst"
	default:
		return ".png"
	}
}

// ParseFormat returns the format with the given name. Names are case
// insensitive; "jpg" and "tif" are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tiff", "tif":
		return TIFF, nil
	case "raw", "zst":
		return Raw, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatFromPath picks the format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".raw.zst") {
		return Raw, nil
	}
	ext := strings.TrimPrefix(filepath.Ext(lower), ".")
	if ext == "" {
		return 0, fmt.Errorf("%w: no extension in %q", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Write encodes grid to w in the given format.
func Write(w io.Writer, grid *fractal.Grid, format Format) error {
	if grid == nil {
		return errNilGrid
	}

	switch format {
	case PNG:
		if err := png.Encode(w, grid.Image()); err != nil {
			return fmt.Errorf("encode: PNG: %w", err)
		}
	case JPEG:
		if err := jpeg.Encode(w, grid.Image(), &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return fmt.Errorf("encode: JPEG: %w", err)
		}
	case BMP:
		if err := bmp.Encode(w, grid.Image()); err != nil {
			return fmt.Errorf("encode: BMP: %w", err)
		}
	case TIFF:
		opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
		if err := tiff.Encode(w, grid.Image(), opts); err != nil {
			return fmt.Errorf("encode: TIFF: %w", err)
		}
	case Raw:
		return writeRaw(w, grid)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	return nil
}

// Save writes grid to path, choosing the format from the file extension.
// The file is created or truncated.
func Save(path string, grid *fractal.Grid) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	return SaveAs(path, grid, format)
}

// SaveAs writes grid to path in the given format regardless of the
// extension.
func SaveAs(path string, grid *fractal.Grid, format Format) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("encode: create file: %w", err)
	}

	if err := Write(f, grid, format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
