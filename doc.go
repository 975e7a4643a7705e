// Package fractal renders escape-time and root-attraction fractals onto
// pixel grids.
//
// # Overview
//
// fractal is a Pure Go rendering engine for Mandelbrot-type and Newton-type
// fractals. Every render maps a pixel grid onto a rectangle of the complex
// plane, runs a per-pixel iteration and writes either a banded gray shade or
// a hue-mapped RGB color. Cells are computed independently on a pool of
// goroutines; the output depends only on the inputs, never on scheduling.
//
// # Quick Start
//
//	import "github.com/gogpu/fractal"
//
//	vp := fractal.DefaultViewport(800, 800)
//
//	// Banded grayscale Mandelbrot, 16 shades
//	gray, err := fractal.RenderMandelbrot(vp, 256, 2, 16)
//
//	// Newton fractal of z³ - 1, colored red to magenta
//	roots := fractal.RootsOfUnity(3)
//	rgb, err := fractal.RenderNewton(vp, roots, 64, 0.01, fractal.DefaultColorSettings())
//
// The returned [Grid] holds raw bytes; [Grid.Image] converts it to an
// image.Image and the encode package writes it to PNG, BMP, TIFF or a
// compressed raw dump.
//
// # Coordinate System
//
//   - Row 0, column 0 maps to (XMin, YMin)
//   - Columns increase along the real axis
//   - Rows increase along the imaginary axis
//   - XMax and YMax are exclusive
//
// # Errors
//
// Invalid parameters (non-positive grid size, zero shades, saturation
// outside [0, 1], an empty root set, a negative iteration budget) are
// rejected before any pixel is computed with an error wrapping
// [ErrInvalidArgument]. Interior points and diverging Newton iterates are
// not errors; they are rendered black.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Viewport, ColorSettings, Grid, the Render functions
//   - poly: generic polynomial algebra used to build Newton iterations
//   - internal/parallel: tiling and the work-stealing worker pool
//   - encode: image file output
package fractal

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
