package fractal

import (
	"fmt"
	"image"
)

// Viewport maps the cells of a Width×Height pixel grid onto a rectangle of
// the complex plane. Row 0 corresponds to YMin and column 0 to XMin; the
// maximum bounds are exclusive.
//
// A Viewport is a plain value and is never modified by this package.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
	Width      int
	Height     int
}

// NewViewport returns a viewport over [xMin, xMax)×[yMin, yMax) sampled on
// a width×height grid. No validation is done here; the render functions
// reject non-positive dimensions.
func NewViewport(xMin, xMax, yMin, yMax float64, width, height int) Viewport {
	return Viewport{
		XMin:   xMin,
		XMax:   xMax,
		YMin:   yMin,
		YMax:   yMax,
		Width:  width,
		Height: height,
	}
}

// DefaultViewport returns the [-2, 2]×[-2, 2] view at the given size.
func DefaultViewport(width, height int) Viewport {
	return NewViewport(-2, 2, -2, 2, width, height)
}

// Validate reports whether the grid dimensions are usable.
func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: viewport size %dx%d must be positive", ErrInvalidArgument, v.Width, v.Height)
	}
	return nil
}

// Transform returns the complex-plane coordinates of the cell at (row, col).
// It depends only on v and its arguments, so concurrent calls from any
// number of goroutines produce identical results.
func (v Viewport) Transform(row, col int) (x, y float64) {
	y = v.YMin + float64(row)*((v.YMax-v.YMin)/float64(v.Height))
	x = v.XMin + float64(col)*((v.XMax-v.XMin)/float64(v.Width))
	return x, y
}

// Point is Transform returned as a complex number x+yi.
func (v Viewport) Point(row, col int) complex128 {
	x, y := v.Transform(row, col)
	return complex(x, y)
}

// Resize returns v sampled on a width×height grid with the same bounds.
func (v Viewport) Resize(width, height int) Viewport {
	v.Width, v.Height = width, height
	return v
}

// Zoom returns the viewport showing only the pixel rectangle sel of v,
// resampled at v's size. An empty selection returns v unchanged.
func (v Viewport) Zoom(sel image.Rectangle) Viewport {
	sel = sel.Canon()
	if sel.Empty() || v.Width <= 0 || v.Height <= 0 {
		return v
	}
	w, h := float64(v.Width), float64(v.Height)
	dx, dy := v.XMax-v.XMin, v.YMax-v.YMin

	return Viewport{
		XMin:   float64(sel.Min.X)/w*dx + v.XMin,
		XMax:   float64(sel.Max.X)/w*dx + v.XMin,
		YMin:   float64(sel.Min.Y)/h*dy + v.YMin,
		YMax:   float64(sel.Max.Y)/h*dy + v.YMin,
		Width:  v.Width,
		Height: v.Height,
	}
}

// Unzoom is the inverse of Zoom: it returns the viewport in which the
// current view occupies the pixel rectangle sel. An empty selection returns
// v unchanged.
func (v Viewport) Unzoom(sel image.Rectangle) Viewport {
	sel = sel.Canon()
	if sel.Empty() || v.Width <= 0 || v.Height <= 0 {
		return v
	}
	w, h := float64(v.Width), float64(v.Height)
	x0, x1 := float64(sel.Min.X), float64(sel.Max.X)
	y0, y1 := float64(sel.Min.Y), float64(sel.Max.Y)

	return Viewport{
		XMin:   (x1*v.XMin - x0*v.XMax) / (x1 - x0),
		XMax:   (x1*v.XMin - x0*v.XMax + w*(v.XMax-v.XMin)) / (x1 - x0),
		YMin:   (y1*v.YMin - y0*v.YMax) / (y1 - y0),
		YMax:   (y1*v.YMin - y0*v.YMax + h*(v.YMax-v.YMin)) / (y1 - y0),
		Width:  v.Width,
		Height: v.Height,
	}
}

// Pan returns v shifted by the given fractions of its width and height.
func (v Viewport) Pan(fx, fy float64) Viewport {
	dx := (v.XMax - v.XMin) * fx
	dy := (v.YMax - v.YMin) * fy
	v.XMin, v.XMax = v.XMin+dx, v.XMax+dx
	v.YMin, v.YMax = v.YMin+dy, v.YMax+dy
	return v
}
