package fractal

import (
	"maps"
	"slices"
)

// Bounds is a rectangle of the complex plane.
type Bounds struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`
}

// Viewport samples b on a width×height grid.
func (b Bounds) Viewport(width, height int) Viewport {
	return NewViewport(b.XMin, b.XMax, b.YMin, b.YMax, width, height)
}

// Regions holds well-known landmarks of the Mandelbrot set by name.
// "default" is the full [-2, 2]×[-2, 2] view.
var Regions = map[string]Bounds{
	"default": {XMin: -2, XMax: 2, YMin: -2, YMax: 2},

	// Dense filaments and repeating curls.
	"seahorse-valley": {XMin: -0.8, XMax: -0.7, YMin: 0.05, YMax: 0.15},

	// Large bulb with trunk-like tendrils.
	"elephant-valley": {XMin: -1.85, XMax: -1.75, YMin: -0.10, YMax: -0.02},

	"spiral-minibrot": {XMin: -0.7435, XMax: -0.7420, YMin: 0.1310, YMax: 0.1325},
	"triple-spiral":   {XMin: -0.7480, XMax: -0.7450, YMin: 0.0950, YMax: 0.0980},

	"valley-of-the-dragon":    {XMin: -0.7400, XMax: -0.7350, YMin: 0.1800, YMax: 0.1850},
	"minibrot-in-mini-spiral": {XMin: -1.7390, XMax: -1.7375, YMin: -0.0235, YMax: -0.0220},
}

// RegionNames returns the keys of Regions in sorted order.
func RegionNames() []string {
	return slices.Sorted(maps.Keys(Regions))
}
