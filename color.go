package fractal

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB8 is an opaque 8-bit-per-channel color.
type RGB8 struct {
	R, G, B uint8
}

// RGBA converts c to the standard library color type with full alpha.
func (c RGB8) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// ColorSettings maps a normalized value in [0, 1] to a color by sweeping
// the hue from FromAngle to ToAngle (degrees) at a fixed Saturation and
// full brightness. ToAngle may be smaller than FromAngle, in which case the
// sweep runs backwards; angles need not lie in [0, 360).
type ColorSettings struct {
	FromAngle  float64
	ToAngle    float64
	Saturation float64
}

// NewColorSettings returns color settings for a hue sweep from fromAngle to
// toAngle at the given saturation.
func NewColorSettings(fromAngle, toAngle, saturation float64) ColorSettings {
	return ColorSettings{
		FromAngle:  fromAngle,
		ToAngle:    toAngle,
		Saturation: saturation,
	}
}

// DefaultColorSettings sweeps from red (0°) to magenta (300°) at full
// saturation.
func DefaultColorSettings() ColorSettings {
	return NewColorSettings(0, 300, 1)
}

// Validate checks that the saturation lies in [0, 1].
func (cs ColorSettings) Validate() error {
	if !(cs.Saturation >= 0 && cs.Saturation <= 1) {
		return fmt.Errorf("%w: saturation %v outside [0, 1]", ErrInvalidArgument, cs.Saturation)
	}
	return nil
}

// HueInDegs returns the hue for value, wrapped into [0, 360).
func (cs ColorSettings) HueInDegs(value float64) float64 {
	h := value*(cs.ToAngle-cs.FromAngle) + cs.FromAngle
	return math.Mod(math.Mod(h, 360)+360, 360)
}

// ColorFrom returns the color for value: the HSV color with hue
// HueInDegs(value), the configured saturation and value 1, with each
// channel scaled to [0, 255] and rounded.
func (cs ColorSettings) ColorFrom(value float64) RGB8 {
	r, g, b := colorful.Hsv(cs.HueInDegs(value), cs.Saturation, 1).RGB255()
	return RGB8{R: r, G: g, B: b}
}
