package fractal

// EscapeTime iterates z ← z² + c from z = 0 for at most maxIters steps and
// reports the first iteration n at which |z|² ≥ horizonSq. If the orbit
// never reaches the horizon, c is taken to be inside the set and EscapeTime
// returns (maxIters, false).
func EscapeTime(c complex128, maxIters int, horizonSq float64) (iter int, escaped bool) {
	var z complex128
	for n := range maxIters {
		z = z*z + c
		if absSq(z) >= horizonSq {
			return n, true
		}
	}
	return maxIters, false
}

func absSq(z complex128) float64 {
	re, im := real(z), imag(z)
	return re*re + im*im
}

// RenderMandelbrot renders the Mandelbrot set as banded grayscale. A point
// escaping at iteration n gets shade (n mod shadesMax)·⌊255/shadesMax⌋;
// interior points are black. shadesMax must be at least 1.
func RenderMandelbrot(vp Viewport, maxIters int, horizon float64, shadesMax uint8, opts ...RenderOption) (*Grid, error) {
	if err := vp.Validate(); err != nil {
		return nil, err
	}
	if err := validateIters(maxIters); err != nil {
		return nil, err
	}
	if shadesMax < 1 {
		return nil, invalidf("shades %d must be at least 1", shadesMax)
	}

	horizonSq := horizon * horizon
	shades := int(shadesMax)
	step := 255 / shades

	return fill("mandelbrot", vp, FormatGray8, opts, func(row, col int, dst []byte) {
		n, escaped := EscapeTime(vp.Point(row, col), maxIters, horizonSq)
		if escaped {
			dst[0] = uint8((n % shades) * step)
		}
	})
}

// RenderMandelbrotColored renders the Mandelbrot set in color. A point
// escaping at iteration n gets cs.ColorFrom(n/maxIters); interior points
// are black.
func RenderMandelbrotColored(vp Viewport, maxIters int, horizon float64, cs ColorSettings, opts ...RenderOption) (*Grid, error) {
	if err := vp.Validate(); err != nil {
		return nil, err
	}
	if err := validateIters(maxIters); err != nil {
		return nil, err
	}
	if err := cs.Validate(); err != nil {
		return nil, err
	}

	horizonSq := horizon * horizon
	iters := float64(maxIters)

	return fill("mandelbrot-colored", vp, FormatRGB8, opts, func(row, col int, dst []byte) {
		n, escaped := EscapeTime(vp.Point(row, col), maxIters, horizonSq)
		if !escaped {
			return
		}
		c := cs.ColorFrom(float64(n) / iters)
		dst[0], dst[1], dst[2] = c.R, c.G, c.B
	})
}
