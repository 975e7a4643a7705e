package fractal

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned by the render entry points and
// constructors when a parameter is outside its domain. It is reported
// before any pixel is computed; a render either fails as a whole or
// produces a complete grid.
var ErrInvalidArgument = errors.New("fractal: invalid argument")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}
