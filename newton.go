package fractal

import (
	"math"
	"math/cmplx"
	"slices"

	"github.com/gogpu/fractal/poly"
)

// NewtonSolver classifies starting points by the root Newton's method
// carries them to. The polynomial and its derivative are built once from the
// roots; a NewtonSolver is read-only afterwards and safe for concurrent use.
type NewtonSolver struct {
	roots     []complex128
	p, dp     poly.Polynomial[complex128]
	horizonSq float64
}

// NewNewtonSolver builds the monic polynomial with the given roots and its
// derivative. A point is considered converged once it lies strictly within
// horizon of a root. It fails if roots is empty.
func NewNewtonSolver(roots []complex128, horizon float64) (*NewtonSolver, error) {
	if len(roots) == 0 {
		return nil, invalidf("newton needs at least one root")
	}
	p, err := poly.FromRoots(roots)
	if err != nil {
		return nil, invalidf("%w", err)
	}
	return &NewtonSolver{
		roots:     slices.Clone(roots),
		p:         p,
		dp:        p.Derivative(),
		horizonSq: horizon * horizon,
	}, nil
}

// Roots returns a copy of the solver's roots in input order.
func (s *NewtonSolver) Roots() []complex128 {
	return slices.Clone(s.roots)
}

// Polynomial returns the polynomial whose roots the solver looks for.
func (s *NewtonSolver) Polynomial() poly.Polynomial[complex128] {
	return s.p
}

// Converge runs Newton's method from z for at most maxIters steps. Before
// each step it checks the nearest root; if that root is within the horizon
// the point has converged and Converge returns the root's index. A step
// that produces a NaN or infinite iterate, or an exhausted budget, reports
// no convergence.
func (s *NewtonSolver) Converge(z complex128, maxIters int) (root int, ok bool) {
	for range maxIters {
		idx, distSq := s.nearest(z)
		if distSq < s.horizonSq {
			return idx, true
		}
		z -= s.p.Evaluate(z) / s.dp.Evaluate(z)
		if !finite(z) {
			return -1, false
		}
	}
	return -1, false
}

// nearest returns the index of the root closest to z and its squared
// distance. Exact ties go to the earliest root.
func (s *NewtonSolver) nearest(z complex128) (int, float64) {
	best, bestSq := 0, absSq(z-s.roots[0])
	for i := 1; i < len(s.roots); i++ {
		if d := absSq(z - s.roots[i]); d < bestSq {
			best, bestSq = i, d
		}
	}
	return best, bestSq
}

func finite(z complex128) bool {
	return !cmplx.IsNaN(z) && !cmplx.IsInf(z)
}

// RenderNewton renders the Newton fractal of the monic polynomial with the
// given roots. A point converging to root k of n gets
// cs.ColorFrom((k+1)/n); points that do not converge are black.
func RenderNewton(vp Viewport, roots []complex128, maxIters int, horizon float64, cs ColorSettings, opts ...RenderOption) (*Grid, error) {
	if err := vp.Validate(); err != nil {
		return nil, err
	}
	if err := validateIters(maxIters); err != nil {
		return nil, err
	}
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	solver, err := NewNewtonSolver(roots, horizon)
	if err != nil {
		return nil, err
	}

	// One color per root, computed up front.
	palette := make([]RGB8, len(roots))
	for k := range palette {
		palette[k] = cs.ColorFrom(float64(k+1) / float64(len(roots)))
	}

	return fill("newton", vp, FormatRGB8, opts, func(row, col int, dst []byte) {
		k, ok := solver.Converge(vp.Point(row, col), maxIters)
		if !ok {
			return
		}
		c := palette[k]
		dst[0], dst[1], dst[2] = c.R, c.G, c.B
	})
}

// RootsOfUnity returns the n complex n-th roots of unity, starting at 1 and
// proceeding counterclockwise. It returns nil for n < 1.
func RootsOfUnity(n int) []complex128 {
	if n < 1 {
		return nil
	}
	roots := make([]complex128, n)
	for k := range roots {
		roots[k] = cmplx.Rect(1, 2*math.Pi*float64(k)/float64(n))
	}
	return roots
}
