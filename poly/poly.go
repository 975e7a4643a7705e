// Package poly implements dense univariate polynomials over Go's built-in
// numeric types.
//
// Coefficients are stored highest degree first, so the polynomial
// 3x² + 2x + 1 is represented by the slice [3, 2, 1]. A polynomial always
// has at least one coefficient; the zero value of [Polynomial] behaves as the
// zero polynomial [0].
//
// Polynomials are immutable values: every operation returns a new
// polynomial and never modifies its operands, so a polynomial may be shared
// between goroutines without synchronization.
package poly

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidArgument is returned for empty coefficient or root lists and
// for out of range degree lookups.
var ErrInvalidArgument = errors.New("poly: invalid argument")

// Scalar is the set of coefficient types a Polynomial can be built over.
// Every member supports addition, subtraction, multiplication, negation,
// a zero value and the constant 1.
//
// The set is closed: it admits the built-in integer, floating point and
// complex types and types defined on them, but not user-defined numeric
// types such as big numbers, rationals or matrices, whose arithmetic is
// expressed with methods rather than operators.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~float32 | ~float64 |
		~complex64 | ~complex128
}

// Polynomial is a polynomial with coefficients of type T.
//
// Equality (see [Polynomial.Equal]) is structural: leading zero
// coefficients are significant, so [0, 1, 2] and [1, 2] compare unequal even
// though they describe the same function.
type Polynomial[T Scalar] struct {
	coeffs []T // highest degree first
}

// New returns the polynomial with the given coefficients, highest degree
// first. The slice is copied. It fails if coeffs is empty.
func New[T Scalar](coeffs []T) (Polynomial[T], error) {
	if len(coeffs) == 0 {
		return Polynomial[T]{}, fmt.Errorf("%w: polynomial needs at least one coefficient", ErrInvalidArgument)
	}
	return Polynomial[T]{coeffs: slices.Clone(coeffs)}, nil
}

// FromRoots returns the monic polynomial (x - r₀)(x - r₁)…(x - rₙ₋₁).
// It fails if roots is empty.
func FromRoots[T Scalar](roots []T) (Polynomial[T], error) {
	if len(roots) == 0 {
		return Polynomial[T]{}, fmt.Errorf("%w: no roots given", ErrInvalidArgument)
	}
	p := linear(roots[0])
	for _, r := range roots[1:] {
		p = p.Mul(linear(r))
	}
	return p, nil
}

// linear returns x - r.
func linear[T Scalar](r T) Polynomial[T] {
	return Polynomial[T]{coeffs: []T{1, -r}}
}

// Map applies f to every coefficient and returns the resulting polynomial,
// which may have a different coefficient type. Order and length are kept.
func Map[T, V Scalar](p Polynomial[T], f func(T) V) Polynomial[V] {
	cs := p.view()
	out := make([]V, len(cs))
	for i, c := range cs {
		out[i] = f(c)
	}
	return Polynomial[V]{coeffs: out}
}

// view returns the coefficient slice, substituting [0] for the zero value.
// Callers must not modify the result.
func (p Polynomial[T]) view() []T {
	if len(p.coeffs) == 0 {
		return []T{0}
	}
	return p.coeffs
}

// Coeffs returns a copy of the coefficients, highest degree first.
func (p Polynomial[T]) Coeffs() []T {
	return slices.Clone(p.view())
}

// Degree returns the number of coefficients minus one. Leading zero
// coefficients are counted.
func (p Polynomial[T]) Degree() int {
	return len(p.view()) - 1
}

// CoeffAtDeg returns the coefficient of x^i.
func (p Polynomial[T]) CoeffAtDeg(i int) (T, error) {
	cs := p.view()
	if i < 0 || i >= len(cs) {
		var zero T
		return zero, fmt.Errorf("%w: degree %d outside [0, %d]", ErrInvalidArgument, i, len(cs)-1)
	}
	return cs[len(cs)-1-i], nil
}

// Evaluate returns p(x), computed with Horner's method starting from the
// leading coefficient, ((c₀x + c₁)x + c₂)x + … + cₙ.
func (p Polynomial[T]) Evaluate(x T) T {
	cs := p.view()
	total := cs[0]
	for _, c := range cs[1:] {
		total = total*x + c
	}
	return total
}

// Add returns p + q.
func (p Polynomial[T]) Add(q Polynomial[T]) Polynomial[T] {
	long, short := p.view(), q.view()
	if len(short) > len(long) {
		long, short = short, long
	}
	diff := len(long) - len(short)

	out := make([]T, len(long))
	copy(out, long[:diff])
	for i := diff; i < len(long); i++ {
		out[i] = long[i] + short[i-diff]
	}
	return Polynomial[T]{coeffs: out}
}

// Neg returns -p.
func (p Polynomial[T]) Neg() Polynomial[T] {
	return Map(p, func(c T) T { return -c })
}

// Sub returns p - q.
func (p Polynomial[T]) Sub(q Polynomial[T]) Polynomial[T] {
	return p.Add(q.Neg())
}

// Mul returns the product p·q. The degree of the result is the sum of the
// degrees of the factors.
func (p Polynomial[T]) Mul(q Polynomial[T]) Polynomial[T] {
	a, b := p.view(), q.view()
	// With highest-first storage, a[i] has degree len(a)-1-i, so the
	// product a[i]·b[j] lands at index i+j of the result.
	out := make([]T, len(a)+len(b)-1)
	for i, ai := range a {
		for j, bj := range b {
			out[i+j] += ai * bj
		}
	}
	return Polynomial[T]{coeffs: out}
}

// Scale returns k·p.
func (p Polynomial[T]) Scale(k T) Polynomial[T] {
	return Map(p, func(c T) T { return c * k })
}

// Derivative returns dp/dx. The derivative of a constant is the zero
// polynomial [0].
func (p Polynomial[T]) Derivative() Polynomial[T] {
	cs := p.view()
	n := len(cs) - 1
	if n == 0 {
		return Polynomial[T]{coeffs: []T{0}}
	}

	out := make([]T, n)
	var k T
	for d := 1; d <= n; d++ {
		k += 1 // k == d; T has no conversion from a non-constant int
		out[n-d] = cs[n-d] * k
	}
	return Polynomial[T]{coeffs: out}
}

// Equal reports whether p and q have identical coefficient sequences.
func (p Polynomial[T]) Equal(q Polynomial[T]) bool {
	return slices.Equal(p.view(), q.view())
}

// String formats the non-zero terms highest degree first, for example
// "3x^2 + 1". The zero polynomial formats as "0".
func (p Polynomial[T]) String() string {
	cs := p.view()
	n := len(cs) - 1

	var terms []string
	for i, c := range cs {
		if c == 0 {
			continue
		}
		switch deg := n - i; deg {
		case 0:
			terms = append(terms, fmt.Sprint(c))
		default:
			terms = append(terms, fmt.Sprintf("%vx^%d", c, deg))
		}
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}
