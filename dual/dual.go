// Package dual implements a forward-mode automatic-differentiation
// scalar: a value paired with a dense gradient vector against a fixed
// global trainable-parameter vector. All arithmetic used by the rest of
// this module is implemented here, in the manner of the teacher's
// f32math.go helper package, generalized from float32 scalars to
// float64 (value, gradient) pairs.
//
// A Dual never fails: division by zero, sqrt of a negative value, and
// similar operations produce a non-finite value or gradient component
// rather than an error. Callers validate inputs; the scene constructor
// checks invariants at region boundaries (see package scene).
package dual

import (
	"math"

	"github.com/arl/assertgo"
)

// Dual is a (value, gradient) pair. D is nil or has the same length as
// every other Dual participating in the same scene evaluation; mixing
// Duals of different gradient lengths produces meaningless results (in
// debug builds, assertgo catches this in Add, Sub, Mul, Div and Atan2).
type Dual struct {
	V float64
	D []float64
}

// Const returns a Dual with the given value and a zero gradient of
// length n.
func Const(v float64, n int) Dual {
	return Dual{V: v, D: make([]float64, n)}
}

// Var returns a Dual representing the i'th coordinate of an n-dimensional
// trainable-parameter vector: value v, gradient the i'th unit vector.
func Var(v float64, i, n int) Dual {
	d := make([]float64, n)
	d[i] = 1
	return Dual{V: v, D: d}
}

// Len returns the gradient length.
func (a Dual) Len() int { return len(a.D) }

func newD(n int) []float64 { return make([]float64, n) }

// Add returns a + b.
func Add(a, b Dual) Dual {
	assert.True(len(a.D) == len(b.D), "dual.Add: gradient length mismatch %d != %d", len(a.D), len(b.D))
	n := len(a.D)
	d := newD(n)
	for i := range d {
		d[i] = a.D[i] + b.D[i]
	}
	return Dual{V: a.V + b.V, D: d}
}

// AddF returns a + k for a plain constant k.
func AddF(a Dual, k float64) Dual {
	d := newD(len(a.D))
	copy(d, a.D)
	return Dual{V: a.V + k, D: d}
}

// Sub returns a - b.
func Sub(a, b Dual) Dual {
	assert.True(len(a.D) == len(b.D), "dual.Sub: gradient length mismatch %d != %d", len(a.D), len(b.D))
	n := len(a.D)
	d := newD(n)
	for i := range d {
		d[i] = a.D[i] - b.D[i]
	}
	return Dual{V: a.V - b.V, D: d}
}

// Neg returns -a.
func Neg(a Dual) Dual {
	d := newD(len(a.D))
	for i := range d {
		d[i] = -a.D[i]
	}
	return Dual{V: -a.V, D: d}
}

// Mul returns a * b, via the product rule.
func Mul(a, b Dual) Dual {
	assert.True(len(a.D) == len(b.D), "dual.Mul: gradient length mismatch %d != %d", len(a.D), len(b.D))
	n := len(a.D)
	d := newD(n)
	for i := range d {
		d[i] = a.D[i]*b.V + a.V*b.D[i]
	}
	return Dual{V: a.V * b.V, D: d}
}

// MulF returns a * k for a plain constant k.
func MulF(a Dual, k float64) Dual {
	d := newD(len(a.D))
	for i := range d {
		d[i] = a.D[i] * k
	}
	return Dual{V: a.V * k, D: d}
}

// Div returns a / b, via the quotient rule. If b.V == 0 the result's
// value and/or gradient components are non-finite; Div does not fail.
func Div(a, b Dual) Dual {
	assert.True(len(a.D) == len(b.D), "dual.Div: gradient length mismatch %d != %d", len(a.D), len(b.D))
	n := len(a.D)
	d := newD(n)
	b2 := b.V * b.V
	for i := range d {
		d[i] = (a.D[i]*b.V - a.V*b.D[i]) / b2
	}
	return Dual{V: a.V / b.V, D: d}
}

// DivF returns a / k for a plain constant k.
func DivF(a Dual, k float64) Dual {
	return MulF(a, 1/k)
}

// Recip returns 1 / a.
func Recip(a Dual) Dual {
	return Div(Const(1, len(a.D)), a)
}

// Sqrt returns sqrt(a). Negative a.V produces NaN, propagated like any
// other non-finite value.
func Sqrt(a Dual) Dual {
	s := math.Sqrt(a.V)
	d := newD(len(a.D))
	for i := range d {
		d[i] = a.D[i] / (2 * s)
	}
	return Dual{V: s, D: d}
}

// Cbrt returns the cube root of a.
func Cbrt(a Dual) Dual {
	c := math.Cbrt(a.V)
	d := newD(len(a.D))
	// d/dx x^(1/3) = 1/(3 x^(2/3)); guard the singularity at x == 0.
	denom := 3 * c * c
	for i := range d {
		if denom == 0 {
			d[i] = math.Inf(1)
			if a.D[i] == 0 {
				d[i] = 0
			}
			continue
		}
		d[i] = a.D[i] / denom
	}
	return Dual{V: c, D: d}
}

// Abs returns |a|.
func Abs(a Dual) Dual {
	if a.V < 0 {
		return Neg(a)
	}
	d := newD(len(a.D))
	copy(d, a.D)
	return Dual{V: a.V, D: d}
}

// Sin returns sin(a).
func Sin(a Dual) Dual {
	s, c := math.Sin(a.V), math.Cos(a.V)
	d := newD(len(a.D))
	for i := range d {
		d[i] = a.D[i] * c
	}
	return Dual{V: s, D: d}
}

// Cos returns cos(a).
func Cos(a Dual) Dual {
	s, c := math.Sin(a.V), math.Cos(a.V)
	d := newD(len(a.D))
	for i := range d {
		d[i] = -a.D[i] * s
	}
	return Dual{V: c, D: d}
}

// Tan returns tan(a).
func Tan(a Dual) Dual {
	t := math.Tan(a.V)
	sec2 := 1 + t*t
	d := newD(len(a.D))
	for i := range d {
		d[i] = a.D[i] * sec2
	}
	return Dual{V: t, D: d}
}

// Atan2 returns atan2(y, x).
func Atan2(y, x Dual) Dual {
	assert.True(len(y.D) == len(x.D), "dual.Atan2: gradient length mismatch %d != %d", len(y.D), len(x.D))
	n := len(y.D)
	v := math.Atan2(y.V, x.V)
	denom := x.V*x.V + y.V*y.V
	d := newD(n)
	for i := range d {
		d[i] = (x.V*y.D[i] - y.V*x.D[i]) / denom
	}
	return Dual{V: v, D: d}
}

// Exp returns e^a.
func Exp(a Dual) Dual {
	e := math.Exp(a.V)
	d := newD(len(a.D))
	for i := range d {
		d[i] = a.D[i] * e
	}
	return Dual{V: e, D: d}
}

// Ln returns ln(a). Non-positive a.V produces a non-finite result.
func Ln(a Dual) Dual {
	l := math.Log(a.V)
	d := newD(len(a.D))
	for i := range d {
		d[i] = a.D[i] / a.V
	}
	return Dual{V: l, D: d}
}

// Acos returns arccos(a), used internally by the cubic solver's
// trigonometric branch.
func Acos(a Dual) Dual {
	v := math.Acos(a.V)
	coeff := -1 / math.Sqrt(1-a.V*a.V)
	d := newD(len(a.D))
	for i := range d {
		d[i] = a.D[i] * coeff
	}
	return Dual{V: v, D: d}
}

// Asin returns arcsin(a).
func Asin(a Dual) Dual {
	v := math.Asin(a.V)
	coeff := 1 / math.Sqrt(1-a.V*a.V)
	d := newD(len(a.D))
	for i := range d {
		d[i] = a.D[i] * coeff
	}
	return Dual{V: v, D: d}
}

// Acosh returns arccosh(a), used internally by the cubic solver's
// hyperbolic branch. Defined for a.V >= 1.
func Acosh(a Dual) Dual {
	v := math.Acosh(a.V)
	coeff := 1 / math.Sqrt(a.V*a.V-1)
	d := newD(len(a.D))
	for i := range d {
		d[i] = a.D[i] * coeff
	}
	return Dual{V: v, D: d}
}

// Asinh returns arcsinh(a), used internally by the cubic solver's other
// hyperbolic branch.
func Asinh(a Dual) Dual {
	v := math.Asinh(a.V)
	coeff := 1 / math.Sqrt(a.V*a.V+1)
	d := newD(len(a.D))
	for i := range d {
		d[i] = a.D[i] * coeff
	}
	return Dual{V: v, D: d}
}

// Sinh returns sinh(a).
func Sinh(a Dual) Dual {
	v := math.Sinh(a.V)
	c := math.Cosh(a.V)
	d := newD(len(a.D))
	for i := range d {
		d[i] = a.D[i] * c
	}
	return Dual{V: v, D: d}
}

// Cosh returns cosh(a).
func Cosh(a Dual) Dual {
	v := math.Cosh(a.V)
	s := math.Sinh(a.V)
	d := newD(len(a.D))
	for i := range d {
		d[i] = a.D[i] * s
	}
	return Dual{V: v, D: d}
}

// Pow returns a^k for an integer exponent k, via the power rule
// (k*a^(k-1)*da); handles negative k through Recip.
func Pow(a Dual, k int) Dual {
	if k < 0 {
		return Recip(Pow(a, -k))
	}
	if k == 0 {
		return Const(1, len(a.D))
	}
	v := math.Pow(a.V, float64(k))
	coeff := float64(k) * math.Pow(a.V, float64(k-1))
	d := newD(len(a.D))
	for i := range d {
		d[i] = a.D[i] * coeff
	}
	return Dual{V: v, D: d}
}

// PowF returns a^k for a real exponent k.
func PowF(a Dual, k float64) Dual {
	v := math.Pow(a.V, k)
	coeff := k * math.Pow(a.V, k-1)
	d := newD(len(a.D))
	for i := range d {
		d[i] = a.D[i] * coeff
	}
	return Dual{V: v, D: d}
}

// Gt reports whether a.V > b.V.
func Gt(a, b Dual) bool { return a.V > b.V }

// Lt reports whether a.V < b.V.
func Lt(a, b Dual) bool { return a.V < b.V }

// Finite reports whether both the value and every gradient component are
// finite (not NaN or +/-Inf).
func (a Dual) Finite() bool {
	if math.IsNaN(a.V) || math.IsInf(a.V, 0) {
		return false
	}
	for _, d := range a.D {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of a.
func (a Dual) Clone() Dual {
	d := make([]float64, len(a.D))
	copy(d, a.D)
	return Dual{V: a.V, D: d}
}
