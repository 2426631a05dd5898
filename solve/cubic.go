package solve

import (
	"math"

	"github.com/arl/assertgo"
	"github.com/runsascoded/shapes/dual"
)

// Cubic returns the real roots of a*x^3 + b*x^2 + c*x + d = 0 (a != 0).
// It depresses the cubic to t^3 + p*t + q = 0 (via x = t - b/3a) and
// solves it with Viète's trigonometric substitution (three real roots)
// or the corresponding hyperbolic substitution (one real root),
// branching on the sign of p as described in spec.md section 4.2.
func Cubic(a, b, c, d dual.Dual) []dual.Dual {
	assert.True(a.V != 0, "solve.Cubic: leading coefficient must be non-zero")
	n := a.Len()
	three := 3.0

	// Depress: x = t - b/(3a).
	threeA := dual.MulF(a, three)
	shift := dual.Div(b, threeA)

	// p = (3ac - b^2) / (3a^2)
	aa := dual.Mul(a, a)
	p := dual.Div(dual.Sub(dual.MulF(dual.Mul(a, c), three), dual.Mul(b, b)), dual.MulF(aa, three))

	// q = (2b^3 - 9abc + 27a^2 d) / (27 a^3)
	b3 := dual.Mul(dual.Mul(b, b), b)
	abc := dual.Mul(dual.Mul(a, b), c)
	a2d := dual.Mul(aa, d)
	num := dual.Add(dual.Sub(dual.MulF(b3, 2), dual.MulF(abc, 9)), dual.MulF(a2d, 27))
	q := dual.Div(num, dual.MulF(dual.Mul(aa, a), 27))

	ts := depressedCubic(p, q, n)
	roots := make([]dual.Dual, len(ts))
	for i, t := range ts {
		roots[i] = dual.Sub(t, shift)
	}
	return roots
}

// depressedCubic returns the real roots of t^3 + p*t + q = 0.
func depressedCubic(p, q dual.Dual, n int) []dual.Dual {
	const eps = 1e-14
	if math.Abs(p.V) < eps {
		return []dual.Dual{dual.Cbrt(dual.Neg(q))}
	}

	if p.V < 0 {
		r := dual.Sqrt(dual.MulF(dual.Neg(p), 1.0/3.0)) // r = sqrt(-p/3)
		r3 := dual.Mul(dual.Mul(r, r), r)
		ratio := dual.Div(q, dual.MulF(r3, 2)) // ratio = q / (2 r^3)

		if math.Abs(ratio.V) <= 1 {
			theta0 := dual.DivF(dual.Acos(dual.Neg(ratio)), 3)
			roots := make([]dual.Dual, 3)
			for k := 0; k < 3; k++ {
				angle := dual.AddF(theta0, -2*math.Pi*float64(k)/3)
				roots[k] = dual.Mul(dual.MulF(r, 2), dual.Cos(angle))
			}
			return roots
		}

		sign := 1.0
		if q.V < 0 {
			sign = -1
		}
		phi := dual.DivF(dual.Acosh(dual.Abs(ratio)), 3)
		t := dual.MulF(dual.Mul(dual.MulF(r, 2), dual.Cosh(phi)), -sign)
		return []dual.Dual{t}
	}

	// p > 0: exactly one real root, hyperbolic-sine branch.
	r := dual.Sqrt(dual.MulF(p, 1.0/3.0)) // r = sqrt(p/3)
	r3 := dual.Mul(dual.Mul(r, r), r)
	ratio := dual.Div(q, dual.MulF(r3, 2))
	phi := dual.DivF(dual.Asinh(ratio), 3)
	t := dual.Neg(dual.Mul(dual.MulF(r, 2), dual.Sinh(phi)))
	return []dual.Dual{t}
}
