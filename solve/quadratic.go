// Package solve implements real-root finders for quadratic, cubic and
// quartic polynomials over the dual scalar, in the manner of the
// teacher's small, single-purpose numeric helpers (f32math.go): each
// solver is a pure function from dual coefficients to a slice of dual
// roots. Because every arithmetic primitive in package dual already
// carries its own derivative, expressing each closed-form root directly
// in terms of dual operations (sqrt, cbrt, trig, hyperbolic) yields the
// exact root gradient the implicit-function theorem would produce,
// without a separate differentiation pass.
package solve

import "github.com/runsascoded/shapes/dual"

// Quadratic returns the real roots of a*x^2 + b*x + c = 0. It returns no
// roots when both solutions are complex (negative discriminant).
func Quadratic(a, b, c dual.Dual) []dual.Dual {
	disc := dual.Sub(dual.Mul(b, b), dual.MulF(dual.Mul(a, c), 4))
	if disc.V < 0 {
		return nil
	}
	sq := dual.Sqrt(disc)
	twoA := dual.MulF(a, 2)
	r1 := dual.Div(dual.Sub(dual.Neg(b), sq), twoA)
	r2 := dual.Div(dual.Add(dual.Neg(b), sq), twoA)
	return []dual.Dual{r1, r2}
}
