package solve

import (
	"math"

	"github.com/runsascoded/shapes/dual"
)

// Quartic returns the real roots of a*x^4 + b*x^3 + c*x^2 + d*x + e = 0
// (a != 0). It depresses to y^4 + p*y^2 + q*y + r = 0 (x = y - b/4a).
// When q is (numerically) zero it solves the resulting biquadratic in
// closed form; otherwise it factors the quartic into two quadratics via
// a real root of the resolvent cubic z^3 + 2p z^2 + (p^2-4r) z - q^2 = 0,
// as described in spec.md section 4.2.
func Quartic(a, b, c, d, e dual.Dual) []dual.Dual {
	fourA := dual.MulF(a, 4)
	shift := dual.Div(b, fourA)

	// Depressed-quartic coefficients, substituting x = y - b/(4a) into
	// a x^4+b x^3+c x^2+d x+e and collecting in y. Using the standard
	// reduction in terms of alpha = b/a (so x = y - alpha/4):
	alpha := dual.Div(b, a)
	betaC := dual.Div(c, a)
	gammaD := dual.Div(d, a)
	deltaE := dual.Div(e, a)

	alpha2 := dual.Mul(alpha, alpha)
	p := dual.Add(dual.Neg(dual.MulF(alpha2, 3.0/8.0)), betaC)

	q := dual.Add(
		dual.Add(dual.MulF(dual.Mul(alpha, alpha2), 1.0/8.0), dual.Neg(dual.MulF(dual.Mul(alpha, betaC), 0.5))),
		gammaD,
	)

	r := dual.Add(
		dual.Add(
			dual.Neg(dual.MulF(dual.Mul(alpha2, alpha2), 3.0/256.0)),
			dual.MulF(dual.Mul(alpha2, betaC), 1.0/16.0),
		),
		dual.Add(dual.Neg(dual.MulF(dual.Mul(alpha, gammaD), 0.25)), deltaE),
	)

	ys := depressedQuartic(p, q, r)
	roots := make([]dual.Dual, len(ys))
	for i, y := range ys {
		roots[i] = dual.Sub(y, shift)
	}
	return roots
}

// depressedQuartic returns the real roots of y^4 + p*y^2 + q*y + r = 0.
func depressedQuartic(p, q, r dual.Dual) []dual.Dual {
	const eps = 1e-12
	if math.Abs(q.V) < eps {
		us := Quadratic(dual.Const(1, p.Len()), p, r)
		var ys []dual.Dual
		for _, u := range us {
			if u.V < 0 {
				continue
			}
			s := dual.Sqrt(u)
			ys = append(ys, s, dual.Neg(s))
		}
		return ys
	}

	// Resolvent cubic: z^3 + 2p z^2 + (p^2-4r) z - q^2 = 0.
	n := p.Len()
	one := dual.Const(1, n)
	two := dual.MulF(p, 2)
	coefC := dual.Sub(dual.Mul(p, p), dual.MulF(r, 4))
	coefD := dual.Neg(dual.Mul(q, q))
	zs := Cubic(one, two, coefC, coefD)

	// Pick the resolvent root with the largest (most numerically stable)
	// value; any real root with z >= 0 factors the quartic.
	best := -1
	for i, z := range zs {
		if best == -1 || z.V > zs[best].V {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	z := zs[best]
	if z.V < 0 {
		// No real factorization found in generic position; see
		// spec.md section 9 (quartic leading-coefficient degradation).
		return nil
	}

	alpha := dual.Sqrt(z)
	pPlusZ := dual.Add(p, z)
	qOverAlpha := dual.Div(q, alpha)
	beta := dual.MulF(dual.Sub(pPlusZ, qOverAlpha), 0.5)
	gamma := dual.MulF(dual.Add(pPlusZ, qOverAlpha), 0.5)

	var ys []dual.Dual
	ys = append(ys, Quadratic(one, alpha, beta)...)
	ys = append(ys, Quadratic(one, dual.Neg(alpha), gamma)...)
	return ys
}
