package isect

import (
	"math"

	"github.com/runsascoded/shapes/dual"
	"github.com/runsascoded/shapes/shape"
	"github.com/runsascoded/shapes/solve"
)

// ellipsePair computes the intersections of any two circles/ellipses
// (at least one of which is not a plain circle; circleCircle handles
// the all-circle case) by transforming shape b into shape a's
// unit-circle frame (spec.md section 4.3): the problem reduces to
// intersecting a general conic with the unit circle, which is a
// quartic in one Cartesian coordinate.
func ellipsePair(a, b transformable) []Intersection {
	n := a.Params()[0].Len()

	ta := a.Transform()
	tb := b.Transform()

	// q = Ti.Invert(u, v): qx = p1 u + p2 v + p3, qy = p4 u + p5 v + p6.
	p1 := dual.Mul(ta.Rx, ta.CosT)
	p2 := dual.Neg(dual.Mul(ta.Ry, ta.SinT))
	p3 := ta.Cx
	p4 := dual.Mul(ta.Rx, ta.SinT)
	p5 := dual.Mul(ta.Ry, ta.CosT)
	p6 := ta.Cy

	// lxj = a_ u + b_ v + e0; lyj = c_ u + d_ v + f0, the coordinates of
	// q in shape b's pre-scale rotated frame.
	k1 := dual.Add(dual.Mul(tb.Cx, tb.CosT), dual.Mul(tb.Cy, tb.SinT))
	k2 := dual.Sub(dual.Mul(tb.Cx, tb.SinT), dual.Mul(tb.Cy, tb.CosT))

	aCoef := dual.Add(dual.Mul(p1, tb.CosT), dual.Mul(p4, tb.SinT))
	bCoef := dual.Add(dual.Mul(p2, tb.CosT), dual.Mul(p5, tb.SinT))
	e0 := dual.Sub(dual.Add(dual.Mul(p3, tb.CosT), dual.Mul(p6, tb.SinT)), k1)

	cCoef := dual.Add(dual.Neg(dual.Mul(p1, tb.SinT)), dual.Mul(p4, tb.CosT))
	dCoef := dual.Add(dual.Neg(dual.Mul(p2, tb.SinT)), dual.Mul(p5, tb.CosT))
	f0 := dual.Add(dual.Add(dual.Neg(dual.Mul(p3, tb.SinT)), dual.Mul(p6, tb.CosT)), k2)

	// Ux = A1 u + B1 v + E1; Uy = A2 u + B2 v + E2 (shape b's unit-circle
	// coordinates as a function of shape a's unit-circle coordinates).
	A1 := dual.Div(aCoef, tb.Rx)
	B1 := dual.Div(bCoef, tb.Rx)
	E1 := dual.Div(e0, tb.Rx)
	A2 := dual.Div(cCoef, tb.Ry)
	B2 := dual.Div(dCoef, tb.Ry)
	E2 := dual.Div(f0, tb.Ry)

	// General conic A u^2 + B uv + C v^2 + D u + E v + F = 0 satisfied
	// by shape b's boundary, expressed in shape a's unit-circle frame.
	A := dual.Add(dual.Mul(A1, A1), dual.Mul(A2, A2))
	B := dual.MulF(dual.Add(dual.Mul(A1, B1), dual.Mul(A2, B2)), 2)
	C := dual.Add(dual.Mul(B1, B1), dual.Mul(B2, B2))
	D := dual.MulF(dual.Add(dual.Mul(A1, E1), dual.Mul(A2, E2)), 2)
	E := dual.MulF(dual.Add(dual.Mul(B1, E1), dual.Mul(B2, E2)), 2)
	F := dual.Sub(dual.Add(dual.Mul(E1, E1), dual.Mul(E2, E2)), dual.Const(1, n))

	us := solveConicUnitCircle(A, B, C, D, E, F)

	var out []Intersection
	for _, u := range us {
		v, ok := solveV(A, B, C, D, E, F, u)
		if !ok {
			continue
		}
		uc := dual.NewPoint(u, v)
		q := ta.Invert(uc)
		out = append(out, Intersection{
			P:  q,
			S0: Endpoint{SetIdx: a.SetIndex(), Theta: a.ThetaOfPoint(q)},
			S1: Endpoint{SetIdx: b.SetIndex(), Theta: b.ThetaOfPoint(q)},
		})
	}
	return dedupe(out)
}

// solveConicUnitCircle returns the real u-values where the conic
// A u^2+B uv+C v^2+D u+E v+F = 0 meets the unit circle u^2+v^2=1,
// via (u^2-1)(Bu+E)^2 + P(u)^2 = 0 where P(u) = (A-C)u^2+Du+(C+F).
func solveConicUnitCircle(A, B, C, D, E, F dual.Dual) []dual.Dual {
	p2 := dual.Sub(A, C)
	p1 := D
	p0 := dual.Add(C, F)

	b2 := dual.Mul(B, B)
	be := dual.Mul(B, E)
	e2 := dual.Mul(E, E)

	// (u^2-1)(Bu+E)^2 expands to B^2 u^4 + 2BE u^3 + (E^2-B^2) u^2 - 2BE u - E^2
	u4 := b2
	u3 := dual.MulF(be, 2)
	u2 := dual.Sub(e2, b2)
	u1 := dual.MulF(be, -2)
	u0 := dual.Neg(e2)

	// P(u)^2 = p2^2 u^4 + 2 p2 p1 u^3 + (2 p2 p0 + p1^2) u^2 + 2 p1 p0 u + p0^2
	u4 = dual.Add(u4, dual.Mul(p2, p2))
	u3 = dual.Add(u3, dual.MulF(dual.Mul(p2, p1), 2))
	u2 = dual.Add(u2, dual.Add(dual.MulF(dual.Mul(p2, p0), 2), dual.Mul(p1, p1)))
	u1 = dual.Add(u1, dual.MulF(dual.Mul(p1, p0), 2))
	u0 = dual.Add(u0, dual.Mul(p0, p0))

	if math.Abs(u4.V) < 1e-13 {
		if math.Abs(u3.V) < 1e-13 {
			return solve.Quadratic(u2, u1, u0)
		}
		return solve.Cubic(u3, u2, u1, u0)
	}
	return solve.Quartic(u4, u3, u2, u1, u0)
}

// solveV recovers v given a root u of solveConicUnitCircle, by
// preferring the exact linear relation (Bu+E) v = -((A-C)u^2+Du+(C+F))
// and falling back to the unit-circle constraint with a residual-based
// sign choice when Bu+E is (near) zero.
func solveV(A, B, C, D, E, F, u dual.Dual) (dual.Dual, bool) {
	n := u.Len()
	bu := dual.Add(dual.Mul(B, u), E)
	if math.Abs(bu.V) > Tolerance {
		p2 := dual.Sub(A, C)
		p0 := dual.Add(C, F)
		rhs := dual.Add(dual.Add(dual.Mul(p2, dual.Mul(u, u)), dual.Mul(D, u)), p0)
		return dual.Div(dual.Neg(rhs), bu), true
	}
	rem := 1 - u.V*u.V
	if rem < -1e-9 {
		return dual.Dual{}, false
	}
	if rem < 0 {
		rem = 0
	}
	vPos := dual.Sqrt(dual.Sub(dual.Const(1, n), dual.Mul(u, u)))
	vNeg := dual.Neg(vPos)
	// Pick the sign whose residual in the original conic is smaller.
	residual := func(v dual.Dual) float64 {
		return math.Abs(A.V*u.V*u.V + B.V*u.V*v.V + C.V*v.V*v.V + D.V*u.V + E.V*v.V + F.V)
	}
	if residual(vPos) <= residual(vNeg) {
		return vPos, true
	}
	return vNeg, true
}

// dedupe coalesces intersections whose points are within Tolerance of
// each other (duplicate roots from the squaring step in
// solveConicUnitCircle, or
// genuinely tangent crossings).
func dedupe(in []Intersection) []Intersection {
	var out []Intersection
	for _, x := range in {
		dup := false
		for _, y := range out {
			if dual.DistV(x.P, y.P) < Tolerance {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, x)
		}
	}
	return out
}
