package isect

import (
	"math"

	"github.com/runsascoded/shapes/dual"
	"github.com/runsascoded/shapes/shape"
)

// circleCircle computes the closed-form intersection of two circles.
// Returns 0 intersections for disjoint, nested, identical or (within
// Tolerance) concentric-equal-radius circles; a single coalesced
// intersection for tangent circles; 2 intersections otherwise.
func circleCircle(a, b *shape.Circle) []Intersection {
	dx, dy := b.Cx.V-a.Cx.V, b.Cy.V-a.Cy.V
	dV := math.Hypot(dx, dy)
	r0, r1 := a.R.V, b.R.V

	if dV < Tolerance && math.Abs(r0-r1) < Tolerance {
		// Identical (or near-identical) circles: treat as no
		// intersections (spec.md section 9, tangent/cocircular open
		// question).
		return nil
	}
	if dV > r0+r1+Tolerance || dV < math.Abs(r0-r1)-Tolerance {
		return nil // disjoint or one strictly contains the other
	}

	d := dual.Dist(dual.NewPoint(a.Cx, a.Cy), dual.NewPoint(b.Cx, b.Cy))
	// a_ = (r0^2 - r1^2 + d^2) / (2d)
	aNum := dual.Add(dual.Sub(dual.Mul(a.R, a.R), dual.Mul(b.R, b.R)), dual.Mul(d, d))
	aLen := dual.Div(aNum, dual.MulF(d, 2))

	h2 := dual.Sub(dual.Mul(a.R, a.R), dual.Mul(aLen, aLen))
	h2V := h2.V
	if h2V < 0 {
		h2V = 0
		h2 = dual.Const(0, h2.Len())
	}
	h := dual.Sqrt(h2)

	// Midpoint along the center line.
	cxDiff := dual.Sub(b.Cx, a.Cx)
	cyDiff := dual.Sub(b.Cy, a.Cy)
	midX := dual.Add(a.Cx, dual.Div(dual.Mul(aLen, cxDiff), d))
	midY := dual.Add(a.Cy, dual.Div(dual.Mul(aLen, cyDiff), d))

	// Perpendicular offset of magnitude h.
	offX := dual.Div(dual.Mul(h, dual.Neg(cyDiff)), d)
	offY := dual.Div(dual.Mul(h, cxDiff), d)

	p0 := dual.NewPoint(dual.Add(midX, offX), dual.Add(midY, offY))

	mkEndpoints := func(p dual.Point) Intersection {
		return Intersection{
			P:  p,
			S0: Endpoint{SetIdx: a.SetIndex(), Theta: a.ThetaOfPoint(p)},
			S1: Endpoint{SetIdx: b.SetIndex(), Theta: b.ThetaOfPoint(p)},
		}
	}

	if math.Sqrt(h2V) < Tolerance {
		// Tangent: collapse to a single point.
		return []Intersection{mkEndpoints(p0)}
	}

	p1 := dual.NewPoint(dual.Sub(midX, offX), dual.Sub(midY, offY))
	return []Intersection{mkEndpoints(p0), mkEndpoints(p1)}
}
