package isect

import (
	"math"

	"github.com/runsascoded/shapes/dual"
	"github.com/runsascoded/shapes/shape"
	"github.com/runsascoded/shapes/solve"
)

// polygonAny computes poly's intersections against any other shape, via
// per-edge segment tests (spec.md section 4.3).
func polygonAny(poly *shape.Polygon, other shape.Shape) []Intersection {
	if op, ok := other.(*shape.Polygon); ok {
		return polygonPolygon(poly, op)
	}
	if t, ok := other.(transformable); ok {
		return polygonEllipse(poly, t)
	}
	return nil
}

func polygonPolygon(p1, p2 *shape.Polygon) []Intersection {
	n1, n2 := p1.ThetaDomain(), p2.ThetaDomain()
	var out []Intersection
	for i := 0; i < int(n1); i++ {
		a1 := p1.PointAtTheta(float64(i))
		b1 := p1.PointAtTheta(float64(i + 1))
		d1 := b1.Sub(a1)
		for j := 0; j < int(n2); j++ {
			a2 := p2.PointAtTheta(float64(j))
			b2 := p2.PointAtTheta(float64(j + 1))
			d2 := b2.Sub(a2)

			denom := dual.Cross(d1, d2)
			if math.Abs(denom.V) < 1e-14 {
				continue // parallel (or collinear-overlapping, not handled)
			}
			diff := a2.Sub(a1)
			s := dual.Div(dual.Cross(diff, d2), denom)
			tpar := dual.Div(dual.Cross(diff, d1), denom)
			if s.V < -Tolerance || s.V > 1+Tolerance || tpar.V < -Tolerance || tpar.V > 1+Tolerance {
				continue
			}
			p := a1.Add(d1.Scale(clamp01(s.V)))
			out = append(out, Intersection{
				P:  p,
				S0: Endpoint{SetIdx: p1.SetIndex(), Theta: float64(i) + clamp01(s.V)},
				S1: Endpoint{SetIdx: p2.SetIndex(), Theta: float64(j) + clamp01(tpar.V)},
			})
		}
	}
	return dedupe(out)
}

func polygonEllipse(poly *shape.Polygon, t transformable) []Intersection {
	n := int(poly.ThetaDomain())
	var out []Intersection
	for i := 0; i < n; i++ {
		a := poly.PointAtTheta(float64(i))
		b := poly.PointAtTheta(float64(i + 1))
		au := t.Transform().Apply(a)
		bu := t.Transform().Apply(b)
		d := bu.Sub(au)

		qa := dual.Dot(d, d)
		qb := dual.MulF(dual.Dot(au, d), 2)
		qc := dual.Sub(dual.Dot(au, au), dual.Const(1, qa.Len()))

		for _, s := range solve.Quadratic(qa, qb, qc) {
			if s.V < -Tolerance || s.V > 1+Tolerance {
				continue
			}
			unit := au.Add(d.Scale(clamp01(s.V)))
			q := t.Transform().Invert(unit)
			out = append(out, Intersection{
				P:  q,
				S0: Endpoint{SetIdx: poly.SetIndex(), Theta: float64(i) + clamp01(s.V)},
				S1: Endpoint{SetIdx: t.SetIndex(), Theta: t.ThetaOfPoint(q)},
			})
		}
	}
	return dedupe(out)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
