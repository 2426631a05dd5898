// Package isect implements pairwise boundary intersection between the
// shape primitives of package shape, per spec.md section 4.3: a closed
// form for circle/circle, a quartic reduction (any shape pair to the
// unit circle) for ellipse pairs, and per-edge segment tests for
// polygons. Grounded on the teacher's recast/contour.go, which walks
// heightfield contours edge by edge in much the same spirit (accumulate
// a list of boundary crossings, then let the caller assemble them into
// a graph).
package isect

import (
	"github.com/runsascoded/shapes/dual"
	"github.com/runsascoded/shapes/shape"
)

// Endpoint locates an Intersection on one of its two participating
// shapes: the shape's set index and its canonical boundary parameter.
type Endpoint struct {
	SetIdx int
	Theta  float64
}

// Intersection is one boundary-crossing point between two shapes, with
// set indices ordered S0 < S1 (spec.md section 3).
type Intersection struct {
	P      dual.Point
	S0, S1 Endpoint
}

// Tolerance is the default proximity tolerance used to coalesce nearly
// tangent or duplicate roots (spec.md section 4.4).
const Tolerance = 1e-10

// transformable is implemented by Circle, XYRR and XYRRT: shapes that
// have a well-defined affine map to the unit circle.
type transformable interface {
	shape.Shape
	Transform() shape.Transform
}

// Pairwise computes every pairwise boundary intersection among shapes,
// in shape-index order (i < j), for deterministic downstream processing.
func Pairwise(shapes []shape.Shape) []Intersection {
	var out []Intersection
	for i := 0; i < len(shapes); i++ {
		for j := i + 1; j < len(shapes); j++ {
			out = append(out, Intersect(shapes[i], shapes[j])...)
		}
	}
	return out
}

// Intersect dispatches to the appropriate intersection routine for the
// pair's concrete kinds. The returned intersections always carry
// S0.SetIdx == a.SetIndex() and S1.SetIdx == b.SetIndex() with
// a.SetIndex() < b.SetIndex() assumed by the caller (Pairwise enforces
// this by iterating i < j).
func Intersect(a, b shape.Shape) []Intersection {
	if pa, ok := a.(*shape.Polygon); ok {
		return polygonAny(pa, b)
	}
	if pb, ok := b.(*shape.Polygon); ok {
		return flip(polygonAny(pb, a))
	}
	ca, aCircle := a.(*shape.Circle)
	cb, bCircle := b.(*shape.Circle)
	if aCircle && bCircle {
		return circleCircle(ca, cb)
	}
	ta, _ := a.(transformable)
	tb, _ := b.(transformable)
	return ellipsePair(ta, tb)
}

func flip(in []Intersection) []Intersection {
	out := make([]Intersection, len(in))
	for i, x := range in {
		out[i] = Intersection{P: x.P, S0: x.S1, S1: x.S0}
	}
	return out
}
