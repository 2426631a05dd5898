package isect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runsascoded/shapes/dual"
	"github.com/runsascoded/shapes/shape"
)

func allTrain(n int) []bool {
	m := make([]bool, n)
	for i := range m {
		m[i] = true
	}
	return m
}

func TestCircleCircleDisjoint(t *testing.T) {
	n := 6
	a := shape.NewCircle(0, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(1, 2, n), allTrain(3))
	b := shape.NewCircle(1, dual.Var(10, 3, n), dual.Var(0, 4, n), dual.Var(1, 5, n), allTrain(3))
	assert.Empty(t, Intersect(a, b))
}

func TestCircleCircleTangent(t *testing.T) {
	n := 6
	a := shape.NewCircle(0, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(1, 2, n), allTrain(3))
	b := shape.NewCircle(1, dual.Var(2, 3, n), dual.Var(0, 4, n), dual.Var(1, 5, n), allTrain(3))
	xs := Intersect(a, b)
	assert.Len(t, xs, 1)
	assert.InDelta(t, 1.0, xs[0].P.X.V, 1e-9)
	assert.InDelta(t, 0.0, xs[0].P.Y.V, 1e-9)
}

func TestCircleCircleGenericTwoPoints(t *testing.T) {
	n := 6
	a := shape.NewCircle(0, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(1, 2, n), allTrain(3))
	b := shape.NewCircle(1, dual.Var(1, 3, n), dual.Var(0, 4, n), dual.Var(1, 5, n), allTrain(3))
	xs := Intersect(a, b)
	assert.Len(t, xs, 2)
	for _, x := range xs {
		assert.InDelta(t, 0.5, x.P.X.V, 1e-9)
		onA := x.P.X.V*x.P.X.V + x.P.Y.V*x.P.Y.V
		assert.InDelta(t, 1.0, onA, 1e-9)
		bx, by := x.P.X.V-1, x.P.Y.V
		assert.InDelta(t, 1.0, bx*bx+by*by, 1e-9)
	}
}

func TestCircleCircleIdenticalYieldsNone(t *testing.T) {
	n := 6
	a := shape.NewCircle(0, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(1, 2, n), allTrain(3))
	b := shape.NewCircle(1, dual.Var(0, 3, n), dual.Var(0, 4, n), dual.Var(1, 5, n), allTrain(3))
	assert.Empty(t, Intersect(a, b))
}

// TestXYRRPairQuarticRecovery exercises ellipsePair's general-conic
// quartic path: two axis-aligned ellipses offset enough to cross at 4
// points, reproducible on both shapes within 1e-9.
func TestXYRRPairQuarticRecovery(t *testing.T) {
	n := 8
	a := shape.NewXYRR(0, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(1, 2, n), dual.Var(2, 3, n), allTrain(4))
	b := shape.NewXYRR(1, dual.Var(0.5, 4, n), dual.Var(0.3, 5, n), dual.Var(1, 6, n), dual.Var(2, 7, n), allTrain(4))

	xs := Intersect(a, b)
	assert.Len(t, xs, 4)

	for _, x := range xs {
		pa := a.PointAtTheta(x.S0.Theta)
		assert.InDelta(t, x.P.X.V, pa.X.V, 1e-9)
		assert.InDelta(t, x.P.Y.V, pa.Y.V, 1e-9)

		pb := b.PointAtTheta(x.S1.Theta)
		assert.InDelta(t, x.P.X.V, pb.X.V, 1e-9)
		assert.InDelta(t, x.P.Y.V, pb.Y.V, 1e-9)

		// On both boundaries: (x/rx)^2+(y/ry)^2 == 1, accounting for centers.
		ax, ay := (x.P.X.V-0)/1, (x.P.Y.V-0)/2
		assert.InDelta(t, 1.0, ax*ax+ay*ay, 1e-6)
		bx, by := (x.P.X.V-0.5)/1, (x.P.Y.V-0.3)/2
		assert.InDelta(t, 1.0, bx*bx+by*by, 1e-6)
	}
}

func TestCircleXYRRMixedPair(t *testing.T) {
	n := 7
	c := shape.NewCircle(0, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(1, 2, n), allTrain(3))
	e := shape.NewXYRR(1, dual.Var(0.8, 3, n), dual.Var(0, 4, n), dual.Var(1, 5, n), dual.Var(0.5, 6, n), allTrain(4))

	xs := Intersect(c, e)
	assert.NotEmpty(t, xs)
	for _, x := range xs {
		dist := x.P.X.V*x.P.X.V + x.P.Y.V*x.P.Y.V
		assert.InDelta(t, 1.0, dist, 1e-6)
	}
}

func TestPolygonPolygonSquareOverlap(t *testing.T) {
	n := 16
	sq := func(setIdx int, x0, y0 float64) *shape.Polygon {
		verts := []dual.Point{
			dual.ConstPoint(x0, y0, n),
			dual.ConstPoint(x0+2, y0, n),
			dual.ConstPoint(x0+2, y0+2, n),
			dual.ConstPoint(x0, y0+2, n),
		}
		return shape.NewPolygon(setIdx, verts, allTrain(8))
	}
	a := sq(0, 0, 0)
	b := sq(1, 1, 1)

	xs := Intersect(a, b)
	assert.Len(t, xs, 2)
}

func TestPolygonCircleEdgeIntersections(t *testing.T) {
	n := 11
	verts := []dual.Point{
		dual.ConstPoint(-2, -2, n),
		dual.ConstPoint(2, -2, n),
		dual.ConstPoint(2, 2, n),
		dual.ConstPoint(-2, 2, n),
	}
	poly := shape.NewPolygon(0, verts, allTrain(8))
	c := shape.NewCircle(1, dual.Var(0, 8, n), dual.Var(0, 9, n), dual.Var(1, 10, n), allTrain(3))

	xs := Intersect(poly, c)
	assert.Empty(t, xs) // circle strictly inside the square, never crosses an edge
}

func TestPairwiseOrdersBySetIndex(t *testing.T) {
	n := 9
	a := shape.NewCircle(0, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(1, 2, n), allTrain(3))
	b := shape.NewCircle(1, dual.Var(1, 3, n), dual.Var(0, 4, n), dual.Var(1, 5, n), allTrain(3))
	c := shape.NewCircle(2, dual.Var(0.5, 6, n), dual.Var(1, 7, n), dual.Var(1, 8, n), allTrain(3))

	xs := Pairwise([]shape.Shape{a, b, c})
	for _, x := range xs {
		assert.Less(t, x.S0.SetIdx, x.S1.SetIdx)
	}
}
