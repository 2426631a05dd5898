package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/runsascoded/shapes/dual"
)

func trainAll(n int) []bool {
	m := make([]bool, n)
	for i := range m {
		m[i] = true
	}
	return m
}

func TestCircleAreaAndPointAtTheta(t *testing.T) {
	n := 3
	c := NewCircle(0, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(2, 2, n), trainAll(3))
	assert.InDelta(t, math.Pi*4, c.Area().V, 1e-9)

	p := c.PointAtTheta(0)
	assert.InDelta(t, 2.0, p.X.V, 1e-9)
	assert.InDelta(t, 0.0, p.Y.V, 1e-9)

	theta := c.ThetaOfPoint(p)
	assert.InDelta(t, 0.0, theta, 1e-9)
}

func TestXYRRUnitCircleTransformRoundTrip(t *testing.T) {
	n := 4
	e := NewXYRR(0, dual.Var(1, 0, n), dual.Var(-2, 1, n), dual.Var(3, 2, n), dual.Var(1.5, 3, n), trainAll(4))
	tr := e.Transform()

	p := e.PointAtTheta(0.7)
	u := tr.Apply(p)
	// u should lie on the unit circle.
	assert.InDelta(t, 1.0, u.X.V*u.X.V+u.Y.V*u.Y.V, 1e-9)

	back := tr.Invert(u)
	assert.InDelta(t, p.X.V, back.X.V, 1e-9)
	assert.InDelta(t, p.Y.V, back.Y.V, 1e-9)
}

func TestXYRRTPointAtThetaMatchesRotation(t *testing.T) {
	n := 5
	e := NewXYRRT(0, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(2, 2, n), dual.Var(1, 3, n), dual.Var(math.Pi/2, 4, n), trainAll(5))
	p := e.PointAtTheta(0)
	// rotated 90 degrees CCW: point at theta=0 on unrotated ellipse is (2,0); rotated becomes (0,2).
	assert.InDelta(t, 0.0, p.X.V, 1e-9)
	assert.InDelta(t, 2.0, p.Y.V, 1e-9)
}

func TestPolygonAreaSquare(t *testing.T) {
	n := 8
	verts := []dual.Point{
		dual.NewPoint(dual.Var(0, 0, n), dual.Var(0, 1, n)),
		dual.NewPoint(dual.Var(2, 2, n), dual.Var(0, 3, n)),
		dual.NewPoint(dual.Var(2, 4, n), dual.Var(2, 5, n)),
		dual.NewPoint(dual.Var(0, 6, n), dual.Var(2, 7, n)),
	}
	poly := NewPolygon(0, verts, trainAll(8))
	assert.InDelta(t, 4.0, poly.Area().V, 1e-9)
	assert.True(t, poly.Contains(1, 1))
	assert.False(t, poly.Contains(3, 3))
	assert.Empty(t, poly.CheckValidity())
}

func TestPolygonSelfIntersectionDetected(t *testing.T) {
	n := 8
	// A bowtie: (0,0)-(1,1)-(1,0)-(0,1) crosses itself.
	verts := []dual.Point{
		dual.ConstPoint(0, 0, n),
		dual.ConstPoint(1, 1, n),
		dual.ConstPoint(1, 0, n),
		dual.ConstPoint(0, 1, n),
	}
	poly := NewPolygon(0, verts, trainAll(8))
	assert.NotEmpty(t, poly.CheckValidity())
}

func TestPolygonPointAtThetaInterpolates(t *testing.T) {
	n := 8
	verts := []dual.Point{
		dual.ConstPoint(0, 0, n),
		dual.ConstPoint(2, 0, n),
		dual.ConstPoint(2, 2, n),
		dual.ConstPoint(0, 2, n),
	}
	poly := NewPolygon(0, verts, trainAll(8))
	mid := poly.PointAtTheta(0.5)
	assert.InDelta(t, 1.0, mid.X.V, 1e-9)
	assert.InDelta(t, 0.0, mid.Y.V, 1e-9)
}
