package dual

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarGradient(t *testing.T) {
	x := Var(3, 0, 2)
	y := Var(4, 1, 2)
	require.Equal(t, []float64{1, 0}, x.D)
	require.Equal(t, []float64{0, 1}, y.D)

	sum := Add(x, y)
	assert.Equal(t, 7.0, sum.V)
	assert.Equal(t, []float64{1, 1}, sum.D)
}

func TestMulProductRule(t *testing.T) {
	x := Var(3, 0, 1)
	y := Var(4, 0, 1) // sharing the same coordinate: d/dx (x*x) style check
	p := Mul(x, y)
	assert.Equal(t, 12.0, p.V)
	// d(xy)/dv = x*dy/dv + y*dx/dv = 3*1 + 4*1 = 7
	assert.InDelta(t, 7.0, p.D[0], 1e-12)
}

func TestDivAgainstFiniteDifference(t *testing.T) {
	h := 1e-6
	f := func(v float64) float64 { return v / (v + 1) }
	x := Var(2, 0, 1)
	one := Const(1, 1)
	got := Div(x, Add(x, one))
	want := (f(2+h) - f(2-h)) / (2 * h)
	assert.InDelta(t, f(2), got.V, 1e-12)
	assert.InDelta(t, want, got.D[0], 1e-6)
}

func TestSqrtCbrt(t *testing.T) {
	x := Var(9, 0, 1)
	s := Sqrt(x)
	assert.InDelta(t, 3.0, s.V, 1e-12)
	assert.InDelta(t, 1.0/6.0, s.D[0], 1e-12)

	c := Cbrt(Var(8, 0, 1))
	assert.InDelta(t, 2.0, c.V, 1e-12)
	assert.InDelta(t, 1.0/12.0, c.D[0], 1e-9)
}

func TestTrig(t *testing.T) {
	x := Var(math.Pi/4, 0, 1)
	s := Sin(x)
	c := Cos(x)
	assert.InDelta(t, math.Sqrt2/2, s.V, 1e-9)
	assert.InDelta(t, math.Sqrt2/2, c.D[0]*-1, 1e-9) // d(sin)/dx = cos, d(cos)/dx = -sin
	assert.InDelta(t, c.V, s.D[0], 1e-9)
}

func TestAtan2Gradient(t *testing.T) {
	y := Var(1, 0, 2)
	x := Var(1, 1, 2)
	a := Atan2(y, x)
	assert.InDelta(t, math.Pi/4, a.V, 1e-12)
	// d(atan2)/dy = x/(x^2+y^2), d(atan2)/dx = -y/(x^2+y^2)
	assert.InDelta(t, 0.5, a.D[0], 1e-12)
	assert.InDelta(t, -0.5, a.D[1], 1e-12)
}

func TestPowIntegerAndNegative(t *testing.T) {
	x := Var(2, 0, 1)
	cube := Pow(x, 3)
	assert.InDelta(t, 8.0, cube.V, 1e-12)
	assert.InDelta(t, 12.0, cube.D[0], 1e-12)

	inv := Pow(x, -1)
	assert.InDelta(t, 0.5, inv.V, 1e-12)
	assert.InDelta(t, -0.25, inv.D[0], 1e-12)
}

func TestFinite(t *testing.T) {
	ok := Const(1, 2)
	assert.True(t, ok.Finite())

	bad := Div(Const(1, 2), Const(0, 2))
	assert.False(t, bad.Finite())
}

func TestPointDistance(t *testing.T) {
	p := ConstPoint(0, 0, 2)
	q := NewPoint(Var(3, 0, 2), Var(4, 1, 2))
	d := Dist(p, q)
	assert.InDelta(t, 5.0, d.V, 1e-12)
	// d(dist)/dqx = (qx-px)/dist = 3/5, d(dist)/dqy = 4/5
	assert.InDelta(t, 0.6, d.D[0], 1e-9)
	assert.InDelta(t, 0.8, d.D[1], 1e-9)
}
