package shape

import (
	"math"

	"github.com/runsascoded/shapes/dual"
)

// Circle is a shape with center C and radius R.
type Circle struct {
	setIdx int
	Cx, Cy dual.Dual
	R      dual.Dual
	Mask   []bool // [cx, cy, r]
}

// NewCircle builds a Circle at the given set index. mask must have
// length 3 ([cx, cy, r]).
func NewCircle(setIdx int, cx, cy, r dual.Dual, mask []bool) *Circle {
	validateMask(KindCircle, 3, mask)
	return &Circle{setIdx: setIdx, Cx: cx, Cy: cy, R: r, Mask: mask}
}

func (c *Circle) Kind() Kind     { return KindCircle }
func (c *Circle) SetIndex() int  { return c.setIdx }
func (c *Circle) Params() []dual.Dual { return []dual.Dual{c.Cx, c.Cy, c.R} }
func (c *Circle) TrainableMask() []bool { return c.Mask }
func (c *Circle) ThetaDomain() float64  { return twoPi }

func (c *Circle) PointAtTheta(theta float64) dual.Point {
	x := dual.Add(c.Cx, dual.MulF(c.R, math.Cos(theta)))
	y := dual.Add(c.Cy, dual.MulF(c.R, math.Sin(theta)))
	return dual.Point{X: x, Y: y}
}

func (c *Circle) ThetaOfPoint(p dual.Point) float64 {
	theta := math.Atan2(p.Y.V-c.Cy.V, p.X.V-c.Cx.V)
	if theta < 0 {
		theta += twoPi
	}
	return theta
}

func (c *Circle) Area() dual.Dual {
	return dual.MulF(dual.Mul(c.R, c.R), math.Pi)
}

func (c *Circle) Contains(x, y float64) bool {
	dx, dy := x-c.Cx.V, y-c.Cy.V
	return dx*dx+dy*dy <= c.R.V*c.R.V
}

func (c *Circle) Center() (x, y float64) { return c.Cx.V, c.Cy.V }

func (c *Circle) WithParams(p []dual.Dual) Shape {
	return NewCircle(c.setIdx, p[0], p[1], p[2], c.Mask)
}

// Transform returns the affine map from this circle's frame to the unit
// circle.
func (c *Circle) Transform() Transform {
	cos, sin := IdentityRotation(c.R.Len())
	return Transform{Cx: c.Cx, Cy: c.Cy, Rx: c.R, Ry: c.R, CosT: cos, SinT: sin}
}
