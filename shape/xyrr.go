package shape

import (
	"math"

	"github.com/runsascoded/shapes/dual"
)

// XYRR is an axis-aligned ellipse with center C and radii (Rx, Ry).
type XYRR struct {
	setIdx int
	Cx, Cy dual.Dual
	Rx, Ry dual.Dual
	Mask   []bool // [cx, cy, rx, ry]
}

// NewXYRR builds an XYRR at the given set index. mask must have length
// 4 ([cx, cy, rx, ry]).
func NewXYRR(setIdx int, cx, cy, rx, ry dual.Dual, mask []bool) *XYRR {
	validateMask(KindXYRR, 4, mask)
	return &XYRR{setIdx: setIdx, Cx: cx, Cy: cy, Rx: rx, Ry: ry, Mask: mask}
}

func (e *XYRR) Kind() Kind     { return KindXYRR }
func (e *XYRR) SetIndex() int  { return e.setIdx }
func (e *XYRR) Params() []dual.Dual { return []dual.Dual{e.Cx, e.Cy, e.Rx, e.Ry} }
func (e *XYRR) TrainableMask() []bool { return e.Mask }
func (e *XYRR) ThetaDomain() float64  { return twoPi }

func (e *XYRR) PointAtTheta(theta float64) dual.Point {
	x := dual.Add(e.Cx, dual.MulF(e.Rx, math.Cos(theta)))
	y := dual.Add(e.Cy, dual.MulF(e.Ry, math.Sin(theta)))
	return dual.Point{X: x, Y: y}
}

func (e *XYRR) ThetaOfPoint(p dual.Point) float64 {
	// Unit-circle-frame angle: atan2((y-cy)/ry, (x-cx)/rx).
	u := (p.Y.V - e.Cy.V) / e.Ry.V
	v := (p.X.V - e.Cx.V) / e.Rx.V
	theta := math.Atan2(u, v)
	if theta < 0 {
		theta += twoPi
	}
	return theta
}

func (e *XYRR) Area() dual.Dual {
	return dual.MulF(dual.Mul(e.Rx, e.Ry), math.Pi)
}

func (e *XYRR) Contains(x, y float64) bool {
	dx, dy := (x-e.Cx.V)/e.Rx.V, (y-e.Cy.V)/e.Ry.V
	return dx*dx+dy*dy <= 1
}

func (e *XYRR) Center() (x, y float64) { return e.Cx.V, e.Cy.V }

func (e *XYRR) WithParams(p []dual.Dual) Shape {
	return NewXYRR(e.setIdx, p[0], p[1], p[2], p[3], e.Mask)
}

// Transform returns the affine map from this ellipse's frame to the unit
// circle.
func (e *XYRR) Transform() Transform {
	cos, sin := IdentityRotation(e.Rx.Len())
	return Transform{Cx: e.Cx, Cy: e.Cy, Rx: e.Rx, Ry: e.Ry, CosT: cos, SinT: sin}
}
