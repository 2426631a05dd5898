package shape

import (
	"math"

	"github.com/runsascoded/shapes/dual"
)

// XYRRT is an ellipse with center C, radii (Rx, Ry) and CCW rotation T
// (radians).
type XYRRT struct {
	setIdx int
	Cx, Cy dual.Dual
	Rx, Ry dual.Dual
	T      dual.Dual
	Mask   []bool // [cx, cy, rx, ry, t]
}

// NewXYRRT builds an XYRRT at the given set index. mask must have
// length 5 ([cx, cy, rx, ry, t]).
func NewXYRRT(setIdx int, cx, cy, rx, ry, t dual.Dual, mask []bool) *XYRRT {
	validateMask(KindXYRRT, 5, mask)
	return &XYRRT{setIdx: setIdx, Cx: cx, Cy: cy, Rx: rx, Ry: ry, T: t, Mask: mask}
}

func (e *XYRRT) Kind() Kind     { return KindXYRRT }
func (e *XYRRT) SetIndex() int  { return e.setIdx }
func (e *XYRRT) Params() []dual.Dual { return []dual.Dual{e.Cx, e.Cy, e.Rx, e.Ry, e.T} }
func (e *XYRRT) TrainableMask() []bool { return e.Mask }
func (e *XYRRT) ThetaDomain() float64  { return twoPi }

func (e *XYRRT) PointAtTheta(theta float64) dual.Point {
	// Local (unrotated) point on the axis-aligned ellipse, then rotate
	// by T and translate by C.
	lx := dual.MulF(e.Rx, math.Cos(theta))
	ly := dual.MulF(e.Ry, math.Sin(theta))
	cosT, sinT := dual.Cos(e.T), dual.Sin(e.T)
	x := dual.Add(e.Cx, dual.Sub(dual.Mul(lx, cosT), dual.Mul(ly, sinT)))
	y := dual.Add(e.Cy, dual.Add(dual.Mul(lx, sinT), dual.Mul(ly, cosT)))
	return dual.Point{X: x, Y: y}
}

func (e *XYRRT) ThetaOfPoint(p dual.Point) float64 {
	dx, dy := p.X.V-e.Cx.V, p.Y.V-e.Cy.V
	cosT, sinT := math.Cos(e.T.V), math.Sin(e.T.V)
	// Inverse-rotate into the axis-aligned frame.
	lx := dx*cosT + dy*sinT
	ly := -dx*sinT + dy*cosT
	theta := math.Atan2(ly/e.Ry.V, lx/e.Rx.V)
	if theta < 0 {
		theta += twoPi
	}
	return theta
}

func (e *XYRRT) Area() dual.Dual {
	return dual.MulF(dual.Mul(e.Rx, e.Ry), math.Pi)
}

func (e *XYRRT) Contains(x, y float64) bool {
	dx, dy := x-e.Cx.V, y-e.Cy.V
	cosT, sinT := math.Cos(e.T.V), math.Sin(e.T.V)
	lx := dx*cosT + dy*sinT
	ly := -dx*sinT + dy*cosT
	u, v := lx/e.Rx.V, ly/e.Ry.V
	return u*u+v*v <= 1
}

func (e *XYRRT) Center() (x, y float64) { return e.Cx.V, e.Cy.V }

func (e *XYRRT) WithParams(p []dual.Dual) Shape {
	return NewXYRRT(e.setIdx, p[0], p[1], p[2], p[3], p[4], e.Mask)
}

// Transform returns the affine map from this ellipse's frame to the unit
// circle.
func (e *XYRRT) Transform() Transform {
	return Transform{Cx: e.Cx, Cy: e.Cy, Rx: e.Rx, Ry: e.Ry, CosT: dual.Cos(e.T), SinT: dual.Sin(e.T)}
}
