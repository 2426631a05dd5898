package shape

import "github.com/runsascoded/shapes/dual"

// Transform maps a shape's own frame to and from the unit-circle frame:
// translate by -center, rotate by -rotation, scale by 1/radii (Apply),
// or the inverse composition (Invert). Used by the intersection engine
// to reduce any ellipse pair to a conic-vs-unit-circle problem (spec.md
// section 4.3).
type Transform struct {
	Cx, Cy   dual.Dual
	Rx, Ry   dual.Dual
	CosT     dual.Dual
	SinT     dual.Dual
}

// IdentityRotation returns cos=1, sin=0 duals of gradient length n, for
// shapes (Circle, XYRR) with no rotation parameter.
func IdentityRotation(n int) (cos, sin dual.Dual) {
	return dual.Const(1, n), dual.Const(0, n)
}

// Apply maps p from the shape's own frame into the unit-circle frame.
func (t Transform) Apply(p dual.Point) dual.Point {
	dx := dual.Sub(p.X, t.Cx)
	dy := dual.Sub(p.Y, t.Cy)
	lx := dual.Add(dual.Mul(dx, t.CosT), dual.Mul(dy, t.SinT))
	ly := dual.Add(dual.Neg(dual.Mul(dx, t.SinT)), dual.Mul(dy, t.CosT))
	return dual.Point{X: dual.Div(lx, t.Rx), Y: dual.Div(ly, t.Ry)}
}

// Invert maps u from the unit-circle frame back into the shape's own
// frame.
func (t Transform) Invert(u dual.Point) dual.Point {
	lx := dual.Mul(u.X, t.Rx)
	ly := dual.Mul(u.Y, t.Ry)
	dx := dual.Sub(dual.Mul(lx, t.CosT), dual.Mul(ly, t.SinT))
	dy := dual.Add(dual.Mul(lx, t.SinT), dual.Mul(ly, t.CosT))
	return dual.Point{X: dual.Add(dx, t.Cx), Y: dual.Add(dy, t.Cy)}
}
