package dual

// Point is a 2D point whose coordinates are dual-valued, carrying their
// gradients w.r.t. the scene's trainable-parameter vector. It plays the
// role the teacher's Vec3 plays for navmesh geometry, narrowed to 2
// dimensions and widened to dual scalars.
type Point struct {
	X, Y Dual
}

// NewPoint builds a Point from two Duals.
func NewPoint(x, y Dual) Point { return Point{X: x, Y: y} }

// ConstPoint builds a Point with zero gradient at the given plain
// coordinates.
func ConstPoint(x, y float64, n int) Point {
	return Point{X: Const(x, n), Y: Const(y, n)}
}

// V returns the plain (value-only) coordinates.
func (p Point) V() (x, y float64) { return p.X.V, p.Y.V }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{Add(p.X, q.X), Add(p.Y, q.Y)} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{Sub(p.X, q.X), Sub(p.Y, q.Y)} }

// Scale returns p scaled by the plain constant k.
func (p Point) Scale(k float64) Point { return Point{MulF(p.X, k), MulF(p.Y, k)} }

// Dot returns the dot product p . q.
func Dot(p, q Point) Dual { return Add(Mul(p.X, q.X), Mul(p.Y, q.Y)) }

// Cross returns the 2D cross product (scalar) p x q.
func Cross(p, q Point) Dual { return Sub(Mul(p.X, q.Y), Mul(p.Y, q.X)) }

// Dist returns the Euclidean distance between p and q.
func Dist(p, q Point) Dual {
	d := p.Sub(q)
	return Sqrt(Add(Mul(d.X, d.X), Mul(d.Y, d.Y)))
}

// DistV returns the plain (value-only) Euclidean distance between p and
// q, ignoring gradients; used where only a comparison of distances is
// needed (choosing the nearest sample pair, coalescing nearby points).
func DistV(p, q Point) float64 {
	dx, dy := p.X.V-q.X.V, p.Y.V-q.Y.V
	return Sqrt(Const(dx*dx+dy*dy, 0)).V
}
