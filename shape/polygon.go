package shape

import (
	"fmt"
	"math"

	"github.com/arl/assertgo"
	"github.com/runsascoded/shapes/dual"
)

// Polygon is a simple (in the well-formed case) closed polygon; edges
// are straight segments between consecutive vertices, wrapping from the
// last vertex back to the first. Self-intersecting polygons are
// detected by CheckValidity and penalized by package train, but are not
// corrected by this package.
type Polygon struct {
	setIdx int
	Verts  []dual.Point
	Mask   []bool // [x0, y0, x1, y1, ...]
}

// NewPolygon builds a Polygon at the given set index. mask must have
// length 2*len(verts).
func NewPolygon(setIdx int, verts []dual.Point, mask []bool) *Polygon {
	assert.True(len(verts) >= 3, "shape.NewPolygon: need at least 3 vertices, got %d", len(verts))
	validateMask(KindPolygon, 2*len(verts), mask)
	return &Polygon{setIdx: setIdx, Verts: verts, Mask: mask}
}

func (p *Polygon) Kind() Kind    { return KindPolygon }
func (p *Polygon) SetIndex() int { return p.setIdx }

func (p *Polygon) Params() []dual.Dual {
	out := make([]dual.Dual, 0, 2*len(p.Verts))
	for _, v := range p.Verts {
		out = append(out, v.X, v.Y)
	}
	return out
}

func (p *Polygon) TrainableMask() []bool { return p.Mask }

// ThetaDomain is the number of edges: theta ranges over [0, N).
func (p *Polygon) ThetaDomain() float64 { return float64(len(p.Verts)) }

func (p *Polygon) n() int { return len(p.Verts) }

func (p *Polygon) PointAtTheta(theta float64) dual.Point {
	n := p.n()
	edge := int(math.Floor(theta))
	frac := theta - float64(edge)
	edge = ((edge % n) + n) % n
	a := p.Verts[edge]
	b := p.Verts[(edge+1)%n]
	d := b.Sub(a)
	return a.Add(d.Scale(frac))
}

func (p *Polygon) ThetaOfPoint(pt dual.Point) float64 {
	n := p.n()
	px, py := pt.X.V, pt.Y.V
	bestEdge, bestFrac, bestDist := 0, 0.0, math.Inf(1)
	for i := 0; i < n; i++ {
		ax, ay := p.Verts[i].X.V, p.Verts[i].Y.V
		bx, by := p.Verts[(i+1)%n].X.V, p.Verts[(i+1)%n].Y.V
		dx, dy := bx-ax, by-ay
		len2 := dx*dx + dy*dy
		t := 0.0
		if len2 > 0 {
			t = ((px-ax)*dx + (py-ay)*dy) / len2
		}
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		cx, cy := ax+t*dx, ay+t*dy
		ddx, ddy := px-cx, py-cy
		dist := ddx*ddx + ddy*ddy
		if dist < bestDist {
			bestDist, bestEdge, bestFrac = dist, i, t
		}
	}
	return float64(bestEdge) + bestFrac
}

// Area returns the polygon's signed area via the shoelace formula.
// Positive for a CCW-wound polygon, negative for CW.
func (p *Polygon) Area() dual.Dual {
	n := p.n()
	nGrad := p.Verts[0].X.Len()
	sum := dual.Const(0, nGrad)
	for i := 0; i < n; i++ {
		a, b := p.Verts[i], p.Verts[(i+1)%n]
		sum = dual.Add(sum, dual.Sub(dual.Mul(a.X, b.Y), dual.Mul(b.X, a.Y)))
	}
	return dual.MulF(sum, 0.5)
}

// Contains reports whether (x, y) is inside the polygon, via the
// standard ray-casting parity test.
func (p *Polygon) Contains(x, y float64) bool {
	n := p.n()
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := p.Verts[i].X.V, p.Verts[i].Y.V
		xj, yj := p.Verts[j].X.V, p.Verts[j].Y.V
		if (yi > y) != (yj > y) {
			xCross := (xj-xi)*(y-yi)/(yj-yi) + xi
			if x < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// Center returns the unweighted average of the vertices, a sufficient
// representative point for shape-to-shape distance penalties.
func (p *Polygon) Center() (x, y float64) {
	n := p.n()
	for _, v := range p.Verts {
		x += v.X.V
		y += v.Y.V
	}
	return x / float64(n), y / float64(n)
}

func (p *Polygon) WithParams(params []dual.Dual) Shape {
	verts := make([]dual.Point, len(p.Verts))
	for i := range verts {
		verts[i] = dual.NewPoint(params[2*i], params[2*i+1])
	}
	return NewPolygon(p.setIdx, verts, p.Mask)
}

// segIntersect reports whether segments (p1,p2) and (p3,p4) cross,
// using the standard orientation test.
func segIntersect(p1, p2, p3, p4 [2]float64) bool {
	orient := func(a, b, c [2]float64) float64 {
		return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
	}
	d1 := orient(p3, p4, p1)
	d2 := orient(p3, p4, p2)
	d3 := orient(p1, p2, p3)
	d4 := orient(p1, p2, p4)
	return ((d1 > 0) != (d2 > 0)) && ((d3 > 0) != (d4 > 0))
}

// CheckValidity returns a list of human-readable validity issues, one per
// pair of non-adjacent edges that cross. Edge lengths and convexity are
// not checked. An empty result means the polygon is simple.
func (p *Polygon) CheckValidity() []string {
	var issues []string
	n := p.n()
	pt := func(i int) [2]float64 { return [2]float64{p.Verts[i].X.V, p.Verts[i].Y.V} }
	for i := 0; i < n; i++ {
		a1, a2 := pt(i), pt((i+1)%n)
		for j := i + 1; j < n; j++ {
			if j == i || (j+1)%n == i || j == (i+1)%n {
				continue // adjacent edges share an endpoint, not an intersection
			}
			b1, b2 := pt(j), pt((j+1)%n)
			if segIntersect(a1, a2, b1, b2) {
				issues = append(issues, fmt.Sprintf("edge %d intersects edge %d", i, j))
			}
		}
	}
	return issues
}
