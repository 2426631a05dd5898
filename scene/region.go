package scene

import (
	"sort"

	"github.com/arl/assertgo"
	"github.com/runsascoded/shapes/dual"
	"github.com/runsascoded/shapes/shape"
)

// Region is a connected open area of the plane enclosed by a directed edge
// cycle (spec.md section 3).
type Region struct {
	Key       string
	EdgeIdxs  []int // indices into Scene.Edges forming the cycle, in walk order
	Area      dual.Dual
	Container []int
	ChildKeys []string
}

type directedEdge struct {
	edgeIdx int
	fwd     bool // true: Node0 -> Node1 at increasing theta; false: Node1 -> Node0
}

func (d directedEdge) from(edges []Edge) int {
	e := edges[d.edgeIdx]
	if d.fwd {
		return e.Node0
	}
	return e.Node1
}

func (d directedEdge) to(edges []Edge) int {
	e := edges[d.edgeIdx]
	if d.fwd {
		return e.Node1
	}
	return e.Node0
}

func (d directedEdge) twin() directedEdge { return directedEdge{d.edgeIdx, !d.fwd} }

// departureAngle approximates the tangent direction of directed edge d as
// it leaves its `from` node, by sampling a point a short distance into the
// arc and measuring the chord angle — exact for polygon edges (straight),
// a close approximation for curved ones (spec.md section 4.4 step 5,
// "turn into the smallest CCW next edge").
func departureAngle(d directedEdge, edges []Edge, nodes []Node, shapes map[int]shape.Shape) float64 {
	e := edges[d.edgeIdx]
	s := shapes[e.SetIdx]
	t0, t1 := e.Theta0, e.Theta1
	if !d.fwd {
		t0, t1 = t1, t0
	}
	eps := (t1 - t0) * 0.01
	sample := s.PointAtTheta(t0 + eps)
	from := nodes[d.from(edges)].P
	return angleTo(from, sample)
}

// enumerateRegions walks every component's directed edge cycles (faces),
// assigning each a containment key and signed area (spec.md section 4.4
// step 5). Isolated shapes (single no-intersection loop edge) are handled
// directly: their one region is the shape's own interior.
func enumerateRegions(shapes []shape.Shape, nodes []Node, edges []Edge, comps []Component) {
	byIdx := make(map[int]shape.Shape, len(shapes))
	for _, s := range shapes {
		byIdx[s.SetIndex()] = s
	}
	n := len(shapes)

	for ci := range comps {
		c := &comps[ci]
		if len(c.EdgeIdxs) == 1 && edges[c.EdgeIdxs[0]].Node0 < 0 {
			ei := c.EdgeIdxs[0]
			e := edges[ei]
			s := byIdx[e.SetIdx]
			key := regionKey(n, e.SetIdx, e.Container)
			c.Regions = append(c.Regions, Region{
				Key:       key,
				EdgeIdxs:  []int{ei},
				Area:      s.Area(),
				Container: append([]int{e.SetIdx}, e.Container...),
			})
			// A lone shape's single loop edge is its own component's
			// entire outer boundary.
			edges[ei].Outer = true
			c.Hull = []int{ei}
			continue
		}
		c.Regions = append(c.Regions, walkFaces(byIdx, nodes, edges, c, n)...)
	}
}

func walkFaces(shapes map[int]shape.Shape, nodes []Node, edges []Edge, c *Component, nShapes int) []Region {
	// outgoing[node] = directed edges departing that node, sorted by angle.
	outgoing := make(map[int][]directedEdge)
	for _, ei := range c.EdgeIdxs {
		e := edges[ei]
		if e.Node0 < 0 {
			continue
		}
		outgoing[e.Node0] = append(outgoing[e.Node0], directedEdge{ei, true})
		if e.Node1 != e.Node0 {
			outgoing[e.Node1] = append(outgoing[e.Node1], directedEdge{ei, false})
		}
	}
	angle := make(map[directedEdge]float64)
	for node, ds := range outgoing {
		for _, d := range ds {
			angle[d] = departureAngle(d, edges, nodes, shapes)
		}
		sort.Slice(outgoing[node], func(i, j int) bool {
			return angle[outgoing[node][i]] < angle[outgoing[node][j]]
		})
	}

	visited := make(map[directedEdge]bool)
	var regions []Region
	for _, ei := range c.EdgeIdxs {
		if edges[ei].Node0 < 0 {
			continue
		}
		for _, start := range []directedEdge{{ei, true}, {ei, false}} {
			if visited[start] {
				continue
			}
			cycle := walkOneFace(start, outgoing, angle, edges, visited)
			if len(cycle) == 0 {
				continue
			}
			region := buildRegion(cycle, shapes, edges, nShapes)
			// The outer boundary of the component is the one CW face
			// (negative signed area, spec.md section 4.4 step 5): it
			// isn't a region of its own, so record it on the edges and
			// component hull and leave it out of Regions/TotalArea.
			if region.Area.V < 0 {
				for _, d := range cycle {
					edges[d.edgeIdx].Outer = true
				}
				c.Hull = append(c.Hull, region.EdgeIdxs...)
				continue
			}
			regions = append(regions, region)
		}
	}
	return regions
}

func walkOneFace(start directedEdge, outgoing map[int][]directedEdge, angle map[directedEdge]float64, edges []Edge, visited map[directedEdge]bool) []directedEdge {
	var cycle []directedEdge
	cur := start
	for i := 0; i < 4*len(edges)+8; i++ {
		if visited[cur] {
			if len(cycle) > 0 && cur == start {
				break
			}
			return nil // malformed (revisited without closing)
		}
		visited[cur] = true
		cycle = append(cycle, cur)

		v := cur.to(edges)
		outs := outgoing[v]
		if len(outs) == 0 {
			return nil
		}
		tw := cur.twin()
		idx := -1
		for k, o := range outs {
			if o == tw {
				idx = k
				break
			}
		}
		if idx < 0 {
			return nil
		}
		next := outs[(idx+1)%len(outs)]
		if next == start {
			break
		}
		cur = next
	}
	return cycle
}

// buildRegion computes a face's signed area and its containment key.
// Membership isn't decided from which shapes own the cycle's edges —
// every face of a connected component is bounded by arcs of every shape
// in it, own-shape and other-shape alike — but from where the face's
// interior actually sits relative to every shape (spec.md section 3:
// "position i is the shape character iff the region's interior is
// inside shape i"). A point just inside the first edge's arc settles
// that directly, sidestepping any separate edge-orientation bookkeeping.
func buildRegion(cycle []directedEdge, shapes map[int]shape.Shape, edges []Edge, nShapes int) Region {
	n := 0
	area := dual.Const(0, 0)
	var ix, iy float64
	for i, d := range cycle {
		e := edges[d.edgeIdx]
		s := shapes[e.SetIdx]
		t0, t1 := e.Theta0, e.Theta1
		if !d.fwd {
			t0, t1 = t1, t0
		}
		contrib := arcAreaContribution(s, t0, t1)
		if i == 0 {
			n = contrib.Len()
			area = dual.Const(0, n)
			ix, iy = interiorSample(s, t0, t1)
		}
		area = dual.Add(area, contrib)
	}

	key, members := keyForPoint(shapes, nShapes, ix, iy)

	return Region{
		Key:       key,
		EdgeIdxs:  edgeIdxsOf(cycle),
		Area:      area,
		Container: members,
	}
}

// interiorSample returns a point just off the arc of shape s between t0
// and t1, nudged toward the side the cycle is traced on. For a
// positive-area (CCW) face this side is unambiguously the interior: the
// standard shoelace-sign fact that a CCW simple polygon has its
// interior to the left of its boundary's direction of travel, which
// holds regardless of which shape drew the arc or which way the
// face-walk's half-edge bookkeeping happened to traverse it.
func interiorSample(s shape.Shape, t0, t1 float64) (x, y float64) {
	mid := t0 + (t1-t0)*0.5
	step := (t1 - t0) * 1e-3
	p := s.PointAtTheta(mid)
	ahead := s.PointAtTheta(mid + step)
	tx, ty := ahead.X.V-p.X.V, ahead.Y.V-p.Y.V
	return p.X.V - ty, p.Y.V + tx
}

// keyForPoint renders the region key implied by point (x, y): position
// i is the shape digit iff shape i's interior contains the point,
// tested directly against every shape rather than inferred from edge
// bookkeeping (spec.md section 3).
func keyForPoint(shapes map[int]shape.Shape, nShapes int, x, y float64) (string, []int) {
	key := make([]byte, nShapes)
	var members []int
	for i := 0; i < nShapes; i++ {
		key[i] = '-'
		if s, ok := shapes[i]; ok && s.Contains(x, y) {
			key[i] = digitChar(i)
			members = append(members, i)
		}
	}
	assert.True(len(key) == nShapes, "keyForPoint: key width %d does not match shape count %d", len(key), nShapes)
	return string(key), members
}

func edgeIdxsOf(cycle []directedEdge) []int {
	out := make([]int, len(cycle))
	for i, d := range cycle {
		out[i] = d.edgeIdx
	}
	return out
}

// arcAreaContribution returns the signed-area contribution (shoelace
// integral) of shape s's boundary between theta0 and theta1. Polygon edges
// are straight (the two-endpoint shoelace term is exact); Circle, XYRR and
// XYRRT arcs use the closed form of the same integral, differentiable
// through dual arithmetic.
func arcAreaContribution(s shape.Shape, theta0, theta1 float64) dual.Dual {
	if _, ok := s.(*shape.Polygon); ok {
		return segmentArea(s.PointAtTheta(theta0), s.PointAtTheta(theta1))
	}
	t := s.(interface{ Transform() shape.Transform }).Transform()
	p0, p1 := s.PointAtTheta(theta0), s.PointAtTheta(theta1)
	// ½∫(x dy − y dx) along P(θ) = C + L(θ): the center terms reduce to
	// C × (P1 − P0) and L × L' is the constant rx·ry.
	sum := dual.Sub(dual.Mul(t.Cx, dual.Sub(p1.Y, p0.Y)), dual.Mul(t.Cy, dual.Sub(p1.X, p0.X)))
	sum = dual.Add(sum, dual.MulF(dual.Mul(t.Rx, t.Ry), theta1-theta0))
	return dual.MulF(sum, 0.5)
}

func segmentArea(a, b dual.Point) dual.Dual {
	return dual.MulF(dual.Sub(dual.Mul(a.X, b.Y), dual.Mul(b.X, a.Y)), 0.5)
}

func regionKey(nShapes, self int, container []int) string {
	key := make([]byte, nShapes)
	for i := range key {
		key[i] = '-'
	}
	if self >= 0 && self < nShapes {
		key[self] = digitChar(self)
	}
	for _, m := range container {
		if m >= 0 && m < nShapes {
			key[m] = digitChar(m)
		}
	}
	return string(key)
}

// digitChar renders a shape index as the single-character digit the
// region key uses. Indices above 9 fall back to a letter so the key stays
// a fixed one-character-per-shape width (spec.md section 6: "implementation-
// defined but consistent" beyond 10 shapes).
func digitChar(i int) byte {
	if i < 10 {
		return byte('0' + i)
	}
	return byte('a' + (i - 10))
}
