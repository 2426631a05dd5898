package scene

import (
	"sort"

	"github.com/runsascoded/shapes/isect"
	"github.com/runsascoded/shapes/shape"
)

// Edge is a directed arc of one shape's boundary between two consecutive
// intersection nodes in theta-order on that shape (spec.md section 3), or
// the shape's whole boundary loop if it has no intersections (Node0 ==
// Node1 == -1).
type Edge struct {
	SetIdx      int
	Node0       int // index into Scene.Nodes, or -1 for a no-intersection loop
	Node1       int
	Theta0      float64
	Theta1      float64
	Container   []int // other set indices whose interior contains this edge
	ComponentID int
	Outer       bool // true if this edge lies on the outer boundary of its component
}

type shapeNode struct {
	nodeIdx int
	theta   float64
}

// buildEdges constructs, for every shape, the theta-sorted list of edges
// between its incident nodes (spec.md section 4.4 step 3).
func buildEdges(shapes []shape.Shape, nodes []Node, xs []isect.Intersection, assign []int) []Edge {
	perShape := make(map[int][]shapeNode)
	for i, x := range xs {
		n := assign[i]
		perShape[x.S0.SetIdx] = append(perShape[x.S0.SetIdx], shapeNode{n, x.S0.Theta})
		perShape[x.S1.SetIdx] = append(perShape[x.S1.SetIdx], shapeNode{n, x.S1.Theta})
	}

	var edges []Edge
	for _, s := range shapes {
		si := s.SetIndex()
		sns := perShape[si]
		if len(sns) == 0 {
			edges = append(edges, Edge{
				SetIdx: si, Node0: -1, Node1: -1,
				Theta0: 0, Theta1: s.ThetaDomain(),
				Container: containerSet(shapes, si, s.PointAtTheta(0)),
			})
			continue
		}
		sort.Slice(sns, func(a, b int) bool { return sns[a].theta < sns[b].theta })
		// Dedupe near-identical theta entries that coalesced to the same node.
		dedup := sns[:0:0]
		for i, sn := range sns {
			if i > 0 && sn.nodeIdx == sns[i-1].nodeIdx && sn.theta-sns[i-1].theta < 1e-9 {
				continue
			}
			dedup = append(dedup, sn)
		}
		sns = dedup

		m := len(sns)
		for i := 0; i < m; i++ {
			a := sns[i]
			b := sns[(i+1)%m]
			t0, t1 := a.theta, b.theta
			if i == m-1 {
				t1 += s.ThetaDomain()
			}
			mid := t0 + (t1-t0)/2
			for mid >= s.ThetaDomain() {
				mid -= s.ThetaDomain()
			}
			edges = append(edges, Edge{
				SetIdx: si, Node0: a.nodeIdx, Node1: b.nodeIdx,
				Theta0: t0, Theta1: t1,
				Container: containerSet(shapes, si, s.PointAtTheta(mid)),
			})
		}
	}

	for ei := range edges {
		e := &edges[ei]
		if e.Node0 >= 0 {
			nodes[e.Node0].EdgeIDs = append(nodes[e.Node0].EdgeIDs, ei)
		}
		if e.Node1 >= 0 && e.Node1 != e.Node0 {
			nodes[e.Node1].EdgeIDs = append(nodes[e.Node1].EdgeIDs, ei)
		}
	}
	return edges
}

// containerSet returns the indices of every shape other than self whose
// interior contains the sample point p.
func containerSet(shapes []shape.Shape, self int, p interface{ V() (float64, float64) }) []int {
	x, y := p.V()
	var out []int
	for _, s := range shapes {
		if s.SetIndex() == self {
			continue
		}
		if s.Contains(x, y) {
			out = append(out, s.SetIndex())
		}
	}
	return out
}
