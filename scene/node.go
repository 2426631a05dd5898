// Package scene implements the scene analyser of spec.md section 4.4:
// pairwise intersections are coalesced into nodes, nodes are threaded into
// per-shape edges, edges are grouped into connected components by
// union-find, and each component's directed edge cycles are walked to
// enumerate regions with their signed areas and containment keys.
// Grounded on the teacher's recast/region.go (union-find-by-spans,
// sweep-based id assignment) and recast/contour.go (edge walking,
// signed-area accumulation over a boundary).
package scene

import (
	"math"

	"github.com/runsascoded/shapes/dual"
	"github.com/runsascoded/shapes/isect"
)

// Node is a distinct intersection point, with the indices (into the
// scene's Edges slice) of every edge that meets there.
type Node struct {
	P       dual.Point
	EdgeIDs []int
}

// coalesceNodes groups raw intersections into distinct nodes by 2D
// proximity (spec.md section 4.4 step 2), returning the node index each
// intersection was assigned to.
func coalesceNodes(xs []isect.Intersection, tolerance float64) (nodes []Node, assign []int) {
	assign = make([]int, len(xs))
	for i, x := range xs {
		found := -1
		for ni, nd := range nodes {
			if dual.DistV(x.P, nd.P) < tolerance {
				found = ni
				break
			}
		}
		if found < 0 {
			found = len(nodes)
			nodes = append(nodes, Node{P: x.P})
		}
		assign[i] = found
	}
	return nodes, assign
}

func angleTo(from, to dual.Point) float64 {
	return math.Atan2(to.Y.V-from.Y.V, to.X.V-from.X.V)
}
