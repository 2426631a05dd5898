package scene

import (
	"github.com/runsascoded/shapes/isect"
	"github.com/runsascoded/shapes/shape"
	"github.com/runsascoded/shapes/vennctx"
	"github.com/runsascoded/shapes/vennerr"
)

// DefaultTolerance is the default 2D proximity tolerance used to coalesce
// intersections into nodes (spec.md section 4.4 step 2).
const DefaultTolerance = 1e-10

// Scene is the immutable result of analysing a fixed list of shapes: every
// pairwise intersection resolved into nodes, edges, connected components
// and the lattice of regions within each component (spec.md section 4.4).
type Scene struct {
	Shapes     []shape.Shape
	Nodes      []Node
	Edges      []Edge
	Components []Component
	// TotalArea is the sum of every exclusive region's area across all
	// components (spec.md section 4.6).
	TotalArea float64
}

// Build runs the full scene analysis pipeline. ctx may be nil.
func Build(ctx *vennctx.Context, shapes []shape.Shape) (*Scene, error) {
	ctx.StartTimer(vennctx.TimerSceneBuild)
	defer ctx.StopTimer(vennctx.TimerSceneBuild)

	if len(shapes) == 0 {
		return nil, vennerr.New(vennerr.InvalidInput, "scene.Build: no shapes")
	}
	for i, s := range shapes {
		if s.SetIndex() != i {
			return nil, vennerr.New(vennerr.InvalidInput,
				"scene.Build: shapes[%d].SetIndex() = %d, want %d (shapes must be supplied in set-index order)", i, s.SetIndex(), i)
		}
	}

	xs := isect.Pairwise(shapes)
	ctx.Progressf("scene: %d pairwise intersections", len(xs))

	nodes, assign := coalesceNodes(xs, DefaultTolerance)
	ctx.Progressf("scene: %d nodes", len(nodes))

	edges := buildEdges(shapes, nodes, xs, assign)
	ctx.Progressf("scene: %d edges", len(edges))

	comps := groupComponents(edges)
	enumerateRegions(shapes, nodes, edges, comps)
	assignDepth(shapes, nodes, edges, comps)
	ctx.Progressf("scene: %d components", len(comps))

	total := 0.0
	for _, c := range comps {
		for _, r := range c.Regions {
			total += r.Area.V
		}
	}

	sc := &Scene{Shapes: shapes, Nodes: nodes, Edges: edges, Components: comps, TotalArea: total}
	if err := checkConsistency(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// Region looks up a region by its key across every component.
func (s *Scene) Region(key string) (Region, bool) {
	for _, c := range s.Components {
		for _, r := range c.Regions {
			if r.Key == key {
				return r, true
			}
		}
	}
	return Region{}, false
}

// Regions returns every region across every component, in component order.
func (s *Scene) Regions() []Region {
	var out []Region
	for _, c := range s.Components {
		out = append(out, c.Regions...)
	}
	return out
}
