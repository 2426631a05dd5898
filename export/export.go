// Package export projects the engine's Dual-valued, shape-typed internal
// state into plain data (spec.md section 6 "Persisted state"), the way
// the teacher's navmeshcreate.go turns its in-memory mesh-build structures
// into the plain vertex/index/flag arrays a renderer or file format needs
// — no Dual, no Shape interface, just numbers, strings and slices.
package export

import (
	"github.com/runsascoded/shapes/scene"
	"github.com/runsascoded/shapes/shape"
	"github.com/runsascoded/shapes/target"
	"github.com/runsascoded/shapes/train"
)

// Shape is the plain projection of a shape.Shape: its kind, its
// dual-unwrapped coordinates in Params() order, and the trainable mask.
type Shape struct {
	Kind      string    `json:"kind" yaml:"kind"`
	SetIndex  int       `json:"set_index" yaml:"set_index"`
	Params    []float64 `json:"params" yaml:"params"`
	Trainable []bool    `json:"trainable" yaml:"trainable"`
}

// FromShape projects a single shape.Shape.
func FromShape(s shape.Shape) Shape {
	params := s.Params()
	vals := make([]float64, len(params))
	for i, p := range params {
		vals[i] = p.V
	}
	return Shape{
		Kind:      s.Kind().String(),
		SetIndex:  s.SetIndex(),
		Params:    vals,
		Trainable: s.TrainableMask(),
	}
}

// Point is a plain 2D point.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Edge is the plain projection of scene.Edge.
type Edge struct {
	SetIndex    int     `json:"set_index" yaml:"set_index"`
	Node0       int     `json:"node0" yaml:"node0"`
	Node1       int     `json:"node1" yaml:"node1"`
	Theta0      float64 `json:"theta0" yaml:"theta0"`
	Theta1      float64 `json:"theta1" yaml:"theta1"`
	Container   []int   `json:"container" yaml:"container"`
	ComponentID int     `json:"component_id" yaml:"component_id"`
	Outer       bool    `json:"outer" yaml:"outer"`
}

func fromEdge(e scene.Edge) Edge {
	return Edge{
		SetIndex:    e.SetIdx,
		Node0:       e.Node0,
		Node1:       e.Node1,
		Theta0:      e.Theta0,
		Theta1:      e.Theta1,
		Container:   e.Container,
		ComponentID: e.ComponentID,
		Outer:       e.Outer,
	}
}

// Region is the plain projection of scene.Region.
type Region struct {
	Key       string   `json:"key" yaml:"key"`
	Area      float64  `json:"area" yaml:"area"`
	Container []int    `json:"container" yaml:"container"`
	ChildKeys []string `json:"child_keys" yaml:"child_keys"`
}

func fromRegion(r scene.Region) Region {
	return Region{Key: r.Key, Area: r.Area.V, Container: r.Container, ChildKeys: r.ChildKeys}
}

// Component projects scene.Component to {key, points, edges, regions,
// hull} per spec.md section 6.
type Component struct {
	Key       int      `json:"key" yaml:"key"`
	Points    []Point  `json:"points" yaml:"points"`
	Edges     []Edge   `json:"edges" yaml:"edges"`
	Regions   []Region `json:"regions" yaml:"regions"`
	Hull      []int    `json:"hull" yaml:"hull"`
	ChildKeys []int    `json:"child_keys" yaml:"child_keys"`
}

func fromComponent(c scene.Component, nodes []scene.Node, edges []scene.Edge) Component {
	points := make([]Point, len(c.NodeIdxs))
	for i, ni := range c.NodeIdxs {
		x, y := nodes[ni].P.V()
		points[i] = Point{X: x, Y: y}
	}
	edgeProjs := make([]Edge, len(c.EdgeIdxs))
	for i, ei := range c.EdgeIdxs {
		edgeProjs[i] = fromEdge(edges[ei])
	}
	regionProjs := make([]Region, len(c.Regions))
	for i, r := range c.Regions {
		regionProjs[i] = fromRegion(r)
	}
	return Component{
		Key:       c.Key,
		Points:    points,
		Edges:     edgeProjs,
		Regions:   regionProjs,
		Hull:      c.Hull,
		ChildKeys: c.ChildKeys,
	}
}

// RegionError is the plain projection of train.RegionError.
type RegionError struct {
	Kind   string  `json:"kind" yaml:"kind"`
	Signed float64 `json:"signed" yaml:"signed"`
}

// Step is the plain projection of train.Step, per spec.md section 6's
// persisted-state shape: {shapes, components, targets, total_area,
// errors, error, converged, penalties}.
type Step struct {
	Index      int                    `json:"index" yaml:"index"`
	Shapes     []Shape                `json:"shapes" yaml:"shapes"`
	Components []Component            `json:"components" yaml:"components"`
	Targets    map[string]float64     `json:"targets" yaml:"targets"`
	TotalArea  float64                `json:"total_area" yaml:"total_area"`
	Errors     map[string]RegionError `json:"errors" yaml:"errors"`
	Error      float64                `json:"error" yaml:"error"`
	Converged  bool                   `json:"converged" yaml:"converged"`
	Penalties  float64                `json:"penalties" yaml:"penalties"`
}

// FromStep projects a train.Step (and the target.Targets it was scored
// against) into a transport-agnostic Step.
func FromStep(step train.Step, targets *target.Targets) Step {
	shapes := make([]Shape, len(step.Shapes))
	for i, s := range step.Shapes {
		shapes[i] = FromShape(s)
	}

	var components []Component
	if step.Scene != nil {
		components = make([]Component, len(step.Scene.Components))
		for i, c := range step.Scene.Components {
			components[i] = fromComponent(c, step.Scene.Nodes, step.Scene.Edges)
		}
	}

	var targetsOut map[string]float64
	if targets != nil {
		targetsOut = targets.Disjoints
	}

	errs := make(map[string]RegionError, len(step.RegionErrors))
	for k, re := range step.RegionErrors {
		errs[k] = RegionError{Kind: re.Kind.String(), Signed: re.Signed}
	}

	return Step{
		Index:      step.Index,
		Shapes:     shapes,
		Components: components,
		Targets:    targetsOut,
		TotalArea:  totalAreaOf(step),
		Errors:     errs,
		Error:      step.Error,
		Converged:  step.Converged,
		Penalties:  step.Penalty,
	}
}

func totalAreaOf(step train.Step) float64 {
	if step.Scene == nil {
		return 0
	}
	return step.Scene.TotalArea
}
