package cmd

import (
	"fmt"

	"github.com/arl/gobj"

	"github.com/runsascoded/shapes/dual"
	"github.com/runsascoded/shapes/shape"
	"github.com/runsascoded/shapes/vennerr"
)

// ShapeSpec is one shape's plain-data description in a run config file:
// its kind, its initial coordinates (ignored for a polygon loaded from
// OBJFile), and its trainable mask.
type ShapeSpec struct {
	Kind      string    `yaml:"kind"`
	Params    []float64 `yaml:"params"`
	Trainable []bool    `yaml:"trainable"`
	OBJFile   string    `yaml:"obj,omitempty"`
}

// RunSpec is the top-level run-config file shape consumed by the `run`
// and `inspect` subcommands.
type RunSpec struct {
	Shapes  []ShapeSpec        `yaml:"shapes"`
	Targets map[string]float64 `yaml:"targets"`
}

// assembleShapes builds a Scene-ready []shape.Shape from specs, assigning
// each coordinate a basis index in one shared gradient vector (spec.md
// section 3: every Dual in a Scene shares one fixed-length D).
func assembleShapes(specs []ShapeSpec) ([]shape.Shape, error) {
	allParams := make([][]float64, len(specs))
	total := 0
	for i, sp := range specs {
		params, err := specParams(sp)
		if err != nil {
			return nil, err
		}
		allParams[i] = params
		total += len(params)
	}

	shapes := make([]shape.Shape, len(specs))
	cursor := 0
	for i, sp := range specs {
		params := allParams[i]
		if len(sp.Trainable) != len(params) {
			return nil, vennerr.New(vennerr.InvalidInput,
				"shape %d (%s): trainable mask length %d != param count %d", i, sp.Kind, len(sp.Trainable), len(params))
		}

		duals := make([]dual.Dual, len(params))
		for j, v := range params {
			duals[j] = dual.Var(v, cursor+j, total)
		}
		cursor += len(params)

		s, err := buildShape(i, sp.Kind, duals, sp.Trainable)
		if err != nil {
			return nil, err
		}
		shapes[i] = s
	}
	return shapes, nil
}

func specParams(sp ShapeSpec) ([]float64, error) {
	if sp.Kind == "polygon" && sp.OBJFile != "" {
		verts, err := loadOBJPolygon(sp.OBJFile)
		if err != nil {
			return nil, err
		}
		params := make([]float64, 2*len(verts))
		for i, v := range verts {
			params[2*i] = v[0]
			params[2*i+1] = v[1]
		}
		return params, nil
	}
	return sp.Params, nil
}

func buildShape(setIdx int, kind string, p []dual.Dual, mask []bool) (shape.Shape, error) {
	switch kind {
	case "circle":
		if len(p) != 3 {
			return nil, vennerr.New(vennerr.InvalidInput, "circle needs 3 params (cx, cy, r), got %d", len(p))
		}
		return shape.NewCircle(setIdx, p[0], p[1], p[2], mask), nil
	case "xyrr":
		if len(p) != 4 {
			return nil, vennerr.New(vennerr.InvalidInput, "xyrr needs 4 params (cx, cy, rx, ry), got %d", len(p))
		}
		return shape.NewXYRR(setIdx, p[0], p[1], p[2], p[3], mask), nil
	case "xyrrt":
		if len(p) != 5 {
			return nil, vennerr.New(vennerr.InvalidInput, "xyrrt needs 5 params (cx, cy, rx, ry, theta), got %d", len(p))
		}
		return shape.NewXYRRT(setIdx, p[0], p[1], p[2], p[3], p[4], mask), nil
	case "polygon":
		if len(p)%2 != 0 || len(p) < 6 {
			return nil, vennerr.New(vennerr.InvalidInput, "polygon needs an even count >= 6 of params (x0,y0,x1,y1,...), got %d", len(p))
		}
		verts := make([]dual.Point, len(p)/2)
		for i := range verts {
			verts[i] = dual.NewPoint(p[2*i], p[2*i+1])
		}
		return shape.NewPolygon(setIdx, verts, mask), nil
	default:
		return nil, vennerr.New(vennerr.InvalidInput, "unknown shape kind %q", kind)
	}
}

// loadOBJPolygon reads an .obj file's first polygon and projects its
// vertices onto the XY plane (dropping Z), the same vertex-extraction
// path the teacher's recast.MeshLoaderObj uses for level geometry, here
// repurposed to seed a single 2D Polygon shape instead of a 3D mesh.
func loadOBJPolygon(path string) ([][2]float64, error) {
	obj, err := gobj.Load(path)
	if err != nil {
		return nil, vennerr.Wrap(vennerr.InvalidInput, err, "loading OBJ polygon from %s", path)
	}
	polys := obj.Polys()
	if len(polys) == 0 {
		return nil, vennerr.New(vennerr.InvalidInput, "%s: no polygons found", path)
	}
	poly := polys[0]
	if len(poly) < 3 {
		return nil, vennerr.New(vennerr.InvalidInput, "%s: first polygon has %d vertices, need >= 3", path, len(poly))
	}
	out := make([][2]float64, len(poly))
	for i, v := range poly {
		out[i] = [2]float64{v.X(), v.Y()}
	}
	return out, nil
}

func describeShapes(shapes []shape.Shape) string {
	s := ""
	for i, sh := range shapes {
		s += fmt.Sprintf("  [%d] %s %v\n", i, sh.Kind(), sh.Params())
	}
	return s
}
