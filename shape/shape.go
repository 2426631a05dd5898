// Package shape implements the shape primitives of spec.md section 3:
// Circle, XYRR (axis-aligned ellipse), XYRRT (rotated ellipse) and
// Polygon. Shapes are a small closed tagged variant, dispatched through
// an interface rather than a class hierarchy — the teacher's DtPoly /
// recast polygon-mesh structs take the same approach (a handful of
// fixed kinds, fields accessed through typed methods, never an open
// plugin hierarchy).
package shape

import (
	"math"

	"github.com/arl/assertgo"
	"github.com/runsascoded/shapes/dual"
)

// Kind tags a Shape's concrete variant.
type Kind int

// The closed set of shape kinds.
const (
	KindCircle Kind = iota
	KindXYRR
	KindXYRRT
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindXYRR:
		return "xyrr"
	case KindXYRRT:
		return "xyrrt"
	case KindPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Shape is the dispatch interface implemented by Circle, XYRR, XYRRT and
// Polygon.
type Shape interface {
	// Kind reports the concrete variant.
	Kind() Kind

	// SetIndex is this shape's 0-based position in the input vector.
	SetIndex() int

	// Params returns the shape's dual-valued coordinates, flattened in a
	// fixed, kind-specific order (the same order TrainableMask uses).
	Params() []dual.Dual

	// TrainableMask returns the parallel boolean trainable mask; its
	// length always equals len(Params()).
	TrainableMask() []bool

	// WithParams returns a copy of this shape with its coordinates
	// replaced by params (same order as Params(), same length), used by
	// package train to apply an optimiser step without mutating the
	// shape in place (spec.md section 5: shapes are values, never shared
	// mutably).
	WithParams(params []dual.Dual) Shape

	// PointAtTheta returns the point at canonical boundary parameter
	// theta (radians for Circle/XYRR/XYRRT; edge-index + arc-length
	// fraction for Polygon, see ThetaOfPoint).
	PointAtTheta(theta float64) dual.Point

	// ThetaOfPoint returns the canonical boundary parameter of the
	// point nearest p on the shape's boundary (the left inverse of
	// PointAtTheta on its domain).
	ThetaOfPoint(p dual.Point) float64

	// Area returns the shape's signed area (always non-negative for a
	// simple, non-self-intersecting shape traversed CCW).
	Area() dual.Dual

	// Contains reports whether the plain point (x, y) lies inside the
	// shape's interior.
	Contains(x, y float64) bool

	// Center returns the shape's plain (value-only) centroid, used by
	// the shape-distance penalties.
	Center() (x, y float64)

	// ThetaDomain returns the canonical parameter range [0, max) that
	// ThetaOfPoint/PointAtTheta operate over.
	ThetaDomain() float64
}

// NGonSamples is the default polygon-approximation resolution used when
// sampling a circle or ellipse's boundary for shape-to-shape distance
// penalties (spec.md section 4.6).
const NGonSamples = 32

// Sample returns n points evenly spaced in theta along s's boundary, as
// dual points carrying s's parameter gradients, used by the
// distance-penalty machinery in package train.
func Sample(s Shape, n int) []dual.Point {
	assert.True(n > 0, "shape.Sample: n must be positive, got %d", n)
	max := s.ThetaDomain()
	pts := make([]dual.Point, n)
	for i := 0; i < n; i++ {
		theta := max * float64(i) / float64(n)
		pts[i] = s.PointAtTheta(theta)
	}
	return pts
}

// validateMask panics (via assertgo, compiled out in release builds) if
// mask's length doesn't match the parameter count for kind.
func validateMask(kind Kind, nparams int, mask []bool) {
	assert.True(len(mask) == nparams,
		"shape: %s trainable mask length %d does not match parameter count %d",
		kind, len(mask), nparams)
}

// twoPi is used pervasively as the full-turn theta domain for round
// shapes.
const twoPi = 2 * math.Pi
