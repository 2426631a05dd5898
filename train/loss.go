package train

import (
	"github.com/runsascoded/shapes/dual"
	"github.com/runsascoded/shapes/scene"
	"github.com/runsascoded/shapes/shape"
	"github.com/runsascoded/shapes/target"
)

// Evaluation is the result of scoring one Scene against a Targets map
// (spec.md section 4.6): the reported data error (excluding penalties),
// the combined Dual whose gradient drives the optimiser (data error plus
// penalties), and the per-exclusive-key classification.
type Evaluation struct {
	DataError    dual.Dual
	ForGradient  dual.Dual
	RegionErrors map[string]RegionError
	TotalArea    float64
}

// Evaluate computes the scalar error and penalty-augmented gradient for
// sc against targets, using cfg's penalty weights.
func Evaluate(sc *scene.Scene, targets *target.Targets, cfg Config) Evaluation {
	n := gradientLen(sc.Shapes)
	dataError := dual.Const(0, n)
	regionErrors := make(map[string]RegionError, len(targets.Disjoints))

	totalArea := sc.TotalArea
	for _, key := range sortedTargetKeys(targets.Disjoints) {
		t := targets.Disjoints[key]
		r, present := sc.Region(key)
		actualFrac := 0.0
		var actualFracDual dual.Dual
		if present && totalArea != 0 {
			actualFracDual = dual.DivF(r.Area, totalArea)
			actualFrac = actualFracDual.V
		} else {
			actualFracDual = dual.Const(0, n)
		}
		regionErrors[key] = classify(actualFrac, present, t)

		diff := dual.Sub(actualFracDual, dual.Const(t, n))
		dataError = dual.Add(dataError, dual.Mul(diff, diff))
	}

	overlapPairs := pairsWithPositiveOverlap(targets.N, targets.Disjoints)
	containPairs := pairsRequiringContainment(targets.N, targets.Disjoints)

	penalty := dual.Const(0, n)
	penalty = dual.Add(penalty, disjointPenalty(sc.Shapes, overlapPairs, cfg.DisjointWeight, n))
	penalty = dual.Add(penalty, containmentPenalty(sc.Shapes, containPairs, cfg.ContainmentWeight, n))
	penalty = dual.Add(penalty, regularityPenalty(sc.Shapes, cfg.RegularityWeight, n))
	if cfg.EnableFragmentPenalty {
		penalty = dual.Add(penalty, fragmentPenalty(len(sc.Components), cfg.FragmentWeight, n))
	}

	return Evaluation{
		DataError:    dataError,
		ForGradient:  dual.Add(dataError, penalty),
		RegionErrors: regionErrors,
		TotalArea:    totalArea,
	}
}

func gradientLen(shapes []shape.Shape) int {
	for _, s := range shapes {
		for _, p := range s.Params() {
			return p.Len()
		}
	}
	return 0
}

func sortedTargetKeys(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	// Insertion sort is fine: key counts are 2^n-1, always small for this
	// engine's shape counts, and this keeps loss evaluation dependency-free
	// of the target package's own sortedKeys (unexported there).
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
