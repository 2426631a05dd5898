package train

import (
	"math"

	"github.com/runsascoded/shapes/dual"
	"github.com/runsascoded/shapes/isect"
	"github.com/runsascoded/shapes/shape"
)

// pairsWithPositiveOverlap returns every shape-index pair that appears
// together (both present, neither dashed) in some exclusive target key
// with a positive value — these pairs "must overlap" (spec.md section
// 4.6, disjoint penalty).
func pairsWithPositiveOverlap(n int, disjoints map[string]float64) [][2]int {
	var pairs [][2]int
	for key, v := range disjoints {
		if v <= 0 {
			continue
		}
		var present []int
		for i := 0; i < n && i < len(key); i++ {
			if key[i] != '-' {
				present = append(present, i)
			}
		}
		for a := 0; a < len(present); a++ {
			for b := a + 1; b < len(present); b++ {
				pairs = append(pairs, [2]int{present[a], present[b]})
			}
		}
	}
	return pairs
}

// pairsRequiringContainment returns (inner, outer) pairs where every
// positive-target exclusive key mentioning `inner` also mentions `outer` —
// i.e. the targets imply shape inner's positive area only ever occurs
// inside shape outer.
func pairsRequiringContainment(n int, disjoints map[string]float64) [][2]int {
	var pairs [][2]int
	for inner := 0; inner < n; inner++ {
		for outer := 0; outer < n; outer++ {
			if inner == outer {
				continue
			}
			always, any := true, false
			for key, v := range disjoints {
				if v <= 0 || inner >= len(key) || key[inner] == '-' {
					continue
				}
				any = true
				if outer < len(key) && key[outer] == '-' {
					always = false
				}
			}
			if any && always {
				pairs = append(pairs, [2]int{inner, outer})
			}
		}
	}
	return pairs
}

func overlaps(a, b shape.Shape) bool {
	ax, ay := a.Center()
	bx, by := b.Center()
	if a.Contains(bx, by) || b.Contains(ax, ay) {
		return true
	}
	return len(isect.Intersect(a, b)) > 0
}

// nearestSampleDistance picks the closest pair of boundary samples (by
// plain value — an inherently non-differentiable argmin over a discrete
// set) and returns that pair's Dual distance, so the penalty still
// contributes a gradient through the chosen pair's coordinates (spec.md
// section 4.6).
func nearestSampleDistance(a, b shape.Shape) dual.Dual {
	as := shape.Sample(a, shape.NGonSamples)
	bs := shape.Sample(b, shape.NGonSamples)
	bestV := math.Inf(1)
	best := dual.Dist(as[0], bs[0])
	for _, pa := range as {
		for _, pb := range bs {
			v := dual.DistV(pa, pb)
			if v < bestV {
				bestV = v
				best = dual.Dist(pa, pb)
			}
		}
	}
	return best
}

// disjointPenalty adds dist(shape_i, shape_j) * weight for every pair that
// must overlap per the targets but is currently disjoint.
func disjointPenalty(shapes []shape.Shape, pairs [][2]int, weight float64, n int) dual.Dual {
	total := dual.Const(0, n)
	for _, p := range pairs {
		a, b := shapes[p[0]], shapes[p[1]]
		if overlaps(a, b) {
			continue
		}
		total = dual.Add(total, dual.MulF(nearestSampleDistance(a, b), weight))
	}
	return total
}

// containmentPenalty adds (1/dist) * weight for every (inner, outer) pair
// the targets imply should nest but currently don't (inner's boundary
// samples aren't all inside outer).
func containmentPenalty(shapes []shape.Shape, pairs [][2]int, weight float64, n int) dual.Dual {
	total := dual.Const(0, n)
	for _, p := range pairs {
		inner, outer := shapes[p[0]], shapes[p[1]]
		if fullyContains(outer, inner) {
			continue
		}
		d := nearestSampleDistance(inner, outer)
		total = dual.Add(total, dual.MulF(dual.Recip(d), weight))
	}
	return total
}

func fullyContains(outer, inner shape.Shape) bool {
	for _, p := range shape.Sample(inner, shape.NGonSamples) {
		if !outer.Contains(p.X.V, p.Y.V) {
			return false
		}
	}
	return true
}

// regularityPenalty accumulates a self-intersection count penalty and an
// edge-length-variance term for every Polygon among shapes (spec.md
// section 4.6, "polygon regularity").
func regularityPenalty(shapes []shape.Shape, weight float64, n int) dual.Dual {
	total := dual.Const(0, n)
	for _, s := range shapes {
		poly, ok := s.(*shape.Polygon)
		if !ok {
			continue
		}
		issues := poly.CheckValidity()
		if len(issues) > 0 {
			total = dual.Add(total, dual.Const(float64(len(issues))*weight, n))
		}
		total = dual.Add(total, dual.MulF(edgeLengthVariance(poly), weight))
	}
	return total
}

func edgeLengthVariance(poly *shape.Polygon) dual.Dual {
	nEdges := int(poly.ThetaDomain())
	if nEdges < 2 {
		return dual.Const(0, 0)
	}
	lengths := make([]dual.Dual, nEdges)
	gradN := 0
	for i := 0; i < nEdges; i++ {
		a := poly.PointAtTheta(float64(i))
		b := poly.PointAtTheta(float64(i + 1))
		lengths[i] = dual.Dist(a, b)
		gradN = lengths[i].Len()
	}
	mean := dual.Const(0, gradN)
	for _, l := range lengths {
		mean = dual.Add(mean, l)
	}
	mean = dual.DivF(mean, float64(nEdges))

	variance := dual.Const(0, gradN)
	for _, l := range lengths {
		d := dual.Sub(l, mean)
		variance = dual.Add(variance, dual.Mul(d, d))
	}
	return dual.DivF(variance, float64(nEdges))
}

// fragmentPenalty is the optional perimeter/fragment term (spec.md section
// 4.6), a coarse proxy penalizing scenes that split into more than one
// connected component: each extra component beyond one suggests an
// unintended fragmentation of what should be a single connected figure.
// Disabled by default (Config.EnableFragmentPenalty).
func fragmentPenalty(numComponents int, weight float64, n int) dual.Dual {
	extra := numComponents - 1
	if extra <= 0 {
		return dual.Const(0, n)
	}
	return dual.Const(float64(extra)*weight, n)
}
