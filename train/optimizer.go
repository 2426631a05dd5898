package train

import (
	"math"

	"github.com/arl/assertgo"
	"github.com/runsascoded/shapes/dual"
	"github.com/runsascoded/shapes/shape"
)

// trainableMask returns, for every position in the shared gradient
// vector, whether some shape's coordinate at that basis index is
// trainable. A coordinate never touched by any shape's Params() (there
// shouldn't be any) is left false.
func trainableMask(shapes []shape.Shape) []bool {
	n := gradientLen(shapes)
	mask := make([]bool, n)
	for _, s := range shapes {
		tm := s.TrainableMask()
		for i, p := range s.Params() {
			if tm[i] {
				mask[idxOf(p)] = true
			}
		}
	}
	return mask
}

// idxOf recovers the basis index a Dual built via dual.Var(v, idx, n)
// carries: the one position in D equal to 1 (others 0). Coordinates built
// any other way (e.g. a derived Const) have no single basis index and
// are not valid shape inputs to the training driver.
func idxOf(d dual.Dual) int {
	for i, v := range d.D {
		if v == 1 {
			return i
		}
	}
	return -1
}

// extractGradient reads the gradient of a scalar Dual with respect to
// every trainable coordinate, zeroing the rest.
func extractGradient(loss dual.Dual, trainable []bool) []float64 {
	assert.True(len(loss.D) == len(trainable),
		"extractGradient: gradient length %d does not match trainable mask length %d", len(loss.D), len(trainable))
	g := make([]float64, len(loss.D))
	for i, ok := range trainable {
		if ok {
			g[i] = loss.D[i]
		}
	}
	return g
}

func gradNorm(g []float64) float64 {
	sum := 0.0
	for _, v := range g {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// clipGradient applies robust mode's norm and per-component clipping
// (spec.md section 4.7).
func clipGradient(g []float64, maxNorm, maxValue float64) []float64 {
	out := make([]float64, len(g))
	copy(out, g)
	if maxValue > 0 {
		for i, v := range out {
			if v > maxValue {
				out[i] = maxValue
			} else if v < -maxValue {
				out[i] = -maxValue
			}
		}
	}
	if maxNorm > 0 {
		if n := gradNorm(out); n > maxNorm {
			scale := maxNorm / n
			for i := range out {
				out[i] *= scale
			}
		}
	}
	return out
}

// adamState holds Adam's per-coordinate first/second moment estimates.
type adamState struct {
	m, v []float64
	t    int
}

func newAdamState(n int) *adamState { return &adamState{m: make([]float64, n), v: make([]float64, n)} }

func (a *adamState) update(g []float64, rate, beta1, beta2, eps float64) []float64 {
	a.t++
	delta := make([]float64, len(g))
	b1t := math.Pow(beta1, float64(a.t))
	b2t := math.Pow(beta2, float64(a.t))
	for i, gi := range g {
		a.m[i] = beta1*a.m[i] + (1-beta1)*gi
		a.v[i] = beta2*a.v[i] + (1-beta2)*gi*gi
		mHat := a.m[i] / (1 - b1t)
		vHat := a.v[i] / (1 - b2t)
		delta[i] = rate * mHat / (math.Sqrt(vHat) + eps)
	}
	return delta
}

// applyCoords rebuilds shapes with new coordinate values at the same
// global indices, preserving shapes as values (spec.md section 5).
func applyCoords(shapes []shape.Shape, newVals []float64, trainable []bool) []shape.Shape {
	assert.True(len(newVals) == len(trainable),
		"applyCoords: coordinate vector length %d does not match trainable mask length %d", len(newVals), len(trainable))
	n := len(newVals)
	out := make([]shape.Shape, len(shapes))
	for i, s := range shapes {
		params := s.Params()
		updated := make([]dual.Dual, len(params))
		for j, p := range params {
			gi := idxOf(p)
			if gi >= 0 && trainable[gi] {
				updated[j] = dual.Var(newVals[gi], gi, n)
			} else {
				updated[j] = p
			}
		}
		out[i] = s.WithParams(updated)
	}
	return out
}

func currentCoords(shapes []shape.Shape) []float64 {
	var out []float64
	for _, s := range shapes {
		for _, p := range s.Params() {
			out = append(out, p.V)
		}
	}
	return out
}
