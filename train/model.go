package train

import (
	"github.com/runsascoded/shapes/scene"
	"github.com/runsascoded/shapes/shape"
	"github.com/runsascoded/shapes/target"
	"github.com/runsascoded/shapes/vennctx"
	"github.com/runsascoded/shapes/vennerr"
)

// Step is one iteration's recorded state (spec.md section 6 "Persisted
// state"): the scene it scored, the error against targets, the masked
// gradient actually applied, and whether the run had converged as of
// this step.
type Step struct {
	Index        int
	Shapes       []shape.Shape
	Scene        *scene.Scene
	Error        float64
	Penalty      float64
	RegionErrors map[string]RegionError
	Gradient     []float64
	Converged    bool
}

// Recorder receives every accepted step as the training loop runs, e.g.
// to feed package trace's keyframe store. Record is called once per
// accepted step, in increasing Index order.
type Recorder interface {
	Record(Step)
}

// Result is the outcome of a full Run.
type Result struct {
	Steps     int
	Best      Step
	Last      Step
	Converged bool
	Cancelled bool
}

// State is the optimiser's carry-over between steps: the trainable-
// coordinate mask (fixed for a given shape list) and, for Adam, the
// first/second moment estimates. Cloning a State and replaying Advance
// from it is what package trace's reconstruction relies on for
// deterministic replay from a stored keyframe (spec.md section 4.8).
type State struct {
	Mask              []bool
	Adam              *adamState
	Rate              float64
	Rejections        int
	LastAcceptedError float64
	HaveLastAccepted  bool
}

// NewState builds the initial optimiser state for shapes under cfg.
func NewState(shapes []shape.Shape, cfg Config) *State {
	mask := trainableMask(shapes)
	var adam *adamState
	if cfg.Optimizer == OptAdam {
		adam = newAdamState(len(mask))
	}
	return &State{Mask: mask, Adam: adam, Rate: cfg.LearningRate}
}

// Clone returns a deep-enough copy of st: mutating the clone's Adam
// moments never affects st's.
func (st *State) Clone() *State {
	c := &State{Mask: st.Mask, Rate: st.Rate, Rejections: st.Rejections,
		LastAcceptedError: st.LastAcceptedError, HaveLastAccepted: st.HaveLastAccepted}
	if st.Adam != nil {
		c.Adam = &adamState{
			m: append([]float64(nil), st.Adam.m...),
			v: append([]float64(nil), st.Adam.v...),
			t: st.Adam.t,
		}
	}
	return c
}

// Advance scores shapes at step index, then (unless the step is rejected
// by robust mode's backtracking) applies one optimiser update to produce
// the next step's shapes. st is mutated in place to carry the optimiser's
// running state forward. rejected is true when the caller should retry
// the same index (st.Rate has already been reduced).
func Advance(ctx *vennctx.Context, shapes []shape.Shape, targets *target.Targets, cfg Config, index int, st *State) (step Step, next []shape.Shape, rejected bool, err error) {
	ctx.StartTimer(vennctx.TimerSceneBuild)
	sc, err := scene.Build(ctx, shapes)
	ctx.StopTimer(vennctx.TimerSceneBuild)
	if err != nil {
		return Step{}, nil, false, vennerr.Wrap(vennerr.InvalidInput, err, "train.Advance: step %d", index)
	}

	ctx.StartTimer(vennctx.TimerGradient)
	eval := Evaluate(sc, targets, cfg)
	ctx.StopTimer(vennctx.TimerGradient)

	curError := eval.DataError.V
	if cfg.Optimizer == OptRobust && st.HaveLastAccepted &&
		curError > st.LastAcceptedError*(1+cfg.MaxErrorIncrease) && st.Rejections < cfg.MaxRejections {
		st.Rejections++
		st.Rate *= 0.5
		return Step{}, shapes, true, nil
	}
	st.Rejections = 0

	converged := st.HaveLastAccepted &&
		st.LastAcceptedError-curError < cfg.ConvergenceThreshold &&
		st.LastAcceptedError-curError >= 0

	g := extractGradient(eval.ForGradient, st.Mask)
	step = Step{
		Index:        index,
		Shapes:       shapes,
		Scene:        sc,
		Error:        curError,
		Penalty:      eval.ForGradient.V - eval.DataError.V,
		RegionErrors: eval.RegionErrors,
		Gradient:     g,
		Converged:    converged,
	}
	st.LastAcceptedError = curError
	st.HaveLastAccepted = true

	ctx.StartTimer(vennctx.TimerUpdate)
	stepRate := st.Rate
	if cfg.StepMode == StepErrorScaled {
		stepRate = st.Rate * curError
	}

	var delta []float64
	switch cfg.Optimizer {
	case OptAdam:
		delta = st.Adam.update(g, stepRate, cfg.Beta1, cfg.Beta2, cfg.Epsilon)
	case OptRobust:
		effRate := stepRate
		if index < cfg.WarmupSteps {
			effRate = stepRate * float64(index+1) / float64(cfg.WarmupSteps)
		}
		cg := clipGradient(g, cfg.MaxGradNorm, cfg.MaxGradValue)
		delta = make([]float64, len(cg))
		for j, v := range cg {
			delta[j] = effRate * v
		}
	default: // OptGD
		delta = make([]float64, len(g))
		for j, v := range g {
			delta[j] = stepRate * v
		}
	}

	cur := currentCoords(shapes)
	nv := make([]float64, len(cur))
	for j := range cur {
		nv[j] = cur[j] - delta[j]
	}
	next = applyCoords(shapes, nv, st.Mask)
	ctx.StopTimer(vennctx.TimerUpdate)

	return step, next, false, nil
}

// Run executes the per-step training loop of spec.md section 4.7: build a
// Scene, score it against targets, compute the penalty-augmented
// gradient, mask it to trainable coordinates, apply an optimiser update,
// and repeat until convergence, cancellation or cfg.MaxSteps. ctx may be
// nil.
func Run(ctx *vennctx.Context, shapes []shape.Shape, targets *target.Targets, cfg Config, rec Recorder) (*Result, error) {
	st := NewState(shapes, cfg)

	var best, last Step
	haveBest := false
	interval := cfg.ProgressInterval
	if interval < 1 {
		interval = 1
	}

	i := 0
	for i < cfg.MaxSteps {
		if ctx.Cancelled() {
			return &Result{Steps: i, Best: best, Last: last, Cancelled: true}, nil
		}

		step, next, rejected, err := Advance(ctx, shapes, targets, cfg, i, st)
		if err != nil {
			return nil, err
		}
		if rejected {
			continue
		}

		if i%interval == 0 {
			ctx.Progressf("train: step %d error=%g", i, step.Error)
		}
		if !haveBest || step.Error < best.Error {
			best = step
			haveBest = true
		}
		last = step
		if rec != nil {
			rec.Record(step)
		}

		shapes = next
		i++

		if step.Converged {
			return &Result{Steps: i, Best: best, Last: last, Converged: true}, nil
		}
	}

	return &Result{Steps: cfg.MaxSteps, Best: best, Last: last, Converged: false}, nil
}
