package train

import (
	"github.com/runsascoded/shapes/shape"
	"github.com/runsascoded/shapes/target"
	"github.com/runsascoded/shapes/vennctx"
	"github.com/runsascoded/shapes/vennerr"
)

// Model bundles a shape list, its expanded targets and training config
// with the optimiser state carried between steps — spec.md section 6's
// conceptual Model returned by make_model/train.
type Model struct {
	Shapes  []shape.Shape
	Targets *target.Targets
	Cfg     Config
	State   *State
}

// MakeModel validates inputs, expands targets and prepares the initial
// optimiser state, without running any Scene analysis yet — spec.md
// section 6 op 1.
func MakeModel(inputs []shape.Shape, rawTargets map[string]float64, cfg Config) (*Model, error) {
	if len(inputs) == 0 {
		return nil, vennerr.New(vennerr.InvalidInput, "make_model: no input shapes")
	}
	targets, err := target.Expand(len(inputs), rawTargets)
	if err != nil {
		return nil, err
	}
	return &Model{Shapes: inputs, Targets: targets, Cfg: cfg, State: NewState(inputs, cfg)}, nil
}

// MakeStep runs a single Scene analysis of shapes against targets and
// scores it, with no optimiser update applied — spec.md section 6 op 2.
func MakeStep(ctx *vennctx.Context, shapes []shape.Shape, targets *target.Targets, cfg Config, index int) (Step, error) {
	st := NewState(shapes, cfg)
	step, _, _, err := Advance(ctx, shapes, targets, cfg, index, st)
	return step, err
}

// StepOnce applies one optimiser update at rate to the shapes a
// previously computed Step scored, returning the next Step and its
// shapes — spec.md section 6 op 3's step(step, rate).
func StepOnce(ctx *vennctx.Context, prev Step, targets *target.Targets, cfg Config, st *State, rate float64) (Step, []shape.Shape, error) {
	st.Rate = rate
	next, nextShapes, rejected, err := Advance(ctx, prev.Shapes, targets, cfg, prev.Index+1, st)
	if err != nil {
		return Step{}, nil, err
	}
	if rejected {
		return next, prev.Shapes, nil
	}
	return next, nextShapes, nil
}

// TrainModel runs the full error-scaled-step loop to convergence or
// maxSteps from m's shapes, returning the run's Result (m itself is not
// modified) — spec.md section 6 op 4.
func TrainModel(ctx *vennctx.Context, m *Model, rate float64, maxSteps int) (*Result, error) {
	cfg := m.Cfg
	cfg.StepMode = StepErrorScaled
	cfg.LearningRate = rate
	cfg.MaxSteps = maxSteps
	return Run(ctx, m.Shapes, m.Targets, cfg, nil)
}

// TrainAdam runs the full loop under the Adam optimiser with the config's
// fixed beta/epsilon defaults — spec.md section 6 op 5.
func TrainAdam(ctx *vennctx.Context, m *Model, rate float64, maxSteps int) (*Result, error) {
	cfg := m.Cfg
	cfg.Optimizer = OptAdam
	cfg.LearningRate = rate
	cfg.MaxSteps = maxSteps
	return Run(ctx, m.Shapes, m.Targets, cfg, nil)
}

// TrainRobust runs the full loop under the robust optimiser (gradient
// clipping, warmup ramp, error-increase rejection) with the config's
// fixed defaults — spec.md section 6 op 5.
func TrainRobust(ctx *vennctx.Context, m *Model, maxSteps int) (*Result, error) {
	cfg := m.Cfg
	cfg.Optimizer = OptRobust
	cfg.MaxSteps = maxSteps
	return Run(ctx, m.Shapes, m.Targets, cfg, nil)
}

// IsConverged reports whether step's error is at or below threshold, or
// whether Advance already flagged step as converged against
// cfg.ConvergenceThreshold — spec.md section 6 op 7.
func IsConverged(step Step, threshold float64) bool {
	return step.Converged || step.Error <= threshold
}
