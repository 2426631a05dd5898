package trace

import (
	"github.com/runsascoded/shapes/shape"
	"github.com/runsascoded/shapes/target"
	"github.com/runsascoded/shapes/train"
	"github.com/runsascoded/shapes/vennctx"
	"github.com/runsascoded/shapes/vennerr"
)

// keyframe pairs the shapes and optimiser state a step started from
// (before Advance mutates the state) with the step's reported error,
// enough to deterministically replay forward to any later index.
type keyframe struct {
	Index  int
	Shapes []shape.Shape
	State  *train.State
	Error  float64
}

// btdEntry is one best-to-date index entry (spec.md section 4.8).
type btdEntry struct {
	Index int
	Error float64
}

// Store retains a tiered subset of training steps (enough to reconstruct
// any step by bounded replay) plus the best-to-date index.
type Store struct {
	Tiered  TieredConfig
	Cfg     train.Config
	Targets *target.Targets

	keyframes []keyframe
	btd       []btdEntry
	bestErr   float64
	haveBest  bool
}

// NewStore returns an empty store for a training run under cfg/targets.
func NewStore(tiered TieredConfig, cfg train.Config, targets *target.Targets) *Store {
	return &Store{Tiered: tiered, Cfg: cfg, Targets: targets}
}

// Keyframes returns the stored keyframe step indices, in increasing order.
func (s *Store) Keyframes() []int {
	out := make([]int, len(s.keyframes))
	for i, k := range s.keyframes {
		out[i] = k.Index
	}
	return out
}

// BTD returns the best-to-date index: strictly increasing step indices
// with strictly decreasing error (spec.md section 4.8).
func (s *Store) BTD() []int {
	out := make([]int, len(s.btd))
	for i, e := range s.btd {
		out[i] = e.Index
	}
	return out
}

// BestError returns the lowest error recorded so far, and whether any
// step has been recorded at all.
func (s *Store) BestError() (float64, bool) { return s.bestErr, s.haveBest }

func (s *Store) put(index int, shapesBefore []shape.Shape, stateBefore *train.State, errAfter float64) {
	if tieredIsKeyframe(s.Tiered, index) {
		s.keyframes = append(s.keyframes, keyframe{
			Index:  index,
			Shapes: shapesBefore,
			State:  stateBefore.Clone(),
			Error:  errAfter,
		})
	}
	if !s.haveBest || errAfter < s.bestErr {
		s.haveBest = true
		s.bestErr = errAfter
		s.btd = append(s.btd, btdEntry{Index: index, Error: errAfter})
	}
}

// NearestKeyframe returns the largest stored keyframe index <= target,
// and the shapes stored there (spec.md section 4.8's nearest_keyframe).
func (s *Store) NearestKeyframe(target int) (index int, shapes []shape.Shape, ok bool) {
	kf, found := s.keyframeAt(target)
	if !found {
		return 0, nil, false
	}
	return kf.Index, kf.Shapes, true
}

func (s *Store) keyframeAt(target int) (keyframe, bool) {
	best := -1
	var out keyframe
	for _, k := range s.keyframes {
		if k.Index <= target && k.Index > best {
			best = k.Index
			out = k
		}
	}
	return out, best >= 0
}

// Train drives the full per-step training loop (same contract as
// train.Run) while recording keyframes and the BTD index as it goes.
func (s *Store) Train(ctx *vennctx.Context, shapes []shape.Shape) (*train.Result, error) {
	st := train.NewState(shapes, s.Cfg)

	var best, last train.Step
	haveBest := false
	i := 0
	for i < s.Cfg.MaxSteps {
		if ctx.Cancelled() {
			return &train.Result{Steps: i, Best: best, Last: last, Cancelled: true}, nil
		}

		before := st.Clone()
		shapesBefore := shapes

		step, next, rejected, err := train.Advance(ctx, shapes, s.Targets, s.Cfg, i, st)
		if err != nil {
			return nil, err
		}
		if rejected {
			continue
		}

		s.put(i, shapesBefore, before, step.Error)

		if !haveBest || step.Error < best.Error {
			best = step
			haveBest = true
		}
		last = step
		shapes = next
		i++

		if step.Converged {
			return &train.Result{Steps: i, Best: best, Last: last, Converged: true}, nil
		}
	}
	return &train.Result{Steps: s.Cfg.MaxSteps, Best: best, Last: last, Converged: false}, nil
}

// Reconstruct reproduces the step at targetIndex by replaying the
// optimiser deterministically from the nearest preceding keyframe
// (spec.md section 4.8).
func (s *Store) Reconstruct(ctx *vennctx.Context, targetIndex int) (train.Step, error) {
	kf, ok := s.keyframeAt(targetIndex)
	if !ok {
		return train.Step{}, vennerr.New(vennerr.InvalidInput, "trace: no keyframe at or before step %d", targetIndex)
	}
	return tieredSeek(ctx, kf.Shapes, kf.Index, targetIndex, kf.State.Clone(), s.Targets, s.Cfg)
}

// tieredSeek is the literal tiered_seek(keyframe, keyframe_index,
// target_index, rate) operation of spec.md section 6 operation 9, adapted
// to take the full targets/config a replay needs to recompute gradients
// (a bare learning-rate scalar can't reproduce training on its own) rather
// than just `rate`.
func tieredSeek(ctx *vennctx.Context, keyframeShapes []shape.Shape, keyframeIndex, targetIndex int, state *train.State, targets *target.Targets, cfg train.Config) (train.Step, error) {
	shapes := keyframeShapes
	var step train.Step
	for i := keyframeIndex; i <= targetIndex; {
		s, next, rejected, err := train.Advance(ctx, shapes, targets, cfg, i, state)
		if err != nil {
			return train.Step{}, err
		}
		if rejected {
			continue
		}
		step = s
		shapes = next
		i++
	}
	return step, nil
}

// TieredSeek exposes tieredSeek under spec.md section 6 operation 9's
// exact name for direct host consumption.
func TieredSeek(ctx *vennctx.Context, keyframeShapes []shape.Shape, keyframeIndex, targetIndex int, state *train.State, targets *target.Targets, cfg train.Config) (train.Step, error) {
	return tieredSeek(ctx, keyframeShapes, keyframeIndex, targetIndex, state, targets, cfg)
}
