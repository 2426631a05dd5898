package train

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runsascoded/shapes/dual"
	"github.com/runsascoded/shapes/scene"
	"github.com/runsascoded/shapes/shape"
	"github.com/runsascoded/shapes/target"
)

func allTrainable(n int) []bool {
	m := make([]bool, n)
	for i := range m {
		m[i] = true
	}
	return m
}

func twoCircles(n int, dx float64) []shape.Shape {
	a := shape.NewCircle(0, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(1, 2, n), allTrainable(3))
	b := shape.NewCircle(1, dual.Var(dx, 3, n), dual.Var(0, 4, n), dual.Var(1, 5, n), allTrainable(3))
	return []shape.Shape{a, b}
}

func TestEvaluateZeroErrorOnExactMatch(t *testing.T) {
	n := 6
	shapes := twoCircles(n, 10) // fully disjoint
	sc, err := scene.Build(nil, shapes)
	require.NoError(t, err)

	tg, err := target.Expand(2, map[string]float64{
		"0-": 0.5,
		"-1": 0.5,
	})
	require.NoError(t, err)

	eval := Evaluate(sc, tg, DefaultConfig())
	assert.InDelta(t, 0, eval.DataError.V, 1e-9)
}

func TestEvaluateReportsMissingRegion(t *testing.T) {
	n := 6
	shapes := twoCircles(n, 10)
	sc, err := scene.Build(nil, shapes)
	require.NoError(t, err)

	tg, err := target.Expand(2, map[string]float64{
		"01": 0.5,
	})
	require.NoError(t, err)

	eval := Evaluate(sc, tg, DefaultConfig())
	re, ok := eval.RegionErrors["01"]
	require.True(t, ok)
	assert.Equal(t, MissingRegion, re.Kind)
	assert.Greater(t, eval.DataError.V, 0.0)
}

func TestDisjointPenaltyPositiveWhenOverlapRequiredButAbsent(t *testing.T) {
	n := 6
	shapes := twoCircles(n, 10)
	sc, err := scene.Build(nil, shapes)
	require.NoError(t, err)

	tg, err := target.Expand(2, map[string]float64{"01": 0.5})
	require.NoError(t, err)

	cfg := DefaultConfig()
	eval := Evaluate(sc, tg, cfg)
	assert.Greater(t, eval.ForGradient.V, eval.DataError.V)
}

func TestRunGradientDescentReducesError(t *testing.T) {
	n := 6
	shapes := twoCircles(n, 3) // partially overlapping, off from a 50% target
	tg, err := target.Expand(2, map[string]float64{
		"0-": 0.5,
		"-1": 0.5,
		"01": 0.3,
	})
	require.NoError(t, err)

	sc0, err := scene.Build(nil, shapes)
	require.NoError(t, err)
	initial := Evaluate(sc0, tg, DefaultConfig())

	cfg := DefaultConfig()
	cfg.MaxSteps = 25
	cfg.LearningRate = 0.02

	result, err := Run(nil, shapes, tg, cfg, nil)
	require.NoError(t, err)
	require.Greater(t, result.Steps, 1)
	assert.Less(t, result.Best.Error, initial.DataError.V)
}

func TestRunRespectsTrainableMask(t *testing.T) {
	n := 6
	a := shape.NewCircle(0, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(1, 2, n), []bool{false, false, false})
	b := shape.NewCircle(1, dual.Var(3, 3, n), dual.Var(0, 4, n), dual.Var(1, 5, n), allTrainable(3))
	shapes := []shape.Shape{a, b}

	tg, err := target.Expand(2, map[string]float64{"01": 0.9})
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.MaxSteps = 5
	result, err := Run(nil, shapes, tg, cfg, nil)
	require.NoError(t, err)

	ax, ay := result.Last.Shapes[0].Center()
	assert.Equal(t, 0.0, ax)
	assert.Equal(t, 0.0, ay)
}

type recordingRecorder struct {
	steps []Step
}

func (r *recordingRecorder) Record(s Step) { r.steps = append(r.steps, s) }

func TestRunRecordsEveryAcceptedStep(t *testing.T) {
	n := 6
	shapes := twoCircles(n, 3)
	tg, err := target.Expand(2, map[string]float64{"0-": 0.5, "-1": 0.5, "01": 0.3})
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.MaxSteps = 5
	rec := &recordingRecorder{}
	result, err := Run(nil, shapes, tg, cfg, rec)
	require.NoError(t, err)
	assert.Len(t, rec.steps, result.Steps)
}
