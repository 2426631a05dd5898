package train

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runsascoded/shapes/scene"
	"github.com/runsascoded/shapes/target"
)

func TestMakeModelExpandsTargetsAndRejectsEmptyInputs(t *testing.T) {
	shapes := twoCircles(6, 3)
	m, err := MakeModel(shapes, map[string]float64{"0-": 0.5, "-1": 0.5, "01": 0.3}, DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, m.Shapes, 2)
	assert.Equal(t, 2, m.Targets.N)

	_, err = MakeModel(nil, map[string]float64{}, DefaultConfig())
	assert.Error(t, err)
}

func TestMakeStepScoresWithoutMovingShapes(t *testing.T) {
	n := 6
	shapes := twoCircles(n, 3)
	tg, err := target.Expand(2, map[string]float64{"0-": 0.5, "-1": 0.5, "01": 0.3})
	require.NoError(t, err)

	step, err := MakeStep(nil, shapes, tg, DefaultConfig(), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, step.Index)
	ax, ay := step.Shapes[0].Center()
	bx, by := shapes[0].Center()
	assert.Equal(t, bx, ax)
	assert.Equal(t, by, ay)
}

func TestStepOnceAdvancesSeparatelyFromMakeStep(t *testing.T) {
	n := 6
	shapes := twoCircles(n, 3)
	tg, err := target.Expand(2, map[string]float64{"0-": 0.5, "-1": 0.5, "01": 0.3})
	require.NoError(t, err)

	cfg := DefaultConfig()
	st := NewState(shapes, cfg)
	prev, err := MakeStep(nil, shapes, tg, cfg, 0)
	require.NoError(t, err)

	next, nextShapes, err := StepOnce(nil, prev, tg, cfg, st, 0.02)
	require.NoError(t, err)
	assert.Equal(t, 1, next.Index)
	assert.Len(t, nextShapes, len(shapes))
}

func TestTrainModelReducesError(t *testing.T) {
	shapes := twoCircles(6, 3)
	m, err := MakeModel(shapes, map[string]float64{"0-": 0.5, "-1": 0.5, "01": 0.3}, DefaultConfig())
	require.NoError(t, err)

	sc0, err := scene.Build(nil, m.Shapes)
	require.NoError(t, err)
	initial := Evaluate(sc0, m.Targets, m.Cfg)

	result, err := TrainModel(nil, m, 0.02, 25)
	require.NoError(t, err)
	assert.Less(t, result.Best.Error, initial.DataError.V)
}

func TestTrainAdamAndTrainRobustRun(t *testing.T) {
	shapes := twoCircles(6, 3)
	m, err := MakeModel(shapes, map[string]float64{"0-": 0.5, "-1": 0.5, "01": 0.3}, DefaultConfig())
	require.NoError(t, err)

	adamResult, err := TrainAdam(nil, m, 0.05, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, adamResult.Steps)

	robustResult, err := TrainRobust(nil, m, 10)
	require.NoError(t, err)
	assert.LessOrEqual(t, robustResult.Steps, 10)
}

func TestIsConvergedThresholdAndFlag(t *testing.T) {
	assert.True(t, IsConverged(Step{Error: 0.001}, 0.01))
	assert.False(t, IsConverged(Step{Error: 0.5}, 0.01))
	assert.True(t, IsConverged(Step{Error: 0.5, Converged: true}, 0.01))
}
