package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runsascoded/shapes/dual"
	"github.com/runsascoded/shapes/scene"
	"github.com/runsascoded/shapes/shape"
	"github.com/runsascoded/shapes/target"
	"github.com/runsascoded/shapes/train"
)

func allTrainable(n int) []bool {
	m := make([]bool, n)
	for i := range m {
		m[i] = true
	}
	return m
}

func TestFromShapeUnwrapsDuals(t *testing.T) {
	n := 3
	c := shape.NewCircle(0, dual.Var(1, 0, n), dual.Var(2, 1, n), dual.Var(3, 2, n), allTrainable(3))
	out := FromShape(c)
	assert.Equal(t, "circle", out.Kind)
	assert.Equal(t, []float64{1, 2, 3}, out.Params)
	assert.Equal(t, []bool{true, true, true}, out.Trainable)
}

func TestFromStepProjectsSceneAndErrors(t *testing.T) {
	n := 6
	a := shape.NewCircle(0, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(1, 2, n), allTrainable(3))
	b := shape.NewCircle(1, dual.Var(10, 3, n), dual.Var(0, 4, n), dual.Var(1, 5, n), allTrainable(3))
	shapes := []shape.Shape{a, b}

	sc, err := scene.Build(nil, shapes)
	require.NoError(t, err)

	tg, err := target.Expand(2, map[string]float64{"0-": 0.5, "-1": 0.5})
	require.NoError(t, err)

	eval := train.Evaluate(sc, tg, train.DefaultConfig())
	step := train.Step{
		Index:        0,
		Shapes:       shapes,
		Scene:        sc,
		Error:        eval.DataError.V,
		Penalty:      eval.ForGradient.V - eval.DataError.V,
		RegionErrors: eval.RegionErrors,
	}

	out := FromStep(step, tg)
	assert.Equal(t, 0, out.Index)
	assert.Len(t, out.Shapes, 2)
	assert.Greater(t, out.TotalArea, 0.0)
	assert.NotEmpty(t, out.Components)
	assert.Contains(t, out.Targets, "0-")
	assert.InDelta(t, 0, out.Error, 1e-9)
}
