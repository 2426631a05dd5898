package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runsascoded/shapes/dual"
	"github.com/runsascoded/shapes/shape"
)

func train(n int) []bool {
	m := make([]bool, n)
	for i := range m {
		m[i] = true
	}
	return m
}

func TestBuildSingleIsolatedCircle(t *testing.T) {
	n := 3
	c := shape.NewCircle(0, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(2, 2, n), train(3))
	s, err := Build(nil, []shape.Shape{c})
	require.NoError(t, err)
	require.Len(t, s.Components, 1)
	require.Len(t, s.Components[0].Regions, 1)
	assert.Equal(t, "0", s.Components[0].Regions[0].Key)
	assert.InDelta(t, 4*3.141592653589793, s.Components[0].Regions[0].Area.V, 1e-6)
}

func TestBuildTwoDisjointCircles(t *testing.T) {
	n := 6
	a := shape.NewCircle(0, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(1, 2, n), train(3))
	b := shape.NewCircle(1, dual.Var(10, 3, n), dual.Var(0, 4, n), dual.Var(1, 5, n), train(3))
	s, err := Build(nil, []shape.Shape{a, b})
	require.NoError(t, err)
	assert.Len(t, s.Components, 2)

	keys := map[string]bool{}
	for _, r := range s.Regions() {
		keys[r.Key] = true
	}
	assert.True(t, keys["0-"])
	assert.True(t, keys["-1"])
}

func TestBuildTwoOverlappingCirclesThreeRegions(t *testing.T) {
	n := 6
	a := shape.NewCircle(0, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(1, 2, n), train(3))
	b := shape.NewCircle(1, dual.Var(1, 3, n), dual.Var(0, 4, n), dual.Var(1, 5, n), train(3))
	s, err := Build(nil, []shape.Shape{a, b})
	require.NoError(t, err)
	require.Len(t, s.Components, 1)

	regions := s.Regions()
	require.Len(t, regions, 3)
	for _, r := range regions {
		assert.Len(t, r.Key, 2)
	}

	// Two unit circles with centers 1 apart: closed-form lens/lune areas
	// (r=1, d=1) give the exclusive, non-exclusive and lens regions their
	// exact exclusive keys and areas, which the broken own-bit logic this
	// test used to merely check the shape of (len(r.Key)==2) could never
	// produce — "0-" and "-1" were unreachable before the fix.
	lens := 2*math.Acos(0.5) - 0.5*math.Sqrt(3)
	lune := math.Pi - lens

	byKey := map[string]Region{}
	for _, r := range regions {
		byKey[r.Key] = r
	}
	require.Contains(t, byKey, "0-")
	require.Contains(t, byKey, "-1")
	require.Contains(t, byKey, "01")
	assert.InDelta(t, lune, byKey["0-"].Area.V, 1e-3)
	assert.InDelta(t, lune, byKey["-1"].Area.V, 1e-3)
	assert.InDelta(t, lens, byKey["01"].Area.V, 1e-3)

	// The outer (unbounded) face must not leak into TotalArea: the sum
	// of the three exclusive regions is the union's area, not ~0.
	assert.InDelta(t, 2*math.Pi-lens, s.TotalArea, 1e-2)
}

func TestScenePropagatesGradient(t *testing.T) {
	n := 3
	c := shape.NewCircle(0, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(2, 2, n), train(3))
	s, err := Build(nil, []shape.Shape{c})
	require.NoError(t, err)
	r := s.Regions()[0]
	require.Len(t, r.Area.D, 3)
	// d(area)/d(r) = 2*pi*r = 4*pi at r=2 (chain through radius index 2) should be non-zero.
	assert.NotEqual(t, 0.0, r.Area.D[2])
}

func TestBuildRejectsMisorderedSetIndices(t *testing.T) {
	n := 3
	c := shape.NewCircle(1, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(2, 2, n), train(3))
	_, err := Build(nil, []shape.Shape{c})
	assert.Error(t, err)
}
