package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runsascoded/shapes/dual"
	"github.com/runsascoded/shapes/shape"
	"github.com/runsascoded/shapes/target"
	"github.com/runsascoded/shapes/train"
)

func TestTieredIsKeyframeStepZeroAlwaysKeyframe(t *testing.T) {
	cfg := DefaultTieredConfig()
	assert.True(t, TieredIsKeyframe(cfg, 0))
}

func TestTieredTierBelowTwoB(t *testing.T) {
	cfg := TieredConfig{BucketSize: 8}
	assert.Equal(t, 0, tier(cfg, 15))
	assert.True(t, TieredIsKeyframe(cfg, 15)) // tier 0 -> stride 1, every step is a keyframe
}

func TestTieredIsKeyframeHigherTier(t *testing.T) {
	cfg := TieredConfig{BucketSize: 8}
	// k=32: tier = floor(log2(32/8)) = floor(log2(4)) = 2, stride 4.
	assert.Equal(t, 2, tier(cfg, 32))
	assert.True(t, TieredIsKeyframe(cfg, 32))
	assert.False(t, TieredIsKeyframe(cfg, 33))
	assert.True(t, TieredIsKeyframe(cfg, 36))
}

func TestTieredNearestKeyframeFindsLargestAtOrBelow(t *testing.T) {
	cfg := TieredConfig{BucketSize: 8}
	got := TieredNearestKeyframe(cfg, 35)
	assert.LessOrEqual(t, got, 35)
	assert.True(t, TieredIsKeyframe(cfg, got))
	assert.Equal(t, 32, got)
}

func allTrainable(n int) []bool {
	m := make([]bool, n)
	for i := range m {
		m[i] = true
	}
	return m
}

func twoOverlapping(n int) []shape.Shape {
	a := shape.NewCircle(0, dual.Var(0, 0, n), dual.Var(0, 1, n), dual.Var(1, 2, n), allTrainable(3))
	b := shape.NewCircle(1, dual.Var(1, 3, n), dual.Var(0, 4, n), dual.Var(1, 5, n), allTrainable(3))
	return []shape.Shape{a, b}
}

func TestStoreTrainRecordsKeyframesAndBTD(t *testing.T) {
	n := 6
	shapes := twoOverlapping(n)
	tg, err := target.Expand(2, map[string]float64{"0-": 0.4, "-1": 0.4, "01": 0.3})
	require.NoError(t, err)

	cfg := train.DefaultConfig()
	cfg.MaxSteps = 20
	cfg.LearningRate = 0.02

	store := NewStore(TieredConfig{BucketSize: 8}, cfg, tg)
	result, err := store.Train(nil, shapes)
	require.NoError(t, err)
	require.Greater(t, result.Steps, 1)

	kfs := store.Keyframes()
	require.NotEmpty(t, kfs)
	assert.Equal(t, 0, kfs[0])

	btd := store.BTD()
	require.NotEmpty(t, btd)
	for i := 1; i < len(btd); i++ {
		assert.Greater(t, btd[i], btd[i-1])
	}
}

func TestStoreReconstructMatchesReplay(t *testing.T) {
	n := 6
	shapes := twoOverlapping(n)
	tg, err := target.Expand(2, map[string]float64{"0-": 0.4, "-1": 0.4, "01": 0.3})
	require.NoError(t, err)

	cfg := train.DefaultConfig()
	cfg.MaxSteps = 12
	cfg.LearningRate = 0.02

	store := NewStore(TieredConfig{BucketSize: 8}, cfg, tg)
	_, err = store.Train(nil, shapes)
	require.NoError(t, err)

	step, err := store.Reconstruct(nil, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, step.Index)

	var replay stepRecorder
	_, err = train.Run(nil, shapes, tg, cfg, &replay)
	require.NoError(t, err)
	require.Greater(t, len(replay), 5)
	want := replay[5]
	assert.InDelta(t, want.Error, step.Error, 1e-12)
	require.Len(t, step.Shapes, len(want.Shapes))
	for i := range want.Shapes {
		wp, gp := want.Shapes[i].Params(), step.Shapes[i].Params()
		require.Len(t, gp, len(wp))
		for j := range wp {
			assert.InDelta(t, wp[j].V, gp[j].V, 1e-12)
		}
	}
}

type stepRecorder []train.Step

func (r *stepRecorder) Record(s train.Step) { *r = append(*r, s) }

func TestStoreNearestKeyframeBeforeAnyTraining(t *testing.T) {
	store := NewStore(DefaultTieredConfig(), train.DefaultConfig(), nil)
	_, _, ok := store.NearestKeyframe(10)
	assert.False(t, ok)
}
