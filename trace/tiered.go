// Package trace implements the tiered keyframe store and best-to-date
// index of spec.md section 4.8, grounded on the teacher's detour tile and
// query node pool: tiles are looked up by id with the oldest/least-useful
// entries evicted under memory pressure, the same "store enough to answer
// a lookup cheaply, discard the rest, recompute the gap on demand" shape
// this package uses for step reconstruction.
package trace

import "math"

// TieredConfig parameterizes the keyframe retention policy.
type TieredConfig struct {
	// BucketSize is B in spec.md section 4.8 (default 1024).
	BucketSize int
}

// DefaultTieredConfig returns spec.md's default bucket size.
func DefaultTieredConfig() TieredConfig {
	return TieredConfig{BucketSize: 1024}
}

// tier computes tier(k): 0 for k < 2B, else floor(log2(k/B)).
func tier(cfg TieredConfig, k int) int {
	b := cfg.BucketSize
	if b <= 0 {
		b = 1
	}
	if k < 2*b {
		return 0
	}
	return int(math.Floor(math.Log2(float64(k) / float64(b))))
}

// tieredIsKeyframe reports whether step index is a keyframe: index mod
// 2^tier(index) == 0.
func tieredIsKeyframe(cfg TieredConfig, index int) bool {
	if index <= 0 {
		return true
	}
	stride := 1 << uint(tier(cfg, index))
	return index%stride == 0
}

// tieredNearestKeyframe returns the largest keyframe index <= index,
// per the tiering formula alone (independent of what a Store actually has
// retained). Step 0 is always a keyframe, so this always terminates.
func tieredNearestKeyframe(cfg TieredConfig, index int) int {
	for k := index; k > 0; k-- {
		if tieredIsKeyframe(cfg, k) {
			return k
		}
	}
	return 0
}

// TieredIsKeyframe is the exported form of spec.md section 6 operation 9's
// tiered_is_keyframe(config, index).
func TieredIsKeyframe(cfg TieredConfig, index int) bool { return tieredIsKeyframe(cfg, index) }

// TieredNearestKeyframe is the exported form of
// tiered_nearest_keyframe(config, index).
func TieredNearestKeyframe(cfg TieredConfig, index int) int { return tieredNearestKeyframe(cfg, index) }
