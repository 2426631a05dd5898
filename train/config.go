// Package train implements the error/penalty/loss machinery and the
// optimiser + training driver of spec.md sections 4.6-4.8, grounded on the
// teacher's crowd package: crowd.go's per-tick agent update loop (read
// current state, compute a delta, clamp it, apply it, advance to the next
// tick) is the same shape train.Step's update loop follows, generalized
// from 3D agent positions to the trainable-coordinate vector of a Scene.
package train

// StepMode selects how the per-step learning rate is derived.
type StepMode int

// Step modes (spec.md section 4.7).
const (
	StepFixed StepMode = iota
	StepErrorScaled
)

// OptimizerKind selects the update rule applied to the masked gradient.
type OptimizerKind int

// Optimizer kinds (spec.md section 4.7).
const (
	OptGD OptimizerKind = iota
	OptAdam
	OptRobust
)

// Config holds every training-loop tunable, with the spec's defaults.
type Config struct {
	MaxSteps             int           `yaml:"max_steps"`
	LearningRate         float64       `yaml:"learning_rate"`
	ConvergenceThreshold float64       `yaml:"convergence_threshold"`
	StepMode             StepMode      `yaml:"step_mode"`
	Optimizer            OptimizerKind `yaml:"optimizer"`
	ProgressInterval     int           `yaml:"progress_interval"`

	// Adam.
	Beta1   float64 `yaml:"beta1"`
	Beta2   float64 `yaml:"beta2"`
	Epsilon float64 `yaml:"epsilon"`

	// Robust.
	MaxGradNorm      float64 `yaml:"max_grad_norm"`
	MaxGradValue     float64 `yaml:"max_grad_value"`
	WarmupSteps      int     `yaml:"warmup_steps"`
	MaxErrorIncrease float64 `yaml:"max_error_increase"`
	MaxRejections    int     `yaml:"max_rejections"`

	// Penalty weights (spec.md section 4.6).
	DisjointWeight    float64 `yaml:"disjoint_weight"`
	ContainmentWeight float64 `yaml:"containment_weight"`
	RegularityWeight  float64 `yaml:"regularity_weight"`

	// EnableFragmentPenalty turns on the optional perimeter/fragment term,
	// disabled by default per spec.md section 4.6.
	EnableFragmentPenalty bool    `yaml:"enable_fragment_penalty"`
	FragmentWeight        float64 `yaml:"fragment_weight"`
}

// DefaultConfig returns the spec's default configuration for a fixed-step
// plain gradient-descent run.
func DefaultConfig() Config {
	return Config{
		MaxSteps:             10000,
		LearningRate:         0.05,
		ConvergenceThreshold: 1e-10,
		StepMode:             StepFixed,
		Optimizer:            OptGD,
		ProgressInterval:     100,

		Beta1: 0.9, Beta2: 0.999, Epsilon: 1e-8,

		MaxGradNorm:      10,
		MaxGradValue:     1,
		WarmupSteps:      50,
		MaxErrorIncrease: 0.1,
		MaxRejections:    5,

		DisjointWeight:    1.0,
		ContainmentWeight: 0.1,
		RegularityWeight:  0.01,

		EnableFragmentPenalty: false,
		FragmentWeight:        0.001,
	}
}

// DefaultErrorScaledConfig mirrors DefaultConfig but with the
// error-scaled step mode's higher default rate (spec.md section 4.7).
func DefaultErrorScaledConfig() Config {
	c := DefaultConfig()
	c.StepMode = StepErrorScaled
	c.LearningRate = 0.5
	return c
}
