package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runsascoded/shapes/export"
	"github.com/runsascoded/shapes/shape"
	"github.com/runsascoded/shapes/target"
	"github.com/runsascoded/shapes/train"
	"github.com/runsascoded/shapes/vennctx"
)

var (
	runConfigPath string
	runOptimizer  string
	runMaxSteps   int
	runRate       float64
	runVerbose    bool
)

// runCmd trains a run config to convergence (or max-steps) and prints the
// best step found, as YAML.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "fit shapes to target region-area fractions",
	Long: `Read a YAML run config (shapes + region-area targets), train by
gradient descent (or --optimizer adam|robust) and print the best step
found, as YAML.`,
	Run: doRun,
}

func init() {
	RootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runConfigPath, "config", "", "run config YAML file (required)")
	runCmd.Flags().StringVar(&runOptimizer, "optimizer", "gd", "optimiser: gd, adam, or robust")
	runCmd.Flags().IntVar(&runMaxSteps, "max-steps", 0, "override the default max training steps (0: use default)")
	runCmd.Flags().Float64Var(&runRate, "rate", 0, "override the default learning rate (0: use default)")
	runCmd.Flags().BoolVar(&runVerbose, "verbose", false, "print per-step progress messages")
	runCmd.MarkFlagRequired("config")
}

func doRun(cmd *cobra.Command, args []string) {
	shapes, targets, cfg := loadRunConfig(runConfigPath, runOptimizer, runMaxSteps, runRate)

	if runVerbose {
		fmt.Printf("# %d input shapes:\n%s", len(shapes), describeShapes(shapes))
	}

	ctx := vennctx.New()
	result, err := train.Run(ctx, shapes, targets, cfg, nil)
	check(err)

	if runVerbose {
		for _, m := range ctx.Messages() {
			fmt.Println(m)
		}
	}

	fmt.Printf("# trained %d steps, converged=%v, best error=%g (step %d)\n",
		result.Steps, result.Converged, result.Best.Error, result.Best.Index)
	check(marshalYAMLToStdout(export.FromStep(result.Best, targets)))
}

// loadRunConfig reads and assembles a run config's shapes/targets/train
// config, applying CLI overrides on top of train.DefaultConfig().
func loadRunConfig(path, optimizer string, maxSteps int, rate float64) ([]shape.Shape, *target.Targets, train.Config) {
	var spec RunSpec
	check(unmarshalYAMLFile(path, &spec))

	shapes, err := assembleShapes(spec.Shapes)
	check(err)

	targets, err := target.Expand(len(spec.Shapes), spec.Targets)
	check(err)

	cfg := train.DefaultConfig()
	switch optimizer {
	case "adam":
		cfg.Optimizer = train.OptAdam
	case "robust":
		cfg.Optimizer = train.OptRobust
	case "gd", "":
		cfg.Optimizer = train.OptGD
	default:
		check(fmt.Errorf("unknown optimizer %q (want gd, adam, or robust)", optimizer))
	}
	if maxSteps > 0 {
		cfg.MaxSteps = maxSteps
	}
	if rate > 0 {
		cfg.LearningRate = rate
	}

	return shapes, targets, cfg
}
