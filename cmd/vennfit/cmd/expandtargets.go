package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runsascoded/shapes/target"
)

// TargetsFile is the YAML shape read by `expand-targets`: the shape
// count and a user target map (exclusive and/or inclusive keys mixed).
type TargetsFile struct {
	N       int                `yaml:"n"`
	Targets map[string]float64 `yaml:"targets"`
}

var expandTargetsCmd = &cobra.Command{
	Use:   "expand-targets FILE",
	Short: "expand an inclusive/exclusive target map into exclusive region areas",
	Long: `Read a YAML file with an 'n' shape count and a 'targets' map
(exclusive keys like '01', inclusive/wildcard keys like '0*' are both
accepted), expand it by inclusion-exclusion, and print the full exclusive
target map as YAML.`,
	Args: cobra.ExactArgs(1),
	Run:  doExpandTargets,
}

func init() {
	RootCmd.AddCommand(expandTargetsCmd)
}

func doExpandTargets(cmd *cobra.Command, args []string) {
	var f TargetsFile
	check(unmarshalYAMLFile(args[0], &f))

	expanded, err := target.Expand(f.N, f.Targets)
	check(err)

	fmt.Printf("# %d shapes, %d exclusive regions\n", expanded.N, len(expanded.Disjoints))
	check(marshalYAMLToStdout(expanded.Disjoints))
}
