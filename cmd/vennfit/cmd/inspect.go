package cmd

import (
	"github.com/spf13/cobra"

	"github.com/runsascoded/shapes/export"
	"github.com/runsascoded/shapes/train"
	"github.com/runsascoded/shapes/vennctx"
)

var inspectConfigPath string

// inspectCmd trains a run config quietly and prints only the resulting
// best Step projection, as YAML (spec.md section 6's supplemented
// feature list: a grep-able consumer of export.Step).
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "train a run config and print its best step as YAML",
	Long: `Like 'run', but silent except for the final best step's YAML
projection — meant for piping into another tool.`,
	Run: doInspect,
}

func init() {
	RootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVar(&inspectConfigPath, "config", "", "run config YAML file (required)")
	inspectCmd.MarkFlagRequired("config")
}

func doInspect(cmd *cobra.Command, args []string) {
	shapes, targets, cfg := loadRunConfig(inspectConfigPath, "gd", 0, 0)

	result, err := train.Run(vennctx.New(), shapes, targets, cfg, nil)
	check(err)

	check(marshalYAMLToStdout(export.FromStep(result.Best, targets)))
}
