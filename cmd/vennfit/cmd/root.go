package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "vennfit",
	Short: "fit area-proportional Venn/Euler diagrams",
	Long: `vennfit fits a set of 2D shapes (circles, ellipses, rotated
ellipses, polygons) to a target map of region-area fractions by
differentiable gradient descent.

	- describe input shapes and region-area targets in a YAML run config
	- train with gradient descent, Adam, or a gradient-clipping robust mode
	- inspect the result, or expand an inclusive (wildcard) target map`,
}

// Execute adds all child commands to RootCmd and runs it. Called once
// from main.main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
