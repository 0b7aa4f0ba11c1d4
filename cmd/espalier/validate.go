package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <chart.yaml>",
	Short: "Check a chart definition for consistency",
	Long:  `Parses a YAML chart definition and verifies its structural invariants: unique ids, initial references naming declared children, bounded nesting, and buildability.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Chart is valid.")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	def, err := schema.Load(path)
	if err != nil {
		return err
	}
	// Building with no handlers exercises the chart-level invariants too.
	if _, err := def.Build(nil); err != nil {
		return err
	}
	return nil
}
