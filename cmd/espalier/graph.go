package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/aretw0/espalier/pkg/schema"
)

var graphCmd = &cobra.Command{
	Use:   "graph [chart.yaml]",
	Short: "Render a chart as Graphviz DOT",
	Long:  `Prints the state hierarchy as a DOT digraph. With no argument, renders the bundled device demo chart.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGraph(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

func runGraph(w io.Writer, args []string) error {
	if len(args) == 0 {
		chart, err := buildDemoChart(io.Discard)
		if err != nil {
			return err
		}
		fmt.Fprint(w, graph.DOT(chart, "device"))
		return nil
	}

	def, err := schema.Load(args[0])
	if err != nil {
		return err
	}
	chart, err := def.Build(nil)
	if err != nil {
		return err
	}
	name := def.Chart
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}
	fmt.Fprint(w, graph.DOT(chart, name))
	return nil
}
