package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/observability"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bundled device demo interactively",
	Long: `Starts the demo device machine and feeds it events read from stdin,
one per line: power, work, done, battery-low, shutdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		return runDemo(verbose)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDemo(verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := logging.New(level)

	chart, err := buildDemoChart(os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to build demo chart: %w", err)
	}

	stats := &deviceStats{}
	m := espalier.New(chart,
		espalier.WithLogger(log),
		espalier.WithLifecycleHooks(observability.LogHooks(log)),
	)
	if err := m.Initialize("device", stats); err != nil {
		return fmt.Errorf("failed to initialize machine: %w", err)
	}

	fmt.Println("--- espalier device demo (type 'quit' to leave) ---")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s] > ", m.Current())
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			break
		}

		val, err := m.Dispatch(input)
		if err != nil {
			return fmt.Errorf("dispatch failed: %w", err)
		}
		if m.Terminated() {
			fmt.Printf("machine terminated (value %d, %d power cycles, %d jobs)\n",
				val, stats.PowerCycles, stats.JobsDone)
			return nil
		}
	}
	return scanner.Err()
}
