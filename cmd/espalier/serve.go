package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier"
	httpAdapter "github.com/aretw0/espalier/internal/adapters/http"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the demo machine behind the introspection API",
	Long: `Starts the bundled device machine and exposes it over HTTP:
GET /state, GET /chart, POST /dispatch {"event": "..."}, GET /healthz.
The server serializes all access to the machine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		verbose, _ := cmd.Flags().GetBool("verbose")
		return runServe(port, verbose)
	},
}

func init() {
	serveCmd.Flags().String("port", "8080", "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(port string, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := logging.New(level)

	chart, err := buildDemoChart(io.Discard)
	if err != nil {
		return fmt.Errorf("failed to build demo chart: %w", err)
	}

	m := espalier.New(chart,
		espalier.WithLogger(log),
		espalier.WithLifecycleHooks(observability.LogHooks(log)),
	)
	if err := m.Initialize("device", &deviceStats{}); err != nil {
		return fmt.Errorf("failed to initialize machine: %w", err)
	}

	_, handler := httpAdapter.NewHandler(m, chart)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("introspection server listening", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
	}
	return nil
}
