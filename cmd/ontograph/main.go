// Package main provides the ontograph binary entry point.
// Ontograph ingests ontology documents in OBO, OBO-JSON and OWL-XML
// formats, merges them into one entity graph, and exports or publishes
// the result.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	// Register format ingestors via init()
	_ "github.com/c360studio/ontograph/ingest/obo"
	_ "github.com/c360studio/ontograph/ingest/obojson"
	_ "github.com/c360studio/ontograph/ingest/owlxml"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "ontograph"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	app := &appContext{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Ontology ingestion and graph export",
		Long: `Ontograph ingests ontology documents and merges them into one
entity graph.

It provides:
- OBO flat-file, OBO-JSON and OWL-XML ingestion with auto-detection
- Recursive import resolution with depth and timeout bounds
- RDF export (Turtle, N-Triples, JSON-LD)
- Graph entity publishing over NATS`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
	}

	cmd.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().IntVar(&app.workers, "workers", 0, "Classification workers (0 = one per CPU)")
	cmd.PersistentFlags().IntVar(&app.importDepth, "import-depth", -1, "Max import depth (-1 = config default, 0 = disabled)")

	cmd.AddCommand(parseCmd(app))
	cmd.AddCommand(statsCmd(app))
	cmd.AddCommand(exportCmd(app))
	cmd.AddCommand(publishCmd(app))
	cmd.AddCommand(watchCmd(app))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func setupLogging(logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
