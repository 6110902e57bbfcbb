package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/ontograph/config"
	"github.com/c360studio/ontograph/export"
	"github.com/c360studio/ontograph/graph"
	"github.com/c360studio/ontograph/ingest"
	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/semstreams/natsclient"
)

// appContext carries the configuration shared by every subcommand.
type appContext struct {
	configPath  string
	logLevel    string
	workers     int
	importDepth int

	cfg    *config.Config
	logger *slog.Logger
}

// init loads configuration and sets up logging. Flags override config
// file values.
func (a *appContext) init() error {
	a.logger = setupLogging(a.logLevel)

	var cfg *config.Config
	if a.configPath != "" {
		loaded, err := config.LoadFromFile(a.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		cfg = loaded
	} else {
		loaded, err := config.NewLoader(a.logger).Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if a.workers > 0 {
		cfg.Ingest.Workers = a.workers
	}
	if a.importDepth >= 0 {
		cfg.Ingest.MaxImportDepth = a.importDepth
	}

	a.cfg = cfg
	return nil
}

// ingestOptions maps the loaded configuration to ingestion options.
func (a *appContext) ingestOptions() ingest.Options {
	return ingest.Options{
		Workers:  a.cfg.Ingest.Workers,
		MaxDepth: a.cfg.Ingest.MaxImportDepth,
		Timeout:  a.cfg.Ingest.FetchTimeout,
		Logger:   a.logger,
	}
}

func (a *appContext) load(ctx context.Context, path string) (*ontology.Ontology, error) {
	return ingest.Load(ctx, path, a.ingestOptions())
}

func parseCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Ingest an ontology document and report the merged graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			onto, err := app.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d terms, %d edges\n", args[0], onto.Len(), onto.EdgeCount())
			return nil
		},
	}
}

func statsCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Print detailed statistics for an ingested document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			onto, err := app.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			obsolete := 0
			defined := 0
			relTypes := make(map[string]int)
			for _, term := range onto.Terms() {
				if flag, err := term.Obsolete(); err == nil && flag {
					obsolete++
				}
				if def, err := term.Definition(); err == nil && def != nil {
					defined++
				}
				for _, typ := range onto.RelationshipTypes(term.ID()) {
					relTypes[typ] += len(onto.Relationships(term.ID(), typ))
				}
			}

			meta := onto.Metadata()
			fmt.Printf("Path:            %s\n", args[0])
			if meta.DataVersion != "" {
				fmt.Printf("Data version:    %s\n", meta.DataVersion)
			}
			fmt.Printf("Terms:           %d\n", onto.Len())
			fmt.Printf("  with definition: %d\n", defined)
			fmt.Printf("  obsolete:        %d\n", obsolete)
			fmt.Printf("Edges:           %d\n", onto.EdgeCount())
			for typ, n := range relTypes {
				fmt.Printf("  %-16s %d\n", typ+":", n)
			}
			fmt.Printf("Imports:         %d\n", len(meta.Imports))
			return nil
		},
	}
}

func exportCmd(app *appContext) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Ingest a document and export the merged graph as RDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			onto, err := app.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if format == "" {
				format = app.cfg.Export.Format
			}
			serialized, err := export.NewRDFExporter(onto).Export(export.Format(format))
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				fmt.Print(serialized)
				return nil
			}
			if err := os.WriteFile(output, []byte(serialized), 0644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			app.logger.Info("Graph exported",
				slog.String("format", format),
				slog.String("output", output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Export format (turtle, ntriples, jsonld)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func publishCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <file>",
		Short: "Ingest a document and publish its terms to the knowledge graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfg.NATS.URL == "" {
				return fmt.Errorf("nats.url is not configured")
			}

			ctx := cmd.Context()
			onto, err := app.load(ctx, args[0])
			if err != nil {
				return err
			}

			nc, err := connectToNATS(ctx, app.cfg.NATS.URL, app.logger)
			if err != nil {
				return err
			}
			defer nc.Close(ctx)

			if err := graph.PublishOntology(ctx, nc, onto); err != nil {
				return fmt.Errorf("publish graph: %w", err)
			}
			app.logger.Info("Graph published",
				slog.Int("terms", onto.Len()),
				slog.String("subject", graph.GraphIngestSubject))
			return nil
		},
	}
}

func watchCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [root]",
		Short: "Watch a directory tree and re-ingest changed ontology files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := app.cfg.Watch.Root
			if len(args) == 1 {
				root = args[0]
			}

			watcher, err := ingest.NewWatcher(ingest.WatcherConfig{
				Root:          root,
				Patterns:      app.cfg.Watch.Patterns,
				DebounceDelay: app.cfg.Watch.DebounceDelay,
				Options:       app.ingestOptions(),
				Logger:        app.logger,
			})
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}

			app.logger.Info("Watching for ontology changes", slog.String("root", root))
			go func() {
				for event := range watcher.Events() {
					if event.Err != nil {
						continue
					}
					fmt.Printf("%s: %d terms, %d edges\n",
						event.Path, event.Ontology.Len(), event.Ontology.EdgeCount())
				}
			}()
			return watcher.Start(cmd.Context())
		},
	}
}

func connectToNATS(ctx context.Context, url string, logger *slog.Logger) (*natsclient.Client, error) {
	logger.Info("Connecting to NATS", slog.String("url", url))

	client, err := natsclient.NewClient(url,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}

	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.WaitForConnection(connCtx); err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}

	logger.Info("Connected to NATS", slog.String("url", url))
	return client, nil
}
