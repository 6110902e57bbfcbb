// Package config provides configuration loading and management for Ontograph.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete Ontograph configuration
type Config struct {
	Ingest IngestConfig `yaml:"ingest"`
	NATS   NATSConfig   `yaml:"nats"`
	Watch  WatchConfig  `yaml:"watch"`
	Export ExportConfig `yaml:"export"`
}

// IngestConfig configures the ingestion pipeline
type IngestConfig struct {
	// Workers is the classification worker count (0 = one per CPU)
	Workers int `yaml:"workers"`
	// MaxImportDepth bounds recursive import resolution (0 = imports disabled)
	MaxImportDepth int `yaml:"max_import_depth"`
	// FetchTimeout is the per-import fetch deadline
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

// NATSConfig configures the NATS connection for graph publishing
type NATSConfig struct {
	// URL is the NATS server URL (empty = publishing disabled)
	URL string `yaml:"url"`
	// Stream is the JetStream stream name
	Stream string `yaml:"stream"`
}

// WatchConfig configures the directory watcher
type WatchConfig struct {
	// Root is the directory tree to watch
	Root string `yaml:"root"`
	// Patterns are doublestar globs selecting ontology documents
	Patterns []string `yaml:"patterns"`
	// DebounceDelay coalesces rapid file events before re-ingesting
	DebounceDelay time.Duration `yaml:"debounce_delay"`
}

// ExportConfig configures RDF export defaults
type ExportConfig struct {
	// Format is the default export serialization (turtle, ntriples, jsonld)
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Ingest: IngestConfig{
			Workers:        0, // One per CPU
			MaxImportDepth: 3,
			FetchTimeout:   30 * time.Second,
		},
		NATS: NATSConfig{
			URL:    "",
			Stream: "graph",
		},
		Watch: WatchConfig{
			Root:          ".",
			Patterns:      []string{"**/*.obo", "**/*.owl", "**/*.rdf", "**/*.json"},
			DebounceDelay: 200 * time.Millisecond,
		},
		Export: ExportConfig{
			Format: "turtle",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Ingest.Workers < 0 {
		return fmt.Errorf("ingest.workers must not be negative")
	}
	if c.Ingest.MaxImportDepth < 0 {
		return fmt.Errorf("ingest.max_import_depth must not be negative")
	}
	if c.Ingest.FetchTimeout <= 0 {
		return fmt.Errorf("ingest.fetch_timeout must be positive")
	}
	if c.Watch.DebounceDelay <= 0 {
		return fmt.Errorf("watch.debounce_delay must be positive")
	}
	switch c.Export.Format {
	case "turtle", "ntriples", "jsonld":
	default:
		return fmt.Errorf("export.format must be turtle, ntriples or jsonld")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Ingest
	if other.Ingest.Workers != 0 {
		c.Ingest.Workers = other.Ingest.Workers
	}
	if other.Ingest.MaxImportDepth != 0 {
		c.Ingest.MaxImportDepth = other.Ingest.MaxImportDepth
	}
	if other.Ingest.FetchTimeout != 0 {
		c.Ingest.FetchTimeout = other.Ingest.FetchTimeout
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Stream != "" {
		c.NATS.Stream = other.NATS.Stream
	}

	// Watch
	if other.Watch.Root != "" {
		c.Watch.Root = other.Watch.Root
	}
	if len(other.Watch.Patterns) > 0 {
		c.Watch.Patterns = other.Watch.Patterns
	}
	if other.Watch.DebounceDelay != 0 {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}

	// Export
	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}
}
