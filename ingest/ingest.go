// Package ingest orchestrates ontology document ingestion: format
// detection, the classification worker pool, recursive import resolution,
// and the metrics around all of it. Format-specific ingestors live in the
// subpackages and register themselves at init time; importing a subpackage
// enables its format.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/ontograph/fetch"
	"github.com/c360studio/ontograph/ontology"
)

// DefaultMaxDepth bounds recursive import resolution when configuration
// leaves it unset. Depth 0 is the root document; its imports load at
// depth 1, theirs at depth 2.
const DefaultMaxDepth = 3

// Options carries the tunables shared by every ingestor.
type Options struct {
	// Workers sizes the classification pool. Zero means host parallelism.
	Workers int

	// MaxDepth bounds recursive import resolution. Imports declared at
	// depth >= MaxDepth are not fetched, which breaks unbounded import
	// cycles. Zero disables import fetching entirely.
	MaxDepth int

	// Timeout bounds each individual import fetch.
	Timeout time.Duration

	// Fetcher retrieves import targets. Nil means the default client.
	Fetcher fetch.Fetcher

	// Logger receives import warnings and progress. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns Options with every field at its default.
func DefaultOptions() Options {
	return Options{
		Workers:  runtime.NumCPU(),
		MaxDepth: DefaultMaxDepth,
		Timeout:  fetch.DefaultTimeout,
	}
}

func (o Options) withDefaults() Options {
	if o.Workers < 1 {
		o.Workers = runtime.NumCPU()
	}
	if o.Timeout <= 0 {
		o.Timeout = fetch.DefaultTimeout
	}
	if o.Fetcher == nil {
		o.Fetcher = fetch.NewClient()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Document is one ontology document handed to an ingestor: its raw bytes
// plus the context import resolution needs.
type Document struct {
	// Path is the originating path or URI, used in error reporting.
	Path string

	// Data is the full document content.
	Data []byte

	// Depth is the import depth of this document (0 for the root).
	Depth int

	// BaseDir resolves relative import paths.
	BaseDir string
}

// Ingestor converts one external document format into an ontology graph.
type Ingestor interface {
	// Name identifies the format for logs and errors.
	Name() string

	// CanParse reports whether the document looks like this format,
	// judged from its path and leading bytes.
	CanParse(path string, head []byte) bool

	// Parse ingests the document into a fresh graph. A structural error
	// means the whole document is rejected; a partial graph never
	// escapes.
	Parse(ctx context.Context, doc *Document, opts Options) (*ontology.Ontology, error)
}

var (
	registryMu sync.RWMutex
	registry   []Ingestor
)

// Register adds a format ingestor. Subpackages call this from init.
func Register(ing Ingestor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, ing)
}

// Detect selects the ingestor for a document from its path and leading
// bytes, in registration order.
func Detect(path string, head []byte) (Ingestor, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, ing := range registry {
		if ing.CanParse(path, head) {
			return ing, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// Load reads the file at path and ingests it with format auto-detection.
func Load(ctx context.Context, path string, opts Options) (*ontology.Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return LoadBytes(ctx, &Document{
		Path:    path,
		Data:    data,
		BaseDir: filepath.Dir(path),
	}, opts)
}

// LoadBytes ingests an in-memory document with format auto-detection.
// This is also the re-entry point the import resolver uses for fetched
// imports.
func LoadBytes(ctx context.Context, doc *Document, opts Options) (*ontology.Ontology, error) {
	opts = opts.withDefaults()

	ing, err := Detect(doc.Path, doc.Data)
	if err != nil {
		ingestErrors.Inc()
		return nil, err
	}

	runID := uuid.NewString()
	logger := opts.Logger.With(
		slog.String("run_id", runID),
		slog.String("format", ing.Name()),
		slog.String("path", doc.Path),
		slog.Int("depth", doc.Depth),
	)
	logger.Debug("Ingesting document", slog.Int("bytes", len(doc.Data)))

	start := time.Now()
	onto, err := ing.Parse(ctx, doc, Options{
		Workers:  opts.Workers,
		MaxDepth: opts.MaxDepth,
		Timeout:  opts.Timeout,
		Fetcher:  opts.Fetcher,
		Logger:   logger,
	})
	if err != nil {
		ingestErrors.Inc()
		return nil, err
	}

	documentsIngested.Inc()
	logger.Info("Document ingested",
		slog.Int("terms", onto.Len()),
		slog.Int("edges", onto.EdgeCount()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return onto, nil
}
