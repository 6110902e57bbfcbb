package ingest

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/c360studio/ontograph/ontology"
)

// ImportResult reports the outcome of one declared import.
type ImportResult struct {
	URI string
	Err error
}

// ResolveImports fetches each declared import, runs it through the full
// ingestion pipeline, and merges the resulting graph into target. Imports
// declared at depth >= MaxDepth are not fetched at all, which is what
// breaks unbounded recursive import cycles.
//
// A single broken or slow import never aborts the importing document: the
// fetch is bounded by Options.Timeout, failures degrade to a warning, and
// the import is skipped. The returned results record what happened to
// each URI.
func ResolveImports(ctx context.Context, target *ontology.Ontology, uris []string, depth int, baseDir string, opts Options) []ImportResult {
	opts = opts.withDefaults()
	results := make([]ImportResult, 0, len(uris))

	for _, uri := range uris {
		if depth >= opts.MaxDepth {
			opts.Logger.Debug("Import depth limit reached, not fetching",
				slog.String("uri", uri), slog.Int("depth", depth))
			importsSkipped.Inc()
			results = append(results, ImportResult{URI: uri})
			continue
		}

		merged, err := resolveOne(ctx, uri, depth, baseDir, opts)
		if err != nil {
			opts.Logger.Warn("Skipping broken import",
				slog.String("uri", uri), slog.String("error", err.Error()))
			importsSkipped.Inc()
			results = append(results, ImportResult{URI: uri, Err: err})
			continue
		}

		target.Merge(merged)
		importsResolved.Inc()
		results = append(results, ImportResult{URI: uri})
	}

	return results
}

func resolveOne(ctx context.Context, uri string, depth int, baseDir string, opts Options) (*ontology.Ontology, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	data, err := opts.Fetcher.Fetch(fetchCtx, uri, baseDir)
	if err != nil {
		return nil, &ImportError{
			URI:     uri,
			Timeout: errors.Is(fetchCtx.Err(), context.DeadlineExceeded),
			Err:     err,
		}
	}

	return LoadBytes(ctx, &Document{
		Path:    uri,
		Data:    data,
		Depth:   depth + 1,
		BaseDir: importBaseDir(uri, baseDir),
	}, opts)
}

// importBaseDir gives the directory against which the import's own
// relative imports resolve.
func importBaseDir(uri, baseDir string) string {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return path.Dir(uri)
	}
	if filepath.IsAbs(uri) {
		return filepath.Dir(uri)
	}
	return filepath.Dir(filepath.Join(baseDir, uri))
}
