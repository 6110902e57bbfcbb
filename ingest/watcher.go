package ingest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/ontograph/ontology"
)

// WatcherConfig configures the ontology file watcher.
type WatcherConfig struct {
	// Root is the directory to watch.
	Root string

	// Patterns are doublestar globs, relative to Root, selecting the
	// ontology files to re-ingest. Empty means the common extensions.
	Patterns []string

	// DebounceDelay is how long to wait for further changes before
	// re-ingesting. Zero means 200ms.
	DebounceDelay time.Duration

	// Options are the ingestion options used on each re-parse.
	Options Options

	// Logger for watch events.
	Logger *slog.Logger
}

// WatchEvent is emitted after a changed ontology file was re-ingested.
type WatchEvent struct {
	// Path is the changed file, relative to the watch root.
	Path string

	// Ontology is the freshly ingested graph; nil when ingestion failed.
	Ontology *ontology.Ontology

	// Err reports the ingestion failure, if any.
	Err error
}

// Watcher re-ingests ontology files when they change on disk. Events are
// debounced so an editor save (often several writes) triggers one parse.
type Watcher struct {
	config  WatcherConfig
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]struct{}

	events chan WatchEvent
}

// defaultPatterns covers the formats the registered ingestors recognize.
var defaultPatterns = []string{"**/*.obo", "**/*.owl", "**/*.rdf", "**/*.json"}

// NewWatcher creates a watcher over config.Root.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.DebounceDelay == 0 {
		config.DebounceDelay = 200 * time.Millisecond
	}
	if len(config.Patterns) == 0 {
		config.Patterns = defaultPatterns
	}

	return &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		pending: make(map[string]struct{}),
		events:  make(chan WatchEvent, 16),
	}, nil
}

// Events returns the channel of re-ingestion results.
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// Start begins watching. It blocks until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addRecursive(w.config.Root); err != nil {
		return err
	}

	timer := time.NewTimer(w.config.DebounceDelay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	defer w.watcher.Close()
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := w.addRecursive(event.Name); err != nil {
					w.logger.Warn("Failed to watch new directory", slog.String("path", event.Name))
				}
				continue
			}
			if !w.matches(event.Name) {
				continue
			}
			w.pendingMu.Lock()
			w.pending[event.Name] = struct{}{}
			w.pendingMu.Unlock()
			timer.Reset(w.config.DebounceDelay)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", slog.String("error", err.Error()))

		case <-timer.C:
			w.flush(ctx)
		}
	}
}

// flush re-ingests every pending file and emits the results.
func (w *Watcher) flush(ctx context.Context) {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	for _, path := range paths {
		rel, err := filepath.Rel(w.config.Root, path)
		if err != nil {
			rel = path
		}

		onto, err := Load(ctx, path, w.config.Options)
		if err != nil {
			w.logger.Warn("Re-ingestion failed", slog.String("path", rel), slog.String("error", err.Error()))
			w.events <- WatchEvent{Path: rel, Err: err}
			continue
		}
		w.logger.Info("Re-ingested changed ontology", slog.String("path", rel), slog.Int("terms", onto.Len()))
		w.events <- WatchEvent{Path: rel, Ontology: onto}
	}
}

// matches checks a path against the configured glob patterns.
func (w *Watcher) matches(path string) bool {
	rel, err := filepath.Rel(w.config.Root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.config.Patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}
