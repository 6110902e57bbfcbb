package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ingestion counters, registered on the default prometheus registry.
var (
	documentsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ontograph_documents_ingested_total",
		Help: "Documents successfully ingested, imports included.",
	})

	// FramesClassified counts classified frames/elements across all
	// formats. Exported so format subpackages can increment it.
	FramesClassified = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ontograph_frames_classified_total",
		Help: "Raw frames classified into entity records.",
	})

	importsResolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ontograph_imports_resolved_total",
		Help: "Declared imports fetched and merged.",
	})

	importsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ontograph_imports_skipped_total",
		Help: "Declared imports skipped: depth-bounded, broken, or timed out.",
	})

	ingestErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ontograph_ingest_errors_total",
		Help: "Documents rejected with a structural or detection error.",
	})
)
