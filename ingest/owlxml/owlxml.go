// Package owlxml ingests the legacy OWL/RDF-XML subset: owl:Class frames
// with rdfs:label, rdfs:subClassOf and rdfs:comment children, plus
// owl:imports declarations. The document is streamed, never materialized
// as a tree; matched class subtrees are queued for classification on a
// worker pool while everything else is released as it is read.
package owlxml

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/c360studio/ontograph/curie"
	"github.com/c360studio/ontograph/ingest"
	"github.com/c360studio/ontograph/ontology"
)

func init() {
	ingest.Register(&Ingestor{})
}

// scanState is the streaming state machine of the body scan. The loop
// starts in stateScanningBody, detours through stateClassifying for each
// matched class subtree, and terminates at stream end. The namespace
// pre-scan runs before it as its own full pass over the stream.
type scanState int

const (
	stateScanningBody scanState = iota
	stateClassifying
)

// Ingestor is the OWL-XML format ingestor.
type Ingestor struct{}

// Name identifies the format.
func (i *Ingestor) Name() string { return "owl-xml" }

// CanParse recognizes OWL/RDF-XML documents by extension or XML preamble.
func (i *Ingestor) CanParse(path string, head []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".owl", ".rdf", ".ont":
		return true
	}
	trimmed := bytes.TrimLeft(head, " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte("<?xml")) || bytes.HasPrefix(trimmed, []byte("<rdf"))
}

// Parse ingests one OWL-XML document into a fresh graph. The scan loop
// feeds matched class subtrees to the classification pool; this goroutine
// is the merge loop and the only writer to the graph. A malformed byte
// stream fails the whole document; an element that classification rejects
// (unknown prefix, missing accession) is skipped with a warning and its
// siblings survive.
func (i *Ingestor) Parse(ctx context.Context, doc *ingest.Document, opts ingest.Options) (*ontology.Ontology, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Pre-scan: collect every namespace binding before any tag-name
	// dispatch. Expansion needs the bindings to exist first; dispatching
	// on unexpanded names would match the wrong documents.
	nsmap, err := scanNamespaces(doc)
	if err != nil {
		return nil, err
	}

	onto := ontology.New()
	onto.Path = doc.Path
	meta := onto.Metadata()
	meta.Namespaces = nsmap
	meta.ImportDepth = opts.MaxDepth
	meta.Timeout = opts.Timeout

	cls := newClassifier(nsmap)
	pool := ingest.NewPool(opts.Workers, cls.classify)

	var imports []string
	scanDone := make(chan error, 1)
	go func() {
		defer pool.Close()
		uris, err := i.scanBody(ctx, doc, cls, pool)
		imports = uris
		scanDone <- err
	}()

	// Merge loop: drain every outstanding result before deciding the
	// document's fate, so a failure never silently discards queued work.
	var firstErr error
	for out := range pool.Results() {
		if out.Err != nil {
			var unknown *curie.UnknownPrefixError
			if errors.As(out.Err, &unknown) || errors.Is(out.Err, errNoAccession) {
				logger.Warn("Skipping unclassifiable element", slog.String("error", out.Err.Error()))
				continue
			}
			if firstErr == nil {
				firstErr = out.Err
			}
			continue
		}
		out.Record.Apply(onto)
		ingest.FramesClassified.Inc()
	}

	if err := <-scanDone; err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}

	meta.Imports = imports
	ingest.ResolveImports(ctx, onto, imports, doc.Depth, doc.BaseDir, opts)

	return onto, nil
}

// scanNamespaces walks the whole token stream once, recording xmlns
// declarations. Structural errors surface here, before any classification
// work is queued.
func scanNamespaces(doc *ingest.Document) (map[string]string, error) {
	nsmap := make(map[string]string)
	dec := xml.NewDecoder(bytes.NewReader(doc.Data))

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, structuralError(doc, dec, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		for _, attr := range start.Attr {
			switch {
			case attr.Name.Space == "xmlns":
				nsmap[attr.Name.Local] = attr.Value
			case attr.Name.Space == "" && attr.Name.Local == "xmlns":
				nsmap[""] = attr.Value
			}
		}
	}
	return nsmap, nil
}

// scanBody is the scan loop: a second pass over the stream that queues
// matched owl:Class subtrees and records owl:imports targets serially.
// Everything else is visited and released.
func (i *Ingestor) scanBody(ctx context.Context, doc *ingest.Document, cls *classifier, pool *ingest.Pool[*element]) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc.Data))
	state := stateScanningBody
	var imports []string

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return imports, nil
		}
		if err != nil {
			return imports, structuralError(doc, dec, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch {
		case cls.isImports(start.Name):
			if uri, ok := attrValue(start.Attr, cls.rdfResource); ok {
				imports = append(imports, uri)
			}

		case state == stateScanningBody && cls.isClass(start.Name) && len(plainAttrs(start.Attr)) > 0:
			state = stateClassifying
			el, err := captureElement(dec, start)
			if err != nil {
				return imports, structuralError(doc, dec, err)
			}
			if err := pool.Submit(ctx, el); err != nil {
				return imports, err
			}
			state = stateScanningBody

		default:
			// Visited and released; no tree is retained.
		}
	}
}

// captureElement materializes one matched subtree. Only matched class
// elements are ever captured; the rest of the document streams by.
func captureElement(dec *xml.Decoder, start xml.StartElement) (*element, error) {
	el := &element{name: start.Name, attrs: start.Attr}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := captureElement(dec, t)
			if err != nil {
				return nil, err
			}
			el.children = append(el.children, child)
		case xml.CharData:
			el.text += string(t)
		case xml.EndElement:
			return el, nil
		}
	}
}

// plainAttrs filters out namespace declarations, which do not count as
// element attributes for the "carries at least one attribute" rule.
func plainAttrs(attrs []xml.Attr) []xml.Attr {
	out := make([]xml.Attr, 0, len(attrs))
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out = append(out, a)
	}
	return out
}

func structuralError(doc *ingest.Document, dec *xml.Decoder, err error) error {
	perr := &ingest.StructuralParseError{Path: doc.Path, Err: err}
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		perr.Line = syn.Line
		perr.Text = syn.Msg
	}
	perr.Column = int(dec.InputOffset())
	return perr
}
