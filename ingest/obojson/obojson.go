// Package obojson ingests OBO graph-JSON documents. The low-level JSON
// codec is opaque (encoding/json into the obograph document structs);
// this package only classifies the decoded frames and wires the pipeline:
// header first, then imports, then frames on the worker pool.
package obojson

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/c360studio/ontograph/curie"
	"github.com/c360studio/ontograph/ingest"
	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/ontograph/vocabulary"
)

func init() {
	ingest.Register(&Ingestor{})
}

// Ingestor is the OBO graph-JSON format ingestor.
type Ingestor struct{}

// Name identifies the format.
func (i *Ingestor) Name() string { return "obo-json" }

// CanParse recognizes graph-JSON by a leading brace or a .json extension.
func (i *Ingestor) CanParse(path string, head []byte) bool {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return true
	}
	return bytes.HasPrefix(bytes.TrimLeft(head, " \t\r\n"), []byte("{"))
}

// Parse ingests one graph-JSON document into a fresh graph.
//
// The pipeline is single-pass: (1) the codec decodes the document and the
// header is read serially; (2) declared imports are resolved and merged so
// subset declarations exist before frame validation runs; (3) every node
// frame is classified independently on the worker pool. Classification is
// pure and merge is commutative per field, so the final state does not
// depend on completion order. Any malformed frame fails the whole
// document; import failures stay independently tolerated.
func (i *Ingestor) Parse(ctx context.Context, doc *ingest.Document, opts ingest.Options) (*ontology.Ontology, error) {
	var parsed document
	if err := json.Unmarshal(doc.Data, &parsed); err != nil {
		return nil, jsonStructuralError(doc, err)
	}

	onto := ontology.New()
	onto.Path = doc.Path
	meta := onto.Metadata()
	meta.Namespaces = vocabulary.DefaultPrefixes()
	meta.ImportDepth = opts.MaxDepth
	meta.Timeout = opts.Timeout

	var imports []string
	for _, g := range parsed.Graphs {
		imports = append(imports, extractHeader(meta, g.Meta)...)
	}
	meta.Imports = imports

	// Imports merge before frame classification so that subset
	// declarations arriving from imports are in place when frame subset
	// assignment is validated.
	ingest.ResolveImports(ctx, onto, imports, doc.Depth, doc.BaseDir, opts)

	nsmap := meta.Namespaces
	pool := ingest.NewPool(opts.Workers, func(n node) (*ingest.Record, error) {
		return classifyNode(n, nsmap)
	})

	submitErr := make(chan error, 1)
	go func() {
		defer pool.Close()
		for _, g := range parsed.Graphs {
			for _, n := range g.Nodes {
				if err := pool.Submit(ctx, n); err != nil {
					submitErr <- err
					return
				}
			}
		}
		submitErr <- nil
	}()

	var firstErr error
	for out := range pool.Results() {
		if out.Err != nil {
			if firstErr == nil {
				firstErr = out.Err
			}
			continue
		}
		if firstErr == nil {
			firstErr = applyFrame(onto, out.Record)
		}
	}
	if err := <-submitErr; err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}

	for _, g := range parsed.Graphs {
		for _, e := range g.Edges {
			sub := curie.FormatAccession(e.Sub, nsmap)
			obj := curie.FormatAccession(e.Obj, nsmap)
			if sub == "" || obj == "" {
				return nil, &ingest.StructuralParseError{
					Path: doc.Path,
					Text: fmt.Sprintf("edge %q -[%s]-> %q", e.Sub, e.Pred, e.Obj),
					Err:  errors.New("edge with empty endpoint"),
				}
			}
			onto.AddRelationship(sub, relationshipType(e.Pred, nsmap), obj)
		}
	}

	return onto, nil
}

// applyFrame validates subset assignment against the declarations merged
// so far, then inserts the record. Runs only on the merge goroutine.
func applyFrame(onto *ontology.Ontology, rec *ingest.Record) error {
	for _, subset := range rec.Data.Subsets {
		if !onto.Metadata().HasSubsetDef(subset) {
			return &ontology.ValidationError{Field: "subset", Value: subset, Reason: "undeclared subset"}
		}
	}
	rec.Apply(onto)
	ingest.FramesClassified.Inc()
	return nil
}

// relationshipType canonicalizes an edge predicate. Subclass predicates
// collapse to is_a; anything else keeps its normalized spelling.
func relationshipType(pred string, nsmap map[string]string) string {
	if pred == vocabulary.IsA || strings.HasSuffix(pred, "subClassOf") {
		return vocabulary.IsA
	}
	return curie.FormatAccession(pred, nsmap)
}

// jsonStructuralError converts a codec error into a StructuralParseError
// carrying the 1-based line and column of the offending byte.
func jsonStructuralError(doc *ingest.Document, err error) error {
	perr := &ingest.StructuralParseError{Path: doc.Path, Err: err}

	var offset int64 = -1
	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syn):
		offset = syn.Offset
	case errors.As(err, &typ):
		offset = typ.Offset
	}
	if offset >= 0 && offset <= int64(len(doc.Data)) {
		head := doc.Data[:offset]
		perr.Line = 1 + bytes.Count(head, []byte("\n"))
		perr.Column = int(offset) - bytes.LastIndexByte(head, '\n')
		start := int(offset)
		end := min(start+40, len(doc.Data))
		perr.Text = string(doc.Data[start:end])
	}
	return perr
}
