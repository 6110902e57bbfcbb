// Package obo ingests flat OBO text: a header of tag-value clauses
// followed by [Term] and [Typedef] stanzas. The scan loop cuts the
// document into stanza frames serially; frames classify on the worker
// pool like every other format.
package obo

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/c360studio/ontograph/ingest"
	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/ontograph/vocabulary"
)

func init() {
	ingest.Register(&Ingestor{})
}

// Ingestor is the flat OBO text format ingestor.
type Ingestor struct{}

// Name identifies the format.
func (i *Ingestor) Name() string { return "obo" }

// CanParse recognizes flat OBO by extension or a leading header clause.
func (i *Ingestor) CanParse(path string, head []byte) bool {
	if strings.EqualFold(filepath.Ext(path), ".obo") {
		return true
	}
	trimmed := bytes.TrimLeft(head, " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte("format-version:")) || bytes.HasPrefix(trimmed, []byte("[Term]"))
}

// Parse ingests one flat OBO document into a fresh graph: header serially,
// then imports, then stanza frames on the worker pool.
func (i *Ingestor) Parse(ctx context.Context, doc *ingest.Document, opts ingest.Options) (*ontology.Ontology, error) {
	onto := ontology.New()
	onto.Path = doc.Path
	meta := onto.Metadata()
	meta.Namespaces = vocabulary.DefaultPrefixes()
	meta.ImportDepth = opts.MaxDepth
	meta.Timeout = opts.Timeout

	frames, err := splitFrames(doc, meta)
	if err != nil {
		return nil, err
	}

	ingest.ResolveImports(ctx, onto, meta.Imports, doc.Depth, doc.BaseDir, opts)

	pool := ingest.NewPool(opts.Workers, func(f frame) (*ingest.Record, error) {
		return classifyFrame(doc.Path, f)
	})

	submitErr := make(chan error, 1)
	go func() {
		defer pool.Close()
		for _, f := range frames {
			if err := pool.Submit(ctx, f); err != nil {
				submitErr <- err
				return
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

	return onto, nil
}

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

// splitFrames reads the header clauses into the metadata and cuts the
// stanza bodies into frames. Serial by design: header order matters and
// namespace/subset declarations must exist before classification.
func splitFrames(doc *ingest.Document, meta *ontology.Metadata) ([]frame, error) {
	scanner := bufio.NewScanner(bytes.NewReader(doc.Data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var (
		frames  []frame
		current *frame
		lineNo  int
	)

	for scanner.Scan() {
		lineNo++
		line := stripComment(scanner.Text())
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "[") {
			if !strings.HasSuffix(trimmed, "]") {
				return nil, &ingest.StructuralParseError{
					Path: doc.Path, Line: lineNo, Text: trimmed,
					Err: errUnterminatedStanza,
				}
			}
			frames = append(frames, frame{Kind: strings.Trim(trimmed, "[]"), Line: lineNo})
			current = &frames[len(frames)-1]
			continue
		}

		tag, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			return nil, &ingest.StructuralParseError{
				Path: doc.Path, Line: lineNo, Text: trimmed,
				Err: errClauseWithoutTag,
			}
		}
		clause := clause{Tag: tag, Value: strings.TrimSpace(value), Line: lineNo}

		if current == nil {
			headerClause(meta, clause)
			continue
		}
		current.Clauses = append(current.Clauses, clause)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ingest.StructuralParseError{Path: doc.Path, Line: lineNo, Err: err}
	}

	return frames, nil
}

// headerClause applies one pre-stanza clause to the ontology metadata.
func headerClause(meta *ontology.Metadata, c clause) {
	switch c.Tag {
	case "format-version":
		meta.FormatVersion = c.Value
	case "data-version":
		meta.DataVersion = c.Value
	case "default-namespace":
		meta.DefaultNamespace = c.Value
	case "remark":
		meta.Remarks = append(meta.Remarks, c.Value)
	case "import":
		meta.Imports = append(meta.Imports, c.Value)
	case "subsetdef":
		id, rest := cutToken(c.Value)
		meta.AddSubsetDef(ontology.SubsetDef{ID: id, Description: unquote(rest)})
	default:
		meta.Annotations = append(meta.Annotations, ontology.PropertyValue{
			Property: c.Tag,
			Value:    c.Value,
		})
	}
}

// stripComment removes a trailing "!" comment unless the bang sits inside
// a quoted string.
func stripComment(line string) string {
	inQuotes := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '"':
			inQuotes = !inQuotes
		case '!':
			if !inQuotes {
				return line[:i]
			}
		}
	}
	return line
}
