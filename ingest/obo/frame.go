package obo

import (
	"errors"
	"strings"

	"github.com/c360studio/ontograph/ingest"
	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/ontograph/vocabulary"
)

var (
	errUnterminatedStanza = errors.New("unterminated stanza header")
	errClauseWithoutTag   = errors.New("clause line without a tag")
	errFrameWithoutID     = errors.New("stanza without an id clause")
)

// frame is one raw stanza: its kind ([Term], [Typedef]), the line the
// stanza header sits on, and its clauses in document order.
type frame struct {
	Kind    string
	Line    int
	Clauses []clause
}

// clause is one tag-value line of a stanza.
type clause struct {
	Tag   string
	Value string
	Line  int
}

// classifyFrame maps one stanza to a Record. Pure; runs on the pool.
func classifyFrame(path string, f frame) (*ingest.Record, error) {
	id := ""
	for _, c := range f.Clauses {
		if c.Tag == "id" {
			id = c.Value
			break
		}
	}
	if id == "" {
		return nil, &ingest.StructuralParseError{
			Path: path, Line: f.Line, Text: "[" + f.Kind + "]",
			Err: errFrameWithoutID,
		}
	}

	data := ontology.NewEntityData(id)
	data.Builtin = f.Kind == "Typedef"
	edges := make(map[string][]string)

	for _, c := range f.Clauses {
		switch c.Tag {
		case "id":
			// Consumed above; ids are immutable afterwards.
		case "name":
			data.Name = c.Value
		case "namespace":
			data.Namespace = c.Value
		case "def":
			text, rest := cutQuoted(c.Value)
			data.Definition = &ontology.Definition{Text: text, Xrefs: parseXrefList(rest)}
		case "comment":
			data.Comment = c.Value
		case "alt_id":
			data.AlternateIDs = append(data.AlternateIDs, c.Value)
		case "subset":
			data.Subsets = append(data.Subsets, c.Value)
		case "synonym":
			text, rest := cutQuoted(c.Value)
			scope, _ := cutToken(rest)
			if strings.HasPrefix(scope, "[") {
				scope = ""
			}
			data.Synonyms = append(data.Synonyms, ontology.Synonym{
				Text:  text,
				Scope: scope,
				Xrefs: parseXrefList(rest),
			})
		case "xref":
			ref, rest := cutToken(c.Value)
			data.Xrefs = append(data.Xrefs, ontology.Xref{ID: ref, Description: unquote(rest)})
		case "is_a":
			target, _ := cutToken(c.Value)
			edges[vocabulary.IsA] = append(edges[vocabulary.IsA], target)
		case "relationship":
			typ, rest := cutToken(c.Value)
			target, _ := cutToken(rest)
			if typ != "" && target != "" {
				edges[typ] = append(edges[typ], target)
			}
		case "is_obsolete":
			data.Obsolete = c.Value == "true"
		case "is_anonymous":
			data.Anonymous = c.Value == "true"
		case "builtin":
			data.Builtin = c.Value == "true"
		case "property_value":
			prop, rest := cutToken(c.Value)
			data.Annotations = append(data.Annotations, ontology.PropertyValue{
				Property: prop,
				Value:    unquote(rest),
			})
		default:
			data.Annotations = append(data.Annotations, ontology.PropertyValue{
				Property: c.Tag,
				Value:    c.Value,
			})
		}
	}

	rec := &ingest.Record{Data: data}
	if len(edges) > 0 {
		rec.Edges = edges
	}
	return rec, nil
}

// cutToken splits off the first whitespace-delimited token.
func cutToken(s string) (token, rest string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}

// cutQuoted splits a leading quoted string off a clause value. Escaped
// quotes inside the string are unescaped.
func cutQuoted(s string) (text, rest string) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, `"`) {
		return s, ""
	}
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			}
		case '"':
			return b.String(), strings.TrimSpace(s[i+1:])
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String(), ""
}

// unquote strips surrounding quotes from a value if present.
func unquote(s string) string {
	text, _ := cutQuoted(s)
	return text
}

// parseXrefList parses the trailing "[XR:1, XR:2 "desc"]" block of a def
// or synonym clause.
func parseXrefList(s string) []ontology.Xref {
	start := strings.IndexByte(s, '[')
	end := strings.LastIndexByte(s, ']')
	if start < 0 || end <= start {
		return nil
	}

	var xrefs []ontology.Xref
	for _, part := range strings.Split(s[start+1:end], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ref, rest := cutToken(part)
		xrefs = append(xrefs, ontology.Xref{ID: ref, Description: unquote(rest)})
	}
	return xrefs
}
