// Package export serializes a merged ontology graph to RDF.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/ontograph/vocabulary"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	Name        Format
	MIMEType    string
	Extension   string
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
}

// RDFExporter exports an ontology graph to RDF serializations.
type RDFExporter struct {
	onto     *ontology.Ontology
	prefixes map[string]string
}

// NewRDFExporter creates an exporter over a finished graph. The prefix
// table starts from the defaults and picks up the bindings discovered
// during ingestion.
func NewRDFExporter(onto *ontology.Ontology) *RDFExporter {
	prefixes := vocabulary.DefaultPrefixes()
	for prefix, uri := range onto.Metadata().Namespaces {
		if prefix != "" {
			prefixes[prefix] = uri
		}
	}
	return &RDFExporter{onto: onto, prefixes: prefixes}
}

// Export serializes the graph to the specified format.
func (e *RDFExporter) Export(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(), nil
	case FormatNTriples:
		return e.toNTriples(), nil
	case FormatJSONLD:
		return e.toJSONLD(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// statement is one flattened assertion about a term.
type statement struct {
	predicate string
	object    string
	literal   bool
}

// statements flattens one term to predicate/object pairs, in a stable
// order.
func (e *RDFExporter) statements(term ontology.Term) []statement {
	stmts := []statement{{predicate: vocabulary.RDF + "type", object: vocabulary.OWL + "Class"}}

	if name, err := term.Name(); err == nil && name != "" {
		stmts = append(stmts, statement{predicate: vocabulary.RDFS + "label", object: name, literal: true})
	}
	if def, err := term.Definition(); err == nil && def != nil {
		stmts = append(stmts, statement{predicate: vocabulary.OboInOwl + "hasDefinition", object: def.Text, literal: true})
	}
	if comment, err := term.Comment(); err == nil && comment != "" {
		stmts = append(stmts, statement{predicate: vocabulary.RDFS + "comment", object: comment, literal: true})
	}
	if ns, err := term.Namespace(); err == nil && ns != "" {
		stmts = append(stmts, statement{predicate: vocabulary.OboInOwl + "hasOBONamespace", object: ns, literal: true})
	}
	if altIDs, err := term.AlternateIDs(); err == nil {
		for _, alt := range altIDs {
			stmts = append(stmts, statement{predicate: vocabulary.OboInOwl + "hasAlternativeId", object: alt, literal: true})
		}
	}
	if subsets, err := term.Subsets(); err == nil {
		for _, subset := range subsets {
			stmts = append(stmts, statement{predicate: vocabulary.OboInOwl + "inSubset", object: subset, literal: true})
		}
	}
	if synonyms, err := term.Synonyms(); err == nil {
		for _, syn := range synonyms {
			stmts = append(stmts, statement{predicate: vocabulary.OboInOwl + "hasSynonym", object: syn.Text, literal: true})
		}
	}
	if xrefs, err := term.Xrefs(); err == nil {
		for _, x := range xrefs {
			stmts = append(stmts, statement{predicate: vocabulary.OboInOwl + "hasDbXref", object: x.ID, literal: true})
		}
	}
	if obsolete, err := term.Obsolete(); err == nil && obsolete {
		stmts = append(stmts, statement{predicate: vocabulary.OWL + "deprecated", object: "true", literal: true})
	}

	if targets, err := term.Relationships(vocabulary.IsA); err == nil {
		for _, target := range targets {
			stmts = append(stmts, statement{predicate: vocabulary.RDFS + "subClassOf", object: e.termIRI(target)})
		}
	}

	return stmts
}

// toTurtle serializes to Turtle format.
func (e *RDFExporter) toTurtle() string {
	var sb strings.Builder

	for _, prefix := range sortedPrefixes(e.prefixes) {
		sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, e.prefixes[prefix]))
	}
	sb.WriteString("\n")

	for _, term := range e.onto.Terms() {
		stmts := e.statements(term)
		sb.WriteString(fmt.Sprintf("<%s>\n", e.termIRI(term.ID())))
		for i, st := range stmts {
			sb.WriteString(fmt.Sprintf("    <%s> %s", st.predicate, formatObject(st)))
			if i < len(stmts)-1 {
				sb.WriteString(" ;\n")
			} else {
				sb.WriteString(" .\n")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// toNTriples serializes to N-Triples format.
func (e *RDFExporter) toNTriples() string {
	var sb strings.Builder

	for _, term := range e.onto.Terms() {
		iri := e.termIRI(term.ID())
		for _, st := range e.statements(term) {
			sb.WriteString(fmt.Sprintf("<%s> <%s> %s .\n", iri, st.predicate, formatObject(st)))
		}
	}

	return sb.String()
}

// toJSONLD serializes to JSON-LD format.
func (e *RDFExporter) toJSONLD() string {
	var sb strings.Builder

	sb.WriteString("{\n  \"@context\": {\n")
	prefixes := sortedPrefixes(e.prefixes)
	for i, prefix := range prefixes {
		sb.WriteString(fmt.Sprintf("    %q: %q", prefix, e.prefixes[prefix]))
		if i < len(prefixes)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  },\n  \"@graph\": [\n")

	terms := e.onto.Terms()
	for i, term := range terms {
		sb.WriteString("    {\n")
		sb.WriteString(fmt.Sprintf("      \"@id\": %q", e.termIRI(term.ID())))
		for _, st := range e.statements(term) {
			sb.WriteString(",\n")
			if st.literal {
				sb.WriteString(fmt.Sprintf("      %q: %q", st.predicate, st.object))
			} else {
				sb.WriteString(fmt.Sprintf("      %q: {\"@id\": %q}", st.predicate, st.object))
			}
		}
		sb.WriteString("\n    }")
		if i < len(terms)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("  ]\n}\n")
	return sb.String()
}

// termIRI expands a canonical PREFIX:LOCAL id back to its IRI form using
// the OBO PURL convention. Blank nodes keep their _: spelling.
func (e *RDFExporter) termIRI(id string) string {
	if strings.HasPrefix(id, "_") {
		return id
	}
	if prefix, local, ok := strings.Cut(id, ":"); ok {
		return vocabulary.OBO + prefix + "_" + local
	}
	return vocabulary.OBO + id
}

func formatObject(st statement) string {
	if st.literal {
		return fmt.Sprintf("%q", st.object)
	}
	return fmt.Sprintf("<%s>", st.object)
}

func sortedPrefixes(prefixes map[string]string) []string {
	keys := make([]string, 0, len(prefixes))
	for k := range prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
