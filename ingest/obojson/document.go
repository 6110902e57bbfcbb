package obojson

import (
	"errors"
	"fmt"
	"strings"

	"github.com/c360studio/ontograph/curie"
	"github.com/c360studio/ontograph/ingest"
	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/ontograph/vocabulary"
)

// Obograph document structure, as produced by the OBO graph-JSON
// serialization. Only the fields the classifier reads are declared; the
// codec skips the rest.

type document struct {
	Graphs []graph `json:"graphs"`
}

type graph struct {
	ID    string `json:"id"`
	Meta  *meta  `json:"meta"`
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID   string `json:"id"`
	Lbl  string `json:"lbl"`
	Type string `json:"type"`
	Meta *meta  `json:"meta"`
}

type edge struct {
	Sub  string `json:"sub"`
	Pred string `json:"pred"`
	Obj  string `json:"obj"`
}

type meta struct {
	Definition          *definition     `json:"definition"`
	Comments            []string        `json:"comments"`
	Subsets             []string        `json:"subsets"`
	Synonyms            []synonym       `json:"synonyms"`
	Xrefs               []xref          `json:"xrefs"`
	BasicPropertyValues []propertyValue `json:"basicPropertyValues"`
	Version             string          `json:"version"`
	Deprecated          bool            `json:"deprecated"`
}

type definition struct {
	Val   string   `json:"val"`
	Xrefs []string `json:"xrefs"`
}

type synonym struct {
	Pred  string   `json:"pred"`
	Val   string   `json:"val"`
	Xrefs []string `json:"xrefs"`
}

type xref struct {
	Val string `json:"val"`
}

type propertyValue struct {
	Pred string `json:"pred"`
	Val  string `json:"val"`
}

// synonymScopes maps obograph synonym predicates to OBO scopes.
var synonymScopes = map[string]string{
	"hasExactSynonym":   "EXACT",
	"hasBroadSynonym":   "BROAD",
	"hasNarrowSynonym":  "NARROW",
	"hasRelatedSynonym": "RELATED",
}

// Graph-level property predicates with header meaning.
const (
	predImports        = "imports"
	predSubsetProperty = "SubsetProperty"
)

// extractHeader reads the graph-level metadata serially: version, subset
// declarations and declared imports. It returns the import URIs.
func extractHeader(dst *ontology.Metadata, m *meta) []string {
	if m == nil {
		return nil
	}

	if dst.DataVersion == "" {
		dst.DataVersion = m.Version
	}
	for _, subset := range m.Subsets {
		dst.AddSubsetDef(ontology.SubsetDef{ID: subsetID(subset)})
	}

	var imports []string
	for _, pv := range m.BasicPropertyValues {
		switch {
		case strings.HasSuffix(pv.Pred, predImports):
			imports = append(imports, pv.Val)
		case strings.HasSuffix(pv.Pred, predSubsetProperty):
			dst.AddSubsetDef(ontology.SubsetDef{ID: subsetID(pv.Val)})
		default:
			dst.Annotations = append(dst.Annotations, ontology.PropertyValue{
				Property: curie.FormatAccession(pv.Pred, dst.Namespaces),
				Value:    pv.Val,
			})
		}
	}
	return imports
}

// classifyNode maps one node frame to a Record. Pure: safe on any worker,
// order-independent.
func classifyNode(n node, nsmap map[string]string) (*ingest.Record, error) {
	id := curie.FormatAccession(n.ID, nsmap)
	if id == "" {
		return nil, &ingest.StructuralParseError{
			Text: fmt.Sprintf("node %+v", n),
			Err:  errors.New("node frame without an id"),
		}
	}

	data := ontology.NewEntityData(id)
	data.Name = n.Lbl

	if m := n.Meta; m != nil {
		if m.Definition != nil {
			def := &ontology.Definition{Text: m.Definition.Val}
			for _, x := range m.Definition.Xrefs {
				def.Xrefs = append(def.Xrefs, ontology.Xref{ID: x})
			}
			data.Definition = def
		}
		data.Comment = strings.Join(m.Comments, "\n")
		for _, subset := range m.Subsets {
			data.Subsets = append(data.Subsets, subsetID(subset))
		}
		for _, s := range m.Synonyms {
			syn := ontology.Synonym{Text: s.Val, Scope: synonymScopes[localName(s.Pred)]}
			for _, x := range s.Xrefs {
				syn.Xrefs = append(syn.Xrefs, ontology.Xref{ID: x})
			}
			data.Synonyms = append(data.Synonyms, syn)
		}
		for _, x := range m.Xrefs {
			data.Xrefs = append(data.Xrefs, ontology.Xref{ID: x.Val})
		}
		for _, pv := range m.BasicPropertyValues {
			data.Annotations = append(data.Annotations, ontology.PropertyValue{
				Property: curie.FormatAccession(pv.Pred, nsmap),
				Value:    pv.Val,
			})
		}
		data.Obsolete = m.Deprecated
	}

	data.Builtin = strings.HasPrefix(n.ID, vocabulary.OWL) || strings.HasPrefix(n.ID, vocabulary.RDFS)
	data.Anonymous = strings.HasPrefix(id, "_:")

	return &ingest.Record{Data: data}, nil
}

// subsetID extracts the subset identifier from its IRI form; declarations
// and memberships must reduce to the same spelling to compare equal.
func subsetID(s string) string {
	return localName(s)
}

// localName returns the fragment or last path segment of an IRI, or the
// input unchanged when it has neither.
func localName(s string) string {
	if i := strings.LastIndexByte(s, '#'); i >= 0 {
		return s[i+1:]
	}
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return s
}
