package owlxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"sort"

	"github.com/c360studio/ontograph/curie"
	"github.com/c360studio/ontograph/ingest"
	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/ontograph/vocabulary"
)

// errNoAccession marks an owl:Class without an rdf:about or rdf:ID
// attribute. Fatal to that element only.
var errNoAccession = errors.New("class element has no rdf:about or rdf:ID accession")

// element is one captured subtree. Names are namespace-resolved by the
// codec (Space holds the URI), so comparisons run against expanded names.
type element struct {
	name     xml.Name
	attrs    []xml.Attr
	text     string
	children []*element
}

// walk visits descendants in document order.
func (e *element) walk(visit func(*element)) {
	for _, child := range e.children {
		visit(child)
		child.walk(visit)
	}
}

// actionKind tags what a classification rule does with a matched child.
type actionKind int

const (
	// actionStore overwrites a scalar destination; the last occurrence
	// in document order wins.
	actionStore actionKind = iota

	// actionAppendToList appends to an ordered edge list, preserving
	// duplicates.
	actionAppendToList

	// actionMergeMap merges extracted comment metadata with update
	// semantics.
	actionMergeMap
)

// rule pairs a match predicate with its action kind. The table order is
// fixed; rules are tried in priority order for every descendant.
type rule struct {
	match func(*element) bool
	kind  actionKind
}

// classifier holds the expanded tag and attribute names a worker matches
// against. It is built once per document from the pre-scanned bindings
// and shared read-only by every worker.
type classifier struct {
	nsmap map[string]string

	owlClass   string
	owlImports string

	rdfAbout    string
	rdfID       string
	rdfResource string

	rdfsLabel      string
	rdfsSubClassOf string
	rdfsComment    string
}

func newClassifier(nsmap map[string]string) *classifier {
	expand := func(name string) string {
		expanded, err := curie.ExplicitNamespace(name, nsmap)
		if err != nil {
			// Prefix never declared: the spelling cannot occur in this
			// document, so the matcher simply never fires.
			return ""
		}
		return expanded
	}

	return &classifier{
		nsmap:          nsmap,
		owlClass:       expand(vocabulary.OwlClass),
		owlImports:     expand(vocabulary.OwlImports),
		rdfAbout:       expand(vocabulary.RDFAbout),
		rdfID:          expand(vocabulary.RDFID),
		rdfResource:    expand(vocabulary.RDFResource),
		rdfsLabel:      expand(vocabulary.RDFSLabel),
		rdfsSubClassOf: expand(vocabulary.RDFSSubClassOf),
		rdfsComment:    expand(vocabulary.RDFSComment),
	}
}

func (c *classifier) isClass(name xml.Name) bool {
	return c.owlClass != "" && expandedName(name) == c.owlClass
}

func (c *classifier) isImports(name xml.Name) bool {
	return c.owlImports != "" && expandedName(name) == c.owlImports
}

// classify maps one captured owl:Class subtree to a Record. It is pure:
// no shared mutable state, same input always the same output, so results
// can be merged in any completion order.
func (c *classifier) classify(el *element) (*ingest.Record, error) {
	accession, ok := attrValue(el.attrs, c.rdfAbout)
	if !ok {
		accession, ok = attrValue(el.attrs, c.rdfID)
	}
	if !ok {
		return nil, fmt.Errorf("%w (element %s)", errNoAccession, el.name.Local)
	}
	id := curie.FormatAccession(accession, c.nsmap)

	rules := []rule{
		{match: func(e *element) bool { return expandedName(e.name) == c.rdfsLabel }, kind: actionStore},
		{match: func(e *element) bool {
			if expandedName(e.name) != c.rdfsSubClassOf {
				return false
			}
			_, ok := attrValue(e.attrs, c.rdfResource)
			return ok
		}, kind: actionAppendToList},
		{match: func(e *element) bool { return expandedName(e.name) == c.rdfsComment }, kind: actionMergeMap},
	}

	var (
		name    string
		isA     []string
		comment CommentData
	)

	el.walk(func(child *element) {
		for _, r := range rules {
			if !r.match(child) {
				continue
			}
			switch r.kind {
			case actionStore:
				name = child.text
			case actionAppendToList:
				target, _ := attrValue(child.attrs, c.rdfResource)
				isA = append(isA, curie.FormatAccession(target, c.nsmap))
			case actionMergeMap:
				comment.update(ParseComment(child.text))
			}
			break
		}
	})

	data := ontology.NewEntityData(id)
	data.Name = name
	if comment.Desc != "" {
		data.Definition = &ontology.Definition{Text: comment.Desc}
	}
	for _, key := range sortedKeys(comment.Other) {
		for _, value := range comment.Other[key] {
			data.Annotations = append(data.Annotations, ontology.PropertyValue{Property: key, Value: value})
		}
	}

	rec := &ingest.Record{Data: data}
	if len(isA) > 0 {
		rec.Edges = map[string][]string{vocabulary.IsA: isA}
	}
	return rec, nil
}

// expandedName renders a codec-resolved name in {URI}local form, the same
// spelling ExplicitNamespace produces, so the two compare directly.
func expandedName(name xml.Name) string {
	return "{" + name.Space + "}" + name.Local
}

func attrValue(attrs []xml.Attr, expanded string) (string, bool) {
	if expanded == "" {
		return "", false
	}
	for _, attr := range attrs {
		if expandedName(attr.Name) == expanded {
			return attr.Value, true
		}
	}
	return "", false
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
