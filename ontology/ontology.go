// Package ontology holds the in-memory entity graph: an identifier-addressed
// table of term records, their relationship edges, and the ontology-level
// metadata, together with the merge policy that lets independently parsed
// documents fold into one graph.
package ontology

import (
	"sort"
)

// Ontology is the authoritative container for entity records. It owns every
// EntityData it holds; consumers address records by canonical id and read
// them through Term handles. All mutation must come from a single goroutine
// (the merge loop during ingestion) — the container does no locking itself.
type Ontology struct {
	// Path is the source the graph was loaded from, if any. Used for
	// resolving relative imports and for error reporting.
	Path string

	meta  Metadata
	terms map[string]*EntityData

	// edges maps source id → relationship type → ordered target ids.
	// Duplicates are retained and cycles are permitted; this is storage,
	// not a reasoner.
	edges map[string]map[string][]string

	discarded bool
}

// New creates an empty ontology graph.
func New() *Ontology {
	return &Ontology{
		terms: make(map[string]*EntityData),
		edges: make(map[string]map[string][]string),
	}
}

// Metadata returns the mutable ontology header.
func (o *Ontology) Metadata() *Metadata { return &o.meta }

// Len returns the number of entity records.
func (o *Ontology) Len() int { return len(o.terms) }

// IDs returns all entity ids in sorted order.
func (o *Ontology) IDs() []string {
	ids := make([]string, 0, len(o.terms))
	for id := range o.terms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Term returns a handle for the given id. The bool reports whether a
// record exists; the handle itself stays safe to hold after the record or
// the ontology goes away (access then fails with ErrStaleHandle).
func (o *Ontology) Term(id string) (Term, bool) {
	_, ok := o.terms[id]
	return Term{ontology: o, id: id}, ok
}

// Terms returns handles for every record, sorted by id.
func (o *Ontology) Terms() []Term {
	ids := o.IDs()
	terms := make([]Term, len(ids))
	for i, id := range ids {
		terms[i] = Term{ontology: o, id: id}
	}
	return terms
}

// CreateTerm creates an empty record for id and returns its handle.
// If a record already exists the existing handle is returned; the record
// will accumulate fields through merges as later frames arrive.
func (o *Ontology) CreateTerm(id string) Term {
	if _, ok := o.terms[id]; !ok {
		o.terms[id] = NewEntityData(id)
	}
	return Term{ontology: o, id: id}
}

// AddData inserts a classified record into the graph. When the id is
// already present the incoming record is merged per the merge policy
// (scalars keep the first value, sets union); the record is therefore
// safe to insert in any classification completion order.
func (o *Ontology) AddData(in *EntityData) Term {
	if existing, ok := o.terms[in.id]; ok {
		existing.merge(in)
	} else {
		o.terms[in.id] = in
	}
	return Term{ontology: o, id: in.id}
}

// AddRelationship appends targets to the (source, type) edge list,
// preserving document order and retaining duplicates.
func (o *Ontology) AddRelationship(source, typ string, targets ...string) {
	if len(targets) == 0 {
		return
	}
	byType, ok := o.edges[source]
	if !ok {
		byType = make(map[string][]string)
		o.edges[source] = byType
	}
	byType[typ] = append(byType[typ], targets...)
}

// Relationships returns the ordered target list for (source, type).
func (o *Ontology) Relationships(source, typ string) []string {
	return o.edges[source][typ]
}

// RelationshipTypes returns the relationship types outgoing from source,
// sorted.
func (o *Ontology) RelationshipTypes(source string) []string {
	byType := o.edges[source]
	types := make([]string, 0, len(byType))
	for typ := range byType {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// EdgeCount returns the total number of stored edges.
func (o *Ontology) EdgeCount() int {
	n := 0
	for _, byType := range o.edges {
		for _, targets := range byType {
			n += len(targets)
		}
	}
	return n
}

// Merge folds an incoming graph (typically a resolved import) into this
// one. Records present on both sides merge per the entity policy; edge
// lists union by membership, keeping the order of first appearance.
// Subset validity is deliberately not re-checked here: an imported record
// may carry a subset whose SubsetDef arrives from a not-yet-processed
// import, and re-validating mid-merge would reject legal documents.
func (o *Ontology) Merge(in *Ontology) {
	o.meta.merge(&in.meta)

	for _, id := range in.IDs() {
		o.AddData(in.terms[id].clone())
	}

	for source, byType := range in.edges {
		for typ, targets := range byType {
			existing := o.edges[source][typ]
			seen := make(map[string]struct{}, len(existing))
			for _, t := range existing {
				seen[t] = struct{}{}
			}
			for _, t := range targets {
				if _, ok := seen[t]; !ok {
					seen[t] = struct{}{}
					o.AddRelationship(source, typ, t)
				}
			}
		}
	}
}

// Discard releases the graph. Any Term handle still pointing at it fails
// with ErrStaleHandle afterwards.
func (o *Ontology) Discard() {
	o.terms = nil
	o.edges = nil
	o.discarded = true
}

// clone deep-copies a record so merged graphs never share slices.
func (d *EntityData) clone() *EntityData {
	out := *d
	out.AlternateIDs = append([]string(nil), d.AlternateIDs...)
	out.Subsets = append([]string(nil), d.Subsets...)
	out.Synonyms = append([]Synonym(nil), d.Synonyms...)
	out.Xrefs = append([]Xref(nil), d.Xrefs...)
	out.Annotations = append([]PropertyValue(nil), d.Annotations...)
	if d.Definition != nil {
		def := *d.Definition
		def.Xrefs = append([]Xref(nil), d.Definition.Xrefs...)
		out.Definition = &def
	}
	return &out
}
