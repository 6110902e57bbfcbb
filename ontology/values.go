package ontology

// Xref is a cross-reference to an entity in another resource.
type Xref struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
}

// Definition is the textual definition of an entity together with the
// cross-references supporting it.
type Definition struct {
	Text  string `json:"text"`
	Xrefs []Xref `json:"xrefs,omitempty"`
}

// Synonym is an alternative name for an entity with its scope.
// Scope is one of EXACT, BROAD, NARROW, RELATED.
type Synonym struct {
	Text  string `json:"text"`
	Scope string `json:"scope,omitempty"`
	Type  string `json:"type,omitempty"`
	Xrefs []Xref `json:"xrefs,omitempty"`
}

// PropertyValue is an arbitrary annotation attached to an entity or to the
// ontology header.
type PropertyValue struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// key functions give each value object a stable identity for set union.

func (x Xref) key() string          { return x.ID }
func (s Synonym) key() string       { return s.Scope + "\x00" + s.Type + "\x00" + s.Text }
func (p PropertyValue) key() string { return p.Property + "\x00" + p.Value }
