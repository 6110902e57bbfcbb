package ontology

// Term is a non-owning view over an entity record. It holds only the
// ontology pointer and the id, never the record itself, so handles can be
// passed around freely: once the ontology is discarded or the record is
// gone, every access fails with ErrStaleHandle instead of touching dead
// state.
type Term struct {
	ontology *Ontology
	id       string
}

// ID returns the identifier the handle was created for. It is valid even
// when the handle is stale.
func (t Term) ID() string { return t.id }

// SetID always fails: entity ids are fixed at creation.
func (t Term) SetID(string) error { return ErrIDImmutable }

// data resolves the handle to its owned record.
func (t Term) data() (*EntityData, error) {
	if t.ontology == nil || t.ontology.discarded {
		return nil, ErrStaleHandle
	}
	d, ok := t.ontology.terms[t.id]
	if !ok {
		return nil, ErrStaleHandle
	}
	return d, nil
}

// Name returns the entity name, empty if unset.
func (t Term) Name() (string, error) {
	d, err := t.data()
	if err != nil {
		return "", err
	}
	return d.Name, nil
}

// SetName assigns the entity name.
func (t Term) SetName(name string) error {
	d, err := t.data()
	if err != nil {
		return err
	}
	d.Name = name
	return nil
}

// Namespace returns the entity namespace, empty if unset.
func (t Term) Namespace() (string, error) {
	d, err := t.data()
	if err != nil {
		return "", err
	}
	return d.Namespace, nil
}

// SetNamespace assigns the entity namespace.
func (t Term) SetNamespace(ns string) error {
	d, err := t.data()
	if err != nil {
		return err
	}
	d.Namespace = ns
	return nil
}

// Definition returns the entity definition, nil if unset.
func (t Term) Definition() (*Definition, error) {
	d, err := t.data()
	if err != nil {
		return nil, err
	}
	return d.Definition, nil
}

// SetDefinition assigns the entity definition.
func (t Term) SetDefinition(def *Definition) error {
	d, err := t.data()
	if err != nil {
		return err
	}
	d.Definition = def
	return nil
}

// Comment returns the free-text comment, empty if unset.
func (t Term) Comment() (string, error) {
	d, err := t.data()
	if err != nil {
		return "", err
	}
	return d.Comment, nil
}

// SetComment assigns the free-text comment.
func (t Term) SetComment(comment string) error {
	d, err := t.data()
	if err != nil {
		return err
	}
	d.Comment = comment
	return nil
}

// AlternateIDs returns the alternate identifier set.
func (t Term) AlternateIDs() ([]string, error) {
	d, err := t.data()
	if err != nil {
		return nil, err
	}
	return append([]string(nil), d.AlternateIDs...), nil
}

// AddAlternateID adds an alternate identifier, keeping the set unique.
func (t Term) AddAlternateID(id string) error {
	d, err := t.data()
	if err != nil {
		return err
	}
	d.AlternateIDs = unionStrings(d.AlternateIDs, []string{id})
	return nil
}

// Subsets returns the subset ids the entity belongs to.
func (t Term) Subsets() ([]string, error) {
	d, err := t.data()
	if err != nil {
		return nil, err
	}
	return append([]string(nil), d.Subsets...), nil
}

// SetSubsets assigns subset membership. Every subset id must reference a
// SubsetDef declared in the ontology metadata at the time of assignment;
// membership is not re-validated afterwards.
func (t Term) SetSubsets(subsets []string) error {
	d, err := t.data()
	if err != nil {
		return err
	}
	for _, subset := range subsets {
		if !t.ontology.meta.HasSubsetDef(subset) {
			return &ValidationError{Field: "subset", Value: subset, Reason: "undeclared subset"}
		}
	}
	d.Subsets = append([]string(nil), subsets...)
	return nil
}

// Synonyms returns the synonym set.
func (t Term) Synonyms() ([]Synonym, error) {
	d, err := t.data()
	if err != nil {
		return nil, err
	}
	return append([]Synonym(nil), d.Synonyms...), nil
}

// AddSynonym adds a synonym, keeping the set unique by text and scope.
func (t Term) AddSynonym(s Synonym) error {
	d, err := t.data()
	if err != nil {
		return err
	}
	d.Synonyms = unionSynonyms(d.Synonyms, []Synonym{s})
	return nil
}

// Xrefs returns the cross-reference set.
func (t Term) Xrefs() ([]Xref, error) {
	d, err := t.data()
	if err != nil {
		return nil, err
	}
	return append([]Xref(nil), d.Xrefs...), nil
}

// AddXref adds a cross-reference, keeping the set unique by id.
func (t Term) AddXref(x Xref) error {
	d, err := t.data()
	if err != nil {
		return err
	}
	if x.ID == "" {
		return &ValidationError{Field: "xref", Reason: "empty xref id"}
	}
	d.Xrefs = unionXrefs(d.Xrefs, []Xref{x})
	return nil
}

// Annotations returns the property-value annotation set.
func (t Term) Annotations() ([]PropertyValue, error) {
	d, err := t.data()
	if err != nil {
		return nil, err
	}
	return append([]PropertyValue(nil), d.Annotations...), nil
}

// AddAnnotation adds a property-value annotation.
func (t Term) AddAnnotation(pv PropertyValue) error {
	d, err := t.data()
	if err != nil {
		return err
	}
	if pv.Property == "" {
		return &ValidationError{Field: "annotation", Reason: "empty property"}
	}
	d.Annotations = unionPropertyValues(d.Annotations, []PropertyValue{pv})
	return nil
}

// Obsolete reports whether the entity is flagged obsolete.
func (t Term) Obsolete() (bool, error) {
	d, err := t.data()
	if err != nil {
		return false, err
	}
	return d.Obsolete, nil
}

// SetObsolete flags the entity as obsolete.
func (t Term) SetObsolete(obsolete bool) error {
	d, err := t.data()
	if err != nil {
		return err
	}
	d.Obsolete = obsolete
	return nil
}

// Anonymous reports whether the entity is anonymous (blank node).
func (t Term) Anonymous() (bool, error) {
	d, err := t.data()
	if err != nil {
		return false, err
	}
	return d.Anonymous, nil
}

// Builtin reports whether the entity is a builtin.
func (t Term) Builtin() (bool, error) {
	d, err := t.data()
	if err != nil {
		return false, err
	}
	return d.Builtin, nil
}

// Relationships returns the ordered targets of the given relationship
// type outgoing from this entity.
func (t Term) Relationships(typ string) ([]string, error) {
	if _, err := t.data(); err != nil {
		return nil, err
	}
	return append([]string(nil), t.ontology.Relationships(t.id, typ)...), nil
}
