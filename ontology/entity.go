package ontology

// EntityData is the owned record for one term. The Ontology is its sole
// owner; everything else sees it through a Term handle. The id is fixed at
// creation and never reassigned.
type EntityData struct {
	id string

	Name       string
	Namespace  string
	Definition *Definition
	Comment    string

	AlternateIDs []string
	Subsets      []string
	Synonyms     []Synonym
	Xrefs        []Xref
	Annotations  []PropertyValue

	Anonymous bool
	Builtin   bool
	Obsolete  bool
}

// NewEntityData creates a record for the given canonical id.
func NewEntityData(id string) *EntityData {
	return &EntityData{id: id}
}

// ID returns the immutable identifier of the record.
func (d *EntityData) ID() string { return d.id }

// merge folds an incoming record for the same id into this one following
// the merge policy: scalar fields keep the value already set on the target,
// set-valued fields are unioned. Field-by-field the operation is
// commutative and associative, so classification completion order and
// import arrival order cannot change the final state.
func (d *EntityData) merge(in *EntityData) {
	if d.Name == "" {
		d.Name = in.Name
	}
	if d.Namespace == "" {
		d.Namespace = in.Namespace
	}
	if d.Definition == nil {
		d.Definition = in.Definition
	}
	if d.Comment == "" {
		d.Comment = in.Comment
	}

	d.AlternateIDs = unionStrings(d.AlternateIDs, in.AlternateIDs)
	d.Subsets = unionStrings(d.Subsets, in.Subsets)
	d.Synonyms = unionSynonyms(d.Synonyms, in.Synonyms)
	d.Xrefs = unionXrefs(d.Xrefs, in.Xrefs)
	d.Annotations = unionPropertyValues(d.Annotations, in.Annotations)

	d.Anonymous = d.Anonymous || in.Anonymous
	d.Builtin = d.Builtin || in.Builtin
	d.Obsolete = d.Obsolete || in.Obsolete
}

func unionStrings(dst, in []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, s := range dst {
		seen[s] = struct{}{}
	}
	for _, s := range in {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			dst = append(dst, s)
		}
	}
	return dst
}

func unionSynonyms(dst, in []Synonym) []Synonym {
	seen := make(map[string]struct{}, len(dst))
	for _, s := range dst {
		seen[s.key()] = struct{}{}
	}
	for _, s := range in {
		if _, ok := seen[s.key()]; !ok {
			seen[s.key()] = struct{}{}
			dst = append(dst, s)
		}
	}
	return dst
}

func unionXrefs(dst, in []Xref) []Xref {
	seen := make(map[string]struct{}, len(dst))
	for _, x := range dst {
		seen[x.key()] = struct{}{}
	}
	for _, x := range in {
		if _, ok := seen[x.key()]; !ok {
			seen[x.key()] = struct{}{}
			dst = append(dst, x)
		}
	}
	return dst
}

func unionPropertyValues(dst, in []PropertyValue) []PropertyValue {
	seen := make(map[string]struct{}, len(dst))
	for _, p := range dst {
		seen[p.key()] = struct{}{}
	}
	for _, p := range in {
		if _, ok := seen[p.key()]; !ok {
			seen[p.key()] = struct{}{}
			dst = append(dst, p)
		}
	}
	return dst
}
