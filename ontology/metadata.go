package ontology

import "time"

// SubsetDef is an ontology-level declaration naming a valid subset id.
// Entity subset membership is validated against these declarations.
type SubsetDef struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
}

// Metadata holds the ontology-level header: versions, declared subsets,
// imports, namespace bindings and the ingestion bounds that import
// resolution reads back out.
type Metadata struct {
	FormatVersion    string
	DataVersion      string
	DefaultNamespace string

	Subsetdefs []SubsetDef
	Remarks    []string

	// Imports lists the import target URIs declared by this document.
	Imports []string

	// Namespaces maps prefix to URI as discovered during the header scan.
	Namespaces map[string]string

	// ImportDepth bounds recursive import resolution. Zero disables
	// fetching entirely.
	ImportDepth int

	// Timeout bounds each individual import fetch.
	Timeout time.Duration

	Annotations []PropertyValue
}

// HasSubsetDef reports whether a subset id is declared.
func (m *Metadata) HasSubsetDef(id string) bool {
	for _, def := range m.Subsetdefs {
		if def.ID == id {
			return true
		}
	}
	return false
}

// AddSubsetDef declares a subset id, keeping declarations unique by id.
func (m *Metadata) AddSubsetDef(def SubsetDef) {
	if !m.HasSubsetDef(def.ID) {
		m.Subsetdefs = append(m.Subsetdefs, def)
	}
}

// merge folds an incoming header into this one: scalars keep the target
// value when already set, set-valued declarations are unioned.
func (m *Metadata) merge(in *Metadata) {
	if m.FormatVersion == "" {
		m.FormatVersion = in.FormatVersion
	}
	if m.DataVersion == "" {
		m.DataVersion = in.DataVersion
	}
	if m.DefaultNamespace == "" {
		m.DefaultNamespace = in.DefaultNamespace
	}
	for _, def := range in.Subsetdefs {
		m.AddSubsetDef(def)
	}
	m.Remarks = unionStrings(m.Remarks, in.Remarks)
	m.Imports = unionStrings(m.Imports, in.Imports)
	if m.Namespaces == nil {
		m.Namespaces = make(map[string]string, len(in.Namespaces))
	}
	for prefix, uri := range in.Namespaces {
		if _, ok := m.Namespaces[prefix]; !ok {
			m.Namespaces[prefix] = uri
		}
	}
	m.Annotations = unionPropertyValues(m.Annotations, in.Annotations)
}
