// Package vocabulary defines the RDF, RDFS, OWL and OBO namespace IRIs and
// qualified names used across the ingestion pipeline. Keeping them in one
// place means ingestors and exporters dispatch against the same spellings.
package vocabulary

// Core namespace IRIs.
const (
	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"
	OWL  = "http://www.w3.org/2002/07/owl#"
	XSD  = "http://www.w3.org/2001/XMLSchema#"

	// OBO is the OBO Foundry PURL namespace. Accessions under it collapse
	// to PREFIX:LOCAL short form during normalization.
	OBO = "http://purl.obolibrary.org/obo/"

	// OboInOwl carries the OBO-format annotation properties that survive
	// OBO to OWL conversion (synonyms, subsets, xrefs).
	OboInOwl = "http://www.geneontology.org/formats/oboInOwl#"

	DC   = "http://purl.org/dc/terms/"
	SKOS = "http://www.w3.org/2004/02/skos/core#"
)

// Prefixed names recognized by the OWL-XML ingestor, in prefix:local form.
// They are expanded against the document's own namespace bindings before
// dispatch; these spellings are only the canonical lookup keys.
const (
	OwlClass    = "owl:Class"
	OwlImports  = "owl:imports"
	OwlOntology = "owl:Ontology"

	RDFAbout    = "rdf:about"
	RDFID       = "rdf:ID"
	RDFResource = "rdf:resource"

	RDFSLabel      = "rdfs:label"
	RDFSSubClassOf = "rdfs:subClassOf"
	RDFSComment    = "rdfs:comment"
)

// IsA is the relationship type produced by rdfs:subClassOf and by OBO
// is_a clauses. It is the only relationship with a reserved spelling;
// every other type is carried through as declared by the document.
const IsA = "is_a"

// DefaultPrefixes returns the prefix table seeded into every export and
// into the OWL-XML pre-scan. Document-declared bindings override these.
func DefaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":      RDF,
		"rdfs":     RDFS,
		"owl":      OWL,
		"xsd":      XSD,
		"obo":      OBO,
		"oboInOwl": OboInOwl,
		"dc":       DC,
		"skos":     SKOS,
	}
}
