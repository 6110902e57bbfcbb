package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/ontograph/vocabulary"
)

func buildGraph(t *testing.T) *ontology.Ontology {
	t.Helper()
	onto := ontology.New()
	onto.Metadata().AddSubsetDef(ontology.SubsetDef{ID: "goslim_generic"})

	term := onto.CreateTerm("GO:0000001")
	if err := term.SetName("mitochondrion inheritance"); err != nil {
		t.Fatalf("SetName failed: %v", err)
	}
	if err := term.SetDefinition(&ontology.Definition{Text: "The distribution of mitochondria."}); err != nil {
		t.Fatalf("SetDefinition failed: %v", err)
	}
	if err := term.SetSubsets([]string{"goslim_generic"}); err != nil {
		t.Fatalf("SetSubsets failed: %v", err)
	}
	if err := term.AddSynonym(ontology.Synonym{Text: "mitochondrial inheritance", Scope: "EXACT"}); err != nil {
		t.Fatalf("AddSynonym failed: %v", err)
	}
	onto.AddRelationship("GO:0000001", vocabulary.IsA, "GO:0000002")

	parent := onto.CreateTerm("GO:0000002")
	if err := parent.SetObsolete(true); err != nil {
		t.Fatalf("SetObsolete failed: %v", err)
	}

	return onto
}

func TestExportTurtle(t *testing.T) {
	exporter := NewRDFExporter(buildGraph(t))
	out, err := exporter.Export(FormatTurtle)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	for _, want := range []string{
		"@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .",
		"<http://purl.obolibrary.org/obo/GO_0000001>",
		`"mitochondrion inheritance"`,
		"<http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://purl.obolibrary.org/obo/GO_0000002>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("turtle output missing %q", want)
		}
	}
}

func TestExportNTriples(t *testing.T) {
	exporter := NewRDFExporter(buildGraph(t))
	out, err := exporter.Export(FormatNTriples)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	for _, line := range lines {
		if !strings.HasSuffix(line, " .") {
			t.Errorf("line not terminated: %q", line)
		}
	}

	want := `<http://purl.obolibrary.org/obo/GO_0000002> <http://www.w3.org/2002/07/owl#deprecated> "true" .`
	if !strings.Contains(out, want) {
		t.Errorf("ntriples output missing %q", want)
	}
}

func TestExportJSONLD(t *testing.T) {
	exporter := NewRDFExporter(buildGraph(t))
	out, err := exporter.Export(FormatJSONLD)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var doc struct {
		Context map[string]string `json:"@context"`
		Graph   []map[string]any  `json:"@graph"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.Context["obo"] != vocabulary.OBO {
		t.Errorf("@context[obo] = %q", doc.Context["obo"])
	}
	if len(doc.Graph) != 2 {
		t.Fatalf("len(@graph) = %d, want 2", len(doc.Graph))
	}
	if got := doc.Graph[0]["@id"]; got != "http://purl.obolibrary.org/obo/GO_0000001" {
		t.Errorf("@id = %v", got)
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	exporter := NewRDFExporter(buildGraph(t))
	if _, err := exporter.Export(Format("n3")); err == nil {
		t.Error("Export(n3) = nil, want error")
	}
}

func TestExportDocumentPrefixesOverrideDefaults(t *testing.T) {
	onto := ontology.New()
	onto.Metadata().Namespaces = map[string]string{"obo": "http://example.org/obo/"}

	exporter := NewRDFExporter(onto)
	if got := exporter.prefixes["obo"]; got != "http://example.org/obo/" {
		t.Errorf("prefixes[obo] = %q, want document binding", got)
	}
	if got := exporter.prefixes["rdf"]; got != vocabulary.RDF {
		t.Errorf("prefixes[rdf] = %q, want default retained", got)
	}
}

func TestFormatRegistry(t *testing.T) {
	for format, info := range FormatRegistry {
		if info.Name != format {
			t.Errorf("registry key %q maps to %q", format, info.Name)
		}
		if info.MIMEType == "" || info.Extension == "" {
			t.Errorf("%q: incomplete metadata %+v", format, info)
		}
	}
}
