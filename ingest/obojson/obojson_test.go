package obojson

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/c360studio/ontograph/ingest"
	"github.com/c360studio/ontograph/ontology"
)

const sampleDoc = `{
  "graphs": [
    {
      "id": "http://purl.obolibrary.org/obo/go.json",
      "meta": {
        "version": "2024-01-01",
        "subsets": ["http://purl.obolibrary.org/obo/go#goslim_generic"]
      },
      "nodes": [
        {
          "id": "http://purl.obolibrary.org/obo/GO_0000001",
          "lbl": "mitochondrion inheritance",
          "type": "CLASS",
          "meta": {
            "definition": {
              "val": "The distribution of mitochondria.",
              "xrefs": ["GOC:mcc"]
            },
            "subsets": ["http://purl.obolibrary.org/obo/go#goslim_generic"],
            "synonyms": [
              {"pred": "hasExactSynonym", "val": "mitochondrial inheritance"}
            ],
            "deprecated": false
          }
        },
        {
          "id": "http://purl.obolibrary.org/obo/GO_0000002",
          "lbl": "mitochondrial genome maintenance",
          "type": "CLASS"
        }
      ],
      "edges": [
        {
          "sub": "http://purl.obolibrary.org/obo/GO_0000001",
          "pred": "is_a",
          "obj": "http://purl.obolibrary.org/obo/GO_0000002"
        }
      ]
    }
  ]
}`

func parseDoc(t *testing.T, data string, workers int) *ontology.Ontology {
	t.Helper()
	ing := &Ingestor{}
	onto, err := ing.Parse(context.Background(), &ingest.Document{
		Path: "go.json",
		Data: []byte(data),
	}, ingest.Options{Workers: workers, MaxDepth: 0})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return onto
}

func TestParseDocument(t *testing.T) {
	onto := parseDoc(t, sampleDoc, 1)

	if got, want := onto.IDs(), []string{"GO:0000001", "GO:0000002"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("IDs = %v, want %v", got, want)
	}

	term, _ := onto.Term("GO:0000001")
	name, _ := term.Name()
	if name != "mitochondrion inheritance" {
		t.Errorf("Name = %q", name)
	}

	def, _ := term.Definition()
	if def == nil || def.Text != "The distribution of mitochondria." {
		t.Fatalf("Definition = %+v", def)
	}
	if !reflect.DeepEqual(def.Xrefs, []ontology.Xref{{ID: "GOC:mcc"}}) {
		t.Errorf("Definition.Xrefs = %v", def.Xrefs)
	}

	subsets, _ := term.Subsets()
	if !reflect.DeepEqual(subsets, []string{"goslim_generic"}) {
		t.Errorf("Subsets = %v", subsets)
	}

	synonyms, _ := term.Synonyms()
	want := []ontology.Synonym{{Text: "mitochondrial inheritance", Scope: "EXACT"}}
	if !reflect.DeepEqual(synonyms, want) {
		t.Errorf("Synonyms = %v, want %v", synonyms, want)
	}

	edges, _ := term.Relationships("is_a")
	if !reflect.DeepEqual(edges, []string{"GO:0000002"}) {
		t.Errorf("is_a = %v", edges)
	}

	if onto.Metadata().DataVersion != "2024-01-01" {
		t.Errorf("DataVersion = %q", onto.Metadata().DataVersion)
	}
}

func TestParseUndeclaredSubsetFailsDocument(t *testing.T) {
	doc := `{
  "graphs": [
    {
      "nodes": [
        {
          "id": "http://purl.obolibrary.org/obo/GO_0000001",
          "meta": {"subsets": ["http://purl.obolibrary.org/obo/go#undeclared_slim"]}
        }
      ]
    }
  ]
}`
	ing := &Ingestor{}
	_, err := ing.Parse(context.Background(), &ingest.Document{
		Path: "go.json",
		Data: []byte(doc),
	}, ingest.Options{Workers: 1, MaxDepth: 0})

	var verr *ontology.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Parse = %v, want ValidationError", err)
	}
}

func TestParseMalformedJSON(t *testing.T) {
	doc := "{\n  \"graphs\": [\n    {\"nodes\": [}\n  ]\n}"

	ing := &Ingestor{}
	_, err := ing.Parse(context.Background(), &ingest.Document{
		Path: "broken.json",
		Data: []byte(doc),
	}, ingest.Options{Workers: 1, MaxDepth: 0})

	var perr *ingest.StructuralParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse = %v, want StructuralParseError", err)
	}
	if perr.Line != 3 {
		t.Errorf("Line = %d, want 3", perr.Line)
	}
	if perr.Text == "" {
		t.Error("offending text not captured")
	}
}

func TestParseWorkerCountIndependence(t *testing.T) {
	serial := parseDoc(t, sampleDoc, 1)
	parallel := parseDoc(t, sampleDoc, 8)

	if !reflect.DeepEqual(serial.IDs(), parallel.IDs()) {
		t.Fatalf("entity sets differ between worker counts")
	}
}
