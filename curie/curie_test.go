package curie

import (
	"errors"
	"testing"
)

func TestFormatAccession(t *testing.T) {
	obo := map[string]string{"obo": "http://purl.obolibrary.org/obo/"}

	tests := []struct {
		name      string
		accession string
		nsmap     map[string]string
		want      string
	}{
		{"underscore convention", "UO_1000003", nil, "UO:1000003"},
		{"uri stripped", "http://purl.obolibrary.org/obo/IAO_0000601", obo, "IAO:0000601"},
		{"already canonical", "GO:0000001", nil, "GO:0000001"},
		{"blank node untouched", "_:b42", nil, "_:b42"},
		{"leading underscore untouched", "_anonymous", nil, "_anonymous"},
		{"only first underscore replaced", "CHEBI_24431_x", nil, "CHEBI:24431_x"},
		{
			"every bound uri removed",
			"http://example.org/ns#http://purl.obolibrary.org/obo/GO_0000001",
			map[string]string{"obo": "http://purl.obolibrary.org/obo/", "ex": "http://example.org/ns#"},
			"GO:0000001",
		},
		{"empty", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAccession(tt.accession, tt.nsmap)
			if got != tt.want {
				t.Errorf("FormatAccession(%q) = %q, want %q", tt.accession, got, tt.want)
			}
		})
	}
}

func TestFormatAccessionIdempotent(t *testing.T) {
	nsmap := map[string]string{"obo": "http://purl.obolibrary.org/obo/"}
	inputs := []string{
		"GO:0000001",
		"UO_1000003",
		"http://purl.obolibrary.org/obo/IAO_0000601",
		"_:blank",
		"plainid",
	}

	for _, in := range inputs {
		once := FormatAccession(in, nsmap)
		twice := FormatAccession(once, nsmap)
		if once != twice {
			t.Errorf("FormatAccession not idempotent on %q: %q != %q", in, once, twice)
		}
	}
}

func TestExplicitNamespace(t *testing.T) {
	nsmap := map[string]string{"owl": "http://www.w3.org/2002/07/owl#"}

	got, err := ExplicitNamespace("owl:Class", nsmap)
	if err != nil {
		t.Fatalf("ExplicitNamespace failed: %v", err)
	}
	want := "{http://www.w3.org/2002/07/owl#}Class"
	if got != want {
		t.Errorf("ExplicitNamespace = %q, want %q", got, want)
	}
}

func TestExplicitNamespaceUnknownPrefix(t *testing.T) {
	_, err := ExplicitNamespace("rdfs:label", map[string]string{})
	if err == nil {
		t.Fatal("expected error for unbound prefix")
	}

	var unknown *UnknownPrefixError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownPrefixError, got %T", err)
	}
	if unknown.Prefix != "rdfs" {
		t.Errorf("Prefix = %q, want %q", unknown.Prefix, "rdfs")
	}
}

func TestExplicitNamespaceNoColon(t *testing.T) {
	if _, err := ExplicitNamespace("label", map[string]string{"": ""}); err == nil {
		t.Fatal("expected error for name without prefix")
	}
}
