package ontology

import (
	"errors"
	"reflect"
	"testing"
)

func TestTermStaleAfterDiscard(t *testing.T) {
	o := New()
	term := o.CreateTerm("GO:0000001")
	o.Discard()

	if _, err := term.Name(); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Name after Discard = %v, want ErrStaleHandle", err)
	}
	if err := term.SetName("x"); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("SetName after Discard = %v, want ErrStaleHandle", err)
	}
}

func TestTermStaleForMissingRecord(t *testing.T) {
	o := New()
	term, ok := o.Term("GO:0000404")
	if ok {
		t.Fatal("Term reported existence for missing id")
	}
	if _, err := term.Name(); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Name on missing record = %v, want ErrStaleHandle", err)
	}
}

func TestTermIDImmutable(t *testing.T) {
	o := New()
	term := o.CreateTerm("GO:0000001")
	if err := term.SetID("GO:0000002"); !errors.Is(err, ErrIDImmutable) {
		t.Errorf("SetID = %v, want ErrIDImmutable", err)
	}
	if term.ID() != "GO:0000001" {
		t.Errorf("ID = %q after rejected reassignment", term.ID())
	}
}

func TestSetSubsetsValidatesAgainstSubsetdefs(t *testing.T) {
	o := New()
	o.Metadata().AddSubsetDef(SubsetDef{ID: "goslim_generic", Description: "Generic GO slim"})
	term := o.CreateTerm("GO:0000001")

	if err := term.SetSubsets([]string{"goslim_generic"}); err != nil {
		t.Fatalf("SetSubsets with declared subset failed: %v", err)
	}
	got, _ := term.Subsets()
	if !reflect.DeepEqual(got, []string{"goslim_generic"}) {
		t.Errorf("Subsets = %v after valid assignment", got)
	}

	err := term.SetSubsets([]string{"undeclared_slim"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("SetSubsets with undeclared subset = %v, want ValidationError", err)
	}
	if verr.Value != "undeclared_slim" {
		t.Errorf("ValidationError.Value = %q", verr.Value)
	}

	// Failed assignment must not clobber the previous membership.
	got, _ = term.Subsets()
	if !reflect.DeepEqual(got, []string{"goslim_generic"}) {
		t.Errorf("Subsets = %v after rejected assignment, want unchanged", got)
	}
}

func TestAddSynonymDeduplicates(t *testing.T) {
	o := New()
	term := o.CreateTerm("GO:0000001")

	syn := Synonym{Text: "mitochondrial inheritance", Scope: "EXACT"}
	if err := term.AddSynonym(syn); err != nil {
		t.Fatalf("AddSynonym failed: %v", err)
	}
	if err := term.AddSynonym(syn); err != nil {
		t.Fatalf("AddSynonym failed: %v", err)
	}
	if err := term.AddSynonym(Synonym{Text: "mitochondrial inheritance", Scope: "BROAD"}); err != nil {
		t.Fatalf("AddSynonym failed: %v", err)
	}

	got, _ := term.Synonyms()
	if len(got) != 2 {
		t.Errorf("Synonyms = %v, want exact duplicate collapsed, different scope kept", got)
	}
}

func TestAddXrefRejectsEmptyID(t *testing.T) {
	o := New()
	term := o.CreateTerm("GO:0000001")

	var verr *ValidationError
	if err := term.AddXref(Xref{}); !errors.As(err, &verr) {
		t.Errorf("AddXref with empty id = %v, want ValidationError", err)
	}
}
