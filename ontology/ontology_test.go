package ontology

import (
	"reflect"
	"sort"
	"testing"
)

func TestAddDataMergesScalars(t *testing.T) {
	o := New()

	first := NewEntityData("GO:0000001")
	first.Name = "mitochondrion inheritance"
	o.AddData(first)

	second := NewEntityData("GO:0000001")
	second.Name = "should not overwrite"
	second.Namespace = "biological_process"
	o.AddData(second)

	term, ok := o.Term("GO:0000001")
	if !ok {
		t.Fatal("term not found after AddData")
	}
	name, err := term.Name()
	if err != nil {
		t.Fatalf("Name failed: %v", err)
	}
	if name != "mitochondrion inheritance" {
		t.Errorf("Name = %q, want first value kept", name)
	}
	ns, _ := term.Namespace()
	if ns != "biological_process" {
		t.Errorf("Namespace = %q, want incoming value taken for unset scalar", ns)
	}
}

func TestAddRelationshipRetainsDuplicatesAndOrder(t *testing.T) {
	o := New()
	o.CreateTerm("GO:0000001")
	o.AddRelationship("GO:0000001", "is_a", "GO:0000002")
	o.AddRelationship("GO:0000001", "is_a", "GO:0000003", "GO:0000002")

	got := o.Relationships("GO:0000001", "is_a")
	want := []string{"GO:0000002", "GO:0000003", "GO:0000002"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Relationships = %v, want %v", got, want)
	}
}

func buildGraph(id string, subsets []SubsetDef, altIDs []string, edges map[string][]string) *Ontology {
	o := New()
	for _, def := range subsets {
		o.Metadata().AddSubsetDef(def)
	}
	d := NewEntityData(id)
	d.AlternateIDs = altIDs
	o.AddData(d)
	for typ, targets := range edges {
		o.AddRelationship(id, typ, targets...)
	}
	return o
}

func TestMergeCommutativeForSetFields(t *testing.T) {
	makeA := func() *Ontology {
		return buildGraph("GO:0000001",
			[]SubsetDef{{ID: "goslim_generic"}},
			[]string{"GO:0000101", "GO:0000102"},
			map[string][]string{"is_a": {"GO:0000002"}})
	}
	makeB := func() *Ontology {
		return buildGraph("GO:0000001",
			[]SubsetDef{{ID: "goslim_plant"}},
			[]string{"GO:0000102", "GO:0000103"},
			map[string][]string{"is_a": {"GO:0000003"}})
	}

	ab := makeA()
	ab.Merge(makeB())
	ba := makeB()
	ba.Merge(makeA())

	asSet := func(ss []string) []string {
		out := append([]string(nil), ss...)
		sort.Strings(out)
		return out
	}

	abTerm, _ := ab.Term("GO:0000001")
	baTerm, _ := ba.Term("GO:0000001")

	abAlt, _ := abTerm.AlternateIDs()
	baAlt, _ := baTerm.AlternateIDs()
	if !reflect.DeepEqual(asSet(abAlt), asSet(baAlt)) {
		t.Errorf("alternate ids differ: %v vs %v", abAlt, baAlt)
	}

	abEdges, _ := abTerm.Relationships("is_a")
	baEdges, _ := baTerm.Relationships("is_a")
	if !reflect.DeepEqual(asSet(abEdges), asSet(baEdges)) {
		t.Errorf("is_a edges differ: %v vs %v", abEdges, baEdges)
	}

	if got, want := len(ab.Metadata().Subsetdefs), 2; got != want {
		t.Errorf("subsetdefs = %d, want %d", got, want)
	}
}

func TestMergeDoesNotRevalidateSubsets(t *testing.T) {
	// An imported record may carry a subset whose SubsetDef arrives from
	// a later import; merge accepts it as-is.
	in := New()
	d := NewEntityData("GO:0000001")
	d.Subsets = []string{"not_yet_declared"}
	in.AddData(d)

	target := New()
	target.Merge(in)

	term, _ := target.Term("GO:0000001")
	subsets, err := term.Subsets()
	if err != nil {
		t.Fatalf("Subsets failed: %v", err)
	}
	if !reflect.DeepEqual(subsets, []string{"not_yet_declared"}) {
		t.Errorf("Subsets = %v, want undeclared subset carried through merge", subsets)
	}
}

func TestMergeDeepCopies(t *testing.T) {
	in := New()
	d := NewEntityData("GO:0000001")
	d.AlternateIDs = []string{"GO:0000101"}
	in.AddData(d)

	target := New()
	target.Merge(in)

	// Mutating the source afterwards must not leak into the target.
	d.AlternateIDs[0] = "GO:9999999"

	term, _ := target.Term("GO:0000001")
	alt, _ := term.AlternateIDs()
	if alt[0] != "GO:0000101" {
		t.Errorf("merged record shares memory with source: %v", alt)
	}
}
