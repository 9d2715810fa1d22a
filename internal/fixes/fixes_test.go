package fixes

import (
	"reflect"
	"testing"

	"github.com/codewithboateng/sentrylint/internal/ir"
)

func mkFix(label string, start, end int, version int) ir.AutoFix {
	return ir.AutoFix{
		Label:           label,
		DocumentVersion: version,
		RuleID:          "R",
		Edit:            ir.TextEdit{Start: start, End: end, Text: "x"},
	}
}

func rng(line, char int) ir.Range {
	return ir.Range{
		Start: ir.Position{Line: line, Character: char},
		End:   ir.Position{Line: line, Character: char + 1},
	}
}

func labels(fs []ir.AutoFix) []string {
	var out []string
	for _, f := range fs {
		out = append(out, f.Label)
	}
	return out
}

func TestKey_Deterministic(t *testing.T) {
	r := ir.Range{Start: ir.Position{Line: 3, Character: 7}, End: ir.Position{Line: 3, Character: 12}}
	if Key(r, "RULE-1") != Key(r, "RULE-1") {
		t.Fatal("key not stable for identical inputs")
	}
	if Key(r, "RULE-1") == Key(r, "RULE-2") {
		t.Fatal("key must include the diagnostic code")
	}
}

func TestAdd_SuffixProbing(t *testing.T) {
	fs := NewFixSet()
	r := rng(1, 0)
	k0 := fs.Add(r, "R", mkFix("first", 0, 5, 1))
	k1 := fs.Add(r, "R", mkFix("second", 0, 5, 1))
	if k0 == k1 {
		t.Fatalf("same location must get distinct suffixed keys, got %q twice", k0)
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
}

func TestSelectForFindings_OrderAndMiss(t *testing.T) {
	fs := NewFixSet()
	f1 := ir.Finding{RuleID: "R", Range: rng(1, 0)}
	f2 := ir.Finding{RuleID: "R", Range: rng(9, 0)}
	fs.Add(f1.Range, "R", mkFix("k0", 0, 1, 1))
	fs.Add(f1.Range, "R", mkFix("k1", 2, 3, 1))

	got := fs.SelectForFindings([]ir.Finding{f1})
	if want := []string{"k0", "k1"}; !reflect.DeepEqual(labels(got), want) {
		t.Fatalf("suffix order wrong: got %v want %v", labels(got), want)
	}

	// a finding with no stored key yields nothing
	if got := fs.SelectForFindings([]ir.Finding{f2}); len(got) != 0 {
		t.Fatalf("miss must return empty, got %v", labels(got))
	}

	// input order is preserved across findings
	fs.Add(f2.Range, "R", mkFix("later", 9, 10, 1))
	got = fs.SelectForFindings([]ir.Finding{f2, f1})
	if want := []string{"later", "k0", "k1"}; !reflect.DeepEqual(labels(got), want) {
		t.Fatalf("findings order not preserved: got %v want %v", labels(got), want)
	}
}

func TestAllSortedByPosition_SentinelZeroEnd(t *testing.T) {
	fs := NewFixSet()
	fs.Add(rng(0, 0), "A", mkFix("replace", 10, 15, 1))
	fs.Add(rng(0, 1), "B", mkFix("insert", 10, 0, 1)) // pure insertion sentinel
	fs.Add(rng(0, 2), "C", mkFix("early", 2, 4, 1))

	got := labels(fs.AllSortedByPosition())
	want := []string{"early", "insert", "replace"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sort order %v, want %v (zero end sorts before non-zero at same start)", got, want)
	}
}

func TestOverlapFree_DisjointPreserved(t *testing.T) {
	fs := NewFixSet()
	fs.Add(rng(0, 0), "A", mkFix("a", 20, 25, 1))
	fs.Add(rng(0, 1), "B", mkFix("b", 0, 5, 1))
	fs.Add(rng(0, 2), "C", mkFix("c", 10, 12, 1))

	got := labels(fs.OverlapFree())
	want := []string{"b", "c", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("disjoint fixes must all survive in start order: got %v want %v", got, want)
	}
}

func TestOverlapFree_ConflictDropsLater(t *testing.T) {
	// A=[0,5) and B=[3,8): A.end(5) > B.start(3), so B goes
	fs := NewFixSet()
	fs.Add(rng(0, 0), "A", mkFix("A", 0, 5, 1))
	fs.Add(rng(0, 1), "B", mkFix("B", 3, 8, 1))

	kept, discarded := fs.Reconcile()
	if !reflect.DeepEqual(labels(kept), []string{"A"}) {
		t.Fatalf("kept %v, want [A]", labels(kept))
	}
	if !reflect.DeepEqual(labels(discarded), []string{"B"}) {
		t.Fatalf("discarded %v, want [B]", labels(discarded))
	}
}

func TestOverlapFree_ComparesAgainstLastKept(t *testing.T) {
	// B conflicts with A and is dropped; C starts after A ends and must be
	// kept even though it would also have conflicted with B.
	fs := NewFixSet()
	fs.Add(rng(0, 0), "A", mkFix("A", 0, 5, 1))
	fs.Add(rng(0, 1), "B", mkFix("B", 3, 9, 1))
	fs.Add(rng(0, 2), "C", mkFix("C", 6, 8, 1))

	got := labels(fs.OverlapFree())
	if !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Fatalf("greedy scan must compare against last kept, not last visited: got %v", got)
	}
}

func TestDocumentVersion_GuardedByIsEmpty(t *testing.T) {
	fs := NewFixSet()
	if !fs.IsEmpty() {
		t.Fatal("new set must be empty")
	}
	// the documented calling pattern: check IsEmpty first
	if !fs.IsEmpty() {
		_ = fs.DocumentVersion()
	}

	fs.Add(rng(0, 0), "A", mkFix("A", 0, 5, 7))
	if fs.IsEmpty() {
		t.Fatal("set with one fix is not empty")
	}
	if got := fs.DocumentVersion(); got != 7 {
		t.Fatalf("DocumentVersion = %d, want 7", got)
	}
}

func TestApply_BackToFront(t *testing.T) {
	doc := "use md5 and http now"
	a := ir.AutoFix{Edit: ir.TextEdit{Start: 4, End: 7, Text: "sha256"}}
	b := ir.AutoFix{Edit: ir.TextEdit{Start: 12, End: 16, Text: "https"}}
	got := Apply(doc, []ir.AutoFix{a, b})
	if want := "use sha256 and https now"; got != want {
		t.Fatalf("Apply = %q, want %q", got, want)
	}
}

func TestApply_InsertionSentinel(t *testing.T) {
	doc := "abcdef"
	ins := ir.AutoFix{Edit: ir.TextEdit{Start: 3, End: 0, Text: "XY"}}
	if got := Apply(doc, []ir.AutoFix{ins}); got != "abcXYdef" {
		t.Fatalf("insertion = %q, want abcXYdef", got)
	}
}
