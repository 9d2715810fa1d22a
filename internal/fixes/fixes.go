// Package fixes correlates proposed automatic edits with findings and
// selects an overlap-free subset that is safe to apply to one document
// revision.
package fixes

import (
	"fmt"
	"sort"

	"github.com/codewithboateng/sentrylint/internal/ir"
)

// Key derives the correlation key binding a finding's location and
// diagnostic code to its fixes. Stable for a given (range, code) within one
// document version; not unique across versions.
func Key(r ir.Range, code string) string {
	return fmt.Sprintf("%d|%d|%d|%d|%s",
		r.Start.Line, r.Start.Character, r.End.Line, r.End.Character, code)
}

func suffixed(key string, n int) string {
	return fmt.Sprintf("%s|%d", key, n)
}

// FixSet holds the fixes proposed for a single document revision, keyed by
// correlation key. The caller must not mix document versions in one set;
// that precondition is not cross-checked here.
type FixSet struct {
	byKey map[string]ir.AutoFix
	keys  []string
}

func NewFixSet() *FixSet {
	return &FixSet{byKey: map[string]ir.AutoFix{}}
}

// Add stores a fix under the first free suffix for its finding's key prefix.
func (fs *FixSet) Add(r ir.Range, code string, fix ir.AutoFix) string {
	base := Key(r, code)
	for n := 0; ; n++ {
		k := suffixed(base, n)
		if _, ok := fs.byKey[k]; !ok {
			fs.byKey[k] = fix
			fs.keys = append(fs.keys, k)
			return k
		}
	}
}

func (fs *FixSet) Len() int      { return len(fs.byKey) }
func (fs *FixSet) IsEmpty() bool { return len(fs.byKey) == 0 }

// DocumentVersion reports the revision the set's fixes were computed
// against, read off an arbitrary member. Callers must guard with IsEmpty.
func (fs *FixSet) DocumentVersion() int {
	for _, f := range fs.byKey {
		return f.DocumentVersion
	}
	return 0
}

// SelectForFindings collects the fixes correlated to each finding, probing
// suffixes 0, 1, 2, ... until the first miss. Input order is preserved;
// within one finding, ascending suffix order.
func (fs *FixSet) SelectForFindings(findings []ir.Finding) []ir.AutoFix {
	var out []ir.AutoFix
	for _, f := range findings {
		base := Key(f.Range, f.RuleID)
		for n := 0; ; n++ {
			fix, ok := fs.byKey[suffixed(base, n)]
			if !ok {
				break
			}
			out = append(out, fix)
		}
	}
	return out
}

// AllSortedByPosition returns every fix ordered by edit start offset, ties
// broken by end offset. An end offset of zero is the pure-insertion sentinel
// and sorts before any non-zero end at the same start.
func (fs *FixSet) AllSortedByPosition() []ir.AutoFix {
	out := make([]ir.AutoFix, 0, len(fs.keys))
	for _, k := range fs.keys {
		out = append(out, fs.byKey[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Edit, out[j].Edit
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if (a.End == 0) != (b.End == 0) {
			return a.End == 0
		}
		return a.End < b.End
	})
	return out
}

// OverlapFree selects a maximal pairwise non-overlapping subset of the set's
// fixes via a single greedy scan over the position-sorted sequence: keep the
// first, then keep each candidate that does not overlap the last kept fix.
// Greedy-earliest-start is deterministic and linear but not guaranteed
// maximum-cardinality. Conflicting fixes are dropped silently; use Reconcile
// when the drops need to be observable.
func (fs *FixSet) OverlapFree() []ir.AutoFix {
	kept, _ := fs.Reconcile()
	return kept
}

// Reconcile runs the same greedy selection as OverlapFree but also returns
// the discarded fixes, in the order they were rejected.
func (fs *FixSet) Reconcile() (kept, discarded []ir.AutoFix) {
	sorted := fs.AllSortedByPosition()
	for _, fix := range sorted {
		if len(kept) == 0 || !overlaps(kept[len(kept)-1], fix) {
			kept = append(kept, fix)
			continue
		}
		discarded = append(discarded, fix)
	}
	return kept, discarded
}

// overlaps compares a candidate against the last kept fix. Inputs arrive
// sorted by start, so one end-vs-start comparison suffices.
func overlaps(kept, candidate ir.AutoFix) bool {
	return kept.Edit.End > candidate.Edit.Start
}

// Apply rewrites doc with the given non-overlapping edits. Edits are applied
// back to front so earlier offsets stay valid.
func Apply(doc string, edits []ir.AutoFix) string {
	ordered := make([]ir.AutoFix, len(edits))
	copy(ordered, edits)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Edit.Start > ordered[j].Edit.Start
	})
	for _, f := range ordered {
		start, end := f.Edit.Start, f.Edit.End
		if end == 0 {
			end = start // pure insertion
		}
		if start < 0 || end > len(doc) || start > end {
			continue
		}
		doc = doc[:start] + f.Edit.Text + doc[end:]
	}
	return doc
}
