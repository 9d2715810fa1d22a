package golden

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/codewithboateng/sentrylint/internal/ir"
)

// Two scans of the same tree must serialize identically once the volatile
// fields are pinned; report diffing depends on it.
func TestSnapshot_Deterministic(t *testing.T) {
	files := map[string]string{
		"deploy.py":  sampleVulnerable,
		"second.py":  `PROTO = "TLSv1.0"` + "\n",
		"ignored.md": "plain prose, no findings\n",
	}

	a := analyzeStrings(t, files, true, true)
	b := analyzeStrings(t, files, true, true)

	ja, jb := marshalNormalized(t, a), marshalNormalized(t, b)
	if !bytes.Equal(ja, jb) {
		t.Fatalf("identical inputs produced different reports:\n--- a\n%s\n--- b\n%s", ja, jb)
	}
}

func TestSnapshot_StableFindingIDs(t *testing.T) {
	files := map[string]string{"deploy.py": sampleVulnerable}

	a := analyzeStrings(t, files, false, false)
	b := analyzeStrings(t, files, false, false)

	if len(a.Findings) != len(b.Findings) {
		t.Fatalf("finding counts differ: %d vs %d", len(a.Findings), len(b.Findings))
	}
	for i := range a.Findings {
		if a.Findings[i].ID == "" {
			t.Fatalf("finding %d has no id", i)
		}
		if a.Findings[i].ID != b.Findings[i].ID {
			t.Fatalf("finding ids not stable across scans: %q vs %q",
				a.Findings[i].ID, b.Findings[i].ID)
		}
	}
}

func marshalNormalized(t *testing.T, run ir.Run) []byte {
	t.Helper()
	run.ID = "run-snapshot"
	run.StartedAt = time.Time{}
	run.Source = "samples/vulnerable-small"
	out, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		t.Fatalf("marshal run: %v", err)
	}
	return out
}
