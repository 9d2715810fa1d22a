package reporting

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/codewithboateng/sentrylint/internal/ir"
	"github.com/codewithboateng/sentrylint/internal/stats"
)

func TestWriteJSON_EmbedsSummary(t *testing.T) {
	run := &ir.Run{
		ID:    "run-x",
		Files: []string{"a.go", "b.go"},
		Findings: []ir.Finding{
			{RuleID: "R-1", Severity: "critical"},
			{RuleID: "R-2", Severity: "moderate", Fixes: []ir.AutoFix{{Label: "f"}}},
		},
	}

	path, err := WriteJSON(run.ID, t.TempDir(), run)
	if err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	var got struct {
		Summary stats.Summary `json:"summary"`
		Run     ir.Run        `json:"run"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if got.Run.ID != "run-x" || len(got.Run.Findings) != 2 {
		t.Fatalf("run not embedded: %+v", got.Run)
	}
	if got.Summary.Total != 2 || got.Summary.Files != 2 || got.Summary.Fixable != 1 {
		t.Fatalf("summary not embedded: %+v", got.Summary)
	}
}
