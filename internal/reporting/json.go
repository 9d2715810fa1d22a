package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/codewithboateng/sentrylint/internal/ir"
	"github.com/codewithboateng/sentrylint/internal/stats"
)

// jsonReport is the machine-readable report artifact: the run plus its
// summary, so consumers get the tallies without re-deriving them.
type jsonReport struct {
	Summary stats.Summary `json:"summary"`
	Run     *ir.Run       `json:"run"`
}

func WriteJSON(runID, outDir string, run *ir.Run) (string, error) {
	path := filepath.Join(outDir, runID+".json")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonReport{Summary: stats.Summarize(run), Run: run}); err != nil {
		return "", err
	}
	return path, nil
}
