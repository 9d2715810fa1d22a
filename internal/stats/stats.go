// Package stats aggregates per-run finding counts for reports and the CLI.
package stats

import (
	"github.com/codewithboateng/sentrylint/internal/ir"
	"github.com/codewithboateng/sentrylint/internal/severity"
)

type Summary struct {
	Total      int            `json:"total"`
	Files      int            `json:"files"`
	ByLevel    map[string]int `json:"by_level"`
	BySeverity map[string]int `json:"by_severity"`
	Fixable    int            `json:"fixable"`
	Suppressed int            `json:"suppressed"`
}

// Summarize walks the run's findings once and tallies them by severity and
// display level.
func Summarize(run *ir.Run) Summary {
	s := Summary{
		Files:      len(run.Files),
		ByLevel:    map[string]int{},
		BySeverity: map[string]int{},
	}
	for _, f := range run.Findings {
		s.Total++
		sev := severity.Parse(f.Severity)
		s.BySeverity[sev.String()]++
		s.ByLevel[severity.DisplayLevel(sev)]++
		if len(f.Fixes) > 0 {
			s.Fixable++
		}
		if f.SuppressedFindingRange != nil {
			s.Suppressed++
		}
	}
	return s
}
