package reporting

import (
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/codewithboateng/sentrylint/internal/ir"
	"github.com/codewithboateng/sentrylint/internal/severity"
	"github.com/codewithboateng/sentrylint/internal/stats"
)

func WriteHTML(runID, outDir string, run *ir.Run) (string, error) {
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sum := stats.Summarize(run)

	// Head + styles
	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace} .error{color:#b00} .warning{color:#a60} .info{color:#06a}</style>")
	fmt.Fprint(f, "</head><body>")

	// Title + summary
	fmt.Fprintf(f, "<h1>sentrylint report – <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	fmt.Fprintf(f, "<p>Files: %d &nbsp; Findings: %d &nbsp; Fixable: %d &nbsp; Suppressed: %d</p>",
		sum.Files, sum.Total, sum.Fixable, sum.Suppressed)
	fmt.Fprintf(f, "<p class='dim'>errors=%d warnings=%d info=%d</p>",
		sum.ByLevel["error"], sum.ByLevel["warning"], sum.ByLevel["info"])

	// Gate banner
	fmt.Fprintf(f, "<p class='dim'>best-practice rules: %v &nbsp; manual-review rules: %v",
		run.Context.EnableBestPracticeRules, run.Context.EnableManualReviewRules)
	if n := len(run.Context.IgnoredRules); n > 0 {
		fmt.Fprintf(f, " &nbsp; ignored rules: %d", n)
	}
	fmt.Fprint(f, "</p>")

	// All findings
	if len(run.Findings) > 0 {
		fmt.Fprint(f, "<h2>All Findings</h2><table><tr><th>Level</th><th>Severity</th><th>Rule</th><th>File</th><th>Line</th><th>Message</th><th>Snippet</th></tr>")
		for _, fd := range run.Findings {
			sev := severity.Parse(fd.Severity)
			level := severity.DisplayLevel(sev)
			fmt.Fprintf(f, "<tr><td class='%s'>%s</td><td>%s</td><td>%s</td><td class='mono'>%s</td><td>%d</td><td>%s</td><td class='mono'>%s</td></tr>",
				level,
				html.EscapeString(level),
				html.EscapeString(severity.ShortLabel(sev)),
				html.EscapeString(fd.RuleID),
				html.EscapeString(fd.FilePath),
				fd.Range.Start.Line+1,
				html.EscapeString(fd.Message),
				html.EscapeString(fd.Snippet),
			)
		}
		fmt.Fprint(f, "</table>")
	} else {
		fmt.Fprint(f, "<h2>All Findings</h2><p class='dim'>No findings for the enabled rule set.</p>")
	}

	fmt.Fprint(f, "</body></html>")
	return path, nil
}
