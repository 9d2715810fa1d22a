// Package findings constructs Finding records from raw rule matches and
// renders them into display payloads.
package findings

import (
	"strings"

	"github.com/codewithboateng/sentrylint/internal/ir"
	"github.com/codewithboateng/sentrylint/internal/settings"
	"github.com/codewithboateng/sentrylint/internal/severity"
)

// New builds a Finding from raw match inputs. String inputs are normalized:
// an unset value becomes the empty string, never a null. Fixes and Overrides
// start empty; SuppressedFindingRange starts absent (the common case).
func New(message, source, ruleID string, sev severity.Severity, replacement, issueURL string, rng ir.Range, snippet, filePath string) ir.Finding {
	return ir.Finding{
		RuleID:      strings.TrimSpace(ruleID),
		Severity:    sev.String(),
		Message:     strings.TrimSpace(message),
		Replacement: strings.TrimSpace(replacement),
		IssueURL:    strings.TrimSpace(issueURL),
		FilePath:    filePath,
		Range:       rng,
		Snippet:     snippet,
		Source:      strings.TrimSpace(source),
		Fixes:       []ir.AutoFix{},
		Overrides:   []string{},
	}
}

// RenderDiagnostic composes the user-facing payload for a finding. Optional
// sections are simply omitted when their inputs are empty; there is no
// failure path.
func RenderDiagnostic(f ir.Finding, s settings.Settings) ir.DisplayPayload {
	sev := severity.Parse(f.Severity)

	var b strings.Builder
	if f.Source != "" {
		b.WriteString(f.Source)
		b.WriteString(": ")
	}
	b.WriteString(severity.ShortLabel(sev))
	b.WriteString(" ")
	b.WriteString(f.Message)
	if f.Replacement != "" {
		b.WriteString("\n\nFix Guidance: ")
		b.WriteString(f.Replacement)
	}
	if f.IssueURL != "" {
		b.WriteString("\n\nMore Info: ")
		b.WriteString(s.GuidanceBaseURL)
		b.WriteString(f.IssueURL)
	}

	return ir.DisplayPayload{
		Message: b.String(),
		Code:    f.RuleID,
		Source:  "sentrylint: " + f.RuleID,
		Range:   f.Range,
		Level:   severity.DisplayLevel(sev),
	}
}
