package ir

import "time"

const Version = "1.0"

// Run is one analysis pass over a source tree.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Source    string    `json:"source,omitempty"`
	IRVersion string    `json:"ir_version,omitempty"`

	Context  Context   `json:"context"`
	Files    []string  `json:"files,omitempty"`
	Findings []Finding `json:"findings,omitempty"`
}

type Context struct {
	RulesDir                string   `json:"rules_dir,omitempty"`
	EnableBestPracticeRules bool     `json:"enable_best_practice_rules,omitempty"`
	EnableManualReviewRules bool     `json:"enable_manual_review_rules,omitempty"`
	IgnoredRules            []string `json:"ignored_rules,omitempty"`
}

// Position is a zero-based line/character location in a document.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open span: Start inclusive, End exclusive.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Finding is a single reported issue at a specific source location.
// Created once per rule match; Fixes and SuppressedFindingRange are
// filled in after creation by the suppression and fix steps.
type Finding struct {
	ID          string `json:"id"`
	RuleID      string `json:"rule_id"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	Replacement string `json:"replacement,omitempty"`
	IssueURL    string `json:"issue_url,omitempty"`
	FilePath    string `json:"file_path"`
	Range       Range  `json:"range"`
	Snippet     string `json:"snippet,omitempty"`
	Source      string `json:"source,omitempty"`

	Fixes     []AutoFix `json:"fixes,omitempty"`
	Overrides []string  `json:"overrides,omitempty"`

	// Non-nil only when an existing suppression comment covers this finding.
	SuppressedFindingRange *Range `json:"suppressed_finding_range,omitempty"`
}

// AutoFix is a proposed, mechanically applicable text edit addressing one
// Finding. Valid only against the document revision it was computed from.
type AutoFix struct {
	Label           string   `json:"label"`
	DocumentVersion int      `json:"document_version"`
	RuleID          string   `json:"rule_id"`
	Edit            TextEdit `json:"edit"`
}

// TextEdit replaces the byte span [Start, End) with Text.
// End == 0 with Start > 0 marks a pure insertion that sorts before any
// replacing edit at the same start.
type TextEdit struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	FixName string `json:"fix_name,omitempty"`
	Text    string `json:"text"`
}

// DisplayPayload is a rendered diagnostic ready for the editor/CLI layer.
type DisplayPayload struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Source  string `json:"source"`
	Range   Range  `json:"range"`
	Level   string `json:"level"` // error|warning|info
}
