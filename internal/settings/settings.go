package settings

import (
	"path/filepath"
	"strings"
)

// Settings is the total, validated analyzer configuration. Every field is
// guaranteed populated after Validate; there is no "absent" state.
type Settings struct {
	EnableBestPracticeRules     bool     `json:"enable_best_practice_rules"`
	EnableManualReviewRules     bool     `json:"enable_manual_review_rules"`
	GuidanceBaseURL             string   `json:"guidance_base_url"`
	IgnoreFilesList             []string `json:"ignore_files_list"`
	IgnoreRulesList             []string `json:"ignore_rules_list"`
	ManualReviewerName          string   `json:"manual_reviewer_name"`
	RemoveFindingsOnClose       bool     `json:"remove_findings_on_close"`
	SuppressionDurationInDays   int      `json:"suppression_duration_in_days"`
	SuppressionCommentStyle     string   `json:"suppression_comment_style"`     // "line"|"block"
	SuppressionCommentPlacement string   `json:"suppression_comment_placement"` // "same-line"|"line-above"
	ValidateRulesFiles          bool     `json:"validate_rules_files"`
	LogToConsole                bool     `json:"log_to_console"`
}

// Partial is an externally supplied, possibly incomplete or malformed
// configuration. Nil fields are absent.
type Partial struct {
	EnableBestPracticeRules     *bool    `json:"enable_best_practice_rules,omitempty" yaml:"enable_best_practice_rules"`
	EnableManualReviewRules     *bool    `json:"enable_manual_review_rules,omitempty" yaml:"enable_manual_review_rules"`
	GuidanceBaseURL             *string  `json:"guidance_base_url,omitempty" yaml:"guidance_base_url"`
	IgnoreFilesList             []string `json:"ignore_files_list,omitempty" yaml:"ignore_files_list"`
	IgnoreRulesList             []string `json:"ignore_rules_list,omitempty" yaml:"ignore_rules_list"`
	ManualReviewerName          *string  `json:"manual_reviewer_name,omitempty" yaml:"manual_reviewer_name"`
	RemoveFindingsOnClose       *bool    `json:"remove_findings_on_close,omitempty" yaml:"remove_findings_on_close"`
	SuppressionDurationInDays   *int     `json:"suppression_duration_in_days,omitempty" yaml:"suppression_duration_in_days"`
	SuppressionCommentStyle     *string  `json:"suppression_comment_style,omitempty" yaml:"suppression_comment_style"`
	SuppressionCommentPlacement *string  `json:"suppression_comment_placement,omitempty" yaml:"suppression_comment_placement"`
	ValidateRulesFiles          *bool    `json:"validate_rules_files,omitempty" yaml:"validate_rules_files"`
	LogToConsole                *bool    `json:"log_to_console,omitempty" yaml:"log_to_console"`
}

// Default is the fixed fallback configuration. The ignore list covers the
// usual build/VCS/log/artifact paths.
func Default() Settings {
	return Settings{
		EnableBestPracticeRules:     false,
		EnableManualReviewRules:     false,
		GuidanceBaseURL:             "https://github.com/codewithboateng/sentrylint/blob/main/guidance/",
		IgnoreFilesList:             []string{"out/*", "bin/*", "node_modules/*", ".vscode/*", "yarn.lock", "logs/*", "*.log", "*.git"},
		IgnoreRulesList:             []string{},
		ManualReviewerName:          "",
		RemoveFindingsOnClose:       false,
		SuppressionDurationInDays:   30,
		SuppressionCommentStyle:     "line",
		SuppressionCommentPlacement: "same-line",
		ValidateRulesFiles:          true,
		LogToConsole:                false,
	}
}

// Validate produces a total Settings from a partial one. Each field is merged
// independently: keep the incoming value when present and valid, otherwise
// substitute the default. A single bad field never invalidates the rest.
func Validate(p Partial) Settings {
	s := Default()

	if p.EnableBestPracticeRules != nil {
		s.EnableBestPracticeRules = *p.EnableBestPracticeRules
	}
	if p.EnableManualReviewRules != nil {
		s.EnableManualReviewRules = *p.EnableManualReviewRules
	}
	if p.GuidanceBaseURL != nil && *p.GuidanceBaseURL != "" {
		s.GuidanceBaseURL = *p.GuidanceBaseURL
	}
	if p.IgnoreFilesList != nil {
		s.IgnoreFilesList = p.IgnoreFilesList
	}
	if p.IgnoreRulesList != nil {
		s.IgnoreRulesList = p.IgnoreRulesList
	}
	if p.ManualReviewerName != nil && *p.ManualReviewerName != "" {
		s.ManualReviewerName = *p.ManualReviewerName
	}
	if p.RemoveFindingsOnClose != nil {
		s.RemoveFindingsOnClose = *p.RemoveFindingsOnClose
	}
	if p.SuppressionDurationInDays != nil && *p.SuppressionDurationInDays >= 0 {
		s.SuppressionDurationInDays = *p.SuppressionDurationInDays
	}
	if p.SuppressionCommentStyle != nil {
		switch *p.SuppressionCommentStyle {
		case "line", "block":
			s.SuppressionCommentStyle = *p.SuppressionCommentStyle
		}
	}
	if p.SuppressionCommentPlacement != nil {
		switch *p.SuppressionCommentPlacement {
		case "same-line", "line-above":
			s.SuppressionCommentPlacement = *p.SuppressionCommentPlacement
		}
	}
	if p.ValidateRulesFiles != nil {
		s.ValidateRulesFiles = *p.ValidateRulesFiles
	}
	if p.LogToConsole != nil {
		s.LogToConsole = *p.LogToConsole
	}
	return s
}

// AsPartial lifts a total Settings back into Partial form. Validate(AsPartial(s))
// returns s field for field, which is what makes Validate idempotent.
func (s Settings) AsPartial() Partial {
	return Partial{
		EnableBestPracticeRules:     &s.EnableBestPracticeRules,
		EnableManualReviewRules:     &s.EnableManualReviewRules,
		GuidanceBaseURL:             &s.GuidanceBaseURL,
		IgnoreFilesList:             s.IgnoreFilesList,
		IgnoreRulesList:             s.IgnoreRulesList,
		ManualReviewerName:          &s.ManualReviewerName,
		RemoveFindingsOnClose:       &s.RemoveFindingsOnClose,
		SuppressionDurationInDays:   &s.SuppressionDurationInDays,
		SuppressionCommentStyle:     &s.SuppressionCommentStyle,
		SuppressionCommentPlacement: &s.SuppressionCommentPlacement,
		ValidateRulesFiles:          &s.ValidateRulesFiles,
		LogToConsole:                &s.LogToConsole,
	}
}

// BestPracticeEnabled and ManualReviewEnabled satisfy severity.Flags.
func (s Settings) BestPracticeEnabled() bool { return s.EnableBestPracticeRules }
func (s Settings) ManualReviewEnabled() bool { return s.EnableManualReviewRules }

// ResolveRulesDir picks the active rules directory: an explicit override wins
// when it is meaningfully set, otherwise the install-relative default. Pure;
// no file-system access.
func ResolveRulesDir(override, installDir string) string {
	v := strings.TrimSpace(override)
	switch strings.ToLower(v) {
	case "", "undefined", "null":
		return filepath.Join(installDir, "rules")
	}
	return v
}
