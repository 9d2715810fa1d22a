package severity

import "strings"

// Severity classifies a rule / finding. Not a linear scale: WarningInfo and
// ManualReview are informational classes, and ManualReview doubles as the
// marker for reviewer mentions inside suppression comments.
type Severity int

const (
	Critical Severity = iota
	Important
	Moderate
	BestPractice
	WarningInfo
	ManualReview
)

// Gate says which configuration flag (if any) controls a severity class.
type Gate int

const (
	AlwaysOn Gate = iota
	GatedByBestPractice
	GatedByManualReview
)

func (s Severity) String() string {
	switch s {
	case Critical:
		return "critical"
	case Important:
		return "important"
	case Moderate:
		return "moderate"
	case WarningInfo:
		return "warning-info"
	case ManualReview:
		return "manual-review"
	default:
		return "best-practice"
	}
}

// ConfigurationGate maps a severity to the flag that gates it. WarningInfo is
// display-only and never independently toggled, so it stays always-on.
func ConfigurationGate(s Severity) Gate {
	switch s {
	case BestPractice:
		return GatedByBestPractice
	case ManualReview:
		return GatedByManualReview
	default:
		return AlwaysOn
	}
}

// Flags is the slice of settings the gate check needs. settings.Settings
// satisfies it.
type Flags interface {
	BestPracticeEnabled() bool
	ManualReviewEnabled() bool
}

// IsEnabled reports whether rules of severity s may produce findings under
// the given flags.
func IsEnabled(s Severity, f Flags) bool {
	switch ConfigurationGate(s) {
	case GatedByBestPractice:
		return f.BestPracticeEnabled()
	case GatedByManualReview:
		return f.ManualReviewEnabled()
	default:
		return true
	}
}

// DisplayLevel maps a severity to the diagnostic level shown to the user.
// Unknown input maps to "error": fail toward visibility.
func DisplayLevel(s Severity) string {
	switch s {
	case Critical, Important, Moderate:
		return "error"
	case BestPractice:
		return "warning"
	case WarningInfo, ManualReview:
		return "info"
	default:
		return "error"
	}
}

// Parse resolves a severity label case-insensitively. Anything unrecognized,
// including the empty string, resolves to BestPractice rather than an error.
func Parse(text string) Severity {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "critical":
		return Critical
	case "important":
		return Important
	case "moderate":
		return Moderate
	case "manual-review":
		return ManualReview
	case "best-practice":
		return BestPractice
	default:
		return BestPractice
	}
}

// ShortLabel is the bracketed tag prepended to rendered diagnostics.
func ShortLabel(s Severity) string {
	switch s {
	case Critical:
		return "[Critical]"
	case Important:
		return "[Important]"
	case Moderate:
		return "[Moderate]"
	case WarningInfo:
		return "[Informational]"
	case ManualReview:
		return "[Review]"
	default:
		return "[Best Practice]"
	}
}

// Rank orders severities for report sorting (higher = more severe).
func Rank(s Severity) int {
	switch s {
	case Critical:
		return 6
	case Important:
		return 5
	case Moderate:
		return 4
	case BestPractice:
		return 3
	case WarningInfo:
		return 2
	case ManualReview:
		return 1
	default:
		return 0
	}
}
