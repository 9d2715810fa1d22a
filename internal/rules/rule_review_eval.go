package rules

func init() {
	Register(Rule{
		ID:             "REVIEW-EVAL-USAGE",
		Name:           "Dynamic code evaluation",
		Active:         true,
		Severity:       "manual-review",
		Description:    "eval/exec over dynamic input can execute attacker-controlled code. Flagged for human review; legitimate uses exist.",
		Recommendation: "Verify the evaluated input cannot be influenced by an attacker, or replace with a structured parser.",
		RuleInfo:       "review/eval-usage.md",
		Tags:           []string{"Review.CodeInjection"},
		AppliesTo:      []string{"javascript", "typescript", "python", "ruby", "php"},
		Patterns: []Pattern{
			{Type: "regex", Pattern: `\beval\s*\(|\bexec\s*\(`},
		},
	})
}
