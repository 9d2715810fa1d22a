package rules

// Pattern is one match expression a rule applies to source text.
type Pattern struct {
	Type    string `json:"pattern_type" yaml:"pattern_type"` // regex|string|substring
	Pattern string `json:"pattern" yaml:"pattern"`
}

// Condition can veto a raw pattern hit based on the surrounding line.
type Condition struct {
	Pattern       Pattern `json:"pattern" yaml:"pattern"`
	NegateFinding bool    `json:"negate_finding" yaml:"negate_finding"`
}

// FixIt describes an automated rewrite for text matched by the rule.
type FixIt struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"` // regex-replace
	Search  string `json:"search" yaml:"search"`
	Replace string `json:"replace" yaml:"replace"`
}

// Rule is a single analysis rule. Patterns/Conditions/FixIts are consumed by
// the scan engine; the fix and display layers only read the metadata.
type Rule struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Active         bool     `json:"active" yaml:"active"`
	Severity       string   `json:"severity" yaml:"severity"`
	Description    string   `json:"description" yaml:"description"`
	Recommendation string   `json:"recommendation" yaml:"recommendation"` // human fix guidance
	RuleInfo       string   `json:"rule_info" yaml:"rule_info"`           // guidance doc, appended to the base URL
	Tags           []string `json:"tags" yaml:"tags"`
	AppliesTo      []string `json:"applies_to" yaml:"applies_to"` // language filter; empty = all
	Overrides      []string `json:"overrides" yaml:"overrides"`   // rule ids this rule supersedes on the same span

	Patterns   []Pattern   `json:"patterns" yaml:"patterns"`
	Conditions []Condition `json:"conditions" yaml:"conditions"`
	FixIts     []FixIt     `json:"fix_its" yaml:"fix_its"`
}
