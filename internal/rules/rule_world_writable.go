package rules

func init() {
	Register(Rule{
		ID:             "FS-WORLD-WRITABLE",
		Name:           "World-writable permissions",
		Active:         true,
		Severity:       "moderate",
		Description:    "Mode 777/666 lets any local user modify the file, enabling tampering and privilege escalation.",
		Recommendation: "Grant the narrowest mode that works, e.g. 750 for directories and 640 for files.",
		RuleInfo:       "fs/world-writable.md",
		Tags:           []string{"FileSystem.Permissions"},
		Patterns: []Pattern{
			{Type: "regex", Pattern: `\bchmod\s*\(?[^,)]*,?\s*0?[67]77\b`},
		},
		FixIts: []FixIt{
			{Name: "Restrict to 750", Type: "regex-replace", Search: `0?[67]77`, Replace: "750"},
		},
	})
}
