package rules

func init() {
	Register(Rule{
		ID:             "NET-HTTP-CLEARTEXT",
		Name:           "Cleartext HTTP URL",
		Active:         true,
		Severity:       "moderate",
		Description:    "An http:// URL sends traffic unencrypted and is subject to interception and tampering.",
		Recommendation: "Use https:// unless the endpoint genuinely cannot support TLS.",
		RuleInfo:       "net/cleartext-http.md",
		Tags:           []string{"Network.Encryption"},
		Patterns: []Pattern{
			{Type: "regex", Pattern: `http://[\w./?&=%-]+`},
		},
		Conditions: []Condition{
			// localhost traffic never leaves the host; skip it
			{Pattern: Pattern{Type: "regex", Pattern: `http://(localhost|127\.0\.0\.1)`}, NegateFinding: true},
		},
		FixIts: []FixIt{
			{Name: "Change to https", Type: "regex-replace", Search: `http://`, Replace: "https://"},
		},
	})
}
