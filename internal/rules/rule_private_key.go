package rules

func init() {
	Register(Rule{
		ID:             "SECRET-PRIVATE-KEY",
		Name:           "Private key material in source",
		Active:         true,
		Severity:       "critical",
		Description:    "A PEM private key block is committed to source. Anyone with read access to the repository owns the key.",
		Recommendation: "Remove the key, rotate it, and load secrets from a vault or environment at runtime.",
		RuleInfo:       "secrets/private-key.md",
		Tags:           []string{"Secrets.PrivateKey"},
		Patterns: []Pattern{
			{Type: "string", Pattern: "BEGIN RSA PRIVATE KEY"},
			{Type: "string", Pattern: "BEGIN EC PRIVATE KEY"},
			{Type: "string", Pattern: "BEGIN DSA PRIVATE KEY"},
			{Type: "string", Pattern: "BEGIN OPENSSH PRIVATE KEY"},
		},
	})
}
