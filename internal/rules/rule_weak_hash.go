package rules

func init() {
	Register(Rule{
		ID:             "CRYPTO-WEAK-HASH",
		Name:           "Weak hash algorithm",
		Active:         true,
		Severity:       "important",
		Description:    "MD5 and SHA-1 are broken for collision resistance and must not be used for signatures, certificates, or password storage.",
		Recommendation: "Use SHA-256 or SHA-512 (or a dedicated password hash such as bcrypt/argon2 for credentials).",
		RuleInfo:       "crypto/weak-hash.md",
		Tags:           []string{"Cryptography.WeakHash"},
		Patterns: []Pattern{
			{Type: "regex", Pattern: `\b(MD5|SHA-?1)\b`},
		},
		FixIts: []FixIt{
			{Name: "Change to SHA-256", Type: "regex-replace", Search: `(?i)\b(MD5|SHA-?1)\b`, Replace: "SHA256"},
		},
	})
}
