package rules

func init() {
	Register(Rule{
		ID:             "CRYPTO-PREDICTABLE-RAND",
		Name:           "Non-cryptographic random source",
		Active:         true,
		Severity:       "best-practice",
		Description:    "General-purpose PRNGs (rand(), math/rand, Random()) are predictable and unsuitable for keys, tokens, or nonces.",
		Recommendation: "Use the platform CSPRNG (crypto/rand, SecureRandom, secrets).",
		RuleInfo:       "crypto/predictable-rand.md",
		Tags:           []string{"Cryptography.PRNG"},
		AppliesTo:      []string{"go", "java", "javascript", "typescript", "python", "c", "cpp", "csharp"},
		Patterns: []Pattern{
			{Type: "regex", Pattern: `\bmath/rand\b|\brand\s*\(\s*\)|\bnew Random\s*\(`},
		},
	})
}
