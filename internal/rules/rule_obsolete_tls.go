package rules

func init() {
	Register(Rule{
		ID:             "CRYPTO-TLS-OBSOLETE",
		Name:           "Obsolete SSL/TLS protocol version",
		Active:         true,
		Severity:       "critical",
		Description:    "SSLv2, SSLv3, TLS 1.0 and TLS 1.1 have known protocol-level weaknesses.",
		Recommendation: "Require TLS 1.2 or later.",
		RuleInfo:       "crypto/obsolete-tls.md",
		Tags:           []string{"Cryptography.Protocol.TLS"},
		Patterns: []Pattern{
			{Type: "regex", Pattern: `\b(SSLv2|SSLv3|TLSv1\.0|TLSv1\.1|TLS ?1\.0|TLS ?1\.1)\b`},
		},
	})
}
