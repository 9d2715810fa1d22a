package findings

import (
	"strings"
	"testing"

	"github.com/codewithboateng/sentrylint/internal/ir"
	"github.com/codewithboateng/sentrylint/internal/settings"
	"github.com/codewithboateng/sentrylint/internal/severity"
)

func sampleRange() ir.Range {
	return ir.Range{
		Start: ir.Position{Line: 4, Character: 2},
		End:   ir.Position{Line: 4, Character: 10},
	}
}

func TestNew_Normalization(t *testing.T) {
	f := New("  msg  ", "", " RULE-1 ", severity.Critical, "", "", sampleRange(), "snippet", "a.go")
	if f.Message != "msg" || f.RuleID != "RULE-1" {
		t.Fatalf("whitespace not trimmed: %+v", f)
	}
	if f.Replacement != "" || f.IssueURL != "" || f.Source != "" {
		t.Fatalf("empty inputs must stay empty strings: %+v", f)
	}
	if f.Fixes == nil || len(f.Fixes) != 0 {
		t.Fatalf("fixes must initialize to an empty sequence")
	}
	if f.Overrides == nil || len(f.Overrides) != 0 {
		t.Fatalf("overrides must initialize to an empty sequence")
	}
	if f.SuppressedFindingRange != nil {
		t.Fatalf("suppressed range must start absent")
	}
}

func TestRenderDiagnostic_FullMessage(t *testing.T) {
	s := settings.Default()
	f := New("Weak hash in use", "Weak hash algorithm", "CRYPTO-WEAK-HASH",
		severity.Important, "Use SHA-256", "crypto/weak-hash.md", sampleRange(), "MD5", "a.go")

	p := RenderDiagnostic(f, s)
	if !strings.Contains(p.Message, "[Important]") {
		t.Errorf("missing severity label: %q", p.Message)
	}
	if !strings.Contains(p.Message, "Weak hash in use") {
		t.Errorf("missing finding message: %q", p.Message)
	}
	if !strings.Contains(p.Message, "Fix Guidance: Use SHA-256") {
		t.Errorf("missing fix guidance section: %q", p.Message)
	}
	if !strings.Contains(p.Message, "More Info: "+s.GuidanceBaseURL+"crypto/weak-hash.md") {
		t.Errorf("more-info must concatenate base URL and issue URL: %q", p.Message)
	}
	if p.Code != "CRYPTO-WEAK-HASH" {
		t.Errorf("code = %q, want rule id", p.Code)
	}
	if !strings.Contains(p.Source, "CRYPTO-WEAK-HASH") {
		t.Errorf("source must embed rule id: %q", p.Source)
	}
	if p.Level != "error" {
		t.Errorf("level = %q, want error for Important", p.Level)
	}
	if p.Range != f.Range {
		t.Errorf("range must pass through unchanged")
	}
}

func TestRenderDiagnostic_DegradesGracefully(t *testing.T) {
	s := settings.Default()
	f := New("msg", "", "R", severity.ManualReview, "", "", sampleRange(), "", "a.go")
	p := RenderDiagnostic(f, s)

	if strings.Contains(p.Message, "Fix Guidance") {
		t.Errorf("empty replacement must omit the guidance section: %q", p.Message)
	}
	if strings.Contains(p.Message, "More Info") {
		t.Errorf("empty issue URL must omit the more-info section: %q", p.Message)
	}
	if p.Level != "info" {
		t.Errorf("level = %q, want info for ManualReview", p.Level)
	}
	if !strings.HasPrefix(p.Message, "[Review]") {
		t.Errorf("message without source must lead with the label: %q", p.Message)
	}
}
