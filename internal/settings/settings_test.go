package settings

import (
	"reflect"
	"testing"
)

func boolp(b bool) *bool    { return &b }
func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestValidate_EmptyPartialYieldsDefaults(t *testing.T) {
	got := Validate(Partial{})
	want := Default()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Validate(empty) = %+v, want defaults %+v", got, want)
	}
}

func TestValidate_RoundTrip(t *testing.T) {
	valid := Settings{
		EnableBestPracticeRules:     true,
		EnableManualReviewRules:     true,
		GuidanceBaseURL:             "https://docs.example.com/",
		IgnoreFilesList:             []string{"vendor/*"},
		IgnoreRulesList:             []string{"NET-HTTP-CLEARTEXT"},
		ManualReviewerName:          "alex",
		RemoveFindingsOnClose:       true,
		SuppressionDurationInDays:   7,
		SuppressionCommentStyle:     "block",
		SuppressionCommentPlacement: "line-above",
		ValidateRulesFiles:          false,
		LogToConsole:                true,
	}
	got := Validate(valid.AsPartial())
	if !reflect.DeepEqual(got, valid) {
		t.Fatalf("round-trip changed fields:\n got %+v\nwant %+v", got, valid)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	p := Partial{
		EnableBestPracticeRules:   boolp(true),
		GuidanceBaseURL:           strp(""), // invalid, falls back
		SuppressionDurationInDays: intp(-3), // invalid, falls back
		SuppressionCommentStyle:   strp("banner"),
	}
	once := Validate(p)
	twice := Validate(once.AsPartial())
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("validate not idempotent:\n once %+v\ntwice %+v", once, twice)
	}
}

func TestValidate_FieldIndependence(t *testing.T) {
	// one bad field must not disturb the good ones
	got := Validate(Partial{
		EnableManualReviewRules:   boolp(true),
		SuppressionDurationInDays: intp(-1),
		ManualReviewerName:        strp("sam"),
	})
	if !got.EnableManualReviewRules {
		t.Errorf("valid bool discarded")
	}
	if got.ManualReviewerName != "sam" {
		t.Errorf("valid string discarded: %q", got.ManualReviewerName)
	}
	if got.SuppressionDurationInDays != Default().SuppressionDurationInDays {
		t.Errorf("invalid duration kept: %d", got.SuppressionDurationInDays)
	}
}

func TestValidate_EnumPredicates(t *testing.T) {
	def := Default()

	if got := Validate(Partial{SuppressionCommentStyle: strp("block")}); got.SuppressionCommentStyle != "block" {
		t.Errorf("style block rejected: %q", got.SuppressionCommentStyle)
	}
	if got := Validate(Partial{SuppressionCommentStyle: strp("banner")}); got.SuppressionCommentStyle != def.SuppressionCommentStyle {
		t.Errorf("bad style kept: %q", got.SuppressionCommentStyle)
	}
	if got := Validate(Partial{SuppressionCommentPlacement: strp("line-above")}); got.SuppressionCommentPlacement != "line-above" {
		t.Errorf("placement line-above rejected: %q", got.SuppressionCommentPlacement)
	}
	if got := Validate(Partial{SuppressionCommentPlacement: strp("footer")}); got.SuppressionCommentPlacement != def.SuppressionCommentPlacement {
		t.Errorf("bad placement kept: %q", got.SuppressionCommentPlacement)
	}
}

func TestValidate_ListsKeptAsIs(t *testing.T) {
	// any present sequence is accepted, no dedup
	got := Validate(Partial{IgnoreFilesList: []string{"a", "a", ""}})
	if !reflect.DeepEqual(got.IgnoreFilesList, []string{"a", "a", ""}) {
		t.Errorf("ignore list rewritten: %v", got.IgnoreFilesList)
	}
	// empty (but present) list is still a list
	got = Validate(Partial{IgnoreRulesList: []string{}})
	if len(got.IgnoreRulesList) != 0 {
		t.Errorf("present empty list replaced by default: %v", got.IgnoreRulesList)
	}
}

func TestResolveRulesDir(t *testing.T) {
	cases := []struct {
		override string
		want     string
	}{
		{"", "install/rules"},
		{"   ", "install/rules"},
		{"undefined", "install/rules"},
		{"NULL", "install/rules"},
		{"/opt/packs", "/opt/packs"},
	}
	for _, c := range cases {
		if got := ResolveRulesDir(c.override, "install"); got != c.want {
			t.Errorf("ResolveRulesDir(%q) = %q, want %q", c.override, got, c.want)
		}
	}
}
