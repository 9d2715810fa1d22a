package severity

import "testing"

type flags struct {
	bp, mr bool
}

func (f flags) BestPracticeEnabled() bool { return f.bp }
func (f flags) ManualReviewEnabled() bool { return f.mr }

func TestIsEnabled_GateMatrix(t *testing.T) {
	off := flags{}
	on := flags{bp: true, mr: true}

	for _, s := range []Severity{Critical, Important, Moderate, WarningInfo} {
		if !IsEnabled(s, off) {
			t.Fatalf("%v must be enabled regardless of flags", s)
		}
	}
	if IsEnabled(BestPractice, off) {
		t.Fatalf("BestPractice must follow the best-practice flag (off)")
	}
	if !IsEnabled(BestPractice, on) {
		t.Fatalf("BestPractice must follow the best-practice flag (on)")
	}
	if IsEnabled(ManualReview, flags{bp: true}) {
		t.Fatalf("ManualReview must follow the manual-review flag, not best-practice")
	}
	if !IsEnabled(ManualReview, flags{mr: true}) {
		t.Fatalf("ManualReview must follow the manual-review flag (on)")
	}
}

func TestConfigurationGate(t *testing.T) {
	cases := map[Severity]Gate{
		Critical:     AlwaysOn,
		Important:    AlwaysOn,
		Moderate:     AlwaysOn,
		WarningInfo:  AlwaysOn,
		BestPractice: GatedByBestPractice,
		ManualReview: GatedByManualReview,
	}
	for s, want := range cases {
		if got := ConfigurationGate(s); got != want {
			t.Errorf("ConfigurationGate(%v) = %v, want %v", s, got, want)
		}
	}
}

func TestDisplayLevel(t *testing.T) {
	cases := []struct {
		s    Severity
		want string
	}{
		{Critical, "error"},
		{Important, "error"},
		{Moderate, "error"},
		{BestPractice, "warning"},
		{WarningInfo, "info"},
		{ManualReview, "info"},
		{Severity(99), "error"}, // unknown fails toward visibility
	}
	for _, c := range cases {
		if got := DisplayLevel(c.s); got != c.want {
			t.Errorf("DisplayLevel(%v) = %q, want %q", c.s, got, c.want)
		}
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Severity
	}{
		{"critical", Critical},
		{"CRITICAL", Critical},
		{" Important ", Important},
		{"moderate", Moderate},
		{"best-practice", BestPractice},
		{"Manual-Review", ManualReview},
		{"", BestPractice},
		{"foo", BestPractice},
		{"high", BestPractice}, // unrecognized scale from another tool
	}
	for _, c := range cases {
		if got := Parse(c.in); got != c.want {
			t.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestShortLabel_Exhaustive(t *testing.T) {
	for _, s := range []Severity{Critical, Important, Moderate, BestPractice, WarningInfo, ManualReview, Severity(42)} {
		l := ShortLabel(s)
		if len(l) < 3 || l[0] != '[' || l[len(l)-1] != ']' {
			t.Errorf("ShortLabel(%v) = %q, want non-empty bracketed label", s, l)
		}
	}
	if got := ShortLabel(ManualReview); got != "[Review]" {
		t.Errorf("ShortLabel(ManualReview) = %q", got)
	}
	if got := ShortLabel(Severity(42)); got != "[Best Practice]" {
		t.Errorf("unknown severity label = %q, want fallback", got)
	}
}
