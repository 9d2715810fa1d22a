// Package suppress detects and generates in-source suppression comments.
//
// Marker grammar, anywhere inside a comment:
//
//	sentrylint: ignore RULE-A[,RULE-B...] [until YYYY-MM-DD]
package suppress

import (
	"regexp"
	"strings"
	"time"

	"github.com/codewithboateng/sentrylint/internal/ir"
	"github.com/codewithboateng/sentrylint/internal/settings"
)

const marker = "sentrylint: ignore"

var markerRe = regexp.MustCompile(`sentrylint: ignore ([\w,-]+)( until (\d{4}-\d{2}-\d{2}))?`)

// Match is a parsed suppression marker found on one line.
type Match struct {
	RuleIDs []string
	Until   time.Time // zero when no expiry was given
	Start   int       // byte offsets of the marker within the line
	End     int
}

// ParseLine extracts the suppression marker from a source line, if any.
func ParseLine(line string) (Match, bool) {
	loc := markerRe.FindStringSubmatchIndex(line)
	if loc == nil {
		return Match{}, false
	}
	sub := markerRe.FindStringSubmatch(line)
	m := Match{Start: loc[0], End: loc[1]}
	for _, id := range strings.Split(sub[1], ",") {
		if id = strings.TrimSpace(id); id != "" {
			m.RuleIDs = append(m.RuleIDs, id)
		}
	}
	if sub[3] != "" {
		if t, err := time.Parse("2006-01-02", sub[3]); err == nil {
			m.Until = t
		}
	}
	return m, true
}

// Covers reports whether the line's marker suppresses ruleID at the given
// time, and the marker's range within the line for SuppressedFindingRange.
func Covers(line string, lineNo int, ruleID string, now time.Time) (*ir.Range, bool) {
	m, ok := ParseLine(line)
	if !ok {
		return nil, false
	}
	if !m.Until.IsZero() && now.After(m.Until.Add(24*time.Hour)) {
		return nil, false // expired
	}
	for _, id := range m.RuleIDs {
		if strings.EqualFold(id, ruleID) || id == "all" {
			r := &ir.Range{
				Start: ir.Position{Line: lineNo, Character: m.Start},
				End:   ir.Position{Line: lineNo, Character: m.End},
			}
			return r, true
		}
	}
	return nil, false
}

// Comment renders a new suppression comment for ruleID per the configured
// style, duration and reviewer name.
func Comment(ruleID string, s settings.Settings, now time.Time) string {
	var b strings.Builder
	b.WriteString(marker)
	b.WriteString(" ")
	b.WriteString(ruleID)
	if s.SuppressionDurationInDays > 0 {
		until := now.AddDate(0, 0, s.SuppressionDurationInDays)
		b.WriteString(" until ")
		b.WriteString(until.Format("2006-01-02"))
	}
	if s.ManualReviewerName != "" {
		b.WriteString(" reviewed by ")
		b.WriteString(s.ManualReviewerName)
	}
	if s.SuppressionCommentStyle == "block" {
		return "/* " + b.String() + " */"
	}
	return "// " + b.String()
}

// Insert places the suppression comment into src for a finding on line
// lineNo, honoring SuppressionCommentPlacement. Lines are newline-joined on
// return exactly as they were split.
func Insert(src, ruleID string, lineNo int, s settings.Settings, now time.Time) string {
	lines := strings.Split(src, "\n")
	if lineNo < 0 || lineNo >= len(lines) {
		return src
	}
	c := Comment(ruleID, s, now)
	if s.SuppressionCommentPlacement == "line-above" {
		indent := lines[lineNo][:len(lines[lineNo])-len(strings.TrimLeft(lines[lineNo], " \t"))]
		lines = append(lines[:lineNo], append([]string{indent + c}, lines[lineNo:]...)...)
	} else {
		lines[lineNo] = strings.TrimRight(lines[lineNo], " \t") + " " + c
	}
	return strings.Join(lines, "\n")
}

// Record is a persistent, out-of-source suppression (the storage layer keeps
// them). A record matches a finding by rule id, optional file path and
// optional case-insensitive substring of the snippet or message.
type Record struct {
	RuleID     string
	FilePath   string
	PatternSub string
	ExpiresAt  time.Time
}

// Apply filters out findings matched by an active record.
// Returns (kept, suppressedCount).
func Apply(in []ir.Finding, recs []Record, now time.Time) ([]ir.Finding, int) {
	if len(recs) == 0 || len(in) == 0 {
		return in, 0
	}
	var out []ir.Finding
	suppressed := 0
nextFinding:
	for _, f := range in {
		for _, r := range recs {
			if !strings.EqualFold(strings.TrimSpace(f.RuleID), strings.TrimSpace(r.RuleID)) {
				continue
			}
			if r.FilePath != "" && !strings.EqualFold(f.FilePath, r.FilePath) {
				continue
			}
			if !r.ExpiresAt.IsZero() && now.After(r.ExpiresAt) {
				continue
			}
			if r.PatternSub != "" {
				ps := strings.ToUpper(r.PatternSub)
				if !strings.Contains(strings.ToUpper(f.Snippet), ps) &&
					!strings.Contains(strings.ToUpper(f.Message), ps) {
					continue
				}
			}
			suppressed++
			continue nextFinding
		}
		out = append(out, f)
	}
	return out, suppressed
}

// ReviewerMentioned reports whether a reviewer tag appears inside the
// suppression marker on the line. Findings of the manual-review class use
// this to surface who signed off.
func ReviewerMentioned(line, reviewer string) bool {
	if reviewer == "" {
		return false
	}
	m, ok := ParseLine(line)
	if !ok {
		return false
	}
	rest := line[m.End:]
	return strings.Contains(strings.ToLower(rest), strings.ToLower("reviewed by "+reviewer))
}
