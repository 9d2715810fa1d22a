// Package scan walks a source tree, runs the active rules over each file and
// produces findings with their proposed fixes attached.
package scan

import (
	"fmt"
	"hash/crc32"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/codewithboateng/sentrylint/internal/findings"
	"github.com/codewithboateng/sentrylint/internal/fixes"
	"github.com/codewithboateng/sentrylint/internal/ir"
	"github.com/codewithboateng/sentrylint/internal/rules"
	"github.com/codewithboateng/sentrylint/internal/settings"
	"github.com/codewithboateng/sentrylint/internal/severity"
	"github.com/codewithboateng/sentrylint/internal/suppress"
)

const maxFileSize = 4 << 20 // files larger than this are skipped

// Scanner binds one rule snapshot and one validated settings record for the
// duration of a scan. A rules reload published mid-scan does not affect it.
type Scanner struct {
	Settings settings.Settings
	Rules    *rules.Snapshot
	Logger   *slog.Logger

	// IncludeSuppressed keeps findings covered by suppression comments in
	// the output (with SuppressedFindingRange set) instead of dropping them.
	IncludeSuppressed bool

	Now time.Time // zero means time.Now

	compiled []compiledRule
}

type compiledRule struct {
	rule       rules.Rule
	sev        severity.Severity
	patterns   []*regexp.Regexp
	conditions []compiledCondition
	fixIts     []compiledFixIt
}

type compiledCondition struct {
	re     *regexp.Regexp
	negate bool
}

type compiledFixIt struct {
	name    string
	search  *regexp.Regexp
	replace string
}

// New compiles the enabled subset of snap's rules under s: inactive rules,
// rules on the ignore list and rules whose severity class is gated off are
// excluded up front.
func New(s settings.Settings, snap *rules.Snapshot, logger *slog.Logger) *Scanner {
	sc := &Scanner{Settings: s, Rules: snap, Logger: logger}

	ignored := make(map[string]bool, len(s.IgnoreRulesList))
	for _, id := range s.IgnoreRulesList {
		ignored[strings.ToUpper(strings.TrimSpace(id))] = true
	}

	for _, r := range snap.List() {
		if !r.Active || ignored[strings.ToUpper(r.ID)] {
			continue
		}
		sev := severity.Parse(r.Severity)
		if !severity.IsEnabled(sev, s) {
			continue
		}
		cr, err := compile(r, sev)
		if err != nil {
			if logger != nil {
				logger.Warn("rule skipped", "rule", r.ID, "err", err)
			}
			continue
		}
		sc.compiled = append(sc.compiled, cr)
	}
	return sc
}

func compile(r rules.Rule, sev severity.Severity) (compiledRule, error) {
	cr := compiledRule{rule: r, sev: sev}
	for _, p := range r.Patterns {
		re, err := compilePattern(p)
		if err != nil {
			return cr, err
		}
		cr.patterns = append(cr.patterns, re)
	}
	for _, c := range r.Conditions {
		re, err := compilePattern(c.Pattern)
		if err != nil {
			return cr, err
		}
		cr.conditions = append(cr.conditions, compiledCondition{re: re, negate: c.NegateFinding})
	}
	for _, f := range r.FixIts {
		re, err := regexp.Compile(f.Search)
		if err != nil {
			return cr, fmt.Errorf("fix_it %q: %w", f.Name, err)
		}
		cr.fixIts = append(cr.fixIts, compiledFixIt{name: f.Name, search: re, replace: f.Replace})
	}
	return cr, nil
}

func compilePattern(p rules.Pattern) (*regexp.Regexp, error) {
	switch p.Type {
	case "regex":
		return regexp.Compile("(?i)" + p.Pattern)
	case "string":
		return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(p.Pattern) + `\b`)
	case "substring":
		return regexp.Compile("(?i)" + regexp.QuoteMeta(p.Pattern))
	default:
		return nil, fmt.Errorf("unknown pattern type %q", p.Type)
	}
}

func (sc *Scanner) now() time.Time {
	if sc.Now.IsZero() {
		return time.Now()
	}
	return sc.Now
}

// ScanFile runs every compiled rule over src and returns the resulting
// findings, ordered by position. docVersion stamps the proposed fixes.
func (sc *Scanner) ScanFile(filePath string, src string, docVersion int) []ir.Finding {
	idx := newLineIndex(src)
	lang := languageOf(filePath)

	var out []ir.Finding
	for _, cr := range sc.compiled {
		if !appliesTo(cr.rule, lang) {
			continue
		}
		for _, re := range cr.patterns {
			for _, loc := range re.FindAllStringIndex(src, -1) {
				start, end := loc[0], loc[1]
				line, lineText := idx.lineAt(start)
				if vetoed(cr.conditions, lineText) {
					continue
				}
				f := findings.New(
					cr.rule.Description,
					cr.rule.Name,
					cr.rule.ID,
					cr.sev,
					cr.rule.Recommendation,
					cr.rule.RuleInfo,
					idx.rangeOf(start, end),
					src[start:end],
					filePath,
				)
				f.ID = makeID(cr.rule.ID, filePath, start, src[start:end])
				f.Overrides = append(f.Overrides, cr.rule.Overrides...)
				for _, fx := range cr.fixIts {
					if !fx.search.MatchString(src[start:end]) {
						continue
					}
					f.Fixes = append(f.Fixes, ir.AutoFix{
						Label:           fx.name,
						DocumentVersion: docVersion,
						RuleID:          cr.rule.ID,
						Edit: ir.TextEdit{
							Start:   start,
							End:     end,
							FixName: fx.name,
							Text:    fx.search.ReplaceAllString(src[start:end], fx.replace),
						},
					})
				}
				// markers live on the finding's line (same-line placement)
				// or the line directly above it
				if rng, ok := suppress.Covers(lineText, line, cr.rule.ID, sc.now()); ok {
					f.SuppressedFindingRange = rng
				} else if line > 0 {
					if rng, ok := suppress.Covers(idx.text(line-1), line-1, cr.rule.ID, sc.now()); ok {
						f.SuppressedFindingRange = rng
					}
				}
				out = append(out, f)
			}
		}
	}

	out = applyOverrides(out)
	if !sc.IncludeSuppressed {
		kept := out[:0]
		for _, f := range out {
			if f.SuppressedFindingRange == nil {
				kept = append(kept, f)
			}
		}
		out = kept
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Range.Start.Line != b.Range.Start.Line {
			return a.Range.Start.Line < b.Range.Start.Line
		}
		if a.Range.Start.Character != b.Range.Start.Character {
			return a.Range.Start.Character < b.Range.Start.Character
		}
		return a.RuleID < b.RuleID
	})
	return out
}

// ScanTree analyzes every non-ignored regular file under root.
func (sc *Scanner) ScanTree(root string) (ir.Run, error) {
	run := ir.Run{
		Source:    root,
		IRVersion: ir.Version,
		Context: ir.Context{
			EnableBestPracticeRules: sc.Settings.EnableBestPracticeRules,
			EnableManualReviewRules: sc.Settings.EnableManualReviewRules,
			IgnoredRules:            sc.Settings.IgnoreRulesList,
		},
	}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, rerr := filepath.Rel(root, p)
		if rerr != nil {
			rel = p
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if p != root && ignoredPath(rel+"/", sc.Settings.IgnoreFilesList) {
				return filepath.SkipDir
			}
			return nil
		}
		if ignoredPath(rel, sc.Settings.IgnoreFilesList) {
			return nil
		}
		info, ierr := d.Info()
		if ierr != nil || info.Size() > maxFileSize {
			return nil
		}
		b, rerr2 := os.ReadFile(p)
		if rerr2 != nil {
			if sc.Logger != nil {
				sc.Logger.Warn("read failed", "file", p, "err", rerr2)
			}
			return nil
		}
		if isBinary(b) {
			return nil
		}
		run.Files = append(run.Files, rel)
		run.Findings = append(run.Findings, sc.ScanFile(rel, string(b), 0)...)
		return nil
	})
	if err != nil {
		return run, err
	}

	// Stable order for reproducible outputs: severity desc, then rule/file/position.
	sort.Slice(run.Findings, func(i, j int) bool {
		a, b := run.Findings[i], run.Findings[j]
		ra, rb := severity.Rank(severity.Parse(a.Severity)), severity.Rank(severity.Parse(b.Severity))
		if ra != rb {
			return ra > rb
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.Range.Start.Line != b.Range.Start.Line {
			return a.Range.Start.Line < b.Range.Start.Line
		}
		return a.Range.Start.Character < b.Range.Start.Character
	})
	sort.Strings(run.Files)
	return run, nil
}

// BuildFixSet collects the findings' fixes into a correlation map for one
// document revision.
func BuildFixSet(fnds []ir.Finding) *fixes.FixSet {
	fs := fixes.NewFixSet()
	for _, f := range fnds {
		for _, fix := range f.Fixes {
			fs.Add(f.Range, f.RuleID, fix)
		}
	}
	return fs
}

// applyOverrides drops a finding when another finding on the same span names
// its rule in Overrides.
func applyOverrides(in []ir.Finding) []ir.Finding {
	if len(in) < 2 {
		return in
	}
	drop := make([]bool, len(in))
	for i, a := range in {
		for _, over := range a.Overrides {
			for j, b := range in {
				if i == j || drop[j] {
					continue
				}
				if strings.EqualFold(b.RuleID, over) && sameSpan(a.Range, b.Range) {
					drop[j] = true
				}
			}
		}
	}
	out := in[:0]
	for i, f := range in {
		if !drop[i] {
			out = append(out, f)
		}
	}
	return out
}

func sameSpan(a, b ir.Range) bool {
	return a.Start == b.Start && a.End == b.End
}

func vetoed(conds []compiledCondition, lineText string) bool {
	for _, c := range conds {
		matched := c.re.MatchString(lineText)
		if c.negate && matched {
			return true
		}
		if !c.negate && !matched {
			return true
		}
	}
	return false
}

func ignoredPath(rel string, globs []string) bool {
	base := path.Base(strings.TrimSuffix(rel, "/"))
	for _, g := range globs {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if ok, _ := path.Match(g, rel); ok {
			return true
		}
		if ok, _ := path.Match(g, base); ok {
			return true
		}
		// directory glob like "out/*" also covers nested paths
		if strings.HasSuffix(g, "/*") && strings.HasPrefix(rel, strings.TrimSuffix(g, "*")) {
			return true
		}
	}
	return false
}

func isBinary(b []byte) bool {
	n := len(b)
	if n > 8000 {
		n = 8000
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}

func makeID(ruleID, file string, offset int, snippet string) string {
	data := fmt.Sprintf("%s|%s|%d|%s", ruleID, file, offset, snippet)
	return fmt.Sprintf("%s-%08x", ruleID, crc32.ChecksumIEEE([]byte(data)))
}

var extLang = map[string]string{
	".go":   "go",
	".js":   "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".py":   "python",
	".rb":   "ruby",
	".php":  "php",
	".java": "java",
	".c":    "c",
	".h":    "c",
	".cc":   "cpp",
	".cpp":  "cpp",
	".hpp":  "cpp",
	".cs":   "csharp",
	".sh":   "shell",
	".yaml": "yaml",
	".yml":  "yaml",
}

func languageOf(p string) string {
	return extLang[strings.ToLower(filepath.Ext(p))]
}

func appliesTo(r rules.Rule, lang string) bool {
	if len(r.AppliesTo) == 0 {
		return true
	}
	for _, l := range r.AppliesTo {
		if strings.EqualFold(l, lang) {
			return true
		}
	}
	return false
}

// lineIndex maps byte offsets to zero-based line/character positions.
type lineIndex struct {
	src    string
	starts []int
}

func newLineIndex(src string) *lineIndex {
	idx := &lineIndex{src: src, starts: []int{0}}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			idx.starts = append(idx.starts, i+1)
		}
	}
	return idx
}

func (li *lineIndex) lineAt(offset int) (int, string) {
	lo, hi := 0, len(li.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if li.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, li.text(lo)
}

func (li *lineIndex) text(line int) string {
	if line < 0 || line >= len(li.starts) {
		return ""
	}
	end := len(li.src)
	if line+1 < len(li.starts) {
		end = li.starts[line+1] - 1
	}
	return li.src[li.starts[line]:end]
}

func (li *lineIndex) posOf(offset int) ir.Position {
	line, _ := li.lineAt(offset)
	return ir.Position{Line: line, Character: offset - li.starts[line]}
}

func (li *lineIndex) rangeOf(start, end int) ir.Range {
	return ir.Range{Start: li.posOf(start), End: li.posOf(end)}
}
