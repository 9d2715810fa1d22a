// Package rulepack loads external rule files and publishes them alongside
// the builtin rules.
package rulepack

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/sentrylint/internal/rules"
)

// Load reads every .json/.yaml/.yml rule file under dir and returns the
// parsed rules. When strict is true a malformed rule aborts the load;
// otherwise it is skipped and reported in the second return.
func Load(dir string, strict bool) ([]rules.Rule, []string, error) {
	var out []rules.Rule
	var skipped []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		var parse func([]byte, any) error
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			parse = func(b []byte, v any) error { return json.Unmarshal(b, v) }
		case ".yaml", ".yml":
			parse = func(b []byte, v any) error { return yaml.Unmarshal(b, v) }
		default:
			return nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read rule file %s: %w", path, err)
		}
		var pack []rules.Rule
		if err := parse(b, &pack); err != nil {
			if strict {
				return fmt.Errorf("parse rule file %s: %w", path, err)
			}
			skipped = append(skipped, path+": "+err.Error())
			return nil
		}
		for _, r := range pack {
			if err := check(r); err != nil {
				if strict {
					return fmt.Errorf("rule %q in %s: %w", r.ID, path, err)
				}
				skipped = append(skipped, fmt.Sprintf("%s: rule %q: %v", path, r.ID, err))
				continue
			}
			out = append(out, r)
		}
		return nil
	})
	if err != nil {
		return nil, skipped, err
	}
	return out, skipped, nil
}

// LoadAndPublish merges dir's rules with the builtins and installs the
// result as the active snapshot. Missing directory is not an error: the
// builtins alone are published.
func LoadAndPublish(dir string, strict bool) (*rules.Snapshot, []string, error) {
	all := rules.Builtin()
	var skipped []string
	if dir != "" {
		if _, err := os.Stat(dir); err == nil {
			loaded, sk, err := Load(dir, strict)
			if err != nil {
				return nil, sk, err
			}
			all = append(all, loaded...)
			skipped = sk
		}
	}
	return rules.Publish(all), skipped, nil
}

func check(r rules.Rule) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("missing id")
	}
	if r.Severity == "" {
		return fmt.Errorf("missing severity")
	}
	if len(r.Patterns) == 0 {
		return fmt.Errorf("no patterns")
	}
	for _, p := range r.Patterns {
		if err := checkPattern(p); err != nil {
			return err
		}
	}
	for _, c := range r.Conditions {
		if err := checkPattern(c.Pattern); err != nil {
			return err
		}
	}
	for _, f := range r.FixIts {
		if f.Type != "regex-replace" {
			return fmt.Errorf("fix_it %q: unsupported type %q", f.Name, f.Type)
		}
		if _, err := regexp.Compile(f.Search); err != nil {
			return fmt.Errorf("fix_it %q: search: %w", f.Name, err)
		}
	}
	return nil
}

func checkPattern(p rules.Pattern) error {
	switch p.Type {
	case "regex":
		if _, err := regexp.Compile("(?i)" + p.Pattern); err != nil {
			return fmt.Errorf("pattern regex: %w", err)
		}
	case "string", "substring":
		if p.Pattern == "" {
			return fmt.Errorf("empty %s pattern", p.Type)
		}
	default:
		return fmt.Errorf("unknown pattern type %q", p.Type)
	}
	return nil
}
