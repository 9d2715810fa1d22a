package rules

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// The active rule set is an immutable snapshot swapped atomically: a reload
// publishes a new snapshot while in-flight scans keep reading the one they
// started with. No locks on the read path.

type Snapshot struct {
	rules []Rule
	index map[string]int // UPPER(ruleID) -> index
}

var (
	builtinMu sync.Mutex
	builtins  []Rule

	current atomic.Pointer[Snapshot]
)

// Register adds a builtin rule. Called from init() in rule_*.go files.
func Register(r Rule) {
	builtinMu.Lock()
	builtins = append(builtins, r)
	builtinMu.Unlock()
}

// Builtin returns a copy of the compiled-in rules.
func Builtin() []Rule {
	builtinMu.Lock()
	defer builtinMu.Unlock()
	out := make([]Rule, len(builtins))
	copy(out, builtins)
	return out
}

// Publish installs rs as the active snapshot.
func Publish(rs []Rule) *Snapshot {
	snap := build(rs)
	current.Store(snap)
	return snap
}

// Active returns the current snapshot, publishing the builtins on first use.
func Active() *Snapshot {
	if s := current.Load(); s != nil {
		return s
	}
	return Publish(Builtin())
}

func build(rs []Rule) *Snapshot {
	rules := make([]Rule, len(rs))
	copy(rules, rs)
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	idx := make(map[string]int, len(rules))
	for i, r := range rules {
		idx[strings.ToUpper(strings.TrimSpace(r.ID))] = i
	}
	return &Snapshot{rules: rules, index: idx}
}

// List returns the snapshot's rules sorted by ID.
func (s *Snapshot) List() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

func (s *Snapshot) Len() int { return len(s.rules) }

// Get returns a rule by ID (case-insensitive).
func (s *Snapshot) Get(id string) (Rule, bool) {
	i, ok := s.index[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return Rule{}, false
	}
	return s.rules[i], true
}
