package rules

import (
	"testing"
)

func TestBuiltin_ReturnsCopy(t *testing.T) {
	a := Builtin()
	if len(a) == 0 {
		t.Fatal("no builtin rules registered")
	}
	a[0].ID = "CLOBBERED"
	b := Builtin()
	if b[0].ID == "CLOBBERED" {
		t.Fatal("Builtin must hand out a copy, not the backing slice")
	}
}

func TestPublishAndGet(t *testing.T) {
	snap := Publish([]Rule{
		{ID: "b-2", Severity: "moderate"},
		{ID: "A-1", Severity: "critical"},
	})
	if snap.Len() != 2 {
		t.Fatalf("Len = %d", snap.Len())
	}

	// List is sorted by ID
	list := snap.List()
	if list[0].ID != "A-1" || list[1].ID != "b-2" {
		t.Fatalf("list order = %s, %s", list[0].ID, list[1].ID)
	}

	// lookup is case-insensitive and trims whitespace
	if _, ok := snap.Get("a-1"); !ok {
		t.Fatal("case-insensitive Get failed")
	}
	if _, ok := snap.Get("  B-2  "); !ok {
		t.Fatal("whitespace-tolerant Get failed")
	}
	if _, ok := snap.Get("missing"); ok {
		t.Fatal("Get invented a rule")
	}
}

func TestSnapshot_IsolatedFromLaterPublish(t *testing.T) {
	old := Publish([]Rule{{ID: "OLD-1", Severity: "moderate"}})
	Publish([]Rule{{ID: "NEW-1", Severity: "critical"}})

	if _, ok := old.Get("OLD-1"); !ok {
		t.Fatal("held snapshot lost its rules after a republish")
	}
	if _, ok := old.Get("NEW-1"); ok {
		t.Fatal("held snapshot sees rules published after it")
	}
	if _, ok := Active().Get("NEW-1"); !ok {
		t.Fatal("Active must reflect the latest publish")
	}

	// restore the builtins for other tests in the package
	Publish(Builtin())
}

func TestActive_LazyPublishesBuiltins(t *testing.T) {
	Publish(Builtin())
	snap := Active()
	if snap.Len() != len(Builtin()) {
		t.Fatalf("active len = %d, builtins = %d", snap.Len(), len(Builtin()))
	}
	if _, ok := snap.Get("CRYPTO-WEAK-HASH"); !ok {
		t.Fatal("builtin rule not reachable through Active")
	}
}
