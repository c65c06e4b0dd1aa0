package scope

import "testing"

func TestGetDeepestPrefixWins(t *testing.T) {
	b := NewBuilder()
	if err := b.Add("crates", "root"); err != nil {
		t.Fatalf("Add(crates): %v", err)
	}
	if err := b.Add("crates/mono", "mono"); err != nil {
		t.Fatalf("Add(crates/mono): %v", err)
	}
	set := b.Build()

	idx, ok := set.Get("crates/mono/src/lib.rs")
	if !ok {
		t.Fatalf("expected a match")
	}
	if set.Name(idx) != "mono" {
		t.Errorf("Get(crates/mono/src/lib.rs) = %q, want mono", set.Name(idx))
	}

	idx, ok = set.Get("crates/other/x")
	if !ok {
		t.Fatalf("expected a match")
	}
	if set.Name(idx) != "root" {
		t.Errorf("Get(crates/other/x) = %q, want root", set.Name(idx))
	}
}

func TestGetNoMatch(t *testing.T) {
	b := NewBuilder()
	_ = b.Add("crates/mono", "mono")
	set := b.Build()

	if _, ok := set.Get("docs/readme.md"); ok {
		t.Errorf("expected no match outside registered scopes")
	}
}

func TestAddRejectsAbsolutePath(t *testing.T) {
	b := NewBuilder()
	if err := b.Add("/abs/path", "x"); err == nil {
		t.Errorf("expected ErrPathAbsolute")
	}
}

func TestAddRejectsDuplicatePath(t *testing.T) {
	b := NewBuilder()
	if err := b.Add("crates/mono", "mono"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Add("crates/mono", "other"); err == nil {
		t.Errorf("expected ErrPathExists for duplicate path")
	}
}
