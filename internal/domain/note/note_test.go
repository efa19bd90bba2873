package note

import (
	"testing"
	"time"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	n := New("hello", "u1", t0)

	if n.ID().String() == "" {
		t.Fatal("expected generated id")
	}
	if !n.CreatedAt().Equal(n.UpdatedAt()) {
		t.Errorf("expected created_at == updated_at, got %v and %v", n.CreatedAt(), n.UpdatedAt())
	}
	if n.Metadata() == nil || len(n.Metadata()) != 0 {
		t.Errorf("expected empty metadata, got %v", n.Metadata())
	}
	if !n.OwnedBy("u1") || n.OwnedBy("u2") {
		t.Error("ownership check mismatch")
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	a := New("a", "u1", t0)
	b := New("a", "u1", t0)
	if a.ID() == b.ID() {
		t.Fatal("expected distinct ids")
	}
}

func TestWithContent(t *testing.T) {
	n := New("hello", "u1", t0)
	later := t0.Add(time.Minute)

	same := n.WithContent("hello", later)
	if !same.UpdatedAt().Equal(t0) {
		t.Errorf("identical content must not advance updated_at, got %v", same.UpdatedAt())
	}

	changed := n.WithContent("bye", later)
	if changed.Content() != "bye" {
		t.Errorf("expected content %q, got %q", "bye", changed.Content())
	}
	if !changed.UpdatedAt().Equal(later) {
		t.Errorf("expected updated_at %v, got %v", later, changed.UpdatedAt())
	}
	if n.Content() != "hello" {
		t.Error("original note must be unchanged")
	}
}

func TestWithContent_ClockSkew(t *testing.T) {
	n := New("hello", "u1", t0)
	changed := n.WithContent("bye", t0.Add(-time.Hour))
	if changed.UpdatedAt().Before(changed.CreatedAt()) {
		t.Fatal("updated_at must never precede created_at")
	}
}

func TestWithContent_UpdatedAtNeverRegresses(t *testing.T) {
	n := New("hello", "u1", t0)
	first := n.WithContent("bye", t0.Add(2*time.Hour))
	second := first.WithContent("again", t0.Add(time.Hour))
	if second.UpdatedAt().Before(first.UpdatedAt()) {
		t.Fatalf("updated_at went backwards: %v -> %v", first.UpdatedAt(), second.UpdatedAt())
	}
	if second.Content() != "again" {
		t.Errorf("expected content %q, got %q", "again", second.Content())
	}
}

func TestWithMetadata_ShallowMerge(t *testing.T) {
	n := New("x", "u1", t0).WithMetadata(map[string]any{
		"k":      "v",
		"nested": map[string]any{"a": 1, "b": 2},
	})

	m := n.WithMetadata(map[string]any{
		"nested": map[string]any{"c": 3},
		"new":    true,
	})

	if m.Metadata()["k"] != "v" {
		t.Errorf("expected untouched key to survive, got %v", m.Metadata()["k"])
	}
	nested, ok := m.Metadata()["nested"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map, got %T", m.Metadata()["nested"])
	}
	if len(nested) != 1 || nested["c"] != 3 {
		t.Errorf("expected nested value replaced, got %v", nested)
	}
	if _, ok := n.Metadata()["new"]; ok {
		t.Error("original metadata must be unchanged")
	}
	if !m.UpdatedAt().Equal(t0) {
		t.Error("metadata merge must not advance updated_at")
	}
}

func TestClone_DetachesMetadata(t *testing.T) {
	n := New("x", "u1", t0).WithMetadata(map[string]any{"k": "v"})
	c := n.Clone()
	c.Metadata()["k"] = "changed"
	if n.Metadata()["k"] != "v" {
		t.Error("clone must not share metadata map")
	}
}
