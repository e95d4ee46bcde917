package history

import (
	"os"
	"testing"
	"time"
)

func TestAddPrependsAndStamps(t *testing.T) {
	l := New(t.TempDir())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	if err := l.Add(Entry{Name: "first", UserID: "u1"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := l.Add(Entry{Name: "second", UserID: "u2"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	entries, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "second" || entries[1].Name != "first" {
		t.Fatalf("entries = %+v", entries)
	}
	if !entries[0].CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt = %v, want %v", entries[0].CreatedAt, fixed)
	}
}

func TestLoadMissingAndCorrupt(t *testing.T) {
	l := New(t.TempDir())
	entries, err := l.Load()
	if err != nil || len(entries) != 0 {
		t.Fatalf("missing file: %v %v", entries, err)
	}

	if err := os.WriteFile(l.Path(), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	entries, err = l.Load()
	if err != nil || len(entries) != 0 {
		t.Fatalf("corrupt file: %v %v", entries, err)
	}
}

func TestForUser(t *testing.T) {
	l := New(t.TempDir())
	for _, e := range []Entry{{Name: "a", UserID: "u1"}, {Name: "b", UserID: "u2"}, {Name: "c", UserID: "u1"}} {
		if err := l.Add(e); err != nil {
			t.Fatal(err)
		}
	}
	mine, err := l.ForUser("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 2 || mine[0].Name != "c" || mine[1].Name != "a" {
		t.Errorf("ForUser = %+v", mine)
	}
}

func TestDeleteOld(t *testing.T) {
	l := New(t.TempDir())
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if err := l.Add(Entry{Name: "old", CreatedAt: now.AddDate(0, 0, -30)}); err != nil {
		t.Fatal(err)
	}
	if err := l.Add(Entry{Name: "new", CreatedAt: now.AddDate(0, 0, -1)}); err != nil {
		t.Fatal(err)
	}

	n, err := l.DeleteOld(7)
	if err != nil {
		t.Fatalf("DeleteOld: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}
	entries, _ := l.Load()
	if len(entries) != 1 || entries[0].Name != "new" {
		t.Errorf("remaining = %+v", entries)
	}
}
