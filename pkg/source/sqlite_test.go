package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/vanderheijden86/navtree/pkg/navtree"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nodes.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// TestSQLitePutAndCount upserts entries.
func TestSQLitePutAndCount(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if err := store.Put(ctx, navtree.Entries{"a": "A", "a.b": "B"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, navtree.Entries{"a.b": "B2", "a.c": "C"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	n, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}
	children, err := store.Children(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if children["a.b"] != "B2" {
		t.Errorf("a.b label = %q, want B2", children["a.b"])
	}
}

// TestSQLiteInitialAndChildren serves levels on demand.
func TestSQLiteInitialAndChildren(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	err := store.Put(ctx, navtree.Entries{
		"a":     "A",
		"a.b":   "B",
		"a.b.c": "C",
		"a_b":   "underscore",
		"a_b.x": "X",
		"A.z":   "upper",
	})
	if err != nil {
		t.Fatal(err)
	}

	initial, err := store.Initial(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(initial) != 2 || initial["a"] != "A" || initial["a_b"] != "underscore" {
		t.Errorf("Initial(0) = %v", initial)
	}

	children, err := store.Children(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	// "_" is not a wildcard and matching is case-sensitive.
	if len(children) != 1 || children["a.b"] != "B" {
		t.Errorf("Children(a) = %v, want only a.b", children)
	}

	loaded, err := store.Load("a_b")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded["a_b.x"] != "X" {
		t.Errorf("Load(a_b) = %v", loaded)
	}
}

// TestSQLiteDrivesTree lazily loads from the store.
func TestSQLiteDrivesTree(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	if err := store.Put(ctx, navtree.Entries{"r": "R", "r.a": "A", "r.b": "B"}); err != nil {
		t.Fatal(err)
	}
	initial, err := store.Initial(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}

	tree := navtree.New(initial, store)
	tree.Toggle("r")
	want := []string{"└─ R", "   ├─ A", "   └─ B"}
	got := tree.Lines()
	if len(got) != len(want) {
		t.Fatalf("got lines %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestEscapeLike escapes LIKE metacharacters.
func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`a_b%c\d`); got != `a\_b\%c\\d` {
		t.Errorf("escapeLike = %q", got)
	}
}
