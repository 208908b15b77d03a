package save

import (
	"os"
	"path/filepath"
	"testing"
)

// storeContract exercises the behaviour every Store must share.
func storeContract(t *testing.T, st Store) {
	t.Helper()

	flags, err := st.LoadUnlocked()
	if err != nil {
		t.Fatalf("LoadUnlocked on empty store: %v", err)
	}
	if len(flags) != 0 {
		t.Fatalf("expected empty store, got %v", flags)
	}

	if err := st.SetUnlocked("relic_hunter", true); err != nil {
		t.Fatalf("SetUnlocked: %v", err)
	}
	if err := st.SetUnlocked("night_owl", true); err != nil {
		t.Fatalf("SetUnlocked: %v", err)
	}
	if err := st.SetUnlocked("night_owl", false); err != nil {
		t.Fatalf("SetUnlocked false: %v", err)
	}

	flags, err = st.LoadUnlocked()
	if err != nil {
		t.Fatal(err)
	}
	if !flags["relic_hunter"] {
		t.Error("expected relic_hunter unlocked")
	}
	if flags["night_owl"] {
		t.Error("expected night_owl cleared")
	}
	if len(flags) != 1 {
		t.Errorf("expected 1 unlocked flag, got %v", flags)
	}
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, &MemoryStore{})
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "achievements.json")
	storeContract(t, NewFileStore(path))

	// A second store on the same file sees the persisted flags.
	flags, err := NewFileStore(path).LoadUnlocked()
	if err != nil {
		t.Fatal(err)
	}
	if !flags["relic_hunter"] {
		t.Error("expected flag to survive reopening the file")
	}
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "achievements.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).LoadUnlocked(); err == nil {
		t.Error("expected error for corrupt file")
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "achievements.db")
	st, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	storeContract(t, st)
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}

	st2, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer st2.Close()
	flags, err := st2.LoadUnlocked()
	if err != nil {
		t.Fatal(err)
	}
	if !flags["relic_hunter"] || len(flags) != 1 {
		t.Errorf("unexpected flags after reopen: %v", flags)
	}
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Error("expected error for empty path")
	}
}
