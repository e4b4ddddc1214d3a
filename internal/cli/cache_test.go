package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		p := filepath.Join(root, n)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestClearDir(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.json", "sub/b.json", "sub/deeper/c.json")

	if got := clearDir(root); got != 3 {
		t.Errorf("clearDir() = %d, want 3", got)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("root still has %d entries", len(entries))
	}
}

func TestClearDirMissing(t *testing.T) {
	if got := clearDir(filepath.Join(t.TempDir(), "nope")); got != 0 {
		t.Errorf("clearDir() = %d, want 0", got)
	}
}

func TestCacheClearKeepsReceipts(t *testing.T) {
	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)
	base := filepath.Join(cache, appName)
	writeFiles(t, base, "index/one.json", "index/two.json", "ledger/receipt.json")

	c := New(&bytes.Buffer{}, LogInfo)
	var out bytes.Buffer
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	if !strings.Contains(out.String(), "Cleared 2") {
		t.Errorf("output = %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(base, "ledger", "receipt.json")); err != nil {
		t.Errorf("receipt removed without --all: %v", err)
	}

	out.Reset()
	root = c.RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "clear", "--all"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear --all: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "ledger", "receipt.json")); !os.IsNotExist(err) {
		t.Errorf("receipt still present after --all")
	}
}
