package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscoverFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", "print('hi')\n")
	writeFile(t, dir, "notes.txt", "not source\n")
	writeFile(t, dir, "sub/util.js", "var x = 1\n")
	writeFile(t, dir, "node_modules/pkg/index.js", "ignored\n")
	writeFile(t, dir, ".git/config", "ignored\n")
	writeFile(t, dir, "big.py", strings.Repeat("x", 2048)+"\n")

	files := discoverFiles(dir, []string{".py", ".js"}, 1024)

	var names []string
	for _, f := range files {
		rel, _ := filepath.Rel(dir, f)
		names = append(names, filepath.ToSlash(rel))
	}
	want := map[string]bool{"app.py": true, "sub/util.js": true}
	if len(names) != len(want) {
		t.Fatalf("discovered %v, want exactly %v", names, want)
	}
	for _, n := range names {
		if !want[n] {
			t.Errorf("unexpected file %s", n)
		}
	}
}

func TestDiscoverFilesDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"c.py", "a.py", "b.py"} {
		writeFile(t, dir, n, "x = 1\n")
	}
	first := discoverFiles(dir, []string{".py"}, 1024)
	for i := 0; i < 5; i++ {
		again := discoverFiles(dir, []string{".py"}, 1024)
		if len(again) != len(first) {
			t.Fatalf("run %d: %d files, want %d", i, len(again), len(first))
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d: order changed: %v vs %v", i, first, again)
			}
		}
	}
}
