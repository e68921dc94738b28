package parser

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("## 9:00:00 AM UTC\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestExpandGlobs_GlobPattern(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "2024-06-01-reflections.md", "2024-06-02-reflections.md", "notes.txt")

	result, err := ExpandGlobs([]string{filepath.Join(dir, "*-reflections.md")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(result) != 2 {
		t.Errorf("ExpandGlobs() returned %d files, want 2", len(result))
	}
}

func TestExpandGlobs_NoMatchKeptAsLiteral(t *testing.T) {
	pattern := filepath.Join(t.TempDir(), "*.nonexistent")

	result, err := ExpandGlobs([]string{pattern})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(result) != 1 || result[0] != pattern {
		t.Errorf("ExpandGlobs() = %v, want [%s]", result, pattern)
	}
}

func TestExpandGlobs_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.md", "sub.md/inner.md")

	result, err := ExpandGlobs([]string{filepath.Join(dir, "*.md")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(result) != 1 || filepath.Base(result[0]) != "a.md" {
		t.Errorf("ExpandGlobs() = %v, want only a.md", result)
	}
}

func TestExpandGlobs_DeduplicatedAndSorted(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "c.md", "a.md", "b.md")

	result, err := ExpandGlobs([]string{
		filepath.Join(dir, "*.md"),
		filepath.Join(dir, "a.md"),
	})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("ExpandGlobs() returned %d files, want 3 (deduplicated)", len(result))
	}
	for i := 1; i < len(result); i++ {
		if result[i-1] > result[i] {
			t.Errorf("ExpandGlobs() result not sorted: %v", result)
			break
		}
	}
}

func TestExpandGlobs_InvalidPattern(t *testing.T) {
	if _, err := ExpandGlobs([]string{"[invalid"}); err == nil {
		t.Error("ExpandGlobs() expected error for invalid pattern")
	}
}

func TestExpandGlobs_EmptyInput(t *testing.T) {
	result, err := ExpandGlobs(nil)
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(result) != 0 {
		t.Errorf("ExpandGlobs(nil) = %v, want empty", result)
	}
}
