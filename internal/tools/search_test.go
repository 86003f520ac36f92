package tools

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSearchFiles(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)

	os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n\n// Handler does things\nfunc Handler() {}\n"), 0644)
	os.WriteFile(filepath.Join(dir, "b.go"), []byte("package b\n"), 0644)

	result := SearchFiles(dir, "handler")
	if !strings.Contains(result, "Found 2 matches") {
		t.Errorf("Expected 2 case-insensitive matches:\n%s", result)
	}
	if !strings.Contains(result, "a.go:") {
		t.Errorf("Expected matches grouped under a.go:\n%s", result)
	}
	if !strings.Contains(result, "3: // Handler does things") {
		t.Errorf("Expected line number with content:\n%s", result)
	}
	if strings.Contains(result, "b.go:") {
		t.Errorf("File without matches should not appear:\n%s", result)
	}
}

func TestSearchFilesNoMatches(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)

	os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n"), 0644)

	result := SearchFiles(dir, "zebra")
	if result != `No matches for "zebra"` {
		t.Errorf("Unexpected result: %q", result)
	}
}
