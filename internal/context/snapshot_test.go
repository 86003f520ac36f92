package context

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildTotals(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)

	writeFile(t, dir, "a.go", "package a\n\nfunc A() {}\n")
	writeFile(t, dir, "b.go", "package b\n")

	snapshot := NewBuilder(dir).Build(0)

	if snapshot.TotalFiles != len(snapshot.Files) {
		t.Errorf("TotalFiles %d != len(Files) %d", snapshot.TotalFiles, len(snapshot.Files))
	}
	if snapshot.TotalFiles != 2 {
		t.Errorf("Expected 2 files, got %d", snapshot.TotalFiles)
	}

	// a.go has 3 newlines -> 4 lines, b.go has 1 -> 2 lines.
	if snapshot.TotalLines != 6 {
		t.Errorf("Expected 6 total lines, got %d", snapshot.TotalLines)
	}

	sum := 0
	for _, f := range snapshot.Files {
		if f.Lines != strings.Count(f.Content, "\n")+1 {
			t.Errorf("%s: Lines %d inconsistent with content", f.RelativePath, f.Lines)
		}
		sum += f.Lines
	}
	if sum != snapshot.TotalLines {
		t.Errorf("Per-file lines sum %d != TotalLines %d", sum, snapshot.TotalLines)
	}
}

func TestBuildMaxFiles(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)

	writeFile(t, dir, "a.go", "package a\n")
	writeFile(t, dir, "b.go", "package b\n")
	writeFile(t, dir, "c.go", "package c\n")

	snapshot := NewBuilder(dir).Build(2)
	if snapshot.TotalFiles != 2 {
		t.Errorf("Expected 2 files with cap, got %d", snapshot.TotalFiles)
	}
	// Scan order is lexicographic, so the cap keeps a.go and b.go.
	if snapshot.Files[0].RelativePath != "a.go" || snapshot.Files[1].RelativePath != "b.go" {
		t.Errorf("Unexpected files kept: %s, %s",
			snapshot.Files[0].RelativePath, snapshot.Files[1].RelativePath)
	}
}

func TestToPrompt(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)

	writeFile(t, dir, "a.go", "package a\n")
	writeFile(t, dir, "b.go", "package b\n")

	snapshot := NewBuilder(dir).Build(0)

	// Generous budget: every file appears whole, no truncation notice.
	prompt := snapshot.ToPrompt(100000)
	for _, want := range []string{"# Project:", "### a.go", "### b.go", "```go\npackage a\n\n```"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected %q in prompt:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "truncated") {
		t.Errorf("Unexpected truncation notice:\n%s", prompt)
	}

	// Tiny budget: the header alone crosses it, so no files fit.
	prompt = snapshot.ToPrompt(1)
	if strings.Contains(prompt, "### a.go") {
		t.Errorf("No file should fit a 1-token budget:\n%s", prompt)
	}
	if !strings.Contains(prompt, "... and 2 more files (truncated to fit token limit)") {
		t.Errorf("Expected truncation notice:\n%s", prompt)
	}
}

func TestToPromptPartialBudget(t *testing.T) {
	// First file is ~3000 chars, so a 600-token budget (2400 chars,
	// 2160 threshold) admits it whole and then stops.
	first := strings.Repeat("a", 2990) + "tail-a\n"
	snapshot := &ProjectSnapshot{
		RootPath:   "/p",
		Name:       "p",
		TotalFiles: 3,
		TotalLines: 3,
		FileTree:   "📁 p/",
		Files: []FileRecord{
			{Path: "/p/a.go", RelativePath: "a.go", Extension: ".go", Size: int64(len(first)), Content: first, Lines: 2},
			{Path: "/p/b.go", RelativePath: "b.go", Extension: ".go", Size: 10, Content: "package b\n", Lines: 2},
			{Path: "/p/c.go", RelativePath: "c.go", Extension: ".go", Size: 10, Content: "package c\n", Lines: 2},
		},
	}

	prompt := snapshot.ToPrompt(600)

	// The admitted file appears complete, never cut mid-content.
	if !strings.Contains(prompt, "tail-a\n\n```") {
		t.Errorf("First file should be included whole:\n%s", prompt[len(prompt)-200:])
	}
	if strings.Contains(prompt, "### b.go") || strings.Contains(prompt, "### c.go") {
		t.Errorf("Files past the budget should be absent:\n%s", prompt)
	}
	if !strings.Contains(prompt, "... and 2 more files (truncated to fit token limit)") {
		t.Errorf("Notice should count the omitted remainder:\n%s", prompt)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)

	writeFile(t, dir, "a.go", "package a\n")

	snapshot := NewBuilder(dir).Build(0)
	path := filepath.Join(dir, "snapshot.json")
	if err := snapshot.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Name != snapshot.Name {
		t.Errorf("Name mismatch: %q vs %q", loaded.Name, snapshot.Name)
	}
	if loaded.TotalFiles != snapshot.TotalFiles || loaded.TotalLines != snapshot.TotalLines {
		t.Errorf("Totals mismatch after round trip")
	}
	if loaded.Files[0].Content != "package a\n" {
		t.Errorf("Content mismatch: %q", loaded.Files[0].Content)
	}
}

func TestEmptySnapshotRoundTrip(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)

	snapshot := NewBuilder(dir).Build(0)
	if snapshot.TotalFiles != 0 {
		t.Fatalf("Expected empty snapshot, got %d files", snapshot.TotalFiles)
	}

	path := filepath.Join(dir, "snapshot.json")
	if err := snapshot.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// An empty files list must serialize as [], not null, so the
	// document still loads.
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), `"files": null`) {
		t.Errorf("Empty snapshot serialized files as null:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed for empty snapshot: %v", err)
	}
	if loaded.TotalFiles != 0 || len(loaded.Files) != 0 {
		t.Errorf("Unexpected loaded snapshot: %+v", loaded)
	}
}

func TestLoadRejectsMissingFields(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "bad.json")
	doc := `{"root_path": "/x", "name": "x", "total_files": 0, "files": [], "file_tree": ""}`
	os.WriteFile(path, []byte(doc), 0644)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for snapshot missing total_lines")
	}
	if !strings.Contains(err.Error(), "missing total_lines") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoadRejectsIncompleteFileEntry(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "bad.json")
	doc := `{"root_path": "/x", "name": "x", "total_files": 1, "total_lines": 1,
		"files": [{"path": "/x/a.go", "relative_path": "a.go"}], "file_tree": ""}`
	os.WriteFile(path, []byte(doc), 0644)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for file entry missing fields")
	}
	if !strings.Contains(err.Error(), "files[0]") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestReadFileSafeLatin1Fallback(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)

	// 0xE9 is not valid UTF-8 on its own; Latin-1 reads it as é.
	path := filepath.Join(dir, "latin1.txt")
	os.WriteFile(path, []byte{'c', 'a', 'f', 0xE9}, 0644)

	content, ok := ReadFileSafe(path)
	if !ok {
		t.Fatal("ReadFileSafe should not fail on non-UTF-8 content")
	}
	if content != "café" {
		t.Errorf("Expected Latin-1 decoded content, got %q", content)
	}
}

func TestReadFileSafeMissing(t *testing.T) {
	if _, ok := ReadFileSafe("/nonexistent/devcli/file.go"); ok {
		t.Error("Expected failure for missing file")
	}
}
