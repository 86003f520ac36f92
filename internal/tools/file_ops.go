package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/devcli-dev/devcli/internal/context"
)

// FileEdit is an immutable before/after content pair representing one
// proposed file mutation. OldContent is the file's content at the time
// the edit was computed; staleness is not transactionally enforced.
type FileEdit struct {
	FilePath    string
	OldContent  string
	NewContent  string
	Description string
}

// FileOps manages file reads, writes, and edits rooted at a working
// directory, with an optional pending queue for batch application.
type FileOps struct {
	RootPath string
	pending  []FileEdit
}

// NewFileOps creates a file operations manager rooted at root.
func NewFileOps(root string) *FileOps {
	return &FileOps{RootPath: root}
}

// resolve joins relative paths onto the root.
func (f *FileOps) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.RootPath, path)
}

// ReadFile returns a file's content, optionally with 1-based
// right-aligned line numbers.
func (f *FileOps) ReadFile(path string, withLineNumbers bool) (string, error) {
	path = f.resolve(path)
	content, ok := context.ReadFileSafe(path)
	if !ok {
		return "", fmt.Errorf("failed to read %s", path)
	}
	if withLineNumbers {
		return context.NumberLines(content), nil
	}
	return content, nil
}

// WriteFile writes content to path, creating missing parent
// directories when createDirs is set.
func (f *FileOps) WriteFile(path, content string, createDirs bool) error {
	path = f.resolve(path)

	if createDirs {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create directories: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// EditBySearch produces an edit replacing search with replace. The
// search text must occur exactly once in the file.
func (f *FileOps) EditBySearch(path, search, replace, description string) (*FileEdit, error) {
	oldContent, err := f.ReadFile(path, false)
	if err != nil {
		return nil, err
	}

	occurrences := strings.Count(oldContent, search)
	switch {
	case occurrences == 0:
		return nil, fmt.Errorf("search text not found in %s", path)
	case occurrences > 1:
		return nil, fmt.Errorf("search text appears %d times in %s - must be unique", occurrences, path)
	}

	return &FileEdit{
		FilePath:    f.resolve(path),
		OldContent:  oldContent,
		NewContent:  strings.Replace(oldContent, search, replace, 1),
		Description: description,
	}, nil
}

// EditByLines produces an edit splicing newLines in place of the
// 1-based inclusive range start..end.
func (f *FileOps) EditByLines(path string, start, end int, newLines []string, description string) (*FileEdit, error) {
	oldContent, err := f.ReadFile(path, false)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(oldContent, "\n")
	if start < 1 || end > len(lines) || start > end {
		return nil, fmt.Errorf("invalid line range %d-%d (file has %d lines)", start, end, len(lines))
	}

	spliced := make([]string, 0, len(lines)-(end-start+1)+len(newLines))
	spliced = append(spliced, lines[:start-1]...)
	spliced = append(spliced, newLines...)
	spliced = append(spliced, lines[end:]...)

	return &FileEdit{
		FilePath:    f.resolve(path),
		OldContent:  oldContent,
		NewContent:  strings.Join(spliced, "\n"),
		Description: description,
	}, nil
}

// Diff renders a unified diff between an edit's old and new content,
// labeled with the file path on both sides.
func (f *FileOps) Diff(edit *FileEdit) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(edit.OldContent),
		B:        difflib.SplitLines(edit.NewContent),
		FromFile: "a/" + edit.FilePath,
		ToFile:   "b/" + edit.FilePath,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return text
}

// Apply writes an edit's new content to its file. The target must
// still exist; an edit whose file has been deleted since it was
// computed fails instead of resurrecting the file. With showDiff set,
// the diff is printed before the write happens.
func (f *FileOps) Apply(edit *FileEdit, showDiff bool) error {
	target := f.resolve(edit.FilePath)
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("cannot apply %q: %w", edit.Description, err)
	}

	if showDiff {
		fmt.Printf("\n=== %s ===\n%s\n", edit.Description, f.Diff(edit))
	}
	return f.WriteFile(edit.FilePath, edit.NewContent, true)
}

// QueueEdit appends an edit to the pending queue.
func (f *FileOps) QueueEdit(edit *FileEdit) {
	f.pending = append(f.pending, *edit)
}

// Pending returns the queued edits.
func (f *FileOps) Pending() []FileEdit {
	return f.pending
}

// PendingSummary renders the pending edits with their diffs.
func (f *FileOps) PendingSummary() string {
	if len(f.pending) == 0 {
		return "No pending edits"
	}

	var sb strings.Builder
	for i, edit := range f.pending {
		fmt.Fprintf(&sb, "\n%d. %s\n", i+1, edit.Description)
		sb.WriteString(f.Diff(&edit))
	}
	return sb.String()
}

// ApplyAllPending applies every queued edit and reports how many
// succeeded and failed. The queue is drained regardless of individual
// failures.
func (f *FileOps) ApplyAllPending() (applied, failed int) {
	for i := range f.pending {
		if err := f.Apply(&f.pending[i], false); err != nil {
			failed++
		} else {
			applied++
		}
	}
	f.pending = nil
	return applied, failed
}

// ClearPending discards all queued edits.
func (f *FileOps) ClearPending() {
	f.pending = nil
}

// Backup copies a file's current content to a sibling with ".backup"
// appended to its existing suffix and returns the backup path.
func (f *FileOps) Backup(path string) (string, error) {
	content, err := f.ReadFile(path, false)
	if err != nil {
		return "", err
	}

	backupPath := f.resolve(path) + ".backup"
	if err := f.WriteFile(backupPath, content, false); err != nil {
		return "", err
	}
	return backupPath, nil
}
