package context

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Builder constructs ProjectSnapshots from a project root.
type Builder struct {
	RootPath string
	scanner  *Scanner
}

// NewBuilder creates a snapshot builder for root.
func NewBuilder(root string) *Builder {
	scanner := NewScanner(root)
	return &Builder{
		RootPath: scanner.RootPath,
		scanner:  scanner,
	}
}

// Build scans the project and reads the first maxFiles results in scan
// order. Files that cannot be read or decoded are skipped, not fatal.
func (b *Builder) Build(maxFiles int) *ProjectSnapshot {
	all := b.scanner.Scan()
	if maxFiles > 0 && len(all) > maxFiles {
		all = all[:maxFiles]
	}

	// Non-nil even with no readable files, so an empty snapshot
	// serializes as "files": [] and loads back.
	records := []FileRecord{}
	totalLines := 0

	for _, path := range all {
		content, ok := ReadFileSafe(path)
		if !ok {
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		rel, err := filepath.Rel(b.RootPath, path)
		if err != nil {
			rel = path
		}

		lines := strings.Count(content, "\n") + 1
		totalLines += lines

		records = append(records, FileRecord{
			Path:         path,
			RelativePath: filepath.ToSlash(rel),
			Extension:    filepath.Ext(path),
			Size:         info.Size(),
			Content:      content,
			Lines:        lines,
		})
	}

	return &ProjectSnapshot{
		RootPath:   b.RootPath,
		Name:       filepath.Base(b.RootPath),
		TotalFiles: len(records),
		TotalLines: totalLines,
		Files:      records,
		FileTree:   b.scanner.FileTree(),
	}
}

// ReadFileSafe reads a file as UTF-8, falling back to a Latin-1
// interpretation of the raw bytes. Returns false if the file cannot
// be read at all.
func ReadFileSafe(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	if utf8.Valid(data) {
		return string(data), true
	}
	return decodeLatin1(data), true
}

// decodeLatin1 maps each byte to the Unicode code point of the same
// value. It cannot fail.
func decodeLatin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

// charsPerToken is the rough token size estimate used for budgeting.
const charsPerToken = 4

// ToPrompt renders the snapshot as a prompt section. Whole files are
// added in snapshot order until the accumulated size crosses 90% of
// the character budget; a file is never split. A one-line notice
// reports how many files were left out.
func (s *ProjectSnapshot) ToPrompt(maxTokens int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Project: %s\n\n", s.Name)
	sb.WriteString("## Overview\n")
	fmt.Fprintf(&sb, "- Total files: %d\n", s.TotalFiles)
	fmt.Fprintf(&sb, "- Total lines of code: %d\n\n", s.TotalLines)
	fmt.Fprintf(&sb, "## File Structure\n%s\n\n", s.FileTree)
	sb.WriteString("## File Contents\n")

	maxChars := maxTokens * charsPerToken
	currentChars := sb.Len()

	filesAdded := 0
	for _, f := range s.Files {
		if float64(currentChars) > float64(maxChars)*0.9 {
			if remaining := s.TotalFiles - filesAdded; remaining > 0 {
				fmt.Fprintf(&sb, "\n... and %d more files (truncated to fit token limit)\n", remaining)
			}
			break
		}

		section := fmt.Sprintf("\n### %s\n```%s\n%s\n```\n",
			f.RelativePath, strings.TrimPrefix(f.Extension, "."), f.Content)
		currentChars += len(section)
		sb.WriteString(section)
		filesAdded++
	}

	return sb.String()
}

// Save serializes the snapshot to JSON at path.
func (s *ProjectSnapshot) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// snapshotDoc mirrors ProjectSnapshot with pointer fields so that
// missing keys can be told apart from zero values.
type snapshotDoc struct {
	RootPath   *string    `json:"root_path"`
	Name       *string    `json:"name"`
	TotalFiles *int       `json:"total_files"`
	TotalLines *int       `json:"total_lines"`
	Files      *[]fileDoc `json:"files"`
	FileTree   *string    `json:"file_tree"`
}

type fileDoc struct {
	Path         *string `json:"path"`
	RelativePath *string `json:"relative_path"`
	Extension    *string `json:"extension"`
	Size         *int64  `json:"size"`
	Content      *string `json:"content"`
	Lines        *int    `json:"lines"`
}

// Load reads a snapshot back from path. Documents missing required
// fields are rejected rather than silently defaulted.
func Load(path string) (*ProjectSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}

	switch {
	case doc.RootPath == nil:
		return nil, fmt.Errorf("invalid snapshot %s: missing root_path", path)
	case doc.Name == nil:
		return nil, fmt.Errorf("invalid snapshot %s: missing name", path)
	case doc.TotalFiles == nil:
		return nil, fmt.Errorf("invalid snapshot %s: missing total_files", path)
	case doc.TotalLines == nil:
		return nil, fmt.Errorf("invalid snapshot %s: missing total_lines", path)
	case doc.Files == nil:
		return nil, fmt.Errorf("invalid snapshot %s: missing files", path)
	case doc.FileTree == nil:
		return nil, fmt.Errorf("invalid snapshot %s: missing file_tree", path)
	}

	snapshot := &ProjectSnapshot{
		RootPath:   *doc.RootPath,
		Name:       *doc.Name,
		TotalFiles: *doc.TotalFiles,
		TotalLines: *doc.TotalLines,
		FileTree:   *doc.FileTree,
		Files:      make([]FileRecord, 0, len(*doc.Files)),
	}

	for i, f := range *doc.Files {
		if f.Path == nil || f.RelativePath == nil || f.Extension == nil ||
			f.Size == nil || f.Content == nil || f.Lines == nil {
			return nil, fmt.Errorf("invalid snapshot %s: files[%d] is missing required fields", path, i)
		}
		snapshot.Files = append(snapshot.Files, FileRecord{
			Path:         *f.Path,
			RelativePath: *f.RelativePath,
			Extension:    *f.Extension,
			Size:         *f.Size,
			Content:      *f.Content,
			Lines:        *f.Lines,
		})
	}

	return snapshot, nil
}
