package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/devcli-dev/devcli/internal/context"
)

// FileCompleter implements readline.AutoCompleter for @ file
// references, backed by the project scanner so completion offers the
// same files that end up in context.
type FileCompleter struct {
	workingDir string
}

// NewFileCompleter creates a file completer rooted at workingDir.
func NewFileCompleter(workingDir string) *FileCompleter {
	return &FileCompleter{workingDir: workingDir}
}

// Do implements readline.AutoCompleter.
func (f *FileCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line[:pos])
	lastAtIdx := strings.LastIndex(lineStr, "@")
	if lastAtIdx == -1 {
		return nil, 0
	}

	prefix := lineStr[lastAtIdx+1:]
	prefixLower := strings.ToLower(prefix)

	var candidates [][]rune
	for _, file := range projectFiles(f.workingDir) {
		if prefix == "" || strings.HasPrefix(strings.ToLower(file), prefixLower) {
			candidates = append(candidates, []rune(file[len(prefix):]))
		}
	}
	return candidates, len(prefix)
}

// projectFiles lists scannable files relative to root, slash-separated.
func projectFiles(root string) []string {
	scanner := context.NewScanner(root)

	var files []string
	for _, path := range scanner.Scan() {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		files = append(files, filepath.ToSlash(rel))
	}
	return files
}

// selectFile shows an interactive fuzzy picker over project files.
func selectFile(workingDir string) (string, error) {
	files := projectFiles(workingDir)
	if len(files) == 0 {
		return "", fmt.Errorf("no files found in %s", workingDir)
	}

	searcher := func(input string, index int) bool {
		return strings.Contains(strings.ToLower(files[index]), strings.ToLower(input))
	}

	prompt := promptui.Select{
		Label:             "Select a file",
		Items:             files,
		Size:              20,
		Searcher:          searcher,
		StartInSearchMode: true,
		HideSelected:      true,
	}

	_, result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return result, nil
}

// expandFileReferences replaces each @path in message with the file's
// content in a fenced block. A bare trailing @ opens the picker.
func expandFileReferences(message, workingDir string) (string, error) {
	parts := strings.Split(message, "@")
	if len(parts) == 1 {
		return message, nil
	}

	result := parts[0]
	for i := 1; i < len(parts); i++ {
		part := parts[i]
		words := strings.Fields(part)

		var filePath, remainingText string
		if len(words) == 0 {
			selected, err := selectFile(workingDir)
			if err != nil {
				return "", fmt.Errorf("file selection cancelled: %w", err)
			}
			filePath = selected
		} else {
			filePath = words[0]
			// Slice past the name's actual position: part may carry
			// leading whitespace between the @ and the name.
			idx := strings.Index(part, filePath)
			remainingText = part[idx+len(filePath):]
		}

		content, ok := context.ReadFileSafe(filepath.Join(workingDir, filePath))
		if !ok {
			return "", fmt.Errorf("failed to read file %s", filePath)
		}

		ext := strings.TrimPrefix(filepath.Ext(filePath), ".")
		result += fmt.Sprintf("\n\n**File: `%s`**\n```%s\n%s\n```%s",
			filePath, ext, context.NumberLines(content), remainingText)
	}
	return result, nil
}
