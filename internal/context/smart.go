package context

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// language describes how declared symbols are spotted in one language.
// The matching is line-anchored keyword matching, not parsing — it is
// best-effort by design and stays that way.
type language struct {
	name      string
	typeLabel string
	funcLabel string
	typeRe    *regexp.Regexp
	funcRe    *regexp.Regexp
}

// languages maps file extensions to their symbol heuristics.
var languages = map[string]*language{
	".go": {
		name:      "go",
		typeLabel: "type",
		funcLabel: "func",
		typeRe:    regexp.MustCompile(`(?m)^[ \t]*type\s+(\w+)`),
		funcRe:    regexp.MustCompile(`(?m)^[ \t]*func\s+(?:\([^)]+\)\s+)?(\w+)`),
	},
	".py": {
		name:      "python",
		typeLabel: "class",
		funcLabel: "def",
		typeRe:    regexp.MustCompile(`(?m)^[ \t]*class\s+(\w+)`),
		funcRe:    regexp.MustCompile(`(?m)^[ \t]*def\s+(\w+)`),
	},
	".js": {
		name:      "javascript",
		typeLabel: "class",
		funcLabel: "function",
		typeRe:    regexp.MustCompile(`(?m)^[ \t]*class\s+(\w+)`),
		funcRe:    regexp.MustCompile(`(?m)^[ \t]*(?:async\s+)?function\s+(\w+)`),
	},
	".ts": {
		name:      "typescript",
		typeLabel: "class",
		funcLabel: "function",
		typeRe:    regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?(?:class|interface)\s+(\w+)`),
		funcRe:    regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?(?:async\s+)?function\s+(\w+)`),
	},
	".rs": {
		name:      "rust",
		typeLabel: "type",
		funcLabel: "fn",
		typeRe:    regexp.MustCompile(`(?m)^[ \t]*(?:pub\s+)?(?:struct|enum|trait)\s+(\w+)`),
		funcRe:    regexp.MustCompile(`(?m)^[ \t]*(?:pub\s+)?(?:async\s+)?fn\s+(\w+)`),
	},
}

// maxListedFuncs caps the function names listed per file in the
// structure summary.
const maxListedFuncs = 10

// smartSkipDirs is this component's own ignorable-directory set; it is
// intentionally independent of the Scanner.
var smartSkipDirs = map[string]bool{
	"__pycache__":  true,
	"node_modules": true,
	"vendor":       true,
	"venv":         true,
	".venv":        true,
	"env":          true,
	"dist":         true,
	"build":        true,
	"target":       true,
}

// SmartContext builds per-question context: a compact structural
// summary of the whole repo plus full content for only the files the
// question appears to reference.
//
// Mention detection is a lowercased substring match against the file's
// base name, relative path, and stem. Short or common stems can
// over-match, and a question that paraphrases a file without naming it
// will under-match. That trade-off is deliberate; callers should treat
// it as a known limitation.
type SmartContext struct {
	RootPath string

	fileCache     map[string]string
	repoStructure string
}

// NewSmartContext creates a smart context builder for root. The
// structural summary and file contents are cached for the builder's
// lifetime; there is no invalidation short of a new builder.
func NewSmartContext(root string) *SmartContext {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	return &SmartContext{
		RootPath:  abs,
		fileCache: make(map[string]string),
	}
}

// sourceFiles walks the root and returns every file with a recognized
// language extension, sorted by path.
func (sc *SmartContext) sourceFiles() []string {
	var files []string
	var walk func(dir string)
	walk = func(dir string) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() {
				if smartSkipDirs[name] || strings.HasPrefix(name, ".") {
					continue
				}
				walk(filepath.Join(dir, name))
				continue
			}
			if languages[filepath.Ext(name)] != nil {
				files = append(files, filepath.Join(dir, name))
			}
		}
	}
	walk(sc.RootPath)
	sort.Strings(files)
	return files
}

// RepoStructure returns the cached per-file symbol listing, building
// it on first call.
func (sc *SmartContext) RepoStructure() string {
	if sc.repoStructure != "" {
		return sc.repoStructure
	}

	var lines []string
	lines = append(lines, "# Repository Structure\n")

	for _, file := range sc.sourceFiles() {
		lang := languages[filepath.Ext(file)]
		content, ok := sc.loadFile(file)
		if !ok {
			continue
		}

		rel, err := filepath.Rel(sc.RootPath, file)
		if err != nil {
			rel = file
		}

		lines = append(lines, fmt.Sprintf("\n%s:", filepath.ToSlash(rel)))

		for _, m := range lang.typeRe.FindAllStringSubmatch(content, -1) {
			lines = append(lines, fmt.Sprintf("  %s %s", lang.typeLabel, m[1]))
		}

		funcs := lang.funcRe.FindAllStringSubmatch(content, -1)
		for i, m := range funcs {
			if i >= maxListedFuncs {
				lines = append(lines, fmt.Sprintf("  ... and %d more functions", len(funcs)-maxListedFuncs))
				break
			}
			lines = append(lines, fmt.Sprintf("  %s %s()", lang.funcLabel, m[1]))
		}
	}

	sc.repoStructure = strings.Join(lines, "\n")
	return sc.repoStructure
}

// DetectMentionedFiles returns the source files whose base name,
// relative path, or stem appears in the question.
func (sc *SmartContext) DetectMentionedFiles(question string) []string {
	questionLower := strings.ToLower(question)

	var mentioned []string
	for _, file := range sc.sourceFiles() {
		name := filepath.Base(file)
		rel, err := filepath.Rel(sc.RootPath, file)
		if err != nil {
			rel = file
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))

		if strings.Contains(questionLower, strings.ToLower(name)) ||
			strings.Contains(questionLower, strings.ToLower(filepath.ToSlash(rel))) ||
			strings.Contains(questionLower, strings.ToLower(stem)) {
			mentioned = append(mentioned, file)
		}
	}
	return mentioned
}

// loadFile reads a file through the per-path cache.
func (sc *SmartContext) loadFile(path string) (string, bool) {
	if content, ok := sc.fileCache[path]; ok {
		return content, true
	}
	content, ok := ReadFileSafe(path)
	if !ok {
		return "", false
	}
	sc.fileCache[path] = content
	return content, true
}

// FileWithLineNumbers returns a file's content with 1-based line
// numbers, right-aligned to 4 digits.
func (sc *SmartContext) FileWithLineNumbers(path string) string {
	content, ok := sc.loadFile(path)
	if !ok {
		return ""
	}
	return NumberLines(content)
}

// NumberLines prefixes each line with its 1-based number.
func NumberLines(content string) string {
	lines := strings.Split(content, "\n")
	numbered := make([]string, len(lines))
	for i, line := range lines {
		numbered[i] = fmt.Sprintf("%4d: %s", i+1, line)
	}
	return strings.Join(numbered, "\n")
}

// ContextForQuestion builds the context block for a question: always
// the structure summary, then full numbered content for each
// mentioned file.
func (sc *SmartContext) ContextForQuestion(question string) string {
	var parts []string
	parts = append(parts, sc.RepoStructure())
	parts = append(parts, "\n---\n")

	mentioned := sc.DetectMentionedFiles(question)
	if len(mentioned) > 0 {
		parts = append(parts, "# Full File Contents\n")

		for _, file := range mentioned {
			numbered := sc.FileWithLineNumbers(file)
			if numbered == "" {
				continue
			}
			rel, err := filepath.Rel(sc.RootPath, file)
			if err != nil {
				rel = file
			}
			lang := languages[filepath.Ext(file)]
			parts = append(parts, fmt.Sprintf("\n## %s\n", filepath.ToSlash(rel)))
			parts = append(parts, fmt.Sprintf("```%s\n%s\n```\n", lang.name, numbered))
		}
	}

	return strings.Join(parts, "\n")
}
