package context

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultIgnoreDirs are directory names skipped during scanning,
// along with everything beneath them.
var DefaultIgnoreDirs = map[string]bool{
	"node_modules":     true,
	"bower_components": true,
	"venv":             true,
	"env":              true,
	".venv":            true,
	".git":             true,
	".svn":             true,
	".hg":              true,
	".devcli":          true,
	"__pycache__":      true,
	".pytest_cache":    true,
	".mypy_cache":      true,
	".tox":             true,
	"dist":             true,
	"build":            true,
	".next":            true,
	".nuxt":            true,
	"target":           true,
	"out":              true,
	"bin":              true,
	"obj":              true,
	"vendor":           true,
	"coverage":         true,
	".cache":           true,
	".idea":            true,
	".vscode":          true,
}

// hiddenDirAllowlist names dot-directories that are scanned anyway.
var hiddenDirAllowlist = map[string]bool{
	".github": true,
}

// DefaultIgnorePatterns are file name globs skipped during scanning.
var DefaultIgnorePatterns = []string{
	"*.pyc", "*.pyo", "*.pyd",
	"*.so", "*.dll", "*.dylib",
	"*.class", "*.jar", "*.war",
	"*.exe", "*.o", "*.a",
	"*.min.js", "*.min.css",
	"*.map", "*.lock",
	".env", ".env.*",
	"*.log", "*.sqlite", "*.db",
	".DS_Store",
}

// CodeExtensions is the allow-list of extensions treated as source/text.
var CodeExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true,
	".go": true, ".rs": true, ".rb": true, ".php": true,
	".java": true, ".c": true, ".cpp": true, ".h": true, ".hpp": true,
	".html": true, ".css": true, ".scss": true, ".sass": true,
	".json": true, ".yaml": true, ".yml": true, ".toml": true,
	".md": true, ".txt": true, ".sh": true, ".bash": true,
}

// DefaultMaxFileSize is the scan size ceiling in bytes.
const DefaultMaxFileSize = 100_000

// Scanner walks a project tree and returns the source files worth
// showing to a model, in deterministic order.
type Scanner struct {
	RootPath       string
	MaxFileSize    int64
	IgnoreDirs     map[string]bool
	IgnorePatterns []string
}

// NewScanner creates a scanner with the default rules for root.
func NewScanner(root string) *Scanner {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	return &Scanner{
		RootPath:       abs,
		MaxFileSize:    DefaultMaxFileSize,
		IgnoreDirs:     DefaultIgnoreDirs,
		IgnorePatterns: DefaultIgnorePatterns,
	}
}

// ShouldIgnoreDir reports whether a directory (and its descendants)
// is excluded from the scan.
func (s *Scanner) ShouldIgnoreDir(name string) bool {
	if s.IgnoreDirs[name] {
		return true
	}
	if strings.HasPrefix(name, ".") && !hiddenDirAllowlist[name] {
		return true
	}
	return false
}

// ShouldIgnoreFile reports whether a file is excluded from the scan.
// A file whose size cannot be determined is excluded.
func (s *Scanner) ShouldIgnoreFile(path string, size int64, sizeKnown bool) bool {
	name := filepath.Base(path)

	for _, pattern := range s.IgnorePatterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}

	if !sizeKnown || size > s.MaxFileSize {
		return true
	}

	return !CodeExtensions[filepath.Ext(name)]
}

// Scan returns the project's candidate source files sorted
// lexicographically by full path. Unreadable directories are skipped;
// Scan never fails.
func (s *Scanner) Scan() []string {
	var files []string
	s.walk(s.RootPath, &files)
	sort.Strings(files)
	return files
}

func (s *Scanner) walk(dir string, files *[]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(dir, name)

		if entry.IsDir() {
			if s.ShouldIgnoreDir(name) {
				continue
			}
			s.walk(full, files)
			continue
		}

		info, err := entry.Info()
		size := int64(0)
		sizeKnown := err == nil
		if sizeKnown {
			size = info.Size()
		}
		if s.ShouldIgnoreFile(full, size, sizeKnown) {
			continue
		}
		*files = append(*files, full)
	}
}

// FileTree renders the scan result as an indented tree. Directories
// are emitted once, the first time they appear along the sorted path
// sequence.
func (s *Scanner) FileTree() string {
	files := s.Scan()
	if len(files) == 0 {
		return "No files found."
	}

	var lines []string
	lines = append(lines, "📁 "+filepath.Base(s.RootPath)+"/")

	var prevDirs []string
	for _, file := range files {
		rel, err := filepath.Rel(s.RootPath, file)
		if err != nil {
			continue
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		dirs := parts[:len(parts)-1]

		// Shared-prefix compression: only print directories past the
		// point where this path diverges from the previous one.
		common := 0
		for common < len(prevDirs) && common < len(dirs) && prevDirs[common] == dirs[common] {
			common++
		}
		for i := common; i < len(dirs); i++ {
			lines = append(lines, strings.Repeat("  ", i+1)+"📁 "+dirs[i]+"/")
		}

		lines = append(lines, strings.Repeat("  ", len(parts))+"📄 "+parts[len(parts)-1])
		prevDirs = dirs
	}

	return strings.Join(lines, "\n")
}
