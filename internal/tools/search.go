package tools

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/devcli-dev/devcli/internal/context"
)

// SearchFiles scans the project and returns every line containing the
// query, grouped by file with line numbers. Matching is
// case-insensitive.
func SearchFiles(root, query string) string {
	scanner := context.NewScanner(root)
	queryLower := strings.ToLower(query)

	var sb strings.Builder
	matches := 0

	for _, file := range scanner.Scan() {
		content, ok := context.ReadFileSafe(file)
		if !ok {
			continue
		}

		rel, err := filepath.Rel(scanner.RootPath, file)
		if err != nil {
			rel = file
		}

		printedHeader := false
		for i, line := range strings.Split(content, "\n") {
			if !strings.Contains(strings.ToLower(line), queryLower) {
				continue
			}
			if !printedHeader {
				fmt.Fprintf(&sb, "%s:\n", filepath.ToSlash(rel))
				printedHeader = true
			}
			fmt.Fprintf(&sb, "  %4d: %s\n", i+1, strings.TrimSpace(line))
			matches++
		}
	}

	if matches == 0 {
		return fmt.Sprintf("No matches for %q", query)
	}
	return fmt.Sprintf("Found %d matches for %q:\n%s", matches, query, sb.String())
}
