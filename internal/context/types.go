package context

// FileRecord holds the captured state of a single scanned file.
// Lines is always count of newline characters + 1 for non-empty content.
type FileRecord struct {
	Path         string `json:"path"`
	RelativePath string `json:"relative_path"`
	Extension    string `json:"extension"`
	Size         int64  `json:"size"`
	Content      string `json:"content"`
	Lines        int    `json:"lines"`
}

// ProjectSnapshot is a persisted point-in-time capture of a project's
// scanned files. TotalFiles always equals len(Files) and TotalLines is
// the sum of the per-file line counts.
type ProjectSnapshot struct {
	RootPath   string       `json:"root_path"`
	Name       string       `json:"name"`
	TotalFiles int          `json:"total_files"`
	TotalLines int          `json:"total_lines"`
	Files      []FileRecord `json:"files"`
	FileTree   string       `json:"file_tree"`
}
