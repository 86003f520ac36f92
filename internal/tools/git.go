package tools

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// FileChange is one uncommitted change reported by git status.
type FileChange struct {
	Path   string
	Status string // porcelain code: M, A, D, ??, MM, AM, ...
	Diff   string
}

// Commit is one entry of the recent commit history.
type Commit struct {
	Hash    string
	Author  string
	Email   string
	Date    string
	Message string
}

// GitTracker queries repository state by shelling out to git. Every
// method tolerates "not a repository" (and a missing git binary) by
// returning empty results.
type GitTracker struct {
	RepoPath string
	isRepo   bool
}

// NewGitTracker creates a tracker for repoPath and probes whether it
// is inside a git repository.
func NewGitTracker(repoPath string) *GitTracker {
	t := &GitTracker{RepoPath: repoPath}
	_, err := t.run("rev-parse", "--git-dir")
	t.isRepo = err == nil
	return t
}

// IsRepo reports whether the path is a git repository.
func (t *GitTracker) IsRepo() bool {
	return t.isRepo
}

func (t *GitTracker) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = t.RepoPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\n%s", args[0], err, stderr.String())
	}
	return stdout.String(), nil
}

// UncommittedChanges returns all staged and unstaged changes.
func (t *GitTracker) UncommittedChanges() []FileChange {
	if !t.isRepo {
		return nil
	}

	out, err := t.run("status", "--short")
	if err != nil {
		return nil
	}

	var changes []FileChange
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			continue
		}
		changes = append(changes, FileChange{
			Path:   strings.TrimSpace(parts[1]),
			Status: strings.TrimSpace(parts[0]),
		})
	}
	return changes
}

// Diff returns the diff for one file, staged or unstaged.
func (t *GitTracker) Diff(path string, staged bool) string {
	if !t.isRepo {
		return ""
	}

	args := []string{"diff"}
	if staged {
		args = append(args, "--cached")
	}
	args = append(args, path)

	out, err := t.run(args...)
	if err != nil {
		return ""
	}
	return out
}

// AllDiffs maps each changed file to its diff, trying the unstaged
// diff first and falling back to the staged one.
func (t *GitTracker) AllDiffs() map[string]string {
	diffs := make(map[string]string)
	for _, change := range t.UncommittedChanges() {
		diff := t.Diff(change.Path, false)
		if diff == "" {
			diff = t.Diff(change.Path, true)
		}
		if diff != "" {
			diffs[change.Path] = diff
		}
	}
	return diffs
}

// RecentCommits returns up to count entries of commit history, newest
// first.
func (t *GitTracker) RecentCommits(count int) []Commit {
	if !t.isRepo {
		return nil
	}

	out, err := t.run("log", fmt.Sprintf("-%d", count), "--pretty=format:%H|%an|%ae|%ad|%s")
	if err != nil {
		return nil
	}

	var commits []Commit
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 5)
		if len(parts) != 5 {
			continue
		}
		commits = append(commits, Commit{
			Hash:    parts[0][:7],
			Author:  parts[1],
			Email:   parts[2],
			Date:    parts[3],
			Message: parts[4],
		})
	}
	return commits
}

// ChangedSince returns the files changed since a git reference.
func (t *GitTracker) ChangedSince(ref string) []string {
	if !t.isRepo {
		return nil
	}

	out, err := t.run("diff", "--name-only", ref)
	if err != nil {
		return nil
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return files
}

// FileAtCommit returns a file's content at a git reference, or empty.
func (t *GitTracker) FileAtCommit(path, ref string) string {
	if !t.isRepo {
		return ""
	}
	out, err := t.run("show", ref+":"+path)
	if err != nil {
		return ""
	}
	return out
}

// statusDescriptions maps porcelain codes to readable labels for the
// context string; unknown combinations pass through verbatim.
var statusDescriptions = map[string]string{
	"M":  "Modified",
	"A":  "Added",
	"D":  "Deleted",
	"??": "Untracked",
	"MM": "Modified (staged & unstaged)",
	"AM": "Added & modified",
}

// ContextString formats the repository state as a prompt section.
func (t *GitTracker) ContextString() string {
	if !t.isRepo {
		return "# Not a git repository\n"
	}

	var lines []string
	lines = append(lines, "# Git Context\n")

	if changes := t.UncommittedChanges(); len(changes) > 0 {
		lines = append(lines, "## Uncommitted Changes:")
		for _, change := range changes {
			desc, ok := statusDescriptions[change.Status]
			if !ok {
				desc = change.Status
			}
			lines = append(lines, fmt.Sprintf("  - %s (%s)", change.Path, desc))
		}
		lines = append(lines, "")
	}

	if commits := t.RecentCommits(3); len(commits) > 0 {
		lines = append(lines, "## Recent Commits:")
		for _, commit := range commits {
			lines = append(lines, fmt.Sprintf("  - %s: %s", commit.Hash, commit.Message))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
