package tools

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func runGit(t *testing.T, dir string, args ...string) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}

func setupRepo(t *testing.T) string {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := setupTestDir(t)
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test")
	return dir
}

func TestNonRepo(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)

	tracker := NewGitTracker(dir)

	if tracker.IsRepo() {
		t.Fatal("Temp dir should not be a repository")
	}
	if changes := tracker.UncommittedChanges(); changes != nil {
		t.Errorf("Expected no changes, got: %v", changes)
	}
	if commits := tracker.RecentCommits(5); commits != nil {
		t.Errorf("Expected no commits, got: %v", commits)
	}
	if diff := tracker.Diff("anything", false); diff != "" {
		t.Errorf("Expected empty diff, got: %q", diff)
	}
	if files := tracker.ChangedSince("HEAD"); files != nil {
		t.Errorf("Expected no changed files, got: %v", files)
	}
	if got := tracker.ContextString(); got != "# Not a git repository\n" {
		t.Errorf("Unexpected context string: %q", got)
	}
}

func TestUncommittedChanges(t *testing.T) {
	dir := setupRepo(t)
	defer os.RemoveAll(dir)

	os.WriteFile(filepath.Join(dir, "new.txt"), []byte("hello"), 0644)

	tracker := NewGitTracker(dir)
	changes := tracker.UncommittedChanges()
	if len(changes) != 1 {
		t.Fatalf("Expected 1 change, got %d: %v", len(changes), changes)
	}
	if changes[0].Status != "??" || changes[0].Path != "new.txt" {
		t.Errorf("Unexpected change: %+v", changes[0])
	}
}

func TestRecentCommitsAndDiff(t *testing.T) {
	dir := setupRepo(t)
	defer os.RemoveAll(dir)

	os.WriteFile(filepath.Join(dir, "file.txt"), []byte("original\n"), 0644)
	runGit(t, dir, "add", "file.txt")
	runGit(t, dir, "commit", "-m", "initial commit")

	tracker := NewGitTracker(dir)

	commits := tracker.RecentCommits(5)
	if len(commits) != 1 {
		t.Fatalf("Expected 1 commit, got %d", len(commits))
	}
	if commits[0].Message != "initial commit" {
		t.Errorf("Unexpected message: %q", commits[0].Message)
	}
	if len(commits[0].Hash) != 7 {
		t.Errorf("Expected abbreviated hash, got %q", commits[0].Hash)
	}
	if commits[0].Author != "Test" {
		t.Errorf("Unexpected author: %q", commits[0].Author)
	}

	os.WriteFile(filepath.Join(dir, "file.txt"), []byte("modified\n"), 0644)

	diff := tracker.Diff("file.txt", false)
	if !strings.Contains(diff, "-original") || !strings.Contains(diff, "+modified") {
		t.Errorf("Unexpected diff:\n%s", diff)
	}

	changes := tracker.UncommittedChanges()
	if len(changes) != 1 || changes[0].Status != "M" {
		t.Errorf("Expected one modified file, got: %v", changes)
	}

	if files := tracker.ChangedSince("HEAD"); len(files) != 1 || files[0] != "file.txt" {
		t.Errorf("Unexpected changed files: %v", files)
	}

	if content := tracker.FileAtCommit("file.txt", "HEAD"); content != "original\n" {
		t.Errorf("Unexpected content at HEAD: %q", content)
	}
}

func TestContextString(t *testing.T) {
	dir := setupRepo(t)
	defer os.RemoveAll(dir)

	os.WriteFile(filepath.Join(dir, "file.txt"), []byte("x\n"), 0644)
	runGit(t, dir, "add", "file.txt")
	runGit(t, dir, "commit", "-m", "first")
	os.WriteFile(filepath.Join(dir, "extra.txt"), []byte("y\n"), 0644)

	got := NewGitTracker(dir).ContextString()

	for _, want := range []string{
		"# Git Context",
		"## Uncommitted Changes:",
		"extra.txt (Untracked)",
		"## Recent Commits:",
		": first",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in context string:\n%s", want, got)
		}
	}
}
