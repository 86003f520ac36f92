package context

import (
	"fmt"
	"os"
	"strings"
	"testing"
)

const alphaSource = `class Alpha:
    pass

def foo():
    return 1

def bar():
    return 2
`

const betaSource = `def baz():
    return 3
`

func setupSmartDir(t *testing.T) string {
	dir := setupTestDir(t)
	writeFile(t, dir, "alpha.py", alphaSource)
	writeFile(t, dir, "beta.py", betaSource)
	return dir
}

func TestRepoStructure(t *testing.T) {
	dir := setupSmartDir(t)
	defer os.RemoveAll(dir)

	structure := NewSmartContext(dir).RepoStructure()

	for _, want := range []string{
		"# Repository Structure",
		"alpha.py:", "class Alpha", "def foo()", "def bar()",
		"beta.py:", "def baz()",
	} {
		if !strings.Contains(structure, want) {
			t.Errorf("Expected %q in structure:\n%s", want, structure)
		}
	}
}

func TestRepoStructureFunctionCap(t *testing.T) {
	dir := setupTestDir(t)
	defer os.RemoveAll(dir)

	var sb strings.Builder
	for i := 0; i < 13; i++ {
		fmt.Fprintf(&sb, "def handler%02d():\n    pass\n\n", i)
	}
	writeFile(t, dir, "many.py", sb.String())

	structure := NewSmartContext(dir).RepoStructure()

	if !strings.Contains(structure, "... and 3 more functions") {
		t.Errorf("Expected overflow notice:\n%s", structure)
	}
	if !strings.Contains(structure, "def handler09()") {
		t.Errorf("Tenth function should be listed:\n%s", structure)
	}
	if strings.Contains(structure, "def handler10()") {
		t.Errorf("Eleventh function should be cut:\n%s", structure)
	}
}

func TestDetectMentionedFiles(t *testing.T) {
	dir := setupSmartDir(t)
	defer os.RemoveAll(dir)

	sc := NewSmartContext(dir)

	mentioned := sc.DetectMentionedFiles("what does foo in alpha.py do?")
	if len(mentioned) != 1 || !strings.HasSuffix(mentioned[0], "alpha.py") {
		t.Errorf("Expected only alpha.py mentioned, got: %v", mentioned)
	}

	// Stem matching: "beta" without the extension still counts.
	mentioned = sc.DetectMentionedFiles("explain the beta module")
	found := false
	for _, m := range mentioned {
		if strings.HasSuffix(m, "beta.py") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected beta.py via stem match, got: %v", mentioned)
	}

	if mentioned := sc.DetectMentionedFiles("how do I configure this?"); len(mentioned) != 0 {
		t.Errorf("Expected no mentions, got: %v", mentioned)
	}
}

func TestContextForQuestion(t *testing.T) {
	dir := setupSmartDir(t)
	defer os.RemoveAll(dir)

	ctx := NewSmartContext(dir).ContextForQuestion("what does foo in alpha.py do?")

	if !strings.Contains(ctx, "# Repository Structure") {
		t.Errorf("Structure summary missing:\n%s", ctx)
	}
	if !strings.Contains(ctx, "## alpha.py") {
		t.Errorf("Mentioned file section missing:\n%s", ctx)
	}
	if !strings.Contains(ctx, "   1: class Alpha:") {
		t.Errorf("Expected numbered content:\n%s", ctx)
	}
	if strings.Contains(ctx, "## beta.py") {
		t.Errorf("Unmentioned file content should be absent:\n%s", ctx)
	}
	if !strings.Contains(ctx, "```python") {
		t.Errorf("Expected language-tagged fence:\n%s", ctx)
	}
}

func TestContextForQuestionNoMentions(t *testing.T) {
	dir := setupSmartDir(t)
	defer os.RemoveAll(dir)

	ctx := NewSmartContext(dir).ContextForQuestion("how do I configure this?")

	if !strings.Contains(ctx, "# Repository Structure") {
		t.Errorf("Structure summary missing:\n%s", ctx)
	}
	if strings.Contains(ctx, "# Full File Contents") {
		t.Errorf("No file contents expected without mentions:\n%s", ctx)
	}
}

func TestRepoStructureCached(t *testing.T) {
	dir := setupSmartDir(t)
	defer os.RemoveAll(dir)

	sc := NewSmartContext(dir)
	before := sc.RepoStructure()

	// Changes on disk are invisible for the builder's lifetime.
	writeFile(t, dir, "gamma.py", "def late():\n    pass\n")

	if after := sc.RepoStructure(); after != before {
		t.Error("RepoStructure should be cached per builder")
	}
}

func TestNumberLines(t *testing.T) {
	got := NumberLines("first\nsecond")
	want := "   1: first\n   2: second"
	if got != want {
		t.Errorf("NumberLines mismatch: got %q, want %q", got, want)
	}
}
