package assistant

import (
	gocontext "context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/devcli-dev/devcli/internal/context"
	"github.com/devcli-dev/devcli/internal/provider"
	"github.com/devcli-dev/devcli/internal/tools"
	"github.com/devcli-dev/devcli/internal/ui"
)

// generateTimeout is the ceiling for one blocking model call.
const generateTimeout = 2 * time.Minute

const systemPrompt = `You are a helpful AI coding assistant. You answer questions about
the user's codebase using the project context provided with each
question. Be concise and reference files by their relative paths.`

// Options configures a new Assistant.
type Options struct {
	Host          string
	Vendor        string
	APIKey        string
	Model         string
	WorkingDir    string
	MaxTokens     int
	MaxFiles      int
	EnableSpinner bool
}

// Assistant wires the context builders, the git tracker, and the
// model provider into one question-answer pipeline. It holds the only
// mutable per-session state: the smart builder's caches and the
// lazily loaded snapshot.
type Assistant struct {
	opts     Options
	provider provider.Provider
	smart    *context.SmartContext
	git      *tools.GitTracker
	renderer *ui.Renderer

	snapshot *context.ProjectSnapshot
}

// New creates an assistant connected to the configured model server.
func New(opts Options) (*Assistant, error) {
	ctx, cancel := gocontext.WithTimeout(gocontext.Background(), 15*time.Second)
	defer cancel()

	p, err := provider.New(ctx, opts.Host, opts.Vendor, opts.APIKey)
	if err != nil {
		return nil, err
	}
	p.SetModel(opts.Model)

	return &Assistant{
		opts:     opts,
		provider: p,
		smart:    context.NewSmartContext(opts.WorkingDir),
		git:      tools.NewGitTracker(opts.WorkingDir),
		renderer: ui.NewRenderer(),
	}, nil
}

// Provider returns the underlying model provider.
func (a *Assistant) Provider() provider.Provider {
	return a.provider
}

// RepoStructure returns the cached symbol-level repository outline.
func (a *Assistant) RepoStructure() string {
	return a.smart.RepoStructure()
}

// GitContext returns the repository status block, or a not-a-repo
// notice when the working directory is not under git.
func (a *Assistant) GitContext() string {
	return a.git.ContextString()
}

// SnapshotPath returns where the project snapshot lives under root.
func SnapshotPath(root string) string {
	return filepath.Join(root, ".devcli", "context.json")
}

// InitProject scans the working directory and persists a fresh
// snapshot, superseding any previous one.
func InitProject(root string, maxFiles int) (*context.ProjectSnapshot, string, error) {
	builder := context.NewBuilder(root)
	snapshot := builder.Build(maxFiles)

	path := SnapshotPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, "", fmt.Errorf("create snapshot directory: %w", err)
	}
	if err := snapshot.Save(path); err != nil {
		return nil, "", err
	}
	return snapshot, path, nil
}

// loadSnapshot loads the persisted snapshot once per session.
func (a *Assistant) loadSnapshot() (*context.ProjectSnapshot, error) {
	if a.snapshot != nil {
		return a.snapshot, nil
	}
	snapshot, err := context.Load(SnapshotPath(a.opts.WorkingDir))
	if err != nil {
		return nil, err
	}
	a.snapshot = snapshot
	return snapshot, nil
}

// HasSnapshot reports whether a persisted snapshot exists.
func (a *Assistant) HasSnapshot() bool {
	_, err := os.Stat(SnapshotPath(a.opts.WorkingDir))
	return err == nil
}

// BuildContext assembles the context block for a question. With full
// set it renders the persisted snapshot (stale-tolerant); otherwise
// it computes smart context live. Git state is prepended when the
// project is a repository.
func (a *Assistant) BuildContext(question string, full bool) (string, error) {
	var block string
	if full {
		snapshot, err := a.loadSnapshot()
		if err != nil {
			return "", fmt.Errorf("no usable snapshot (run init first): %w", err)
		}
		block = snapshot.ToPrompt(a.opts.MaxTokens)
	} else {
		block = a.smart.ContextForQuestion(question)
	}

	if a.git.IsRepo() {
		block = a.git.ContextString() + "\n" + block
	}
	return block, nil
}

// Ask sends one question, augmented with project context, to the
// model and returns the full response. The blocking call is bounded
// by a two-minute ceiling and cancelled on interrupt, leaving no
// partial state behind.
func (a *Assistant) Ask(question string, full bool) (string, error) {
	contextBlock, err := a.BuildContext(question, full)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf("%s\n\n---\n\nQuestion: %s", contextBlock, question)

	ctx, cancel := gocontext.WithTimeout(gocontext.Background(), generateTimeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var spinner *ui.Spinner
	if a.opts.EnableSpinner {
		spinner = ui.NewSpinner()
		spinner.Start("Thinking...")
	}

	response, err := a.provider.Generate(ctx, prompt, systemPrompt)

	if spinner != nil {
		spinner.Stop()
	}

	if err != nil {
		if ctx.Err() == gocontext.Canceled {
			return "", fmt.Errorf("interrupted")
		}
		return "", err
	}
	return response, nil
}

// CheckAvailable probes the model server once.
func (a *Assistant) CheckAvailable() bool {
	ctx, cancel := gocontext.WithTimeout(gocontext.Background(), 5*time.Second)
	defer cancel()
	return a.provider.IsAvailable(ctx)
}
