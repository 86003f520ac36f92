package cmd

import (
	gocontext "context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/manifoldco/promptui"

	"github.com/devcli-dev/devcli/internal/assistant"
	"github.com/devcli-dev/devcli/internal/context"
	"github.com/devcli-dev/devcli/internal/tools"
	"github.com/devcli-dev/devcli/internal/ui"
)

// replState holds the mutable toggles and queues of one REPL session.
type replState struct {
	asst     *assistant.Assistant
	ops      *tools.FileOps
	renderer *ui.Renderer

	workingDir string
	useSmart   bool
}

func startREPL() {
	workingDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	renderer := ui.NewRenderer()
	fmt.Print(renderer.WelcomeMessage(Version))

	asst, err := newAssistant()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing assistant: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(renderer.SnapshotMessage(asst.HasSnapshot()))
	if info := asst.Provider().Info(); info != nil {
		fmt.Print(renderer.ProviderMessage(info))
	}
	if !asst.CheckAvailable() {
		fmt.Println(renderer.WarningMessage("Model server is not reachable - answers will fail until it is"))
	}
	fmt.Println()

	home, _ := os.UserHomeDir()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          renderer.PromptString(),
		HistoryFile:     filepath.Join(home, ".devcli", "history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    NewFileCompleter(workingDir),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	state := &replState{
		asst:       asst,
		ops:        tools.NewFileOps(workingDir),
		renderer:   renderer,
		workingDir: workingDir,
		useSmart:   true,
	}

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or Ctrl+C
			fmt.Println("\nGoodbye!")
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.Contains(line, "@") {
			expanded, err := expandFileReferences(line, workingDir)
			if err != nil {
				fmt.Println(renderer.ErrorMessage(err))
				continue
			}
			line = expanded
		}

		if strings.HasPrefix(line, "/") {
			state.handleCommand(line)
			continue
		}

		if line == "exit" || line == "quit" {
			fmt.Println("Goodbye!")
			break
		}

		response, err := state.asst.Ask(line, !state.useSmart)
		if err != nil {
			fmt.Println(renderer.ErrorMessage(err))
			continue
		}
		ui.RenderMarkdownToWriter(response)
		fmt.Println()
	}
}

func (s *replState) handleCommand(cmd string) {
	parts := strings.Fields(cmd)
	baseCmd := parts[0]
	args := parts[1:]

	switch baseCmd {
	case "/help":
		printHelp()

	case "/init":
		store, err := modelStore()
		if err != nil {
			fmt.Println(s.renderer.ErrorMessage(err))
			return
		}
		cfg, err := store.Load()
		if err != nil {
			fmt.Println(s.renderer.ErrorMessage(err))
			return
		}
		snapshot, path, err := assistant.InitProject(s.workingDir, cfg.MaxFiles)
		if err != nil {
			fmt.Println(s.renderer.ErrorMessage(err))
			return
		}
		fmt.Print(s.renderer.InitSummary(snapshot, path))

		// Fresh assistant so --full answers see the new snapshot.
		newAsst, err := newAssistant()
		if err != nil {
			fmt.Println(s.renderer.ErrorMessage(err))
			return
		}
		s.asst = newAsst

	case "/tree":
		fmt.Println(context.NewScanner(s.workingDir).FileTree())

	case "/files":
		fmt.Println(s.asst.RepoStructure())

	case "/git":
		fmt.Println(s.asst.GitContext())

	case "/search":
		if len(args) == 0 {
			fmt.Println("Usage: /search <query>")
			return
		}
		fmt.Println(tools.SearchFiles(s.workingDir, strings.Join(args, " ")))

	case "/models":
		ctx, cancel := gocontext.WithTimeout(gocontext.Background(), 10*time.Second)
		defer cancel()
		models, err := s.asst.Provider().ListModels(ctx)
		if err != nil {
			fmt.Println(s.renderer.WarningMessage("Could not list server models: " + err.Error()))
			return
		}
		current := s.asst.Provider().Info().Model
		for _, m := range models {
			marker := "  "
			if m == current {
				marker = ui.SuccessStyle.Render("* ")
			}
			fmt.Printf("%s%s\n", marker, m)
		}

	case "/model":
		if len(args) == 0 {
			fmt.Printf("Current model: %s\n", s.asst.Provider().Info().Model)
			return
		}
		s.switchModel(args[0])

	case "/smart":
		if len(args) == 1 && args[0] == "off" {
			s.useSmart = false
			fmt.Println(s.renderer.InfoMessage("Using the full project snapshot for context"))
		} else if len(args) == 1 && args[0] == "on" {
			s.useSmart = true
			fmt.Println(s.renderer.InfoMessage("Using smart context selection"))
		} else {
			fmt.Println("Usage: /smart on|off")
		}

	case "/edit":
		if len(args) != 1 {
			fmt.Println("Usage: /edit <file>")
			return
		}
		s.interactiveEdit(args[0])

	case "/pending":
		fmt.Println(s.ops.PendingSummary())

	case "/apply":
		applied, failed := s.ops.ApplyAllPending()
		msg := fmt.Sprintf("Applied %d edits, %d failed", applied, failed)
		if failed > 0 {
			fmt.Println(s.renderer.WarningMessage(msg))
		} else {
			fmt.Println(s.renderer.SuccessMessage(msg))
		}

	case "/clear":
		s.ops.ClearPending()
		fmt.Println(s.renderer.InfoMessage("Pending edits discarded"))

	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		fmt.Println("Type '/help' for available commands.")
	}
	fmt.Println()
}

// switchModel looks the name up in the model registry first, falling
// back to treating it as a raw server model identifier.
func (s *replState) switchModel(name string) {
	store, err := modelStore()
	if err != nil {
		fmt.Println(s.renderer.ErrorMessage(err))
		return
	}
	cfg, err := store.Load()
	if err != nil {
		fmt.Println(s.renderer.ErrorMessage(err))
		return
	}

	modelID := name
	if mc, err := cfg.Resolve(name); err == nil {
		modelID = mc.Model
	}

	s.asst.Provider().SetModel(modelID)
	fmt.Println(s.renderer.SuccessMessage("Switched to model " + modelID))
}

// interactiveEdit prompts for a search/replace pair on one file, shows
// the diff, and lets the user apply, queue, or discard it.
func (s *replState) interactiveEdit(path string) {
	search, err := (&promptui.Prompt{Label: "Search text"}).Run()
	if err != nil {
		return
	}
	replace, err := (&promptui.Prompt{Label: "Replace with"}).Run()
	if err != nil {
		return
	}

	edit, err := s.ops.EditBySearch(path, search, replace, "Edit "+path)
	if err != nil {
		fmt.Println(s.renderer.ErrorMessage(err))
		return
	}

	fmt.Println(s.renderer.DiffBlock(s.ops.Diff(edit)))

	choice := promptui.Select{
		Label: "Action",
		Items: []string{"apply now", "queue", "discard"},
	}
	_, action, err := choice.Run()
	if err != nil {
		return
	}

	switch action {
	case "apply now":
		if err := s.ops.Apply(edit, false); err != nil {
			fmt.Println(s.renderer.ErrorMessage(err))
			return
		}
		fmt.Println(s.renderer.SuccessMessage("Applied edit to " + path))
	case "queue":
		s.ops.QueueEdit(edit)
		fmt.Println(s.renderer.InfoMessage("Edit queued - use /apply to write all pending edits"))
	}
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println()
	fmt.Println("  Project:")
	fmt.Println("    /init           - Scan the project and save a snapshot to .devcli/")
	fmt.Println("    /tree           - Show the project file tree")
	fmt.Println("    /files          - Show files with their types and functions")
	fmt.Println("    /git            - Show git status and recent commits")
	fmt.Println("    /search <query> - Search project files for text")
	fmt.Println()
	fmt.Println("  Models:")
	fmt.Println("    /models         - List models available on the server")
	fmt.Println("    /model <name>   - Switch to a different model")
	fmt.Println()
	fmt.Println("  Context:")
	fmt.Println("    /smart on|off   - Toggle smart context vs full snapshot")
	fmt.Println()
	fmt.Println("  Edits:")
	fmt.Println("    /edit <file>    - Search/replace one file interactively")
	fmt.Println("    /pending        - Show queued edits with diffs")
	fmt.Println("    /apply          - Apply all queued edits")
	fmt.Println("    /clear          - Discard queued edits")
	fmt.Println()
	fmt.Println("  Other:")
	fmt.Println("    /help           - Show this help message")
	fmt.Println("    exit            - Quit")
	fmt.Println()
	fmt.Println("  File References:")
	fmt.Println("    @<Tab>          - Complete a project file path")
	fmt.Println("    @path           - Include a file's content in your question")
}
