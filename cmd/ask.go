package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devcli-dev/devcli/internal/ui"
)

var askFull bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your codebase",
	Long: `Ask sends one question to the model, augmented with project context.

By default the context is computed live from the files your question
mentions. With --full the persisted snapshot (see 'devcli init') is
rendered instead, bounded by the configured token budget.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asst, err := newAssistant()
		if err != nil {
			return err
		}

		renderer := ui.NewRenderer()
		if !asst.CheckAvailable() {
			fmt.Fprintln(os.Stderr, renderer.WarningMessage("Model server is not reachable"))
			return fmt.Errorf("server unavailable at configured host")
		}

		response, err := asst.Ask(args[0], askFull)
		if err != nil {
			return err
		}

		ui.RenderMarkdownToWriter(response)
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askFull, "full", false, "use the persisted project snapshot instead of smart context")
	rootCmd.AddCommand(askCmd)
}
