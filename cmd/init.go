package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devcli-dev/devcli/internal/assistant"
	"github.com/devcli-dev/devcli/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scan the project and persist a context snapshot",
	Long: `Init scans the current directory, reads the discovered source files,
and writes a snapshot to .devcli/context.json. A later 'ask --full'
renders this snapshot instead of re-reading the tree. Re-running init
replaces the snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		workingDir, err := os.Getwd()
		if err != nil {
			return err
		}

		store, err := modelStore()
		if err != nil {
			return err
		}
		cfg, err := store.Load()
		if err != nil {
			return err
		}

		snapshot, path, err := assistant.InitProject(workingDir, cfg.MaxFiles)
		if err != nil {
			return err
		}

		fmt.Print(ui.NewRenderer().InitSummary(snapshot, path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
