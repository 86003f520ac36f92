package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devcli-dev/devcli/internal/tools"
	"github.com/devcli-dev/devcli/internal/ui"
)

var (
	editSearch  string
	editReplace string
	editStart   int
	editEnd     int
	editContent string
	editDesc    string
	editApply   bool
	editBackup  bool
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Compute and optionally apply a file edit",
	Long: `Edit computes a before/after pair for one file and prints the unified
diff. Use --search/--replace for a unique-occurrence text edit, or
--start/--end/--content to replace a 1-based inclusive line range.
Nothing is written unless --apply is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workingDir, err := os.Getwd()
		if err != nil {
			return err
		}
		ops := tools.NewFileOps(workingDir)
		renderer := ui.NewRenderer()

		var edit *tools.FileEdit
		switch {
		case editSearch != "":
			edit, err = ops.EditBySearch(args[0], editSearch, editReplace, editDesc)
		case editStart > 0:
			edit, err = ops.EditByLines(args[0], editStart, editEnd, strings.Split(editContent, "\n"), editDesc)
		default:
			return fmt.Errorf("specify either --search or --start/--end")
		}
		if err != nil {
			return err
		}

		fmt.Println(renderer.DiffBlock(ops.Diff(edit)))

		if !editApply {
			fmt.Println(ui.Subtle.Render("Dry run - pass --apply to write the change"))
			return nil
		}

		if editBackup {
			backupPath, err := ops.Backup(args[0])
			if err != nil {
				return err
			}
			fmt.Println(renderer.InfoMessage("Backup written to " + backupPath))
		}

		if err := ops.Apply(edit, false); err != nil {
			return err
		}
		fmt.Println(renderer.SuccessMessage("Applied edit to " + args[0]))
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editSearch, "search", "", "text to replace (must occur exactly once)")
	editCmd.Flags().StringVar(&editReplace, "replace", "", "replacement text")
	editCmd.Flags().IntVar(&editStart, "start", 0, "first line of the range to replace (1-based)")
	editCmd.Flags().IntVar(&editEnd, "end", 0, "last line of the range to replace (inclusive)")
	editCmd.Flags().StringVar(&editContent, "content", "", "replacement lines for the range")
	editCmd.Flags().StringVar(&editDesc, "desc", "Edit file", "edit description")
	editCmd.Flags().BoolVar(&editApply, "apply", false, "write the new content")
	editCmd.Flags().BoolVar(&editBackup, "backup", false, "write a .backup copy before applying")

	rootCmd.AddCommand(editCmd)
}
