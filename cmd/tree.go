package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devcli-dev/devcli/internal/context"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the scanned project file tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		workingDir, err := os.Getwd()
		if err != nil {
			return err
		}

		scanner := context.NewScanner(workingDir)
		fmt.Println(scanner.FileTree())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
