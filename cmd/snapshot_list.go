package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"roster/internal/presentation"
	"roster/internal/update"
)

var snapshotListCmd = &cobra.Command{
	Use:   "snapshot:list",
	Short: "List project snapshots",
	Long: `List the snapshots under .roster/backups, oldest first. Snapshots are
taken automatically before every destructive operation and before updates.

Examples:
  roster snapshot:list
  roster snapshot:list --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		snaps, err := update.ListSnapshots(resolveProjectDir())
		if err != nil {
			return err
		}

		dtos := presentation.FromSnapshots(snaps)
		if cfg.Output == "json" {
			return presentation.NewFormatter(os.Stdout).FormatJSON(dtos)
		}
		presentation.NewTextRenderer(os.Stdout).RenderSnapshots(dtos)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotListCmd)
}
