package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"roster/internal/paths"
	"roster/internal/update"
)

var snapshotDiffCmd = &cobra.Command{
	Use:   "snapshot:diff [snapshot]",
	Short: "Diff the project document against a snapshot",
	Long: `Show what changed in .roster/project.md since a snapshot was taken.
Defaults to the most recent snapshot; pass a snapshot name to compare against
an older one ('roster snapshot:list' shows the names).

Examples:
  roster snapshot:diff
  roster snapshot:diff 20260312T091500`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectDir := resolveProjectDir()

		var snap *update.Snapshot
		if len(args) == 1 {
			snaps, err := update.ListSnapshots(projectDir)
			if err != nil {
				return err
			}
			for i := range snaps {
				if snaps[i].Name == args[0] {
					snap = &snaps[i]
					break
				}
			}
			if snap == nil {
				return fmt.Errorf("snapshot %q not found", args[0])
			}
		} else {
			var err error
			snap, err = update.LatestSnapshot(projectDir)
			if err != nil {
				return err
			}
			if snap == nil {
				return fmt.Errorf("no snapshots exist yet")
			}
		}

		before, err := os.ReadFile(filepath.Join(snap.Path, paths.DocumentName))
		if err != nil {
			return fmt.Errorf("reading snapshot document: %w", err)
		}
		after, err := os.ReadFile(paths.DocumentPath(projectDir))
		if err != nil {
			return err
		}

		if string(before) == string(after) {
			fmt.Fprintf(cmd.OutOrStdout(), "No changes since snapshot %s.\n", snap.Name)
			return nil
		}

		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(string(before), string(after), true)
		diffs = dmp.DiffCleanupSemantic(diffs)
		fmt.Fprint(cmd.OutOrStdout(), dmp.DiffPrettyText(diffs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotDiffCmd)
}
