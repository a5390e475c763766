package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"roster/internal/paths"
	"roster/internal/selection"
)

var resetYes bool

var agentsResetCmd = &cobra.Command{
	Use:   "agents:reset",
	Short: "Reset the activation set to the baseline",
	Long: `Replace the activation set with exactly the baseline agents. Any other
active agent, including ids no longer in the catalog, is discarded.

This is destructive, so a snapshot is taken first and the discarded ids are
listed. Without --yes the command shows what would be discarded and stops.

Examples:
  roster agents:reset
  roster agents:reset --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		projectDir := resolveProjectDir()
		session, err := selection.NewSession(cat, paths.DocumentPath(projectDir))
		if err != nil {
			return err
		}

		discarded := session.Discarded()
		if !resetYes {
			session.Cancel()
			if len(discarded) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Reset would discard nothing. Re-run with --yes to apply.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset would discard %d agent(s):\n", len(discarded))
			for _, id := range discarded {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Re-run with --yes to apply.")
			return nil
		}

		snap, err := snapshotBeforeDestructive(projectDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Snapshot: %s\n", snap.Name)

		if _, err := session.ResetToBaseline(); err != nil {
			return err
		}
		if err := session.Commit(); err != nil {
			return err
		}

		for _, id := range discarded {
			fmt.Fprintf(cmd.OutOrStdout(), "Discarded %s\n", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Baseline restored: %d agent(s) active.\n", len(session.Active()))
		return nil
	},
}

func init() {
	agentsResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "apply the reset without confirmation")
	rootCmd.AddCommand(agentsResetCmd)
}
