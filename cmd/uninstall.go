package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var uninstallYes bool

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the installed catalog",
	Long: `Remove the shared catalog installation. Project documents are left in
place; a snapshot of this project's configuration directory is taken first so
the current state stays recoverable.

Without --yes the command only reports what would be removed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfg.CatalogRoot); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "No catalog installed at %s.\n", cfg.CatalogRoot)
			return nil
		}

		if !uninstallYes {
			fmt.Fprintf(cmd.OutOrStdout(), "Would remove %s. Re-run with --yes to apply.\n", cfg.CatalogRoot)
			return nil
		}

		projectDir := resolveProjectDir()
		if _, err := os.Stat(projectDir); err == nil {
			snap, err := snapshotBeforeDestructive(projectDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot: %s\n", snap.Name)
		}

		if err := os.RemoveAll(cfg.CatalogRoot); err != nil {
			return fmt.Errorf("removing catalog: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", cfg.CatalogRoot)
		return nil
	},
}

func init() {
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "remove without confirmation")
	rootCmd.AddCommand(uninstallCmd)
}
