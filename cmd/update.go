package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"roster/internal/log"
	"roster/internal/presentation"
	"roster/internal/templates"
	"roster/internal/update"
)

var updateForce bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the installed catalog",
	Long: `Replace the installed catalog with the version bundled in this binary
and reconcile the project document against it. A snapshot is taken before
anything changes; any failure rolls the project back to it.

Agent ids no longer in the new catalog stay in the document and are reported.
Without --force the update is skipped when the installed catalog is already at
the bundled version.

Examples:
  roster update
  roster update --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectDir := resolveProjectDir()
		mgr := update.NewManager(cfg.CatalogRoot, projectDir, templates.CatalogFS())
		result, err := mgr.Run(updateForce)
		if err != nil {
			return err
		}

		// The manager snapshots but never prunes; the cap is CLI policy,
		// same as for the other destructive commands.
		if result.Snapshot != nil && cfg.MaxSnapshots > 0 {
			if err := update.Prune(projectDir, cfg.MaxSnapshots); err != nil {
				log.ErrorErr(log.CatUpdate, "Snapshot pruning failed", err)
			}
		}

		dto := presentation.FromUpdate(result)
		if cfg.Output == "json" {
			return presentation.NewFormatter(os.Stdout).FormatJSON(dto)
		}
		presentation.NewTextRenderer(os.Stdout).RenderUpdate(dto)
		return nil
	},
}

func init() {
	updateCmd.Flags().BoolVarP(&updateForce, "force", "f", false, "update even when already at the bundled version")
	rootCmd.AddCommand(updateCmd)
}
