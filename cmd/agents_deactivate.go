package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"roster/internal/catalog"
	"roster/internal/paths"
	"roster/internal/selection"
)

var (
	deactivateCategory string
	deactivateAll      bool
)

var agentsDeactivateCmd = &cobra.Command{
	Use:   "agents:deactivate [agent]...",
	Short: "Deactivate agents, a category, or the whole catalog",
	Long: `Deactivate the named agents, or with --category every agent of one
category, or with --all every catalog agent.

--all is destructive, so a snapshot of the project configuration directory is
taken first. Ids not in the catalog are retained even by --all.

Examples:
  roster agents:deactivate queue-engineer
  roster agents:deactivate --category data
  roster agents:deactivate --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && deactivateCategory == "" && !deactivateAll {
			return fmt.Errorf("name agents to deactivate, or use --category or --all")
		}

		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		projectDir := resolveProjectDir()
		if deactivateAll {
			snap, err := snapshotBeforeDestructive(projectDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot: %s\n", snap.Name)
		}

		session, err := selection.NewSession(cat, paths.DocumentPath(projectDir))
		if err != nil {
			return err
		}

		switch {
		case deactivateAll:
			if err := session.DeactivateAll(); err != nil {
				return err
			}
		case deactivateCategory != "":
			c, err := catalog.ParseCategory(deactivateCategory)
			if err != nil {
				return err
			}
			if err := session.DeactivateCategory(c); err != nil {
				return err
			}
		default:
			for _, id := range args {
				if session.Active().Contains(id) {
					if err := session.Toggle(id); err != nil {
						return err
					}
				}
			}
		}

		if !session.Changed() {
			session.Cancel()
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to do; selection unchanged.")
			return nil
		}
		if err := session.Commit(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d agent(s) now active.\n", len(session.Active()))
		return nil
	},
}

func init() {
	agentsDeactivateCmd.Flags().StringVarP(&deactivateCategory, "category", "C", "", "deactivate every agent of a category")
	agentsDeactivateCmd.Flags().BoolVar(&deactivateAll, "all", false, "deactivate every catalog agent")
	rootCmd.AddCommand(agentsDeactivateCmd)
}
