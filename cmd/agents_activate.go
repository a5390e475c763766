package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"roster/internal/catalog"
	"roster/internal/paths"
	"roster/internal/selection"
)

var (
	activateCategory string
	activateAll      bool
)

var agentsActivateCmd = &cobra.Command{
	Use:   "agents:activate [agent]...",
	Short: "Activate agents, a category, or the whole catalog",
	Long: `Activate the named agents, or with --category every agent of one
category, or with --all the entire catalog. Already-active agents are left
alone.

Examples:
  roster agents:activate api-designer
  roster agents:activate --category backend
  roster agents:activate --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && activateCategory == "" && !activateAll {
			return fmt.Errorf("name agents to activate, or use --category or --all")
		}

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		session, err := selection.NewSession(cat, paths.DocumentPath(resolveProjectDir()))
		if err != nil {
			return err
		}

		before := session.Active()
		switch {
		case activateAll:
			if err := session.ActivateAll(); err != nil {
				return err
			}
		case activateCategory != "":
			c, err := catalog.ParseCategory(activateCategory)
			if err != nil {
				return err
			}
			if err := session.ActivateCategory(c); err != nil {
				return err
			}
		default:
			for _, id := range args {
				if !session.Active().Contains(id) {
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

		for _, w := range session.Warnings() {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Activated %d agent(s); %d now active.\n",
			len(session.Active())-len(before), len(session.Active()))
		return nil
	},
}

func init() {
	agentsActivateCmd.Flags().StringVarP(&activateCategory, "category", "C", "", "activate every agent of a category")
	agentsActivateCmd.Flags().BoolVar(&activateAll, "all", false, "activate every agent in the catalog")
	rootCmd.AddCommand(agentsActivateCmd)
}
