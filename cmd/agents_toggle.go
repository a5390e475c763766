package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"roster/internal/paths"
	"roster/internal/selection"
)

var agentsToggleCmd = &cobra.Command{
	Use:   "agents:toggle <agent>...",
	Short: "Toggle agents on or off",
	Long: `Flip the activation state of one or more agents. All toggles of one
invocation land in a single atomic document rewrite.

Ids that are not in the current catalog are still toggled, so a stale
reference survives catalog upgrades, but each one is reported as a warning.

Examples:
  roster agents:toggle react-specialist
  roster agents:toggle code-reviewer test-engineer debugger`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		session, err := selection.NewSession(cat, paths.DocumentPath(resolveProjectDir()))
		if err != nil {
			return err
		}
		for _, id := range args {
			if err := session.Toggle(id); err != nil {
				return err
			}
		}
		if err := session.Commit(); err != nil {
			return err
		}

		for _, w := range session.Warnings() {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
		}
		active := session.Active()
		for _, id := range args {
			state := "off"
			if active.Contains(id) {
				state = "on"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", id, state)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(agentsToggleCmd)
}
