package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"roster/internal/config"
	"roster/internal/paths"
)

var configGlobal bool

var configInitCmd = &cobra.Command{
	Use:   "config:init",
	Short: "Write a commented default config file",
	Long: `Write a config.yaml with the default settings and explanatory comments.
By default the file goes to .roster/config.yaml in the current project; with
--global it goes to ~/.config/roster/config.yaml instead.

Existing config files are never overwritten.

Examples:
  roster config:init
  roster config:init --global`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var configPath string
		if configGlobal {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			configPath = filepath.Join(home, ".config", "roster", "config.yaml")
		} else {
			configPath = filepath.Join(projectRoot(), paths.DirName, "config.yaml")
		}

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists at %s", configPath)
		}
		if err := config.WriteDefaultConfig(configPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configPath)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configGlobal, "global", "g", false, "write to ~/.config/roster instead of the project")
	rootCmd.AddCommand(configInitCmd)
}
