package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"roster/internal/document"
	"roster/internal/paths"
	"roster/internal/templates"
	"roster/internal/update"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize roster for a project",
	Long: `Initialize roster for a project: installs the shipped catalog to the
catalog root if none is present, and creates .roster/project.md from the
starter template. Existing files are never overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		installed, err := update.Install(cfg.CatalogRoot, templates.CatalogFS())
		if err != nil {
			return err
		}
		if installed {
			fmt.Fprintf(cmd.OutOrStdout(), "Installed catalog to %s\n", cfg.CatalogRoot)
		}

		projectDir := resolveProjectDir()
		docPath := paths.DocumentPath(projectDir)
		if _, err := os.Stat(docPath); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Project already initialized at %s\n", docPath)
			return nil
		}

		doc, err := document.Parse(templates.ProjectTemplate())
		if err != nil {
			return err
		}
		if err := document.Write(docPath, doc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", docPath)
		fmt.Fprintln(cmd.OutOrStdout(), "Run 'roster agents:reset --yes' to activate the baseline agents.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
