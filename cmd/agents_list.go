package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"roster/internal/catalog"
	"roster/internal/document"
	"roster/internal/paths"
	"roster/internal/presentation"
	"roster/internal/selection"
)

var listCategory string

var agentsListCmd = &cobra.Command{
	Use:   "agents:list",
	Short: "List catalog agents and their activation state",
	Long: `List every agent in the catalog, grouped by category, marking the ones
active for this project.

Examples:
  roster agents:list
  roster agents:list --category frontend
  roster agents:list --json | jq '.[] | select(.active) | .id'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		active := selection.State{}
		if doc, err := document.Read(paths.DocumentPath(resolveProjectDir())); err == nil {
			active = selection.State(doc.ActiveIDs())
		}

		var agents []*catalog.Agent
		if listCategory != "" {
			c, err := catalog.ParseCategory(listCategory)
			if err != nil {
				return err
			}
			agents = cat.ByCategory(c)
		} else {
			for _, c := range catalog.Categories() {
				agents = append(agents, cat.ByCategory(c)...)
			}
		}

		dtos := presentation.FromAgents(agents, active)
		if cfg.Output == "json" {
			return presentation.NewFormatter(os.Stdout).FormatJSON(dtos)
		}
		presentation.NewTextRenderer(os.Stdout).RenderAgents(dtos)
		return nil
	},
}

func init() {
	agentsListCmd.Flags().StringVarP(&listCategory, "category", "C", "",
		"filter by category (core, frontend, backend, infrastructure, data, quality)")
	rootCmd.AddCommand(agentsListCmd)
}
