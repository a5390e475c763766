package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"roster/internal/document"
	"roster/internal/paths"
	"roster/internal/presentation"
	"roster/internal/selection"
	"roster/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show activation counts and coverage",
	Long: `Show per-category activation counts, the overall activation rate, and a
coverage recommendation for each category. Ids not in the catalog count toward
nothing; they are reported by 'roster validate'.

Examples:
  roster stats
  roster stats --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		active := selection.State{}
		if doc, err := document.Read(paths.DocumentPath(resolveProjectDir())); err == nil {
			active = selection.State(doc.ActiveIDs())
		}

		dto := presentation.FromStats(stats.NewEngine(cat, active))
		if cfg.Output == "json" {
			return presentation.NewFormatter(os.Stdout).FormatJSON(dto)
		}
		presentation.NewTextRenderer(os.Stdout).RenderStats(dto)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
