package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"roster/internal/detect"
	"roster/internal/document"
	"roster/internal/paths"
	"roster/internal/presentation"
	"roster/internal/selection"
)

var (
	detectTags  []string
	detectApply bool
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Recommend agents for the project's technology stack",
	Long: `Scan the project's manifests (package.json, go.mod, Dockerfiles and
friends) for technology tags and recommend matching agents that are not yet
active. Pass --tag to supply tags directly instead of scanning.

Detection only proposes; nothing is activated unless --apply is given.

Examples:
  roster detect
  roster detect --tag react --tag docker
  roster detect --apply`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		engine, err := detect.LoadRules(os.DirFS(cfg.CatalogRoot), cat)
		if err != nil {
			return err
		}

		tags := detectTags
		if len(tags) == 0 {
			tags = detect.ScanManifests(projectRoot())
		}

		active := selection.State{}
		docPath := paths.DocumentPath(resolveProjectDir())
		if doc, err := document.Read(docPath); err == nil {
			active = selection.State(doc.ActiveIDs())
		}

		recs := engine.Recommend(tags, active)
		dtos := presentation.FromRecommendations(recs)
		if cfg.Output == "json" {
			if err := presentation.NewFormatter(os.Stdout).FormatJSON(dtos); err != nil {
				return err
			}
		} else {
			presentation.NewTextRenderer(os.Stdout).RenderRecommendations(dtos)
		}

		if !detectApply || len(recs) == 0 {
			return nil
		}

		session, err := selection.NewSession(cat, docPath)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			if !session.Active().Contains(rec.AgentID) {
				if err := session.Toggle(rec.AgentID); err != nil {
					return err
				}
			}
		}
		if !session.Changed() {
			session.Cancel()
			return nil
		}
		if err := session.Commit(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Activated %d recommended agent(s).\n", len(recs))
		return nil
	},
}

func init() {
	detectCmd.Flags().StringArrayVarP(&detectTags, "tag", "t", nil, "technology tag (repeatable; skips manifest scanning)")
	detectCmd.Flags().BoolVar(&detectApply, "apply", false, "activate the recommended agents")
	rootCmd.AddCommand(detectCmd)
}
