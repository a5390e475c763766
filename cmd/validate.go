package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"roster/internal/document"
	"roster/internal/paths"
	"roster/internal/presentation"
	"roster/internal/selection"
	"roster/internal/validate"
	"roster/internal/watcher"
)

var validateWatch bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the project document",
	Long: `Run the structural checks against .roster/project.md: required sections,
duplicate headings, the Active Capabilities section, unknown agent ids, and
baseline coverage.

Exit code is 0 when everything passes, 1 on warnings, 2 on failures.

With --watch the document is re-validated whenever it changes, until
interrupted; the exit code reflects the last run.

Examples:
  roster validate
  roster validate --json
  roster validate --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		docPath := paths.DocumentPath(resolveProjectDir())

		if err := runValidation(docPath); err != nil {
			return err
		}
		if !validateWatch {
			return nil
		}

		w, err := watcher.New(watcher.Config{
			DocPath:     docPath,
			DebounceDur: cfg.WatchDebounce,
		})
		if err != nil {
			return err
		}
		changes, err := w.Start()
		if err != nil {
			return err
		}
		defer w.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		fmt.Fprintln(cmd.OutOrStdout(), "Watching for changes. Press Ctrl+C to stop.")
		for {
			select {
			case <-changes:
				if err := runValidation(docPath); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
			case <-sig:
				return nil
			}
		}
	},
}

// runValidation runs one validation pass and records the three-tier exit code.
func runValidation(docPath string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	doc, err := document.Read(docPath)
	if err != nil {
		return err
	}

	result := validate.Run(doc, selection.State(doc.ActiveIDs()), cat)
	exitCode = result.ExitCode()

	dto := presentation.FromValidation(result)
	if cfg.Output == "json" {
		return presentation.NewFormatter(os.Stdout).FormatJSON(dto)
	}
	presentation.NewTextRenderer(os.Stdout).RenderValidation(dto)
	return nil
}

func init() {
	validateCmd.Flags().BoolVarP(&validateWatch, "watch", "w", false, "re-validate whenever the document changes")
	rootCmd.AddCommand(validateCmd)
}
