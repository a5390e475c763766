package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"roster/internal/document"
	"roster/internal/paths"
	"roster/internal/presentation"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Render the project document",
	Long: `Render .roster/project.md to the terminal. Use --raw to print the
document bytes exactly as stored.

Examples:
  roster show
  roster show --raw`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := document.Read(paths.DocumentPath(resolveProjectDir()))
		if err != nil {
			return err
		}

		content := doc.Serialize()
		if showRaw {
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		}

		width := 100
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
			width = w
		}
		rendered, err := presentation.RenderMarkdown(content, width)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "print the stored bytes without rendering")
	rootCmd.AddCommand(showCmd)
}
