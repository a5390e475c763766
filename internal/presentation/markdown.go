package presentation

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders the project document for terminal display.
// Read-only: the rendered output is never written back.
func RenderMarkdown(content string, width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(content)
}
