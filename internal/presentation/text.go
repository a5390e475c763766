package presentation

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#73F59F"))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5D873"))
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8787"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
)

// TextRenderer writes human-readable command output.
type TextRenderer struct {
	writer io.Writer
}

// NewTextRenderer creates a text renderer.
func NewTextRenderer(writer io.Writer) *TextRenderer {
	return &TextRenderer{writer: writer}
}

// RenderAgents prints agents grouped as given, one line each.
func (r *TextRenderer) RenderAgents(dtos []AgentDTO) {
	currentCategory := ""
	for _, a := range dtos {
		if a.Category != currentCategory {
			currentCategory = a.Category
			fmt.Fprintln(r.writer, headerStyle.Render(strings.ToUpper(a.Category)))
		}
		marker := inactiveStyle.Render("○")
		if a.Active {
			marker = activeStyle.Render("●")
		}
		fmt.Fprintf(r.writer, "  %s %-28s %s\n", marker, a.ID, subtleStyle.Render(a.Description))
	}
}

// RenderStats prints the per-category table and overall rate.
func (r *TextRenderer) RenderStats(dto StatsDTO) {
	fmt.Fprintln(r.writer, headerStyle.Render("AGENT ACTIVATION"))
	for _, c := range dto.Categories {
		label := fmt.Sprintf("%d/%d", c.Active, c.Total)
		fmt.Fprintf(r.writer, "  %-16s %7s  %s\n", c.Category, label, renderRecommendation(c.Recommendation))
	}
	fmt.Fprintf(r.writer, "\n  Overall: %d%% of catalog active\n", dto.OverallRate)
}

func renderRecommendation(rec string) string {
	switch rec {
	case "critical":
		return failStyle.Render(rec)
	case "low":
		return warnStyle.Render(rec)
	case "good":
		return activeStyle.Render(rec)
	default:
		return subtleStyle.Render(rec)
	}
}

// RenderValidation prints the checklist with severity markers.
func (r *TextRenderer) RenderValidation(dto ValidationDTO) {
	for _, issue := range dto.Issues {
		var marker string
		switch issue.Severity {
		case "fail":
			marker = failStyle.Render("✗")
		case "warn":
			marker = warnStyle.Render("!")
		default:
			marker = activeStyle.Render("✓")
		}
		fmt.Fprintf(r.writer, "  %s %s\n", marker, issue.Message)
	}
	fmt.Fprintf(r.writer, "\n  Result: %s\n", renderAggregate(dto.Aggregate))
}

func renderAggregate(agg string) string {
	switch agg {
	case "fail":
		return failStyle.Render("FAIL")
	case "warn":
		return warnStyle.Render("WARN")
	default:
		return activeStyle.Render("PASS")
	}
}

// RenderRecommendations prints detection proposals.
func (r *TextRenderer) RenderRecommendations(dtos []RecommendationDTO) {
	if len(dtos) == 0 {
		fmt.Fprintln(r.writer, subtleStyle.Render("  Nothing to recommend; detected technologies are covered."))
		return
	}
	fmt.Fprintln(r.writer, headerStyle.Render("RECOMMENDED AGENTS"))
	for _, rec := range dtos {
		fmt.Fprintf(r.writer, "  + %-28s %s\n", rec.Agent, subtleStyle.Render(rec.Reason))
	}
}

// RenderSnapshots prints snapshots oldest first.
func (r *TextRenderer) RenderSnapshots(dtos []SnapshotDTO) {
	if len(dtos) == 0 {
		fmt.Fprintln(r.writer, subtleStyle.Render("  No snapshots."))
		return
	}
	for _, s := range dtos {
		fmt.Fprintf(r.writer, "  %s  %s\n", s.Name, subtleStyle.Render(s.Timestamp))
	}
}

// RenderUpdate prints the outcome of an update run.
func (r *TextRenderer) RenderUpdate(dto UpdateDTO) {
	switch {
	case dto.UpToDate:
		fmt.Fprintf(r.writer, "  Catalog already at %s.\n", dto.To)
	case dto.RolledBack:
		fmt.Fprintf(r.writer, "  %s Update failed; project restored from snapshot %s.\n",
			failStyle.Render("✗"), dto.Snapshot)
	default:
		from := dto.From
		if from == "" {
			from = "(none)"
		}
		fmt.Fprintf(r.writer, "  %s Catalog updated %s → %s (snapshot %s).\n",
			activeStyle.Render("✓"), from, dto.To, dto.Snapshot)
		for _, id := range dto.RetainedUnknown {
			fmt.Fprintf(r.writer, "  %s active agent %q is no longer in the catalog; kept as-is\n",
				warnStyle.Render("!"), id)
		}
	}
}
