// Package presentation renders command output: JSON DTOs for scripting and
// lipgloss-styled text for humans. It is the presentation collaborator the
// core engines hand their in-memory results to; nothing here reads or
// mutates project state.
package presentation

import (
	"roster/internal/catalog"
	"roster/internal/detect"
	"roster/internal/selection"
	"roster/internal/stats"
	"roster/internal/update"
	"roster/internal/validate"
)

// AgentDTO is the external representation of a catalog agent.
type AgentDTO struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Examples    []string `json:"examples,omitempty"`
	Active      bool     `json:"active"`
}

// FromAgents converts catalog agents, marking the active ones.
func FromAgents(agents []*catalog.Agent, active selection.State) []AgentDTO {
	dtos := make([]AgentDTO, 0, len(agents))
	for _, a := range agents {
		dtos = append(dtos, AgentDTO{
			ID:          a.ID(),
			Category:    a.Category().String(),
			Description: a.Description(),
			Examples:    a.Examples(),
			Active:      active.Contains(a.ID()),
		})
	}
	return dtos
}

// CategoryStatsDTO is one category's activation summary.
type CategoryStatsDTO struct {
	Category       string `json:"category"`
	Active         int    `json:"active"`
	Total          int    `json:"total"`
	Recommendation string `json:"recommendation"`
}

// StatsDTO is the full statistics report.
type StatsDTO struct {
	Categories  []CategoryStatsDTO `json:"categories"`
	OverallRate int                `json:"overall_rate"`
}

// FromStats builds the statistics report in category display order.
func FromStats(e *stats.Engine) StatsDTO {
	dto := StatsDTO{OverallRate: e.OverallRate()}
	for _, cat := range catalog.Categories() {
		count := e.CategoryCount(cat)
		dto.Categories = append(dto.Categories, CategoryStatsDTO{
			Category:       cat.Title(),
			Active:         count.Active,
			Total:          count.Total,
			Recommendation: e.Recommend(cat).String(),
		})
	}
	return dto
}

// IssueDTO is one validation finding.
type IssueDTO struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// ValidationDTO is the full validation report.
type ValidationDTO struct {
	Issues    []IssueDTO `json:"issues"`
	Aggregate string     `json:"aggregate"`
	ExitCode  int        `json:"exit_code"`
}

// FromValidation converts a validation result.
func FromValidation(r validate.Result) ValidationDTO {
	dto := ValidationDTO{
		Aggregate: r.Aggregate().String(),
		ExitCode:  r.ExitCode(),
	}
	for _, issue := range r.Issues {
		dto.Issues = append(dto.Issues, IssueDTO{
			Severity: issue.Severity.String(),
			Message:  issue.Message,
		})
	}
	return dto
}

// RecommendationDTO is one detection proposal.
type RecommendationDTO struct {
	Agent  string `json:"agent"`
	Tag    string `json:"tag"`
	Reason string `json:"reason"`
}

// FromRecommendations converts detection proposals.
func FromRecommendations(recs []detect.Recommendation) []RecommendationDTO {
	dtos := make([]RecommendationDTO, 0, len(recs))
	for _, r := range recs {
		dtos = append(dtos, RecommendationDTO{Agent: r.AgentID, Tag: r.Tag, Reason: r.Reason})
	}
	return dtos
}

// SnapshotDTO is one backup snapshot.
type SnapshotDTO struct {
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// FromSnapshots converts snapshots, oldest first.
func FromSnapshots(snaps []update.Snapshot) []SnapshotDTO {
	dtos := make([]SnapshotDTO, 0, len(snaps))
	for _, s := range snaps {
		dtos = append(dtos, SnapshotDTO{
			Name:      s.Name,
			Timestamp: s.Timestamp.Format("2006-01-02 15:04:05"),
			Path:      s.Path,
		})
	}
	return dtos
}

// UpdateDTO reports an update run.
type UpdateDTO struct {
	From            string   `json:"from,omitempty"`
	To              string   `json:"to"`
	UpToDate        bool     `json:"up_to_date"`
	RolledBack      bool     `json:"rolled_back"`
	Snapshot        string   `json:"snapshot,omitempty"`
	RetainedUnknown []string `json:"retained_unknown,omitempty"`
}

// FromUpdate converts an update result.
func FromUpdate(r *update.Result) UpdateDTO {
	dto := UpdateDTO{
		UpToDate:        r.UpToDate,
		RolledBack:      r.RolledBack,
		RetainedUnknown: r.RetainedUnknown,
	}
	if r.From != nil {
		dto.From = r.From.String()
	}
	if r.To != nil {
		dto.To = r.To.String()
	}
	if r.Snapshot != nil {
		dto.Snapshot = r.Snapshot.Name
	}
	return dto
}
