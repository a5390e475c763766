// Package validate runs the structural checklist against a project document,
// its activation set, and the catalog. Issues are collected in full and
// never short-circuited: a user sees every problem at once. Nothing here is
// raised as an error; the aggregate maps to process exit codes.
package validate

import (
	"fmt"

	"roster/internal/catalog"
	"roster/internal/document"
	"roster/internal/log"
	"roster/internal/selection"
)

// Severity classifies one issue.
type Severity int

const (
	SeverityPass Severity = iota
	SeverityWarn
	SeverityFail
)

func (s Severity) String() string {
	switch s {
	case SeverityPass:
		return "pass"
	case SeverityWarn:
		return "warn"
	case SeverityFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Issue is one checklist finding.
type Issue struct {
	Severity Severity
	Message  string
}

// Result is the full checklist output.
type Result struct {
	Issues []Issue
}

// requiredSections must each be present or the document fails validation.
// The Active Capabilities section is deliberately not in this list: its
// absence is a warning, because the document is still usable and the section
// is created on the next write.
var requiredSections = []string{"Project Overview", "Tech Stack"}

// Run executes the fixed ordered checklist.
func Run(doc *document.Document, active selection.State, cat *catalog.Catalog) Result {
	var r Result

	r.checkRequiredSections(doc)
	r.checkDuplicateHeadings(doc)
	r.checkActiveSection(doc)
	r.checkUnknownIDs(active, cat)
	r.checkBaseline(active, cat)

	log.Debug(log.CatValidate, "Validation complete",
		"issues", len(r.Issues), "aggregate", r.Aggregate())
	return r
}

// Check 1: required sections present.
func (r *Result) checkRequiredSections(doc *document.Document) {
	for _, title := range requiredSections {
		if doc.HasSection(title) {
			r.add(SeverityPass, fmt.Sprintf("required section %q present", title))
		} else {
			r.add(SeverityFail, fmt.Sprintf("required section %q is missing", title))
		}
	}
}

// Check 2: no duplicate section headings.
func (r *Result) checkDuplicateHeadings(doc *document.Document) {
	dups := doc.DuplicateTitles()
	if len(dups) == 0 {
		r.add(SeverityPass, "section headings are unique")
		return
	}
	for _, title := range dups {
		r.add(SeverityFail, fmt.Sprintf("duplicate section heading %q", title))
	}
}

// Check 3: Active Capabilities section present.
func (r *Result) checkActiveSection(doc *document.Document) {
	if doc.HasSection(document.ActiveSectionTitle) {
		r.add(SeverityPass, fmt.Sprintf("%q section present", document.ActiveSectionTitle))
		return
	}
	r.add(SeverityWarn, fmt.Sprintf("%q section is missing; it will be created on the next write", document.ActiveSectionTitle))
}

// Check 4: every active id exists in the catalog. Each unknown id is one
// warning, never a failure: this tolerates forward and backward catalog
// drift without destroying user intent.
func (r *Result) checkUnknownIDs(active selection.State, cat *catalog.Catalog) {
	unknown := 0
	for _, id := range active.IDs() {
		if !cat.Has(id) {
			unknown++
			r.add(SeverityWarn, fmt.Sprintf("active agent %q is not in the current catalog", id))
		}
	}
	if unknown == 0 {
		r.add(SeverityPass, "all active agents exist in the catalog")
	}
}

// Check 5: baseline completeness. Partially active baseline warns; a fully
// inactive baseline (a fresh project) is informational only.
func (r *Result) checkBaseline(active selection.State, cat *catalog.Catalog) {
	baseline := cat.BaselineIDs()
	if len(baseline) == 0 {
		r.add(SeverityPass, "catalog has no baseline agents")
		return
	}

	activeCount := 0
	var missing []string
	for _, id := range selection.State(baseline).IDs() {
		if active.Contains(id) {
			activeCount++
		} else {
			missing = append(missing, id)
		}
	}

	switch {
	case activeCount == len(baseline):
		r.add(SeverityPass, "all baseline agents are active")
	case activeCount == 0:
		r.add(SeverityPass, "no baseline agents are active yet; run 'roster agents:reset' to activate them")
	default:
		for _, id := range missing {
			r.add(SeverityWarn, fmt.Sprintf("baseline agent %q is not active", id))
		}
	}
}

func (r *Result) add(sev Severity, msg string) {
	r.Issues = append(r.Issues, Issue{Severity: sev, Message: msg})
}

// Failures returns the issues with Fail severity.
func (r Result) Failures() []Issue {
	return r.filter(SeverityFail)
}

// Warnings returns the issues with Warn severity.
func (r Result) Warnings() []Issue {
	return r.filter(SeverityWarn)
}

func (r Result) filter(sev Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}

// Aggregate is Pass only with zero failures and zero warnings, Warn with
// warnings but no failures, Fail otherwise.
func (r Result) Aggregate() Severity {
	agg := SeverityPass
	for _, i := range r.Issues {
		if i.Severity > agg {
			agg = i.Severity
		}
	}
	return agg
}

// ExitCode maps the aggregate to the process exit code contract:
// 0 all pass, 1 at least one warning and no failures, 2 at least one failure.
func (r Result) ExitCode() int {
	switch r.Aggregate() {
	case SeverityFail:
		return 2
	case SeverityWarn:
		return 1
	default:
		return 0
	}
}
