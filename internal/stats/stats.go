// Package stats aggregates the activation set against the catalog. It is a
// pure function of in-memory state: it never reads or writes files.
package stats

import (
	"roster/internal/catalog"
	"roster/internal/selection"
)

// Recommendation grades a category's activation level.
type Recommendation int

const (
	// RecommendNone: nothing in the category is active.
	RecommendNone Recommendation = iota
	// RecommendCritical: a baseline category is not fully active.
	RecommendCritical
	// RecommendLow: below 40% active.
	RecommendLow
	// RecommendBalanced: between 40% and 80% active.
	RecommendBalanced
	// RecommendGood: at or above 80% active.
	RecommendGood
)

func (r Recommendation) String() string {
	switch r {
	case RecommendNone:
		return "none"
	case RecommendCritical:
		return "critical"
	case RecommendLow:
		return "low"
	case RecommendBalanced:
		return "balanced"
	case RecommendGood:
		return "good"
	default:
		return "unknown"
	}
}

// CategoryCount is the active/total pair for one category.
type CategoryCount struct {
	Active int
	Total  int
}

// Engine computes statistics for one (catalog, activation set) pair.
type Engine struct {
	cat    *catalog.Catalog
	active selection.State
}

// NewEngine builds an engine over already-loaded state.
func NewEngine(cat *catalog.Catalog, active selection.State) *Engine {
	return &Engine{cat: cat, active: active}
}

// CategoryCount returns (activeCount, totalCount) for one category. Only ids
// present in the catalog count as active; stale unknown ids are a validation
// concern, not a statistics one.
func (e *Engine) CategoryCount(cat catalog.Category) CategoryCount {
	agents := e.cat.ByCategory(cat)
	count := CategoryCount{Total: len(agents)}
	for _, a := range agents {
		if e.active.Contains(a.ID()) {
			count.Active++
		}
	}
	return count
}

// PerCategoryCounts returns counts for every category in display order.
func (e *Engine) PerCategoryCounts() map[catalog.Category]CategoryCount {
	counts := make(map[catalog.Category]CategoryCount, len(catalog.Categories()))
	for _, cat := range catalog.Categories() {
		counts[cat] = e.CategoryCount(cat)
	}
	return counts
}

// OverallRate returns the activation rate across the whole catalog as a
// percentage, rounded down. Ids not in the catalog do not count.
func (e *Engine) OverallRate() int {
	total := e.cat.Len()
	if total == 0 {
		return 0
	}
	active := 0
	for id := range e.cat.AllIDs() {
		if e.active.Contains(id) {
			active++
		}
	}
	return active * 100 / total
}

// Recommend grades one category with fixed thresholds: a baseline category is
// critical unless 100% active; otherwise none at 0%, low below 40%, good at
// or above 80%, balanced in between.
func (e *Engine) Recommend(cat catalog.Category) Recommendation {
	count := e.CategoryCount(cat)
	if count.Total == 0 {
		return RecommendNone
	}

	if cat.IsBaseline() {
		if count.Active < count.Total {
			return RecommendCritical
		}
		return RecommendGood
	}

	percent := count.Active * 100 / count.Total
	switch {
	case count.Active == 0:
		return RecommendNone
	case percent < 40:
		return RecommendLow
	case percent >= 80:
		return RecommendGood
	default:
		return RecommendBalanced
	}
}
