package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"roster/internal/catalog"
	"roster/internal/selection"
	"roster/internal/testutil"
)

func TestCategoryCounts(t *testing.T) {
	cat := testutil.NewCatalog(t).
		WithAgents("core", catalog.CategoryCore, 10).
		WithAgents("fe", catalog.CategoryFrontend, 8).
		Build()

	active := selection.NewState(
		"core-1", "core-2", "core-3", "core-4", "core-5",
		"core-6", "core-7", "core-8", "core-9", "core-10",
		"fe-1", "fe-2",
	)
	e := NewEngine(cat, active)

	require.Equal(t, CategoryCount{Active: 10, Total: 10}, e.CategoryCount(catalog.CategoryCore))
	require.Equal(t, CategoryCount{Active: 2, Total: 8}, e.CategoryCount(catalog.CategoryFrontend))
	require.Equal(t, CategoryCount{Active: 0, Total: 0}, e.CategoryCount(catalog.CategoryData))

	// 12 of 18 = 66.67%, rounded down.
	require.Equal(t, 66, e.OverallRate())
}

func TestOverallRateIgnoresUnknownIDs(t *testing.T) {
	cat := testutil.NewCatalog(t).WithAgents("core", catalog.CategoryCore, 4).Build()
	e := NewEngine(cat, selection.NewState("core-1", "ghost", "other-ghost"))

	require.Equal(t, 25, e.OverallRate())
	require.Equal(t, CategoryCount{Active: 1, Total: 4}, e.CategoryCount(catalog.CategoryCore))
}

func TestOverallRateEmptyCatalog(t *testing.T) {
	cat := testutil.NewCatalog(t).Build()
	require.Equal(t, 0, NewEngine(cat, selection.NewState("ghost")).OverallRate())
}

func TestRecommendBaseline(t *testing.T) {
	cat := testutil.NewCatalog(t).WithAgents("core", catalog.CategoryCore, 3).Build()

	e := NewEngine(cat, selection.NewState("core-1", "core-2"))
	require.Equal(t, RecommendCritical, e.Recommend(catalog.CategoryCore))

	e = NewEngine(cat, selection.NewState())
	require.Equal(t, RecommendCritical, e.Recommend(catalog.CategoryCore))

	e = NewEngine(cat, selection.NewState("core-1", "core-2", "core-3"))
	require.Equal(t, RecommendGood, e.Recommend(catalog.CategoryCore))
}

func TestRecommendThresholds(t *testing.T) {
	cat := testutil.NewCatalog(t).WithAgents("fe", catalog.CategoryFrontend, 10).Build()

	tests := []struct {
		name   string
		active int
		want   Recommendation
	}{
		{name: "zero active", active: 0, want: RecommendNone},
		{name: "below 40 percent", active: 3, want: RecommendLow},
		{name: "at 40 percent", active: 4, want: RecommendBalanced},
		{name: "below 80 percent", active: 7, want: RecommendBalanced},
		{name: "at 80 percent", active: 8, want: RecommendGood},
		{name: "full", active: 10, want: RecommendGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active := selection.State{}
			for i := 1; i <= tt.active; i++ {
				active = active.Toggle(cat.ByCategory(catalog.CategoryFrontend)[i-1].ID())
			}
			require.Equal(t, tt.want, NewEngine(cat, active).Recommend(catalog.CategoryFrontend))
		})
	}
}

func TestRecommendEmptyCategory(t *testing.T) {
	cat := testutil.NewCatalog(t).WithAgents("core", catalog.CategoryCore, 1).Build()
	e := NewEngine(cat, selection.State{})
	require.Equal(t, RecommendNone, e.Recommend(catalog.CategoryData))
}

func TestPerCategoryCounts(t *testing.T) {
	cat := testutil.NewCatalog(t).
		WithAgents("core", catalog.CategoryCore, 2).
		WithAgents("be", catalog.CategoryBackend, 3).
		Build()
	counts := NewEngine(cat, selection.NewState("core-1", "be-1")).PerCategoryCounts()

	require.Len(t, counts, len(catalog.Categories()))
	require.Equal(t, CategoryCount{Active: 1, Total: 2}, counts[catalog.CategoryCore])
	require.Equal(t, CategoryCount{Active: 1, Total: 3}, counts[catalog.CategoryBackend])
	require.Equal(t, CategoryCount{Active: 0, Total: 0}, counts[catalog.CategoryQuality])
}
