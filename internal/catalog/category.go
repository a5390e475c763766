package catalog

import "fmt"

// Category classifies agents. The set is closed: an unknown category name in
// a catalog file is a load error, never a runtime state.
type Category int

const (
	// CategoryCore is the baseline category; its agents are expected to be
	// active in every project.
	CategoryCore Category = iota
	CategoryFrontend
	CategoryBackend
	CategoryInfrastructure
	CategoryData
	CategoryQuality
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{
		CategoryCore,
		CategoryFrontend,
		CategoryBackend,
		CategoryInfrastructure,
		CategoryData,
		CategoryQuality,
	}
}

// String returns the lowercase name used in catalog files.
func (c Category) String() string {
	switch c {
	case CategoryCore:
		return "core"
	case CategoryFrontend:
		return "frontend"
	case CategoryBackend:
		return "backend"
	case CategoryInfrastructure:
		return "infrastructure"
	case CategoryData:
		return "data"
	case CategoryQuality:
		return "quality"
	default:
		return "unknown"
	}
}

// Title returns the human-readable category name.
func (c Category) Title() string {
	switch c {
	case CategoryCore:
		return "Core"
	case CategoryFrontend:
		return "Frontend"
	case CategoryBackend:
		return "Backend"
	case CategoryInfrastructure:
		return "Infrastructure"
	case CategoryData:
		return "Data"
	case CategoryQuality:
		return "Quality"
	default:
		return "Unknown"
	}
}

// IsBaseline reports whether agents in this category are expected to always
// be active.
func (c Category) IsBaseline() bool {
	return c == CategoryCore
}

// ParseCategory converts a catalog-file category name into a Category.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories() {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", name)
}
