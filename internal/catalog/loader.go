package catalog

import (
	"fmt"
	"io/fs"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"roster/internal/log"
)

// CatalogFile is the name of the descriptor file inside a catalog root.
const CatalogFile = "catalog.yaml"

// LoadError indicates the catalog storage is missing or structurally
// malformed. It is fatal: no component may proceed with a partially loaded
// catalog.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading catalog %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// catalogFile is the root structure of catalog.yaml.
type catalogFile struct {
	Version string     `yaml:"version"`
	Agents  []agentDef `yaml:"agents"`
}

// agentDef defines a single agent in YAML.
type agentDef struct {
	ID          string   `yaml:"id"`          // e.g., "react-specialist"
	Category    string   `yaml:"category"`    // e.g., "frontend"
	Description string   `yaml:"description"` // One-line description
	Examples    []string `yaml:"examples"`    // Usage examples
}

// Agent ids are lowercase hyphen-separated slugs; category is never encoded
// in the id.
var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Load parses catalog.yaml from a catalog filesystem (an installed catalog
// root or the embedded default).
func Load(fsys fs.FS) (*Catalog, error) {
	content, err := fs.ReadFile(fsys, CatalogFile)
	if err != nil {
		return nil, &LoadError{Path: CatalogFile, Err: err}
	}

	var file catalogFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, &LoadError{Path: CatalogFile, Err: fmt.Errorf("parse: %w", err)}
	}

	version, err := semver.NewVersion(file.Version)
	if err != nil {
		return nil, &LoadError{Path: CatalogFile, Err: fmt.Errorf("version %q: %w", file.Version, err)}
	}

	agents := make([]*Agent, 0, len(file.Agents))
	for i, def := range file.Agents {
		if def.ID == "" {
			return nil, &LoadError{Path: CatalogFile, Err: fmt.Errorf("agent %d: id is required", i)}
		}
		if !idPattern.MatchString(def.ID) {
			return nil, &LoadError{Path: CatalogFile, Err: fmt.Errorf("agent %q: id must be a lowercase hyphenated slug", def.ID)}
		}
		if def.Category == "" {
			return nil, &LoadError{Path: CatalogFile, Err: fmt.Errorf("agent %q: category is required", def.ID)}
		}
		cat, err := ParseCategory(def.Category)
		if err != nil {
			return nil, &LoadError{Path: CatalogFile, Err: fmt.Errorf("agent %q: %w", def.ID, err)}
		}
		agents = append(agents, NewAgent(def.ID, cat, def.Description, def.Examples...))
	}

	c, err := New(version, agents)
	if err != nil {
		return nil, &LoadError{Path: CatalogFile, Err: err}
	}

	log.Debug(log.CatCatalog, "Catalog loaded", "version", version, "agents", c.Len())
	return c, nil
}
