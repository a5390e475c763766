// Package detect proposes agents based on technology tags observed in the
// project. The tag-to-agent mapping is a static many-to-many table bundled
// with the catalog; the engine never mutates state, it only proposes.
package detect

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"roster/internal/catalog"
	"roster/internal/log"
	"roster/internal/selection"
)

// RulesFile is the name of the detection mapping inside a catalog root.
const RulesFile = "detect.yaml"

// Rule maps one technology tag to the agents it suggests.
type Rule struct {
	Tag    string   `yaml:"tag"`    // e.g., "react"
	Agents []string `yaml:"agents"` // e.g., ["react-specialist"]
	Reason string   `yaml:"reason"` // shown to the user with the suggestion
}

type rulesFile struct {
	Rules []Rule `yaml:"detect"`
}

// Recommendation is one proposed activation.
type Recommendation struct {
	AgentID string
	Tag     string
	Reason  string
}

// Engine matches detected tags against the bundled rule table.
type Engine struct {
	cat   *catalog.Catalog
	rules []Rule
}

// LoadRules reads detect.yaml from a catalog filesystem. A rule referencing
// an agent id absent from the catalog means the shipped catalog is internally
// inconsistent, which is a load error like any other structural defect.
func LoadRules(fsys fs.FS, cat *catalog.Catalog) (*Engine, error) {
	content, err := fs.ReadFile(fsys, RulesFile)
	if err != nil {
		return nil, &catalog.LoadError{Path: RulesFile, Err: err}
	}

	var file rulesFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, &catalog.LoadError{Path: RulesFile, Err: fmt.Errorf("parse: %w", err)}
	}

	for _, r := range file.Rules {
		if r.Tag == "" {
			return nil, &catalog.LoadError{Path: RulesFile, Err: fmt.Errorf("rule with empty tag")}
		}
		for _, id := range r.Agents {
			if !cat.Has(id) {
				return nil, &catalog.LoadError{Path: RulesFile, Err: fmt.Errorf("rule %q references unknown agent %q", r.Tag, id)}
			}
		}
	}

	log.Debug(log.CatDetect, "Detection rules loaded", "rules", len(file.Rules))
	return &Engine{cat: cat, rules: file.Rules}, nil
}

// NewEngine builds an engine from in-memory rules. Test fixtures use this.
func NewEngine(cat *catalog.Catalog, rules []Rule) *Engine {
	return &Engine{cat: cat, rules: rules}
}

// Recommend returns proposals for agents that match a detected tag and are
// not already active. When multiple tags map to the same agent, the
// recommendation is emitted once with the first matching reason in tag-scan
// order.
func (e *Engine) Recommend(tags []string, active selection.State) []Recommendation {
	ruleByTag := make(map[string][]Rule)
	for _, r := range e.rules {
		ruleByTag[r.Tag] = append(ruleByTag[r.Tag], r)
	}

	seen := make(map[string]bool)
	var recs []Recommendation
	for _, tag := range tags {
		for _, rule := range ruleByTag[tag] {
			for _, id := range rule.Agents {
				if active.Contains(id) || seen[id] {
					continue
				}
				seen[id] = true
				recs = append(recs, Recommendation{AgentID: id, Tag: tag, Reason: rule.Reason})
			}
		}
	}

	log.Debug(log.CatDetect, "Recommendations computed", "tags", len(tags), "recommendations", len(recs))
	return recs
}
