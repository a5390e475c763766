// Package catalog loads and queries the shipped agent catalog: a fixed set of
// categorized agent descriptors plus the detection rule table bundled with it.
// The catalog is read-only; only the update manager ever replaces the on-disk
// copy, and every component receives a *Catalog by injection rather than
// through a process-wide singleton.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
)

// ErrAgentNotFound is returned by Lookup for ids absent from the catalog.
var ErrAgentNotFound = errors.New("agent not found in catalog")

// Catalog is the full loaded descriptor set, organized by category.
type Catalog struct {
	version    *semver.Version
	byID       map[string]*Agent
	byCategory map[Category][]*Agent
}

// New builds a catalog from descriptors. It enforces the structural
// invariants the loader relies on: non-empty unique ids, each in exactly one
// category. Test fixtures use this directly.
func New(version *semver.Version, agents []*Agent) (*Catalog, error) {
	c := &Catalog{
		version:    version,
		byID:       make(map[string]*Agent, len(agents)),
		byCategory: make(map[Category][]*Agent),
	}
	for _, a := range agents {
		if a.id == "" {
			return nil, fmt.Errorf("agent with empty id")
		}
		if _, dup := c.byID[a.id]; dup {
			return nil, fmt.Errorf("duplicate agent id %q", a.id)
		}
		c.byID[a.id] = a
		c.byCategory[a.category] = append(c.byCategory[a.category], a)
	}
	return c, nil
}

// Version returns the catalog's semantic version.
func (c *Catalog) Version() *semver.Version {
	return c.version
}

// Lookup returns the descriptor for id, or ErrAgentNotFound.
func (c *Catalog) Lookup(id string) (*Agent, error) {
	a, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, id)
	}
	return a, nil
}

// Has reports whether id exists in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// ByCategory returns the agents of a category in catalog order.
func (c *Catalog) ByCategory(cat Category) []*Agent {
	return c.byCategory[cat]
}

// AllIDs returns the set of every agent id in the catalog.
func (c *Catalog) AllIDs() map[string]bool {
	ids := make(map[string]bool, len(c.byID))
	for id := range c.byID {
		ids[id] = true
	}
	return ids
}

// BaselineIDs returns the set of ids in the baseline category.
func (c *Catalog) BaselineIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, cat := range Categories() {
		if !cat.IsBaseline() {
			continue
		}
		for _, a := range c.byCategory[cat] {
			ids[a.id] = true
		}
	}
	return ids
}

// SortedIDs returns every agent id sorted lexically.
func (c *Catalog) SortedIDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the total number of agents. This is the single source of truth
// for catalog size; nothing else hard-codes a total.
func (c *Catalog) Len() int {
	return len(c.byID)
}
