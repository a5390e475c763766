// Package testutil provides fixture builders shared by package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/require"

	"roster/internal/catalog"
	"roster/internal/paths"
)

// CatalogBuilder accumulates agents for a fixture catalog.
type CatalogBuilder struct {
	t       *testing.T
	version string
	agents  []*catalog.Agent
}

// NewCatalog creates a builder with a default version.
func NewCatalog(t *testing.T) *CatalogBuilder {
	t.Helper()
	return &CatalogBuilder{t: t, version: "1.0.0"}
}

// WithVersion overrides the catalog version.
func (b *CatalogBuilder) WithVersion(v string) *CatalogBuilder {
	b.version = v
	return b
}

// WithAgent adds one agent.
func (b *CatalogBuilder) WithAgent(id string, cat catalog.Category) *CatalogBuilder {
	b.agents = append(b.agents, catalog.NewAgent(id, cat, "fixture agent "+id))
	return b
}

// WithAgents adds n generated agents for a category, ids "<prefix>-1".."-n".
func (b *CatalogBuilder) WithAgents(prefix string, cat catalog.Category, n int) *CatalogBuilder {
	for i := 1; i <= n; i++ {
		b.WithAgent(fmt.Sprintf("%s-%d", prefix, i), cat)
	}
	return b
}

// Build assembles the catalog.
func (b *CatalogBuilder) Build() *catalog.Catalog {
	b.t.Helper()
	version, err := semver.NewVersion(b.version)
	require.NoError(b.t, err)
	c, err := catalog.New(version, b.agents)
	require.NoError(b.t, err)
	return c
}

// SampleDocument is a well-formed project document used across tests.
const SampleDocument = `# Project Configuration

Intro text the tool must never touch.

## Project Overview

An internal billing service.

## Tech Stack

Go, Postgres, React.

## Active Capabilities

- code-reviewer
- react-specialist

## Notes

  indented user content
	and a tab line
`

// WriteProject creates a .roster project dir under root with the given
// document content and returns the resolved project dir.
func WriteProject(t *testing.T, root, content string) string {
	t.Helper()
	projectDir := paths.ResolveProjectDir(root)
	require.NoError(t, os.MkdirAll(projectDir, 0o750))
	require.NoError(t, os.WriteFile(paths.DocumentPath(projectDir), []byte(content), 0o640))
	return projectDir
}

// WriteCatalogDir materializes catalog.yaml (and an empty detect.yaml) under
// dir so loader-facing tests can use a real directory.
func WriteCatalogDir(t *testing.T, dir, catalogYAML string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte(catalogYAML), 0o640))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "detect.yaml"), []byte("detect: []\n"), 0o640))
}
