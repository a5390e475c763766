// Package templates embeds the shipped catalog and the project document
// template. The embedded catalog is the default source the update manager
// installs from; a download collaborator can supply any other fs.FS in its
// place.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed catalog
var catalogFiles embed.FS

//go:embed project.md
var projectTemplate string

// CatalogFS returns the embedded catalog copy (catalog.yaml, detect.yaml)
// rooted at the files themselves, matching an installed catalog root's
// layout.
func CatalogFS() fs.FS {
	sub, err := fs.Sub(catalogFiles, "catalog")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}

// ProjectTemplate returns the initial project.md content.
func ProjectTemplate() string {
	return projectTemplate
}
