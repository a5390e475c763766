package detect

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"roster/internal/log"
)

// ScanManifests inspects well-known project manifest files under root and
// returns the technology tags they reveal, in a stable order. This is the
// bundled manifest-inspection collaborator; callers can also supply tags
// directly (e.g. via --tag) and skip scanning entirely.
func ScanManifests(root string) []string {
	tags := make(map[string]bool)

	scanPackageJSON(filepath.Join(root, "package.json"), tags)
	scanGoMod(filepath.Join(root, "go.mod"), tags)
	scanFilePresence(root, tags)

	sorted := make([]string, 0, len(tags))
	for t := range tags {
		sorted = append(sorted, t)
	}
	sort.Strings(sorted)

	log.Debug(log.CatDetect, "Manifest scan complete", "root", root, "tags", len(sorted))
	return sorted
}

// dependencyTags maps npm package names to technology tags.
var dependencyTags = map[string]string{
	"react":       "react",
	"next":        "nextjs",
	"vue":         "vue",
	"svelte":      "svelte",
	"express":     "express",
	"typescript":  "typescript",
	"tailwindcss": "tailwind",
	"jest":        "jest",
	"vitest":      "vitest",
	"prisma":      "prisma",
	"graphql":     "graphql",
}

func scanPackageJSON(path string, tags map[string]bool) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is inside the scanned project
	if err != nil {
		return
	}

	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		log.Warn(log.CatDetect, "Unparseable package.json ignored", "path", path)
		return
	}

	tags["node"] = true
	for dep := range manifest.Dependencies {
		if tag, ok := dependencyTags[dep]; ok {
			tags[tag] = true
		}
	}
	for dep := range manifest.DevDependencies {
		if tag, ok := dependencyTags[dep]; ok {
			tags[tag] = true
		}
	}
}

func scanGoMod(path string, tags map[string]bool) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is inside the scanned project
	if err != nil {
		return
	}
	tags["go"] = true
	content := string(data)
	if strings.Contains(content, "github.com/gin-gonic/gin") ||
		strings.Contains(content, "github.com/labstack/echo") {
		tags["go-web"] = true
	}
	if strings.Contains(content, "google.golang.org/grpc") {
		tags["grpc"] = true
	}
}

// presenceTags maps marker files to tags.
var presenceTags = map[string]string{
	"Dockerfile":         "docker",
	"docker-compose.yml": "docker",
	"requirements.txt":   "python",
	"pyproject.toml":     "python",
	"Cargo.toml":         "rust",
	"terraform":          "terraform",
	".github/workflows":  "ci",
}

func scanFilePresence(root string, tags map[string]bool) {
	for name, tag := range presenceTags {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			tags[tag] = true
		}
	}
}
