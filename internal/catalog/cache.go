package catalog

import (
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"roster/internal/log"
)

// loadCache memoizes catalogs per root directory. Entries are invalidated by
// catalog.yaml's mtime, so an update that replaces the catalog wholesale is
// picked up on the next load without process restart.
var loadCache = gocache.New(gocache.NoExpiration, 10*time.Minute)

type cacheEntry struct {
	catalog *Catalog
	modTime time.Time
}

// LoadDir loads the catalog installed under root, reusing a cached copy when
// the descriptor file has not changed.
func LoadDir(root string) (*Catalog, error) {
	info, err := os.Stat(filepath.Join(root, CatalogFile))
	if err != nil {
		return nil, &LoadError{Path: filepath.Join(root, CatalogFile), Err: err}
	}

	if v, ok := loadCache.Get(root); ok {
		entry := v.(cacheEntry)
		if entry.modTime.Equal(info.ModTime()) {
			log.Debug(log.CatCatalog, "Catalog cache hit", "root", root)
			return entry.catalog, nil
		}
	}

	c, err := Load(os.DirFS(root))
	if err != nil {
		return nil, err
	}
	loadCache.Set(root, cacheEntry{catalog: c, modTime: info.ModTime()}, gocache.NoExpiration)
	return c, nil
}
