package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"roster/internal/log"
)

// renameFile is swapped out by tests to simulate a crash between temp-file
// creation and rename.
var renameFile = os.Rename

// Read loads and parses the document at path.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is resolved from the project directory
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	doc, err := Parse(string(data))
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Write serializes doc to path atomically: the content goes to a temporary
// file in the same directory which is then renamed over the target, so a
// crash mid-write can never truncate the user's document.
func Write(path string, doc *Document) error {
	if err := WriteFileAtomic(path, []byte(doc.Serialize())); err != nil {
		return err
	}
	log.Debug(log.CatDoc, "Document written", "path", path, "sections", len(doc.Sections))
	return nil
}

// WriteFileAtomic writes data to path via temp-file-then-rename. On any
// failure the original file remains intact.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := renameFile(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
