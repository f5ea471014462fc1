// Package content serves raw strategy HTML documents by name.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantfolio/stratdex/internal/domain"
)

// Store reads strategy HTML documents from the html directory.
type Store struct {
	htmlDir string
}

// New creates a content store over the HTML directory.
func New(htmlDir string) *Store {
	return &Store{htmlDir: htmlDir}
}

// Get returns the HTML document for a strategy name. The name may carry
// a .json suffix from the metadata filename; spaces map to underscores.
// A missing or blank document yields domain.ErrContentNotFound.
func (s *Store) Get(name string) (string, error) {
	name = strings.TrimSuffix(name, ".json")
	name = strings.ReplaceAll(name, " ", "_")

	path := filepath.Join(s.htmlDir, name+".html")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, domain.ErrContentNotFound)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("empty document %s: %w", path, domain.ErrContentNotFound)
	}
	return string(data), nil
}
