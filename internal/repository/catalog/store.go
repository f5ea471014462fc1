// Package catalog loads strategy records from the metadata directory
// and caches the enriched result keyed on the directory's mtime.
package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/quantfolio/stratdex/internal/domain"
	"github.com/quantfolio/stratdex/internal/enrich"
	"github.com/quantfolio/stratdex/internal/metrics"
)

// Enricher derives the end year and keywords for a strategy title.
type Enricher interface {
	Lookup(title string) enrich.Enrichment
}

// Store is the catalog cache. Rebuilds replace the cached slice and the
// stored mtime in one step under the write lock, so readers observe
// either the previous set or the fully assembled new one, never a
// partial rebuild. There is no incremental invalidation: the only write
// path is a full rebuild.
type Store struct {
	metadataDir string
	enricher    Enricher
	logger      *zap.Logger

	mu       sync.RWMutex
	cached   []domain.Strategy
	loadedAt time.Time
	warmed   bool
}

// New creates a catalog store over the metadata directory.
func New(metadataDir string, enricher Enricher, logger *zap.Logger) *Store {
	return &Store{metadataDir: metadataDir, enricher: enricher, logger: logger}
}

// Load returns the current enriched strategy set. The cache is reused
// when it is at least as new as the directory's mtime; force bypasses
// the check. A vanished directory degrades to an empty set with a
// logged warning rather than an error.
func (s *Store) Load(ctx context.Context, force bool) []domain.Strategy {
	modTime := s.dirModTime()

	s.mu.RLock()
	if !force && s.warmed && !s.loadedAt.Before(modTime) {
		cached := s.cached
		s.mu.RUnlock()
		return cached
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have rebuilt while we waited for the lock.
	if !force && s.warmed && !s.loadedAt.Before(modTime) {
		return s.cached
	}

	strategies := s.rebuild()
	s.cached = strategies
	s.loadedAt = modTime
	s.warmed = true

	metrics.CatalogReloadsTotal.Inc()
	metrics.CatalogSize.Set(float64(len(strategies)))
	return strategies
}

// rebuild reads every metadata record, skipping files that fail to
// parse and records without a title. Per-file failures never abort the
// whole load.
func (s *Store) rebuild() []domain.Strategy {
	entries, err := os.ReadDir(s.metadataDir)
	if err != nil {
		s.logger.Warn("metadata directory unavailable",
			zap.String("dir", s.metadataDir), zap.Error(err))
		return []domain.Strategy{}
	}

	strategies := make([]domain.Strategy, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		path := filepath.Join(s.metadataDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("failed to read strategy record", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}

		var strategy domain.Strategy
		if err := json.Unmarshal(data, &strategy); err != nil {
			s.logger.Warn("failed to parse strategy record", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		if strategy.Title == "" {
			s.logger.Warn("strategy record missing title", zap.String("file", entry.Name()))
			continue
		}

		strategy.Filename = entry.Name()
		enrichment := s.enricher.Lookup(strategy.Title)
		strategy.EndYear = enrichment.EndYear
		strategy.Keywords = enrichment.Keywords

		strategies = append(strategies, strategy)
	}
	return strategies
}

// dirModTime returns the metadata directory's mtime, or the zero time
// when the directory does not exist.
func (s *Store) dirModTime() time.Time {
	info, err := os.Stat(s.metadataDir)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// Size returns the number of cached strategies without triggering a load.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cached)
}
