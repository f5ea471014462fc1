// Package catalog implements the strategy query engine.
package catalog

import (
	"context"

	"github.com/quantfolio/stratdex/internal/domain"
	"github.com/quantfolio/stratdex/internal/domain/filter"
	"github.com/quantfolio/stratdex/internal/domain/sortorder"
)

// Service applies filters and a sort order to the cached strategy set.
type Service struct {
	loader Loader
}

// New creates a catalog query service.
func New(loader Loader) *Service {
	return &Service{loader: loader}
}

// Query returns the ordered subset of strategies satisfying every
// supplied criterion. force bypasses the catalog cache.
func (s *Service) Query(
	ctx context.Context, f filter.Filter, order sortorder.Order, force bool,
) []domain.Strategy {
	f = f.Normalize()

	strategies := s.loader.Load(ctx, force)

	matched := make([]domain.Strategy, 0, len(strategies))
	for i := range strategies {
		if f.Matches(&strategies[i]) {
			matched = append(matched, strategies[i])
		}
	}

	sortorder.Apply(matched, order)
	return matched
}
