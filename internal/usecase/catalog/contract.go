package catalog

import (
	"context"

	"github.com/quantfolio/stratdex/internal/domain"
)

// Loader provides the current enriched strategy set.
type Loader interface {
	Load(ctx context.Context, force bool) []domain.Strategy
}
