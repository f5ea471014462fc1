package summarize

import (
	"context"

	"github.com/quantfolio/stratdex/internal/modelconf"
)

// Completer produces a one-paragraph summary of strategy text using the
// named model.
type Completer interface {
	Complete(ctx context.Context, modelID, text string) (string, error)
}

// ModelProvider supplies the active model configuration. It is consulted
// on every request so configuration changes take effect immediately.
type ModelProvider interface {
	Current() modelconf.Config
}
