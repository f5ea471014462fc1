// Package modelconf provides hot-reloadable summarization model configuration.
package modelconf

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/quantfolio/stratdex/internal/domain"
)

// Model identifies a summarization backend.
type Model struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Config names the primary and secondary summarization models.
type Config struct {
	Primary   Model `json:"primary"`
	Secondary Model `json:"secondary"`
}

// Defaults returns the built-in model configuration used when no valid
// external configuration is available.
func Defaults() Config {
	return Config{
		Primary:   Model{ID: "openai/gpt-oss-120b", Label: "GPT-OSS 120B"},
		Secondary: Model{ID: "moonshotai/kimi-k2-instruct", Label: "Kimi K2 Instruct (1T)"},
	}
}

// Validate checks the minimal required shape.
func (c Config) Validate() error {
	if c.Primary.ID == "" || c.Primary.Label == "" {
		return fmt.Errorf("%w: primary model requires id and label", domain.ErrInvalidModelConfig)
	}
	if c.Secondary.ID == "" || c.Secondary.Label == "" {
		return fmt.Errorf("%w: secondary model requires id and label", domain.ErrInvalidModelConfig)
	}
	return nil
}

// Loader re-reads the model configuration file on every use so
// operators can swap models without a restart. An invalid or missing
// file never replaces the last valid configuration; the loader starts
// from the built-in defaults.
type Loader struct {
	path   string
	logger *zap.Logger

	mu   sync.Mutex
	last Config
}

// NewLoader creates a loader for the given configuration file path.
func NewLoader(path string, logger *zap.Logger) *Loader {
	return &Loader{path: path, logger: logger, last: Defaults()}
}

// Current returns the active model configuration, re-reading the file.
func (l *Loader) Current() Config {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := l.read()
	if err != nil {
		l.logger.Warn("model config unavailable, keeping last valid configuration",
			zap.String("path", l.path), zap.Error(err))
		return l.last
	}

	l.last = cfg
	return cfg
}

func (l *Loader) read() (Config, error) {
	if l.path == "" {
		return Config{}, fmt.Errorf("no model config path set")
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return Config{}, fmt.Errorf("read model config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse model config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
