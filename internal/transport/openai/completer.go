// Package openai implements the summarization completer against an
// OpenAI-compatible chat-completion API (e.g. Groq).
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/quantfolio/stratdex/internal/domain"
	"github.com/quantfolio/stratdex/internal/metrics"
)

const (
	systemPrompt = "You are an expert in finance and investment strategies. " +
		"Provide a thorough analysis of investment strategies."
	userPromptPrefix = "Summarize this investment strategy in one paragraph:\n\n"
)

// Completer calls an OpenAI-compatible chat-completion endpoint.
type Completer struct {
	client *openai.Client
	hasKey bool
	logger *zap.Logger
}

// Config holds the completion provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Logger  *zap.Logger
}

// NewCompleter creates a chat-completion client. A missing API key is
// not fatal at construction time; each call then fails with a per-call
// error so the rest of the service keeps working.
func NewCompleter(cfg *Config) *Completer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Completer{
		client: openai.NewClientWithConfig(clientCfg),
		hasKey: cfg.APIKey != "",
		logger: cfg.Logger,
	}
}

// Complete generates a one-paragraph summary of the text using the
// named model.
func (c *Completer) Complete(ctx context.Context, modelID, text string) (string, error) {
	if !c.hasKey {
		return "", fmt.Errorf("api key is not set: %w", domain.ErrSummaryProviderError)
	}

	req := openai.ChatCompletionRequest{
		Model: modelID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPromptPrefix + text},
		},
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.SummaryRequestsTotal.WithLabelValues(modelID, "error").Inc()
		return "", parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.SummaryRequestsTotal.WithLabelValues(modelID, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrSummaryProviderError)
	}

	metrics.SummaryRequestsTotal.WithLabelValues(modelID, "success").Inc()
	metrics.SummaryRequestDuration.WithLabelValues(modelID).Observe(duration.Seconds())

	return resp.Choices[0].Message.Content, nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors wrap domain.ErrSummaryProviderError.
func parseAPIError(err error) error {
	wrap := domain.ErrSummaryProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("completion API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("completion API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("completion API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("completion request failed: %v: %w", err, wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
