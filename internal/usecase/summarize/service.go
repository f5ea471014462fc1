// Package summarize turns strategy documents into two independent
// model-generated summaries.
package summarize

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/quantfolio/stratdex/internal/domain"
	"github.com/quantfolio/stratdex/internal/modelconf"
)

// DefaultMaxChars caps the text submitted to each model. Oversized
// documents are truncated, bounding cost and latency.
const DefaultMaxChars = 50000

// Summary is one model's output. Text carries either the generated
// summary or an inline error string scoped to that model's call.
type Summary struct {
	Model string `json:"model"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Result holds both model summaries.
type Result struct {
	Primary   Summary `json:"primary_summary"`
	Secondary Summary `json:"secondary_summary"`
}

// Service orchestrates the two-model summarization fan-out.
type Service struct {
	completer Completer
	models    ModelProvider
	maxChars  int
}

// New creates a summarization service. maxChars <= 0 falls back to
// DefaultMaxChars.
func New(completer Completer, models ModelProvider, maxChars int) *Service {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Service{completer: completer, models: models, maxChars: maxChars}
}

// Summarize strips markup from the document, truncates the text, and
// issues both model calls concurrently. Each call's failure becomes an
// inline error string without aborting the other; only a document with
// no text short-circuits before any backend call.
func (s *Service) Summarize(ctx context.Context, html string) (Result, error) {
	if html == "" {
		return Result{}, fmt.Errorf("empty document: %w", domain.ErrNoContent)
	}

	text, err := extractText(html)
	if err != nil {
		return Result{}, fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return Result{}, fmt.Errorf("document has no text: %w", domain.ErrNoContent)
	}
	text = truncate(text, s.maxChars)

	cfg := s.models.Current()

	var result Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.Primary = s.summarizeWith(gctx, cfg.Primary, text)
		return nil
	})
	g.Go(func() error {
		result.Secondary = s.summarizeWith(gctx, cfg.Secondary, text)
		return nil
	})
	_ = g.Wait() // closures never return an error; failures are inline

	return result, nil
}

// summarizeWith runs one model call, converting its failure into a value.
func (s *Service) summarizeWith(ctx context.Context, model modelconf.Model, text string) Summary {
	out, err := s.completer.Complete(ctx, model.ID, text)
	if err != nil {
		return Summary{
			Model: model.ID,
			Label: model.Label,
			Text:  fmt.Sprintf("error generating %s summary: %v", model.Label, err),
		}
	}
	return Summary{Model: model.ID, Label: model.Label, Text: out}
}

// extractText strips all markup from the document.
func extractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	return doc.Text(), nil
}

// truncate cuts text to at most max bytes without splitting a rune.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := text[:max]
	for !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
