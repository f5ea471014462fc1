package domain

import "errors"

var (
	// ErrContentNotFound signals a missing strategy HTML document.
	ErrContentNotFound = errors.New("strategy content not found")
	// ErrNoContent signals that there is nothing to summarize.
	ErrNoContent = errors.New("no content to summarize")
	// ErrSummaryProviderError signals a summarization backend failure.
	ErrSummaryProviderError = errors.New("summary provider error")
	// ErrInvalidModelConfig signals a model configuration that fails the shape check.
	ErrInvalidModelConfig = errors.New("invalid model configuration")
)
