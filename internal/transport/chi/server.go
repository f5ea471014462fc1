// Package chi implements the HTTP API over the catalog and
// summarization services.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/quantfolio/stratdex/internal/domain"
	"github.com/quantfolio/stratdex/internal/domain/filter"
	"github.com/quantfolio/stratdex/internal/domain/sortorder"
	logpkg "github.com/quantfolio/stratdex/internal/logger"
	"github.com/quantfolio/stratdex/internal/modelconf"
	cataloguc "github.com/quantfolio/stratdex/internal/usecase/catalog"
	"github.com/quantfolio/stratdex/internal/usecase/summarize"
)

// Error codes returned in the JSON error envelope.
const (
	codeBadRequest    = "bad_request"
	codeNotFound      = "not_found"
	codeInternalError = "internal_error"
)

// ContentGetter serves raw strategy HTML documents.
type ContentGetter interface {
	Get(name string) (string, error)
}

// Summarizer produces the two-model summary of a document.
type Summarizer interface {
	Summarize(ctx context.Context, html string) (summarize.Result, error)
}

// ModelProvider supplies the active model configuration.
type ModelProvider interface {
	Current() modelconf.Config
}

// CatalogSizer reports the cached catalog size for the health endpoint.
type CatalogSizer interface {
	Size() int
}

// Server handles the HTTP API.
type Server struct {
	catalog    *cataloguc.Service
	content    ContentGetter
	summarizer Summarizer
	models     ModelProvider
	sizer      CatalogSizer
	logger     *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	content ContentGetter,
	summarizer Summarizer,
	models ModelProvider,
	sizer CatalogSizer,
	logger *zap.Logger,
) *Server {
	return &Server{
		catalog:    catalog,
		content:    content,
		summarizer: summarizer,
		models:     models,
		sizer:      sizer,
		logger:     logger,
	}
}

// Routes mounts the API on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/strategies", s.handleStrategies)
		r.Get("/strategy/{name}/summary", s.handleSummary)
		r.Get("/strategy/{name}/content", s.handleContent)
		r.Get("/keywords", s.handleKeywords)
		r.Get("/keywords/summary", s.handleKeywordSummary)
		r.Get("/models", s.handleModels)
	})
}

// handleStrategies handles GET /api/strategies.
func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := filter.Filter{
		MinSharpe:        parseFloatParam(q.Get("min_sharpe")),
		MaxDrawdown:      parseFloatParam(q.Get("max_drawdown")),
		TradingFrequency: q.Get("trading_frequency"),
		AssetClasses:     listParam(q, "asset_classes"),
		Keywords:         listParam(q, "keywords"),
		Search:           q.Get("search"),
	}

	order := sortorder.Order(q.Get("sort_by"))
	if order == "" {
		order = sortorder.Sharpe
	}

	force := q.Get("reload") == "true"

	logpkg.FromContext(r.Context()).Debug("strategy query",
		zap.Strings("asset_classes", f.AssetClasses),
		zap.Strings("keywords", f.Keywords),
		zap.String("sort_by", string(order)),
		zap.Bool("reload", force),
	)

	strategies := s.catalog.Query(r.Context(), f, order, force)
	writeJSON(w, http.StatusOK, strategies)
}

// handleSummary handles GET /api/strategy/{name}/summary.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	html, err := s.content.Get(name)
	if err != nil {
		s.handleError(w, err)
		return
	}

	result, err := s.summarizer.Summarize(r.Context(), html)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleContent handles GET /api/strategy/{name}/content.
func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	html, err := s.content.Get(name)
	if err != nil {
		s.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

// handleKeywords handles GET /api/keywords.
func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Keywords(r.Context()))
}

// handleKeywordSummary handles GET /api/keywords/summary.
func (s *Server) handleKeywordSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.KeywordSummary(r.Context()))
}

// handleModels handles GET /api/models.
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.models.Current())
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"catalog_size": s.sizer.Size(),
	})
}

// handleError maps domain sentinels to HTTP statuses.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrContentNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, domain.ErrContentNotFound.Error())
	case errors.Is(err, domain.ErrNoContent):
		writeError(w, http.StatusNotFound, codeNotFound, domain.ErrNoContent.Error())
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

// parseFloatParam parses an optional float query parameter. An absent
// or unparseable value degrades to "filter not applied".
func parseFloatParam(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// listParam reads a repeated query parameter, accepting both the
// bracketed form the frontend sends (key[]) and the plain form.
func listParam(q map[string][]string, key string) []string {
	if vals, ok := q[key+"[]"]; ok && len(vals) > 0 {
		return vals
	}
	return q[key]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
