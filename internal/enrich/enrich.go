// Package enrich derives catalog attributes from per-strategy HTML documents.
package enrich

import (
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// DefaultCacheSize bounds the per-title memo when no size is configured.
const DefaultCacheSize = 1000

// backtestPeriodRe captures the YYYY-YYYY range following the backtest
// period marker in the source HTML. The second year is the end year.
var backtestPeriodRe = regexp.MustCompile(
	`Backtest period from source paper</div><div[^>]*>(\d{4})-(\d{4})</div>`)

// Enrichment holds the attributes derived from a strategy's HTML document.
// The zero value is the "unknown" sentinel used when no document exists.
type Enrichment struct {
	EndYear  int
	Keywords []string
}

// Enricher resolves strategy titles to HTML documents and extracts the
// end year and keyword list. Results are memoized per title for the
// process lifetime; document edits after first lookup are not observed.
type Enricher struct {
	htmlDir string
	memo    *lru.Cache[string, Enrichment]
	logger  *zap.Logger
}

// New creates an Enricher over the given HTML directory. cacheSize
// bounds the memo; values <= 0 fall back to DefaultCacheSize.
func New(htmlDir string, cacheSize int, logger *zap.Logger) (*Enricher, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	memo, err := lru.New[string, Enrichment](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Enricher{htmlDir: htmlDir, memo: memo, logger: logger}, nil
}

// Lookup returns the enrichment for a strategy title. Missing documents
// and parse failures degrade to the zero sentinel; the sentinel itself
// is memoized so repeated lookups for an absent document stay cheap.
func (e *Enricher) Lookup(title string) Enrichment {
	if cached, ok := e.memo.Get(title); ok {
		return cached
	}

	result := e.extract(title)
	e.memo.Add(title, result)
	return result
}

func (e *Enricher) extract(title string) Enrichment {
	path, ok := e.locateDocument(title)
	if !ok {
		return Enrichment{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		e.logger.Warn("failed to read strategy document",
			zap.String("title", title), zap.String("path", path), zap.Error(err))
		return Enrichment{}
	}
	html := string(data)

	return Enrichment{
		EndYear:  extractEndYear(html),
		Keywords: e.extractKeywords(title, html),
	}
}

// locateDocument maps a title to its HTML file, trying the literal
// underscore form first and escaped variants after, since source
// filenames percent-encode some punctuation. Returns false on a total
// miss; a miss is not an error.
func (e *Enricher) locateDocument(title string) (string, bool) {
	base := strings.ReplaceAll(title, " ", "_")
	variants := []string{
		base,
		url.PathEscape(base),
		manualEscape(base),
	}

	for _, v := range variants {
		path := filepath.Join(e.htmlDir, v+".html")
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}

	e.logger.Debug("no HTML document for strategy", zap.String("title", title))
	return "", false
}

// manualEscape percent-encodes the punctuation observed in source
// filenames that url.PathEscape leaves alone or encodes differently.
func manualEscape(name string) string {
	r := strings.NewReplacer(
		"?", "%3F",
		":", "%3A",
		"&", "%26",
		",", "%2C",
	)
	return r.Replace(name)
}

// extractEndYear returns the end year of the backtest period, or 0 when
// the marker is absent.
func extractEndYear(html string) int {
	m := backtestPeriodRe.FindStringSubmatch(html)
	if m == nil {
		return 0
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return 0
	}
	return year
}

// extractKeywords collects strategy-tag links from the keywords block
// in document order. Slugs are normalized: hyphens to spaces, lowercase.
func (e *Enricher) extractKeywords(title, html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		e.logger.Warn("failed to parse strategy document",
			zap.String("title", title), zap.Error(err))
		return nil
	}

	block := doc.Find("div.large-12.mrg-top-40.mrg-btm-50")
	if block.Length() == 0 {
		e.logger.Debug("no keywords block in strategy document", zap.String("title", title))
		return nil
	}

	var keywords []string
	block.Find("a.keyword").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}
		const marker = "strategy-tags/"
		idx := strings.LastIndex(href, marker)
		if idx < 0 {
			return
		}
		slug := strings.TrimSuffix(href[idx+len(marker):], "/")
		if slug == "" {
			return
		}
		keywords = append(keywords, strings.ToLower(strings.ReplaceAll(slug, "-", " ")))
	})
	return keywords
}
