package catalog

import (
	"context"
	"sort"
	"strings"
)

// Categories lists the keyword taxonomy in presentation order.
// Uncategorized keywords fall into Other.
var Categories = []string{
	"Trading Style",
	"Asset Class",
	"Factor Type",
	"Time Horizon",
	"Market",
	"Region",
	"Other",
}

// categoryTerms maps each category to the substrings that place a
// keyword into it. First matching category wins.
var categoryTerms = map[string][]string{
	"Trading Style": {"momentum", "reversal", "trend following", "mean reversion", "arbitrage", "carry", "volatility", "pairs trading"},
	"Asset Class":   {"stocks", "bonds", "forex", "commodities", "options", "futures", "crypto", "etf"},
	"Factor Type":   {"value", "size", "quality", "low volatility", "growth", "profitability", "liquidity"},
	"Time Horizon":  {"intraday", "daily", "weekly", "monthly", "quarterly", "yearly"},
	"Market":        {"equity", "fixed income", "currency", "commodity", "cryptocurrency"},
	"Region":        {"global", "us", "europe", "asia", "emerging markets", "china", "japan"},
}

// KeywordDetail is one keyword with its count and owning strategies.
type KeywordDetail struct {
	Count      int      `json:"count"`
	Strategies []string `json:"strategies"`
}

// KeywordCount is one keyword with its count only.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// Keywords groups every observed keyword into the taxonomy, with the
// strategies that carry it.
func (s *Service) Keywords(ctx context.Context) map[string]map[string]KeywordDetail {
	strategies := s.loader.Load(ctx, false)

	counts := make(map[string]int)
	owners := make(map[string][]string)
	for i := range strategies {
		for _, k := range strategies[i].Keywords {
			counts[k]++
			owners[k] = append(owners[k], strategies[i].Title)
		}
	}

	categorized := make(map[string]map[string]KeywordDetail, len(Categories))
	for _, cat := range Categories {
		categorized[cat] = make(map[string]KeywordDetail)
	}

	for keyword, count := range counts {
		cat := categorize(keyword)
		categorized[cat][keyword] = KeywordDetail{Count: count, Strategies: owners[keyword]}
	}
	return categorized
}

// KeywordSummary groups keyword counts into the taxonomy, sorted by
// descending count then keyword.
func (s *Service) KeywordSummary(ctx context.Context) map[string][]KeywordCount {
	strategies := s.loader.Load(ctx, false)

	counts := make(map[string]int)
	for i := range strategies {
		for _, k := range strategies[i].Keywords {
			counts[k]++
		}
	}

	ordered := make([]KeywordCount, 0, len(counts))
	for keyword, count := range counts {
		ordered = append(ordered, KeywordCount{Keyword: keyword, Count: count})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Count != ordered[j].Count {
			return ordered[i].Count > ordered[j].Count
		}
		return ordered[i].Keyword < ordered[j].Keyword
	})

	categorized := make(map[string][]KeywordCount, len(Categories))
	for _, cat := range Categories {
		categorized[cat] = []KeywordCount{}
	}
	for _, kc := range ordered {
		cat := categorize(kc.Keyword)
		categorized[cat] = append(categorized[cat], kc)
	}
	return categorized
}

// categorize places a keyword into the first category with a matching
// term, falling back to Other.
func categorize(keyword string) string {
	normalized := strings.ReplaceAll(strings.ToLower(keyword), "-", " ")
	for _, cat := range Categories {
		for _, term := range categoryTerms[cat] {
			if strings.Contains(normalized, term) {
				return cat
			}
		}
	}
	return "Other"
}
