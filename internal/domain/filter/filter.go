// Package filter implements the conjunctive strategy filter predicate.
package filter

import (
	"strings"

	"github.com/quantfolio/stratdex/internal/domain"
)

// Filter is the set of optional screening criteria. Nil pointers and
// empty values mean "criterion not supplied". A strategy must satisfy
// every supplied criterion to pass.
type Filter struct {
	MinSharpe        *float64
	MaxDrawdown      *float64
	TradingFrequency string
	AssetClasses     []string
	Keywords         []string
	Search           string
}

// Normalize lowercases the free-text query and rewrites supplied
// keywords to the catalog's canonical form (hyphens to spaces,
// lowercase). Call once after constructing a Filter from user input.
func (f Filter) Normalize() Filter {
	f.Search = strings.ToLower(f.Search)
	if len(f.Keywords) > 0 {
		normalized := make([]string, len(f.Keywords))
		for i, k := range f.Keywords {
			normalized[i] = NormalizeKeyword(k)
		}
		f.Keywords = normalized
	}
	return f
}

// NormalizeKeyword rewrites a keyword to the catalog's canonical form.
func NormalizeKeyword(k string) string {
	return strings.ToLower(strings.ReplaceAll(k, "-", " "))
}

// Matches reports whether the strategy satisfies every supplied criterion.
func (f Filter) Matches(s *domain.Strategy) bool {
	if f.MinSharpe != nil && s.Sharpe() < *f.MinSharpe {
		return false
	}
	if f.MaxDrawdown != nil && abs(s.Drawdown()) > abs(*f.MaxDrawdown) {
		return false
	}
	if f.TradingFrequency != "" && s.Implementation.TradingFrequency != f.TradingFrequency {
		return false
	}
	if len(f.AssetClasses) > 0 && !matchesAssetClass(f.AssetClasses, s.AssetClasses) {
		return false
	}
	if len(f.Keywords) > 0 && !matchesKeyword(f.Keywords, s.Keywords) {
		return false
	}
	if f.Search != "" && !matchesSearch(f.Search, s) {
		return false
	}
	return true
}

// matchesAssetClass is an OR match across both sides: any supplied class
// equal (case-insensitively) to any of the strategy's classes passes.
func matchesAssetClass(wanted, have []string) bool {
	lowered := make([]string, len(have))
	for i, a := range have {
		lowered[i] = strings.ToLower(a)
	}
	for _, w := range wanted {
		w = strings.ToLower(w)
		for _, a := range lowered {
			if w == a {
				return true
			}
		}
	}
	return false
}

// matchesKeyword is a deliberately permissive bidirectional substring
// match: a supplied keyword passes if it contains, or is contained in,
// any of the strategy's normalized keywords.
func matchesKeyword(wanted, have []string) bool {
	for _, w := range wanted {
		for _, k := range have {
			k = strings.TrimSpace(NormalizeKeyword(k))
			if strings.Contains(k, w) || strings.Contains(w, k) {
				return true
			}
		}
	}
	return false
}

func matchesSearch(query string, s *domain.Strategy) bool {
	return strings.Contains(strings.ToLower(s.Title), query) ||
		strings.Contains(strings.ToLower(s.Description), query)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
