// Package sortorder defines the total orders applicable to catalog queries.
package sortorder

import (
	"sort"
	"strings"

	"github.com/quantfolio/stratdex/internal/domain"
)

// Order names a sort order over strategies.
type Order string

const (
	// Sharpe sorts descending by Sharpe ratio (missing treated as 0).
	Sharpe Order = "sharpe"
	// Title sorts ascending, case-insensitive.
	Title Order = "title"
	// Date sorts descending by end year, then descending by Sharpe ratio.
	Date Order = "date"
)

// Apply sorts strategies in place according to the order. An
// unrecognized order leaves the input order unchanged, which doubles
// as the fallback for unvalidated user input.
func Apply(strategies []domain.Strategy, order Order) {
	switch order {
	case Sharpe:
		sort.SliceStable(strategies, func(i, j int) bool {
			return strategies[i].Sharpe() > strategies[j].Sharpe()
		})
	case Title:
		sort.SliceStable(strategies, func(i, j int) bool {
			return strings.ToLower(strategies[i].Title) < strings.ToLower(strategies[j].Title)
		})
	case Date:
		sort.SliceStable(strategies, func(i, j int) bool {
			if strategies[i].EndYear != strategies[j].EndYear {
				return strategies[i].EndYear > strategies[j].EndYear
			}
			return strategies[i].Sharpe() > strategies[j].Sharpe()
		})
	}
}
