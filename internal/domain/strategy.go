// Package domain holds the core catalog types shared across layers.
package domain

// PerformanceMetrics holds the backtested performance figures of a strategy.
// Metrics are optional in the source records; pointers distinguish absent
// from zero, and the accessors below collapse both to 0 for comparisons.
type PerformanceMetrics struct {
	SharpeRatio *float64 `json:"sharpe_ratio"`
	MaxDrawdown *float64 `json:"max_drawdown"`
}

// Implementation holds execution details of a strategy.
type Implementation struct {
	TradingFrequency string `json:"trading_frequency"`
}

// Strategy is one catalog entity describing an investment approach.
// Filename, EndYear, and Keywords are attached by the catalog loader;
// the rest comes from the per-strategy metadata record. A Strategy is
// immutable once placed in the cache: rebuilds construct fresh values.
type Strategy struct {
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	PerformanceMetrics PerformanceMetrics `json:"performance_metrics"`
	Implementation     Implementation     `json:"implementation"`
	AssetClasses       []string           `json:"asset_classes"`

	Filename string   `json:"filename"`
	EndYear  int      `json:"end_year"`
	Keywords []string `json:"keywords"`
}

// Sharpe returns the Sharpe ratio, or 0 when the metric is absent.
func (s *Strategy) Sharpe() float64 {
	if s.PerformanceMetrics.SharpeRatio == nil {
		return 0
	}
	return *s.PerformanceMetrics.SharpeRatio
}

// Drawdown returns the maximum drawdown, or 0 when the metric is absent.
func (s *Strategy) Drawdown() float64 {
	if s.PerformanceMetrics.MaxDrawdown == nil {
		return 0
	}
	return *s.PerformanceMetrics.MaxDrawdown
}
