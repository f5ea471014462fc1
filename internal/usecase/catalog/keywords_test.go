package catalog

import (
	"context"
	"testing"

	"github.com/quantfolio/stratdex/internal/domain"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		keyword string
		want    string
	}{
		{"momentum", "Trading Style"},
		{"momentum trading", "Trading Style"}, // substring match
		{"bonds", "Asset Class"},
		{"low volatility", "Trading Style"}, // volatility wins first
		{"monthly rebalancing", "Time Horizon"},
		{"equity long short", "Market"},
		{"emerging markets", "Region"},
		{"obscure technique", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			if got := categorize(tt.keyword); got != tt.want {
				t.Errorf("categorize(%q) = %q, want %q", tt.keyword, got, tt.want)
			}
		})
	}
}

func TestKeywords(t *testing.T) {
	loader := &mockLoader{strategies: []domain.Strategy{
		{Title: "One", Keywords: []string{"momentum", "bonds"}},
		{Title: "Two", Keywords: []string{"momentum"}},
	}}
	svc := New(loader)

	got := svc.Keywords(context.Background())

	mom, ok := got["Trading Style"]["momentum"]
	if !ok {
		t.Fatal("momentum missing from Trading Style")
	}
	if mom.Count != 2 {
		t.Errorf("momentum count = %d, want 2", mom.Count)
	}
	if len(mom.Strategies) != 2 {
		t.Errorf("momentum strategies = %v, want both titles", mom.Strategies)
	}
	if _, ok := got["Asset Class"]["bonds"]; !ok {
		t.Error("bonds missing from Asset Class")
	}
}

func TestKeywordSummary_SortedByCountThenKeyword(t *testing.T) {
	loader := &mockLoader{strategies: []domain.Strategy{
		{Title: "One", Keywords: []string{"carry", "arbitrage"}},
		{Title: "Two", Keywords: []string{"carry"}},
		{Title: "Three", Keywords: []string{"arbitrage", "carry", "reversal"}},
	}}
	svc := New(loader)

	got := svc.KeywordSummary(context.Background())

	style := got["Trading Style"]
	if len(style) != 3 {
		t.Fatalf("expected 3 trading style keywords, got %d", len(style))
	}
	want := []KeywordCount{
		{Keyword: "carry", Count: 3},
		{Keyword: "arbitrage", Count: 2},
		{Keyword: "reversal", Count: 1},
	}
	for i := range want {
		if style[i] != want[i] {
			t.Errorf("style[%d] = %+v, want %+v", i, style[i], want[i])
		}
	}
}

func TestKeywordSummary_EmptyCategoriesPresent(t *testing.T) {
	svc := New(&mockLoader{})

	got := svc.KeywordSummary(context.Background())
	for _, cat := range Categories {
		if _, ok := got[cat]; !ok {
			t.Errorf("category %q missing from summary", cat)
		}
	}
}
