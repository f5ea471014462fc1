package enrich

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

const sampleHTML = `<html><body>
<div>Backtest period from source paper</div><div class="value">1995-2014</div>
<div class="large-12 mrg-top-40 mrg-btm-50">
  <a class="keyword" href="https://example.com/strategy-tags/mean-reversion/">Mean Reversion</a>
  <a class="keyword" href="https://example.com/strategy-tags/equity-long-short/">Equity Long Short</a>
  <a class="keyword" href="https://example.com/other/ignored/">Ignored</a>
</div>
</body></html>`

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func newTestEnricher(t *testing.T, dir string) *Enricher {
	t.Helper()
	e, err := New(dir, 10, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestLookup_ExtractsYearAndKeywords(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "Pairs_Trading.html", sampleHTML)

	e := newTestEnricher(t, dir)
	got := e.Lookup("Pairs Trading")

	if got.EndYear != 2014 {
		t.Errorf("end year = %d, want 2014", got.EndYear)
	}
	want := []string{"mean reversion", "equity long short"}
	if len(got.Keywords) != len(want) {
		t.Fatalf("keywords = %v, want %v", got.Keywords, want)
	}
	for i := range want {
		if got.Keywords[i] != want[i] {
			t.Errorf("keyword[%d] = %q, want %q", i, got.Keywords[i], want[i])
		}
	}
}

func TestLookup_EscapedFilenameVariant(t *testing.T) {
	dir := t.TempDir()
	// Only the percent-encoded variant exists on disk.
	writeDoc(t, dir, "Risk_%26_Return.html", sampleHTML)

	e := newTestEnricher(t, dir)
	got := e.Lookup("Risk & Return")

	if got.EndYear != 2014 {
		t.Errorf("escaped variant not resolved: end year = %d, want 2014", got.EndYear)
	}
}

func TestLookup_ColonVariant(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "Value%3A_A_Study.html", sampleHTML)

	e := newTestEnricher(t, dir)
	got := e.Lookup("Value: A Study")

	if got.EndYear != 2014 {
		t.Errorf("colon variant not resolved: end year = %d, want 2014", got.EndYear)
	}
}

func TestLookup_MissingDocumentReturnsSentinel(t *testing.T) {
	dir := t.TempDir()
	e := newTestEnricher(t, dir)

	got := e.Lookup("Nonexistent Strategy")
	if got.EndYear != 0 || len(got.Keywords) != 0 {
		t.Errorf("missing document should yield sentinel, got %+v", got)
	}
}

func TestLookup_MissMemoized(t *testing.T) {
	dir := t.TempDir()
	e := newTestEnricher(t, dir)

	if got := e.Lookup("Late Arrival"); got.EndYear != 0 {
		t.Fatalf("expected sentinel on first miss, got %+v", got)
	}

	// The document appearing later is invisible: the miss is cached for
	// the process lifetime.
	writeDoc(t, dir, "Late_Arrival.html", sampleHTML)
	if got := e.Lookup("Late Arrival"); got.EndYear != 0 {
		t.Errorf("memoized miss should not see a later document, got %+v", got)
	}
}

func TestLookup_NoBacktestMarker(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "Bare.html", `<html><body><p>no period here</p></body></html>`)

	e := newTestEnricher(t, dir)
	got := e.Lookup("Bare")
	if got.EndYear != 0 {
		t.Errorf("absent marker should yield year 0, got %d", got.EndYear)
	}
	if len(got.Keywords) != 0 {
		t.Errorf("absent block should yield no keywords, got %v", got.Keywords)
	}
}
