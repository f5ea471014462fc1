package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/quantfolio/stratdex/internal/domain"
)

func TestGet(t *testing.T) {
	dir := t.TempDir()
	html := `<html><body>Strategy details</body></html>`
	if err := os.WriteFile(filepath.Join(dir, "Momentum_Effect.html"), []byte(html), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store := New(dir)

	tests := []struct {
		name  string
		input string
	}{
		{"plain name", "Momentum_Effect"},
		{"spaces mapped to underscores", "Momentum Effect"},
		{"json suffix trimmed", "Momentum_Effect.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Get(tt.input)
			if err != nil {
				t.Fatalf("Get(%q): %v", tt.input, err)
			}
			if got != html {
				t.Errorf("unexpected content: %q", got)
			}
		})
	}
}

func TestGet_Missing(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.Get("Nope")
	if !errors.Is(err, domain.ErrContentNotFound) {
		t.Errorf("expected ErrContentNotFound, got %v", err)
	}
}

func TestGet_BlankDocument(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Blank.html"), []byte("  \n\t"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store := New(dir)
	_, err := store.Get("Blank")
	if !errors.Is(err, domain.ErrContentNotFound) {
		t.Errorf("blank document should map to ErrContentNotFound, got %v", err)
	}
}
