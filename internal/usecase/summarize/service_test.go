package summarize

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/quantfolio/stratdex/internal/modelconf"
)

// --- Mocks ---

type mockCompleter struct {
	mu      sync.Mutex
	replies map[string]string
	errs    map[string]error
	calls   []string
}

func (m *mockCompleter) Complete(_ context.Context, modelID, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, modelID)
	if err, ok := m.errs[modelID]; ok {
		return "", err
	}
	return m.replies[modelID], nil
}

func (m *mockCompleter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

type mockModels struct {
	cfg modelconf.Config
}

func (m *mockModels) Current() modelconf.Config { return m.cfg }

func testModels() *mockModels {
	return &mockModels{cfg: modelconf.Config{
		Primary:   modelconf.Model{ID: "model-a", Label: "Model A"},
		Secondary: modelconf.Model{ID: "model-b", Label: "Model B"},
	}}
}

// --- Tests ---

func TestSummarize_BothModelsCalled(t *testing.T) {
	completer := &mockCompleter{replies: map[string]string{
		"model-a": "primary paragraph",
		"model-b": "secondary paragraph",
	}}
	svc := New(completer, testModels(), 0)

	got, err := svc.Summarize(context.Background(),
		`<html><body><p>Buy low, sell high.</p></body></html>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Primary.Text != "primary paragraph" {
		t.Errorf("primary text = %q", got.Primary.Text)
	}
	if got.Secondary.Text != "secondary paragraph" {
		t.Errorf("secondary text = %q", got.Secondary.Text)
	}
	if got.Primary.Model != "model-a" || got.Secondary.Model != "model-b" {
		t.Errorf("model ids = %q, %q", got.Primary.Model, got.Secondary.Model)
	}
	if completer.callCount() != 2 {
		t.Errorf("expected 2 backend calls, got %d", completer.callCount())
	}
}

func TestSummarize_PerCallFailureIsInline(t *testing.T) {
	completer := &mockCompleter{
		replies: map[string]string{"model-b": "still works"},
		errs:    map[string]error{"model-a": errors.New("credential missing")},
	}
	svc := New(completer, testModels(), 0)

	got, err := svc.Summarize(context.Background(),
		`<html><body>content</body></html>`)
	if err != nil {
		t.Fatalf("one failing call must not fail the request: %v", err)
	}

	if !strings.Contains(got.Primary.Text, "error generating Model A summary") {
		t.Errorf("primary should carry inline error, got %q", got.Primary.Text)
	}
	if got.Secondary.Text != "still works" {
		t.Errorf("secondary must be unaffected, got %q", got.Secondary.Text)
	}
}

func TestSummarize_EmptyDocumentShortCircuits(t *testing.T) {
	completer := &mockCompleter{}
	svc := New(completer, testModels(), 0)

	if _, err := svc.Summarize(context.Background(), ""); err == nil {
		t.Error("empty document must be an error")
	}
	if completer.callCount() != 0 {
		t.Errorf("no backend call may be issued, got %d", completer.callCount())
	}
}

func TestSummarize_MarkupOnlyDocumentShortCircuits(t *testing.T) {
	completer := &mockCompleter{}
	svc := New(completer, testModels(), 0)

	_, err := svc.Summarize(context.Background(), `<html><body><div>   </div></body></html>`)
	if err == nil {
		t.Error("document without text must be an error")
	}
	if completer.callCount() != 0 {
		t.Errorf("no backend call may be issued, got %d", completer.callCount())
	}
}

func TestSummarize_TruncatesText(t *testing.T) {
	var gotLen int
	completer := &recordingCompleter{onCall: func(text string) {
		gotLen = len(text)
	}}
	svc := New(completer, testModels(), 100)

	long := strings.Repeat("x", 500)
	if _, err := svc.Summarize(context.Background(), "<p>"+long+"</p>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLen > 100 {
		t.Errorf("text not truncated: %d bytes submitted", gotLen)
	}
}

func TestTruncate_RuneBoundary(t *testing.T) {
	// 3-byte runes; cutting at 4 bytes must back off to a valid boundary.
	text := "日本語"
	got := truncate(text, 4)
	if got != "日" {
		t.Errorf("truncate = %q, want %q", got, "日")
	}
}

// recordingCompleter captures the submitted text length.
type recordingCompleter struct {
	mu     sync.Mutex
	onCall func(text string)
}

func (r *recordingCompleter) Complete(_ context.Context, _, text string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onCall(text)
	return "ok", nil
}
