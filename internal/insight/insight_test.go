package insight

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"budgetbuddy/internal/core"
)

type fakeGenerator struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	reply   string
	err     error
	block   chan struct{}
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.reply, f.err
}

func sampleData(t *testing.T, n int) []core.Transaction {
	t.Helper()
	out := make([]core.Transaction, 0, n)
	for i := 0; i < n; i++ {
		tx, err := core.NewExpense("item", core.Money{Cents: int64(100 + i)}, core.ExpenseOperations)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		tx.ID = string(rune('a' + i%26))
		tx.Date = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour)
		out = append(out, tx)
	}
	return out
}

func TestAnalyzeParsesReport(t *testing.T) {
	gen := &fakeGenerator{reply: `{
		"overallStatus": "Healthy with room to grow",
		"positiveHighlights": ["Revenue exceeds spending"],
		"areasForImprovement": ["Marketing spend is near budget"],
		"actionableTips": ["Review recurring costs"]
	}`}
	svc := NewService(gen)

	report, err := svc.Analyze(context.Background(), sampleData(t, 3), nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.OverallStatus != "Healthy with room to grow" {
		t.Fatalf("unexpected status %q", report.OverallStatus)
	}
	if len(report.PositiveHighlights) != 1 || len(report.ActionableTips) != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestAnalyzeNoDataFailsBeforeModelCall(t *testing.T) {
	gen := &fakeGenerator{reply: "{}"}
	svc := NewService(gen)

	_, err := svc.Analyze(context.Background(), nil, nil)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("model must not be called without data, got %d calls", gen.calls)
	}
}

func TestAnalyzeGenericErrorOnModelFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded: project 12345")}
	svc := NewService(gen)

	_, err := svc.Analyze(context.Background(), sampleData(t, 1), nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if strings.Contains(err.Error(), "quota") {
		t.Fatalf("upstream detail leaked into error: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("expected exactly one call (no retries), got %d", gen.calls)
	}
}

func TestAnalyzeGenericErrorOnBadJSON(t *testing.T) {
	gen := &fakeGenerator{reply: "not json"}
	svc := NewService(gen)

	_, err := svc.Analyze(context.Background(), sampleData(t, 1), nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestAnalyzeRejectsConcurrentCalls(t *testing.T) {
	gen := &fakeGenerator{reply: `{"overallStatus":"ok","positiveHighlights":[],"areasForImprovement":[],"actionableTips":[]}`, block: make(chan struct{})}
	svc := NewService(gen)
	data := sampleData(t, 1)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Analyze(context.Background(), data, nil)
		done <- err
	}()

	// Wait for the first call to reach the generator.
	for {
		gen.mu.Lock()
		started := gen.calls > 0
		gen.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	_, err := svc.Analyze(context.Background(), data, nil)
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	close(gen.block)
	if err := <-done; err != nil {
		t.Fatalf("first call failed: %v", err)
	}

	// Guard must be released after completion.
	if _, err := svc.Analyze(context.Background(), data, nil); err != nil {
		t.Fatalf("expected success after release, got %v", err)
	}
}

func TestPromptCapsTransactions(t *testing.T) {
	gen := &fakeGenerator{reply: `{"overallStatus":"ok","positiveHighlights":[],"areasForImprovement":[],"actionableTips":[]}`}
	svc := NewService(gen)

	if _, err := svc.Analyze(context.Background(), sampleData(t, 30), nil); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	prompt := gen.prompts[0]
	lines := 0
	for _, l := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(l, "- ") && strings.Contains(l, "expense") {
			lines++
		}
	}
	if lines != snapshotLimit {
		t.Fatalf("expected %d transaction lines, got %d", snapshotLimit, lines)
	}
}

func TestPromptIncludesBudgets(t *testing.T) {
	gen := &fakeGenerator{reply: `{"overallStatus":"ok","positiveHighlights":[],"areasForImprovement":[],"actionableTips":[]}`}
	svc := NewService(gen)

	budget := core.Budget{ID: "b1", Category: core.ExpenseMarketing, Amount: core.Money{Cents: 100000}, AlertsEnabled: true, AlertThreshold: 80}
	statuses := core.EvaluateBudgets([]core.Budget{budget}, sampleData(t, 1))

	if _, err := svc.Analyze(context.Background(), sampleData(t, 1), statuses); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(gen.prompts[0], "marketing") {
		t.Fatalf("budget category missing from prompt:\n%s", gen.prompts[0])
	}
}
