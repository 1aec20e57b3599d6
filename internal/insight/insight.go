// Package insight produces an AI-written review of the account's finances.
package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"budgetbuddy/internal/core"
)

var (
	// ErrNoData is returned before any model call when there is nothing to
	// analyze.
	ErrNoData = errors.New("no financial data to analyze")

	// ErrBusy is returned while a previous request is still in flight.
	ErrBusy = errors.New("insight generation already in progress")

	// ErrUnavailable is the single generic failure surfaced to callers.
	// Upstream details are logged, never returned.
	ErrUnavailable = errors.New("failed to generate insights, please try again later")
)

// snapshotLimit caps how many recent transactions are sent to the model.
const snapshotLimit = 20

// Generator is the model backend. Generate takes a prompt and returns the
// raw JSON document produced by the model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Report is the structured insight shown to the user.
type Report struct {
	OverallStatus       string   `json:"overallStatus"`
	PositiveHighlights  []string `json:"positiveHighlights"`
	AreasForImprovement []string `json:"areasForImprovement"`
	ActionableTips      []string `json:"actionableTips"`
}

// Service wraps a Generator with the snapshot building, the single-flight
// guard and result parsing. One Service instance serves all requests.
type Service struct {
	gen  Generator
	busy atomic.Bool
}

func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// Analyze builds a snapshot from the given data and asks the model for a
// report. Only one call may be in flight at a time; concurrent callers get
// ErrBusy. No retries: a failed call surfaces immediately as ErrUnavailable.
func (s *Service) Analyze(ctx context.Context, transactions []core.Transaction, budgets []core.BudgetStatus) (Report, error) {
	if len(transactions) == 0 && len(budgets) == 0 {
		return Report{}, ErrNoData
	}
	if !s.busy.CompareAndSwap(false, true) {
		return Report{}, ErrBusy
	}
	defer s.busy.Store(false)

	prompt := buildPrompt(transactions, budgets)

	raw, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		slog.ErrorContext(ctx, "Insight generation failed", "error", err)
		return Report{}, ErrUnavailable
	}

	var report Report
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		slog.ErrorContext(ctx, "Insight response is not valid JSON", "error", err)
		return Report{}, ErrUnavailable
	}
	return report, nil
}

// buildPrompt serializes the last transactions and every budget with its
// consumption into a compact instruction for the model.
func buildPrompt(transactions []core.Transaction, budgets []core.BudgetStatus) string {
	recent := transactions
	if len(recent) > snapshotLimit {
		recent = recent[len(recent)-snapshotLimit:]
	}

	var b strings.Builder
	b.WriteString("You are a financial advisor for a small business. ")
	b.WriteString("Analyze the following recent transactions and category budgets (amounts in INR) ")
	b.WriteString("and respond with JSON containing overallStatus (one short sentence), ")
	b.WriteString("positiveHighlights, areasForImprovement and actionableTips (each a list of short strings).\n\n")

	b.WriteString("Recent transactions:\n")
	for _, t := range recent {
		fmt.Fprintf(&b, "- %s | %s | %s | %s | %s\n",
			t.Date.Format("2006-01-02"), t.Type, t.Category, t.Description, t.Amount)
	}

	b.WriteString("\nBudgets:\n")
	if len(budgets) == 0 {
		b.WriteString("- none set\n")
	}
	for _, st := range budgets {
		fmt.Fprintf(&b, "- %s: limit %s, spent %s (%.0f%%)\n",
			st.Category, st.Amount, st.Spent, st.Progress)
	}
	return b.String()
}
