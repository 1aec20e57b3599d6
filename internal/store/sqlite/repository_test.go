package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"budgetbuddy/internal/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	r, err := NewRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestTransactionRoundTrip(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	tx, err := core.NewExpense("server hosting", core.Money{Cents: 250000}, core.ExpenseOperations)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	stored, err := r.AppendTransaction(ctx, "acme", tx)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if stored.ID == "" || stored.Date.IsZero() {
		t.Fatalf("expected assigned id and date, got %+v", stored)
	}

	list, err := r.ListTransactions(ctx, "acme")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(list))
	}
	got := list[0]
	if got.ID != stored.ID || got.Type != core.Expense || got.Category != "operations" || got.Amount.Cents != 250000 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestTransactionsScopedByAccount(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	tx, _ := core.NewIncome("invoice", core.Money{Cents: 100}, core.IncomeSales)
	if _, err := r.AppendTransaction(ctx, "acme", tx); err != nil {
		t.Fatalf("append: %v", err)
	}
	list, err := r.ListTransactions(ctx, "other")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list for other account, got %d", len(list))
	}
}

func TestDeleteTransactionIsIdempotent(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	if err := r.DeleteTransaction(ctx, "acme", "missing"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestBudgetUpsertPreservesID(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	b, err := core.NewBudget(core.BudgetParams{Category: core.ExpensePayroll, Amount: core.Money{Cents: 5000000}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	first, err := r.UpsertBudget(ctx, "acme", b)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	b.Amount = core.Money{Cents: 6000000}
	b.AlertsEnabled = false
	second, err := r.UpsertBudget(ctx, "acme", b)
	if err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected preserved id %q, got %q", first.ID, second.ID)
	}

	list, err := r.ListBudgets(ctx, "acme")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 budget, got %d", len(list))
	}
	if list[0].Amount.Cents != 6000000 || list[0].AlertsEnabled {
		t.Fatalf("expected replaced budget, got %+v", list[0])
	}
}

func TestThemePreference(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	theme, err := r.Theme(ctx, "acme")
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if theme != "light" {
		t.Fatalf("expected light default, got %q", theme)
	}
	if err := r.SetTheme(ctx, "acme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := r.SetTheme(ctx, "acme", "light"); err != nil {
		t.Fatalf("set again: %v", err)
	}
	theme, _ = r.Theme(ctx, "acme")
	if theme != "light" {
		t.Fatalf("expected light, got %q", theme)
	}
}

func TestClearAccountData(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	tx, _ := core.NewExpense("rent", core.Money{Cents: 100}, core.ExpenseRent)
	if _, err := r.AppendTransaction(ctx, "acme", tx); err != nil {
		t.Fatalf("append: %v", err)
	}
	b, _ := core.NewBudget(core.BudgetParams{Category: core.ExpenseRent, Amount: core.Money{Cents: 1000}})
	if _, err := r.UpsertBudget(ctx, "acme", b); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := r.ClearTransactions(ctx, "acme"); err != nil {
		t.Fatalf("clear transactions: %v", err)
	}
	if err := r.ClearBudgets(ctx, "acme"); err != nil {
		t.Fatalf("clear budgets: %v", err)
	}

	txs, _ := r.ListTransactions(ctx, "acme")
	budgets, _ := r.ListBudgets(ctx, "acme")
	if len(txs) != 0 || len(budgets) != 0 {
		t.Fatalf("expected empty account, got %d transactions %d budgets", len(txs), len(budgets))
	}
}
