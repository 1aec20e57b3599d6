package core

import (
	"testing"
	"time"
)

func mustIncome(t *testing.T, desc string, cents int64, cat IncomeCategory, date time.Time) Transaction {
	t.Helper()
	tx, err := NewIncome(desc, Money{Cents: cents}, cat)
	if err != nil {
		t.Fatalf("income %q: %v", desc, err)
	}
	tx.Date = date
	return tx
}

func mustExpense(t *testing.T, desc string, cents int64, cat ExpenseCategory, date time.Time) Transaction {
	t.Helper()
	tx, err := NewExpense(desc, Money{Cents: cents}, cat)
	if err != nil {
		t.Fatalf("expense %q: %v", desc, err)
	}
	tx.Date = date
	return tx
}

func TestTotalsByType(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	txs := []Transaction{
		mustIncome(t, "invoice", 500000, IncomeSales, now),
		mustIncome(t, "consulting", 250000, IncomeServices, now),
		mustExpense(t, "rent", 300000, ExpenseRent, now),
		mustExpense(t, "ads", 100000, ExpenseMarketing, now),
	}
	got := TotalsByType(txs)
	if got.Income.Cents != 750000 {
		t.Fatalf("income expected 750000, got %d", got.Income.Cents)
	}
	if got.Expense.Cents != 400000 {
		t.Fatalf("expense expected 400000, got %d", got.Expense.Cents)
	}
	if got.ProfitOrLoss.Cents != got.Income.Cents-got.Expense.Cents {
		t.Fatalf("profit identity broken: %d != %d - %d", got.ProfitOrLoss.Cents, got.Income.Cents, got.Expense.Cents)
	}
}

func TestTotalsByTypeEmpty(t *testing.T) {
	got := TotalsByType(nil)
	if got.Income.Cents != 0 || got.Expense.Cents != 0 || got.ProfitOrLoss.Cents != 0 {
		t.Fatalf("expected all zero, got %+v", got)
	}
}

func TestExpenseBreakdownInsertionOrder(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	txs := []Transaction{
		mustExpense(t, "ads", 10000, ExpenseMarketing, now),
		mustIncome(t, "invoice", 99999, IncomeSales, now),
		mustExpense(t, "rent", 50000, ExpenseRent, now),
		mustExpense(t, "more ads", 5000, ExpenseMarketing, now),
	}
	got := ExpenseBreakdown(txs)
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	if got[0].Category != "marketing" || got[0].Total.Cents != 15000 {
		t.Fatalf("first bucket wrong: %+v", got[0])
	}
	if got[1].Category != "rent" || got[1].Total.Cents != 50000 {
		t.Fatalf("second bucket wrong: %+v", got[1])
	}

	var sum int64
	for _, c := range got {
		sum += c.Total.Cents
	}
	if sum != TotalsByType(txs).Expense.Cents {
		t.Fatalf("breakdown sum %d != expense total %d", sum, TotalsByType(txs).Expense.Cents)
	}
}

func TestMonthlySeriesChronologicalAcrossYears(t *testing.T) {
	txs := []Transaction{
		mustIncome(t, "jan", 300, IncomeSales, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)),
		mustExpense(t, "nov", 100, ExpenseRent, time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)),
		mustIncome(t, "dec", 200, IncomeSales, time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)),
		mustExpense(t, "jan2", 50, ExpenseRent, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)),
	}
	got := MonthlySeries(txs)
	if len(got) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(got))
	}
	wantOrder := []string{"Nov 2025", "Dec 2025", "Jan 2026"}
	for i, w := range wantOrder {
		if got[i].Label() != w {
			t.Fatalf("bucket %d expected %q, got %q", i, w, got[i].Label())
		}
	}
	if got[2].Income.Cents != 300 || got[2].Expense.Cents != 50 {
		t.Fatalf("jan bucket wrong: %+v", got[2])
	}
}

func TestCategorySpendIgnoresIncome(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	txs := []Transaction{
		mustExpense(t, "a", 100, ExpenseRent, now),
		mustExpense(t, "b", 200, ExpenseRent, now),
		mustExpense(t, "c", 999, ExpensePayroll, now),
		mustIncome(t, "d", 5000, IncomeOther, now),
	}
	if got := CategorySpend(txs, ExpenseRent); got.Cents != 300 {
		t.Fatalf("expected 300, got %d", got.Cents)
	}
}
