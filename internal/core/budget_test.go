package core

import (
	"testing"
	"time"
)

func budgetFor(t *testing.T, cents int64, enabled bool, threshold int) Budget {
	t.Helper()
	b, err := NewBudget(BudgetParams{
		Category:       ExpenseMarketing,
		Amount:         Money{Cents: cents},
		AlertsEnabled:  &enabled,
		AlertThreshold: &threshold,
	})
	if err != nil {
		t.Fatalf("budget: %v", err)
	}
	return b
}

func TestEvaluateBudgetAlertStates(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name      string
		spent     int64
		enabled   bool
		threshold int
		want      AlertState
		progress  float64
	}{
		{"under threshold", 50000, true, 80, AlertOK, 50},
		{"at threshold", 80000, true, 80, AlertWarning, 80},
		{"between threshold and full", 90000, true, 80, AlertWarning, 90},
		{"at budget", 100000, true, 80, AlertDanger, 100},
		{"overspent", 150000, true, 80, AlertDanger, 150},
		{"alerts disabled overspent", 150000, false, 80, AlertOK, 150},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := budgetFor(t, 100000, tc.enabled, tc.threshold)
			txs := []Transaction{mustExpense(t, "spend", tc.spent, ExpenseMarketing, now)}
			st := EvaluateBudget(b, txs)
			if st.Alert != tc.want {
				t.Fatalf("expected alert %q, got %q", tc.want, st.Alert)
			}
			if st.Progress != tc.progress {
				t.Fatalf("expected progress %v, got %v", tc.progress, st.Progress)
			}
			if st.Spent.Cents != tc.spent {
				t.Fatalf("expected spent %d, got %d", tc.spent, st.Spent.Cents)
			}
			if st.Remaining.Cents != 100000-tc.spent {
				t.Fatalf("expected remaining %d, got %d", 100000-tc.spent, st.Remaining.Cents)
			}
		})
	}
}

func TestEvaluateBudgetIgnoresOtherCategories(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	b := budgetFor(t, 100000, true, 80)
	txs := []Transaction{
		mustExpense(t, "rent", 99999, ExpenseRent, now),
		mustIncome(t, "marketing refund", 99999, IncomeOther, now),
	}
	st := EvaluateBudget(b, txs)
	if st.Spent.Cents != 0 || st.Alert != AlertOK {
		t.Fatalf("expected untouched budget, got %+v", st)
	}
}

func TestEvaluateBudgetZeroAmount(t *testing.T) {
	// A zero amount cannot come through NewBudget, but stored data is
	// evaluated as-is and must not divide by zero.
	b := Budget{Category: ExpenseRent, Amount: Money{Cents: 0}, AlertsEnabled: true, AlertThreshold: 80}
	txs := []Transaction{mustExpense(t, "rent", 10000, ExpenseRent, time.Now())}
	st := EvaluateBudget(b, txs)
	if st.Progress != 0 {
		t.Fatalf("expected progress 0, got %v", st.Progress)
	}
	if st.Alert != AlertOK {
		t.Fatalf("expected ok, got %q", st.Alert)
	}
}

func TestEvaluateBudgetsPreservesOrder(t *testing.T) {
	budgets := []Budget{
		{ID: "a", Category: ExpenseRent, Amount: Money{Cents: 100}, AlertsEnabled: true, AlertThreshold: 80},
		{ID: "b", Category: ExpensePayroll, Amount: Money{Cents: 100}, AlertsEnabled: true, AlertThreshold: 80},
	}
	got := EvaluateBudgets(budgets, nil)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("order not preserved: %+v", got)
	}
}
