package core

import (
	"errors"
	"testing"
)

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -5}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestNewIncome(t *testing.T) {
	tx, err := NewIncome("  invoice 42 ", Money{Cents: 125000}, IncomeSales)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if tx.Type != Income {
		t.Fatalf("expected income type, got %q", tx.Type)
	}
	if tx.Description != "invoice 42" {
		t.Fatalf("expected trimmed description, got %q", tx.Description)
	}
	if tx.Category != "sales" {
		t.Fatalf("expected sales category, got %q", tx.Category)
	}

	if _, err := NewIncome("x", Money{Cents: 100}, IncomeCategory("rent")); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory for expense-only category, got %v", err)
	}
	if _, err := NewIncome("   ", Money{Cents: 100}, IncomeSales); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}
	if _, err := NewIncome("x", Money{Cents: 0}, IncomeSales); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestNewExpense(t *testing.T) {
	tx, err := NewExpense("office rent", Money{Cents: 500000}, ExpenseRent)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if tx.Type != Expense || tx.Category != "rent" {
		t.Fatalf("unexpected transaction %+v", tx)
	}

	if _, err := NewExpense("x", Money{Cents: 100}, ExpenseCategory("sales")); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory for income-only category, got %v", err)
	}
}

func TestTransactionValidateRejectsCrossTypeCategory(t *testing.T) {
	tx := Transaction{Type: Income, Description: "x", Amount: Money{Cents: 1}, Category: "payroll"}
	if err := tx.Validate(); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	tx = Transaction{Type: "transfer", Description: "x", Amount: Money{Cents: 1}, Category: "sales"}
	if err := tx.Validate(); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestNewBudgetDefaults(t *testing.T) {
	b, err := NewBudget(BudgetParams{Category: ExpenseMarketing, Amount: Money{Cents: 100000}})
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if !b.AlertsEnabled {
		t.Fatalf("expected alerts enabled by default")
	}
	if b.AlertThreshold != DefaultAlertThreshold {
		t.Fatalf("expected default threshold %d, got %d", DefaultAlertThreshold, b.AlertThreshold)
	}
}

func TestNewBudgetExplicitFields(t *testing.T) {
	enabled := false
	threshold := 50
	b, err := NewBudget(BudgetParams{
		Category:       ExpenseUtilities,
		Amount:         Money{Cents: 20000},
		AlertsEnabled:  &enabled,
		AlertThreshold: &threshold,
	})
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if b.AlertsEnabled {
		t.Fatalf("expected alerts disabled")
	}
	if b.AlertThreshold != 50 {
		t.Fatalf("expected threshold 50, got %d", b.AlertThreshold)
	}
}

func TestNewBudgetRejectsBadThreshold(t *testing.T) {
	for _, v := range []int{0, -1, 101, 1000} {
		th := v
		_, err := NewBudget(BudgetParams{Category: ExpenseRent, Amount: Money{Cents: 100}, AlertThreshold: &th})
		if !errors.Is(err, ErrInvalidThreshold) {
			t.Fatalf("threshold %d: expected ErrInvalidThreshold, got %v", v, err)
		}
	}
	for _, v := range []int{1, 80, 100} {
		th := v
		if _, err := NewBudget(BudgetParams{Category: ExpenseRent, Amount: Money{Cents: 100}, AlertThreshold: &th}); err != nil {
			t.Fatalf("threshold %d: expected ok, got %v", v, err)
		}
	}
}

func TestNewBudgetRejectsInvalidCategoryAndAmount(t *testing.T) {
	if _, err := NewBudget(BudgetParams{Category: "travel", Amount: Money{Cents: 100}}); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	if _, err := NewBudget(BudgetParams{Category: ExpenseRent, Amount: Money{Cents: 0}}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}
