// Package store defines the persistence ports the HTTP layer talks to.
// All operations are scoped by account: one account never sees another's data.
package store

import (
	"context"

	"budgetbuddy/internal/core"
)

type (
	// TransactionStore persists the transaction journal. Append assigns the
	// ID and creation timestamp and returns the stored value. List returns
	// transactions in insertion order. Delete of a missing ID is a no-op.
	TransactionStore interface {
		AppendTransaction(ctx context.Context, account string, t core.Transaction) (core.Transaction, error)
		ListTransactions(ctx context.Context, account string) ([]core.Transaction, error)
		DeleteTransaction(ctx context.Context, account, id string) error
		ClearTransactions(ctx context.Context, account string) error
	}

	// BudgetStore persists category budgets. UpsertBudget keys on the
	// category: a budget for a new category gets a fresh ID, a budget for an
	// existing category replaces it while keeping the original ID.
	BudgetStore interface {
		UpsertBudget(ctx context.Context, account string, b core.Budget) (core.Budget, error)
		ListBudgets(ctx context.Context, account string) ([]core.Budget, error)
		DeleteBudget(ctx context.Context, account, id string) error
		ClearBudgets(ctx context.Context, account string) error
	}

	// PreferenceStore keeps small per-account settings such as the UI theme.
	PreferenceStore interface {
		SetTheme(ctx context.Context, account, theme string) error
		Theme(ctx context.Context, account string) (string, error)
	}

	// Store is the full persistence surface a backend must provide.
	Store interface {
		TransactionStore
		BudgetStore
		PreferenceStore
		Close() error
	}
)
