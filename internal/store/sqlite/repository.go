// Package sqlite is the durable Store backed by a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"budgetbuddy/internal/core"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) AppendTransaction(ctx context.Context, account string, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	t.ID = uuid.NewString()
	t.Date = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, account, created_at, type, description, amount_cents, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, account, t.Date, string(t.Type), t.Description, t.Amount.Cents, t.Category)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"type", t.Type,
		"category", t.Category,
		"amount_cents", t.Amount.Cents)

	return t, nil
}

func (r *Repository) ListTransactions(ctx context.Context, account string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at, type, description, amount_cents, category
		 FROM transactions WHERE account = ? ORDER BY rowid`,
		account)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var txType string
		if err := rows.Scan(&t.ID, &t.Date, &txType, &t.Description, &t.Amount.Cents, &t.Category); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Type = core.TransactionType(txType)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, account, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE account = ? AND id = ?`, account, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (r *Repository) ClearTransactions(ctx context.Context, account string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE account = ?`, account)
	if err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	return nil
}

func (r *Repository) UpsertBudget(ctx context.Context, account string, b core.Budget) (core.Budget, error) {
	var existingID string
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM budgets WHERE account = ? AND category = ?`,
		account, string(b.Category)).Scan(&existingID)
	switch {
	case err == nil:
		b.ID = existingID
		_, err = r.db.ExecContext(ctx,
			`UPDATE budgets SET amount_cents = ?, alerts_enabled = ?, alert_threshold = ? WHERE id = ?`,
			b.Amount.Cents, boolToInt(b.AlertsEnabled), b.AlertThreshold, b.ID)
		if err != nil {
			return core.Budget{}, fmt.Errorf("update budget: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		b.ID = uuid.NewString()
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO budgets (id, account, category, amount_cents, alerts_enabled, alert_threshold)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			b.ID, account, string(b.Category), b.Amount.Cents, boolToInt(b.AlertsEnabled), b.AlertThreshold)
		if err != nil {
			return core.Budget{}, fmt.Errorf("insert budget: %w", err)
		}
	default:
		return core.Budget{}, fmt.Errorf("find budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget saved",
		"id", b.ID,
		"category", b.Category,
		"amount_cents", b.Amount.Cents)

	return b, nil
}

func (r *Repository) ListBudgets(ctx context.Context, account string) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, amount_cents, alerts_enabled, alert_threshold
		 FROM budgets WHERE account = ? ORDER BY rowid`,
		account)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var b core.Budget
		var category string
		var enabled int
		if err := rows.Scan(&b.ID, &category, &b.Amount.Cents, &enabled, &b.AlertThreshold); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.Category = core.ExpenseCategory(category)
		b.AlertsEnabled = enabled != 0
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return out, nil
}

func (r *Repository) DeleteBudget(ctx context.Context, account, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE account = ? AND id = ?`, account, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}

func (r *Repository) ClearBudgets(ctx context.Context, account string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE account = ?`, account)
	if err != nil {
		return fmt.Errorf("clear budgets: %w", err)
	}
	return nil
}

func (r *Repository) SetTheme(ctx context.Context, account, theme string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO preferences (account, key, value) VALUES (?, 'theme', ?)
		 ON CONFLICT (account, key) DO UPDATE SET value = excluded.value`,
		account, theme)
	if err != nil {
		return fmt.Errorf("set theme: %w", err)
	}
	return nil
}

func (r *Repository) Theme(ctx context.Context, account string) (string, error) {
	var theme string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE account = ? AND key = 'theme'`,
		account).Scan(&theme)
	if errors.Is(err, sql.ErrNoRows) {
		return "light", nil
	}
	if err != nil {
		return "", fmt.Errorf("get theme: %w", err)
	}
	return theme, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
