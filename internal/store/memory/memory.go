// Package memory is an in-process Store used for tests and for running
// without a database file.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"budgetbuddy/internal/core"
)

type accountData struct {
	transactions []core.Transaction
	budgets      []core.Budget
	theme        string
}

type Store struct {
	mu       sync.Mutex
	accounts map[string]*accountData
	now      func() time.Time
}

func New() *Store {
	return &Store{
		accounts: make(map[string]*accountData),
		now:      time.Now,
	}
}

// SetClock overrides the timestamp source. Test hook.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) account(name string) *accountData {
	a, ok := s.accounts[name]
	if !ok {
		a = &accountData{}
		s.accounts[name] = a
	}
	return a
}

func (s *Store) AppendTransaction(_ context.Context, account string, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.NewString()
	t.Date = s.now().UTC()
	a := s.account(account)
	a.transactions = append(a.transactions, t)
	return t, nil
}

func (s *Store) ListTransactions(_ context.Context, account string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.account(account)
	out := make([]core.Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out, nil
}

func (s *Store) DeleteTransaction(_ context.Context, account, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.account(account)
	for i, t := range a.transactions {
		if t.ID == id {
			a.transactions = append(a.transactions[:i], a.transactions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) ClearTransactions(_ context.Context, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account(account).transactions = nil
	return nil
}

func (s *Store) UpsertBudget(_ context.Context, account string, b core.Budget) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.account(account)
	for i, existing := range a.budgets {
		if existing.Category == b.Category {
			b.ID = existing.ID
			a.budgets[i] = b
			return b, nil
		}
	}
	b.ID = uuid.NewString()
	a.budgets = append(a.budgets, b)
	return b, nil
}

func (s *Store) ListBudgets(_ context.Context, account string) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.account(account)
	out := make([]core.Budget, len(a.budgets))
	copy(out, a.budgets)
	return out, nil
}

func (s *Store) DeleteBudget(_ context.Context, account, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.account(account)
	for i, b := range a.budgets {
		if b.ID == id {
			a.budgets = append(a.budgets[:i], a.budgets[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) ClearBudgets(_ context.Context, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account(account).budgets = nil
	return nil
}

func (s *Store) SetTheme(_ context.Context, account, theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account(account).theme = theme
	return nil
}

func (s *Store) Theme(_ context.Context, account string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	theme := s.account(account).theme
	if theme == "" {
		theme = "light"
	}
	return theme, nil
}

func (s *Store) Close() error { return nil }
