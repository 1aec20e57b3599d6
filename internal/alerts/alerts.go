// Package alerts turns budget evaluations into published alert events.
// The HTTP layer calls Check after every write that can change budget
// consumption; only transitions into warning or danger are published.
package alerts

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/core"
)

// Publisher is the broker side. The AMQP client implements it; tests use a
// recording fake. A nil Publisher disables alerting entirely.
type Publisher interface {
	PublishBudgetAlert(ctx context.Context, msg *amqp.BudgetAlertMessage) error
}

// Notifier remembers the last published state per budget so a budget sitting
// at 85% does not generate an event on every transaction.
type Notifier struct {
	pub Publisher

	mu   sync.Mutex
	last map[string]core.AlertState // account + "/" + budget id
}

func NewNotifier(pub Publisher) *Notifier {
	return &Notifier{
		pub:  pub,
		last: make(map[string]core.AlertState),
	}
}

// Check publishes an event for every budget whose alert state changed since
// the previous check. Publish failures are logged and swallowed: alerting is
// best effort and must never fail the write that triggered it.
func (n *Notifier) Check(ctx context.Context, account string, statuses []core.BudgetStatus) {
	if n == nil || n.pub == nil {
		return
	}
	for _, st := range statuses {
		key := account + "/" + st.ID

		n.mu.Lock()
		prev := n.last[key]
		changed := st.Alert != prev
		if changed {
			n.last[key] = st.Alert
		}
		n.mu.Unlock()

		if !changed || st.Alert == core.AlertOK {
			continue
		}

		msg := &amqp.BudgetAlertMessage{
			Account:    account,
			BudgetID:   st.ID,
			Category:   string(st.Category),
			State:      string(st.Alert),
			Progress:   st.Progress,
			SpentCents: st.Spent.Cents,
			LimitCents: st.Amount.Cents,
			Timestamp:  time.Now().UTC(),
		}
		if err := n.pub.PublishBudgetAlert(ctx, msg); err != nil {
			slog.WarnContext(ctx, "Failed to publish budget alert",
				"budget_id", st.ID,
				"state", st.Alert,
				"error", err)
		}
	}
}

// ForgetBudget drops the remembered state for a single budget after it is
// deleted. Without this a budget re-created for the same category could
// inherit a stale state and skip its first transition.
func (n *Notifier) ForgetBudget(account, budgetID string) {
	if n == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.last, account+"/"+budgetID)
}

// Forget drops the remembered state for an account, for example after the
// account's data is cleared.
func (n *Notifier) Forget(account string) {
	if n == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	prefix := account + "/"
	for k := range n.last {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(n.last, k)
		}
	}
}
