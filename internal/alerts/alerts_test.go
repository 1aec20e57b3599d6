package alerts

import (
	"context"
	"errors"
	"sync"
	"testing"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/core"
)

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []*amqp.BudgetAlertMessage
	err  error
}

func (p *recordingPublisher) PublishBudgetAlert(_ context.Context, msg *amqp.BudgetAlertMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return p.err
}

func status(id string, alert core.AlertState, progress float64) core.BudgetStatus {
	return core.BudgetStatus{
		Budget: core.Budget{
			ID:             id,
			Category:       core.ExpenseMarketing,
			Amount:         core.Money{Cents: 100000},
			AlertsEnabled:  true,
			AlertThreshold: 80,
		},
		Spent:    core.Money{Cents: int64(progress * 1000)},
		Progress: progress,
		Alert:    alert,
	}
}

func TestCheckPublishesOnTransition(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNotifier(pub)
	ctx := context.Background()

	n.Check(ctx, "acme", []core.BudgetStatus{status("b1", core.AlertWarning, 85)})
	if len(pub.msgs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.msgs))
	}
	got := pub.msgs[0]
	if got.Account != "acme" || got.BudgetID != "b1" || got.State != "warning" {
		t.Fatalf("unexpected event %+v", got)
	}
}

func TestCheckDoesNotRepeatSameState(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNotifier(pub)
	ctx := context.Background()

	n.Check(ctx, "acme", []core.BudgetStatus{status("b1", core.AlertWarning, 85)})
	n.Check(ctx, "acme", []core.BudgetStatus{status("b1", core.AlertWarning, 90)})
	if len(pub.msgs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.msgs))
	}
}

func TestCheckPublishesEscalation(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNotifier(pub)
	ctx := context.Background()

	n.Check(ctx, "acme", []core.BudgetStatus{status("b1", core.AlertWarning, 85)})
	n.Check(ctx, "acme", []core.BudgetStatus{status("b1", core.AlertDanger, 110)})
	if len(pub.msgs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(pub.msgs))
	}
	if pub.msgs[1].State != "danger" {
		t.Fatalf("expected danger, got %q", pub.msgs[1].State)
	}
}

func TestCheckNoEventForRecovery(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNotifier(pub)
	ctx := context.Background()

	n.Check(ctx, "acme", []core.BudgetStatus{status("b1", core.AlertWarning, 85)})
	n.Check(ctx, "acme", []core.BudgetStatus{status("b1", core.AlertOK, 50)})
	if len(pub.msgs) != 1 {
		t.Fatalf("recovery must not publish, got %d events", len(pub.msgs))
	}

	// Crossing the threshold again is a fresh event.
	n.Check(ctx, "acme", []core.BudgetStatus{status("b1", core.AlertWarning, 85)})
	if len(pub.msgs) != 2 {
		t.Fatalf("re-entry should publish, got %d events", len(pub.msgs))
	}
}

func TestCheckSwallowsPublishErrors(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	n := NewNotifier(pub)

	// Must not panic or propagate.
	n.Check(context.Background(), "acme", []core.BudgetStatus{status("b1", core.AlertDanger, 120)})
}

func TestForgetResetsAccountState(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNotifier(pub)
	ctx := context.Background()

	n.Check(ctx, "acme", []core.BudgetStatus{status("b1", core.AlertWarning, 85)})
	n.Check(ctx, "beta", []core.BudgetStatus{status("b1", core.AlertWarning, 85)})
	n.Forget("acme")

	n.Check(ctx, "acme", []core.BudgetStatus{status("b1", core.AlertWarning, 85)})
	n.Check(ctx, "beta", []core.BudgetStatus{status("b1", core.AlertWarning, 85)})
	if len(pub.msgs) != 3 {
		t.Fatalf("expected 3 events (acme twice, beta once), got %d", len(pub.msgs))
	}
}

func TestForgetBudgetDropsSingleEntry(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNotifier(pub)
	ctx := context.Background()

	n.Check(ctx, "acme", []core.BudgetStatus{
		status("b1", core.AlertDanger, 120),
		status("b2", core.AlertWarning, 85),
	})
	n.ForgetBudget("acme", "b1")

	// b1 publishes again after the reset, b2 is still deduplicated.
	n.Check(ctx, "acme", []core.BudgetStatus{
		status("b1", core.AlertDanger, 120),
		status("b2", core.AlertWarning, 85),
	})
	if len(pub.msgs) != 3 {
		t.Fatalf("expected 3 events, got %d", len(pub.msgs))
	}
	if pub.msgs[2].BudgetID != "b1" || pub.msgs[2].State != "danger" {
		t.Fatalf("unexpected event %+v", pub.msgs[2])
	}
}

func TestNilPublisherIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	n.Check(context.Background(), "acme", []core.BudgetStatus{status("b1", core.AlertDanger, 120)})
}
