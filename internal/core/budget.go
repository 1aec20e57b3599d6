package core

// AlertState classifies budget consumption for alerting purposes.
type AlertState string

const (
	AlertOK      AlertState = "ok"
	AlertWarning AlertState = "warning"
	AlertDanger  AlertState = "danger"
)

// BudgetStatus is a budget joined with its evaluation against the current
// transaction set.
type BudgetStatus struct {
	Budget
	Spent     Money
	Remaining Money // Amount minus Spent, may be negative when overspent
	Progress  float64
	Alert     AlertState
}

// EvaluateBudget computes spend, remaining, progress and the alert state for
// one budget. Progress is a percentage and is not clamped at 100. A zero
// budget amount yields zero progress regardless of spend.
func EvaluateBudget(b Budget, transactions []Transaction) BudgetStatus {
	spent := CategorySpend(transactions, b.Category)
	st := BudgetStatus{
		Budget:    b,
		Spent:     spent,
		Remaining: b.Amount.Sub(spent),
		Alert:     AlertOK,
	}
	if b.Amount.Cents > 0 {
		st.Progress = float64(spent.Cents) / float64(b.Amount.Cents) * 100
	}
	if b.AlertsEnabled {
		switch {
		case st.Progress >= 100:
			st.Alert = AlertDanger
		case st.Progress >= float64(b.AlertThreshold):
			st.Alert = AlertWarning
		}
	}
	return st
}

// EvaluateBudgets evaluates every budget against the same transaction set,
// preserving the input order.
func EvaluateBudgets(budgets []Budget, transactions []Transaction) []BudgetStatus {
	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, EvaluateBudget(b, transactions))
	}
	return out
}
