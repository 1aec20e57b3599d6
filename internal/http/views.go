package http

import (
	"time"

	"budgetbuddy/internal/core"
)

// JSON shapes returned by the API. Money travels as a decimal string
// ("1234.50") so clients never do float arithmetic on amounts.

type transactionView struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
}

type budgetStatusView struct {
	ID             string  `json:"id"`
	Category       string  `json:"category"`
	Amount         string  `json:"amount"`
	AlertsEnabled  bool    `json:"alertsEnabled"`
	AlertThreshold int     `json:"alertThreshold"`
	Spent          string  `json:"spent"`
	Remaining      string  `json:"remaining"`
	Progress       float64 `json:"progress"`
	Alert          string  `json:"alert"`
}

type totalsView struct {
	Income       string `json:"income"`
	Expense      string `json:"expense"`
	ProfitOrLoss string `json:"profitOrLoss"`
}

type categoryTotalView struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

type monthTotalView struct {
	Label   string `json:"label"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

type notificationView struct {
	BudgetID string `json:"budgetId"`
	Category string `json:"category"`
	State    string `json:"state"`
	Message  string `json:"message"`
}

type dashboardResponse struct {
	Totals           totalsView          `json:"totals"`
	ExpenseBreakdown []categoryTotalView `json:"expenseBreakdown"`
	Months           []monthTotalView    `json:"months"`
	Budgets          []budgetStatusView  `json:"budgets"`
}

func toTransactionView(t core.Transaction) transactionView {
	return transactionView{
		ID:          t.ID,
		Date:        t.Date.Format(time.RFC3339),
		Type:        string(t.Type),
		Description: t.Description,
		Amount:      t.Amount.String(),
		Category:    t.Category,
	}
}

func toTransactionViews(ts []core.Transaction) []transactionView {
	out := make([]transactionView, len(ts))
	for i, t := range ts {
		out[i] = toTransactionView(t)
	}
	return out
}

func toBudgetStatusView(st core.BudgetStatus) budgetStatusView {
	return budgetStatusView{
		ID:             st.ID,
		Category:       string(st.Category),
		Amount:         st.Amount.String(),
		AlertsEnabled:  st.AlertsEnabled,
		AlertThreshold: st.AlertThreshold,
		Spent:          st.Spent.String(),
		Remaining:      st.Remaining.String(),
		Progress:       st.Progress,
		Alert:          string(st.Alert),
	}
}

func toBudgetStatusViews(sts []core.BudgetStatus) []budgetStatusView {
	out := make([]budgetStatusView, len(sts))
	for i, st := range sts {
		out[i] = toBudgetStatusView(st)
	}
	return out
}

func toTotalsView(t core.Totals) totalsView {
	return totalsView{
		Income:       t.Income.String(),
		Expense:      t.Expense.String(),
		ProfitOrLoss: t.ProfitOrLoss.String(),
	}
}

func toCategoryTotalViews(cts []core.CategoryTotal) []categoryTotalView {
	out := make([]categoryTotalView, len(cts))
	for i, ct := range cts {
		out[i] = categoryTotalView{Category: ct.Category, Total: ct.Total.String()}
	}
	return out
}

func toMonthTotalViews(ms []core.MonthTotal) []monthTotalView {
	out := make([]monthTotalView, len(ms))
	for i, m := range ms {
		out[i] = monthTotalView{
			Label:   m.Label(),
			Year:    m.Year,
			Month:   int(m.Month),
			Income:  m.Income.String(),
			Expense: m.Expense.String(),
		}
	}
	return out
}
