package http

import (
	"net/http"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/session"
)

// handleDashboard aggregates the journal into totals and an expense breakdown.
// Results are cached per account briefly; every write invalidates the entry.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if cached, ok := s.dashCache.Get(sess.Account); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	ctx := r.Context()
	transactions, err := s.store.ListTransactions(ctx, sess.Account)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list transactions", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not load dashboard")
		return
	}
	budgets, err := s.store.ListBudgets(ctx, sess.Account)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list budgets", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not load dashboard")
		return
	}

	resp := dashboardResponse{
		Totals:           toTotalsView(core.TotalsByType(transactions)),
		ExpenseBreakdown: toCategoryTotalViews(core.ExpenseBreakdown(transactions)),
		Months:           toMonthTotalViews(core.MonthlySeries(transactions)),
		Budgets:          toBudgetStatusViews(core.EvaluateBudgets(budgets, transactions)),
	}
	s.dashCache.Set(sess.Account, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	transactions, err := s.store.ListTransactions(r.Context(), sess.Account)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to list transactions", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not load report")
		return
	}

	months := core.MonthlySeries(transactions)
	writeJSON(w, http.StatusOK, map[string]any{"months": toMonthTotalViews(months)})
}
