package http

import (
	"context"
	"errors"
	"net/http"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/insight"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/session"
)

// handleInsights runs the AI review of the account's recent activity. Only
// one generation runs at a time; a second request gets 409 while the first is
// in flight.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.insights == nil {
		writeError(w, http.StatusServiceUnavailable, "insight generation is not configured")
		return
	}

	ctx := r.Context()
	transactions, err := s.store.ListTransactions(ctx, sess.Account)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list transactions", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not load financial data")
		return
	}
	budgets, err := s.store.ListBudgets(ctx, sess.Account)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list budgets", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not load financial data")
		return
	}
	statuses := core.EvaluateBudgets(budgets, transactions)

	genCtx, cancel := context.WithTimeout(ctx, s.insightTTL)
	defer cancel()

	report, err := s.insights.Analyze(genCtx, transactions, statuses)
	switch {
	case errors.Is(err, insight.ErrNoData):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, insight.ErrBusy):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, insight.ErrUnavailable.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}
