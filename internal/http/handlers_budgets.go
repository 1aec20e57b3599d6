package http

import (
	"net/http"
	"strings"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/session"
)

type upsertBudgetRequest struct {
	Category       string `json:"category"`
	Amount         string `json:"amount"`
	AlertsEnabled  *bool  `json:"alertsEnabled"`
	AlertThreshold *int   `json:"alertThreshold"`
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	switch r.Method {
	case http.MethodGet:
		s.listBudgets(w, r, sess)
	case http.MethodPut:
		s.upsertBudget(w, r, sess)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// listBudgets returns every budget evaluated against the current journal, so
// clients get spent/remaining/alert without a second round trip.
func (s *Server) listBudgets(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	ctx := r.Context()
	budgets, err := s.store.ListBudgets(ctx, sess.Account)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list budgets", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not load budgets")
		return
	}
	transactions, err := s.store.ListTransactions(ctx, sess.Account)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list transactions", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not load budgets")
		return
	}

	statuses := core.EvaluateBudgets(budgets, transactions)
	writeJSON(w, http.StatusOK, map[string]any{"budgets": toBudgetStatusViews(statuses)})
}

func (s *Server) upsertBudget(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req upsertBudgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cents, err := core.ParseDecimalToCents(strings.TrimSpace(req.Amount))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount: "+err.Error())
		return
	}

	budget, err := core.NewBudget(core.BudgetParams{
		Category:       core.ExpenseCategory(req.Category),
		Amount:         core.Money{Cents: cents},
		AlertsEnabled:  req.AlertsEnabled,
		AlertThreshold: req.AlertThreshold,
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx := r.Context()
	stored, err := s.store.UpsertBudget(ctx, sess.Account, budget)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save budget", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not save budget")
		return
	}

	s.dashCache.Delete(sess.Account)

	transactions, err := s.store.ListTransactions(ctx, sess.Account)
	if err != nil {
		transactions = nil
	}
	status := core.EvaluateBudget(stored, transactions)

	s.logger.InfoContext(ctx, "Budget saved",
		log.FieldBudgetID, stored.ID,
		log.FieldCategory, string(stored.Category),
		log.FieldAmountCents, stored.Amount.Cents)

	// A lowered limit can put the budget straight into warning or danger
	// against the existing journal, so the upsert runs the same alert pass
	// a transaction write does.
	notifications := s.checkBudgets(r, sess)
	writeJSON(w, http.StatusOK, map[string]any{
		"budget":        toBudgetStatusView(status),
		"notifications": notifications,
	})
}

func (s *Server) handleBudgetByID(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/budgets/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "invalid budget id")
		return
	}

	if err := s.store.DeleteBudget(r.Context(), sess.Account, id); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to delete budget",
			log.FieldBudgetID, id, log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not delete budget")
		return
	}
	s.dashCache.Delete(sess.Account)
	s.notifier.ForgetBudget(sess.Account, id)
	s.checkBudgets(r, sess)
	w.WriteHeader(http.StatusNoContent)
}
