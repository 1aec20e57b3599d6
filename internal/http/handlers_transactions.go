package http

import (
	"fmt"
	"net/http"
	"strings"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/session"
)

type createTransactionRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
}

type createTransactionResponse struct {
	Transaction   transactionView    `json:"transaction"`
	Notifications []notificationView `json:"notifications"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r, sess)
	case http.MethodPost:
		s.createTransaction(w, r, sess)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	transactions, err := s.store.ListTransactions(r.Context(), sess.Account)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to list transactions", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not load transactions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": toTransactionViews(transactions)})
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req createTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cents, err := core.ParseDecimalToCents(strings.TrimSpace(req.Amount))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount: "+err.Error())
		return
	}
	amount := core.Money{Cents: cents}
	description := sanitizeInput(req.Description)

	var tx core.Transaction
	switch core.TransactionType(req.Type) {
	case core.Income:
		tx, err = core.NewIncome(description, amount, core.IncomeCategory(req.Category))
	case core.Expense:
		tx, err = core.NewExpense(description, amount, core.ExpenseCategory(req.Category))
	default:
		writeError(w, http.StatusUnprocessableEntity, core.ErrInvalidType.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx := r.Context()
	stored, err := s.store.AppendTransaction(ctx, sess.Account, tx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save transaction", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not save transaction")
		return
	}
	s.dashCache.Delete(sess.Account)
	s.structured.LogTransactionCreated(ctx, stored.ID, stored.Category, stored.Amount.Cents)

	notifications := s.checkBudgets(r, sess)
	writeJSON(w, http.StatusCreated, createTransactionResponse{
		Transaction:   toTransactionView(stored),
		Notifications: notifications,
	})
}

// checkBudgets re-evaluates every budget, publishes transitions to the broker
// and returns the in-session notifications the current session has not seen
// yet. Evaluation failures degrade to no notifications rather than failing
// the write that triggered the check.
func (s *Server) checkBudgets(r *http.Request, sess *session.Session) []notificationView {
	ctx := r.Context()
	notifications := []notificationView{}

	budgets, err := s.store.ListBudgets(ctx, sess.Account)
	if err != nil || len(budgets) == 0 {
		return notifications
	}
	transactions, err := s.store.ListTransactions(ctx, sess.Account)
	if err != nil {
		return notifications
	}

	statuses := core.EvaluateBudgets(budgets, transactions)
	s.notifier.Check(ctx, sess.Account, statuses)

	for _, st := range statuses {
		if st.Alert == core.AlertOK {
			continue
		}
		if !sess.MarkAlerted(st.ID, st.Alert) {
			continue
		}
		notifications = append(notifications, notificationView{
			BudgetID: st.ID,
			Category: string(st.Category),
			State:    string(st.Alert),
			Message:  alertMessage(st),
		})
	}
	return notifications
}

func alertMessage(st core.BudgetStatus) string {
	if st.Alert == core.AlertDanger {
		return fmt.Sprintf("Budget for %s has exceeded its limit of %s", st.Category, st.Amount)
	}
	return fmt.Sprintf("Budget for %s is at %.0f%% of its %s limit", st.Category, st.Progress, st.Amount)
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := s.store.DeleteTransaction(r.Context(), sess.Account, id); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to delete transaction",
			log.FieldTransactionID, id, log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not delete transaction")
		return
	}
	s.dashCache.Delete(sess.Account)
	// Removing an expense lowers consumption; the alert pass records the
	// recovery so a later climb back over the limit publishes again.
	s.checkBudgets(r, sess)
	w.WriteHeader(http.StatusNoContent)
}
