package http

import (
	"net/http"

	"budgetbuddy/internal/log"
	"budgetbuddy/internal/session"
)

type themeRequest struct {
	Theme string `json:"theme"`
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	switch r.Method {
	case http.MethodGet:
		theme, err := s.store.Theme(r.Context(), sess.Account)
		if err != nil {
			s.logger.ErrorContext(r.Context(), "Failed to load theme", log.FieldError, err.Error())
			writeError(w, http.StatusInternalServerError, "could not load theme")
			return
		}
		writeJSON(w, http.StatusOK, themeRequest{Theme: theme})

	case http.MethodPut:
		var req themeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Theme != "light" && req.Theme != "dark" {
			writeError(w, http.StatusUnprocessableEntity, "theme must be light or dark")
			return
		}
		if err := s.store.SetTheme(r.Context(), sess.Account, req.Theme); err != nil {
			s.logger.ErrorContext(r.Context(), "Failed to save theme", log.FieldError, err.Error())
			writeError(w, http.StatusInternalServerError, "could not save theme")
			return
		}
		writeJSON(w, http.StatusOK, themeRequest{Theme: req.Theme})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleClearData wipes the account's journal and budgets. The theme survives
// a clear; it is a display preference, not financial data.
func (s *Server) handleClearData(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()
	if err := s.store.ClearTransactions(ctx, sess.Account); err != nil {
		s.logger.ErrorContext(ctx, "Failed to clear transactions", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not clear data")
		return
	}
	if err := s.store.ClearBudgets(ctx, sess.Account); err != nil {
		s.logger.ErrorContext(ctx, "Failed to clear budgets", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not clear data")
		return
	}

	s.notifier.Forget(sess.Account)
	s.dashCache.Delete(sess.Account)

	s.logger.InfoContext(ctx, "Account data cleared", log.FieldAccount, sess.Account)
	w.WriteHeader(http.StatusNoContent)
}
