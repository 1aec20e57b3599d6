package http

import (
	"net/http"
	"strings"

	"budgetbuddy/internal/log"
	"budgetbuddy/internal/session"
)

const sessionCookieName = "session_token"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Account string `json:"account"`
	Theme   string `json:"theme"`
}

// handleLogin starts a session. This is a single-tenant tool: any non-empty
// credential pair is accepted and the username becomes the account scope.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	username := sanitizeInput(req.Username)
	if username == "" || strings.TrimSpace(req.Password) == "" {
		writeError(w, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	sess, err := s.sessions.Create(username)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to create session", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	theme, err := s.store.Theme(r.Context(), username)
	if err != nil {
		theme = "light"
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	s.logger.InfoContext(r.Context(), "Session created", log.FieldAccount, username)
	writeJSON(w, http.StatusOK, loginResponse{Token: sess.Token, Account: username, Theme: theme})
}

// handleLogout ends the session and drops the account's journal and budgets.
// The tool treats data as session-scoped: closing the books wipes them.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()
	if err := s.store.ClearTransactions(ctx, sess.Account); err != nil {
		s.logger.ErrorContext(ctx, "Failed to clear transactions on logout", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not clear account data")
		return
	}
	if err := s.store.ClearBudgets(ctx, sess.Account); err != nil {
		s.logger.ErrorContext(ctx, "Failed to clear budgets on logout", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not clear account data")
		return
	}

	s.notifier.Forget(sess.Account)
	s.dashCache.Delete(sess.Account)
	s.sessions.Destroy(sess.Token)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	s.logger.InfoContext(ctx, "Session destroyed", log.FieldAccount, sess.Account)
	w.WriteHeader(http.StatusNoContent)
}

// withSession resolves the session token from the Authorization header or the
// session cookie and rejects the request when neither yields a live session.
func (s *Server) withSession(next func(http.ResponseWriter, *http.Request, *session.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			if c, err := r.Cookie(sessionCookieName); err == nil {
				token = c.Value
			}
		}

		sess, ok := s.sessions.Get(token)
		if !ok {
			writeError(w, http.StatusUnauthorized, session.ErrNotAuthenticated.Error())
			return
		}
		next(w, r, sess)
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}
