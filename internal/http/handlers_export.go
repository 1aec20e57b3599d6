package http

import (
	"net/http"

	"budgetbuddy/internal/export"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/session"
)

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	transactions, err := s.store.ListTransactions(r.Context(), sess.Account)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to list transactions", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not export transactions")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := export.WriteCSV(w, transactions); err != nil {
		s.logger.ErrorContext(r.Context(), "CSV export failed",
			log.FieldOperation, log.OpExport, log.FieldError, err.Error())
	}
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	transactions, err := s.store.ListTransactions(r.Context(), sess.Account)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to list transactions", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not export statement")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="statement.pdf"`)
	if err := export.WritePDF(w, sess.Account, transactions); err != nil {
		s.logger.ErrorContext(r.Context(), "PDF export failed",
			log.FieldOperation, log.OpExport, log.FieldError, err.Error())
	}
}
