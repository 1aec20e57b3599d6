package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"budgetbuddy/internal/core"
)

const pdfMaxRows = 200

// WritePDF renders an A4 statement: a totals band followed by the
// transaction table, newest rows first, paged as needed.
func WritePDF(w io.Writer, account string, transactions []core.Transaction) error {
	totals := core.TotalsByType(transactions)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BudgetBuddy Statement")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, "Account: "+account)
	pdf.Ln(5)
	pdf.Cell(0, 6, "Generated: "+time.Now().Format("2006-01-02"))
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)

	sumW := []float64{62, 62, 62}
	pdf.CellFormat(sumW[0], 10, "Income (INR)", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[1], 10, "Expense (INR)", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[2], 10, "Net (INR)", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW[0], 10, totals.Income.String(), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[1], 10, totals.Expense.String(), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[2], 10, totals.ProfitOrLoss.String(), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	writeTableHeader(pdf)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(30, 30, 30)

	// Newest first.
	for i, n := 0, len(transactions); i < n; i++ {
		if i >= pdfMaxRows {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 8, "truncated (too many rows)", "1", 1, "C", false, 0, "")
			break
		}
		t := transactions[n-1-i]

		if pdf.GetY() > 270 {
			pdf.AddPage()
			writeTableHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
		}

		amount := t.Amount.String()
		if t.Type == core.Expense {
			amount = "-" + amount
		}

		pdf.CellFormat(colDate, 8, t.Date.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colType, 8, strings.ToUpper(string(t.Type)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colDesc, 8, trimTo(t.Description, 60), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colCategory, 8, t.Category, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colAmount, 8, amount, "1", 1, "R", false, 0, "")
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated by BudgetBuddy", "", 0, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

const (
	colDate     = 26.0
	colType     = 22.0
	colDesc     = 82.0
	colCategory = 30.0
	colAmount   = 30.0
)

func writeTableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(colDate, 8, "DATE", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colType, 8, "TYPE", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colDesc, 8, "DESCRIPTION", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colCategory, 8, "CATEGORY", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colAmount, 8, "AMOUNT", "1", 1, "R", true, 0, "")
}

func trimTo(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "~"
}
