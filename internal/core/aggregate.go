package core

import (
	"sort"
	"time"
)

// Totals is the income/expense roll-up shown on the dashboard.
// ProfitOrLoss is income minus expense and may be negative.
type Totals struct {
	Income       Money
	Expense      Money
	ProfitOrLoss Money
}

// CategoryTotal is an amount aggregated by category name.
type CategoryTotal struct {
	Category string
	Total    Money
}

// MonthTotal is the income/expense pair for one calendar month.
type MonthTotal struct {
	Year    int
	Month   time.Month
	Income  Money
	Expense Money
}

// Label formats the month for display, e.g. "Jan 2026".
func (m MonthTotal) Label() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// TotalsByType sums transaction amounts by type in a single pass.
func TotalsByType(transactions []Transaction) Totals {
	var t Totals
	for _, tx := range transactions {
		switch tx.Type {
		case Income:
			t.Income = t.Income.Add(tx.Amount)
		case Expense:
			t.Expense = t.Expense.Add(tx.Amount)
		}
	}
	t.ProfitOrLoss = t.Income.Sub(t.Expense)
	return t
}

// ExpenseBreakdown groups expense transactions by category. Categories appear
// in order of first occurrence in the input, which for stored transactions is
// insertion order.
func ExpenseBreakdown(transactions []Transaction) []CategoryTotal {
	idx := make(map[string]int)
	out := make([]CategoryTotal, 0)
	for _, tx := range transactions {
		if tx.Type != Expense {
			continue
		}
		i, ok := idx[tx.Category]
		if !ok {
			i = len(out)
			idx[tx.Category] = i
			out = append(out, CategoryTotal{Category: tx.Category})
		}
		out[i].Total = out[i].Total.Add(tx.Amount)
	}
	return out
}

// MonthlySeries buckets transactions by calendar month and returns the
// buckets in chronological order, which holds across year boundaries.
func MonthlySeries(transactions []Transaction) []MonthTotal {
	type key struct {
		year  int
		month time.Month
	}
	buckets := make(map[key]*MonthTotal)
	for _, tx := range transactions {
		k := key{year: tx.Date.Year(), month: tx.Date.Month()}
		b, ok := buckets[k]
		if !ok {
			b = &MonthTotal{Year: k.year, Month: k.month}
			buckets[k] = b
		}
		switch tx.Type {
		case Income:
			b.Income = b.Income.Add(tx.Amount)
		case Expense:
			b.Expense = b.Expense.Add(tx.Amount)
		}
	}
	out := make([]MonthTotal, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// CategorySpend sums expense amounts for a single category.
func CategorySpend(transactions []Transaction, category ExpenseCategory) Money {
	var total Money
	for _, tx := range transactions {
		if tx.Type == Expense && tx.Category == string(category) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}
