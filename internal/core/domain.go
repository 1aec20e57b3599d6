package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	IncomeSales       IncomeCategory = "sales"
	IncomeServices    IncomeCategory = "services"
	IncomeInvestments IncomeCategory = "investments"
	IncomeFunding     IncomeCategory = "funding"
	IncomeOther       IncomeCategory = "other"
)

const (
	ExpenseOperations ExpenseCategory = "operations"
	ExpensePayroll    ExpenseCategory = "payroll"
	ExpenseMarketing  ExpenseCategory = "marketing"
	ExpenseUtilities  ExpenseCategory = "utilities"
	ExpenseMaterials  ExpenseCategory = "materials"
	ExpenseRent       ExpenseCategory = "rent"
	ExpenseOther      ExpenseCategory = "other"
)

// DefaultAlertThreshold is applied when a budget is created without an
// explicit threshold.
const DefaultAlertThreshold = 80

type (
	TransactionType string

	// IncomeCategory and ExpenseCategory are separate enumerations; a
	// transaction's category must belong to the set matching its type.
	IncomeCategory  string
	ExpenseCategory string

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID          string
		Date        time.Time // creation instant, not user-editable
		Type        TransactionType
		Description string
		Amount      Money
		Category    string
	}

	Budget struct {
		ID             string
		Category       ExpenseCategory
		Amount         Money
		AlertsEnabled  bool
		AlertThreshold int // percent, 1-100
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidCategory  = errors.New("invalid category for transaction type")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidThreshold = errors.New("alert threshold must be between 1 and 100")
)

// IncomeCategories returns the income category set in display order.
func IncomeCategories() []IncomeCategory {
	return []IncomeCategory{IncomeSales, IncomeServices, IncomeInvestments, IncomeFunding, IncomeOther}
}

// ExpenseCategories returns the expense category set in display order.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{ExpenseOperations, ExpensePayroll, ExpenseMarketing, ExpenseUtilities, ExpenseMaterials, ExpenseRent, ExpenseOther}
}

func (c IncomeCategory) IsValid() bool {
	switch c {
	case IncomeSales, IncomeServices, IncomeInvestments, IncomeFunding, IncomeOther:
		return true
	}
	return false
}

func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseOperations, ExpensePayroll, ExpenseMarketing, ExpenseUtilities, ExpenseMaterials, ExpenseRent, ExpenseOther:
		return true
	}
	return false
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// NewIncome builds an income transaction. Taking a typed category makes a
// type/category mismatch unrepresentable at the construction boundary. ID and
// Date are assigned by the store on append.
func NewIncome(description string, amount Money, category IncomeCategory) (Transaction, error) {
	if !category.IsValid() {
		return Transaction{}, ErrInvalidCategory
	}
	t := Transaction{
		Type:        Income,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Category:    string(category),
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// NewExpense builds an expense transaction; see NewIncome.
func NewExpense(description string, amount Money, category ExpenseCategory) (Transaction, error) {
	if !category.IsValid() {
		return Transaction{}, ErrInvalidCategory
	}
	t := Transaction{
		Type:        Expense,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Category:    string(category),
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	switch t.Type {
	case Income:
		if !IncomeCategory(t.Category).IsValid() {
			return ErrInvalidCategory
		}
	case Expense:
		if !ExpenseCategory(t.Category).IsValid() {
			return ErrInvalidCategory
		}
	default:
		return ErrInvalidType
	}
	return nil
}

// BudgetParams carries the optional alert fields as pointers so that unset is
// distinguishable from an explicit false or zero.
type BudgetParams struct {
	Category       ExpenseCategory
	Amount         Money
	AlertsEnabled  *bool
	AlertThreshold *int
}

// NewBudget fills defaults exactly once at construction: alerts enabled with
// an 80% threshold unless the caller says otherwise. Read sites never
// re-derive effective values.
func NewBudget(p BudgetParams) (Budget, error) {
	if !p.Category.IsValid() {
		return Budget{}, ErrInvalidCategory
	}
	if err := p.Amount.Validate(); err != nil {
		return Budget{}, err
	}
	b := Budget{
		Category:       p.Category,
		Amount:         p.Amount,
		AlertsEnabled:  true,
		AlertThreshold: DefaultAlertThreshold,
	}
	if p.AlertsEnabled != nil {
		b.AlertsEnabled = *p.AlertsEnabled
	}
	if p.AlertThreshold != nil {
		if *p.AlertThreshold < 1 || *p.AlertThreshold > 100 {
			return Budget{}, ErrInvalidThreshold
		}
		b.AlertThreshold = *p.AlertThreshold
	}
	return b, nil
}
