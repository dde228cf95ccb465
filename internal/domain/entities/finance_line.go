package entities

import (
	"time"

	"project_billing/internal/domain/money"
)

type FinanceLineType string

const (
	FinanceIncome  FinanceLineType = "INCOME"
	FinanceExpense FinanceLineType = "EXPENSE"
)

// FinanceLine is a single-sided ledger line managed outside the engine; it is
// read-only input to the billing summary.
type FinanceLine struct {
	ID          string          `json:"id"`
	BusinessID  string          `json:"business_id"`
	ProjectID   *string         `json:"project_id,omitempty"`
	InvoiceID   *string         `json:"invoice_id,omitempty"`
	Type        FinanceLineType `json:"type"`
	AmountCents money.Cents     `json:"amount_cents"`
	Category    string          `json:"category,omitempty"`
	Date        time.Time       `json:"date"`
}
