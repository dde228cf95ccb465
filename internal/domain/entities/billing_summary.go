package entities

import "project_billing/internal/domain/money"

// SummarySource names the pricing source a billing summary was derived from.
type SummarySource string

const (
	SourceSignedQuote     SummarySource = "SIGNED_QUOTE"
	SourceOtherQuote      SummarySource = "OTHER_QUOTE"
	SourcePricingSnapshot SummarySource = "PRICING_SNAPSHOT"
)

// BillingSummary is the derived, never persisted financial view of a project.
type BillingSummary struct {
	ProjectID               string         `json:"project_id"`
	Source                  SummarySource  `json:"source"`
	ReferenceQuoteID        *string        `json:"reference_quote_id,omitempty"`
	Currency                money.Currency `json:"currency"`
	PlannedValueCents       money.Cents    `json:"planned_value_cents"`
	TotalCents              money.Cents    `json:"total_cents"`
	DepositPercent          int            `json:"deposit_percent"`
	DepositCents            money.Cents    `json:"deposit_cents"`
	BalanceCents            money.Cents    `json:"balance_cents"`
	AlreadyInvoicedCents    money.Cents    `json:"already_invoiced_cents"`
	AlreadyPaidCents        money.Cents    `json:"already_paid_cents"`
	RemainingToCollectCents money.Cents    `json:"remaining_to_collect_cents"`
	RemainingToInvoiceCents money.Cents    `json:"remaining_to_invoice_cents"`
	RemainingCents          money.Cents    `json:"remaining_cents"`
	IncomeCents             money.Cents    `json:"income_cents"`
	ExpenseCents            money.Cents    `json:"expense_cents"`
	CountedInvoiceIDs       []string       `json:"counted_invoice_ids"`
}
