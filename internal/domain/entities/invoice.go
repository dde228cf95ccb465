package entities

import (
	"time"

	"project_billing/internal/domain/money"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

func (s InvoiceStatus) String() string { return string(s) }

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

func (s InvoiceStatus) Terminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// Invoice bills a project, usually from a signed quote.
//
// Invariants: RemainingCents == max(0, TotalCents - PaidCents); PaidAt != nil iff Status == PAID;
// PaidCents never exceeds TotalCents.
type Invoice struct {
	ID                 string           `json:"id"`
	BusinessID         string           `json:"business_id"`
	ProjectID          string           `json:"project_id"`
	ClientID           *string          `json:"client_id,omitempty"`
	QuoteID            *string          `json:"quote_id,omitempty"`
	Status             InvoiceStatus    `json:"status"`
	Number             *string          `json:"number,omitempty"`
	DepositPercent     int              `json:"deposit_percent"`
	Currency           money.Currency   `json:"currency"`
	TotalCents         money.Cents      `json:"total_cents"`
	DepositCents       money.Cents      `json:"deposit_cents"`
	BalanceCents       money.Cents      `json:"balance_cents"`
	PaidCents          money.Cents      `json:"paid_cents"`
	RemainingCents     money.Cents      `json:"remaining_cents"`
	Items              []LineItem       `json:"items"`
	IssuedAt           *time.Time       `json:"issued_at,omitempty"`
	DueAt              *time.Time       `json:"due_at,omitempty"`
	PaidAt             *time.Time       `json:"paid_at,omitempty"`
	ConsumptionEntryID *string          `json:"consumption_entry_id,omitempty"`
	CashSaleEntryID    *string          `json:"cash_sale_entry_id,omitempty"`
	Charges            []ProviderCharge `json:"charges,omitempty"`
	Version            int64            `json:"version"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// ProviderCharge is a payment the provider approved for the invoice.
// Applied is false when the invoice could no longer take the payment and the
// charge has to be reconciled by hand.
type ProviderCharge struct {
	ProviderPaymentID string      `json:"provider_payment_id"`
	AmountCents       money.Cents `json:"amount_cents"`
	Applied           bool        `json:"applied"`
	ChargedAt         time.Time   `json:"charged_at"`
}

// Charge returns the recorded charge with the given provider id.
func (i *Invoice) Charge(providerPaymentID string) (ProviderCharge, bool) {
	for _, c := range i.Charges {
		if c.ProviderPaymentID == providerPaymentID {
			return c, true
		}
	}
	return ProviderCharge{}, false
}

// Recompute refreshes the derived RemainingCents field.
func (i *Invoice) Recompute() {
	i.RemainingCents = money.SubtractClamped(i.TotalCents, i.PaidCents)
}
