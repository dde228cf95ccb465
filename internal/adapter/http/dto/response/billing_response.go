package response

import (
	"encoding/json"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/money"
	"project_billing/internal/usecase"
)

type QuoteResponse struct {
	ID             string             `json:"id"`
	ProjectID      string             `json:"project_id"`
	ClientID       *string            `json:"client_id,omitempty"`
	Status         string             `json:"status"`
	Number         *string            `json:"number,omitempty"`
	Currency       string             `json:"currency"`
	DepositPercent int                `json:"deposit_percent"`
	Total          Amount             `json:"total"`
	Deposit        Amount             `json:"deposit"`
	Balance        Amount             `json:"balance"`
	Items          []LineItemResponse `json:"items"`
	IssuedAt       *time.Time         `json:"issued_at,omitempty"`
	ExpiresAt      *time.Time         `json:"expires_at,omitempty"`
	SignedAt       *time.Time         `json:"signed_at,omitempty"`
	Version        int64              `json:"version"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:             q.ID,
		ProjectID:      q.ProjectID,
		ClientID:       q.ClientID,
		Status:         string(q.Status),
		Number:         q.Number,
		Currency:       string(q.Currency),
		DepositPercent: q.DepositPercent,
		Total:          amount(q.TotalCents, q.Currency),
		Deposit:        amount(q.DepositCents, q.Currency),
		Balance:        amount(q.BalanceCents, q.Currency),
		Items:          fromLineItems(q.Items, q.Currency),
		IssuedAt:       q.IssuedAt,
		ExpiresAt:      q.ExpiresAt,
		SignedAt:       q.SignedAt,
		Version:        q.Version,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}

func FromQuotes(list []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(list))
	for _, q := range list {
		out = append(out, FromQuote(q))
	}
	return out
}

type InvoiceResponse struct {
	ID                 string             `json:"id"`
	ProjectID          string             `json:"project_id"`
	ClientID           *string            `json:"client_id,omitempty"`
	QuoteID            *string            `json:"quote_id"`
	Status             string             `json:"status"`
	Number             *string            `json:"number,omitempty"`
	Currency           string             `json:"currency"`
	DepositPercent     int                `json:"deposit_percent"`
	Total              Amount             `json:"total"`
	Deposit            Amount             `json:"deposit"`
	Balance            Amount             `json:"balance"`
	Paid               Amount             `json:"paid"`
	Remaining          Amount             `json:"remaining"`
	Items              []LineItemResponse `json:"items"`
	IssuedAt           *time.Time         `json:"issued_at,omitempty"`
	DueAt              *time.Time         `json:"due_at,omitempty"`
	PaidAt             *time.Time         `json:"paid_at,omitempty"`
	ConsumptionEntryID *string            `json:"consumption_entry_id,omitempty"`
	CashSaleEntryID    *string            `json:"cash_sale_entry_id,omitempty"`
	Charges            []ChargeResponse   `json:"charges,omitempty"`
	Version            int64              `json:"version"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:                 inv.ID,
		ProjectID:          inv.ProjectID,
		ClientID:           inv.ClientID,
		QuoteID:            inv.QuoteID,
		Status:             string(inv.Status),
		Number:             inv.Number,
		Currency:           string(inv.Currency),
		DepositPercent:     inv.DepositPercent,
		Total:              amount(inv.TotalCents, inv.Currency),
		Deposit:            amount(inv.DepositCents, inv.Currency),
		Balance:            amount(inv.BalanceCents, inv.Currency),
		Paid:               amount(inv.PaidCents, inv.Currency),
		Remaining:          amount(inv.RemainingCents, inv.Currency),
		Items:              fromLineItems(inv.Items, inv.Currency),
		IssuedAt:           inv.IssuedAt,
		DueAt:              inv.DueAt,
		PaidAt:             inv.PaidAt,
		ConsumptionEntryID: inv.ConsumptionEntryID,
		CashSaleEntryID:    inv.CashSaleEntryID,
		Charges:            fromCharges(inv.Charges, inv.Currency),
		Version:            inv.Version,
		CreatedAt:          inv.CreatedAt,
		UpdatedAt:          inv.UpdatedAt,
	}
}

func FromInvoices(list []entities.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, FromInvoice(inv))
	}
	return out
}

type BillingSummaryResponse struct {
	ProjectID          string   `json:"project_id"`
	Source             string   `json:"source"`
	ReferenceQuoteID   *string  `json:"reference_quote_id"`
	Currency           string   `json:"currency"`
	PlannedValue       Amount   `json:"planned_value"`
	Total              Amount   `json:"total"`
	DepositPercent     int      `json:"deposit_percent"`
	Deposit            Amount   `json:"deposit"`
	Balance            Amount   `json:"balance"`
	AlreadyInvoiced    Amount   `json:"already_invoiced"`
	AlreadyPaid        Amount   `json:"already_paid"`
	RemainingToCollect Amount   `json:"remaining_to_collect"`
	RemainingToInvoice Amount   `json:"remaining_to_invoice"`
	Remaining          Amount   `json:"remaining"`
	Income             Amount   `json:"income"`
	Expense            Amount   `json:"expense"`
	CountedInvoiceIDs  []string `json:"counted_invoice_ids"`
}

func FromBillingSummary(s entities.BillingSummary) BillingSummaryResponse {
	ids := s.CountedInvoiceIDs
	if ids == nil {
		ids = []string{}
	}
	return BillingSummaryResponse{
		ProjectID:          s.ProjectID,
		Source:             string(s.Source),
		ReferenceQuoteID:   s.ReferenceQuoteID,
		Currency:           string(s.Currency),
		PlannedValue:       amount(s.PlannedValueCents, s.Currency),
		Total:              amount(s.TotalCents, s.Currency),
		DepositPercent:     s.DepositPercent,
		Deposit:            amount(s.DepositCents, s.Currency),
		Balance:            amount(s.BalanceCents, s.Currency),
		AlreadyInvoiced:    amount(s.AlreadyInvoicedCents, s.Currency),
		AlreadyPaid:        amount(s.AlreadyPaidCents, s.Currency),
		RemainingToCollect: amount(s.RemainingToCollectCents, s.Currency),
		RemainingToInvoice: amount(s.RemainingToInvoiceCents, s.Currency),
		Remaining:          amount(s.RemainingCents, s.Currency),
		Income:             amount(s.IncomeCents, s.Currency),
		Expense:            amount(s.ExpenseCents, s.Currency),
		CountedInvoiceIDs:  ids,
	}
}

type ChargeResponse struct {
	ProviderPaymentID string    `json:"provider_payment_id"`
	Amount            Amount    `json:"amount"`
	Applied           bool      `json:"applied"`
	ChargedAt         time.Time `json:"charged_at"`
}

func fromCharges(charges []entities.ProviderCharge, currency money.Currency) []ChargeResponse {
	if len(charges) == 0 {
		return nil
	}
	out := make([]ChargeResponse, 0, len(charges))
	for _, c := range charges {
		out = append(out, ChargeResponse{
			ProviderPaymentID: c.ProviderPaymentID,
			Amount:            amount(c.AmountCents, currency),
			Applied:           c.Applied,
			ChargedAt:         c.ChargedAt,
		})
	}
	return out
}

type CheckoutResponse struct {
	Invoice             InvoiceResponse `json:"invoice"`
	ProviderPaymentID   string          `json:"provider_payment_id"`
	ProviderStatus      string          `json:"provider_status"`
	Applied             Amount          `json:"applied"`
	NeedsReconciliation bool            `json:"needs_reconciliation"`
	ProviderResponse    json.RawMessage `json:"provider_response,omitempty"`
}

func FromCheckout(r usecase.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		Invoice:             FromInvoice(r.Invoice),
		ProviderPaymentID:   r.ProviderPaymentID,
		ProviderStatus:      r.ProviderStatus,
		Applied:             amount(r.AppliedCents, r.Invoice.Currency),
		NeedsReconciliation: r.NeedsReconciliation,
		ProviderResponse:    r.ProviderResponse,
	}
}
