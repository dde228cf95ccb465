package request

import (
	"time"

	"project_billing/internal/domain/money"
	"project_billing/internal/usecase"
)

type CreateQuoteRequest struct {
	DepositPercent *int       `json:"deposit_percent"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

func (r CreateQuoteRequest) ToCommand(projectID string) usecase.CreateQuoteCommand {
	return usecase.CreateQuoteCommand{
		ProjectID:      projectID,
		DepositPercent: r.DepositPercent,
		ExpiresAt:      r.ExpiresAt,
	}
}

type LineItemRequest struct {
	Label          string `json:"label" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type CreateInvoiceRequest struct {
	Items          []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	DepositPercent *int              `json:"deposit_percent"`
}

func (r CreateInvoiceRequest) ToCommand(projectID string) usecase.CreateInvoiceCommand {
	items := make([]usecase.LineItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, usecase.LineItemInput{
			Label:          it.Label,
			Quantity:       it.Quantity,
			UnitPriceCents: money.Cents(it.UnitPriceCents),
		})
	}
	return usecase.CreateInvoiceCommand{
		ProjectID:      projectID,
		Items:          items,
		DepositPercent: r.DepositPercent,
	}
}

type CreateInvoiceFromQuoteRequest struct {
	QuoteID string `json:"quote_id" binding:"required"`
}

type ApplyPaymentRequest struct {
	AmountCents *int64 `json:"amount_cents" binding:"required"`
}
