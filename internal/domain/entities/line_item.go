package entities

import "project_billing/internal/domain/money"

// LineItem is a frozen, priced line of a pricing snapshot, quote or invoice.
type LineItem struct {
	ProjectServiceID string      `json:"project_service_id,omitempty"`
	ServiceID        string      `json:"service_id,omitempty"`
	Label            string      `json:"label"`
	Quantity         int         `json:"quantity"`
	UnitPriceCents   money.Cents `json:"unit_price_cents"`
	TotalCents       money.Cents `json:"total_cents"`
}

// PricingSnapshot is a point-in-time projection of a project's sold services.
type PricingSnapshot struct {
	Currency       money.Currency `json:"currency"`
	Items          []LineItem     `json:"items"`
	TotalCents     money.Cents    `json:"total_cents"`
	DepositPercent int            `json:"deposit_percent"`
	DepositCents   money.Cents    `json:"deposit_cents"`
	BalanceCents   money.Cents    `json:"balance_cents"`
}
