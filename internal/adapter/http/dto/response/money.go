package response

import "project_billing/internal/domain/money"

// Amount is a minor-unit amount with its major-unit rendering, e.g. {4900, "49.00"}.
type Amount struct {
	Cents   int64  `json:"cents"`
	Display string `json:"display"`
}

func amount(c money.Cents, cur money.Currency) Amount {
	return Amount{Cents: int64(c), Display: money.Format(c, cur)}
}

type LineItemResponse struct {
	ProjectServiceID string `json:"project_service_id,omitempty"`
	ServiceID        string `json:"service_id,omitempty"`
	Label            string `json:"label"`
	Quantity         int    `json:"quantity"`
	UnitPrice        Amount `json:"unit_price"`
	Total            Amount `json:"total"`
}
