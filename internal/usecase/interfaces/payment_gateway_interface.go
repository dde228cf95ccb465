package interfaces

import (
	"context"
	"encoding/json"
)

// PaymentCharge is the provider's answer to a charge request.
type PaymentCharge struct {
	ProviderPaymentID string
	Status            string
	Response          json.RawMessage
}

// IPaymentGateway charges an invoice's remaining amount with an external provider
// (Mercado Pago). The payload is the provider's request body, already pinned to the
// invoice amount and reference. Requests sharing an idempotency key must be
// charged at most once by the provider.
type IPaymentGateway interface {
	Charge(ctx context.Context, payload json.RawMessage, idempotencyKey string) (PaymentCharge, error)
}
