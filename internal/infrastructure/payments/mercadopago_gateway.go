// Package payments holds the payment provider adapters.
package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"project_billing/internal/infrastructure/logger"
	"project_billing/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

const idempotencyHeader = "X-Idempotency-Key"

type idempotencyKeyCtx struct{}

func withIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKeyCtx{}, key)
}

// idempotentRequester overrides any idempotency key the SDK set with the one
// carried in the request context, so a repeated charge for the same invoice
// version is deduplicated by the provider.
type idempotentRequester struct {
	client *http.Client
}

func (r idempotentRequester) Do(req *http.Request) (*http.Response, error) {
	if key, ok := req.Context().Value(idempotencyKeyCtx{}).(string); ok && key != "" {
		req.Header.Set(idempotencyHeader, key)
	}
	return r.client.Do(req)
}

var (
	ErrMissingMercadoPagoAccessToken   = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
)

// MercadoPagoGateway charges invoices through the Mercado Pago payments API.
type MercadoPagoGateway struct {
	client payment.Client
	log    *logger.Logger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, log *logger.Logger) (*MercadoPagoGateway, error) {
	if log == nil {
		log = logger.NewNop()
	}
	log = log.With("component", "mercadopago")
	if accessToken == "" {
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken,
		config.WithHTTPClient(idempotentRequester{client: &http.Client{Timeout: 30 * time.Second}}),
	)
	if err != nil {
		log.Error("sdk config rejected", "error", err)
		return nil, err
	}
	log.Info("payments client ready")
	return &MercadoPagoGateway{client: payment.NewClient(cfg), log: log}, nil
}

// Charge decodes payload as a payment.Request and submits it under idempotencyKey.
// The returned error is the SDK's, whose message carries the provider's error body.
func (g *MercadoPagoGateway) Charge(ctx context.Context, payload json.RawMessage, idempotencyKey string) (interfaces.PaymentCharge, error) {
	if g == nil || g.client == nil {
		return interfaces.PaymentCharge{}, ErrMercadoPagoGatewayNotConfigured
	}

	var req payment.Request
	if err := json.Unmarshal(payload, &req); err != nil {
		return interfaces.PaymentCharge{}, err
	}
	resp, err := g.client.Create(withIdempotencyKey(ctx, idempotencyKey), req)
	if err != nil {
		g.log.Error("charge rejected", "idempotency_key", idempotencyKey, "error", err)
		return interfaces.PaymentCharge{}, err
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return interfaces.PaymentCharge{}, err
	}

	charge := interfaces.PaymentCharge{
		ProviderPaymentID: fmt.Sprint(resp.ID),
		Status:            resp.Status,
		Response:          raw,
	}
	g.log.Info("charge submitted", "provider_payment_id", charge.ProviderPaymentID, "status", charge.Status, "idempotency_key", idempotencyKey)
	return charge, nil
}
