package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"project_billing/internal/infrastructure/logger"
)

func TestNewMercadoPagoGateway_RequiresToken(t *testing.T) {
	if _, err := NewMercadoPagoGateway("", nil); !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
		t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
	}
}

func TestMercadoPagoGateway_NotConfigured(t *testing.T) {
	var g *MercadoPagoGateway
	_, err := g.Charge(context.Background(), json.RawMessage(`{}`), "invoice-i-1-v1")
	if !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
		t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
	}
}

func TestMercadoPagoGateway_RejectsInvalidPayload(t *testing.T) {
	g, err := NewMercadoPagoGateway("TEST-123", logger.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := g.Charge(context.Background(), json.RawMessage(`{`), "invoice-i-1-v1"); err == nil {
		t.Fatalf("expected payload error")
	}
}

func TestIdempotentRequester_OverridesKeyFromContext(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get(idempotencyHeader))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rq := idempotentRequester{client: srv.Client()}
	for i := 0; i < 2; i++ {
		req, err := http.NewRequestWithContext(withIdempotencyKey(context.Background(), "invoice-i-1-v3"), http.MethodPost, srv.URL, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		req.Header.Set(idempotencyHeader, "random-per-request")
		resp, err := rq.Do(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		resp.Body.Close()
	}

	if len(got) != 2 || got[0] != "invoice-i-1-v3" || got[1] != "invoice-i-1-v3" {
		t.Fatalf("expected the caller key on both requests, got %v", got)
	}
}

func TestIdempotentRequester_KeepsHeaderWithoutKey(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(idempotencyHeader)
	}))
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodPost, srv.URL, nil)
	req.Header.Set(idempotencyHeader, "sdk-key")
	resp, err := idempotentRequester{client: srv.Client()}.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()
	if got != "sdk-key" {
		t.Fatalf("expected sdk-key, got %q", got)
	}
}
