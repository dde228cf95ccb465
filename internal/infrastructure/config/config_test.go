package config

import (
	"errors"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_DRIVER", "PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK", "METRICS_ENABLED", "QUOTES_TABLE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != 8080 {
		t.Fatalf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.StoreDriver != StoreDynamoDB {
		t.Fatalf("expected dynamodb driver, got %q", cfg.StoreDriver)
	}
	if cfg.Tables.Quotes != "quotes" {
		t.Fatalf("expected default quotes table, got %q", cfg.Tables.Quotes)
	}
	if cfg.PaymentMock {
		t.Fatalf("expected payment mock disabled")
	}
	if !cfg.MetricsEnabled {
		t.Fatalf("expected metrics enabled by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "yes")
	t.Setenv("METRICS_ENABLED", "off")
	t.Setenv("QUOTE_EXPIRY_CRON", "")

	cfg := Load()
	if cfg.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.StoreDriver != StorePostgres {
		t.Fatalf("expected postgres driver, got %q", cfg.StoreDriver)
	}
	if !cfg.PaymentMock {
		t.Fatalf("expected payment mock enabled")
	}
	if cfg.MetricsEnabled {
		t.Fatalf("expected metrics disabled")
	}
	if cfg.QuoteExpiryCron != "" {
		t.Fatalf("expected empty cron spec to disable the job, got %q", cfg.QuoteExpiryCron)
	}
}

func TestLoad_InvalidPortFallsBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	if got := Load().Port; got != 8080 {
		t.Fatalf("expected fallback port, got %d", got)
	}
}

func TestValidate_HeaderIdentity(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{name: "dev without secret", cfg: Config{LogMode: "dev"}},
		{name: "prod with secret", cfg: Config{LogMode: "prod", JWTSecret: "s"}},
		{name: "prod behind trusted gateway", cfg: Config{LogMode: "prod", TrustGatewayHeaders: true}},
		{name: "prod without secret", cfg: Config{LogMode: "prod"}, want: ErrHeaderIdentityInProd},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoad_TrustGatewayHeaders(t *testing.T) {
	t.Setenv("LOG_MODE", "prod")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TRUST_GATEWAY_HEADERS", "true")
	if err := Load().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
