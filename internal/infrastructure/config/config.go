// Package config reads the service configuration from the environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"
)

// Tables holds the DynamoDB table names.
type Tables struct {
	Projects        string
	ProjectServices string
	Quotes          string
	Invoices        string
	FinanceLines    string
	Tasks           string
	Businesses      string
	Catalog         string
	Sequences       string
}

type Config struct {
	Port             int
	LogMode          string
	StoreDriver      string
	DatabaseURL      string
	AWSRegion        string
	DynamoDBEndpoint string
	Tables           Tables
	JWTSecret        string
	QuoteExpiryCron  string
	MercadoPagoToken string
	TestPayerEmail   string
	TestPayerUserID  string
	PaymentMock      bool
	MetricsEnabled   bool
	// TrustGatewayHeaders allows header identity in prod when an authenticating
	// gateway strips and sets the X-Actor-* headers.
	TrustGatewayHeaders bool
}

// ErrHeaderIdentityInProd rejects a production config that would take the actor's role
// from client-supplied headers.
var ErrHeaderIdentityInProd = errors.New("JWT_SECRET is required when LOG_MODE=prod unless TRUST_GATEWAY_HEADERS is set")

// Validate reports settings the API must not start with.
func (c Config) Validate() error {
	if c.LogMode == "prod" && c.JWTSecret == "" && !c.TrustGatewayHeaders {
		return ErrHeaderIdentityInProd
	}
	return nil
}

// Load builds a Config from the environment, applying defaults for unset variables.
func Load() Config {
	return Config{
		Port:             getenvInt("PORT", 8080),
		LogMode:          getenvDefault("LOG_MODE", "dev"),
		StoreDriver:      strings.ToLower(getenvDefault("STORE_DRIVER", StoreDynamoDB)),
		DatabaseURL:      os.Getenv("DB_URL"),
		AWSRegion:        getenvDefault("AWS_REGION", "us-east-1"),
		DynamoDBEndpoint: os.Getenv("DYNAMODB_ENDPOINT"),
		Tables: Tables{
			Projects:        getenvDefault("PROJECTS_TABLE", "projects"),
			ProjectServices: getenvDefault("PROJECT_SERVICES_TABLE", "project_services"),
			Quotes:          getenvDefault("QUOTES_TABLE", "quotes"),
			Invoices:        getenvDefault("INVOICES_TABLE", "invoices"),
			FinanceLines:    getenvDefault("FINANCE_LINES_TABLE", "finance_lines"),
			Tasks:           getenvDefault("TASKS_TABLE", "tasks"),
			Businesses:      getenvDefault("BUSINESSES_TABLE", "businesses"),
			Catalog:         getenvDefault("CATALOG_TABLE", "catalog_services"),
			Sequences:       getenvDefault("SEQUENCES_TABLE", "sequences"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		// An explicitly empty QUOTE_EXPIRY_CRON disables the job.
		QuoteExpiryCron:  getenvPresent("QUOTE_EXPIRY_CRON", "@every 1h"),
		MercadoPagoToken: strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")),
		TestPayerEmail:   strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")),
		TestPayerUserID:  strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_USER_ID")),
		PaymentMock:      getenvBool("PAYMENT_GATEWAY_MOCK", false) || getenvBool("MERCADOPAGO_MOCK", false),
		MetricsEnabled:   getenvBool("METRICS_ENABLED", true),

		TrustGatewayHeaders: getenvBool("TRUST_GATEWAY_HEADERS", false),
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvPresent(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return def
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}
