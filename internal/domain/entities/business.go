package entities

import "project_billing/internal/domain/money"

const (
	DefaultPaymentTermsDays  = 30
	DefaultQuoteValidityDays = 30
)

// BusinessSettings carries the per-business billing configuration.
type BusinessSettings struct {
	ID                    string         `json:"id"`
	Currency              money.Currency `json:"currency"`
	DefaultDepositPercent int            `json:"default_deposit_percent"`
	PaymentTermsDays      int            `json:"payment_terms_days"`
	QuoteValidityDays     int            `json:"quote_validity_days"`
}

// DefaultBusinessSettings is used when a business has no stored settings.
func DefaultBusinessSettings(businessID string) BusinessSettings {
	return BusinessSettings{
		ID:                    businessID,
		Currency:              money.DefaultCurrency,
		DefaultDepositPercent: money.DefaultDepositPercent,
		PaymentTermsDays:      DefaultPaymentTermsDays,
		QuoteValidityDays:     DefaultQuoteValidityDays,
	}
}

// WithDefaults fills unset fields from DefaultBusinessSettings.
func (b BusinessSettings) WithDefaults() BusinessSettings {
	def := DefaultBusinessSettings(b.ID)
	if b.Currency == "" {
		b.Currency = def.Currency
	}
	if b.DefaultDepositPercent < 0 || b.DefaultDepositPercent > 100 {
		b.DefaultDepositPercent = def.DefaultDepositPercent
	}
	if b.PaymentTermsDays <= 0 {
		b.PaymentTermsDays = def.PaymentTermsDays
	}
	if b.QuoteValidityDays <= 0 {
		b.QuoteValidityDays = def.QuoteValidityDays
	}
	return b
}
