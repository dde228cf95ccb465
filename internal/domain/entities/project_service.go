package entities

import (
	"time"

	"project_billing/internal/domain/money"
)

// ProjectService is a catalog service sold on a project.
// PriceCentsOverride, when set, takes precedence over the catalog default price.
type ProjectService struct {
	ID                 string       `json:"id"`
	BusinessID         string       `json:"business_id"`
	ProjectID          string       `json:"project_id"`
	ServiceID          string       `json:"service_id"`
	Quantity           int          `json:"quantity"`
	PriceCentsOverride *money.Cents `json:"price_cents_override,omitempty"`
	Notes              string       `json:"notes,omitempty"`
	Position           int          `json:"position"`
	Version            int64        `json:"version"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}
