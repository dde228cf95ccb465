package request

import (
	"bytes"
	"encoding/json"
	"errors"

	"project_billing/internal/domain/money"
	"project_billing/internal/usecase"
)

var ErrInvalidPriceOverride = errors.New("price_cents_override must be an integer or null")

type AddProjectServiceRequest struct {
	ServiceID          string `json:"service_id" binding:"required"`
	Quantity           *int   `json:"quantity"`
	PriceCentsOverride *int64 `json:"price_cents_override"`
	Notes              string `json:"notes"`
	Position           *int   `json:"position"`
}

// ToCommand defaults the quantity to one.
func (r AddProjectServiceRequest) ToCommand(projectID string) usecase.AddProjectServiceCommand {
	qty := 1
	if r.Quantity != nil {
		qty = *r.Quantity
	}
	cmd := usecase.AddProjectServiceCommand{
		ProjectID: projectID,
		ServiceID: r.ServiceID,
		Quantity:  qty,
		Notes:     r.Notes,
		Position:  r.Position,
	}
	if r.PriceCentsOverride != nil {
		c := money.Cents(*r.PriceCentsOverride)
		cmd.PriceCentsOverride = &c
	}
	return cmd
}

// UpdateProjectServiceRequest is a partial update. An explicit null price override clears
// it so the catalog price applies again.
type UpdateProjectServiceRequest struct {
	Quantity           *int            `json:"quantity"`
	PriceCentsOverride json.RawMessage `json:"price_cents_override"`
	Notes              *string         `json:"notes"`
	Position           *int            `json:"position"`
}

func (r UpdateProjectServiceRequest) ToCommand() (usecase.UpdateProjectServiceCommand, error) {
	cmd := usecase.UpdateProjectServiceCommand{
		Quantity: r.Quantity,
		Notes:    r.Notes,
		Position: r.Position,
	}
	switch {
	case len(r.PriceCentsOverride) == 0:
	case bytes.Equal(bytes.TrimSpace(r.PriceCentsOverride), []byte("null")):
		cmd.ClearPriceOverride = true
	default:
		var v int64
		if err := json.Unmarshal(r.PriceCentsOverride, &v); err != nil {
			return usecase.UpdateProjectServiceCommand{}, ErrInvalidPriceOverride
		}
		c := money.Cents(v)
		cmd.PriceCentsOverride = &c
	}
	return cmd, nil
}
