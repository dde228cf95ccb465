package request

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"project_billing/internal/domain/entities"
)

func TestSetDepositStatusRequest_ToCommand(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantSupplied bool
		wantPaidAt   bool
		wantErr      error
	}{
		{name: "omitted paid_at", body: `{"status":"paid"}`},
		{name: "explicit null", body: `{"status":"PAID","paid_at":null}`, wantSupplied: true},
		{name: "timestamp", body: `{"status":"PAID","paid_at":"2026-03-01T10:00:00Z"}`, wantSupplied: true, wantPaidAt: true},
		{name: "garbage", body: `{"status":"PAID","paid_at":"yesterday"}`, wantErr: ErrInvalidPaidAt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req SetDepositStatusRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			cmd, err := req.ToCommand()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cmd.Status != entities.DepositPaid {
				t.Fatalf("expected PAID, got %q", cmd.Status)
			}
			if cmd.PaidAtSupplied != tt.wantSupplied {
				t.Fatalf("expected supplied=%v, got %v", tt.wantSupplied, cmd.PaidAtSupplied)
			}
			if (cmd.PaidAt != nil) != tt.wantPaidAt {
				t.Fatalf("expected paidAt set=%v, got %v", tt.wantPaidAt, cmd.PaidAt)
			}
			if tt.wantPaidAt && !cmd.PaidAt.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)) {
				t.Fatalf("unexpected paidAt %v", cmd.PaidAt)
			}
		})
	}
}

func TestUpdateProjectServiceRequest_ToCommand(t *testing.T) {
	t.Run("null clears override", func(t *testing.T) {
		var req UpdateProjectServiceRequest
		_ = json.Unmarshal([]byte(`{"price_cents_override":null,"quantity":3}`), &req)
		cmd, err := req.ToCommand()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cmd.ClearPriceOverride || cmd.PriceCentsOverride != nil {
			t.Fatalf("expected clear, got %+v", cmd)
		}
		if cmd.Quantity == nil || *cmd.Quantity != 3 {
			t.Fatalf("expected quantity 3, got %v", cmd.Quantity)
		}
	})

	t.Run("value sets override", func(t *testing.T) {
		var req UpdateProjectServiceRequest
		_ = json.Unmarshal([]byte(`{"price_cents_override":1250}`), &req)
		cmd, err := req.ToCommand()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cmd.ClearPriceOverride || cmd.PriceCentsOverride == nil || *cmd.PriceCentsOverride != 1250 {
			t.Fatalf("expected override 1250, got %+v", cmd)
		}
	})

	t.Run("omitted keeps override", func(t *testing.T) {
		var req UpdateProjectServiceRequest
		_ = json.Unmarshal([]byte(`{"notes":"x"}`), &req)
		cmd, _ := req.ToCommand()
		if cmd.ClearPriceOverride || cmd.PriceCentsOverride != nil {
			t.Fatalf("expected untouched override, got %+v", cmd)
		}
	})

	t.Run("non integer rejected", func(t *testing.T) {
		var req UpdateProjectServiceRequest
		_ = json.Unmarshal([]byte(`{"price_cents_override":"12.50"}`), &req)
		if _, err := req.ToCommand(); !errors.Is(err, ErrInvalidPriceOverride) {
			t.Fatalf("expected ErrInvalidPriceOverride, got %v", err)
		}
	})
}

func TestAddProjectServiceRequest_DefaultsQuantity(t *testing.T) {
	cmd := AddProjectServiceRequest{ServiceID: "svc-1"}.ToCommand("proj-1")
	if cmd.Quantity != 1 || cmd.ProjectID != "proj-1" || cmd.PriceCentsOverride != nil {
		t.Fatalf("unexpected command %+v", cmd)
	}
}

func TestCreateInvoiceRequest_ToCommand(t *testing.T) {
	pct := 20
	cmd := CreateInvoiceRequest{
		Items:          []LineItemRequest{{Label: "Design", Quantity: 2, UnitPriceCents: 5000}},
		DepositPercent: &pct,
	}.ToCommand("proj-1")

	if cmd.ProjectID != "proj-1" || len(cmd.Items) != 1 || *cmd.DepositPercent != 20 {
		t.Fatalf("unexpected command %+v", cmd)
	}
	if cmd.Items[0].UnitPriceCents != 5000 || cmd.Items[0].Quantity != 2 {
		t.Fatalf("unexpected item %+v", cmd.Items[0])
	}
}
