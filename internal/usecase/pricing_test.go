package usecase

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/errs"
	"project_billing/internal/domain/money"
)

func cents(c money.Cents) *money.Cents { return &c }

func TestPriceServices(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	services := []entities.ProjectService{
		{ID: "ps-2", ServiceID: "svc-dev", Quantity: 2, Position: 2, CreatedAt: t0},
		{ID: "ps-1", ServiceID: "svc-ux", Quantity: 1, Position: 1, CreatedAt: t0, PriceCentsOverride: cents(1500)},
		{ID: "ps-3", ServiceID: "svc-unknown", Quantity: 3, Position: 3, CreatedAt: t0},
	}
	catalog := map[string]entities.CatalogService{
		"svc-dev": {ID: "svc-dev", Name: "Development", DefaultPriceCents: cents(4000)},
		"svc-ux":  {ID: "svc-ux", Name: "UX audit", DefaultPriceCents: cents(9999)},
	}

	snap, err := PriceServices(services, catalog, "EUR", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Items) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(snap.Items))
	}
	if snap.Items[0].Label != "UX audit" || snap.Items[0].UnitPriceCents != 1500 {
		t.Fatalf("expected override to win on first line, got %+v", snap.Items[0])
	}
	if snap.Items[1].TotalCents != 8000 {
		t.Fatalf("expected 2 x 4000, got %d", snap.Items[1].TotalCents)
	}
	if snap.Items[2].Label != "svc-unknown" || snap.Items[2].TotalCents != 0 {
		t.Fatalf("expected zero-priced line for unknown service, got %+v", snap.Items[2])
	}
	if snap.TotalCents != 9500 || snap.DepositCents != 2850 || snap.BalanceCents != 6650 {
		t.Fatalf("unexpected totals: %+v", snap)
	}

	again, err := PriceServices(services, catalog, "EUR", 30)
	if err != nil || !reflect.DeepEqual(snap, again) {
		t.Fatalf("expected identical snapshot on recomputation")
	}
}

func TestPriceServices_RoundHalfUp(t *testing.T) {
	services := []entities.ProjectService{{ID: "ps-1", ServiceID: "s", Quantity: 1, PriceCentsOverride: cents(5)}}
	snap, err := PriceServices(services, nil, "EUR", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 5 * 30 / 100 = 1.5 rounds up to 2.
	if snap.DepositCents != 2 || snap.BalanceCents != 3 {
		t.Fatalf("expected 2/3 split, got %d/%d", snap.DepositCents, snap.BalanceCents)
	}
}

func TestPriceServices_InvalidPercent(t *testing.T) {
	_, err := PriceServices(nil, nil, "EUR", 101)
	if !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPriceLines(t *testing.T) {
	snap, err := PriceLines([]LineItemInput{
		{Label: "Hosting", Quantity: 12, UnitPriceCents: 1000},
		{Label: "Setup", Quantity: 1, UnitPriceCents: 5000},
	}, "EUR", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.TotalCents != 17000 || snap.DepositCents != 0 || snap.BalanceCents != 17000 {
		t.Fatalf("unexpected totals: %+v", snap)
	}
}
