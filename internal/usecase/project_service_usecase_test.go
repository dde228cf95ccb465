package usecase

import (
	"context"
	"errors"
	"testing"

	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/errs"
	"project_billing/internal/domain/money"
)

func TestProjectServiceUseCase_AddAppendsPositions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.catalog("svc-dev", "Development", 5000, nil)
	p := f.project(t)

	first := f.sell(t, p.ID, "svc-dev", 1)
	second := f.sell(t, p.ID, "svc-dev", 3)
	if first.Position != 0 || second.Position != 1 {
		t.Fatalf("expected positions 0 and 1, got %d and %d", first.Position, second.Position)
	}

	pinned, err := f.services().Add(ctx, adminActor, AddProjectServiceCommand{ProjectID: p.ID, ServiceID: "svc-dev", Quantity: 1, Position: intPtr(10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	next := f.sell(t, p.ID, "svc-dev", 1)
	if pinned.Position != 10 || next.Position != 11 {
		t.Fatalf("expected append after highest position, got %d and %d", pinned.Position, next.Position)
	}

	list, err := f.services().List(ctx, viewerActor, p.ID)
	if err != nil || len(list) != 4 {
		t.Fatalf("expected 4 services, got %d err=%v", len(list), err)
	}
}

func TestProjectServiceUseCase_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.project(t)
	uc := f.services()

	negative := money.Cents(-1)
	cases := []struct {
		name string
		cmd  AddProjectServiceCommand
	}{
		{name: "zero quantity", cmd: AddProjectServiceCommand{ProjectID: p.ID, ServiceID: "s", Quantity: 0}},
		{name: "negative override", cmd: AddProjectServiceCommand{ProjectID: p.ID, ServiceID: "s", Quantity: 1, PriceCentsOverride: &negative}},
		{name: "negative position", cmd: AddProjectServiceCommand{ProjectID: p.ID, ServiceID: "s", Quantity: 1, Position: intPtr(-1)}},
		{name: "blank service", cmd: AddProjectServiceCommand{ProjectID: p.ID, ServiceID: " ", Quantity: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Add(ctx, adminActor, tc.cmd); !errors.Is(err, errs.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	editor := memberActor
	if _, err := uc.Add(ctx, editor, AddProjectServiceCommand{ProjectID: p.ID, ServiceID: "s", Quantity: 1}); !errors.Is(err, errs.ErrAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
	editor.Permissions = []entities.Permission{entities.PermissionServicesEdit}
	if _, err := uc.Add(ctx, editor, AddProjectServiceCommand{ProjectID: p.ID, ServiceID: "s", Quantity: 1}); err != nil {
		t.Fatalf("SERVICES_EDIT should grant service edits, got %v", err)
	}
}

func TestProjectServiceUseCase_UpdateOverrideAndPricing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.catalog("svc-dev", "Development", 5000, nil)
	p := f.project(t)
	ps := f.sell(t, p.ID, "svc-dev", 2)
	uc := f.services()

	override := money.Cents(4000)
	if _, err := uc.Update(ctx, adminActor, ps.ID, UpdateProjectServiceCommand{PriceCentsOverride: &override, ClearPriceOverride: true}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error for set-and-clear, got %v", err)
	}

	updated, err := uc.Update(ctx, adminActor, ps.ID, UpdateProjectServiceCommand{PriceCentsOverride: &override, Notes: strPtr("  discounted ")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Notes != "discounted" || updated.Version != 2 {
		t.Fatalf("unexpected service: %+v", updated)
	}
	snap, err := uc.Pricing(ctx, viewerActor, p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.TotalCents != 8000 || snap.DepositCents != 2400 || snap.Currency != "EUR" {
		t.Fatalf("expected override pricing, got %+v", snap)
	}

	if _, err := uc.Update(ctx, adminActor, ps.ID, UpdateProjectServiceCommand{ClearPriceOverride: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap, _ = uc.Pricing(ctx, viewerActor, p.ID)
	if snap.TotalCents != 10000 {
		t.Fatalf("expected catalog price after clearing override, got %d", snap.TotalCents)
	}
}

func TestProjectServiceUseCase_Remove(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.project(t)
	ps := f.sell(t, p.ID, "svc-unknown", 1)
	uc := f.services()

	snap, err := uc.Pricing(ctx, viewerActor, p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Items) != 1 || snap.Items[0].Label != "svc-unknown" || snap.TotalCents != 0 {
		t.Fatalf("expected zero-priced line labelled by service id, got %+v", snap)
	}

	if err := uc.Remove(ctx, adminActor, ps.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.Remove(ctx, adminActor, ps.ID); !errors.Is(err, ErrProjectServiceNotFound) {
		t.Fatalf("expected ErrProjectServiceNotFound, got %v", err)
	}
}
