package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/errs"
	"project_billing/internal/domain/money"
)

func (f *fixture) sentInvoice(t *testing.T, projectID string, total money.Cents) entities.Invoice {
	t.Helper()
	ctx := context.Background()
	uc := f.invoices()
	inv, err := uc.Create(ctx, adminActor, CreateInvoiceCommand{
		ProjectID: projectID,
		Items:     []LineItemInput{{Label: "Website", Quantity: 1, UnitPriceCents: total}},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	inv, err = uc.Transition(ctx, adminActor, inv.ID, TransitionInvoiceCommand{Target: entities.InvoiceStatusSent})
	if err != nil {
		t.Fatalf("send invoice: %v", err)
	}
	return inv
}

func TestInvoiceUseCase_CreateFromQuote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.catalog("svc-dev", "Development", 4750, nil)
	p := f.project(t)
	f.sell(t, p.ID, "svc-dev", 2)
	uc := f.invoices()

	draft, err := f.quotes().Create(ctx, adminActor, CreateQuoteCommand{ProjectID: p.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.CreateFromQuote(ctx, adminActor, draft.ID); !errors.Is(err, ErrQuoteNotSigned) {
		t.Fatalf("expected ErrQuoteNotSigned, got %v", err)
	}

	q := f.signedQuote(t, p.ID)
	inv, err := uc.CreateFromQuote(ctx, adminActor, q.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Status != entities.InvoiceStatusDraft || inv.QuoteID == nil || *inv.QuoteID != q.ID {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
	if inv.TotalCents != 9500 || inv.DepositCents != 2850 || inv.BalanceCents != 6650 || inv.RemainingCents != 9500 {
		t.Fatalf("unexpected totals: %+v", inv)
	}
	if len(inv.Items) != 1 || inv.Items[0].Label != "Development" {
		t.Fatalf("expected quote items copied, got %+v", inv.Items)
	}
}

func TestInvoiceUseCase_CreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.project(t)
	uc := f.invoices()

	cases := []struct {
		name string
		cmd  CreateInvoiceCommand
	}{
		{name: "no items", cmd: CreateInvoiceCommand{ProjectID: p.ID}},
		{name: "blank label", cmd: CreateInvoiceCommand{ProjectID: p.ID, Items: []LineItemInput{{Label: " ", Quantity: 1, UnitPriceCents: 1}}}},
		{name: "zero quantity", cmd: CreateInvoiceCommand{ProjectID: p.ID, Items: []LineItemInput{{Label: "a", Quantity: 0, UnitPriceCents: 1}}}},
		{name: "bad percent", cmd: CreateInvoiceCommand{ProjectID: p.ID, Items: []LineItemInput{{Label: "a", Quantity: 1, UnitPriceCents: 1}}, DepositPercent: intPtr(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Create(ctx, adminActor, tc.cmd); !errors.Is(err, errs.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestInvoiceUseCase_SendNumbersAndDueDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.project(t)

	first := f.sentInvoice(t, p.ID, 1000)
	if first.Number == nil || *first.Number != "INV-2026-0001" {
		t.Fatalf("unexpected number %v", first.Number)
	}
	if !first.IssuedAt.Equal(f.now) || !first.DueAt.Equal(f.now.AddDate(0, 0, 15)) {
		t.Fatalf("unexpected issue/due: %v %v", first.IssuedAt, first.DueAt)
	}

	uc := f.invoices()
	draft, err := uc.Create(ctx, adminActor, CreateInvoiceCommand{ProjectID: p.ID, Items: []LineItemInput{{Label: "b", Quantity: 1, UnitPriceCents: 500}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	past := f.now.Add(-time.Hour)
	if _, err := uc.Transition(ctx, adminActor, draft.ID, TransitionInvoiceCommand{Target: entities.InvoiceStatusSent, DueAt: &past}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error for past due date, got %v", err)
	}
	due := f.now.AddDate(0, 2, 0)
	second, err := uc.Transition(ctx, adminActor, draft.ID, TransitionInvoiceCommand{Target: entities.InvoiceStatusSent, DueAt: &due})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *second.Number != "INV-2026-0002" || !second.DueAt.Equal(due) {
		t.Fatalf("unexpected second invoice: %+v", second)
	}

	if _, err := uc.Transition(ctx, adminActor, second.ID, TransitionInvoiceCommand{Target: entities.InvoiceStatusSent}); !errors.Is(err, errs.ErrInvalidTransition) {
		t.Fatalf("expected SENT -> SENT rejected, got %v", err)
	}
}

func TestInvoiceUseCase_PartialThenFullPayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.project(t)
	inv := f.sentInvoice(t, p.ID, 5000)
	uc := f.invoices()

	got, err := uc.ApplyPayment(ctx, adminActor, inv.ID, 3000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PaidCents != 3000 || got.RemainingCents != 2000 || got.Status != entities.InvoiceStatusSent || got.PaidAt != nil {
		t.Fatalf("unexpected partial payment state: %+v", got)
	}

	f.advance(time.Hour)
	got, err = uc.ApplyPayment(ctx, adminActor, inv.ID, 2000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PaidCents != 5000 || got.RemainingCents != 0 || got.Status != entities.InvoiceStatusPaid {
		t.Fatalf("expected settled invoice, got %+v", got)
	}
	if got.PaidAt == nil || !got.PaidAt.Equal(f.now) {
		t.Fatalf("expected paidAt now, got %v", got.PaidAt)
	}

	if _, err := uc.ApplyPayment(ctx, adminActor, inv.ID, 1); !errors.Is(err, ErrInvoiceNotAwaitingPay) {
		t.Fatalf("expected ErrInvoiceNotAwaitingPay on paid invoice, got %v", err)
	}
}

func TestInvoiceUseCase_OverpaymentIsClamped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.project(t)
	inv := f.sentInvoice(t, p.ID, 10000)
	uc := f.invoices()

	if _, err := uc.ApplyPayment(ctx, adminActor, inv.ID, 4000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := uc.ApplyPayment(ctx, adminActor, inv.ID, 7000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PaidCents != 10000 || got.RemainingCents != 0 || got.Status != entities.InvoiceStatusPaid {
		t.Fatalf("expected paid clamped at total, got %+v", got)
	}
}

func TestInvoiceUseCase_ApplyPaymentRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.project(t)
	uc := f.invoices()

	draft, err := uc.Create(ctx, adminActor, CreateInvoiceCommand{ProjectID: p.ID, Items: []LineItemInput{{Label: "a", Quantity: 1, UnitPriceCents: 100}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.ApplyPayment(ctx, adminActor, draft.ID, 50); !errors.Is(err, ErrInvoiceNotAwaitingPay) {
		t.Fatalf("expected ErrInvoiceNotAwaitingPay on draft, got %v", err)
	}
	if _, err := uc.ApplyPayment(ctx, adminActor, draft.ID, 0); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}
	if _, err := uc.ApplyPayment(ctx, memberActor, draft.ID, 50); !errors.Is(err, errs.ErrAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
	if _, err := uc.ApplyPayment(ctx, adminActor, "missing", 50); !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestInvoiceUseCase_MarkPaidAndCancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.project(t)
	uc := f.invoices()

	inv := f.sentInvoice(t, p.ID, 2500)
	paid, err := uc.Transition(ctx, adminActor, inv.ID, TransitionInvoiceCommand{Target: entities.InvoiceStatusPaid})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paid.Status != entities.InvoiceStatusPaid || paid.PaidCents != 2500 || paid.RemainingCents != 0 || paid.PaidAt == nil {
		t.Fatalf("unexpected paid invoice: %+v", paid)
	}
	if _, err := uc.MarkPaid(ctx, adminActor, inv.ID); !errors.Is(err, errs.ErrInvalidTransition) {
		t.Fatalf("expected PAID -> PAID rejected, got %v", err)
	}
	if _, err := uc.Transition(ctx, adminActor, inv.ID, TransitionInvoiceCommand{Target: entities.InvoiceStatusCancelled}); !errors.Is(err, errs.ErrInvalidTransition) {
		t.Fatalf("expected PAID -> CANCELLED rejected, got %v", err)
	}

	other := f.sentInvoice(t, p.ID, 800)
	if _, err := uc.ApplyPayment(ctx, adminActor, other.ID, 300); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancelled, err := uc.Transition(ctx, adminActor, other.ID, TransitionInvoiceCommand{Target: entities.InvoiceStatusCancelled})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled.Status != entities.InvoiceStatusCancelled || cancelled.PaidCents != 300 {
		t.Fatalf("cancelled invoice keeps its paid amount, got %+v", cancelled)
	}
}

func TestInvoiceUseCase_ArchivedProjectBlocksPayments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.project(t)
	inv := f.sentInvoice(t, p.ID, 1000)
	if _, err := f.projects().Archive(ctx, adminActor, p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.invoices().ApplyPayment(ctx, adminActor, inv.ID, 100); !errors.Is(err, ErrProjectArchived) {
		t.Fatalf("expected ErrProjectArchived, got %v", err)
	}
	list, err := f.invoices().ListByProject(ctx, viewerActor, p.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("archived projects stay readable, got %d err=%v", len(list), err)
	}
}
