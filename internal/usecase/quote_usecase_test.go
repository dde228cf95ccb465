package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/errs"
)

func TestQuoteUseCase_CreateFreezesPricing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.catalog("svc-dev", "Development", 5000, nil)
	p := f.project(t)
	ps := f.sell(t, p.ID, "svc-dev", 2)

	q, err := f.quotes().Create(ctx, adminActor, CreateQuoteCommand{ProjectID: p.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Status != entities.QuoteStatusDraft || q.Number != nil {
		t.Fatalf("expected unnumbered DRAFT quote, got %+v", q)
	}
	if q.TotalCents != 10000 || q.DepositCents != 3000 || q.BalanceCents != 7000 || !q.Balanced() {
		t.Fatalf("unexpected totals: %+v", q)
	}

	qty := 5
	if _, err := f.services().Update(ctx, adminActor, ps.ID, UpdateProjectServiceCommand{Quantity: &qty}); err != nil {
		t.Fatalf("update service: %v", err)
	}
	got, err := f.quotes().GetByID(ctx, viewerActor, q.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalCents != 10000 || got.Items[0].Quantity != 2 {
		t.Fatalf("quote must not re-read live services, got %+v", got)
	}
}

func TestQuoteUseCase_CreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.project(t)

	cases := []struct {
		name  string
		actor entities.Actor
		cmd   CreateQuoteCommand
		kind  error
	}{
		{name: "member denied", actor: memberActor, cmd: CreateQuoteCommand{ProjectID: p.ID}, kind: errs.ErrAuthorization},
		{name: "blank project", actor: adminActor, cmd: CreateQuoteCommand{ProjectID: "  "}, kind: errs.ErrValidation},
		{name: "bad percent", actor: adminActor, cmd: CreateQuoteCommand{ProjectID: p.ID, DepositPercent: intPtr(120)}, kind: errs.ErrValidation},
		{name: "past expiry", actor: adminActor, cmd: CreateQuoteCommand{ProjectID: p.ID, ExpiresAt: timePtr(f.now.Add(-time.Hour))}, kind: errs.ErrValidation},
		{name: "unknown project", actor: adminActor, cmd: CreateQuoteCommand{ProjectID: "nope"}, kind: errs.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.quotes().Create(ctx, tc.actor, tc.cmd)
			if !errors.Is(err, tc.kind) {
				t.Fatalf("expected %v, got %v", tc.kind, err)
			}
		})
	}
}

func TestQuoteUseCase_SendAssignsNumberAndExpiry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.project(t)
	uc := f.quotes()

	q, err := uc.Create(ctx, adminActor, CreateQuoteCommand{ProjectID: p.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sent, err := uc.Transition(ctx, adminActor, q.ID, entities.QuoteStatusSent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent.Number == nil || *sent.Number != "Q-2026-0001" {
		t.Fatalf("unexpected number %v", sent.Number)
	}
	if !sent.IssuedAt.Equal(f.now) || !sent.ExpiresAt.Equal(f.now.AddDate(0, 0, 20)) {
		t.Fatalf("unexpected issue/expiry: %v %v", sent.IssuedAt, sent.ExpiresAt)
	}
	if got := f.reloadProject(t, p.ID); got.QuoteStatus != entities.ProjectQuoteSent {
		t.Fatalf("expected project quote status SENT, got %s", got.QuoteStatus)
	}
}

func TestQuoteUseCase_SignBindsBillingQuote(t *testing.T) {
	f := newFixture(t)
	p := f.project(t)

	q := f.signedQuote(t, p.ID)
	if q.Status != entities.QuoteStatusSigned || q.SignedAt == nil {
		t.Fatalf("expected signed quote, got %+v", q)
	}
	got := f.reloadProject(t, p.ID)
	if got.BillingQuoteID == nil || *got.BillingQuoteID != q.ID || got.QuoteStatus != entities.ProjectQuoteSigned {
		t.Fatalf("expected project bound to %s, got %+v", q.ID, got)
	}

	second := f.signedQuote(t, p.ID)
	got = f.reloadProject(t, p.ID)
	if *got.BillingQuoteID != q.ID {
		t.Fatalf("a later signature must not rebind the billing quote, got %s (second %s)", *got.BillingQuoteID, second.ID)
	}
}

func TestQuoteUseCase_TerminalStatesAreFinal(t *testing.T) {
	sentQuote := func(t *testing.T, f *fixture, projectID string) entities.Quote {
		t.Helper()
		q, err := f.quotes().Create(context.Background(), adminActor, CreateQuoteCommand{ProjectID: projectID})
		if err != nil {
			t.Fatalf("create quote: %v", err)
		}
		q, err = f.quotes().Transition(context.Background(), adminActor, q.ID, entities.QuoteStatusSent)
		if err != nil {
			t.Fatalf("send quote: %v", err)
		}
		return q
	}
	terminal := func(status entities.QuoteStatus) func(t *testing.T, f *fixture, projectID string) entities.Quote {
		return func(t *testing.T, f *fixture, projectID string) entities.Quote {
			t.Helper()
			q, err := f.quotes().Transition(context.Background(), adminActor, sentQuote(t, f, projectID).ID, status)
			if err != nil {
				t.Fatalf("move quote to %s: %v", status, err)
			}
			return q
		}
	}

	cases := []struct {
		status entities.QuoteStatus
		setup  func(t *testing.T, f *fixture, projectID string) entities.Quote
	}{
		{status: entities.QuoteStatusSigned, setup: func(t *testing.T, f *fixture, projectID string) entities.Quote { return f.signedQuote(t, projectID) }},
		{status: entities.QuoteStatusCancelled, setup: terminal(entities.QuoteStatusCancelled)},
		{status: entities.QuoteStatusExpired, setup: terminal(entities.QuoteStatusExpired)},
	}
	targets := []entities.QuoteStatus{
		entities.QuoteStatusDraft,
		entities.QuoteStatusSent,
		entities.QuoteStatusSigned,
		entities.QuoteStatusCancelled,
		entities.QuoteStatusExpired,
	}

	for _, tc := range cases {
		t.Run(tc.status.String(), func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			p := f.project(t)
			q := tc.setup(t, f, p.ID)
			if q.Status != tc.status {
				t.Fatalf("expected quote in %s, got %s", tc.status, q.Status)
			}

			for _, target := range targets {
				_, err := f.quotes().Transition(ctx, adminActor, q.ID, target)
				var te *errs.InvalidTransitionError
				if !errors.As(err, &te) || te.From != tc.status.String() || te.To != target.String() {
					t.Fatalf("expected invalid transition %s -> %s, got %v", tc.status, target, err)
				}
				got, _ := f.store.Quotes().GetByID(ctx, testBusiness, q.ID)
				if got.Status != tc.status || got.Version != q.Version {
					t.Fatalf("%s -> %s must leave the quote unchanged, got %s v%d (want v%d)", tc.status, target, got.Status, got.Version, q.Version)
				}
			}
		})
	}
}

func TestQuoteUseCase_MemberCannotTransition(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.project(t)
	q, err := f.quotes().Create(ctx, adminActor, CreateQuoteCommand{ProjectID: p.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = f.quotes().Transition(ctx, memberActor, q.ID, entities.QuoteStatusSent)
	if !errors.Is(err, errs.ErrAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
	got, _ := f.store.Quotes().GetByID(ctx, testBusiness, q.ID)
	if got.Status != entities.QuoteStatusDraft {
		t.Fatalf("expected quote unchanged, got %s", got.Status)
	}
}

func TestQuoteUseCase_LazyExpiry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.project(t)
	uc := f.quotes()

	q, _ := uc.Create(ctx, adminActor, CreateQuoteCommand{ProjectID: p.ID})
	if _, err := uc.Transition(ctx, adminActor, q.ID, entities.QuoteStatusSent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.advance(21 * 24 * time.Hour)

	read, err := uc.GetByID(ctx, viewerActor, q.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if read.Status != entities.QuoteStatusExpired {
		t.Fatalf("expected effective EXPIRED, got %s", read.Status)
	}
	stored, _ := f.store.Quotes().GetByID(ctx, testBusiness, q.ID)
	if stored.Status != entities.QuoteStatusSent {
		t.Fatalf("reads must not write, stored %s", stored.Status)
	}

	if _, err := uc.Transition(ctx, adminActor, q.ID, entities.QuoteStatusSigned); !errors.Is(err, ErrQuoteExpired) {
		t.Fatalf("expected ErrQuoteExpired, got %v", err)
	}

	n, err := uc.ExpireOverdue(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 expired, got %d err=%v", n, err)
	}
	stored, _ = f.store.Quotes().GetByID(ctx, testBusiness, q.ID)
	if stored.Status != entities.QuoteStatusExpired {
		t.Fatalf("expected persisted EXPIRED, got %s", stored.Status)
	}
	if n, _ := uc.ExpireOverdue(ctx); n != 0 {
		t.Fatalf("expected idempotent reconciliation, got %d", n)
	}
}

func TestQuoteUseCase_ExpireOverdueSkipsArchivedProjects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.project(t)
	uc := f.quotes()
	q, _ := uc.Create(ctx, adminActor, CreateQuoteCommand{ProjectID: p.ID})
	if _, err := uc.Transition(ctx, adminActor, q.ID, entities.QuoteStatusSent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.projects().Archive(ctx, adminActor, p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.advance(30 * 24 * time.Hour)

	n, err := uc.ExpireOverdue(ctx)
	if err != nil || n != 0 {
		t.Fatalf("expected archived project quotes skipped, got %d err=%v", n, err)
	}
}

func TestQuoteUseCase_ArchivedProjectRejectsCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.project(t)
	if _, err := f.projects().Archive(ctx, adminActor, p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.quotes().Create(ctx, adminActor, CreateQuoteCommand{ProjectID: p.ID}); !errors.Is(err, ErrProjectArchived) {
		t.Fatalf("expected ErrProjectArchived, got %v", err)
	}
}

func TestQuoteUseCase_OtherBusinessCannotSee(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.project(t)
	q, _ := f.quotes().Create(ctx, adminActor, CreateQuoteCommand{ProjectID: p.ID})

	outsider := entities.Actor{ID: "u-x", BusinessID: "b-2", Role: entities.RoleOwner}
	if _, err := f.quotes().GetByID(ctx, outsider, q.ID); !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
}

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func strPtr(v string) *string { return &v }
