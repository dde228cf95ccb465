package usecase

import (
	"errors"
	"testing"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/errs"
)

func TestApplyDepositStatus(t *testing.T) {
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	explicit := time.Date(2026, 3, 30, 12, 0, 0, 0, time.UTC)

	t.Run("paid without explicit value uses now", func(t *testing.T) {
		p := entities.Project{DepositStatus: entities.DepositPending}
		if err := applyDepositStatus(&p, entities.DepositPaid, nil, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.DepositPaidAt == nil || !p.DepositPaidAt.Equal(now) {
			t.Fatalf("expected depositPaidAt=now, got %v", p.DepositPaidAt)
		}
	})

	t.Run("paid with explicit value keeps it", func(t *testing.T) {
		p := entities.Project{}
		if err := applyDepositStatus(&p, entities.DepositPaid, &explicit, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.DepositPaidAt.Equal(explicit) {
			t.Fatalf("expected explicit paidAt, got %v", p.DepositPaidAt)
		}
	})

	t.Run("zero explicit value rejected", func(t *testing.T) {
		p := entities.Project{}
		zero := time.Time{}
		err := applyDepositStatus(&p, entities.DepositPaid, &zero, now)
		if !errors.Is(err, errs.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("leaving PAID clears the timestamp", func(t *testing.T) {
		p := entities.Project{DepositStatus: entities.DepositPaid, DepositPaidAt: &now}
		if err := applyDepositStatus(&p, entities.DepositPending, nil, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.DepositPaidAt != nil || p.DepositStatus != entities.DepositPending {
			t.Fatalf("expected cleared depositPaidAt, got %+v", p)
		}
	})

	t.Run("explicit value with non-paid status rejected", func(t *testing.T) {
		p := entities.Project{}
		err := applyDepositStatus(&p, entities.DepositNotRequired, &explicit, now)
		if !errors.Is(err, errs.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestApplyInvoicePayment(t *testing.T) {
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	inv := entities.Invoice{Status: entities.InvoiceStatusSent, TotalCents: 5000, RemainingCents: 5000}

	applied, err := applyInvoicePayment(&inv, 3000, now)
	if err != nil || applied != 3000 {
		t.Fatalf("expected 3000 applied, got %d err=%v", applied, err)
	}
	if inv.RemainingCents != 2000 || inv.Status != entities.InvoiceStatusSent || inv.PaidAt != nil {
		t.Fatalf("unexpected partial state: %+v", inv)
	}

	applied, err = applyInvoicePayment(&inv, 2500, now)
	if err != nil || applied != 2000 {
		t.Fatalf("expected clamped 2000 applied, got %d err=%v", applied, err)
	}
	if inv.PaidCents != 5000 || inv.RemainingCents != 0 || inv.Status != entities.InvoiceStatusPaid || inv.PaidAt == nil {
		t.Fatalf("unexpected settled state: %+v", inv)
	}

	if _, err := applyInvoicePayment(&inv, 0, now); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}
}

func TestBindBillingQuote(t *testing.T) {
	p := entities.Project{ID: "p-1", BusinessID: "b-1", QuoteStatus: entities.ProjectQuoteSent}

	if err := bindBillingQuote(&p, entities.Quote{ID: "q-1", BusinessID: "b-1", ProjectID: "p-2", Status: entities.QuoteStatusSigned}); !errors.Is(err, ErrQuoteProjectMismatch) {
		t.Fatalf("expected project mismatch, got %v", err)
	}
	if err := bindBillingQuote(&p, entities.Quote{ID: "q-1", BusinessID: "b-1", ProjectID: "p-1", Status: entities.QuoteStatusSent}); !errors.Is(err, ErrQuoteNotSigned) {
		t.Fatalf("expected not signed, got %v", err)
	}
	if err := bindBillingQuote(&p, entities.Quote{ID: "q-1", BusinessID: "b-1", ProjectID: "p-1", Status: entities.QuoteStatusSigned}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BillingQuoteID == nil || *p.BillingQuoteID != "q-1" || p.QuoteStatus != entities.ProjectQuoteSigned {
		t.Fatalf("expected bound quote and SIGNED status, got %+v", p)
	}
}

func TestMarkQuoteSent_DefaultsExpiry(t *testing.T) {
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	q := entities.Quote{Status: entities.QuoteStatusDraft}
	markQuoteSent(&q, documentNumber("Q", 2026, 7), now, 15)

	if *q.Number != "Q-2026-0007" {
		t.Fatalf("unexpected number %q", *q.Number)
	}
	if !q.ExpiresAt.Equal(now.AddDate(0, 0, 15)) {
		t.Fatalf("expected expiry 15 days after issue, got %v", q.ExpiresAt)
	}
}
