package usecase

import (
	"fmt"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/errs"
	"project_billing/internal/domain/money"
)

// The functions below are the only places derived fields are written. Each command
// applies exactly one of them to its loaded entity before persisting it.
//
//	command                   entity    fields touched
//	setDepositStatus          Project   DepositStatus, DepositPaidAt
//	bindBillingQuote          Project   BillingQuoteID, QuoteStatus
//	startProject              Project   StartedAt, Status (PLANNED -> ACTIVE)
//	archive / unarchive       Project   ArchivedAt
//	quote DRAFT -> SENT       Quote     Status, Number, IssuedAt, ExpiresAt
//	                          Project   QuoteStatus (DRAFT -> SENT)
//	quote SENT -> SIGNED      Quote     Status, SignedAt
//	                          Project   via bindBillingQuote when unbound
//	invoice DRAFT -> SENT     Invoice   Status, Number, IssuedAt, DueAt
//	applyPayment / markPaid   Invoice   PaidCents, RemainingCents, Status, PaidAt

// applyDepositStatus keeps DepositPaidAt mirroring DepositStatus. paidAt is the value
// supplied with the command, or nil.
func applyDepositStatus(p *entities.Project, status entities.DepositStatus, paidAt *time.Time, now time.Time) error {
	if !status.Valid() {
		return errs.Validation("deposit_status", fmt.Sprintf("unknown deposit status %q", status))
	}
	if status != entities.DepositPaid {
		if paidAt != nil {
			return errs.Validation("deposit_paid_at", "may only be supplied with status PAID")
		}
		p.DepositStatus = status
		p.DepositPaidAt = nil
		return nil
	}
	at := now
	if paidAt != nil {
		if paidAt.IsZero() {
			return errs.Validation("deposit_paid_at", "must be a valid timestamp")
		}
		at = paidAt.UTC()
	}
	p.DepositStatus = entities.DepositPaid
	p.DepositPaidAt = &at
	return nil
}

// bindBillingQuote makes q the project's billing quote. q must be a SIGNED quote of p.
func bindBillingQuote(p *entities.Project, q entities.Quote) error {
	if q.ProjectID != p.ID || q.BusinessID != p.BusinessID {
		return ErrQuoteProjectMismatch
	}
	if q.Status != entities.QuoteStatusSigned {
		return ErrQuoteNotSigned
	}
	id := q.ID
	p.BillingQuoteID = &id
	p.QuoteStatus = entities.ProjectQuoteSigned
	return nil
}

func markStarted(p *entities.Project, now time.Time) {
	at := now
	p.StartedAt = &at
	if p.Status == entities.ProjectStatusPlanned {
		p.Status = entities.ProjectStatusActive
	}
}

func markArchived(p *entities.Project, now time.Time) {
	at := now
	p.ArchivedAt = &at
}

func markUnarchived(p *entities.Project) {
	p.ArchivedAt = nil
}

func markQuoteSent(q *entities.Quote, number string, now time.Time, validityDays int) {
	q.Status = entities.QuoteStatusSent
	if q.Number == nil {
		q.Number = &number
	}
	if q.IssuedAt == nil {
		at := now
		q.IssuedAt = &at
	}
	if q.ExpiresAt == nil {
		exp := q.IssuedAt.AddDate(0, 0, validityDays)
		q.ExpiresAt = &exp
	}
}

// promoteProjectQuoteStatus moves a DRAFT project quote status to SENT; later stages are kept.
func promoteProjectQuoteStatus(p *entities.Project) bool {
	if p.QuoteStatus != entities.ProjectQuoteDraft {
		return false
	}
	p.QuoteStatus = entities.ProjectQuoteSent
	return true
}

func markQuoteSigned(q *entities.Quote, now time.Time) {
	at := now
	q.Status = entities.QuoteStatusSigned
	q.SignedAt = &at
}

func markInvoiceSent(inv *entities.Invoice, number string, now time.Time, dueAt time.Time) {
	inv.Status = entities.InvoiceStatusSent
	if inv.Number == nil {
		inv.Number = &number
	}
	issued := now
	inv.IssuedAt = &issued
	due := dueAt
	inv.DueAt = &due
}

// applyInvoicePayment adds amount to PaidCents, clamped at TotalCents, and settles the
// invoice when nothing remains. It returns the amount actually applied.
func applyInvoicePayment(inv *entities.Invoice, amount money.Cents, now time.Time) (money.Cents, error) {
	if amount <= 0 {
		return 0, errs.Validation("amount_cents", "must be positive")
	}
	paid, err := money.Sum(inv.PaidCents, amount)
	if err != nil {
		return 0, err
	}
	if paid > inv.TotalCents {
		paid = inv.TotalCents
	}
	applied := paid - inv.PaidCents
	inv.PaidCents = paid
	inv.Recompute()
	if inv.RemainingCents == 0 {
		markInvoicePaid(inv, now)
	}
	return applied, nil
}

func markInvoicePaid(inv *entities.Invoice, now time.Time) {
	at := now
	inv.PaidCents = inv.TotalCents
	inv.Recompute()
	inv.Status = entities.InvoiceStatusPaid
	inv.PaidAt = &at
}

func markInvoiceCancelled(inv *entities.Invoice) {
	inv.Status = entities.InvoiceStatusCancelled
}

func documentNumber(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}
