package usecase

import (
	"context"
	"strings"
	"time"

	"project_billing/internal/domain/authz"
	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/errs"
	"project_billing/internal/domain/money"
	"project_billing/internal/infrastructure/logger"
	"project_billing/internal/infrastructure/metrics"
	"project_billing/internal/usecase/interfaces"
)

const invoiceSequence = "invoice"

// CreateInvoiceCommand creates a standalone invoice, not backed by a quote.
type CreateInvoiceCommand struct {
	ProjectID      string
	Items          []LineItemInput
	DepositPercent *int
}

// TransitionInvoiceCommand moves an invoice to Target. DueAt overrides the payment terms
// when sending.
type TransitionInvoiceCommand struct {
	Target entities.InvoiceStatus
	DueAt  *time.Time
}

// IInvoiceUseCase is the invoice lifecycle.
type IInvoiceUseCase interface {
	CreateFromQuote(ctx context.Context, actor entities.Actor, quoteID string) (entities.Invoice, error)
	Create(ctx context.Context, actor entities.Actor, cmd CreateInvoiceCommand) (entities.Invoice, error)
	Transition(ctx context.Context, actor entities.Actor, invoiceID string, cmd TransitionInvoiceCommand) (entities.Invoice, error)
	ApplyPayment(ctx context.Context, actor entities.Actor, invoiceID string, amount money.Cents) (entities.Invoice, error)
	MarkPaid(ctx context.Context, actor entities.Actor, invoiceID string) (entities.Invoice, error)
	GetByID(ctx context.Context, actor entities.Actor, id string) (entities.Invoice, error)
	ListByProject(ctx context.Context, actor entities.Actor, projectID string) ([]entities.Invoice, error)
}

type InvoiceUseCase struct {
	base
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(store interfaces.IStore, log *logger.Logger, opts ...Option) *InvoiceUseCase {
	return &InvoiceUseCase{base: newBase(store, log, opts)}
}

func (u *InvoiceUseCase) CreateFromQuote(ctx context.Context, actor entities.Actor, quoteID string) (inv entities.Invoice, err error) {
	defer func() { metrics.RecordError("invoice.create_from_quote", err) }()

	if err := authz.Authorize(actor, authz.OpInvoiceCreate); err != nil {
		return entities.Invoice{}, err
	}
	if err := checkActor(actor); err != nil {
		return entities.Invoice{}, err
	}
	quoteID, err = cleanID("quote_id", quoteID)
	if err != nil {
		return entities.Invoice{}, err
	}
	log := u.log.With("business_id", actor.BusinessID, "quote_id", quoteID, "actor_id", actor.ID)
	now := u.clock()

	err = u.store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
		q, err := loadQuote(ctx, tx, actor.BusinessID, quoteID)
		if err != nil {
			return err
		}
		if q.Status != entities.QuoteStatusSigned {
			return ErrQuoteNotSigned
		}
		project, err := loadActiveProject(ctx, tx, actor.BusinessID, q.ProjectID)
		if err != nil {
			return err
		}

		clientID := q.ClientID
		if clientID == nil {
			clientID = project.ClientID
		}
		id := q.ID
		inv = entities.Invoice{
			ID:             u.newID(),
			BusinessID:     actor.BusinessID,
			ProjectID:      project.ID,
			ClientID:       clientID,
			QuoteID:        &id,
			Status:         entities.InvoiceStatusDraft,
			DepositPercent: q.DepositPercent,
			Currency:       q.Currency,
			TotalCents:     q.TotalCents,
			DepositCents:   q.DepositCents,
			BalanceCents:   q.BalanceCents,
			Items:          append([]entities.LineItem(nil), q.Items...),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		inv.Recompute()
		inv, err = tx.Invoices().Create(ctx, inv)
		return err
	})
	if err != nil {
		log.Warn("invoice create from quote failed", "error", err)
		return entities.Invoice{}, err
	}
	log.Info("invoice created from quote", "invoice_id", inv.ID, "total_cents", inv.TotalCents)
	return inv, nil
}

func (u *InvoiceUseCase) Create(ctx context.Context, actor entities.Actor, cmd CreateInvoiceCommand) (inv entities.Invoice, err error) {
	defer func() { metrics.RecordError("invoice.create", err) }()

	if err := authz.Authorize(actor, authz.OpInvoiceCreate); err != nil {
		return entities.Invoice{}, err
	}
	if err := checkActor(actor); err != nil {
		return entities.Invoice{}, err
	}
	projectID, err := cleanID("project_id", cmd.ProjectID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(cmd.Items) == 0 {
		return entities.Invoice{}, errs.Validation("items", "at least one line is required")
	}
	for _, l := range cmd.Items {
		if strings.TrimSpace(l.Label) == "" {
			return entities.Invoice{}, errs.Validation("items.label", "is required")
		}
		if l.Quantity <= 0 {
			return entities.Invoice{}, errs.Validation("items.quantity", "must be positive")
		}
	}
	if cmd.DepositPercent != nil {
		if err := money.ValidatePercent(*cmd.DepositPercent); err != nil {
			return entities.Invoice{}, err
		}
	}
	log := u.log.With("business_id", actor.BusinessID, "project_id", projectID, "actor_id", actor.ID)
	now := u.clock()

	err = u.store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
		project, err := loadActiveProject(ctx, tx, actor.BusinessID, projectID)
		if err != nil {
			return err
		}
		settings, err := loadSettings(ctx, tx, actor.BusinessID)
		if err != nil {
			return err
		}
		percent := settings.DefaultDepositPercent
		if cmd.DepositPercent != nil {
			percent = *cmd.DepositPercent
		}
		snap, err := PriceLines(cmd.Items, settings.Currency, percent)
		if err != nil {
			return err
		}

		inv = entities.Invoice{
			ID:             u.newID(),
			BusinessID:     actor.BusinessID,
			ProjectID:      project.ID,
			ClientID:       project.ClientID,
			Status:         entities.InvoiceStatusDraft,
			DepositPercent: snap.DepositPercent,
			Currency:       snap.Currency,
			TotalCents:     snap.TotalCents,
			DepositCents:   snap.DepositCents,
			BalanceCents:   snap.BalanceCents,
			Items:          snap.Items,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		inv.Recompute()
		inv, err = tx.Invoices().Create(ctx, inv)
		return err
	})
	if err != nil {
		log.Warn("invoice create failed", "error", err)
		return entities.Invoice{}, err
	}
	log.Info("invoice created", "invoice_id", inv.ID, "total_cents", inv.TotalCents)
	return inv, nil
}

// Transition handles DRAFT -> SENT, {DRAFT, SENT} -> CANCELLED, and SENT -> PAID, the
// latter with MarkPaid semantics.
func (u *InvoiceUseCase) Transition(ctx context.Context, actor entities.Actor, invoiceID string, cmd TransitionInvoiceCommand) (entities.Invoice, error) {
	if cmd.Target == entities.InvoiceStatusPaid {
		if cmd.DueAt != nil {
			return entities.Invoice{}, errs.Validation("due_at", "only applies when sending")
		}
		return u.MarkPaid(ctx, actor, invoiceID)
	}
	return u.transition(ctx, actor, invoiceID, cmd)
}

func (u *InvoiceUseCase) transition(ctx context.Context, actor entities.Actor, invoiceID string, cmd TransitionInvoiceCommand) (inv entities.Invoice, err error) {
	defer func() { metrics.RecordError("invoice.transition", err) }()

	if err := authz.Authorize(actor, authz.OpInvoiceTransition); err != nil {
		return entities.Invoice{}, err
	}
	if err := checkActor(actor); err != nil {
		return entities.Invoice{}, err
	}
	invoiceID, err = cleanID("invoice_id", invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if !cmd.Target.Valid() {
		return entities.Invoice{}, errs.Validation("status", "unknown invoice status")
	}
	if cmd.DueAt != nil && cmd.Target != entities.InvoiceStatusSent {
		return entities.Invoice{}, errs.Validation("due_at", "only applies when sending")
	}

	log := u.log.With("business_id", actor.BusinessID, "invoice_id", invoiceID, "target", cmd.Target, "actor_id", actor.ID)
	now := u.clock()
	var from entities.InvoiceStatus

	err = u.store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
		current, err := loadInvoice(ctx, tx, actor.BusinessID, invoiceID)
		if err != nil {
			return err
		}
		from = current.Status
		allowed := false
		switch cmd.Target {
		case entities.InvoiceStatusSent:
			allowed = current.Status == entities.InvoiceStatusDraft
		case entities.InvoiceStatusCancelled:
			allowed = current.Status == entities.InvoiceStatusDraft || current.Status == entities.InvoiceStatusSent
		}
		if !allowed {
			return errs.InvalidTransition("invoice", current.Status, cmd.Target)
		}
		if _, err := loadActiveProject(ctx, tx, actor.BusinessID, current.ProjectID); err != nil {
			return err
		}

		switch cmd.Target {
		case entities.InvoiceStatusSent:
			settings, err := loadSettings(ctx, tx, actor.BusinessID)
			if err != nil {
				return err
			}
			due := now.AddDate(0, 0, settings.PaymentTermsDays)
			if cmd.DueAt != nil {
				if cmd.DueAt.Before(now) {
					return errs.Validation("due_at", "must not be before the issue date")
				}
				due = cmd.DueAt.UTC()
			}
			seq, err := tx.Sequences().Next(ctx, actor.BusinessID, invoiceSequence)
			if err != nil {
				return err
			}
			markInvoiceSent(&current, documentNumber("INV", now.Year(), seq), now, due)
		case entities.InvoiceStatusCancelled:
			markInvoiceCancelled(&current)
		}

		current.UpdatedAt = now
		inv, err = tx.Invoices().Update(ctx, current)
		return err
	})
	if err != nil {
		log.Warn("invoice transition failed", "from", from, "error", err)
		return entities.Invoice{}, err
	}
	metrics.RecordTransition("invoice", from, cmd.Target)
	log.Info("invoice transitioned", "from", from)
	return inv, nil
}

// ApplyPayment records a payment against a SENT invoice. The paid amount is clamped at
// the invoice total; the invoice becomes PAID once nothing remains.
func (u *InvoiceUseCase) ApplyPayment(ctx context.Context, actor entities.Actor, invoiceID string, amount money.Cents) (inv entities.Invoice, err error) {
	defer func() { metrics.RecordError("invoice.apply_payment", err) }()

	if err := authz.Authorize(actor, authz.OpInvoiceApplyPayment); err != nil {
		return entities.Invoice{}, err
	}
	if err := checkActor(actor); err != nil {
		return entities.Invoice{}, err
	}
	invoiceID, err = cleanID("invoice_id", invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if amount <= 0 {
		return entities.Invoice{}, errs.Validation("amount_cents", "must be positive")
	}

	log := u.log.With("business_id", actor.BusinessID, "invoice_id", invoiceID, "amount_cents", amount, "actor_id", actor.ID)
	now := u.clock()
	var applied money.Cents

	err = u.store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
		current, err := loadInvoice(ctx, tx, actor.BusinessID, invoiceID)
		if err != nil {
			return err
		}
		if current.Status != entities.InvoiceStatusSent {
			return ErrInvoiceNotAwaitingPay
		}
		if _, err := loadActiveProject(ctx, tx, actor.BusinessID, current.ProjectID); err != nil {
			return err
		}
		if applied, err = applyInvoicePayment(&current, amount, now); err != nil {
			return err
		}
		current.UpdatedAt = now
		inv, err = tx.Invoices().Update(ctx, current)
		return err
	})
	if err != nil {
		log.Warn("invoice payment failed", "error", err)
		return entities.Invoice{}, err
	}
	if applied < amount {
		log.Warn("invoice payment clamped at total", "applied_cents", applied)
	}
	if inv.Status == entities.InvoiceStatusPaid {
		metrics.RecordTransition("invoice", entities.InvoiceStatusSent, entities.InvoiceStatusPaid)
	}
	log.Info("invoice payment applied", "paid_cents", inv.PaidCents, "remaining_cents", inv.RemainingCents, "status", inv.Status)
	return inv, nil
}

// MarkPaid settles a SENT invoice in full.
func (u *InvoiceUseCase) MarkPaid(ctx context.Context, actor entities.Actor, invoiceID string) (inv entities.Invoice, err error) {
	defer func() { metrics.RecordError("invoice.mark_paid", err) }()

	if err := authz.Authorize(actor, authz.OpInvoiceMarkPaid); err != nil {
		return entities.Invoice{}, err
	}
	if err := checkActor(actor); err != nil {
		return entities.Invoice{}, err
	}
	invoiceID, err = cleanID("invoice_id", invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	log := u.log.With("business_id", actor.BusinessID, "invoice_id", invoiceID, "actor_id", actor.ID)
	now := u.clock()

	err = u.store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
		current, err := loadInvoice(ctx, tx, actor.BusinessID, invoiceID)
		if err != nil {
			return err
		}
		if current.Status != entities.InvoiceStatusSent {
			return errs.InvalidTransition("invoice", current.Status, entities.InvoiceStatusPaid)
		}
		if _, err := loadActiveProject(ctx, tx, actor.BusinessID, current.ProjectID); err != nil {
			return err
		}
		markInvoicePaid(&current, now)
		current.UpdatedAt = now
		inv, err = tx.Invoices().Update(ctx, current)
		return err
	})
	if err != nil {
		log.Warn("invoice mark paid failed", "error", err)
		return entities.Invoice{}, err
	}
	metrics.RecordTransition("invoice", entities.InvoiceStatusSent, entities.InvoiceStatusPaid)
	log.Info("invoice marked paid")
	return inv, nil
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, actor entities.Actor, id string) (entities.Invoice, error) {
	if err := authz.Authorize(actor, authz.OpInvoiceRead); err != nil {
		return entities.Invoice{}, err
	}
	if err := checkActor(actor); err != nil {
		return entities.Invoice{}, err
	}
	id, err := cleanID("invoice_id", id)
	if err != nil {
		return entities.Invoice{}, err
	}
	return loadInvoice(ctx, u.store, actor.BusinessID, id)
}

func (u *InvoiceUseCase) ListByProject(ctx context.Context, actor entities.Actor, projectID string) ([]entities.Invoice, error) {
	if err := authz.Authorize(actor, authz.OpInvoiceRead); err != nil {
		return nil, err
	}
	if err := checkActor(actor); err != nil {
		return nil, err
	}
	projectID, err := cleanID("project_id", projectID)
	if err != nil {
		return nil, err
	}
	if _, err := loadProject(ctx, u.store, actor.BusinessID, projectID); err != nil {
		return nil, err
	}
	return u.store.Invoices().ListByProject(ctx, actor.BusinessID, projectID)
}
