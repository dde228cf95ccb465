package usecase

import (
	"context"
	"strings"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/errs"
	"project_billing/internal/infrastructure/logger"
	"project_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrProjectNotFound        = &errs.NotFoundError{Entity: "project"}
	ErrProjectServiceNotFound = &errs.NotFoundError{Entity: "project_service"}
	ErrQuoteNotFound          = &errs.NotFoundError{Entity: "quote"}
	ErrInvoiceNotFound        = &errs.NotFoundError{Entity: "invoice"}

	ErrMissingBusiness = &errs.ValidationError{Field: "business_id", Message: "is required"}
	ErrInvalidID       = &errs.ValidationError{Field: "id", Message: "is required"}

	ErrProjectArchived       = &errs.PreconditionError{Reason: "project is archived"}
	ErrProjectNotArchived    = &errs.PreconditionError{Reason: "project is not archived"}
	ErrProjectCannotStart    = &errs.PreconditionError{Reason: "project cannot start: quote must be signed or accepted and deposit paid or not required"}
	ErrBillingQuoteBound     = &errs.PreconditionError{Reason: "project has a billing quote; quote status must stay SIGNED"}
	ErrQuoteNotSigned        = &errs.PreconditionError{Reason: "quote is not signed"}
	ErrQuoteExpired          = &errs.PreconditionError{Reason: "quote has expired"}
	ErrQuoteProjectMismatch  = &errs.PreconditionError{Reason: "quote does not belong to the project"}
	ErrInvoiceNotAwaitingPay = &errs.PreconditionError{Reason: "invoice is not awaiting payment"}
)

// Option customizes a use case. Tests use it to pin the clock and id generation.
type Option func(*base)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

// WithIDGenerator replaces uuid.NewString.
func WithIDGenerator(newID func() string) Option {
	return func(b *base) { b.newID = newID }
}

// base carries what every use case shares.
type base struct {
	store interfaces.IStore
	log   *logger.Logger
	now   func() time.Time
	newID func() string
}

func newBase(store interfaces.IStore, log *logger.Logger, opts []Option) base {
	if log == nil {
		log = logger.NewNop()
	}
	b := base{
		store: store,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b base) clock() time.Time { return b.now().UTC() }

// checkActor validates the identity context common to every command.
func checkActor(actor entities.Actor) error {
	if strings.TrimSpace(actor.BusinessID) == "" {
		return ErrMissingBusiness
	}
	return nil
}

func cleanID(field, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errs.Validation(field, "is required")
	}
	return id, nil
}

func loadProject(ctx context.Context, repos interfaces.IRepositories, businessID, id string) (entities.Project, error) {
	p, err := repos.Projects().GetByID(ctx, businessID, id)
	if err != nil {
		return entities.Project{}, err
	}
	if p.ID == "" {
		return entities.Project{}, errs.NotFound("project", id)
	}
	return p, nil
}

// loadActiveProject loads a project that is not archived.
func loadActiveProject(ctx context.Context, repos interfaces.IRepositories, businessID, id string) (entities.Project, error) {
	p, err := loadProject(ctx, repos, businessID, id)
	if err != nil {
		return entities.Project{}, err
	}
	if p.IsArchived() {
		return entities.Project{}, ErrProjectArchived
	}
	return p, nil
}

func loadQuote(ctx context.Context, repos interfaces.IRepositories, businessID, id string) (entities.Quote, error) {
	q, err := repos.Quotes().GetByID(ctx, businessID, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, errs.NotFound("quote", id)
	}
	return q, nil
}

func loadInvoice(ctx context.Context, repos interfaces.IRepositories, businessID, id string) (entities.Invoice, error) {
	inv, err := repos.Invoices().GetByID(ctx, businessID, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, errs.NotFound("invoice", id)
	}
	return inv, nil
}

func loadSettings(ctx context.Context, repos interfaces.IRepositories, businessID string) (entities.BusinessSettings, error) {
	s, err := repos.Businesses().GetSettings(ctx, businessID)
	if err != nil {
		return entities.BusinessSettings{}, err
	}
	s.ID = businessID
	return s.WithDefaults(), nil
}
