package usecase

import (
	"context"
	"errors"
	"time"

	"project_billing/internal/domain/authz"
	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/errs"
	"project_billing/internal/domain/money"
	"project_billing/internal/infrastructure/logger"
	"project_billing/internal/infrastructure/metrics"
	"project_billing/internal/usecase/interfaces"
)

const quoteSequence = "quote"

// CreateQuoteCommand creates a DRAFT quote from the project's live pricing.
// DepositPercent nil means the business default.
type CreateQuoteCommand struct {
	ProjectID      string
	DepositPercent *int
	ExpiresAt      *time.Time
}

// IQuoteUseCase is the quote lifecycle.
//
//   - Create freezes the project's current pricing snapshot into a DRAFT quote.
//   - Transition moves DRAFT -> SENT -> SIGNED, or to CANCELLED / EXPIRED.
//   - Reads classify overdue SENT quotes as EXPIRED without writing.
//   - ExpireOverdue persists that classification.
type IQuoteUseCase interface {
	Create(ctx context.Context, actor entities.Actor, cmd CreateQuoteCommand) (entities.Quote, error)
	Transition(ctx context.Context, actor entities.Actor, quoteID string, target entities.QuoteStatus) (entities.Quote, error)
	GetByID(ctx context.Context, actor entities.Actor, id string) (entities.Quote, error)
	ListByProject(ctx context.Context, actor entities.Actor, projectID string) ([]entities.Quote, error)
	ExpireOverdue(ctx context.Context) (int, error)
}

type QuoteUseCase struct {
	base
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(store interfaces.IStore, log *logger.Logger, opts ...Option) *QuoteUseCase {
	return &QuoteUseCase{base: newBase(store, log, opts)}
}

func (u *QuoteUseCase) Create(ctx context.Context, actor entities.Actor, cmd CreateQuoteCommand) (q entities.Quote, err error) {
	defer func() { metrics.RecordError("quote.create", err) }()

	if err := authz.Authorize(actor, authz.OpQuoteCreate); err != nil {
		return entities.Quote{}, err
	}
	if err := checkActor(actor); err != nil {
		return entities.Quote{}, err
	}
	projectID, err := cleanID("project_id", cmd.ProjectID)
	if err != nil {
		return entities.Quote{}, err
	}
	if cmd.DepositPercent != nil {
		if err := money.ValidatePercent(*cmd.DepositPercent); err != nil {
			return entities.Quote{}, err
		}
	}
	now := u.clock()
	if cmd.ExpiresAt != nil && !cmd.ExpiresAt.After(now) {
		return entities.Quote{}, errs.Validation("expires_at", "must be in the future")
	}

	log := u.log.With("business_id", actor.BusinessID, "project_id", projectID, "actor_id", actor.ID)
	log.Debug("quote create start")

	err = u.store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
		project, err := loadActiveProject(ctx, tx, actor.BusinessID, projectID)
		if err != nil {
			return err
		}
		snap, err := pricingSnapshot(ctx, tx, actor.BusinessID, project.ID, cmd.DepositPercent)
		if err != nil {
			return err
		}

		q = entities.Quote{
			ID:             u.newID(),
			BusinessID:     actor.BusinessID,
			ProjectID:      project.ID,
			ClientID:       project.ClientID,
			Status:         entities.QuoteStatusDraft,
			DepositPercent: snap.DepositPercent,
			Currency:       snap.Currency,
			TotalCents:     snap.TotalCents,
			DepositCents:   snap.DepositCents,
			BalanceCents:   snap.BalanceCents,
			Items:          snap.Items,
			ExpiresAt:      cmd.ExpiresAt,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		q, err = tx.Quotes().Create(ctx, q)
		return err
	})
	if err != nil {
		log.Warn("quote create failed", "error", err)
		return entities.Quote{}, err
	}
	log.Info("quote created", "quote_id", q.ID, "total_cents", q.TotalCents)
	return q, nil
}

func (u *QuoteUseCase) Transition(ctx context.Context, actor entities.Actor, quoteID string, target entities.QuoteStatus) (q entities.Quote, err error) {
	defer func() { metrics.RecordError("quote.transition", err) }()

	if err := authz.Authorize(actor, authz.OpQuoteTransition); err != nil {
		return entities.Quote{}, err
	}
	if err := checkActor(actor); err != nil {
		return entities.Quote{}, err
	}
	quoteID, err = cleanID("quote_id", quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if !target.Valid() {
		return entities.Quote{}, errs.Validation("status", "unknown quote status")
	}

	log := u.log.With("business_id", actor.BusinessID, "quote_id", quoteID, "target", target, "actor_id", actor.ID)
	now := u.clock()
	var from entities.QuoteStatus

	err = u.store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
		current, err := loadQuote(ctx, tx, actor.BusinessID, quoteID)
		if err != nil {
			return err
		}
		from = current.Status
		if !current.Status.CanTransitionTo(target) {
			return errs.InvalidTransition("quote", current.Status, target)
		}
		project, err := loadActiveProject(ctx, tx, actor.BusinessID, current.ProjectID)
		if err != nil {
			return err
		}

		projectChanged := false
		switch target {
		case entities.QuoteStatusSent:
			settings, err := loadSettings(ctx, tx, actor.BusinessID)
			if err != nil {
				return err
			}
			seq, err := tx.Sequences().Next(ctx, actor.BusinessID, quoteSequence)
			if err != nil {
				return err
			}
			markQuoteSent(&current, documentNumber("Q", now.Year(), seq), now, settings.QuoteValidityDays)
			projectChanged = promoteProjectQuoteStatus(&project)
		case entities.QuoteStatusSigned:
			if current.EffectiveStatus(now) == entities.QuoteStatusExpired {
				return ErrQuoteExpired
			}
			markQuoteSigned(&current, now)
			if project.BillingQuoteID == nil {
				if err := bindBillingQuote(&project, current); err != nil {
					return err
				}
				projectChanged = true
			}
		case entities.QuoteStatusExpired:
			current.Status = entities.QuoteStatusExpired
			if current.ExpiresAt == nil || current.ExpiresAt.After(now) {
				at := now
				current.ExpiresAt = &at
			}
		case entities.QuoteStatusCancelled:
			current.Status = entities.QuoteStatusCancelled
		}

		current.UpdatedAt = now
		if q, err = tx.Quotes().Update(ctx, current); err != nil {
			return err
		}
		if projectChanged {
			project.UpdatedAt = now
			if _, err := tx.Projects().Update(ctx, project); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Warn("quote transition failed", "from", from, "error", err)
		return entities.Quote{}, err
	}

	metrics.RecordTransition("quote", from, target)
	log.Info("quote transitioned", "from", from, "project_id", q.ProjectID)
	return q, nil
}

// GetByID returns the quote with its status classified at read time.
func (u *QuoteUseCase) GetByID(ctx context.Context, actor entities.Actor, id string) (entities.Quote, error) {
	if err := authz.Authorize(actor, authz.OpQuoteRead); err != nil {
		return entities.Quote{}, err
	}
	if err := checkActor(actor); err != nil {
		return entities.Quote{}, err
	}
	id, err := cleanID("quote_id", id)
	if err != nil {
		return entities.Quote{}, err
	}
	q, err := loadQuote(ctx, u.store, actor.BusinessID, id)
	if err != nil {
		return entities.Quote{}, err
	}
	q.Status = q.EffectiveStatus(u.clock())
	return q, nil
}

func (u *QuoteUseCase) ListByProject(ctx context.Context, actor entities.Actor, projectID string) ([]entities.Quote, error) {
	if err := authz.Authorize(actor, authz.OpQuoteRead); err != nil {
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
	quotes, err := u.store.Quotes().ListByProject(ctx, actor.BusinessID, projectID)
	if err != nil {
		return nil, err
	}
	now := u.clock()
	for i := range quotes {
		quotes[i].Status = quotes[i].EffectiveStatus(now)
	}
	return quotes, nil
}

// ExpireOverdue persists EXPIRED for every SENT quote whose expiry has passed. Each quote
// is expired in its own transaction; quotes of archived projects are left to the lazy
// read-time classification. A quote changed concurrently is skipped and picked up by the
// next run.
func (u *QuoteUseCase) ExpireOverdue(ctx context.Context) (int, error) {
	now := u.clock()
	overdue, err := u.store.Quotes().ListSentExpiredBefore(ctx, now)
	if err != nil {
		metrics.RecordError("quote.expire", err)
		return 0, err
	}

	expired := 0
	for _, candidate := range overdue {
		if err := ctx.Err(); err != nil {
			return expired, err
		}
		log := u.log.With("business_id", candidate.BusinessID, "quote_id", candidate.ID)
		if err := authz.Authorize(entities.SystemActor(candidate.BusinessID), authz.OpQuoteExpire); err != nil {
			return expired, err
		}

		skipped := false
		err := u.store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
			q, err := loadQuote(ctx, tx, candidate.BusinessID, candidate.ID)
			if err != nil {
				return err
			}
			if q.EffectiveStatus(now) != entities.QuoteStatusExpired || q.Status != entities.QuoteStatusSent {
				skipped = true
				return nil
			}
			project, err := loadProject(ctx, tx, q.BusinessID, q.ProjectID)
			if err != nil && !errors.Is(err, ErrProjectNotFound) {
				return err
			}
			if project.IsArchived() {
				skipped = true
				return nil
			}
			q.Status = entities.QuoteStatusExpired
			q.UpdatedAt = now
			_, err = tx.Quotes().Update(ctx, q)
			return err
		})
		switch {
		case errors.Is(err, errs.ErrConflict):
			log.Warn("quote expiry skipped: concurrent update")
			continue
		case err != nil:
			metrics.RecordError("quote.expire", err)
			log.Error("quote expiry failed", "error", err)
			return expired, err
		case skipped:
			continue
		}
		expired++
		metrics.RecordTransition("quote", entities.QuoteStatusSent, entities.QuoteStatusExpired)
		metrics.QuotesExpired.Inc()
		log.Info("quote expired")
	}
	return expired, nil
}
