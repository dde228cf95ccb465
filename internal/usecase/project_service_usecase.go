package usecase

import (
	"context"
	"strings"

	"project_billing/internal/domain/authz"
	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/errs"
	"project_billing/internal/domain/money"
	"project_billing/internal/infrastructure/logger"
	"project_billing/internal/infrastructure/metrics"
	"project_billing/internal/usecase/interfaces"
)

// AddProjectServiceCommand sells a catalog service on a project. Position nil appends.
type AddProjectServiceCommand struct {
	ProjectID          string
	ServiceID          string
	Quantity           int
	PriceCentsOverride *money.Cents
	Notes              string
	Position           *int
}

// UpdateProjectServiceCommand edits a project service; nil fields are kept.
// ClearPriceOverride drops the override so the catalog price applies again.
type UpdateProjectServiceCommand struct {
	Quantity           *int
	PriceCentsOverride *money.Cents
	ClearPriceOverride bool
	Notes              *string
	Position           *int
}

type IProjectServiceUseCase interface {
	Add(ctx context.Context, actor entities.Actor, cmd AddProjectServiceCommand) (entities.ProjectService, error)
	Update(ctx context.Context, actor entities.Actor, id string, cmd UpdateProjectServiceCommand) (entities.ProjectService, error)
	Remove(ctx context.Context, actor entities.Actor, id string) error
	List(ctx context.Context, actor entities.Actor, projectID string) ([]entities.ProjectService, error)
	Pricing(ctx context.Context, actor entities.Actor, projectID string) (entities.PricingSnapshot, error)
}

type ProjectServiceUseCase struct {
	base
}

var _ IProjectServiceUseCase = (*ProjectServiceUseCase)(nil)

func NewProjectServiceUseCase(store interfaces.IStore, log *logger.Logger, opts ...Option) *ProjectServiceUseCase {
	return &ProjectServiceUseCase{base: newBase(store, log, opts)}
}

func validateServiceFields(quantity *int, override *money.Cents, position *int) error {
	if quantity != nil && *quantity <= 0 {
		return errs.Validation("quantity", "must be positive")
	}
	if override != nil && *override < 0 {
		return errs.Validation("price_cents_override", "must not be negative")
	}
	if position != nil && *position < 0 {
		return errs.Validation("position", "must not be negative")
	}
	return nil
}

func (u *ProjectServiceUseCase) Add(ctx context.Context, actor entities.Actor, cmd AddProjectServiceCommand) (ps entities.ProjectService, err error) {
	defer func() { metrics.RecordError("project_service.add", err) }()

	if err := authz.Authorize(actor, authz.OpProjectServiceWrite); err != nil {
		return entities.ProjectService{}, err
	}
	if err := checkActor(actor); err != nil {
		return entities.ProjectService{}, err
	}
	projectID, err := cleanID("project_id", cmd.ProjectID)
	if err != nil {
		return entities.ProjectService{}, err
	}
	serviceID, err := cleanID("service_id", cmd.ServiceID)
	if err != nil {
		return entities.ProjectService{}, err
	}
	if err := validateServiceFields(&cmd.Quantity, cmd.PriceCentsOverride, cmd.Position); err != nil {
		return entities.ProjectService{}, err
	}

	now := u.clock()
	err = u.store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
		project, err := loadActiveProject(ctx, tx, actor.BusinessID, projectID)
		if err != nil {
			return err
		}
		position := 0
		if cmd.Position != nil {
			position = *cmd.Position
		} else {
			existing, err := tx.ProjectServices().ListByProject(ctx, actor.BusinessID, project.ID)
			if err != nil {
				return err
			}
			for _, s := range existing {
				if s.Position >= position {
					position = s.Position + 1
				}
			}
		}
		ps = entities.ProjectService{
			ID:                 u.newID(),
			BusinessID:         actor.BusinessID,
			ProjectID:          project.ID,
			ServiceID:          serviceID,
			Quantity:           cmd.Quantity,
			PriceCentsOverride: cmd.PriceCentsOverride,
			Notes:              strings.TrimSpace(cmd.Notes),
			Position:           position,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		ps, err = tx.ProjectServices().Create(ctx, ps)
		return err
	})
	if err != nil {
		u.log.Warn("project service add failed", "business_id", actor.BusinessID, "project_id", projectID, "error", err)
		return entities.ProjectService{}, err
	}
	u.log.Info("project service added", "business_id", actor.BusinessID, "project_id", projectID, "project_service_id", ps.ID)
	return ps, nil
}

func (u *ProjectServiceUseCase) Update(ctx context.Context, actor entities.Actor, id string, cmd UpdateProjectServiceCommand) (ps entities.ProjectService, err error) {
	defer func() { metrics.RecordError("project_service.update", err) }()

	if err := authz.Authorize(actor, authz.OpProjectServiceWrite); err != nil {
		return entities.ProjectService{}, err
	}
	if err := checkActor(actor); err != nil {
		return entities.ProjectService{}, err
	}
	id, err = cleanID("project_service_id", id)
	if err != nil {
		return entities.ProjectService{}, err
	}
	if cmd.ClearPriceOverride && cmd.PriceCentsOverride != nil {
		return entities.ProjectService{}, errs.Validation("price_cents_override", "cannot be set and cleared at once")
	}
	if err := validateServiceFields(cmd.Quantity, cmd.PriceCentsOverride, cmd.Position); err != nil {
		return entities.ProjectService{}, err
	}

	err = u.store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
		current, err := u.loadService(ctx, tx, actor.BusinessID, id)
		if err != nil {
			return err
		}
		if _, err := loadActiveProject(ctx, tx, actor.BusinessID, current.ProjectID); err != nil {
			return err
		}
		if cmd.Quantity != nil {
			current.Quantity = *cmd.Quantity
		}
		switch {
		case cmd.ClearPriceOverride:
			current.PriceCentsOverride = nil
		case cmd.PriceCentsOverride != nil:
			current.PriceCentsOverride = cmd.PriceCentsOverride
		}
		if cmd.Notes != nil {
			current.Notes = strings.TrimSpace(*cmd.Notes)
		}
		if cmd.Position != nil {
			current.Position = *cmd.Position
		}
		current.UpdatedAt = u.clock()
		ps, err = tx.ProjectServices().Update(ctx, current)
		return err
	})
	if err != nil {
		u.log.Warn("project service update failed", "business_id", actor.BusinessID, "project_service_id", id, "error", err)
		return entities.ProjectService{}, err
	}
	return ps, nil
}

func (u *ProjectServiceUseCase) Remove(ctx context.Context, actor entities.Actor, id string) (err error) {
	defer func() { metrics.RecordError("project_service.remove", err) }()

	if err := authz.Authorize(actor, authz.OpProjectServiceWrite); err != nil {
		return err
	}
	if err := checkActor(actor); err != nil {
		return err
	}
	id, err = cleanID("project_service_id", id)
	if err != nil {
		return err
	}
	err = u.store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
		current, err := u.loadService(ctx, tx, actor.BusinessID, id)
		if err != nil {
			return err
		}
		if _, err := loadActiveProject(ctx, tx, actor.BusinessID, current.ProjectID); err != nil {
			return err
		}
		return tx.ProjectServices().Delete(ctx, current)
	})
	if err != nil {
		u.log.Warn("project service remove failed", "business_id", actor.BusinessID, "project_service_id", id, "error", err)
		return err
	}
	u.log.Info("project service removed", "business_id", actor.BusinessID, "project_service_id", id)
	return nil
}

func (u *ProjectServiceUseCase) List(ctx context.Context, actor entities.Actor, projectID string) ([]entities.ProjectService, error) {
	if err := authz.Authorize(actor, authz.OpProjectServiceRead); err != nil {
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
	return u.store.ProjectServices().ListByProject(ctx, actor.BusinessID, projectID)
}

// Pricing returns the live pricing snapshot at the business default deposit percent.
func (u *ProjectServiceUseCase) Pricing(ctx context.Context, actor entities.Actor, projectID string) (entities.PricingSnapshot, error) {
	if err := authz.Authorize(actor, authz.OpProjectServiceRead); err != nil {
		return entities.PricingSnapshot{}, err
	}
	if err := checkActor(actor); err != nil {
		return entities.PricingSnapshot{}, err
	}
	projectID, err := cleanID("project_id", projectID)
	if err != nil {
		return entities.PricingSnapshot{}, err
	}
	if _, err := loadProject(ctx, u.store, actor.BusinessID, projectID); err != nil {
		return entities.PricingSnapshot{}, err
	}
	return pricingSnapshot(ctx, u.store, actor.BusinessID, projectID, nil)
}

func (u *ProjectServiceUseCase) loadService(ctx context.Context, repos interfaces.IRepositories, businessID, id string) (entities.ProjectService, error) {
	s, err := repos.ProjectServices().GetByID(ctx, businessID, id)
	if err != nil {
		return entities.ProjectService{}, err
	}
	if s.ID == "" {
		return entities.ProjectService{}, errs.NotFound("project_service", id)
	}
	return s, nil
}
