package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"project_billing/internal/domain/authz"
	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/errs"
	"project_billing/internal/infrastructure/logger"
	"project_billing/internal/infrastructure/metrics"
	"project_billing/internal/usecase/interfaces"
)

type CreateProjectCommand struct {
	Name       string
	ClientID   *string
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *string
	TagIDs     []string
}

// UpdateProjectCommand changes project details; nil fields are left as they are.
type UpdateProjectCommand struct {
	Name       *string
	ClientID   *string
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *string
	TagIDs     *[]string
}

// SetDepositStatusCommand sets the deposit status. PaidAtSupplied distinguishes an
// explicit null paid date from an omitted one.
type SetDepositStatusCommand struct {
	Status         entities.DepositStatus
	PaidAt         *time.Time
	PaidAtSupplied bool
}

// StartResult is returned by Start.
type StartResult struct {
	Project      entities.Project
	StartedAt    time.Time
	TasksCreated int
}

// IProjectUseCase is the project lifecycle: details, the three status axes, the billing
// quote binding, start and archival.
type IProjectUseCase interface {
	Create(ctx context.Context, actor entities.Actor, cmd CreateProjectCommand) (entities.Project, error)
	Update(ctx context.Context, actor entities.Actor, projectID string, cmd UpdateProjectCommand) (entities.Project, error)
	Delete(ctx context.Context, actor entities.Actor, projectID string) error
	GetByID(ctx context.Context, actor entities.Actor, projectID string) (entities.Project, error)
	SetStatus(ctx context.Context, actor entities.Actor, projectID string, status entities.ProjectStatus) (entities.Project, error)
	SetQuoteStatus(ctx context.Context, actor entities.Actor, projectID string, status entities.ProjectQuoteStatus) (entities.Project, error)
	SetDepositStatus(ctx context.Context, actor entities.Actor, projectID string, cmd SetDepositStatusCommand) (entities.Project, error)
	BindBillingQuote(ctx context.Context, actor entities.Actor, projectID, quoteID string) (entities.Project, error)
	Start(ctx context.Context, actor entities.Actor, projectID string) (StartResult, error)
	Archive(ctx context.Context, actor entities.Actor, projectID string) (entities.Project, error)
	Unarchive(ctx context.Context, actor entities.Actor, projectID string) (entities.Project, error)
}

type ProjectUseCase struct {
	base
	tasks interfaces.ITaskGenerator
}

var _ IProjectUseCase = (*ProjectUseCase)(nil)

func NewProjectUseCase(store interfaces.IStore, tasks interfaces.ITaskGenerator, log *logger.Logger, opts ...Option) *ProjectUseCase {
	return &ProjectUseCase{base: newBase(store, log, opts), tasks: tasks}
}

func validateDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return errs.Validation("end_date", "must not be before start_date")
	}
	return nil
}

func (u *ProjectUseCase) Create(ctx context.Context, actor entities.Actor, cmd CreateProjectCommand) (p entities.Project, err error) {
	defer func() { metrics.RecordError("project.create", err) }()

	if err := authz.Authorize(actor, authz.OpProjectCreate); err != nil {
		return entities.Project{}, err
	}
	if err := checkActor(actor); err != nil {
		return entities.Project{}, err
	}
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return entities.Project{}, errs.Validation("name", "is required")
	}
	if err := validateDates(cmd.StartDate, cmd.EndDate); err != nil {
		return entities.Project{}, err
	}

	now := u.clock()
	p = entities.Project{
		ID:            u.newID(),
		BusinessID:    actor.BusinessID,
		ClientID:      cmd.ClientID,
		Name:          name,
		Status:        entities.ProjectStatusPlanned,
		QuoteStatus:   entities.ProjectQuoteDraft,
		DepositStatus: entities.DepositNotRequired,
		StartDate:     cmd.StartDate,
		EndDate:       cmd.EndDate,
		CategoryID:    cmd.CategoryID,
		TagIDs:        cmd.TagIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = u.store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
		var err error
		p, err = tx.Projects().Create(ctx, p)
		return err
	})
	if err != nil {
		u.log.Warn("project create failed", "business_id", actor.BusinessID, "error", err)
		return entities.Project{}, err
	}
	u.log.Info("project created", "business_id", actor.BusinessID, "project_id", p.ID, "actor_id", actor.ID)
	return p, nil
}

// mutate is the shared read-validate-write cycle of project commands. apply runs on the
// freshly loaded project inside the transaction; archived projects are rejected unless
// allowArchived is set.
// errProjectUnchanged lets a mutate callback finish without writing the project.
var errProjectUnchanged = errors.New("project unchanged")

func (u *ProjectUseCase) mutate(ctx context.Context, actor entities.Actor, op authz.Operation, projectID string, allowArchived bool, apply func(ctx context.Context, tx interfaces.IRepositories, p *entities.Project) error) (p entities.Project, err error) {
	defer func() { metrics.RecordError(string(op), err) }()

	if err := authz.Authorize(actor, op); err != nil {
		return entities.Project{}, err
	}
	if err := checkActor(actor); err != nil {
		return entities.Project{}, err
	}
	projectID, err = cleanID("project_id", projectID)
	if err != nil {
		return entities.Project{}, err
	}
	log := u.log.With("business_id", actor.BusinessID, "project_id", projectID, "op", op, "actor_id", actor.ID)

	err = u.store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
		current, err := loadProject(ctx, tx, actor.BusinessID, projectID)
		if err != nil {
			return err
		}
		if current.IsArchived() && !allowArchived {
			return ErrProjectArchived
		}
		err = apply(ctx, tx, &current)
		if errors.Is(err, errProjectUnchanged) {
			p = current
			return nil
		}
		if err != nil {
			return err
		}
		current.UpdatedAt = u.clock()
		p, err = tx.Projects().Update(ctx, current)
		return err
	})
	if err != nil {
		log.Warn("project command failed", "error", err)
		return entities.Project{}, err
	}
	log.Info("project command applied")
	return p, nil
}

func (u *ProjectUseCase) Update(ctx context.Context, actor entities.Actor, projectID string, cmd UpdateProjectCommand) (entities.Project, error) {
	return u.mutate(ctx, actor, authz.OpProjectUpdate, projectID, false, func(_ context.Context, _ interfaces.IRepositories, p *entities.Project) error {
		if cmd.Name != nil {
			name := strings.TrimSpace(*cmd.Name)
			if name == "" {
				return errs.Validation("name", "must not be empty")
			}
			p.Name = name
		}
		if cmd.ClientID != nil {
			p.ClientID = cmd.ClientID
		}
		if cmd.StartDate != nil {
			p.StartDate = cmd.StartDate
		}
		if cmd.EndDate != nil {
			p.EndDate = cmd.EndDate
		}
		if cmd.CategoryID != nil {
			p.CategoryID = cmd.CategoryID
		}
		if cmd.TagIDs != nil {
			p.TagIDs = append([]string(nil), (*cmd.TagIDs)...)
		}
		return validateDates(p.StartDate, p.EndDate)
	})
}

// Delete removes the project and its services. Quotes, invoices and finance lines stay.
func (u *ProjectUseCase) Delete(ctx context.Context, actor entities.Actor, projectID string) (err error) {
	defer func() { metrics.RecordError(string(authz.OpProjectDelete), err) }()

	if err := authz.Authorize(actor, authz.OpProjectDelete); err != nil {
		return err
	}
	if err := checkActor(actor); err != nil {
		return err
	}
	projectID, err = cleanID("project_id", projectID)
	if err != nil {
		return err
	}
	err = u.store.WithinTransaction(ctx, func(ctx context.Context, tx interfaces.IRepositories) error {
		p, err := loadActiveProject(ctx, tx, actor.BusinessID, projectID)
		if err != nil {
			return err
		}
		if err := tx.ProjectServices().DeleteByProject(ctx, actor.BusinessID, p.ID); err != nil {
			return err
		}
		return tx.Projects().Delete(ctx, p)
	})
	if err != nil {
		u.log.Warn("project delete failed", "business_id", actor.BusinessID, "project_id", projectID, "error", err)
		return err
	}
	u.log.Info("project deleted", "business_id", actor.BusinessID, "project_id", projectID, "actor_id", actor.ID)
	return nil
}

func (u *ProjectUseCase) GetByID(ctx context.Context, actor entities.Actor, projectID string) (entities.Project, error) {
	if err := authz.Authorize(actor, authz.OpProjectRead); err != nil {
		return entities.Project{}, err
	}
	if err := checkActor(actor); err != nil {
		return entities.Project{}, err
	}
	projectID, err := cleanID("project_id", projectID)
	if err != nil {
		return entities.Project{}, err
	}
	return loadProject(ctx, u.store, actor.BusinessID, projectID)
}

func (u *ProjectUseCase) SetStatus(ctx context.Context, actor entities.Actor, projectID string, status entities.ProjectStatus) (entities.Project, error) {
	var from entities.ProjectStatus
	p, err := u.mutate(ctx, actor, authz.OpProjectSetStatus, projectID, false, func(_ context.Context, _ interfaces.IRepositories, p *entities.Project) error {
		if !status.Valid() {
			return errs.Validation("status", "unknown project status")
		}
		from = p.Status
		if !p.Status.CanTransitionTo(status) {
			return errs.InvalidTransition("project", p.Status, status)
		}
		p.Status = status
		return nil
	})
	if err == nil {
		metrics.RecordTransition("project", from, status)
	}
	return p, err
}

// SetQuoteStatus writes the project's quote status. While a billing quote is bound the
// status is pinned to SIGNED.
func (u *ProjectUseCase) SetQuoteStatus(ctx context.Context, actor entities.Actor, projectID string, status entities.ProjectQuoteStatus) (entities.Project, error) {
	return u.mutate(ctx, actor, authz.OpProjectSetQuoteStatus, projectID, false, func(_ context.Context, _ interfaces.IRepositories, p *entities.Project) error {
		if !status.Valid() {
			return errs.Validation("quote_status", "unknown quote status")
		}
		if p.BillingQuoteID != nil && status != entities.ProjectQuoteSigned {
			return ErrBillingQuoteBound
		}
		p.QuoteStatus = status
		return nil
	})
}

func (u *ProjectUseCase) SetDepositStatus(ctx context.Context, actor entities.Actor, projectID string, cmd SetDepositStatusCommand) (entities.Project, error) {
	return u.mutate(ctx, actor, authz.OpProjectSetDepositStatus, projectID, false, func(_ context.Context, _ interfaces.IRepositories, p *entities.Project) error {
		if cmd.PaidAtSupplied && cmd.PaidAt == nil {
			return errs.Validation("deposit_paid_at", "must not be null")
		}
		return applyDepositStatus(p, cmd.Status, cmd.PaidAt, u.clock())
	})
}

func (u *ProjectUseCase) BindBillingQuote(ctx context.Context, actor entities.Actor, projectID, quoteID string) (entities.Project, error) {
	return u.mutate(ctx, actor, authz.OpProjectBindBillingQuote, projectID, false, func(ctx context.Context, tx interfaces.IRepositories, p *entities.Project) error {
		id, err := cleanID("quote_id", quoteID)
		if err != nil {
			return err
		}
		q, err := loadQuote(ctx, tx, p.BusinessID, id)
		if err != nil {
			return err
		}
		return bindBillingQuote(p, q)
	})
}

// Start marks the project started and generates its initial tasks in the same unit of work.
func (u *ProjectUseCase) Start(ctx context.Context, actor entities.Actor, projectID string) (StartResult, error) {
	var (
		tasks int
		from  entities.ProjectStatus
	)
	now := u.clock()
	p, err := u.mutate(ctx, actor, authz.OpProjectStart, projectID, false, func(ctx context.Context, tx interfaces.IRepositories, p *entities.Project) error {
		if !p.CanStart() {
			return ErrProjectCannotStart
		}
		from = p.Status
		markStarted(p, now)
		if u.tasks == nil {
			return nil
		}
		var err error
		tasks, err = u.tasks.Generate(ctx, tx, *p)
		return err
	})
	if err != nil {
		return StartResult{}, err
	}
	if from != p.Status {
		metrics.RecordTransition("project", from, p.Status)
	}
	u.log.Info("project started", "business_id", p.BusinessID, "project_id", p.ID, "tasks_created", tasks)
	return StartResult{Project: p, StartedAt: *p.StartedAt, TasksCreated: tasks}, nil
}

// Archive archives the project. Archiving an archived project changes nothing and keeps
// the original ArchivedAt.
func (u *ProjectUseCase) Archive(ctx context.Context, actor entities.Actor, projectID string) (entities.Project, error) {
	return u.mutate(ctx, actor, authz.OpProjectArchive, projectID, true, func(_ context.Context, _ interfaces.IRepositories, p *entities.Project) error {
		if p.IsArchived() {
			return errProjectUnchanged
		}
		markArchived(p, u.clock())
		return nil
	})
}

func (u *ProjectUseCase) Unarchive(ctx context.Context, actor entities.Actor, projectID string) (entities.Project, error) {
	return u.mutate(ctx, actor, authz.OpProjectUnarchive, projectID, true, func(_ context.Context, _ interfaces.IRepositories, p *entities.Project) error {
		if !p.IsArchived() {
			return ErrProjectNotArchived
		}
		markUnarchived(p)
		return nil
	})
}
