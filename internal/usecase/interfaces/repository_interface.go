package interfaces

import (
	"context"
	"time"

	"project_billing/internal/domain/entities"
)

// Repositories follow one convention: a Get returning the zero value (empty ID) and a nil
// error means "not found", and Update/Delete are compare-and-swap on the entity's Version
// (the version that was read). A version mismatch is reported as errs.ConflictError and the
// stored entity is left untouched. Update returns the entity with its new version.

// IProjectRepository persists Project aggregates.
type IProjectRepository interface {
	GetByID(ctx context.Context, businessID, id string) (entities.Project, error)
	Create(ctx context.Context, p entities.Project) (entities.Project, error)
	Update(ctx context.Context, p entities.Project) (entities.Project, error)
	Delete(ctx context.Context, p entities.Project) error
}

// IProjectServiceRepository persists the services sold on a project.
type IProjectServiceRepository interface {
	GetByID(ctx context.Context, businessID, id string) (entities.ProjectService, error)
	ListByProject(ctx context.Context, businessID, projectID string) ([]entities.ProjectService, error)
	Create(ctx context.Context, s entities.ProjectService) (entities.ProjectService, error)
	Update(ctx context.Context, s entities.ProjectService) (entities.ProjectService, error)
	Delete(ctx context.Context, s entities.ProjectService) error
	DeleteByProject(ctx context.Context, businessID, projectID string) error
}

// IQuoteRepository persists quotes.
type IQuoteRepository interface {
	GetByID(ctx context.Context, businessID, id string) (entities.Quote, error)
	ListByProject(ctx context.Context, businessID, projectID string) ([]entities.Quote, error)
	// ListSentExpiredBefore returns SENT quotes of every business whose expiry is before t.
	ListSentExpiredBefore(ctx context.Context, t time.Time) ([]entities.Quote, error)
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	Update(ctx context.Context, q entities.Quote) (entities.Quote, error)
}

// IInvoiceRepository persists invoices.
type IInvoiceRepository interface {
	GetByID(ctx context.Context, businessID, id string) (entities.Invoice, error)
	ListByProject(ctx context.Context, businessID, projectID string) ([]entities.Invoice, error)
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	Update(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
}

// IFinanceLineRepository reads finance lines; they are written outside the engine.
type IFinanceLineRepository interface {
	ListByProject(ctx context.Context, businessID, projectID string) ([]entities.FinanceLine, error)
}

// ITaskRepository persists generated project tasks.
type ITaskRepository interface {
	CreateBatch(ctx context.Context, tasks []entities.Task) error
	ListByProject(ctx context.Context, businessID, projectID string) ([]entities.Task, error)
}

// IBusinessRepository reads business billing settings. Missing settings return the zero value.
type IBusinessRepository interface {
	GetSettings(ctx context.Context, businessID string) (entities.BusinessSettings, error)
}

// ICatalogRepository reads catalog services. Missing ids are simply absent from the result.
type ICatalogRepository interface {
	GetServices(ctx context.Context, businessID string, ids []string) (map[string]entities.CatalogService, error)
}

// ISequenceRepository hands out per-business document numbers. Numbers are never reused;
// a rolled back command may leave a gap.
type ISequenceRepository interface {
	Next(ctx context.Context, businessID, name string) (int64, error)
}

// IRepositories groups every repository of one store, or of one open transaction.
type IRepositories interface {
	Projects() IProjectRepository
	ProjectServices() IProjectServiceRepository
	Quotes() IQuoteRepository
	Invoices() IInvoiceRepository
	FinanceLines() IFinanceLineRepository
	Tasks() ITaskRepository
	Businesses() IBusinessRepository
	Catalog() ICatalogRepository
	Sequences() ISequenceRepository
}

// IStore is the data-access interface of the engine.
//
// WithinTransaction runs fn as one atomic unit of work: either every write fn performed
// through tx is persisted, or none is. Reads through the store itself are unsynchronized.
type IStore interface {
	IRepositories
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx IRepositories) error) error
}
