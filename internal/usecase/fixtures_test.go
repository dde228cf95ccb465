package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"project_billing/internal/adapter/persistence/memory"
	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/money"
	"project_billing/internal/infrastructure/logger"
)

const testBusiness = "b-1"

var (
	ownerActor  = entities.Actor{ID: "u-owner", BusinessID: testBusiness, Role: entities.RoleOwner}
	adminActor  = entities.Actor{ID: "u-admin", BusinessID: testBusiness, Role: entities.RoleAdmin}
	memberActor = entities.Actor{ID: "u-member", BusinessID: testBusiness, Role: entities.RoleMember}
	viewerActor = entities.Actor{ID: "u-viewer", BusinessID: testBusiness, Role: entities.RoleViewer}
)

// fixture wires use cases to an in-memory store with a controllable clock.
type fixture struct {
	store *memory.Store
	now   time.Time
	ids   int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: memory.New(),
		now:   time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	f.store.PutBusiness(entities.BusinessSettings{
		ID:                    testBusiness,
		Currency:              "EUR",
		DefaultDepositPercent: 30,
		PaymentTermsDays:      15,
		QuoteValidityDays:     20,
	})
	return f
}

func (f *fixture) opts() []Option {
	return []Option{
		WithClock(func() time.Time { return f.now }),
		WithIDGenerator(func() string {
			f.ids++
			return fmt.Sprintf("id-%d", f.ids)
		}),
	}
}

func (f *fixture) advance(d time.Duration) { f.now = f.now.Add(d) }

func (f *fixture) projects() *ProjectUseCase {
	gen := NewTaskGenerator()
	gen.now = func() time.Time { return f.now }
	return NewProjectUseCase(f.store, gen, logger.NewNop(), f.opts()...)
}

func (f *fixture) quotes() *QuoteUseCase {
	return NewQuoteUseCase(f.store, logger.NewNop(), f.opts()...)
}

func (f *fixture) invoices() *InvoiceUseCase {
	return NewInvoiceUseCase(f.store, logger.NewNop(), f.opts()...)
}

func (f *fixture) services() *ProjectServiceUseCase {
	return NewProjectServiceUseCase(f.store, logger.NewNop(), f.opts()...)
}

func (f *fixture) summaries() *BillingSummaryUseCase {
	return NewBillingSummaryUseCase(f.store, logger.NewNop(), f.opts()...)
}

func (f *fixture) catalog(id, name string, price money.Cents, tpl *entities.TaskTemplate) {
	f.store.PutCatalogService(entities.CatalogService{
		ID:                id,
		BusinessID:        testBusiness,
		Name:              name,
		DefaultPriceCents: &price,
		TaskTemplate:      tpl,
	})
}

func (f *fixture) project(t *testing.T) entities.Project {
	t.Helper()
	p, err := f.projects().Create(context.Background(), memberActor, CreateProjectCommand{Name: "Website"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func (f *fixture) sell(t *testing.T, projectID, serviceID string, qty int) entities.ProjectService {
	t.Helper()
	ps, err := f.services().Add(context.Background(), adminActor, AddProjectServiceCommand{
		ProjectID: projectID,
		ServiceID: serviceID,
		Quantity:  qty,
	})
	if err != nil {
		t.Fatalf("add service: %v", err)
	}
	return ps
}

// signedQuote takes a fresh quote of the project through SENT to SIGNED.
func (f *fixture) signedQuote(t *testing.T, projectID string) entities.Quote {
	t.Helper()
	ctx := context.Background()
	uc := f.quotes()
	q, err := uc.Create(ctx, adminActor, CreateQuoteCommand{ProjectID: projectID})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}
	if _, err := uc.Transition(ctx, adminActor, q.ID, entities.QuoteStatusSent); err != nil {
		t.Fatalf("send quote: %v", err)
	}
	q, err = uc.Transition(ctx, adminActor, q.ID, entities.QuoteStatusSigned)
	if err != nil {
		t.Fatalf("sign quote: %v", err)
	}
	return q
}

func (f *fixture) reloadProject(t *testing.T, id string) entities.Project {
	t.Helper()
	p, err := f.store.Projects().GetByID(context.Background(), testBusiness, id)
	if err != nil || p.ID == "" {
		t.Fatalf("reload project %s: %+v %v", id, p, err)
	}
	return p
}
