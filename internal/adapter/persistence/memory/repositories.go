package memory

import (
	"context"
	"sort"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/errs"
)

type (
	projectRepo        repos
	projectServiceRepo repos
	quoteRepo          repos
	invoiceRepo        repos
	financeLineRepo    repos
	taskRepo           repos
	businessRepo       repos
	catalogRepo        repos
	sequenceRepo       repos
)

func (r projectRepo) GetByID(_ context.Context, businessID, id string) (entities.Project, error) {
	var out entities.Project
	r.a.read(func(st *state) {
		if p, ok := st.projects[id]; ok && p.BusinessID == businessID {
			out = cloneProject(p)
		}
	})
	return out, nil
}

func (r projectRepo) Create(_ context.Context, p entities.Project) (entities.Project, error) {
	err := r.a.write(func(st *state) error {
		if _, exists := st.projects[p.ID]; exists {
			return errs.Conflict("project", p.ID)
		}
		p.Version = 1
		st.projects[p.ID] = cloneProject(p)
		return nil
	})
	if err != nil {
		return entities.Project{}, err
	}
	return p, nil
}

func (r projectRepo) Update(_ context.Context, p entities.Project) (entities.Project, error) {
	err := r.a.write(func(st *state) error {
		stored, ok := st.projects[p.ID]
		if !ok || stored.BusinessID != p.BusinessID {
			return errs.NotFound("project", p.ID)
		}
		if stored.Version != p.Version {
			return errs.Conflict("project", p.ID)
		}
		p.Version++
		st.projects[p.ID] = cloneProject(p)
		return nil
	})
	if err != nil {
		return entities.Project{}, err
	}
	return p, nil
}

func (r projectRepo) Delete(_ context.Context, p entities.Project) error {
	return r.a.write(func(st *state) error {
		stored, ok := st.projects[p.ID]
		if !ok || stored.BusinessID != p.BusinessID {
			return errs.NotFound("project", p.ID)
		}
		if stored.Version != p.Version {
			return errs.Conflict("project", p.ID)
		}
		delete(st.projects, p.ID)
		return nil
	})
}

func (r projectServiceRepo) GetByID(_ context.Context, businessID, id string) (entities.ProjectService, error) {
	var out entities.ProjectService
	r.a.read(func(st *state) {
		if s, ok := st.services[id]; ok && s.BusinessID == businessID {
			out = cloneProjectService(s)
		}
	})
	return out, nil
}

func (r projectServiceRepo) ListByProject(_ context.Context, businessID, projectID string) ([]entities.ProjectService, error) {
	var out []entities.ProjectService
	r.a.read(func(st *state) {
		for _, s := range st.services {
			if s.BusinessID == businessID && s.ProjectID == projectID {
				out = append(out, cloneProjectService(s))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r projectServiceRepo) Create(_ context.Context, s entities.ProjectService) (entities.ProjectService, error) {
	err := r.a.write(func(st *state) error {
		if _, exists := st.services[s.ID]; exists {
			return errs.Conflict("project_service", s.ID)
		}
		s.Version = 1
		st.services[s.ID] = cloneProjectService(s)
		return nil
	})
	if err != nil {
		return entities.ProjectService{}, err
	}
	return s, nil
}

func (r projectServiceRepo) Update(_ context.Context, s entities.ProjectService) (entities.ProjectService, error) {
	err := r.a.write(func(st *state) error {
		stored, ok := st.services[s.ID]
		if !ok || stored.BusinessID != s.BusinessID {
			return errs.NotFound("project_service", s.ID)
		}
		if stored.Version != s.Version {
			return errs.Conflict("project_service", s.ID)
		}
		s.Version++
		st.services[s.ID] = cloneProjectService(s)
		return nil
	})
	if err != nil {
		return entities.ProjectService{}, err
	}
	return s, nil
}

func (r projectServiceRepo) Delete(_ context.Context, s entities.ProjectService) error {
	return r.a.write(func(st *state) error {
		stored, ok := st.services[s.ID]
		if !ok || stored.BusinessID != s.BusinessID {
			return errs.NotFound("project_service", s.ID)
		}
		if stored.Version != s.Version {
			return errs.Conflict("project_service", s.ID)
		}
		delete(st.services, s.ID)
		return nil
	})
}

func (r projectServiceRepo) DeleteByProject(_ context.Context, businessID, projectID string) error {
	return r.a.write(func(st *state) error {
		for id, s := range st.services {
			if s.BusinessID == businessID && s.ProjectID == projectID {
				delete(st.services, id)
			}
		}
		return nil
	})
}

func (r quoteRepo) GetByID(_ context.Context, businessID, id string) (entities.Quote, error) {
	var out entities.Quote
	r.a.read(func(st *state) {
		if q, ok := st.quotes[id]; ok && q.BusinessID == businessID {
			out = cloneQuote(q)
		}
	})
	return out, nil
}

func (r quoteRepo) ListByProject(_ context.Context, businessID, projectID string) ([]entities.Quote, error) {
	var out []entities.Quote
	r.a.read(func(st *state) {
		for _, q := range st.quotes {
			if q.BusinessID == businessID && q.ProjectID == projectID {
				out = append(out, cloneQuote(q))
			}
		}
	})
	byCreated(out, func(q entities.Quote) (int64, string) { return q.CreatedAt.UnixNano(), q.ID })
	return out, nil
}

func (r quoteRepo) ListSentExpiredBefore(_ context.Context, t time.Time) ([]entities.Quote, error) {
	var out []entities.Quote
	r.a.read(func(st *state) {
		for _, q := range st.quotes {
			if q.Status == entities.QuoteStatusSent && q.ExpiresAt != nil && q.ExpiresAt.Before(t) {
				out = append(out, cloneQuote(q))
			}
		}
	})
	byCreated(out, func(q entities.Quote) (int64, string) { return q.CreatedAt.UnixNano(), q.ID })
	return out, nil
}

func (r quoteRepo) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	err := r.a.write(func(st *state) error {
		if _, exists := st.quotes[q.ID]; exists {
			return errs.Conflict("quote", q.ID)
		}
		q.Version = 1
		st.quotes[q.ID] = cloneQuote(q)
		return nil
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r quoteRepo) Update(_ context.Context, q entities.Quote) (entities.Quote, error) {
	err := r.a.write(func(st *state) error {
		stored, ok := st.quotes[q.ID]
		if !ok || stored.BusinessID != q.BusinessID {
			return errs.NotFound("quote", q.ID)
		}
		if stored.Version != q.Version {
			return errs.Conflict("quote", q.ID)
		}
		q.Version++
		st.quotes[q.ID] = cloneQuote(q)
		return nil
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r invoiceRepo) GetByID(_ context.Context, businessID, id string) (entities.Invoice, error) {
	var out entities.Invoice
	r.a.read(func(st *state) {
		if inv, ok := st.invoices[id]; ok && inv.BusinessID == businessID {
			out = cloneInvoice(inv)
		}
	})
	return out, nil
}

func (r invoiceRepo) ListByProject(_ context.Context, businessID, projectID string) ([]entities.Invoice, error) {
	var out []entities.Invoice
	r.a.read(func(st *state) {
		for _, inv := range st.invoices {
			if inv.BusinessID == businessID && inv.ProjectID == projectID {
				out = append(out, cloneInvoice(inv))
			}
		}
	})
	byCreated(out, func(inv entities.Invoice) (int64, string) { return inv.CreatedAt.UnixNano(), inv.ID })
	return out, nil
}

func (r invoiceRepo) Create(_ context.Context, inv entities.Invoice) (entities.Invoice, error) {
	err := r.a.write(func(st *state) error {
		if _, exists := st.invoices[inv.ID]; exists {
			return errs.Conflict("invoice", inv.ID)
		}
		inv.Version = 1
		st.invoices[inv.ID] = cloneInvoice(inv)
		return nil
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r invoiceRepo) Update(_ context.Context, inv entities.Invoice) (entities.Invoice, error) {
	err := r.a.write(func(st *state) error {
		stored, ok := st.invoices[inv.ID]
		if !ok || stored.BusinessID != inv.BusinessID {
			return errs.NotFound("invoice", inv.ID)
		}
		if stored.Version != inv.Version {
			return errs.Conflict("invoice", inv.ID)
		}
		inv.Version++
		st.invoices[inv.ID] = cloneInvoice(inv)
		return nil
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r financeLineRepo) ListByProject(_ context.Context, businessID, projectID string) ([]entities.FinanceLine, error) {
	var out []entities.FinanceLine
	r.a.read(func(st *state) {
		for _, f := range st.financeLines {
			if f.BusinessID == businessID && f.ProjectID != nil && *f.ProjectID == projectID {
				out = append(out, cloneFinanceLine(f))
			}
		}
	})
	byCreated(out, func(f entities.FinanceLine) (int64, string) { return f.Date.UnixNano(), f.ID })
	return out, nil
}

func (r taskRepo) CreateBatch(_ context.Context, tasks []entities.Task) error {
	return r.a.write(func(st *state) error {
		for _, t := range tasks {
			if _, exists := st.tasks[t.ID]; exists {
				return errs.Conflict("task", t.ID)
			}
		}
		for _, t := range tasks {
			st.tasks[t.ID] = t
		}
		return nil
	})
}

func (r taskRepo) ListByProject(_ context.Context, businessID, projectID string) ([]entities.Task, error) {
	var out []entities.Task
	r.a.read(func(st *state) {
		for _, t := range st.tasks {
			if t.BusinessID == businessID && t.ProjectID == projectID {
				out = append(out, t)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r businessRepo) GetSettings(_ context.Context, businessID string) (entities.BusinessSettings, error) {
	var out entities.BusinessSettings
	r.a.read(func(st *state) {
		out = st.businesses[businessID]
	})
	return out, nil
}

func (r catalogRepo) GetServices(_ context.Context, businessID string, ids []string) (map[string]entities.CatalogService, error) {
	out := make(map[string]entities.CatalogService, len(ids))
	r.a.read(func(st *state) {
		for _, id := range ids {
			if c, ok := st.catalog[id]; ok && c.BusinessID == businessID {
				out[id] = cloneCatalogService(c)
			}
		}
	})
	return out, nil
}

func (r sequenceRepo) Next(_ context.Context, businessID, name string) (int64, error) {
	var n int64
	err := r.a.write(func(st *state) error {
		key := businessID + "#" + name
		st.sequences[key]++
		n = st.sequences[key]
		return nil
	})
	return n, err
}
