// Package memory is an in-memory implementation of the data-access ports.
//
// Transactions are serialized: WithinTransaction holds the write lock, works on a deep
// copy of the state and swaps it in only when fn succeeds. Updates still check the
// version that was read, so stale writes from earlier reads are reported as conflicts.
package memory

import (
	"context"
	"sort"
	"sync"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"
)

type state struct {
	projects     map[string]entities.Project
	services     map[string]entities.ProjectService
	quotes       map[string]entities.Quote
	invoices     map[string]entities.Invoice
	financeLines map[string]entities.FinanceLine
	tasks        map[string]entities.Task
	businesses   map[string]entities.BusinessSettings
	catalog      map[string]entities.CatalogService
	sequences    map[string]int64
}

func newState() state {
	return state{
		projects:     map[string]entities.Project{},
		services:     map[string]entities.ProjectService{},
		quotes:       map[string]entities.Quote{},
		invoices:     map[string]entities.Invoice{},
		financeLines: map[string]entities.FinanceLine{},
		tasks:        map[string]entities.Task{},
		businesses:   map[string]entities.BusinessSettings{},
		catalog:      map[string]entities.CatalogService{},
		sequences:    map[string]int64{},
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.projects {
		c.projects[k] = cloneProject(v)
	}
	for k, v := range s.services {
		c.services[k] = cloneProjectService(v)
	}
	for k, v := range s.quotes {
		c.quotes[k] = cloneQuote(v)
	}
	for k, v := range s.invoices {
		c.invoices[k] = cloneInvoice(v)
	}
	for k, v := range s.financeLines {
		c.financeLines[k] = cloneFinanceLine(v)
	}
	for k, v := range s.tasks {
		c.tasks[k] = v
	}
	for k, v := range s.businesses {
		c.businesses[k] = v
	}
	for k, v := range s.catalog {
		c.catalog[k] = cloneCatalogService(v)
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	return c
}

// accessor runs reads and writes against some state: the live store state under its
// lock, or a transaction's private copy.
type accessor interface {
	read(fn func(st *state))
	write(fn func(st *state) error) error
}

// Store is the in-memory data store.
type Store struct {
	mu    sync.RWMutex
	state state
	repos
}

var _ interfaces.IStore = (*Store)(nil)

func New() *Store {
	s := &Store{state: newState()}
	s.repos = repos{a: storeAccessor{s: s}}
	return s
}

// WithinTransaction runs fn against a private copy of the state and commits it when fn
// returns nil.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx interfaces.IRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txAccessor{state: s.state.clone()}
	if err := fn(ctx, repos{a: tx}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

// PutBusiness stores business settings; settings are managed outside the engine.
func (s *Store) PutBusiness(b entities.BusinessSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.businesses[b.ID] = b
}

// PutCatalogService stores a catalog service.
func (s *Store) PutCatalogService(c entities.CatalogService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.catalog[c.ID] = cloneCatalogService(c)
}

// PutFinanceLine stores a finance line.
func (s *Store) PutFinanceLine(f entities.FinanceLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.financeLines[f.ID] = cloneFinanceLine(f)
}

type storeAccessor struct{ s *Store }

func (a storeAccessor) read(fn func(st *state)) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	fn(&a.s.state)
}

func (a storeAccessor) write(fn func(st *state) error) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return fn(&a.s.state)
}

type txAccessor struct{ state state }

func (a *txAccessor) read(fn func(st *state))              { fn(&a.state) }
func (a *txAccessor) write(fn func(st *state) error) error { return fn(&a.state) }

type repos struct{ a accessor }

func (r repos) Projects() interfaces.IProjectRepository               { return projectRepo(r) }
func (r repos) ProjectServices() interfaces.IProjectServiceRepository { return projectServiceRepo(r) }
func (r repos) Quotes() interfaces.IQuoteRepository                   { return quoteRepo(r) }
func (r repos) Invoices() interfaces.IInvoiceRepository               { return invoiceRepo(r) }
func (r repos) FinanceLines() interfaces.IFinanceLineRepository       { return financeLineRepo(r) }
func (r repos) Tasks() interfaces.ITaskRepository                     { return taskRepo(r) }
func (r repos) Businesses() interfaces.IBusinessRepository            { return businessRepo(r) }
func (r repos) Catalog() interfaces.ICatalogRepository                { return catalogRepo(r) }
func (r repos) Sequences() interfaces.ISequenceRepository             { return sequenceRepo(r) }

// byCreated sorts entities by creation time then id.
func byCreated[T any](items []T, key func(T) (int64, string)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if ti != tj {
			return ti < tj
		}
		return idi < idj
	})
}
