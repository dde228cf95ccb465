// Package gormstore persists the billing aggregates in a relational database through gorm.
// Postgres is the production target; SQLite backs the tests and local runs.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"project_billing/internal/domain/errs"
	"project_billing/internal/usecase/interfaces"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

var _ interfaces.IStore = (*Store)(nil)

// New wraps db. The connection should be opened with TranslateError enabled so
// duplicate keys surface as gorm.ErrDuplicatedKey.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the tables of every aggregate.
func (s *Store) AutoMigrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(allModels()...)
}

// WithinTransaction runs fn in one database transaction. Rows loaded by id inside it
// are locked FOR UPDATE until commit, so a precondition checked on a row the
// transaction does not write still holds when it commits.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx interfaces.IRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, repos{db: tx, lock: true})
	})
}

func (s *Store) Projects() interfaces.IProjectRepository { return repos{db: s.db}.Projects() }
func (s *Store) ProjectServices() interfaces.IProjectServiceRepository {
	return repos{db: s.db}.ProjectServices()
}
func (s *Store) Quotes() interfaces.IQuoteRepository     { return repos{db: s.db}.Quotes() }
func (s *Store) Invoices() interfaces.IInvoiceRepository { return repos{db: s.db}.Invoices() }
func (s *Store) FinanceLines() interfaces.IFinanceLineRepository {
	return repos{db: s.db}.FinanceLines()
}
func (s *Store) Tasks() interfaces.ITaskRepository          { return repos{db: s.db}.Tasks() }
func (s *Store) Businesses() interfaces.IBusinessRepository { return repos{db: s.db}.Businesses() }
func (s *Store) Catalog() interfaces.ICatalogRepository     { return repos{db: s.db}.Catalog() }
func (s *Store) Sequences() interfaces.ISequenceRepository  { return repos{db: s.db}.Sequences() }

type repos struct {
	db   *gorm.DB
	lock bool
}

func (r repos) Projects() interfaces.IProjectRepository               { return projectRepo(r) }
func (r repos) ProjectServices() interfaces.IProjectServiceRepository { return projectServiceRepo(r) }
func (r repos) Quotes() interfaces.IQuoteRepository                   { return quoteRepo(r) }
func (r repos) Invoices() interfaces.IInvoiceRepository               { return invoiceRepo(r) }
func (r repos) FinanceLines() interfaces.IFinanceLineRepository       { return financeLineRepo(r) }
func (r repos) Tasks() interfaces.ITaskRepository                     { return taskRepo(r) }
func (r repos) Businesses() interfaces.IBusinessRepository            { return businessRepo(r) }
func (r repos) Catalog() interfaces.ICatalogRepository                { return catalogRepo(r) }
func (r repos) Sequences() interfaces.ISequenceRepository             { return sequenceRepo(r) }

// getRow loads the row with id into dest. It reports false when the row is missing or
// belongs to another business.
func getRow(ctx context.Context, r repos, dest any, businessID, id string) (bool, error) {
	err := rowScope(ctx, r).Where("id = ? AND business_id = ?", id, businessID).Take(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// rowScope is the handle single-row reads go through.
func rowScope(ctx context.Context, r repos) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.lock {
		db = lockRows(db)
	}
	return db
}

// lockRows adds FOR UPDATE to the query. SQLite has no row locks; its write
// transactions are serialized by the database lock.
func lockRows(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func createRow(ctx context.Context, db *gorm.DB, row any, entity, id string) error {
	err := db.WithContext(ctx).Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.Conflict(entity, id)
	}
	return err
}

// updateRow overwrites every column of row when the stored version is expected.
func updateRow(ctx context.Context, db *gorm.DB, table string, row any, entity, id, businessID string, expected int64) error {
	res := db.WithContext(ctx).Model(row).
		Where("business_id = ? AND version = ?", businessID, expected).
		Select("*").
		Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return missingOrStale(ctx, db, table, entity, id, businessID)
	}
	return nil
}

func deleteRow(ctx context.Context, db *gorm.DB, table string, model any, entity, id, businessID string, expected int64) error {
	res := db.WithContext(ctx).
		Where("id = ? AND business_id = ? AND version = ?", id, businessID, expected).
		Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return missingOrStale(ctx, db, table, entity, id, businessID)
	}
	return nil
}

func missingOrStale(ctx context.Context, db *gorm.DB, table, entity, id, businessID string) error {
	var n int64
	if err := db.WithContext(ctx).Table(table).Where("id = ? AND business_id = ?", id, businessID).Count(&n).Error; err != nil {
		return fmt.Errorf("check %s %s: %w", entity, id, err)
	}
	if n == 0 {
		return errs.NotFound(entity, id)
	}
	return errs.Conflict(entity, id)
}
