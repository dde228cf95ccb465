package gormstore

import (
	"context"
	"errors"
	"time"

	"project_billing/internal/domain/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (r projectRepo) GetByID(ctx context.Context, businessID, id string) (entities.Project, error) {
	var m projectModel
	ok, err := getRow(ctx, repos(r), &m, businessID, id)
	if !ok {
		return entities.Project{}, err
	}
	return m.toEntity(), nil
}

func (r projectRepo) Create(ctx context.Context, p entities.Project) (entities.Project, error) {
	p.Version = 1
	m := toProjectModel(p)
	if err := createRow(ctx, r.db, &m, "project", p.ID); err != nil {
		return entities.Project{}, err
	}
	return p, nil
}

func (r projectRepo) Update(ctx context.Context, p entities.Project) (entities.Project, error) {
	expected := p.Version
	p.Version++
	m := toProjectModel(p)
	if err := updateRow(ctx, r.db, m.TableName(), &m, "project", p.ID, p.BusinessID, expected); err != nil {
		return entities.Project{}, err
	}
	return p, nil
}

func (r projectRepo) Delete(ctx context.Context, p entities.Project) error {
	return deleteRow(ctx, r.db, projectModel{}.TableName(), &projectModel{}, "project", p.ID, p.BusinessID, p.Version)
}

func (r projectServiceRepo) GetByID(ctx context.Context, businessID, id string) (entities.ProjectService, error) {
	var m projectServiceModel
	ok, err := getRow(ctx, repos(r), &m, businessID, id)
	if !ok {
		return entities.ProjectService{}, err
	}
	return m.toEntity(), nil
}

func (r projectServiceRepo) ListByProject(ctx context.Context, businessID, projectID string) ([]entities.ProjectService, error) {
	var rows []projectServiceModel
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND project_id = ?", businessID, projectID).
		Order("position, created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.ProjectService, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r projectServiceRepo) Create(ctx context.Context, s entities.ProjectService) (entities.ProjectService, error) {
	s.Version = 1
	m := toProjectServiceModel(s)
	if err := createRow(ctx, r.db, &m, "project_service", s.ID); err != nil {
		return entities.ProjectService{}, err
	}
	return s, nil
}

func (r projectServiceRepo) Update(ctx context.Context, s entities.ProjectService) (entities.ProjectService, error) {
	expected := s.Version
	s.Version++
	m := toProjectServiceModel(s)
	if err := updateRow(ctx, r.db, m.TableName(), &m, "project_service", s.ID, s.BusinessID, expected); err != nil {
		return entities.ProjectService{}, err
	}
	return s, nil
}

func (r projectServiceRepo) Delete(ctx context.Context, s entities.ProjectService) error {
	return deleteRow(ctx, r.db, projectServiceModel{}.TableName(), &projectServiceModel{}, "project_service", s.ID, s.BusinessID, s.Version)
}

func (r projectServiceRepo) DeleteByProject(ctx context.Context, businessID, projectID string) error {
	return r.db.WithContext(ctx).
		Where("business_id = ? AND project_id = ?", businessID, projectID).
		Delete(&projectServiceModel{}).Error
}

func (r quoteRepo) GetByID(ctx context.Context, businessID, id string) (entities.Quote, error) {
	var m quoteModel
	ok, err := getRow(ctx, repos(r), &m, businessID, id)
	if !ok {
		return entities.Quote{}, err
	}
	return m.toEntity(), nil
}

func (r quoteRepo) ListByProject(ctx context.Context, businessID, projectID string) ([]entities.Quote, error) {
	var rows []quoteModel
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND project_id = ?", businessID, projectID).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return quotesOf(rows), nil
}

func (r quoteRepo) ListSentExpiredBefore(ctx context.Context, t time.Time) ([]entities.Quote, error) {
	var rows []quoteModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", string(entities.QuoteStatusSent), t.UTC()).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return quotesOf(rows), nil
}

func quotesOf(rows []quoteModel) []entities.Quote {
	out := make([]entities.Quote, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out
}

func (r quoteRepo) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	q.Version = 1
	m := toQuoteModel(q)
	if err := createRow(ctx, r.db, &m, "quote", q.ID); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r quoteRepo) Update(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	expected := q.Version
	q.Version++
	m := toQuoteModel(q)
	if err := updateRow(ctx, r.db, m.TableName(), &m, "quote", q.ID, q.BusinessID, expected); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r invoiceRepo) GetByID(ctx context.Context, businessID, id string) (entities.Invoice, error) {
	var m invoiceModel
	ok, err := getRow(ctx, repos(r), &m, businessID, id)
	if !ok {
		return entities.Invoice{}, err
	}
	return m.toEntity(), nil
}

func (r invoiceRepo) ListByProject(ctx context.Context, businessID, projectID string) ([]entities.Invoice, error) {
	var rows []invoiceModel
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND project_id = ?", businessID, projectID).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.Invoice, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r invoiceRepo) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	inv.Version = 1
	m := toInvoiceModel(inv)
	if err := createRow(ctx, r.db, &m, "invoice", inv.ID); err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r invoiceRepo) Update(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	expected := inv.Version
	inv.Version++
	m := toInvoiceModel(inv)
	if err := updateRow(ctx, r.db, m.TableName(), &m, "invoice", inv.ID, inv.BusinessID, expected); err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r financeLineRepo) ListByProject(ctx context.Context, businessID, projectID string) ([]entities.FinanceLine, error) {
	var rows []financeLineModel
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND project_id = ?", businessID, projectID).
		Order("date, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.FinanceLine, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r taskRepo) CreateBatch(ctx context.Context, tasks []entities.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	rows := make([]taskModel, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, toTaskModel(t))
	}
	return createRow(ctx, r.db, &rows, "task", tasks[0].ID)
}

func (r taskRepo) ListByProject(ctx context.Context, businessID, projectID string) ([]entities.Task, error) {
	var rows []taskModel
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND project_id = ?", businessID, projectID).
		Order("position, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.Task, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r businessRepo) GetSettings(ctx context.Context, businessID string) (entities.BusinessSettings, error) {
	var m businessModel
	err := r.db.WithContext(ctx).Where("id = ?", businessID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.BusinessSettings{}, nil
	}
	if err != nil {
		return entities.BusinessSettings{}, err
	}
	return m.toEntity(), nil
}

func (r catalogRepo) GetServices(ctx context.Context, businessID string, ids []string) (map[string]entities.CatalogService, error) {
	out := make(map[string]entities.CatalogService, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []catalogServiceModel
	if err := r.db.WithContext(ctx).Where("business_id = ? AND id IN ?", businessID, ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, m := range rows {
		out[m.ID] = m.toEntity()
	}
	return out, nil
}

// Next runs on the caller's handle, so inside a transaction a rollback also returns
// the number.
func (r sequenceRepo) Next(ctx context.Context, businessID, name string) (int64, error) {
	row := sequenceModel{ID: businessID + "#" + name, Value: 1}
	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{"value": gorm.Expr("sequences.value + 1")}),
	}).Create(&row).Error
	if err != nil {
		return 0, err
	}
	if err := db.Where("id = ?", row.ID).Take(&row).Error; err != nil {
		return 0, err
	}
	return row.Value, nil
}
