package gormstore

import (
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/money"

	"gorm.io/datatypes"
)

type projectModel struct {
	ID             string `gorm:"primaryKey;size:64"`
	BusinessID     string `gorm:"size:64;index;not null"`
	ClientID       *string
	Name           string `gorm:"not null"`
	Status         string `gorm:"size:20;not null"`
	QuoteStatus    string `gorm:"size:20;not null"`
	DepositStatus  string `gorm:"size:20;not null"`
	DepositPaidAt  *time.Time
	BillingQuoteID *string
	StartedAt      *time.Time
	ArchivedAt     *time.Time
	StartDate      *time.Time
	EndDate        *time.Time
	CategoryID     *string
	TagIDs         datatypes.JSONType[[]string]
	Version        int64     `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
}

func (projectModel) TableName() string { return "projects" }

type projectServiceModel struct {
	ID                 string `gorm:"primaryKey;size:64"`
	BusinessID         string `gorm:"size:64;index:idx_project_services_project,priority:1;not null"`
	ProjectID          string `gorm:"size:64;index:idx_project_services_project,priority:2;not null"`
	ServiceID          string `gorm:"size:64;not null"`
	Quantity           int
	PriceCentsOverride *int64
	Notes              string
	Position           int
	Version            int64     `gorm:"not null"`
	CreatedAt          time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
}

func (projectServiceModel) TableName() string { return "project_services" }

type lineRow struct {
	ProjectServiceID string `json:"project_service_id,omitempty"`
	ServiceID        string `json:"service_id,omitempty"`
	Label            string `json:"label"`
	Quantity         int    `json:"quantity"`
	UnitPriceCents   int64  `json:"unit_price_cents"`
	TotalCents       int64  `json:"total_cents"`
}

type chargeRow struct {
	ProviderPaymentID string    `json:"provider_payment_id"`
	AmountCents       int64     `json:"amount_cents"`
	Applied           bool      `json:"applied"`
	ChargedAt         time.Time `json:"charged_at"`
}

type quoteModel struct {
	ID             string `gorm:"primaryKey;size:64"`
	BusinessID     string `gorm:"size:64;index:idx_quotes_project,priority:1;not null"`
	ProjectID      string `gorm:"size:64;index:idx_quotes_project,priority:2;not null"`
	ClientID       *string
	Status         string  `gorm:"size:20;index:idx_quotes_expiry,priority:1;not null"`
	Number         *string `gorm:"size:32"`
	DepositPercent int
	Currency       string `gorm:"size:3"`
	TotalCents     int64
	DepositCents   int64
	BalanceCents   int64
	Items          datatypes.JSONType[[]lineRow]
	IssuedAt       *time.Time
	ExpiresAt      *time.Time `gorm:"index:idx_quotes_expiry,priority:2"`
	SignedAt       *time.Time
	Version        int64     `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
}

func (quoteModel) TableName() string { return "quotes" }

type invoiceModel struct {
	ID                 string `gorm:"primaryKey;size:64"`
	BusinessID         string `gorm:"size:64;index:idx_invoices_project,priority:1;not null"`
	ProjectID          string `gorm:"size:64;index:idx_invoices_project,priority:2;not null"`
	ClientID           *string
	QuoteID            *string
	Status             string  `gorm:"size:20;not null"`
	Number             *string `gorm:"size:32"`
	DepositPercent     int
	Currency           string `gorm:"size:3"`
	TotalCents         int64
	DepositCents       int64
	BalanceCents       int64
	PaidCents          int64
	RemainingCents     int64
	Items              datatypes.JSONType[[]lineRow]
	IssuedAt           *time.Time
	DueAt              *time.Time
	PaidAt             *time.Time
	ConsumptionEntryID *string
	CashSaleEntryID    *string
	Charges            datatypes.JSONType[[]chargeRow]
	Version            int64     `gorm:"not null"`
	CreatedAt          time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
}

func (invoiceModel) TableName() string { return "invoices" }

type financeLineModel struct {
	ID          string  `gorm:"primaryKey;size:64"`
	BusinessID  string  `gorm:"size:64;index:idx_finance_lines_project,priority:1;not null"`
	ProjectID   *string `gorm:"size:64;index:idx_finance_lines_project,priority:2"`
	InvoiceID   *string
	Type        string `gorm:"size:10;not null"`
	AmountCents int64
	Category    string
	Date        time.Time
}

func (financeLineModel) TableName() string { return "finance_lines" }

type taskModel struct {
	ID               string `gorm:"primaryKey;size:64"`
	BusinessID       string `gorm:"size:64;index:idx_tasks_project,priority:1;not null"`
	ProjectID        string `gorm:"size:64;index:idx_tasks_project,priority:2;not null"`
	ProjectServiceID string `gorm:"size:64"`
	Title            string
	Description      string
	Phase            string `gorm:"size:20"`
	Status           string `gorm:"size:10"`
	Position         int
	CreatedAt        time.Time `gorm:"autoCreateTime:false"`
}

func (taskModel) TableName() string { return "tasks" }

type businessModel struct {
	ID                    string `gorm:"primaryKey;size:64"`
	Currency              string `gorm:"size:3"`
	DefaultDepositPercent int
	PaymentTermsDays      int
	QuoteValidityDays     int
}

func (businessModel) TableName() string { return "businesses" }

type catalogServiceModel struct {
	ID                string `gorm:"primaryKey;size:64"`
	BusinessID        string `gorm:"size:64;index;not null"`
	Name              string
	DefaultPriceCents *int64
	TaskTemplate      *datatypes.JSONType[entities.TaskTemplate]
}

func (catalogServiceModel) TableName() string { return "catalog_services" }

type sequenceModel struct {
	ID    string `gorm:"primaryKey;size:160"`
	Value int64  `gorm:"not null"`
}

func (sequenceModel) TableName() string { return "sequences" }

func allModels() []any {
	return []any{
		&projectModel{}, &projectServiceModel{}, &quoteModel{}, &invoiceModel{},
		&financeLineModel{}, &taskModel{}, &businessModel{}, &catalogServiceModel{}, &sequenceModel{},
	}
}

func toLineRows(items []entities.LineItem) []lineRow {
	out := make([]lineRow, 0, len(items))
	for _, l := range items {
		out = append(out, lineRow{
			ProjectServiceID: l.ProjectServiceID,
			ServiceID:        l.ServiceID,
			Label:            l.Label,
			Quantity:         l.Quantity,
			UnitPriceCents:   int64(l.UnitPriceCents),
			TotalCents:       int64(l.TotalCents),
		})
	}
	return out
}

func fromLineRows(rows []lineRow) []entities.LineItem {
	out := make([]entities.LineItem, 0, len(rows))
	for _, l := range rows {
		out = append(out, entities.LineItem{
			ProjectServiceID: l.ProjectServiceID,
			ServiceID:        l.ServiceID,
			Label:            l.Label,
			Quantity:         l.Quantity,
			UnitPriceCents:   money.Cents(l.UnitPriceCents),
			TotalCents:       money.Cents(l.TotalCents),
		})
	}
	return out
}

func toChargeRows(charges []entities.ProviderCharge) []chargeRow {
	out := make([]chargeRow, 0, len(charges))
	for _, c := range charges {
		out = append(out, chargeRow{
			ProviderPaymentID: c.ProviderPaymentID,
			AmountCents:       int64(c.AmountCents),
			Applied:           c.Applied,
			ChargedAt:         c.ChargedAt.UTC(),
		})
	}
	return out
}

func fromChargeRows(rows []chargeRow) []entities.ProviderCharge {
	if len(rows) == 0 {
		return nil
	}
	out := make([]entities.ProviderCharge, 0, len(rows))
	for _, c := range rows {
		out = append(out, entities.ProviderCharge{
			ProviderPaymentID: c.ProviderPaymentID,
			AmountCents:       money.Cents(c.AmountCents),
			Applied:           c.Applied,
			ChargedAt:         c.ChargedAt.UTC(),
		})
	}
	return out
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func centsToInt(c *money.Cents) *int64 {
	if c == nil {
		return nil
	}
	v := int64(*c)
	return &v
}

func intToCents(v *int64) *money.Cents {
	if v == nil {
		return nil
	}
	c := money.Cents(*v)
	return &c
}

func toProjectModel(p entities.Project) projectModel {
	return projectModel{
		ID:             p.ID,
		BusinessID:     p.BusinessID,
		ClientID:       p.ClientID,
		Name:           p.Name,
		Status:         string(p.Status),
		QuoteStatus:    string(p.QuoteStatus),
		DepositStatus:  string(p.DepositStatus),
		DepositPaidAt:  utc(p.DepositPaidAt),
		BillingQuoteID: p.BillingQuoteID,
		StartedAt:      utc(p.StartedAt),
		ArchivedAt:     utc(p.ArchivedAt),
		StartDate:      utc(p.StartDate),
		EndDate:        utc(p.EndDate),
		CategoryID:     p.CategoryID,
		TagIDs:         datatypes.NewJSONType(p.TagIDs),
		Version:        p.Version,
		CreatedAt:      p.CreatedAt.UTC(),
		UpdatedAt:      p.UpdatedAt.UTC(),
	}
}

func (m projectModel) toEntity() entities.Project {
	return entities.Project{
		ID:             m.ID,
		BusinessID:     m.BusinessID,
		ClientID:       m.ClientID,
		Name:           m.Name,
		Status:         entities.ProjectStatus(m.Status),
		QuoteStatus:    entities.ProjectQuoteStatus(m.QuoteStatus),
		DepositStatus:  entities.DepositStatus(m.DepositStatus),
		DepositPaidAt:  utc(m.DepositPaidAt),
		BillingQuoteID: m.BillingQuoteID,
		StartedAt:      utc(m.StartedAt),
		ArchivedAt:     utc(m.ArchivedAt),
		StartDate:      utc(m.StartDate),
		EndDate:        utc(m.EndDate),
		CategoryID:     m.CategoryID,
		TagIDs:         m.TagIDs.Data(),
		Version:        m.Version,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

func toProjectServiceModel(s entities.ProjectService) projectServiceModel {
	return projectServiceModel{
		ID:                 s.ID,
		BusinessID:         s.BusinessID,
		ProjectID:          s.ProjectID,
		ServiceID:          s.ServiceID,
		Quantity:           s.Quantity,
		PriceCentsOverride: centsToInt(s.PriceCentsOverride),
		Notes:              s.Notes,
		Position:           s.Position,
		Version:            s.Version,
		CreatedAt:          s.CreatedAt.UTC(),
		UpdatedAt:          s.UpdatedAt.UTC(),
	}
}

func (m projectServiceModel) toEntity() entities.ProjectService {
	return entities.ProjectService{
		ID:                 m.ID,
		BusinessID:         m.BusinessID,
		ProjectID:          m.ProjectID,
		ServiceID:          m.ServiceID,
		Quantity:           m.Quantity,
		PriceCentsOverride: intToCents(m.PriceCentsOverride),
		Notes:              m.Notes,
		Position:           m.Position,
		Version:            m.Version,
		CreatedAt:          m.CreatedAt.UTC(),
		UpdatedAt:          m.UpdatedAt.UTC(),
	}
}

func toQuoteModel(q entities.Quote) quoteModel {
	return quoteModel{
		ID:             q.ID,
		BusinessID:     q.BusinessID,
		ProjectID:      q.ProjectID,
		ClientID:       q.ClientID,
		Status:         string(q.Status),
		Number:         q.Number,
		DepositPercent: q.DepositPercent,
		Currency:       string(q.Currency),
		TotalCents:     int64(q.TotalCents),
		DepositCents:   int64(q.DepositCents),
		BalanceCents:   int64(q.BalanceCents),
		Items:          datatypes.NewJSONType(toLineRows(q.Items)),
		IssuedAt:       utc(q.IssuedAt),
		ExpiresAt:      utc(q.ExpiresAt),
		SignedAt:       utc(q.SignedAt),
		Version:        q.Version,
		CreatedAt:      q.CreatedAt.UTC(),
		UpdatedAt:      q.UpdatedAt.UTC(),
	}
}

func (m quoteModel) toEntity() entities.Quote {
	return entities.Quote{
		ID:             m.ID,
		BusinessID:     m.BusinessID,
		ProjectID:      m.ProjectID,
		ClientID:       m.ClientID,
		Status:         entities.QuoteStatus(m.Status),
		Number:         m.Number,
		DepositPercent: m.DepositPercent,
		Currency:       money.Currency(m.Currency),
		TotalCents:     money.Cents(m.TotalCents),
		DepositCents:   money.Cents(m.DepositCents),
		BalanceCents:   money.Cents(m.BalanceCents),
		Items:          fromLineRows(m.Items.Data()),
		IssuedAt:       utc(m.IssuedAt),
		ExpiresAt:      utc(m.ExpiresAt),
		SignedAt:       utc(m.SignedAt),
		Version:        m.Version,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

func toInvoiceModel(inv entities.Invoice) invoiceModel {
	return invoiceModel{
		ID:                 inv.ID,
		BusinessID:         inv.BusinessID,
		ProjectID:          inv.ProjectID,
		ClientID:           inv.ClientID,
		QuoteID:            inv.QuoteID,
		Status:             string(inv.Status),
		Number:             inv.Number,
		DepositPercent:     inv.DepositPercent,
		Currency:           string(inv.Currency),
		TotalCents:         int64(inv.TotalCents),
		DepositCents:       int64(inv.DepositCents),
		BalanceCents:       int64(inv.BalanceCents),
		PaidCents:          int64(inv.PaidCents),
		RemainingCents:     int64(inv.RemainingCents),
		Items:              datatypes.NewJSONType(toLineRows(inv.Items)),
		IssuedAt:           utc(inv.IssuedAt),
		DueAt:              utc(inv.DueAt),
		PaidAt:             utc(inv.PaidAt),
		ConsumptionEntryID: inv.ConsumptionEntryID,
		CashSaleEntryID:    inv.CashSaleEntryID,
		Charges:            datatypes.NewJSONType(toChargeRows(inv.Charges)),
		Version:            inv.Version,
		CreatedAt:          inv.CreatedAt.UTC(),
		UpdatedAt:          inv.UpdatedAt.UTC(),
	}
}

func (m invoiceModel) toEntity() entities.Invoice {
	return entities.Invoice{
		ID:                 m.ID,
		BusinessID:         m.BusinessID,
		ProjectID:          m.ProjectID,
		ClientID:           m.ClientID,
		QuoteID:            m.QuoteID,
		Status:             entities.InvoiceStatus(m.Status),
		Number:             m.Number,
		DepositPercent:     m.DepositPercent,
		Currency:           money.Currency(m.Currency),
		TotalCents:         money.Cents(m.TotalCents),
		DepositCents:       money.Cents(m.DepositCents),
		BalanceCents:       money.Cents(m.BalanceCents),
		PaidCents:          money.Cents(m.PaidCents),
		RemainingCents:     money.Cents(m.RemainingCents),
		Items:              fromLineRows(m.Items.Data()),
		IssuedAt:           utc(m.IssuedAt),
		DueAt:              utc(m.DueAt),
		PaidAt:             utc(m.PaidAt),
		ConsumptionEntryID: m.ConsumptionEntryID,
		CashSaleEntryID:    m.CashSaleEntryID,
		Charges:            fromChargeRows(m.Charges.Data()),
		Version:            m.Version,
		CreatedAt:          m.CreatedAt.UTC(),
		UpdatedAt:          m.UpdatedAt.UTC(),
	}
}

func (m financeLineModel) toEntity() entities.FinanceLine {
	return entities.FinanceLine{
		ID:          m.ID,
		BusinessID:  m.BusinessID,
		ProjectID:   m.ProjectID,
		InvoiceID:   m.InvoiceID,
		Type:        entities.FinanceLineType(m.Type),
		AmountCents: money.Cents(m.AmountCents),
		Category:    m.Category,
		Date:        m.Date.UTC(),
	}
}

func toTaskModel(t entities.Task) taskModel {
	return taskModel{
		ID:               t.ID,
		BusinessID:       t.BusinessID,
		ProjectID:        t.ProjectID,
		ProjectServiceID: t.ProjectServiceID,
		Title:            t.Title,
		Description:      t.Description,
		Phase:            string(t.Phase),
		Status:           string(t.Status),
		Position:         t.Position,
		CreatedAt:        t.CreatedAt.UTC(),
	}
}

func (m taskModel) toEntity() entities.Task {
	return entities.Task{
		ID:               m.ID,
		BusinessID:       m.BusinessID,
		ProjectID:        m.ProjectID,
		ProjectServiceID: m.ProjectServiceID,
		Title:            m.Title,
		Description:      m.Description,
		Phase:            entities.TaskPhase(m.Phase),
		Status:           entities.TaskStatus(m.Status),
		Position:         m.Position,
		CreatedAt:        m.CreatedAt.UTC(),
	}
}

func (m businessModel) toEntity() entities.BusinessSettings {
	return entities.BusinessSettings{
		ID:                    m.ID,
		Currency:              money.Currency(m.Currency),
		DefaultDepositPercent: m.DefaultDepositPercent,
		PaymentTermsDays:      m.PaymentTermsDays,
		QuoteValidityDays:     m.QuoteValidityDays,
	}
}

func (m catalogServiceModel) toEntity() entities.CatalogService {
	c := entities.CatalogService{
		ID:                m.ID,
		BusinessID:        m.BusinessID,
		Name:              m.Name,
		DefaultPriceCents: intToCents(m.DefaultPriceCents),
	}
	if m.TaskTemplate != nil {
		tpl := m.TaskTemplate.Data()
		c.TaskTemplate = &tpl
	}
	return c
}
