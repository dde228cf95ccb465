package repository

import (
	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/money"
)

type lineItem struct {
	ProjectServiceID string `dynamodbav:"project_service_id,omitempty"`
	ServiceID        string `dynamodbav:"service_id,omitempty"`
	Label            string `dynamodbav:"label"`
	Quantity         int    `dynamodbav:"quantity"`
	UnitPriceCents   int64  `dynamodbav:"unit_price_cents"`
	TotalCents       int64  `dynamodbav:"total_cents"`
}

type projectItem struct {
	ID             string   `dynamodbav:"id"`
	BusinessID     string   `dynamodbav:"business_id"`
	ClientID       *string  `dynamodbav:"client_id,omitempty"`
	Name           string   `dynamodbav:"name"`
	Status         string   `dynamodbav:"status"`
	QuoteStatus    string   `dynamodbav:"quote_status"`
	DepositStatus  string   `dynamodbav:"deposit_status"`
	DepositPaidAt  string   `dynamodbav:"deposit_paid_at,omitempty"`
	BillingQuoteID *string  `dynamodbav:"billing_quote_id,omitempty"`
	StartedAt      string   `dynamodbav:"started_at,omitempty"`
	ArchivedAt     string   `dynamodbav:"archived_at,omitempty"`
	StartDate      string   `dynamodbav:"start_date,omitempty"`
	EndDate        string   `dynamodbav:"end_date,omitempty"`
	CategoryID     *string  `dynamodbav:"category_id,omitempty"`
	TagIDs         []string `dynamodbav:"tag_ids,omitempty"`
	Version        int64    `dynamodbav:"version"`
	CreatedAt      string   `dynamodbav:"created_at"`
	UpdatedAt      string   `dynamodbav:"updated_at"`
}

type projectServiceItem struct {
	ID                 string `dynamodbav:"id"`
	BusinessID         string `dynamodbav:"business_id"`
	ProjectID          string `dynamodbav:"project_id"`
	ServiceID          string `dynamodbav:"service_id"`
	Quantity           int    `dynamodbav:"quantity"`
	PriceCentsOverride *int64 `dynamodbav:"price_cents_override,omitempty"`
	Notes              string `dynamodbav:"notes,omitempty"`
	Position           int    `dynamodbav:"position"`
	Version            int64  `dynamodbav:"version"`
	CreatedAt          string `dynamodbav:"created_at"`
	UpdatedAt          string `dynamodbav:"updated_at"`
}

type quoteItem struct {
	ID             string     `dynamodbav:"id"`
	BusinessID     string     `dynamodbav:"business_id"`
	ProjectID      string     `dynamodbav:"project_id"`
	ClientID       *string    `dynamodbav:"client_id,omitempty"`
	Status         string     `dynamodbav:"status"`
	Number         *string    `dynamodbav:"number,omitempty"`
	DepositPercent int        `dynamodbav:"deposit_percent"`
	Currency       string     `dynamodbav:"currency"`
	TotalCents     int64      `dynamodbav:"total_cents"`
	DepositCents   int64      `dynamodbav:"deposit_cents"`
	BalanceCents   int64      `dynamodbav:"balance_cents"`
	Items          []lineItem `dynamodbav:"items"`
	IssuedAt       string     `dynamodbav:"issued_at,omitempty"`
	ExpiresAt      string     `dynamodbav:"expires_at,omitempty"`
	SignedAt       string     `dynamodbav:"signed_at,omitempty"`
	Version        int64      `dynamodbav:"version"`
	CreatedAt      string     `dynamodbav:"created_at"`
	UpdatedAt      string     `dynamodbav:"updated_at"`
}

type invoiceItem struct {
	ID                 string       `dynamodbav:"id"`
	BusinessID         string       `dynamodbav:"business_id"`
	ProjectID          string       `dynamodbav:"project_id"`
	ClientID           *string      `dynamodbav:"client_id,omitempty"`
	QuoteID            *string      `dynamodbav:"quote_id,omitempty"`
	Status             string       `dynamodbav:"status"`
	Number             *string      `dynamodbav:"number,omitempty"`
	DepositPercent     int          `dynamodbav:"deposit_percent"`
	Currency           string       `dynamodbav:"currency"`
	TotalCents         int64        `dynamodbav:"total_cents"`
	DepositCents       int64        `dynamodbav:"deposit_cents"`
	BalanceCents       int64        `dynamodbav:"balance_cents"`
	PaidCents          int64        `dynamodbav:"paid_cents"`
	RemainingCents     int64        `dynamodbav:"remaining_cents"`
	Items              []lineItem   `dynamodbav:"items"`
	IssuedAt           string       `dynamodbav:"issued_at,omitempty"`
	DueAt              string       `dynamodbav:"due_at,omitempty"`
	PaidAt             string       `dynamodbav:"paid_at,omitempty"`
	ConsumptionEntryID *string      `dynamodbav:"consumption_entry_id,omitempty"`
	CashSaleEntryID    *string      `dynamodbav:"cash_sale_entry_id,omitempty"`
	Charges            []chargeItem `dynamodbav:"charges,omitempty"`
	Version            int64        `dynamodbav:"version"`
	CreatedAt          string       `dynamodbav:"created_at"`
	UpdatedAt          string       `dynamodbav:"updated_at"`
}

type financeLineItem struct {
	ID          string  `dynamodbav:"id"`
	BusinessID  string  `dynamodbav:"business_id"`
	ProjectID   *string `dynamodbav:"project_id,omitempty"`
	InvoiceID   *string `dynamodbav:"invoice_id,omitempty"`
	Type        string  `dynamodbav:"type"`
	AmountCents int64   `dynamodbav:"amount_cents"`
	Category    string  `dynamodbav:"category,omitempty"`
	Date        string  `dynamodbav:"date"`
}

type taskItem struct {
	ID               string `dynamodbav:"id"`
	BusinessID       string `dynamodbav:"business_id"`
	ProjectID        string `dynamodbav:"project_id"`
	ProjectServiceID string `dynamodbav:"project_service_id"`
	Title            string `dynamodbav:"title"`
	Description      string `dynamodbav:"description,omitempty"`
	Phase            string `dynamodbav:"phase"`
	Status           string `dynamodbav:"status"`
	Position         int    `dynamodbav:"position"`
	CreatedAt        string `dynamodbav:"created_at"`
}

type businessItem struct {
	ID                    string `dynamodbav:"id"`
	Currency              string `dynamodbav:"currency"`
	DefaultDepositPercent int    `dynamodbav:"default_deposit_percent"`
	PaymentTermsDays      int    `dynamodbav:"payment_terms_days"`
	QuoteValidityDays     int    `dynamodbav:"quote_validity_days"`
}

type taskTemplateItem struct {
	Title       string `dynamodbav:"title"`
	Description string `dynamodbav:"description,omitempty"`
	Phase       string `dynamodbav:"phase"`
}

type catalogItem struct {
	ID                string            `dynamodbav:"id"`
	BusinessID        string            `dynamodbav:"business_id"`
	Name              string            `dynamodbav:"name"`
	DefaultPriceCents *int64            `dynamodbav:"default_price_cents,omitempty"`
	TaskTemplate      *taskTemplateItem `dynamodbav:"task_template,omitempty"`
}

type chargeItem struct {
	ProviderPaymentID string `dynamodbav:"provider_payment_id"`
	AmountCents       int64  `dynamodbav:"amount_cents"`
	Applied           bool   `dynamodbav:"applied"`
	ChargedAt         string `dynamodbav:"charged_at"`
}

func toChargeItems(charges []entities.ProviderCharge) []chargeItem {
	if len(charges) == 0 {
		return nil
	}
	out := make([]chargeItem, 0, len(charges))
	for _, c := range charges {
		out = append(out, chargeItem{
			ProviderPaymentID: c.ProviderPaymentID,
			AmountCents:       int64(c.AmountCents),
			Applied:           c.Applied,
			ChargedAt:         formatTime(c.ChargedAt),
		})
	}
	return out
}

func fromChargeItems(items []chargeItem) []entities.ProviderCharge {
	if len(items) == 0 {
		return nil
	}
	out := make([]entities.ProviderCharge, 0, len(items))
	for _, c := range items {
		out = append(out, entities.ProviderCharge{
			ProviderPaymentID: c.ProviderPaymentID,
			AmountCents:       money.Cents(c.AmountCents),
			Applied:           c.Applied,
			ChargedAt:         parseTime(c.ChargedAt),
		})
	}
	return out
}

func toLineItems(items []entities.LineItem) []lineItem {
	out := make([]lineItem, 0, len(items))
	for _, l := range items {
		out = append(out, lineItem{
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

func fromLineItems(items []lineItem) []entities.LineItem {
	out := make([]entities.LineItem, 0, len(items))
	for _, l := range items {
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

func centsPtrToInt(c *money.Cents) *int64 {
	if c == nil {
		return nil
	}
	v := int64(*c)
	return &v
}

func intPtrToCents(v *int64) *money.Cents {
	if v == nil {
		return nil
	}
	c := money.Cents(*v)
	return &c
}

func toProjectItem(p entities.Project) projectItem {
	return projectItem{
		ID:             p.ID,
		BusinessID:     p.BusinessID,
		ClientID:       p.ClientID,
		Name:           p.Name,
		Status:         string(p.Status),
		QuoteStatus:    string(p.QuoteStatus),
		DepositStatus:  string(p.DepositStatus),
		DepositPaidAt:  formatTimePtr(p.DepositPaidAt),
		BillingQuoteID: p.BillingQuoteID,
		StartedAt:      formatTimePtr(p.StartedAt),
		ArchivedAt:     formatTimePtr(p.ArchivedAt),
		StartDate:      formatTimePtr(p.StartDate),
		EndDate:        formatTimePtr(p.EndDate),
		CategoryID:     p.CategoryID,
		TagIDs:         p.TagIDs,
		Version:        p.Version,
		CreatedAt:      formatTime(p.CreatedAt),
		UpdatedAt:      formatTime(p.UpdatedAt),
	}
}

func fromProjectItem(it projectItem) entities.Project {
	return entities.Project{
		ID:             it.ID,
		BusinessID:     it.BusinessID,
		ClientID:       it.ClientID,
		Name:           it.Name,
		Status:         entities.ProjectStatus(it.Status),
		QuoteStatus:    entities.ProjectQuoteStatus(it.QuoteStatus),
		DepositStatus:  entities.DepositStatus(it.DepositStatus),
		DepositPaidAt:  parseTimePtr(it.DepositPaidAt),
		BillingQuoteID: it.BillingQuoteID,
		StartedAt:      parseTimePtr(it.StartedAt),
		ArchivedAt:     parseTimePtr(it.ArchivedAt),
		StartDate:      parseTimePtr(it.StartDate),
		EndDate:        parseTimePtr(it.EndDate),
		CategoryID:     it.CategoryID,
		TagIDs:         it.TagIDs,
		Version:        it.Version,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
}

func toProjectServiceItem(s entities.ProjectService) projectServiceItem {
	return projectServiceItem{
		ID:                 s.ID,
		BusinessID:         s.BusinessID,
		ProjectID:          s.ProjectID,
		ServiceID:          s.ServiceID,
		Quantity:           s.Quantity,
		PriceCentsOverride: centsPtrToInt(s.PriceCentsOverride),
		Notes:              s.Notes,
		Position:           s.Position,
		Version:            s.Version,
		CreatedAt:          formatTime(s.CreatedAt),
		UpdatedAt:          formatTime(s.UpdatedAt),
	}
}

func fromProjectServiceItem(it projectServiceItem) entities.ProjectService {
	return entities.ProjectService{
		ID:                 it.ID,
		BusinessID:         it.BusinessID,
		ProjectID:          it.ProjectID,
		ServiceID:          it.ServiceID,
		Quantity:           it.Quantity,
		PriceCentsOverride: intPtrToCents(it.PriceCentsOverride),
		Notes:              it.Notes,
		Position:           it.Position,
		Version:            it.Version,
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
	}
}

func toQuoteItem(q entities.Quote) quoteItem {
	return quoteItem{
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
		Items:          toLineItems(q.Items),
		IssuedAt:       formatTimePtr(q.IssuedAt),
		ExpiresAt:      formatTimePtr(q.ExpiresAt),
		SignedAt:       formatTimePtr(q.SignedAt),
		Version:        q.Version,
		CreatedAt:      formatTime(q.CreatedAt),
		UpdatedAt:      formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	return entities.Quote{
		ID:             it.ID,
		BusinessID:     it.BusinessID,
		ProjectID:      it.ProjectID,
		ClientID:       it.ClientID,
		Status:         entities.QuoteStatus(it.Status),
		Number:         it.Number,
		DepositPercent: it.DepositPercent,
		Currency:       money.Currency(it.Currency),
		TotalCents:     money.Cents(it.TotalCents),
		DepositCents:   money.Cents(it.DepositCents),
		BalanceCents:   money.Cents(it.BalanceCents),
		Items:          fromLineItems(it.Items),
		IssuedAt:       parseTimePtr(it.IssuedAt),
		ExpiresAt:      parseTimePtr(it.ExpiresAt),
		SignedAt:       parseTimePtr(it.SignedAt),
		Version:        it.Version,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	return invoiceItem{
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
		Items:              toLineItems(inv.Items),
		IssuedAt:           formatTimePtr(inv.IssuedAt),
		DueAt:              formatTimePtr(inv.DueAt),
		PaidAt:             formatTimePtr(inv.PaidAt),
		ConsumptionEntryID: inv.ConsumptionEntryID,
		CashSaleEntryID:    inv.CashSaleEntryID,
		Charges:            toChargeItems(inv.Charges),
		Version:            inv.Version,
		CreatedAt:          formatTime(inv.CreatedAt),
		UpdatedAt:          formatTime(inv.UpdatedAt),
	}
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	return entities.Invoice{
		ID:                 it.ID,
		BusinessID:         it.BusinessID,
		ProjectID:          it.ProjectID,
		ClientID:           it.ClientID,
		QuoteID:            it.QuoteID,
		Status:             entities.InvoiceStatus(it.Status),
		Number:             it.Number,
		DepositPercent:     it.DepositPercent,
		Currency:           money.Currency(it.Currency),
		TotalCents:         money.Cents(it.TotalCents),
		DepositCents:       money.Cents(it.DepositCents),
		BalanceCents:       money.Cents(it.BalanceCents),
		PaidCents:          money.Cents(it.PaidCents),
		RemainingCents:     money.Cents(it.RemainingCents),
		Items:              fromLineItems(it.Items),
		IssuedAt:           parseTimePtr(it.IssuedAt),
		DueAt:              parseTimePtr(it.DueAt),
		PaidAt:             parseTimePtr(it.PaidAt),
		ConsumptionEntryID: it.ConsumptionEntryID,
		CashSaleEntryID:    it.CashSaleEntryID,
		Charges:            fromChargeItems(it.Charges),
		Version:            it.Version,
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
	}
}

func fromFinanceLineItem(it financeLineItem) entities.FinanceLine {
	return entities.FinanceLine{
		ID:          it.ID,
		BusinessID:  it.BusinessID,
		ProjectID:   it.ProjectID,
		InvoiceID:   it.InvoiceID,
		Type:        entities.FinanceLineType(it.Type),
		AmountCents: money.Cents(it.AmountCents),
		Category:    it.Category,
		Date:        parseTime(it.Date),
	}
}

func toTaskItem(t entities.Task) taskItem {
	return taskItem{
		ID:               t.ID,
		BusinessID:       t.BusinessID,
		ProjectID:        t.ProjectID,
		ProjectServiceID: t.ProjectServiceID,
		Title:            t.Title,
		Description:      t.Description,
		Phase:            string(t.Phase),
		Status:           string(t.Status),
		Position:         t.Position,
		CreatedAt:        formatTime(t.CreatedAt),
	}
}

func fromTaskItem(it taskItem) entities.Task {
	return entities.Task{
		ID:               it.ID,
		BusinessID:       it.BusinessID,
		ProjectID:        it.ProjectID,
		ProjectServiceID: it.ProjectServiceID,
		Title:            it.Title,
		Description:      it.Description,
		Phase:            entities.TaskPhase(it.Phase),
		Status:           entities.TaskStatus(it.Status),
		Position:         it.Position,
		CreatedAt:        parseTime(it.CreatedAt),
	}
}

func fromBusinessItem(it businessItem) entities.BusinessSettings {
	return entities.BusinessSettings{
		ID:                    it.ID,
		Currency:              money.Currency(it.Currency),
		DefaultDepositPercent: it.DefaultDepositPercent,
		PaymentTermsDays:      it.PaymentTermsDays,
		QuoteValidityDays:     it.QuoteValidityDays,
	}
}

func fromCatalogItem(it catalogItem) entities.CatalogService {
	c := entities.CatalogService{
		ID:                it.ID,
		BusinessID:        it.BusinessID,
		Name:              it.Name,
		DefaultPriceCents: intPtrToCents(it.DefaultPriceCents),
	}
	if it.TaskTemplate != nil {
		c.TaskTemplate = &entities.TaskTemplate{
			Title:       it.TaskTemplate.Title,
			Description: it.TaskTemplate.Description,
			Phase:       entities.TaskPhase(it.TaskTemplate.Phase),
		}
	}
	return c
}
