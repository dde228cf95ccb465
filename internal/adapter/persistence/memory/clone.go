package memory

import (
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/money"
)

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func cloneCents(c *money.Cents) *money.Cents {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}

func cloneItems(items []entities.LineItem) []entities.LineItem {
	if items == nil {
		return nil
	}
	return append([]entities.LineItem(nil), items...)
}

func cloneProject(p entities.Project) entities.Project {
	p.ClientID = cloneString(p.ClientID)
	p.DepositPaidAt = cloneTime(p.DepositPaidAt)
	p.BillingQuoteID = cloneString(p.BillingQuoteID)
	p.StartedAt = cloneTime(p.StartedAt)
	p.ArchivedAt = cloneTime(p.ArchivedAt)
	p.StartDate = cloneTime(p.StartDate)
	p.EndDate = cloneTime(p.EndDate)
	p.CategoryID = cloneString(p.CategoryID)
	if p.TagIDs != nil {
		p.TagIDs = append([]string(nil), p.TagIDs...)
	}
	return p
}

func cloneProjectService(s entities.ProjectService) entities.ProjectService {
	s.PriceCentsOverride = cloneCents(s.PriceCentsOverride)
	return s
}

func cloneQuote(q entities.Quote) entities.Quote {
	q.ClientID = cloneString(q.ClientID)
	q.Number = cloneString(q.Number)
	q.Items = cloneItems(q.Items)
	q.IssuedAt = cloneTime(q.IssuedAt)
	q.ExpiresAt = cloneTime(q.ExpiresAt)
	q.SignedAt = cloneTime(q.SignedAt)
	return q
}

func cloneInvoice(inv entities.Invoice) entities.Invoice {
	inv.ClientID = cloneString(inv.ClientID)
	inv.QuoteID = cloneString(inv.QuoteID)
	inv.Number = cloneString(inv.Number)
	inv.Items = cloneItems(inv.Items)
	inv.IssuedAt = cloneTime(inv.IssuedAt)
	inv.DueAt = cloneTime(inv.DueAt)
	inv.PaidAt = cloneTime(inv.PaidAt)
	inv.ConsumptionEntryID = cloneString(inv.ConsumptionEntryID)
	inv.CashSaleEntryID = cloneString(inv.CashSaleEntryID)
	if inv.Charges != nil {
		inv.Charges = append([]entities.ProviderCharge(nil), inv.Charges...)
	}
	return inv
}

func cloneFinanceLine(f entities.FinanceLine) entities.FinanceLine {
	f.ProjectID = cloneString(f.ProjectID)
	f.InvoiceID = cloneString(f.InvoiceID)
	return f
}

func cloneCatalogService(c entities.CatalogService) entities.CatalogService {
	c.DefaultPriceCents = cloneCents(c.DefaultPriceCents)
	if c.TaskTemplate != nil {
		t := *c.TaskTemplate
		c.TaskTemplate = &t
	}
	return c
}
