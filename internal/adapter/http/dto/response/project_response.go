package response

import (
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/money"
	"project_billing/internal/usecase"
)

type ProjectResponse struct {
	ID             string     `json:"id"`
	BusinessID     string     `json:"business_id"`
	ClientID       *string    `json:"client_id,omitempty"`
	Name           string     `json:"name"`
	Status         string     `json:"status"`
	QuoteStatus    string     `json:"quote_status"`
	DepositStatus  string     `json:"deposit_status"`
	DepositPaidAt  *time.Time `json:"deposit_paid_at,omitempty"`
	BillingQuoteID *string    `json:"billing_quote_id,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	ArchivedAt     *time.Time `json:"archived_at,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	CategoryID     *string    `json:"category_id,omitempty"`
	TagIDs         []string   `json:"tag_ids"`
	CanStart       bool       `json:"can_start"`
	Version        int64      `json:"version"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func FromProject(p entities.Project) ProjectResponse {
	tags := p.TagIDs
	if tags == nil {
		tags = []string{}
	}
	return ProjectResponse{
		ID:             p.ID,
		BusinessID:     p.BusinessID,
		ClientID:       p.ClientID,
		Name:           p.Name,
		Status:         string(p.Status),
		QuoteStatus:    string(p.QuoteStatus),
		DepositStatus:  string(p.DepositStatus),
		DepositPaidAt:  p.DepositPaidAt,
		BillingQuoteID: p.BillingQuoteID,
		StartedAt:      p.StartedAt,
		ArchivedAt:     p.ArchivedAt,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		CategoryID:     p.CategoryID,
		TagIDs:         tags,
		CanStart:       p.CanStart(),
		Version:        p.Version,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type StartProjectResponse struct {
	Project      ProjectResponse `json:"project"`
	StartedAt    time.Time       `json:"started_at"`
	TasksCreated int             `json:"tasks_created"`
}

func FromStartResult(r usecase.StartResult) StartProjectResponse {
	return StartProjectResponse{
		Project:      FromProject(r.Project),
		StartedAt:    r.StartedAt,
		TasksCreated: r.TasksCreated,
	}
}

type ProjectServiceResponse struct {
	ID                 string    `json:"id"`
	ProjectID          string    `json:"project_id"`
	ServiceID          string    `json:"service_id"`
	Quantity           int       `json:"quantity"`
	PriceCentsOverride *int64    `json:"price_cents_override"`
	Notes              string    `json:"notes,omitempty"`
	Position           int       `json:"position"`
	Version            int64     `json:"version"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func FromProjectService(s entities.ProjectService) ProjectServiceResponse {
	var override *int64
	if s.PriceCentsOverride != nil {
		v := int64(*s.PriceCentsOverride)
		override = &v
	}
	return ProjectServiceResponse{
		ID:                 s.ID,
		ProjectID:          s.ProjectID,
		ServiceID:          s.ServiceID,
		Quantity:           s.Quantity,
		PriceCentsOverride: override,
		Notes:              s.Notes,
		Position:           s.Position,
		Version:            s.Version,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func FromProjectServices(list []entities.ProjectService) []ProjectServiceResponse {
	out := make([]ProjectServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromProjectService(s))
	}
	return out
}

type PricingResponse struct {
	Currency       string             `json:"currency"`
	Items          []LineItemResponse `json:"items"`
	Total          Amount             `json:"total"`
	DepositPercent int                `json:"deposit_percent"`
	Deposit        Amount             `json:"deposit"`
	Balance        Amount             `json:"balance"`
}

func FromPricing(s entities.PricingSnapshot) PricingResponse {
	return PricingResponse{
		Currency:       string(s.Currency),
		Items:          fromLineItems(s.Items, s.Currency),
		Total:          amount(s.TotalCents, s.Currency),
		DepositPercent: s.DepositPercent,
		Deposit:        amount(s.DepositCents, s.Currency),
		Balance:        amount(s.BalanceCents, s.Currency),
	}
}

func fromLineItems(items []entities.LineItem, cur money.Currency) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, LineItemResponse{
			ProjectServiceID: it.ProjectServiceID,
			ServiceID:        it.ServiceID,
			Label:            it.Label,
			Quantity:         it.Quantity,
			UnitPrice:        amount(it.UnitPriceCents, cur),
			Total:            amount(it.TotalCents, cur),
		})
	}
	return out
}
