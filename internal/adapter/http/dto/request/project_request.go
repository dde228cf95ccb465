package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase"
)

var ErrInvalidPaidAt = errors.New("paid_at must be an RFC 3339 timestamp or null")

type CreateProjectRequest struct {
	Name       string     `json:"name" binding:"required"`
	ClientID   *string    `json:"client_id"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	CategoryID *string    `json:"category_id"`
	TagIDs     []string   `json:"tag_ids"`
}

func (r CreateProjectRequest) ToCommand() usecase.CreateProjectCommand {
	return usecase.CreateProjectCommand{
		Name:       r.Name,
		ClientID:   r.ClientID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		CategoryID: r.CategoryID,
		TagIDs:     r.TagIDs,
	}
}

// UpdateProjectRequest is a partial update; omitted fields are left unchanged.
type UpdateProjectRequest struct {
	Name       *string    `json:"name"`
	ClientID   *string    `json:"client_id"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	CategoryID *string    `json:"category_id"`
	TagIDs     *[]string  `json:"tag_ids"`
}

func (r UpdateProjectRequest) ToCommand() usecase.UpdateProjectCommand {
	return usecase.UpdateProjectCommand{
		Name:       r.Name,
		ClientID:   r.ClientID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		CategoryID: r.CategoryID,
		TagIDs:     r.TagIDs,
	}
}

// StatusRequest carries a target status for the project, quote and invoice status
// endpoints.
type StatusRequest struct {
	Status string     `json:"status" binding:"required"`
	DueAt  *time.Time `json:"due_at"`
}

func (r StatusRequest) Normalized() string {
	return strings.ToUpper(strings.TrimSpace(r.Status))
}

// SetDepositStatusRequest keeps paid_at raw so an explicit null can be told apart from an
// omitted field.
type SetDepositStatusRequest struct {
	Status string          `json:"status" binding:"required"`
	PaidAt json.RawMessage `json:"paid_at"`
}

func (r SetDepositStatusRequest) ToCommand() (usecase.SetDepositStatusCommand, error) {
	cmd := usecase.SetDepositStatusCommand{
		Status: entities.DepositStatus(strings.ToUpper(strings.TrimSpace(r.Status))),
	}
	if len(r.PaidAt) == 0 {
		return cmd, nil
	}
	cmd.PaidAtSupplied = true
	if bytes.Equal(bytes.TrimSpace(r.PaidAt), []byte("null")) {
		return cmd, nil
	}
	var paidAt time.Time
	if err := json.Unmarshal(r.PaidAt, &paidAt); err != nil {
		return usecase.SetDepositStatusCommand{}, ErrInvalidPaidAt
	}
	cmd.PaidAt = &paidAt
	return cmd, nil
}

type BindBillingQuoteRequest struct {
	QuoteID string `json:"quote_id" binding:"required"`
}
