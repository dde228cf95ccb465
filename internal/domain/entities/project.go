package entities

import "time"

type ProjectStatus string

const (
	ProjectStatusPlanned   ProjectStatus = "PLANNED"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusCancelled ProjectStatus = "CANCELLED"
)

func (s ProjectStatus) String() string { return string(s) }

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanned, ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// ProjectQuoteStatus tracks the commercial progress of the project's quoting.
type ProjectQuoteStatus string

const (
	ProjectQuoteDraft    ProjectQuoteStatus = "DRAFT"
	ProjectQuoteSent     ProjectQuoteStatus = "SENT"
	ProjectQuoteAccepted ProjectQuoteStatus = "ACCEPTED"
	ProjectQuoteSigned   ProjectQuoteStatus = "SIGNED"
)

func (s ProjectQuoteStatus) String() string { return string(s) }

func (s ProjectQuoteStatus) Valid() bool {
	switch s {
	case ProjectQuoteDraft, ProjectQuoteSent, ProjectQuoteAccepted, ProjectQuoteSigned:
		return true
	}
	return false
}

type DepositStatus string

const (
	DepositNotRequired DepositStatus = "NOT_REQUIRED"
	DepositPending     DepositStatus = "PENDING"
	DepositPaid        DepositStatus = "PAID"
)

func (s DepositStatus) String() string { return string(s) }

func (s DepositStatus) Valid() bool {
	switch s {
	case DepositNotRequired, DepositPending, DepositPaid:
		return true
	}
	return false
}

// Project is the aggregate whose commercial lifecycle the engine governs.
//
// Invariants:
//   - DepositPaidAt != nil iff DepositStatus == PAID
//   - BillingQuoteID != nil implies QuoteStatus == SIGNED
//   - StartedAt is set at most once and never cleared
//   - ArchivedAt != nil blocks every mutation except unarchive
//
// Version is the optimistic concurrency token; stores bump it on every write.
type Project struct {
	ID             string             `json:"id"`
	BusinessID     string             `json:"business_id"`
	ClientID       *string            `json:"client_id,omitempty"`
	Name           string             `json:"name"`
	Status         ProjectStatus      `json:"status"`
	QuoteStatus    ProjectQuoteStatus `json:"quote_status"`
	DepositStatus  DepositStatus      `json:"deposit_status"`
	DepositPaidAt  *time.Time         `json:"deposit_paid_at,omitempty"`
	BillingQuoteID *string            `json:"billing_quote_id,omitempty"`
	StartedAt      *time.Time         `json:"started_at,omitempty"`
	ArchivedAt     *time.Time         `json:"archived_at,omitempty"`
	StartDate      *time.Time         `json:"start_date,omitempty"`
	EndDate        *time.Time         `json:"end_date,omitempty"`
	CategoryID     *string            `json:"category_id,omitempty"`
	TagIDs         []string           `json:"tag_ids,omitempty"`
	Version        int64              `json:"version"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// IsArchived reports whether the project is archived.
func (p Project) IsArchived() bool { return p.ArchivedAt != nil }

// CanStart is the pure start predicate: it depends only on quote status, deposit status,
// startedAt and archivedAt.
func (p Project) CanStart() bool {
	if p.StartedAt != nil || p.ArchivedAt != nil {
		return false
	}
	quoteOK := p.QuoteStatus == ProjectQuoteSigned || p.QuoteStatus == ProjectQuoteAccepted
	depositOK := p.DepositStatus == DepositPaid || p.DepositStatus == DepositNotRequired
	return quoteOK && depositOK
}

// ProjectStatusTransitions lists the allowed status moves; COMPLETED and CANCELLED are terminal.
var ProjectStatusTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusPlanned: {ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCancelled},
	ProjectStatusActive:  {ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled},
	ProjectStatusOnHold:  {ProjectStatusActive, ProjectStatusCancelled},
}

// CanTransitionTo reports whether the project status may move to next.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	for _, allowed := range ProjectStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
