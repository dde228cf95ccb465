package entities

import (
	"time"

	"project_billing/internal/domain/money"
)

type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "DRAFT"
	QuoteStatusSent      QuoteStatus = "SENT"
	QuoteStatusSigned    QuoteStatus = "SIGNED"
	QuoteStatusCancelled QuoteStatus = "CANCELLED"
	QuoteStatusExpired   QuoteStatus = "EXPIRED"
)

func (s QuoteStatus) String() string { return string(s) }

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusSigned, QuoteStatusCancelled, QuoteStatusExpired:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s QuoteStatus) Terminal() bool {
	return s == QuoteStatusSigned || s == QuoteStatusCancelled || s == QuoteStatusExpired
}

var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusDraft: {QuoteStatusSent, QuoteStatusCancelled},
	QuoteStatusSent:  {QuoteStatusSigned, QuoteStatusCancelled, QuoteStatusExpired},
}

// CanTransitionTo reports whether a quote in s may move to next.
func (s QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	for _, allowed := range quoteTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Quote is a priced offer for a project. Its items and totals are frozen at creation:
// later edits to the project's services never change an existing quote.
//
// Invariant: DepositCents + BalanceCents == TotalCents and
// DepositCents == round_half_up(TotalCents * DepositPercent / 100).
type Quote struct {
	ID             string         `json:"id"`
	BusinessID     string         `json:"business_id"`
	ProjectID      string         `json:"project_id"`
	ClientID       *string        `json:"client_id,omitempty"`
	Status         QuoteStatus    `json:"status"`
	Number         *string        `json:"number,omitempty"`
	DepositPercent int            `json:"deposit_percent"`
	Currency       money.Currency `json:"currency"`
	TotalCents     money.Cents    `json:"total_cents"`
	DepositCents   money.Cents    `json:"deposit_cents"`
	BalanceCents   money.Cents    `json:"balance_cents"`
	Items          []LineItem     `json:"items"`
	IssuedAt       *time.Time     `json:"issued_at,omitempty"`
	ExpiresAt      *time.Time     `json:"expires_at,omitempty"`
	SignedAt       *time.Time     `json:"signed_at,omitempty"`
	Version        int64          `json:"version"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// EffectiveStatus classifies the quote at read time: a SENT quote whose expiry has
// passed reads as EXPIRED without its stored status changing.
func (q Quote) EffectiveStatus(now time.Time) QuoteStatus {
	if q.Status == QuoteStatusSent && q.ExpiresAt != nil && q.ExpiresAt.Before(now) {
		return QuoteStatusExpired
	}
	return q.Status
}

// Balanced reports whether the stored money fields satisfy the quote invariant.
func (q Quote) Balanced() bool {
	deposit, err := money.PercentOf(q.TotalCents, q.DepositPercent)
	if err != nil {
		return false
	}
	return deposit == q.DepositCents && q.DepositCents+q.BalanceCents == q.TotalCents
}
