package errs

import (
	"errors"
	"fmt"
	"testing"
)

type state string

func (s state) String() string { return string(s) }

func TestKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind error
		tag  string
	}{
		{name: "validation", err: Validation("amount", "must be positive"), kind: ErrValidation, tag: "validation"},
		{name: "authorization", err: &AuthorizationError{Role: "MEMBER", Operation: "quote.transition"}, kind: ErrAuthorization, tag: "authorization"},
		{name: "not found", err: NotFound("quote", "q-1"), kind: ErrNotFound, tag: "not_found"},
		{name: "transition", err: InvalidTransition("quote", state("SIGNED"), state("SENT")), kind: ErrInvalidTransition, tag: "invalid_transition"},
		{name: "conflict", err: Conflict("project", "p-1"), kind: ErrConflict, tag: "conflict"},
		{name: "precondition", err: Precondition("quote is not signed"), kind: ErrPrecondition, tag: "precondition"},
		{name: "wrapped", err: fmt.Errorf("load: %w", NotFound("invoice", "i-1")), kind: ErrNotFound, tag: "not_found"},
		{name: "infra", err: errors.New("dial tcp"), kind: nil, tag: "internal"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.kind {
				t.Fatalf("expected kind %v, got %v", tc.kind, got)
			}
			if got := KindName(tc.err); got != tc.tag {
				t.Fatalf("expected tag %q, got %q", tc.tag, got)
			}
		})
	}
}

func TestNotFoundSentinelMatching(t *testing.T) {
	sentinel := &NotFoundError{Entity: "quote"}

	if !errors.Is(NotFound("quote", "q-1"), sentinel) {
		t.Fatalf("expected quote not found to match entity sentinel")
	}
	if errors.Is(NotFound("invoice", "q-1"), sentinel) {
		t.Fatalf("expected invoice not found not to match quote sentinel")
	}
}

func TestInvalidTransitionDetails(t *testing.T) {
	err := fmt.Errorf("sign: %w", InvalidTransition("quote", state("CANCELLED"), state("SIGNED")))

	var ite *InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if ite.From != "CANCELLED" || ite.To != "SIGNED" {
		t.Fatalf("unexpected transition details: %+v", ite)
	}
}
