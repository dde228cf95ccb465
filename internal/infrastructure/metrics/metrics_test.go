package metrics

import (
	"errors"
	"testing"

	"project_billing/internal/domain/errs"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type label string

func (l label) String() string { return string(l) }

func TestRecordTransition(t *testing.T) {
	before := testutil.ToFloat64(StateTransitions.WithLabelValues("quote", "SENT", "SIGNED"))
	RecordTransition("quote", label("SENT"), label("SIGNED"))
	after := testutil.ToFloat64(StateTransitions.WithLabelValues("quote", "SENT", "SIGNED"))

	if after-before != 1 {
		t.Fatalf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestRecordError(t *testing.T) {
	before := testutil.ToFloat64(CommandErrors.WithLabelValues("start_project", "precondition"))
	RecordError("start_project", errs.Precondition("cannot start"))
	RecordError("start_project", nil)
	after := testutil.ToFloat64(CommandErrors.WithLabelValues("start_project", "precondition"))
	if after-before != 1 {
		t.Fatalf("expected one precondition error recorded, got %v", after-before)
	}

	RecordError("start_project", errors.New("db down"))
	if v := testutil.ToFloat64(CommandErrors.WithLabelValues("start_project", "internal")); v < 1 {
		t.Fatalf("expected internal error recorded, got %v", v)
	}
}
