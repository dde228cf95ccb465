package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	t.Run("simple error has no cause", func(t *testing.T) {
		e := NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		if e.Unwrap() != nil {
			t.Fatalf("expected nil cause, got %v", e.Unwrap())
		}
		if e.Error() != "INVALID_REQUEST: Invalid request" {
			t.Fatalf("unexpected message %q", e.Error())
		}
		body := e.ToHTTPError()
		if body.Code != "INVALID_REQUEST" || body.Message != "Invalid request" {
			t.Fatalf("unexpected body %+v", body)
		}
	})

	t.Run("cause is kept for errors.Is but not rendered", func(t *testing.T) {
		cause := errors.New("dynamo down")
		e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)
		if !errors.Is(e, cause) {
			t.Fatalf("expected errors.Is to find the cause")
		}
		if e.ToHTTPError().Message != "An internal error occurred" {
			t.Fatalf("cause leaked into body: %+v", e.ToHTTPError())
		}
	})

	t.Run("empty message falls back to status text", func(t *testing.T) {
		e := NewDomainErrorSimple("NOT_FOUND", "", http.StatusNotFound)
		if got := e.ToHTTPError().Message; got != "Not Found" {
			t.Fatalf("expected status text, got %q", got)
		}
	})
}
