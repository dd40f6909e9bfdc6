package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIs(t *testing.T) {
	err := New(CodeNotFound, "publisher not found")
	if !Is(err, CodeNotFound) {
		t.Fatalf("expected CodeNotFound to match")
	}
	if Is(err, CodeBadRequest) {
		t.Fatalf("did not expect CodeBadRequest to match")
	}

	wrapped := fmt.Errorf("loading card: %w", err)
	if !Is(wrapped, CodeNotFound) {
		t.Fatalf("expected code to survive wrapping")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Wrap(CodeInternal, "query publishers", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain")
	}
	if CodeOf(err) != CodeInternal {
		t.Fatalf("expected CodeInternal, got %s", CodeOf(err))
	}
}

func TestMessageOfHidesInternals(t *testing.T) {
	if got := MessageOf(New(CodeInternal, "db failed")); got != "internal error" {
		t.Fatalf("internal message leaked: %q", got)
	}
	if got := MessageOf(New(CodeBadRequest, "year is required")); got != "year is required" {
		t.Fatalf("expected caller message, got %q", got)
	}
	if got := MessageOf(errors.New("plain")); got != "internal error" {
		t.Fatalf("plain errors must map to generic message, got %q", got)
	}
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:   http.StatusBadRequest,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeForbidden:    http.StatusForbidden,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeInternal:     http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := ToHTTPStatus(code); got != want {
			t.Fatalf("code %s: expected %d, got %d", code, want, got)
		}
	}
}
