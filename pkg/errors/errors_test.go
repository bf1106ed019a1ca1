package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataFor(t *testing.T) {
	tests := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeInvalidAmount, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeInvalidState, http.StatusConflict},
		{CodeConflict, http.StatusConflict},
		{CodeRateLimit, http.StatusTooManyRequests},
		{CodeDependency, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_NEW"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Errorf("MetadataFor(%s).HTTPStatus = %d, want %d", tc.code, got, tc.status)
		}
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("row lock timeout")
	err := Wrap(CodeDependency, cause, "update order")

	if !errors.Is(err, cause) {
		t.Fatal("wrapped error should unwrap to cause")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsFindsTypedError(t *testing.T) {
	inner := New(CodeInvalidState, "already delivered")
	outer := fmt.Errorf("handling request: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error in chain")
	}
	if typed.Code() != CodeInvalidState {
		t.Fatalf("unexpected code %s", typed.Code())
	}
	if As(errors.New("plain")) != nil {
		t.Fatal("plain error should not match")
	}
}

func TestIsCode(t *testing.T) {
	err := New(CodeInvalidAmount, "amount exceeds pending earnings")
	if !IsCode(err, CodeInvalidAmount) {
		t.Fatal("expected IsCode match")
	}
	if IsCode(err, CodeForbidden) {
		t.Fatal("unexpected IsCode match")
	}
	if IsCode(nil, CodeInternal) {
		t.Fatal("nil error should never match")
	}
}
