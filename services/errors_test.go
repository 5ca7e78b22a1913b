package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestServiceErrorHTTPStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrCodeValidation:     http.StatusBadRequest,
		ErrCodeConfiguration:  http.StatusBadRequest,
		ErrCodeUnauthorized:   http.StatusUnauthorized,
		ErrCodeForbidden:      http.StatusForbidden,
		ErrCodeCourseMismatch: http.StatusForbidden,
		ErrCodeNotFound:       http.StatusNotFound,
		ErrCodeDuplicate:      http.StatusConflict,
		ErrCodeInternal:       http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := newError(code, "x").HTTPStatus(); got != want {
			t.Errorf("%s: got %d, want %d", code, got, want)
		}
	}
}

func TestServiceErrorWrapping(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := wrapError(ErrCodeInternal, "failed to load admission", cause)

	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}

	wrapped := fmt.Errorf("transition: %w", err)
	if CodeOf(wrapped) != ErrCodeInternal {
		t.Fatal("code lost through further wrapping")
	}
	if HTTPStatusOf(wrapped) != http.StatusInternalServerError {
		t.Fatal("status lost through further wrapping")
	}

	se, ok := AsServiceError(wrapped)
	if !ok || se.Message != "failed to load admission" {
		t.Fatalf("unexpected unwrap result: %v", se)
	}
}

func TestCodeOfPlainError(t *testing.T) {
	if CodeOf(errors.New("boom")) != ErrCodeInternal {
		t.Fatal("plain errors must map to INTERNAL")
	}
	if HTTPStatusOf(errors.New("boom")) != http.StatusInternalServerError {
		t.Fatal("plain errors must map to 500")
	}
}
