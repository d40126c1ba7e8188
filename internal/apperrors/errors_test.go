package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_Validation_Success(t *testing.T) {
	err := Validation("email must be a valid email address")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPStatus)
	}
	if err.Message != "email must be a valid email address" {
		t.Errorf("unexpected message: %q", err.Message)
	}
}

func TestAppError_DuplicateUser_Status(t *testing.T) {
	err := DuplicateUser()
	if err.Code != ErrCodeAlreadyExists {
		t.Errorf("expected ALREADY_EXISTS, got %s", err.Code)
	}
	// Duplicate registrations are reported as a 400, not a 409.
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPStatus)
	}
}

func TestAppError_InvalidCredentials_SameMessageForBothCauses(t *testing.T) {
	unknownEmail := InvalidCredentials()
	wrongPassword := InvalidCredentials()
	if unknownEmail.Message != wrongPassword.Message {
		t.Error("credential errors must carry an identical message regardless of cause")
	}
	if unknownEmail.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", unknownEmail.HTTPStatus)
	}
}

func TestAppError_TokenErrors_Status(t *testing.T) {
	for _, err := range []*AppError{TokenMissing(), TokenExpired(), InvalidToken(), AuthenticationFailed()} {
		if err.HTTPStatus != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", err.Code, err.HTTPStatus)
		}
	}
}

func TestAppError_Internal_KeepsCausePrivate(t *testing.T) {
	cause := fmt.Errorf("mongo: connection refused")
	err := Internal("Failed to register.", cause)
	if err.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", err.HTTPStatus)
	}
	if err.Message != "Failed to register." {
		t.Errorf("unexpected safe message: %q", err.Message)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected Unwrap to reach the cause")
	}
	if !strings.Contains(err.Error(), "cause:") {
		t.Errorf("Error() should include the cause for logs, got %q", err.Error())
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound()
	wrapped := fmt.Errorf("lookup: %w", appErr)

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to find the wrapped AppError")
	}
	if got.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", got.Code)
	}

	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected AsAppError to fail for a plain error")
	}
}

func TestAppError_WithDetail(t *testing.T) {
	err := Validation("bad input").WithDetail("field", "email")
	if err.Details["field"] != "email" {
		t.Errorf("expected field=email, got %v", err.Details["field"])
	}
}
