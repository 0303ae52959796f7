package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	cause := errors.New("google said no")

	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{name: "domain error passes through", err: NewMissingCredential(), wantCode: "MISSING_CREDENTIAL", wantStatus: http.StatusBadRequest},
		{name: "wrapped domain error", err: fmt.Errorf("login: %w", NewAuthenticationFailed(cause)), wantCode: "AUTHENTICATION_FAILED", wantStatus: http.StatusBadRequest},
		{name: "unauthenticated", err: NewUnauthenticated(nil), wantCode: "UNAUTHENTICATED", wantStatus: http.StatusUnauthorized},
		{name: "fiber not found", err: fiber.ErrNotFound, wantCode: "NOT_FOUND", wantStatus: http.StatusNotFound},
		{name: "fiber bad request", err: fiber.NewError(http.StatusBadRequest, "bad"), wantCode: "BAD_REQUEST", wantStatus: http.StatusBadRequest},
		{name: "unknown error", err: cause, wantCode: "INTERNAL_ERROR", wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantStatus, got.HTTPStatus)
		})
	}
}

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestAuthenticationFailedHidesCause(t *testing.T) {
	cause := errors.New("audience mismatch")
	err := NewAuthenticationFailed(cause)

	domainErr := ToDomainError(err)
	assert.Equal(t, "Authentication failed", domainErr.Message)
	assert.ErrorIs(t, err, cause)
}
