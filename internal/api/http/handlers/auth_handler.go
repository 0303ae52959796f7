package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/signin-labs/account-service/internal/api/dto"
	"github.com/signin-labs/account-service/internal/auth"
	"github.com/signin-labs/account-service/internal/domain"
	"github.com/signin-labs/account-service/internal/observability"
	apperrors "github.com/signin-labs/account-service/pkg/util"
)

// LoginService is the part of the auth service the handler depends on.
type LoginService interface {
	Login(ctx context.Context, credential string) (*domain.User, string, time.Time, error)
	Logout(ctx context.Context, token string)
}

// AuthHandler exposes the sign-in and sign-out endpoints.
type AuthHandler struct {
	auth          LoginService
	logger        *zap.Logger
	metrics       *observability.Metrics
	secureCookies bool
}

// NewAuthHandler constructs handler. secureCookies should be true only in production.
func NewAuthHandler(authService LoginService, logger *zap.Logger, metrics *observability.Metrics, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: authService, logger: logger, metrics: metrics, secureCookies: secureCookies}
}

// GoogleLogin handles POST /auth/google.
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			h.logger.Debug("unparseable login body", zap.Error(err))
		}
	}
	if strings.TrimSpace(req.Credential) == "" {
		h.metrics.RecordLogin("missing_credential")
		return apperrors.NewMissingCredential()
	}

	user, token, _, err := h.auth.Login(c.UserContext(), req.Credential)
	if err != nil {
		h.metrics.RecordLogin("failure")
		fields := []zap.Field{zap.Error(err), zap.String("ip", c.IP())}
		if errors.Is(err, domain.ErrConfiguration) {
			h.logger.Error("google login failed: configuration", fields...)
		} else {
			h.logger.Warn("google login failed", fields...)
		}
		return apperrors.NewAuthenticationFailed(err)
	}

	auth.SetSessionCookie(c, token, h.secureCookies)
	h.metrics.RecordLogin("success")
	return c.JSON(dto.UserResponse{User: dto.NewUserProfile(user)})
}

// Logout handles POST /auth/logout. Clearing an absent cookie is not an error.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.auth.Logout(c.UserContext(), auth.SessionToken(c))
	auth.ClearSessionCookie(c, h.secureCookies)
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}
