package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/signin-labs/account-service/internal/api/dto"
	"github.com/signin-labs/account-service/internal/auth"
	apperrors "github.com/signin-labs/account-service/pkg/util"
)

// UsersHandler exposes the session check.
type UsersHandler struct{}

// NewUsersHandler constructs handler.
func NewUsersHandler() *UsersHandler {
	return &UsersHandler{}
}

// Me handles GET /user/me. It must be mounted behind auth.AuthMiddleware.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewInternalError(errors.New("session middleware not mounted"))
	}
	return c.JSON(dto.UserResponse{User: dto.NewUserProfile(principal.User)})
}
