package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/signin-labs/account-service/internal/domain"
	"github.com/signin-labs/account-service/internal/repository"
	apperrors "github.com/signin-labs/account-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User *domain.User
}

// SessionVerifier extracts the subject id from a session token.
type SessionVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware validates the session cookie and loads the principal.
type AuthMiddleware struct {
	tokens SessionVerifier
	users  repository.UserRepository
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens SessionVerifier, users repository.UserRepository, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, logger: logger}
}

// Handle enforces authentication for protected routes. Every rejection looks the same to the caller.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token := SessionToken(c)
	if token == "" {
		return apperrors.NewUnauthenticated(domain.ErrUnauthenticated)
	}

	subjectID, err := m.tokens.Verify(token)
	if err != nil {
		var tokenErr *TokenError
		kind := TokenClaims
		if errors.As(err, &tokenErr) {
			kind = tokenErr.Kind
		}
		m.logger.Info("session token rejected", zap.String("kind", string(kind)), zap.Error(err))
		return apperrors.NewUnauthenticated(err)
	}

	user, err := m.users.GetBySubjectID(c.UserContext(), subjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			m.logger.Info("session subject has no user", zap.String("subject_id", subjectID))
			return apperrors.NewUnauthenticated(err)
		}
		return apperrors.NewInternalError(err)
	}

	c.Locals(principalKey, &Principal{User: user})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
