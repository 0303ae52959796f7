package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/signin-labs/account-service/internal/auth"
	"github.com/signin-labs/account-service/internal/domain"
	"github.com/signin-labs/account-service/internal/events"
	"github.com/signin-labs/account-service/internal/repository"
)

// AuthService coordinates the sign-in and sign-out flows.
type AuthService struct {
	users      repository.UserRepository
	verifier   auth.IdentityVerifier
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Verifier   auth.IdentityVerifier
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		verifier:   deps.Verifier,
		tokenMgr:   deps.Tokens,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Login verifies the identity assertion, upserts the user and issues a session token.
// No step is retried; the first failure aborts the login.
func (s *AuthService) Login(ctx context.Context, credential string) (*domain.User, string, time.Time, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, "", time.Time{}, domain.ErrMissingCredential
	}

	identity, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("verify credential: %w", err)
	}

	user, created, err := s.users.Upsert(ctx, *identity)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("upsert user: %w", err)
	}

	token, exp, err := s.tokenMgr.Issue(user.SubjectID)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("issue session: %w", err)
	}

	payload := events.LoginPayload{Email: user.Email, ExpiresAt: exp}
	if created {
		s.publish(ctx, events.NewEvent(events.EventUserRegistered, user.SubjectID, payload))
	}
	s.publish(ctx, events.NewEvent(events.EventUserLoggedIn, user.SubjectID, payload))

	return user, token, exp, nil
}

// Logout records the sign-out of a still-valid session. Sessions are stateless,
// so nothing is revoked and an invalid or absent token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	subjectID, err := s.tokenMgr.Verify(token)
	if err != nil {
		return
	}
	s.publish(ctx, events.NewEvent(events.EventUserLoggedOut, subjectID, nil))
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("auth event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
