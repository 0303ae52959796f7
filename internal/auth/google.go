package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/signin-labs/account-service/internal/domain"
)

// GoogleIssuer is the issuer of Google ID tokens. The scheme-less form is also accepted.
const GoogleIssuer = "https://accounts.google.com"

// IdentityVerifier validates an identity assertion issued to the client.
type IdentityVerifier interface {
	Verify(ctx context.Context, assertion string) (*domain.Identity, error)
}

// GoogleVerifierConfig configures Google ID token verification.
type GoogleVerifierConfig struct {
	ClientID string
	JWKSURL  string
	// Now overrides the clock used for expiry checks.
	Now func() time.Time
}

// GoogleVerifier checks Google ID tokens against the provider's published keys.
type GoogleVerifier struct {
	verifier *oidc.IDTokenVerifier
}

type googleClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// NewGoogleVerifier builds a verifier that fetches signing keys from cfg.JWKSURL on demand.
// ctx must outlive the verifier; it is used for background key refreshes.
func NewGoogleVerifier(ctx context.Context, cfg GoogleVerifierConfig) *GoogleVerifier {
	return NewGoogleVerifierWithKeySet(oidc.NewRemoteKeySet(ctx, cfg.JWKSURL), cfg)
}

// NewGoogleVerifierWithKeySet builds a verifier over an explicit key set.
func NewGoogleVerifierWithKeySet(keySet oidc.KeySet, cfg GoogleVerifierConfig) *GoogleVerifier {
	return &GoogleVerifier{
		verifier: oidc.NewVerifier(GoogleIssuer, keySet, &oidc.Config{
			ClientID: cfg.ClientID,
			Now:      cfg.Now,
		}),
	}
}

// Verify validates signature, issuer, audience and expiry and extracts the identity claim.
func (g *GoogleVerifier) Verify(ctx context.Context, assertion string) (*domain.Identity, error) {
	if strings.TrimSpace(assertion) == "" {
		return nil, fmt.Errorf("%w: empty assertion", domain.ErrInvalidCredential)
	}

	idToken, err := g.verifier.Verify(ctx, assertion)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredential, err)
	}
	if idToken.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", domain.ErrInvalidCredential)
	}

	var claims googleClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: decode claims: %w", domain.ErrInvalidCredential, err)
	}

	return &domain.Identity{
		SubjectID:  idToken.Subject,
		Name:       claims.Name,
		Email:      claims.Email,
		PictureURL: claims.Picture,
	}, nil
}

// compile-time interface check
var _ IdentityVerifier = (*GoogleVerifier)(nil)
