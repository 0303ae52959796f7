package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/signin-labs/account-service/internal/domain"
)

// TokenErrorKind classifies why a session token was rejected. It is for logs only.
type TokenErrorKind string

const (
	TokenMissing   TokenErrorKind = "missing"
	TokenMalformed TokenErrorKind = "malformed"
	TokenExpired   TokenErrorKind = "expired"
	TokenSignature TokenErrorKind = "signature"
	TokenClaims    TokenErrorKind = "claims"
)

// TokenError reports a rejected session token. It matches domain.ErrInvalidToken.
type TokenError struct {
	Kind TokenErrorKind
	Err  error
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("session token %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("session token %s", e.Kind)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

func (e *TokenError) Is(target error) bool {
	return target == domain.ErrInvalidToken
}

// TokenManager handles issuing and validating session JWTs.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager. Tokens are valid for domain.SessionTTL.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: domain.SessionTTL, now: time.Now}
}

// Claims describes the session JWT payload.
type Claims struct {
	SubjectID string `json:"googleId"`
	jwt.RegisteredClaims
}

// Issue signs a session token for the subject.
func (tm *TokenManager) Issue(subjectID string) (string, time.Time, error) {
	if len(tm.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("%w: session signing secret is not configured", domain.ErrConfiguration)
	}
	if subjectID == "" {
		return "", time.Time{}, errors.New("subject id is required")
	}

	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		SubjectID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates the token and returns the embedded subject id.
func (tm *TokenManager) Verify(tokenStr string) (string, error) {
	if tokenStr == "" {
		return "", &TokenError{Kind: TokenMissing}
	}
	if len(tm.secret) == 0 {
		return "", &TokenError{Kind: TokenSignature, Err: domain.ErrConfiguration}
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return "", &TokenError{Kind: classify(err), Err: err}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", &TokenError{Kind: TokenClaims, Err: errors.New("invalid token claims")}
	}
	if claims.SubjectID == "" || claims.SubjectID != claims.Subject {
		return "", &TokenError{Kind: TokenClaims, Err: errors.New("subject mismatch")}
	}
	return claims.SubjectID, nil
}

func classify(err error) TokenErrorKind {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return TokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return TokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return TokenSignature
	default:
		return TokenClaims
	}
}
