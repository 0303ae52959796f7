package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/signin-labs/account-service/internal/domain"
)

// CookieName carries the session token between client and server.
const CookieName = "token"

// SetSessionCookie stores the session token. Secure is set only in production.
func SetSessionCookie(c *fiber.Ctx, token string, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(domain.SessionTTL / time.Second),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie with the same attributes it was set with.
func ClearSessionCookie(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SessionToken returns the session token presented by the client, if any.
func SessionToken(c *fiber.Ctx) string {
	return c.Cookies(CookieName)
}
