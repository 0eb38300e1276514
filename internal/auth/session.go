package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-service/internal/domain"
)

// DefaultCookieName is the session cookie name used when none is configured.
const DefaultCookieName = "AuthToken"

// CookieTransport binds session tokens to the session cookie.
type CookieTransport struct {
	name   string
	secure bool
	now    func() time.Time
}

// NewCookieTransport constructs a transport for the named cookie.
func NewCookieTransport(name string, secure bool) *CookieTransport {
	if name == "" {
		name = DefaultCookieName
	}
	return &CookieTransport{name: name, secure: secure, now: time.Now}
}

// Attach sets the token on the response cookie, expiring together with the token.
func (t *CookieTransport) Attach(c *fiber.Ctx, token domain.IssuedToken) {
	c.Cookie(t.cookie(token.Value, token.Claims.ExpiresAt))
}

// Extract returns the inbound token. A missing cookie is not an error.
func (t *CookieTransport) Extract(c *fiber.Ctx) (string, bool) {
	value := c.Cookies(t.name)
	if value == "" {
		return "", false
	}
	return value, true
}

// Clear instructs the client to discard the session cookie.
func (t *CookieTransport) Clear(c *fiber.Ctx) {
	c.Cookie(t.cookie("", t.now().Add(-24*time.Hour)))
}

func (t *CookieTransport) cookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     t.name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   t.secure,
		SameSite: fiber.CookieSameSiteNoneMode,
	}
}
