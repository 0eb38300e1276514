package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-service/internal/domain"
	apperrors "github.com/spec-kit/auth-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// MessageNotAuthenticated is returned to callers without a usable session.
const MessageNotAuthenticated = "Not authenticated!"

// Principal represents the authenticated caller.
type Principal struct {
	Session domain.SessionToken
}

// Username returns the token subject.
func (p *Principal) Username() string {
	return p.Session.Subject
}

// AuthMiddleware validates the session cookie and loads principals.
type AuthMiddleware struct {
	tokens    *TokenManager
	transport *CookieTransport
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, transport *CookieTransport) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, transport: transport}
}

// Handle enforces a valid session for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, ok := m.transport.Extract(c)
	if !ok {
		return apperrors.NewUnauthorized(MessageNotAuthenticated)
	}

	session, err := m.tokens.Validate(token)
	if err != nil {
		return apperrors.NewUnauthorized(MessageNotAuthenticated)
	}

	c.Locals(principalKey, &Principal{Session: *session})
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
