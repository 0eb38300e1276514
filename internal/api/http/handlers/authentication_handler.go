package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-service/internal/api/dto"
	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/service"
	apperrors "github.com/spec-kit/auth-service/pkg/util/errorutil"
)

// Response messages owned by the HTTP boundary.
const (
	MessageLoggedOut     = "Logged out successfully"
	MessageAuthenticated = "You are authenticated!"
)

// AuthenticationHandler exposes login, registration and session endpoints.
type AuthenticationHandler struct {
	auth      *service.AuthService
	tokens    *auth.TokenManager
	transport *auth.CookieTransport
	strict    bool
}

// NewAuthenticationHandler constructs handler. With strict set, the
// protected check validates the token instead of only testing for the cookie.
func NewAuthenticationHandler(authService *service.AuthService, tokens *auth.TokenManager, transport *auth.CookieTransport, strict bool) *AuthenticationHandler {
	return &AuthenticationHandler{auth: authService, tokens: tokens, transport: transport, strict: strict}
}

// Login handles POST /api/authentication/login.
func (h *AuthenticationHandler) Login(c *fiber.Ctx) error {
	var req dto.AuthenticationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	outcome, err := h.auth.Login(c.UserContext(), domain.Credential{Username: req.Username, Password: req.Password})
	if err != nil {
		return err
	}

	resp := dto.LoginResponse{
		Status:   outcome.Succeeded(),
		Message:  outcome.Message,
		Username: outcome.Username,
	}
	if outcome.Succeeded() {
		h.transport.Attach(c, *outcome.Session)
		resp.UserID = outcome.UserID
	}
	return c.JSON(resp)
}

// Register handles POST /api/authentication/register.
func (h *AuthenticationHandler) Register(c *fiber.Ctx) error {
	var req dto.AuthenticationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	outcome, err := h.auth.Register(c.UserContext(), domain.Credential{Username: req.Username, Password: req.Password})
	if err != nil {
		return err
	}
	return c.JSON(dto.StatusResponse{Status: outcome.Succeeded(), Message: outcome.Message})
}

// Logout handles GET /api/authentication/logout. The token itself stays valid until expiry.
func (h *AuthenticationHandler) Logout(c *fiber.Ctx) error {
	h.transport.Clear(c)
	return c.JSON(dto.StatusResponse{Status: true, Message: MessageLoggedOut})
}

// Protected handles GET /api/authentication/protected.
func (h *AuthenticationHandler) Protected(c *fiber.Ctx) error {
	token, ok := h.transport.Extract(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MessageNotAuthenticated)
	}
	if h.strict {
		if _, err := h.tokens.Validate(token); err != nil {
			return apperrors.NewUnauthorized(auth.MessageNotAuthenticated)
		}
	}
	return c.JSON(dto.StatusResponse{Status: true, Message: MessageAuthenticated})
}

// Me handles GET /api/authentication/me; it runs behind AuthMiddleware.
func (h *AuthenticationHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MessageNotAuthenticated)
	}
	return c.JSON(dto.SessionResponse{
		Status:    true,
		Username:  principal.Username(),
		Role:      principal.Session.Role,
		ExpiresAt: principal.Session.ExpiresAt,
	})
}
