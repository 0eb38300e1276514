package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/auth-service/internal/domain"
)

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestCookieTransport_Attach(t *testing.T) {
	transport := NewCookieTransport("", true)
	expires := time.Now().Add(30 * time.Minute).UTC().Truncate(time.Second)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		transport.Attach(c, domain.IssuedToken{Value: "token-value", Claims: domain.SessionToken{ExpiresAt: expires}})
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	cookie := findCookie(resp, DefaultCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, "token-value", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.Expires.Equal(expires))
}

func TestCookieTransport_Extract(t *testing.T) {
	transport := NewCookieTransport("AuthToken", true)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		token, ok := transport.Extract(c)
		if !ok {
			return c.SendString("absent")
		}
		return c.SendString(token)
	})

	t.Run("present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "AuthToken", Value: "abc"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "abc", readBody(t, resp))
	})

	t.Run("absent", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, "absent", readBody(t, resp))
	})

	t.Run("other cookie name ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "Other", Value: "abc"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "absent", readBody(t, resp))
	})
}

func TestCookieTransport_Clear(t *testing.T) {
	transport := NewCookieTransport("AuthToken", true)
	now := time.Now()
	transport.now = func() time.Time { return now }

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		transport.Clear(c)
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	cookie := findCookie(resp, "AuthToken")
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.True(t, cookie.Expires.Before(now))
}
