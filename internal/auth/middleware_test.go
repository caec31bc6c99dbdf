package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const wantUnauthorizedBody = `{"error":"Unauthorized: Token is missing or invalid"}`

func newTestApp(t *testing.T, tm *TokenManager) *fiber.App {
	t.Helper()

	policy := NewAccessPolicy(Public,
		Rule{Pattern: "/users/login", Requirement: Public},
		Rule{Pattern: "/images/*", Requirement: RequireAuth},
	)
	m := NewMiddleware(tm, policy, zap.NewNop())

	app := fiber.New()
	app.Use(m.Authenticate)
	app.Use(m.Enforce)
	app.Post("/users/login", func(c *fiber.Ctx) error {
		return c.SendString("login")
	})
	app.Get("/images/view", func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		require.True(t, ok)
		return c.SendString(identity.Subject + "|" + identity.Role)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestMiddleware_ValidTokenReachesHandler(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Hour)
	app := newTestApp(t, tm)

	tok, _, err := tm.Issue("alice")
	require.NoError(t, err)

	status, body := doRequest(t, app, http.MethodGet, "/images/view", tok)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "alice|ROLE_USER", body)
}

func TestMiddleware_MissingHeaderOnProtectedRoute(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Hour)
	app := newTestApp(t, tm)

	status, body := doRequest(t, app, http.MethodGet, "/images/view", "")
	require.Equal(t, http.StatusUnauthorized, status)
	require.JSONEq(t, wantUnauthorizedBody, body)
}

func TestMiddleware_RejectionIsUniformAcrossFailureKinds(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Hour)
	app := newTestApp(t, tm)

	otherKey := NewTokenManager("other-secret", time.Hour)
	forged, _, err := otherKey.Issue("alice")
	require.NoError(t, err)

	expiredManager := NewTokenManager("secret", -time.Minute)
	expired, _, err := expiredManager.Issue("alice")
	require.NoError(t, err)

	for _, token := range []string{"garbage", forged, expired} {
		status, body := doRequest(t, app, http.MethodGet, "/images/view", token)
		require.Equal(t, http.StatusUnauthorized, status)
		require.JSONEq(t, wantUnauthorizedBody, body)
	}
}

func TestMiddleware_RepeatedRejectionIsIdempotent(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Hour)
	app := newTestApp(t, tm)

	for i := 0; i < 3; i++ {
		status, body := doRequest(t, app, http.MethodGet, "/images/view", "garbage")
		require.Equal(t, http.StatusUnauthorized, status)
		require.JSONEq(t, wantUnauthorizedBody, body)
	}
}

func TestMiddleware_CaseVariantPathStillProtected(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Hour)
	// the default fiber router is case-insensitive, so /Images/view is
	// served by the /images handlers and must still be enforced
	app := newTestApp(t, tm)

	for _, path := range []string{"/Images/view", "/IMAGES/VIEW"} {
		status, body := doRequest(t, app, http.MethodGet, path, "")
		require.Equal(t, http.StatusUnauthorized, status)
		require.JSONEq(t, wantUnauthorizedBody, body)
	}

	tok, _, err := tm.Issue("alice")
	require.NoError(t, err)
	status, body := doRequest(t, app, http.MethodGet, "/Images/view", tok)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "alice|ROLE_USER", body)
}

func TestMiddleware_PublicRouteIgnoresBadToken(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Hour)
	app := newTestApp(t, tm)

	// an invalid token must not block a public endpoint
	status, body := doRequest(t, app, http.MethodPost, "/users/login", "garbage")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "login", body)
}

func TestMiddleware_NonBearerSchemeStaysUnauthenticated(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Hour)
	app := newTestApp(t, tm)

	req := httptest.NewRequest(http.MethodGet, "/images/view", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
