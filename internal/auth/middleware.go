package auth

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const identityKey = "auth_identity"

const bearerPrefix = "Bearer "

// unauthorizedBody is the single client-visible shape for every
// authentication failure on a protected route.
const unauthorizedBody = "Unauthorized: Token is missing or invalid"

// Middleware runs the per-request authentication pipeline.
type Middleware struct {
	tokens *TokenManager
	policy *AccessPolicy
	logger *zap.Logger
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenManager, policy *AccessPolicy, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, policy: policy, logger: logger}
}

// Authenticate extracts and verifies a bearer token, once per request.
// It never rejects: a missing or invalid token just leaves the request
// unauthenticated and lets the route policy decide.
func (m *Middleware) Authenticate(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return c.Next()
	}

	identity, err := m.tokens.Verify(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		// failure kind stays server-side
		m.logger.Debug("token rejected",
			zap.String("path", c.Path()),
			zap.String("kind", err.Error()))
		return c.Next()
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// Enforce applies the route access policy after authentication ran.
func (m *Middleware) Enforce(c *fiber.Ctx) error {
	if m.policy.RequirementFor(c.Path()) == RequireAuth {
		if _, ok := IdentityFromContext(c); !ok {
			return Unauthorized(c)
		}
	}
	return c.Next()
}

// Unauthorized writes the fixed 401 response used for every auth failure.
func Unauthorized(c *fiber.Ctx) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": unauthorizedBody})
}

// IdentityFromContext retrieves the authenticated identity, if any.
func IdentityFromContext(c *fiber.Ctx) (Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return Identity{}, false
	}
	identity, ok := val.(Identity)
	return identity, ok
}
