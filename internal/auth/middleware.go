package auth

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/trip-service/internal/domain"
	apperrors "github.com/spec-kit/trip-service/pkg/util"
)

const identityKey = "auth_identity"

// Guard runs the two-stage authentication/authorization pipeline in
// front of route handlers. Both stages resolve the route's policy from
// the same registry so they agree on what "open" means.
type Guard struct {
	tokens   *TokenManager
	registry *PolicyRegistry
}

// NewGuard constructs the pipeline around a token manager and registry.
func NewGuard(tokens *TokenManager, registry *PolicyRegistry) *Guard {
	return &Guard{tokens: tokens, registry: registry}
}

// Registry exposes the policy registry for route declaration.
func (g *Guard) Registry() *PolicyRegistry {
	return g.registry
}

// Secure declares the route's policy and returns the handler chain
// authenticate -> authorize -> handler for registration with the router.
func (g *Guard) Secure(routeID string, handler fiber.Handler, roles ...RoleTag) []fiber.Handler {
	g.registry.Declare(routeID, roles...)
	return []fiber.Handler{g.Authenticate(routeID), g.Authorize(routeID), handler}
}

// Authenticate resolves a bearer token into an Identity and attaches it
// to the request. Pre-flight probes and open endpoints pass through with
// no identity attached. The stage performs no persistent-state I/O.
func (g *Guard) Authenticate(routeID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		required, declared := g.registry.RequiredRoles(routeID)
		if declared && required.Open() {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return apperrors.NewUnauthorized("missing authorization header")
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return apperrors.NewUnauthorized("malformed authorization header")
		}

		claims, err := g.tokens.Verify(parts[1])
		if err != nil {
			return apperrors.NewUnauthorized("token invalid")
		}

		c.Locals(identityKey, &domain.Identity{
			Subject: claims.Subject,
			Roles:   claims.Roles,
		})
		return c.Next()
	}
}

// Authorize enforces the route's required-role set against the resolved
// identity. Matching is a logical OR across the required roles.
func (g *Guard) Authorize(routeID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		required, declared := g.registry.RequiredRoles(routeID)
		if declared && required.Open() {
			return c.Next()
		}
		if !declared {
			// Undeclared routes fail closed.
			return apperrors.NewForbidden("no access policy declared for route")
		}

		identity, ok := IdentityFromContext(c)
		if !ok {
			// Authentication should have rejected the request already;
			// kept as a fail-closed safety net.
			return apperrors.NewForbidden("no identity resolved")
		}

		for _, tag := range required.Tags() {
			if identity.HasRole(tag) {
				return c.Next()
			}
		}
		return apperrors.NewForbidden(fmt.Sprintf(
			"caller roles %v not authorized, required roles %v",
			identity.Roles, required.Tags(),
		))
	}
}

// IdentityFromContext retrieves the identity attached by Authenticate.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}
