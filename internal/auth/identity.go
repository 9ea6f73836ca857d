package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/session"
)

const identityKey = "auth_identity"

// IdentityLoader resolves the stored credential once per request and keeps the
// result in the request locals. A missing identity is not an error here.
type IdentityLoader struct {
	resolver *session.Resolver
}

// NewIdentityLoader constructs middleware.
func NewIdentityLoader(resolver *session.Resolver) *IdentityLoader {
	return &IdentityLoader{resolver: resolver}
}

// Handle resolves the identity for the current request.
func (l *IdentityLoader) Handle(c *fiber.Ctx) error {
	if id, ok := l.resolver.Resolve(c.UserContext(), session.StoreFromContext(c)); ok {
		c.Locals(identityKey, id)
	}
	return c.Next()
}

// IdentityFromContext retrieves the resolved identity.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	id, ok := c.Locals(identityKey).(*domain.Identity)
	return id, ok && id != nil
}

// RoleFromContext returns the caller's role, or the empty role when unknown.
func RoleFromContext(c *fiber.Ctx) domain.Role {
	if id, ok := IdentityFromContext(c); ok {
		return id.Role
	}
	return ""
}
