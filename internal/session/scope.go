package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

const (
	storeLocalsKey = "session_store"
	scopeLocalsKey = "session_scope"
)

// CookieOptions configures the scope cookie.
type CookieOptions struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// ScopeMiddleware binds each browser to its own Store via a long-lived cookie.
type ScopeMiddleware struct {
	backend Backend
	cookie  CookieOptions
}

// NewScopeMiddleware constructs middleware.
func NewScopeMiddleware(backend Backend, cookie CookieOptions) *ScopeMiddleware {
	return &ScopeMiddleware{backend: backend, cookie: cookie}
}

// Handle resolves or issues the scope id and exposes the store to handlers.
func (m *ScopeMiddleware) Handle(c *fiber.Ctx) error {
	// The id outlives the request as a store key.
	id := utils.CopyString(c.Cookies(m.cookie.Name))
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
		cookie := &fiber.Cookie{
			Name:     m.cookie.Name,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			Secure:   m.cookie.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		}
		if m.cookie.MaxAge > 0 {
			cookie.MaxAge = int(m.cookie.MaxAge.Seconds())
			cookie.Expires = time.Now().Add(m.cookie.MaxAge)
		}
		c.Cookie(cookie)
	}

	st := m.backend.Scope(id)
	c.Locals(storeLocalsKey, st)
	c.Locals(scopeLocalsKey, id)
	c.SetUserContext(ContextWithStore(c.UserContext(), st))
	return c.Next()
}

// StoreFromContext returns the store bound to the request, or nil.
func StoreFromContext(c *fiber.Ctx) Store {
	st, _ := c.Locals(storeLocalsKey).(Store)
	return st
}

// ScopeIDFromContext returns the scope id bound to the request.
func ScopeIDFromContext(c *fiber.Ctx) string {
	id, _ := c.Locals(scopeLocalsKey).(string)
	return id
}
