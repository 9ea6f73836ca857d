package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/session"
)

// DefaultLoginPath is where unauthenticated visitors are sent.
const DefaultLoginPath = "/login"

// Guard gates protected pages on the presence of a stored credential.
//
// It only checks that the credential slot is non-empty. It does not decode the
// token or look at its expiry, so an expired credential still passes until the
// resolver purges it or the API rejects it.
type Guard struct {
	loginPath string
}

// NewGuard constructs the guard.
func NewGuard(loginPath string) *Guard {
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	return &Guard{loginPath: loginPath}
}

// Handle admits the request or redirects to the login page.
func (g *Guard) Handle(c *fiber.Ctx) error {
	if !session.Has(c.UserContext(), session.StoreFromContext(c), session.KeyCredential) {
		return c.Redirect(g.loginPath, fiber.StatusFound)
	}
	return c.Next()
}
