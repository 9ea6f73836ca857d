package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/api/dto"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/api/http/views"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/auth"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/navigation"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/notify"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/service"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/session"
)

// AppRoot is where a successful login lands.
const AppRoot = "/app"

type loginData struct {
	Username string
	Remember bool
}

// AuthHandler serves the login and logout pages.
type AuthHandler struct {
	*Pages
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(pages *Pages, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{Pages: pages, auth: authService}
}

// LoginPage handles GET /login. A remembered username is prefilled.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	data := loginData{}
	if user, ok := h.auth.RememberedUser(h.ctx(c), session.StoreFromContext(c)); ok {
		data = loginData{Username: user, Remember: true}
	}
	return h.renderLogin(c, data, h.popNotice(c))
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form")
	}

	err := h.auth.Login(h.ctx(c), session.StoreFromContext(c), session.ScopeIDFromContext(c), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
		Remember: req.RememberChecked(),
	})
	if err != nil {
		h.logger.Info("login rejected", zap.String("username", req.Username), zap.Error(err))
		n := notify.FromError(err, "Đã có lỗi xảy ra.")
		return h.renderLogin(c, loginData{Username: req.Username, Remember: req.RememberChecked()}, &n)
	}

	return h.redirect(c, AppRoot, notify.Success("Đăng nhập thành công!"))
}

// LoginThrottled renders the login page when the rate limit is hit.
func (h *AuthHandler) LoginThrottled(c *fiber.Ctx) error {
	n := notify.Warning("Bạn đã thử đăng nhập quá nhiều lần. Vui lòng thử lại sau.")
	c.Status(fiber.StatusTooManyRequests)
	return h.renderLogin(c, loginData{Username: c.FormValue("username")}, &n)
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	id, _ := auth.IdentityFromContext(c)
	if err := h.auth.Logout(h.ctx(c), session.StoreFromContext(c), session.ScopeIDFromContext(c), id); err != nil {
		return err
	}
	return h.redirect(c, auth.DefaultLoginPath, notify.Success("Đăng xuất thành công!"))
}

// Root handles GET /.
func (h *AuthHandler) Root(c *fiber.Ctx) error {
	return c.Redirect(auth.DefaultLoginPath, fiber.StatusFound)
}

// AppIndex handles GET /app.
func (h *AuthHandler) AppIndex(c *fiber.Ctx) error {
	return c.Redirect(navigation.RouteHome, fiber.StatusFound)
}

func (h *AuthHandler) renderLogin(c *fiber.Ctx, data loginData, n *notify.Notice) error {
	return c.Render("login", views.Page{Title: "Đăng nhập", Notice: n, Data: data}, views.LayoutPublic)
}
