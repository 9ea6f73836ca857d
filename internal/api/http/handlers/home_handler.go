package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/auth"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/navigation"
)

type homeData struct {
	View  navigation.HomeView
	Cards []domain.StatCard
}

// HomeHandler serves the dashboard.
type HomeHandler struct {
	*Pages
}

// NewHomeHandler constructs handler.
func NewHomeHandler(pages *Pages) *HomeHandler {
	return &HomeHandler{Pages: pages}
}

// Show handles GET /app/home.
func (h *HomeHandler) Show(c *fiber.Ctx) error {
	id, _ := auth.IdentityFromContext(c)
	data := homeData{View: navigation.HomeViewFor(id)}

	stats, err := h.api.DashboardStats(h.ctx(c))
	if err != nil {
		h.failed(c, err, "Không thể tải dữ liệu dashboard.")
	} else {
		data.Cards = stats.Cards()
	}
	return h.render(c, "home", "Trang chủ", data)
}
