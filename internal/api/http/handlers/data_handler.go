package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/auth"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/events"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/navigation"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/notify"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/session"
)

// DataHandler serves backup and school-year rollover.
type DataHandler struct {
	*Pages
	dispatcher events.Dispatcher
}

// NewDataHandler constructs handler. dispatcher may be nil.
func NewDataHandler(pages *Pages, dispatcher events.Dispatcher) *DataHandler {
	return &DataHandler{Pages: pages, dispatcher: dispatcher}
}

// Show handles GET /app/data-management.
func (h *DataHandler) Show(c *fiber.Ctx) error {
	return h.render(c, "data", "Quản lý Dữ liệu", nil)
}

// Backup handles POST /app/data-management/backup.
func (h *DataHandler) Backup(c *fiber.Ctx) error {
	body, err := h.api.Backup(h.ctx(c))
	if err != nil {
		h.failed(c, err, "Lỗi khi sao lưu dữ liệu.")
		return c.Redirect(navigation.RouteDataManagement, fiber.StatusSeeOther)
	}

	name := fmt.Sprintf("backup-%s.json", h.now().UTC().Format("2006-01-02"))
	h.publish(c, events.EventBackupDownloaded, events.BackupDownloadedPayload{FileName: name, SizeBytes: len(body)})
	h.flash(c, notify.Success("Sao lưu dữ liệu thành công!"))

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Attachment(name)
	return c.Send(body)
}

// NewYear handles POST /app/data-management/new-year. The irreversible call is
// only made once the confirmation box is ticked.
func (h *DataHandler) NewYear(c *fiber.Ctx) error {
	if c.FormValue("confirm") != "true" {
		return h.redirect(c, navigation.RouteDataManagement,
			notify.Warning("Vui lòng xác nhận trước khi khởi tạo năm học mới."))
	}
	if err := h.api.NewYear(h.ctx(c)); err != nil {
		return h.redirect(c, navigation.RouteDataManagement, notify.FromError(err, "Lỗi khi khởi tạo năm học mới."))
	}
	h.publish(c, events.EventYearRolledOver, nil)
	return h.redirect(c, navigation.RouteDataManagement, notify.Success("Khởi tạo năm học mới thành công!"))
}

func (h *DataHandler) publish(c *fiber.Ctx, t events.EventType, payload any) {
	if h.dispatcher == nil {
		return
	}
	id, _ := auth.IdentityFromContext(c)
	event := events.New(t, session.ScopeIDFromContext(c), events.ActorFrom(id), payload)
	if err := h.dispatcher.Publish(h.ctx(c), event); err != nil {
		h.logger.Warn("event publish failed", zap.String("type", string(t)), zap.Error(err))
	}
}
