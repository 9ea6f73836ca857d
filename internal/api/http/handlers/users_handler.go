package handlers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/api/dto"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/navigation"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/notify"
)

var spreadsheetExts = map[string]bool{".xlsx": true, ".xls": true}

type usersData struct {
	Users       []domain.User
	Departments []domain.Department
	Roles       []domain.RoleOption
	Form        dto.CreateUserRequest
	BulkErrors  []string
}

// UsersHandler serves account administration.
type UsersHandler struct {
	*Pages
}

// NewUsersHandler constructs handler.
func NewUsersHandler(pages *Pages) *UsersHandler {
	return &UsersHandler{Pages: pages}
}

// List handles GET /app/user-management.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	return h.renderList(c, usersData{})
}

// Create handles POST /app/user-management.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form")
	}

	u, err := req.ToNewUser()
	if err == nil {
		err = h.api.CreateUser(h.ctx(c), u)
	}
	if err != nil {
		h.failed(c, err, "Lỗi khi tạo người dùng.")
		req.Password = ""
		return h.renderList(c, usersData{Form: req})
	}
	return h.redirect(c, navigation.RouteUserManagement, notify.Success("Tạo người dùng thành công!"))
}

// ResetPassword handles POST /app/user-management/:id/reset-password.
func (h *UsersHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form")
	}
	err := req.Validate()
	if err == nil {
		err = h.api.ResetPassword(h.ctx(c), idParam(c), req.Password)
	}
	if err != nil {
		h.failed(c, err, "Lỗi khi reset mật khẩu.")
		return c.Redirect(navigation.RouteUserManagement, fiber.StatusSeeOther)
	}
	return h.redirect(c, navigation.RouteUserManagement, notify.Success("Reset mật khẩu thành công!"))
}

// Delete handles POST /app/user-management/:id/delete.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.api.DeleteUser(h.ctx(c), idParam(c)); err != nil {
		h.failed(c, err, "Lỗi khi xóa người dùng.")
		return c.Redirect(navigation.RouteUserManagement, fiber.StatusSeeOther)
	}
	return h.redirect(c, navigation.RouteUserManagement, notify.Success("Xóa người dùng thành công!"))
}

// BulkUpload handles POST /app/user-management/bulk-upload. Row errors are
// listed on the returned page.
func (h *UsersHandler) BulkUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		h.flash(c, notify.Warning("Vui lòng chọn file Excel để tải lên."))
		return h.renderList(c, usersData{})
	}
	if !spreadsheetExts[strings.ToLower(filepath.Ext(fh.Filename))] {
		h.flash(c, notify.Warning("Chỉ chấp nhận file .xlsx hoặc .xls."))
		return h.renderList(c, usersData{})
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := h.api.BulkUploadUsers(h.ctx(c), fh.Filename, f)
	if err != nil {
		h.failed(c, err, fmt.Sprintf("Tải lên file %s thất bại.", fh.Filename))
		return h.renderList(c, usersData{})
	}

	msg := res.Message
	if msg == "" {
		msg = "Tải lên hoàn tất."
	}
	h.flash(c, notify.Success(msg))
	return h.renderList(c, usersData{BulkErrors: res.Errors})
}

func (h *UsersHandler) renderList(c *fiber.Ctx, data usersData) error {
	data.Roles = domain.RoleOptions
	users, err := h.api.ListUsers(h.ctx(c))
	if err == nil {
		data.Users = users
		data.Departments, err = h.api.ListDepartments(h.ctx(c))
	}
	if err != nil {
		h.failed(c, err, "Không thể tải dữ liệu trang quản lý.")
	}
	return h.render(c, "users", "Quản lý tài khoản", data)
}
