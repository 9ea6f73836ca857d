package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/api/dto"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/navigation"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/notify"
)

type departmentsData struct {
	Departments []domain.Department
}

// DepartmentsHandler serves department administration.
type DepartmentsHandler struct {
	*Pages
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(pages *Pages) *DepartmentsHandler {
	return &DepartmentsHandler{Pages: pages}
}

// List handles GET /app/department-management.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	return h.render(c, "departments", "Quản lý Tổ CM", departmentsData{
		Departments: h.departments(c, "Không thể tải danh sách tổ chuyên môn."),
	})
}

// Create handles POST /app/department-management.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	name, err := h.parseName(c)
	if err == nil {
		err = h.api.CreateDepartment(h.ctx(c), name)
	}
	if err != nil {
		return h.redirect(c, navigation.RouteDepartmentManagement, notify.FromError(err, "Đã có lỗi xảy ra."))
	}
	return h.redirect(c, navigation.RouteDepartmentManagement, notify.Success("Thêm tổ chuyên môn thành công!"))
}

// Update handles POST /app/department-management/:id.
func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	name, err := h.parseName(c)
	if err == nil {
		err = h.api.UpdateDepartment(h.ctx(c), idParam(c), name)
	}
	if err != nil {
		return h.redirect(c, navigation.RouteDepartmentManagement, notify.FromError(err, "Đã có lỗi xảy ra."))
	}
	return h.redirect(c, navigation.RouteDepartmentManagement, notify.Success("Cập nhật tổ chuyên môn thành công!"))
}

// Delete handles POST /app/department-management/:id/delete.
func (h *DepartmentsHandler) Delete(c *fiber.Ctx) error {
	if err := h.api.DeleteDepartment(h.ctx(c), idParam(c)); err != nil {
		return h.redirect(c, navigation.RouteDepartmentManagement, notify.FromError(err, "Lỗi khi xóa tổ chuyên môn."))
	}
	return h.redirect(c, navigation.RouteDepartmentManagement, notify.Success("Xóa tổ chuyên môn thành công!"))
}

func (h *DepartmentsHandler) parseName(c *fiber.Ctx) (string, error) {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid form")
	}
	return req.Validated()
}
