package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/api/dto"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/apiclient"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/auth"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/navigation"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/notify"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/schoolyear"
)

type loanFormData struct {
	ID         domain.ID
	SchoolYear string
	Form       dto.LoanFormRequest
	Statuses   []string
}

type historyData struct {
	View         navigation.HistoryView
	Forms        []domain.LoanForm
	Search       string
	DepartmentID domain.ID
	TeacherID    domain.ID
	Departments  []domain.Department
	Teachers     []domain.User
}

// FormsHandler serves loan-form entry and history.
type FormsHandler struct {
	*Pages
}

// NewFormsHandler constructs handler.
func NewFormsHandler(pages *Pages) *FormsHandler {
	return &FormsHandler{Pages: pages}
}

// NewForm handles GET /app/new-form.
func (h *FormsHandler) NewForm(c *fiber.Ctx) error {
	today := h.now().Format("2006-01-02")
	return h.renderNew(c, dto.LoanFormRequest{BorrowDate: today})
}

// Create handles POST /app/new-form. New forms are stamped with the school
// year derived from the current calendar year.
func (h *FormsHandler) Create(c *fiber.Ctx) error {
	var req dto.LoanFormRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form")
	}

	in, err := req.ToInput(schoolyear.ForNewForm(h.now()))
	if err == nil {
		err = h.api.CreateForm(h.ctx(c), in)
	}
	if err != nil {
		h.failed(c, err, "Đã có lỗi xảy ra.")
		return h.renderNew(c, req)
	}
	return h.redirect(c, navigation.RouteHistory, notify.Success("Tạo phiếu mượn thành công!"))
}

// History handles GET /app/history.
func (h *FormsHandler) History(c *fiber.Ctx) error {
	view := navigation.HistoryViewFor(auth.RoleFromContext(c))
	data := historyData{
		View:   view,
		Search: strings.TrimSpace(c.Query("search")),
	}
	if view.ShowsFilter(navigation.FilterDepartment) {
		data.DepartmentID = domain.ID(strings.TrimSpace(c.Query("department_id")))
		data.Departments = h.departments(c, "Lỗi khi tải danh sách tổ chuyên môn.")
	}
	if view.ShowsFilter(navigation.FilterTeacher) {
		data.TeacherID = domain.ID(strings.TrimSpace(c.Query("teacher_id")))
		data.Teachers = h.teachers(c, view.Teachers, data.DepartmentID)
	}

	forms, err := h.api.ListForms(h.ctx(c), apiclient.FormFilter{Search: data.Search, TeacherID: data.TeacherID})
	if err != nil {
		h.failed(c, err, "Không thể tải lịch sử phiếu mượn.")
	}
	data.Forms = forms
	return h.render(c, "history", "Lịch sử mượn", data)
}

// Edit handles GET /app/history/:id/edit.
func (h *FormsHandler) Edit(c *fiber.Ctx) error {
	form, err := h.api.GetForm(h.ctx(c), idParam(c))
	if err != nil {
		h.failed(c, err, "Không thể tải phiếu mượn.")
		return c.Redirect(navigation.RouteHistory, fiber.StatusSeeOther)
	}
	return h.render(c, "edit_form", "Chỉnh sửa phiếu mượn", loanFormData{
		ID:         form.ID,
		SchoolYear: form.SchoolYear,
		Form:       dto.FromLoanForm(*form),
		Statuses:   domain.DeviceStatuses,
	})
}

// Update handles POST /app/history/:id. The record keeps its school year.
func (h *FormsHandler) Update(c *fiber.Ctx) error {
	id := idParam(c)
	var req dto.LoanFormRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form")
	}

	sy := strings.TrimSpace(c.FormValue("school_year"))
	if _, _, err := schoolyear.Parse(sy); err != nil {
		form, err := h.api.GetForm(h.ctx(c), id)
		if err != nil {
			return h.redirect(c, navigation.RouteHistory, notify.FromError(err, "Lỗi khi cập nhật phiếu mượn."))
		}
		sy = form.SchoolYear
	}

	in, err := req.ToInput(sy)
	if err == nil {
		err = h.api.UpdateForm(h.ctx(c), id, in)
	}
	if err != nil {
		h.failed(c, err, "Lỗi khi cập nhật phiếu mượn.")
		if isNotFound(err) {
			return c.Redirect(navigation.RouteHistory, fiber.StatusSeeOther)
		}
		return h.render(c, "edit_form", "Chỉnh sửa phiếu mượn", loanFormData{
			ID: id, SchoolYear: sy, Form: req, Statuses: domain.DeviceStatuses,
		})
	}
	return h.redirect(c, navigation.RouteHistory, notify.Success("Cập nhật phiếu mượn thành công!"))
}

// Delete handles POST /app/history/:id/delete.
func (h *FormsHandler) Delete(c *fiber.Ctx) error {
	if err := h.api.DeleteForm(h.ctx(c), idParam(c)); err != nil {
		h.failed(c, err, "Lỗi khi xóa phiếu mượn.")
		return c.Redirect(navigation.RouteHistory, fiber.StatusSeeOther)
	}
	return h.redirect(c, navigation.RouteHistory, notify.Success("Xóa phiếu mượn thành công!"))
}

func (h *FormsHandler) renderNew(c *fiber.Ctx, req dto.LoanFormRequest) error {
	return h.render(c, "new_form", "Nhập phiếu mượn", loanFormData{Form: req, Statuses: domain.DeviceStatuses})
}

func isNotFound(err error) bool {
	var apiErr *apiclient.APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
