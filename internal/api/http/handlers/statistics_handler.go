package handlers

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/api/dto"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/apiclient"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/auth"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/navigation"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/notify"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/schoolyear"
)

type statisticsData struct {
	View         navigation.StatisticsView
	Filter       dto.StatsFilter
	SchoolYears  []string
	Months       []schoolyear.Month
	DepartmentID domain.ID
	TeacherID    domain.ID
	Departments  []domain.Department
	Teachers     []domain.User
	Stats        *domain.Statistics
}

// StatisticsHandler serves aggregates and report downloads.
type StatisticsHandler struct {
	*Pages
}

// NewStatisticsHandler constructs handler.
func NewStatisticsHandler(pages *Pages) *StatisticsHandler {
	return &StatisticsHandler{Pages: pages}
}

// Show handles GET /app/statistics. Aggregates are fetched only for action=fetch.
func (h *StatisticsHandler) Show(c *fiber.Ctx) error {
	var req dto.StatsFilterRequest
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filter")
	}
	view, filter := h.scopedFilter(c, req)

	data := statisticsData{
		View:         view,
		Filter:       filter,
		SchoolYears:  schoolyear.Options(h.now()),
		Months:       schoolyear.Months,
		DepartmentID: filter.DepartmentID,
		TeacherID:    filter.TeacherID,
	}
	if view.ShowsFilter(navigation.FilterDepartment) {
		data.Departments = h.departments(c, "Lỗi khi tải danh sách tổ chuyên môn.")
	}
	if view.ShowsFilter(navigation.FilterTeacher) {
		data.Teachers = h.teachers(c, view.Teachers, filter.DepartmentID)
	}

	if req.Action == "fetch" {
		q, err := filter.Query()
		if err == nil {
			data.Stats, err = h.api.Statistics(h.ctx(c), q)
		}
		if err != nil {
			h.failed(c, err, "Lỗi khi tải dữ liệu thống kê.")
		}
	}
	return h.render(c, "statistics", "Thống kê", data)
}

// Export handles GET /app/statistics/export?kind=excel|pdf. A department is required.
func (h *StatisticsHandler) Export(c *fiber.Ctx) error {
	var req dto.StatsFilterRequest
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filter")
	}
	_, filter := h.scopedFilter(c, req)
	back := statisticsURL(filter)

	kind := c.Query("kind")
	if kind != apiclient.ExportExcel && kind != apiclient.ExportPDF {
		return fiber.NewError(fiber.StatusBadRequest, "unsupported export kind")
	}
	if filter.DepartmentID.IsZero() {
		return h.redirect(c, back, notify.Warning("Vui lòng chọn một tổ chuyên môn để xuất báo cáo."))
	}

	q, err := filter.Query()
	if err != nil {
		return h.redirect(c, back, notify.FromError(err, "Xuất file thất bại!"))
	}
	body, err := h.api.Export(h.ctx(c), kind, q)
	if err != nil {
		h.failed(c, err, "Xuất file thất bại!")
		return c.Redirect(back, fiber.StatusSeeOther)
	}

	if kind == apiclient.ExportExcel {
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	} else {
		c.Set(fiber.HeaderContentType, "application/pdf")
	}
	c.Attachment(apiclient.ExportFileName(kind, q.Month, q.Year))
	return c.Send(body)
}

// scopedFilter applies the role's filter set: leaders are pinned to their own
// department, hidden pickers are ignored.
func (h *StatisticsHandler) scopedFilter(c *fiber.Ctx, req dto.StatsFilterRequest) (navigation.StatisticsView, dto.StatsFilter) {
	view := navigation.StatisticsViewFor(auth.RoleFromContext(c))
	filter := req.Normalize(h.now())

	if view.FixedDepartment {
		filter.DepartmentID = ""
		if id, ok := auth.IdentityFromContext(c); ok {
			filter.DepartmentID = id.Department()
		}
	} else if !view.ShowsFilter(navigation.FilterDepartment) {
		filter.DepartmentID = ""
	}
	if !view.ShowsFilter(navigation.FilterTeacher) {
		filter.TeacherID = ""
	}
	return view, filter
}

func statisticsURL(f dto.StatsFilter) string {
	v := url.Values{}
	v.Set("school_year", f.SchoolYear)
	v.Set("month", strconv.Itoa(f.Month))
	if !f.DepartmentID.IsZero() {
		v.Set("department_id", f.DepartmentID.String())
	}
	if !f.TeacherID.IsZero() {
		v.Set("teacher_id", f.TeacherID.String())
	}
	return navigation.RouteStatistics + "?" + v.Encode()
}
