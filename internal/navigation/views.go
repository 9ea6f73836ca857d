package navigation

import "github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"

// Column describes one table column.
type Column struct {
	Key   string
	Title string
}

// Filter identifiers.
const (
	FilterSearch     = "search"
	FilterSchoolYear = "school_year"
	FilterMonth      = "month"
	FilterDepartment = "department"
	FilterTeacher    = "teacher"
)

// TeacherSource says where a teacher picker gets its options.
type TeacherSource int

const (
	// TeachersNone means no teacher picker.
	TeachersNone TeacherSource = iota
	// TeachersOwnDepartment lists users in the caller's own department.
	TeachersOwnDepartment
	// TeachersBySelectedDepartment lists users of the department picked in the form.
	TeachersBySelectedDepartment
)

// HistoryView lists the loan-history columns and filters for a role.
type HistoryView struct {
	Columns  []Column
	Filters  []string
	Teachers TeacherSource
}

// ShowsFilter reports whether the view has filter f.
func (v HistoryView) ShowsFilter(f string) bool { return contains(v.Filters, f) }

// ShowsColumn reports whether the view has the column key.
func (v HistoryView) ShowsColumn(key string) bool {
	for _, c := range v.Columns {
		if c.Key == key {
			return true
		}
	}
	return false
}

var (
	colWeek       = Column{Key: "week", Title: "Tuần"}
	colTeacher    = Column{Key: "teacher_name", Title: "Giáo viên"}
	colBorrowDate = Column{Key: "borrow_date", Title: "Ngày Mượn"}
	colReturnDate = Column{Key: "return_date", Title: "Ngày Trả"}
	colDeviceName = Column{Key: "device_name", Title: "Tên Thiết Bị"}
	colLessonName = Column{Key: "lesson_name", Title: "Tên Bài Dạy"}
	colClassName  = Column{Key: "class_name", Title: "Lớp"}
	colActions    = Column{Key: "actions", Title: "Hành động"}
)

// HistoryViewFor returns the history table layout for role.
func HistoryViewFor(role domain.Role) HistoryView {
	base := []Column{colWeek, colBorrowDate, colReturnDate, colDeviceName, colLessonName, colClassName, colActions}
	withTeacher := []Column{colWeek, colTeacher, colBorrowDate, colReturnDate, colDeviceName, colLessonName, colClassName, colActions}

	switch role {
	case domain.RoleTeacher:
		return HistoryView{Columns: base, Filters: []string{FilterSearch}}
	case domain.RoleLeader:
		return HistoryView{
			Columns:  withTeacher,
			Filters:  []string{FilterSearch, FilterTeacher},
			Teachers: TeachersOwnDepartment,
		}
	case domain.RoleManager, domain.RoleAdmin:
		return HistoryView{
			Columns:  withTeacher,
			Filters:  []string{FilterSearch, FilterDepartment, FilterTeacher},
			Teachers: TeachersBySelectedDepartment,
		}
	default:
		return HistoryView{Columns: base, Filters: []string{FilterSearch}}
	}
}

// StatisticsView lists the statistics filters for a role.
type StatisticsView struct {
	Filters []string
	// FixedDepartment means the department is taken from the caller's identity.
	FixedDepartment bool
	Teachers        TeacherSource
}

// ShowsFilter reports whether the view has filter f.
func (v StatisticsView) ShowsFilter(f string) bool { return contains(v.Filters, f) }

// StatisticsViewFor returns the statistics filter set for role.
func StatisticsViewFor(role domain.Role) StatisticsView {
	switch role {
	case domain.RoleAdmin, domain.RoleManager:
		return StatisticsView{
			Filters:  []string{FilterSchoolYear, FilterMonth, FilterDepartment, FilterTeacher},
			Teachers: TeachersBySelectedDepartment,
		}
	case domain.RoleLeader:
		return StatisticsView{
			Filters:         []string{FilterSchoolYear, FilterMonth, FilterTeacher},
			FixedDepartment: true,
			Teachers:        TeachersOwnDepartment,
		}
	default:
		return StatisticsView{Filters: []string{FilterSchoolYear, FilterMonth}}
	}
}

// Dashboard widget icons keyed by the widget title the API sends.
var widgetIcons = map[string]string{
	"Tổng số người dùng":             "user",
	"Phiếu mượn trong tháng":         "file-text",
	"Tổng số Tổ CM":                  "apartment",
	"Phiếu mượn của bạn (tháng này)": "file-text",
	"Thiết bị quá hạn trả":           "clock-circle",
	"Phiếu mượn của tổ (tháng này)":  "apartment",
}

// HomeView is the dashboard model.
type HomeView struct {
	Greeting string
	RoleText string
}

// HomeViewFor builds the dashboard header for an identity. Widgets themselves
// are chosen by the API per role.
func HomeViewFor(id *domain.Identity) HomeView {
	if id == nil {
		return HomeView{}
	}
	return HomeView{
		Greeting: "Chào mừng, " + id.DisplayName() + "!",
		RoleText: string(id.Role),
	}
}

// WidgetIcon returns the icon for a dashboard widget title, or "".
func WidgetIcon(title string) string {
	return widgetIcons[title]
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
