// Package navigation derives what each role sees: the side menu and the
// columns and filters of individual pages.
package navigation

import "github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"

// Route keys.
const (
	RouteHome                 = "/app/home"
	RouteNewForm              = "/app/new-form"
	RouteHistory              = "/app/history"
	RouteStatistics           = "/app/statistics"
	RouteUserManagement       = "/app/user-management"
	RouteDepartmentManagement = "/app/department-management"
	RouteDataManagement       = "/app/data-management"
)

// Icon categories.
const (
	IconHome      = "home"
	IconForm      = "form"
	IconHistory   = "history"
	IconChart     = "bar-chart"
	IconTeam      = "team"
	IconApartment = "apartment"
	IconDatabase  = "database"
)

// Entry is one side-menu item.
type Entry struct {
	Key   string
	Label string
	Icon  string
}

var (
	home        = Entry{Key: RouteHome, Label: "Trang chủ", Icon: IconHome}
	newForm     = Entry{Key: RouteNewForm, Label: "Nhập phiếu mượn", Icon: IconForm}
	history     = Entry{Key: RouteHistory, Label: "Lịch sử mượn", Icon: IconHistory}
	statsShort  = Entry{Key: RouteStatistics, Label: "Thống kê", Icon: IconChart}
	statsReport = Entry{Key: RouteStatistics, Label: "Thống kê & Báo cáo", Icon: IconChart}
	users       = Entry{Key: RouteUserManagement, Label: "Quản lý tài khoản", Icon: IconTeam}
	departments = Entry{Key: RouteDepartmentManagement, Label: "Quản lý Tổ CM", Icon: IconApartment}
	data        = Entry{Key: RouteDataManagement, Label: "Quản lý Dữ liệu", Icon: IconDatabase}
)

// menus is enumerated per role; overlaps are repeated on purpose so each row
// can be read on its own.
var menus = map[domain.Role][]Entry{
	domain.RoleTeacher: {home, newForm, history},
	domain.RoleLeader:  {home, newForm, history, statsShort},
	domain.RoleManager: {statsReport},
	domain.RoleAdmin:   {home, users, departments, statsReport, data},
}

// MenuFor returns the ordered menu for role. Unknown roles get an empty menu.
func MenuFor(role domain.Role) []Entry {
	entries, ok := menus[role]
	if !ok {
		return []Entry{}
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
