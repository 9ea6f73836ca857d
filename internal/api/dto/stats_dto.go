package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/schoolyear"
)

// StatsFilterRequest is the statistics filter bar.
type StatsFilterRequest struct {
	SchoolYear   string `query:"school_year"`
	Month        string `query:"month"`
	DepartmentID string `query:"department_id"`
	TeacherID    string `query:"teacher_id"`
	Action       string `query:"action"`
}

// StatsFilter is the normalized filter bar.
type StatsFilter struct {
	SchoolYear   string
	Month        int
	DepartmentID domain.ID
	TeacherID    domain.ID
}

// Normalize fills defaults: the current school year and September.
func (r StatsFilterRequest) Normalize(now time.Time) StatsFilter {
	f := StatsFilter{
		SchoolYear:   strings.TrimSpace(r.SchoolYear),
		Month:        schoolyear.DefaultMonth,
		DepartmentID: domain.ID(strings.TrimSpace(r.DepartmentID)),
		TeacherID:    domain.ID(strings.TrimSpace(r.TeacherID)),
	}
	if _, _, err := schoolyear.Parse(f.SchoolYear); err != nil {
		f.SchoolYear = schoolyear.Current(now)
	}
	if m, err := strconv.Atoi(strings.TrimSpace(r.Month)); err == nil && schoolyear.IsMonth(m) {
		f.Month = m
	}
	return f
}

// Query maps the filter to an API query.
func (f StatsFilter) Query() (domain.StatsQuery, error) {
	year, err := schoolyear.CalendarYear(f.SchoolYear, f.Month)
	if err != nil {
		return domain.StatsQuery{}, err
	}
	return domain.StatsQuery{
		Year:         year,
		Month:        f.Month,
		DepartmentID: f.DepartmentID,
		UserID:       f.TeacherID,
	}, nil
}
