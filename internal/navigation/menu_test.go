package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
)

func keys(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key)
	}
	return out
}

func TestMenuFor(t *testing.T) {
	tests := []struct {
		role domain.Role
		want []string
	}{
		{domain.RoleTeacher, []string{RouteHome, RouteNewForm, RouteHistory}},
		{domain.RoleLeader, []string{RouteHome, RouteNewForm, RouteHistory, RouteStatistics}},
		{domain.RoleManager, []string{RouteStatistics}},
		{domain.RoleAdmin, []string{RouteHome, RouteUserManagement, RouteDepartmentManagement, RouteStatistics, RouteDataManagement}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, keys(MenuFor(tt.role)))
		})
	}
}

func TestMenuFor_UnknownRoles(t *testing.T) {
	for _, role := range []domain.Role{"", "student", "Admin", "TEACHER"} {
		got := MenuFor(role)
		assert.NotNil(t, got)
		assert.Empty(t, got, "role %q", role)
	}
}

func TestMenuFor_StatisticsLabelDependsOnRole(t *testing.T) {
	leader := MenuFor(domain.RoleLeader)
	assert.Equal(t, "Thống kê", leader[3].Label)

	manager := MenuFor(domain.RoleManager)
	assert.Equal(t, "Thống kê & Báo cáo", manager[0].Label)
}

func TestMenuFor_ReturnsCopy(t *testing.T) {
	m := MenuFor(domain.RoleTeacher)
	m[0].Label = "changed"
	assert.Equal(t, "Trang chủ", MenuFor(domain.RoleTeacher)[0].Label)
}

func TestMenuFor_EveryEntryHasLabelAndIcon(t *testing.T) {
	for role := range menus {
		for _, e := range MenuFor(role) {
			assert.NotEmpty(t, e.Label)
			assert.NotEmpty(t, e.Icon)
		}
	}
}
