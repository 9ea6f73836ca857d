package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/navigation"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/notify"
)

func TestEngine_LoadsEveryPage(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	for _, name := range []string{"login", "error", "home", "new_form", "edit_form", "history", "statistics", "users", "departments", "data"} {
		_, ok := e.pages[name]
		assert.True(t, ok, name)
	}
}

func TestEngine_RenderAppLayout(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	n := notify.Success("Đã lưu")
	var buf bytes.Buffer
	err = e.Render(&buf, "data", Page{
		Title:    "Quản lý Dữ liệu",
		Active:   navigation.RouteDataManagement,
		Identity: &domain.Identity{Username: "admin", Role: domain.RoleAdmin},
		Menu:     navigation.MenuFor(domain.RoleAdmin),
		Notice:   &n,
	}, LayoutApp)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `<a href="/app/data-management" data-icon="database" class="active">`)
	assert.Contains(t, html, "admin (admin)")
	assert.Contains(t, html, "notice-success")
	assert.Contains(t, html, "Khởi tạo năm học mới")
}

func TestEngine_RenderWithoutLayout(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = e.Render(&buf, "login", Page{Data: struct {
		Username string
		Remember bool
	}{Username: "gv1", Remember: true}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `value="gv1"`)
	assert.NotContains(t, buf.String(), "<html")
}

func TestEngine_UnknownPage(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	assert.Error(t, e.Render(&bytes.Buffer{}, "missing", nil))
}
