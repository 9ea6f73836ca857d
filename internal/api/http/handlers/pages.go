package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/api/http/views"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/apiclient"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/auth"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/navigation"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/notify"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/session"
)

// Pages holds what every page handler needs.
type Pages struct {
	api    *apiclient.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewPages constructs the shared page base.
func NewPages(api *apiclient.Client, logger *zap.Logger) *Pages {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pages{api: api, logger: logger, now: time.Now}
}

// WithClock overrides the time source.
func (p *Pages) WithClock(now func() time.Time) *Pages {
	p.now = now
	return p
}

func (p *Pages) ctx(c *fiber.Ctx) context.Context {
	return c.UserContext()
}

// render draws a protected page inside the app layout with the caller's menu
// and any pending notice.
func (p *Pages) render(c *fiber.Ctx, name, title string, data any) error {
	id, _ := auth.IdentityFromContext(c)
	var role domain.Role
	if id != nil {
		role = id.Role
	}
	menu := navigation.MenuFor(role)

	return c.Render(name, views.Page{
		Title:    title,
		Active:   activeEntry(menu, c.Path()),
		Identity: id,
		Menu:     menu,
		Notice:   p.popNotice(c),
		Data:     data,
	}, views.LayoutApp)
}

func (p *Pages) popNotice(c *fiber.Ctx) *notify.Notice {
	n, err := notify.Pop(p.ctx(c), session.StoreFromContext(c))
	if err != nil {
		p.logger.Warn("notice read failed", zap.Error(err))
	}
	return n
}

// flash queues n for the next rendered page.
func (p *Pages) flash(c *fiber.Ctx, n notify.Notice) {
	if err := notify.Push(p.ctx(c), session.StoreFromContext(c), n); err != nil {
		p.logger.Warn("notice write failed", zap.Error(err))
	}
}

// failed logs err and queues an error notice.
func (p *Pages) failed(c *fiber.Ctx, err error, fallback string) {
	p.logger.Info("page operation failed",
		zap.String("path", c.Path()),
		zap.Error(err))
	p.flash(c, notify.FromError(err, fallback))
}

func (p *Pages) redirect(c *fiber.Ctx, to string, n notify.Notice) error {
	p.flash(c, n)
	return c.Redirect(to, fiber.StatusSeeOther)
}

// teachers loads the teacher picker options for source.
func (p *Pages) teachers(c *fiber.Ctx, source navigation.TeacherSource, departmentID domain.ID) []domain.User {
	switch source {
	case navigation.TeachersOwnDepartment:
		users, err := p.api.UsersInDepartment(p.ctx(c))
		if err != nil {
			p.failed(c, err, "Lỗi khi tải danh sách giáo viên trong tổ.")
			return nil
		}
		return users
	case navigation.TeachersBySelectedDepartment:
		if departmentID.IsZero() {
			return nil
		}
		users, err := p.api.UsersByDepartment(p.ctx(c), departmentID)
		if err != nil {
			p.failed(c, err, "Lỗi khi tải danh sách giáo viên.")
			return nil
		}
		return users
	}
	return nil
}

func (p *Pages) departments(c *fiber.Ctx, fallback string) []domain.Department {
	deps, err := p.api.ListDepartments(p.ctx(c))
	if err != nil {
		p.failed(c, err, fallback)
		return nil
	}
	return deps
}

func activeEntry(menu []navigation.Entry, path string) string {
	active := ""
	for _, e := range menu {
		if (path == e.Key || strings.HasPrefix(path, e.Key+"/")) && len(e.Key) > len(active) {
			active = e.Key
		}
	}
	return active
}

func idParam(c *fiber.Ctx) domain.ID {
	return domain.ID(strings.TrimSpace(c.Params("id")))
}
