// Package views renders the server-side HTML pages.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/api/dto"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/navigation"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/notify"
)

// Layout names.
const (
	LayoutApp    = "layouts/app"
	LayoutPublic = "layouts/public"
)

//go:embed templates
var files embed.FS

// Page is the binding every layout expects.
type Page struct {
	Title    string
	Active   string
	Identity *domain.Identity
	Menu     []navigation.Entry
	Notice   *notify.Notice
	Data     any
}

var funcs = template.FuncMap{
	"displayDate": dto.DisplayDate,
	"widgetIcon":  navigation.WidgetIcon,
	"sameID": func(a domain.ID, b any) bool {
		switch v := b.(type) {
		case domain.ID:
			return a == v
		case *domain.ID:
			return v != nil && a == *v
		case string:
			return a.String() == v
		}
		return false
	},
	"yesNo": func(b bool) string {
		if b {
			return "Có"
		}
		return "Không"
	},
}

// Engine implements fiber.Views over the embedded templates.
type Engine struct {
	mu    sync.RWMutex
	pages map[string]*template.Template
}

// New creates and loads an engine.
func New() (*Engine, error) {
	e := &Engine{}
	if err := e.Load(); err != nil {
		return nil, err
	}
	return e, nil
}

// Load parses every page together with the layouts.
func (e *Engine) Load() error {
	layouts, err := fs.Glob(files, "templates/layouts/*.html")
	if err != nil {
		return err
	}
	pageFiles, err := fs.Glob(files, "templates/pages/*.html")
	if err != nil {
		return err
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, p := range pageFiles {
		name := strings.TrimSuffix(path.Base(p), ".html")
		patterns := append(append([]string{}, layouts...), p)
		t, err := template.New(name).Funcs(funcs).ParseFS(files, patterns...)
		if err != nil {
			return fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = t
	}

	e.mu.Lock()
	e.pages = pages
	e.mu.Unlock()
	return nil
}

// Render executes page name inside the first layout, or alone when none is given.
func (e *Engine) Render(out io.Writer, name string, binding interface{}, layout ...string) error {
	e.mu.RLock()
	t, ok := e.pages[name]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}
	if len(layout) > 0 && layout[0] != "" {
		return t.ExecuteTemplate(out, layout[0], binding)
	}
	return t.ExecuteTemplate(out, "content", binding)
}
