package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/apiclient"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/config"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/domain"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/events"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/observability"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/session"
)

const cookieName = "qltb_sid"

var fixedNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

// fakeAPI stands in for the REST API and records what it was asked.
type fakeAPI struct {
	mu       sync.Mutex
	token    string
	calls    []string
	auth     map[string]string
	lastBody map[string]json.RawMessage
	lastQ    map[string]url.Values
}

func newFakeAPI(token string) *fakeAPI {
	return &fakeAPI{
		token:    token,
		auth:     map[string]string{},
		lastBody: map[string]json.RawMessage{},
		lastQ:    map[string]url.Values{},
	}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.auth[key] = r.Header.Get("Authorization")
	f.lastBody[key] = body
	f.lastQ[key] = r.URL.Query()
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch key {
	case "POST /auth/login":
		var in struct{ Username, Password string }
		_ = json.Unmarshal(body, &in)
		if in.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":"Sai tên đăng nhập hoặc mật khẩu"}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"token": f.token})
	case "GET /dashboard/stats":
		_, _ = io.WriteString(w, `{"stat1":{"title":"Phiếu mượn của bạn (tháng này)","value":4}}`)
	case "GET /forms":
		_, _ = io.WriteString(w, `[{"id":1,"week":3,"borrow_date":"2024-09-16","return_date":"2024-09-17","device_name":"Máy chiếu","quantity":1,"lesson_name":"Bài 1","usage_count":1,"device_status":"Bình thường","school_year":"2024-2025","teacher_name":"Cô Lan"}]`)
	case "POST /forms", "POST /admin/new-year":
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	case "GET /admin/departments":
		_, _ = io.WriteString(w, `[{"id":2,"name":"Tổ Toán"}]`)
	case "GET /filters/users-by-department/2":
		_, _ = io.WriteString(w, `[{"id":7,"full_name":"Thầy Minh"}]`)
	case "GET /export/excel":
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = io.WriteString(w, "XLSX")
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"not found"}`)
	}
}

func (f *fakeAPI) called(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == key {
			return true
		}
	}
	return false
}

type harness struct {
	app     *fiber.App
	api     *fakeAPI
	backend *session.MemoryBackend
}

func newHarness(t *testing.T, token string) *harness {
	t.Helper()
	api := newFakeAPI(token)
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		App:     config.AppConfig{Name: "test", Version: "t"},
		API:     config.APIConfig{BaseURL: srv.URL + "/api", TimeoutSeconds: 5},
		Session: config.SessionConfig{Backend: config.SessionBackendMemory, CookieName: cookieName},
	}
	backend := session.NewMemoryBackend()
	app, err := NewServer(ServerDeps{
		Config:     cfg,
		API:        apiclient.New(cfg.API, nil),
		Backend:    backend,
		Dispatcher: events.NewInMemoryDispatcher(),
		Metrics:    observability.NewMetrics(),
		Now:        func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return &harness{app: app, api: api, backend: backend}
}

func (h *harness) do(t *testing.T, method, target, scope string, form url.Values) *http.Response {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if scope != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: scope})
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func scopeCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			return c.Value
		}
	}
	return ""
}

func makeToken(t *testing.T, user *domain.Identity, exp time.Time) string {
	t.Helper()
	claims := &session.Claims{
		User:             user,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-only"))
	require.NoError(t, err)
	return tok
}

// signIn stores a credential directly in a fresh scope.
func (h *harness) signIn(t *testing.T, user *domain.Identity, exp time.Time) (string, string) {
	t.Helper()
	scope := "2f1c8a43-2d7e-4c55-9a57-5c1b7f0f1e01"
	tok := makeToken(t, user, exp)
	require.NoError(t, h.backend.Scope(scope).Set(context.Background(), session.KeyCredential, tok))
	return scope, tok
}

var (
	teacher = &domain.Identity{ID: "12", Username: "gv1", FullName: "Nguyễn Thị Lan", Role: domain.RoleTeacher}
	admin   = &domain.Identity{ID: "1", Username: "admin", Role: domain.RoleAdmin}
)

func TestProtectedPage_EmptyStorageRedirectsToLogin(t *testing.T) {
	h := newHarness(t, "")

	resp := h.do(t, "GET", "/app/home", "", nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.NotEmpty(t, scopeCookie(resp), "a scope cookie is issued on first visit")
	assert.False(t, h.api.called("GET /dashboard/stats"))
}

func TestLoginRememberLogoutFlow(t *testing.T) {
	h := newHarness(t, makeToken(t, teacher, fixedNow.Add(24*time.Hour)))

	resp := h.do(t, "GET", "/login", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	scope := scopeCookie(resp)
	require.NotEmpty(t, scope)

	resp = h.do(t, "POST", "/login", scope, url.Values{"username": {"gv1"}, "password": {"secret"}, "remember": {"true"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/app", resp.Header.Get("Location"))

	resp = h.do(t, "GET", "/app", scope, nil)
	assert.Equal(t, "/app/home", resp.Header.Get("Location"))

	resp = h.do(t, "GET", "/app/home", scope, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page := readBody(t, resp)
	assert.Contains(t, page, "Đăng nhập thành công!")
	assert.Contains(t, page, "Chào mừng, Nguyễn Thị Lan!")
	assert.Contains(t, page, `href="/app/home"`)
	assert.Contains(t, page, `href="/app/new-form"`)
	assert.Contains(t, page, `href="/app/history"`)
	assert.NotContains(t, page, `href="/app/statistics"`)
	assert.Contains(t, page, "Phiếu mượn của bạn (tháng này)")
	assert.True(t, strings.HasPrefix(h.api.auth["GET /dashboard/stats"], "Bearer "))

	resp = h.do(t, "GET", "/app/home", scope, nil)
	assert.NotContains(t, readBody(t, resp), "Đăng nhập thành công!", "notices are shown once")

	resp = h.do(t, "POST", "/logout", scope, url.Values{})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = h.do(t, "GET", "/login", scope, nil)
	page = readBody(t, resp)
	assert.Contains(t, page, `value="gv1"`)
	assert.Contains(t, page, "checked")
	assert.Contains(t, page, "Đăng xuất thành công!")

	resp = h.do(t, "GET", "/app/home", scope, nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func slot(t *testing.T, b *session.MemoryBackend, scope, key string) string {
	t.Helper()
	v, err := b.Scope(scope).Get(context.Background(), key)
	if err != nil {
		return ""
	}
	return v
}

func TestTwoBrowsers_KeepSeparateSlots(t *testing.T) {
	tok := makeToken(t, teacher, fixedNow.Add(24*time.Hour))
	h := newHarness(t, tok)

	a := scopeCookie(h.do(t, "GET", "/login", "", nil))
	b := scopeCookie(h.do(t, "GET", "/login", "", nil))
	require.NotEmpty(t, a)
	require.NotEmpty(t, b)
	require.NotEqual(t, a, b)

	resp := h.do(t, "POST", "/login", a, url.Values{"username": {"alice"}, "password": {"secret"}, "remember": {"true"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp = h.do(t, "POST", "/login", b, url.Values{"username": {"mallory"}, "password": {"wrong"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = h.do(t, "POST", "/login", b, url.Values{"username": {"bob"}, "password": {"secret"}, "remember": {"true"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp = h.do(t, "GET", "/app/home", a, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = h.do(t, "POST", "/logout", a, url.Values{})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp = h.do(t, "POST", "/login", b, url.Values{"username": {"zzzzzzzz"}, "password": {"wrong"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	page := readBody(t, h.do(t, "GET", "/login", a, nil))
	assert.Contains(t, page, `value="alice"`)
	page = readBody(t, h.do(t, "GET", "/login", b, nil))
	assert.Contains(t, page, `value="bob"`)

	assert.Equal(t, "alice", slot(t, h.backend, a, session.KeyRememberedUser))
	assert.Empty(t, slot(t, h.backend, a, session.KeyCredential))
	assert.Equal(t, "bob", slot(t, h.backend, b, session.KeyRememberedUser))
	assert.Equal(t, tok, slot(t, h.backend, b, session.KeyCredential))

	resp = h.do(t, "GET", "/app/home", b, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = h.do(t, "GET", "/app/home", a, nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func TestLogout_GetDoesNotSignOut(t *testing.T) {
	h := newHarness(t, "")
	scope, tok := h.signIn(t, teacher, fixedNow.Add(time.Hour))

	resp := h.do(t, "GET", "/logout", scope, nil)
	assert.NotEqual(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, tok, slot(t, h.backend, scope, session.KeyCredential))
}

func TestLogin_FailureShowsServerMessage(t *testing.T) {
	h := newHarness(t, "unused")

	resp := h.do(t, "POST", "/login", "", url.Values{"username": {"gv1"}, "password": {"wrong"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page := readBody(t, resp)
	assert.Contains(t, page, "Sai tên đăng nhập hoặc mật khẩu")
	assert.Contains(t, page, `value="gv1"`)
}

func TestExpiredCredential_PurgedThenRedirected(t *testing.T) {
	h := newHarness(t, "")
	scope, _ := h.signIn(t, teacher, fixedNow.Add(-time.Minute))

	resp := h.do(t, "GET", "/app/home", scope, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "the guard checks presence only")
	page := readBody(t, resp)
	assert.NotContains(t, page, `href="/app/new-form"`, "no identity means no menu")

	assert.False(t, session.Has(context.Background(), h.backend.Scope(scope), session.KeyCredential))

	resp = h.do(t, "GET", "/app/home", scope, nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestHistory_AdminSeesTeacherColumnAndFilters(t *testing.T) {
	h := newHarness(t, "")
	scope, _ := h.signIn(t, admin, fixedNow.Add(time.Hour))

	resp := h.do(t, "GET", "/app/history?search=m%C3%A1y&department_id=2&teacher_id=7", scope, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page := readBody(t, resp)
	assert.Contains(t, page, `data-key="teacher_name"`)
	assert.Contains(t, page, "Cô Lan")
	assert.Contains(t, page, "Thầy Minh")
	assert.Contains(t, page, "16/09/2024")

	q := h.api.lastQ["GET /forms"]
	assert.Equal(t, "máy", q.Get("search"))
	assert.Equal(t, "7", q.Get("teacherId"))
}

func TestNewForm_UsesCalendarYearSchoolYear(t *testing.T) {
	h := newHarness(t, "")
	scope, _ := h.signIn(t, teacher, fixedNow.Add(time.Hour))

	form := url.Values{
		"week": {"3"}, "borrow_date": {"2025-03-10"}, "return_date": {"2025-03-11"},
		"device_name": {"Máy chiếu"}, "quantity": {"1"}, "lesson_name": {"Bài 1"},
		"usage_count": {"1"}, "device_status": {"Bình thường"},
	}
	resp := h.do(t, "POST", "/app/new-form", scope, form)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/app/history", resp.Header.Get("Location"))

	var sent domain.LoanFormInput
	require.NoError(t, json.Unmarshal(h.api.lastBody["POST /forms"], &sent))
	assert.Equal(t, "2025-2026", sent.SchoolYear)
	assert.False(t, sent.UsesIT)

	form.Set("week", "40")
	resp = h.do(t, "POST", "/app/new-form", scope, form)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Tuần phải từ 1 đến 35.")
}

func TestStatisticsExport_RequiresDepartment(t *testing.T) {
	h := newHarness(t, "")
	scope, _ := h.signIn(t, admin, fixedNow.Add(time.Hour))

	resp := h.do(t, "GET", "/app/statistics/export?kind=excel&school_year=2024-2025&month=11", scope, nil)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.False(t, h.api.called("GET /export/excel"))

	resp = h.do(t, "GET", resp.Header.Get("Location"), scope, nil)
	assert.Contains(t, readBody(t, resp), "Vui lòng chọn một tổ chuyên môn để xuất báo cáo.")

	resp = h.do(t, "GET", "/app/statistics/export?kind=excel&school_year=2024-2025&month=11&department_id=2", scope, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "BaoCao_excel_11-2024.xlsx")
	assert.Equal(t, "XLSX", readBody(t, resp))

	q := h.api.lastQ["GET /export/excel"]
	assert.Equal(t, "2024", q.Get("year"))
	assert.Equal(t, "2", q.Get("departmentId"))
	assert.True(t, q.Has("userId"))
}

func TestNewYear_RequiresConfirmation(t *testing.T) {
	h := newHarness(t, "")
	scope, _ := h.signIn(t, admin, fixedNow.Add(time.Hour))

	resp := h.do(t, "POST", "/app/data-management/new-year", scope, url.Values{})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.False(t, h.api.called("POST /admin/new-year"))

	resp = h.do(t, "POST", "/app/data-management/new-year", scope, url.Values{"confirm": {"true"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.True(t, h.api.called("POST /admin/new-year"))
}

func TestHealth_NoScopeCookie(t *testing.T) {
	h := newHarness(t, "")

	resp := h.do(t, "GET", "/health/live", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, scopeCookie(resp))

	resp = h.do(t, "GET", "/health/ready", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = h.do(t, "GET", "/health/metrics", "", nil)
	assert.Contains(t, readBody(t, resp), `"requests"`)
}

func TestUnknownPage_RendersHTMLError(t *testing.T) {
	h := newHarness(t, "")

	resp := h.do(t, "GET", "/nowhere", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Không tìm thấy trang.")
}
