package e2e

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrack/fintrack/internal/app"
	"github.com/fintrack/fintrack/internal/auth"
	"github.com/fintrack/fintrack/internal/movements"
	"github.com/fintrack/fintrack/internal/pages"
	"github.com/fintrack/fintrack/internal/rbac"
	"github.com/fintrack/fintrack/internal/reports"
	"github.com/fintrack/fintrack/internal/roles"
	"github.com/fintrack/fintrack/internal/shared"
	"github.com/fintrack/fintrack/internal/users"
	"github.com/fintrack/fintrack/internal/view"
	_ "github.com/fintrack/fintrack/testing"
)

// In-memory fixture wiring the full router: real middleware stack,
// session store on miniredis, and stub persistence underneath the
// services.

type fixture struct {
	router   http.Handler
	sessions *shared.SessionManager
}

type memAuthRepo struct {
	byEmail map[string]*auth.User
}

func (m *memAuthRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (m *memAuthRepo) CreateUser(ctx context.Context, user auth.User) error {
	if _, taken := m.byEmail[user.Email]; taken {
		return auth.ErrEmailTaken
	}
	u := user
	m.byEmail[user.Email] = &u
	return nil
}

type memRBACRepo struct {
	userRoles map[string]string
	grants    map[string][]string
}

func (m *memRBACRepo) UserRoleID(ctx context.Context, userID string) (string, bool, error) {
	roleID, ok := m.userRoles[userID]
	return roleID, ok, nil
}

func (m *memRBACRepo) RolePermissionKeys(ctx context.Context, roleID string) ([]string, error) {
	return m.grants[roleID], nil
}

type memMovementsRepo struct {
	items []movements.ListItem
}

func (m *memMovementsRepo) List(ctx context.Context, limit, offset int) ([]movements.ListItem, error) {
	return m.items, nil
}

func (m *memMovementsRepo) Count(ctx context.Context) (int, error) {
	return len(m.items), nil
}

func (m *memMovementsRepo) Summarize(ctx context.Context) (movements.Summary, error) {
	return movements.Summary{}, nil
}

func (m *memMovementsRepo) Create(ctx context.Context, mv movements.Movement) (movements.ListItem, error) {
	item := movements.ListItem{ID: mv.ID, Concept: mv.Concept, Amount: mv.Amount, Date: mv.Date, Type: mv.Type}
	m.items = append(m.items, item)
	return item, nil
}

type memUsersRepo struct{}

func (memUsersRepo) List(ctx context.Context, limit, offset int) ([]users.ListItem, error) {
	return nil, nil
}
func (memUsersRepo) Count(ctx context.Context) (int, error) { return 0, nil }
func (memUsersRepo) Get(ctx context.Context, id string) (users.User, error) {
	return users.User{}, nil
}
func (memUsersRepo) Update(ctx context.Context, id string, name, roleID, phone *string) (users.User, error) {
	return users.User{}, nil
}

type memRolesRepo struct{}

func (memRolesRepo) List(ctx context.Context) ([]roles.Role, error) { return nil, nil }

type memReportsRepo struct{}

func (memReportsRepo) Summarize(ctx context.Context) (movements.Summary, error) {
	return movements.Summary{}, nil
}
func (memReportsRepo) AmountsSince(ctx context.Context, since time.Time) ([]reports.DayAmount, error) {
	return nil, nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sessionManager := shared.NewSessionManager(redisClient, "test_session", time.Hour, false)
	csrfManager := shared.NewCSRFManager("csrfsecret")
	templates, err := view.NewEngine()
	require.NoError(t, err)

	rbacRepo := &memRBACRepo{
		userRoles: map[string]string{"u-admin": "role_admin", "u-basic": "role_user"},
		grants: map[string][]string{
			"role_admin": rbac.AllPermissionKeys(),
			"role_user":  {rbac.PermMovementsRead, rbac.PermMovementsCreate},
		},
	}
	rbacService := rbac.NewService(rbacRepo)
	rbacMiddleware := rbac.Middleware{Resolver: rbacService, Logger: logger}
	pageGuard := rbac.PageGuard{Resolver: rbacService, Logger: logger}

	authRepo := &memAuthRepo{byEmail: map[string]*auth.User{
		"admin@fintrack.local": {ID: "u-admin", Name: "Admin", Email: "admin@fintrack.local", PasswordHash: mustHash(t, "admin123")},
		"basic@fintrack.local": {ID: "u-basic", Name: "Laura", Email: "basic@fintrack.local", PasswordHash: mustHash(t, "basic123")},
	}}

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Templates:          templates,
		SessionManager:     sessionManager,
		CSRFManager:        csrfManager,
		AuthHandler:        auth.NewHandler(logger, auth.NewService(authRepo), templates, sessionManager, csrfManager),
		PagesHandler:       pages.NewHandler(logger, templates, csrfManager),
		MovementsHandler:   movements.NewHandler(logger, movements.NewService(&memMovementsRepo{}), rbacMiddleware),
		UsersHandler:       users.NewHandler(logger, users.NewService(memUsersRepo{}), rbacMiddleware),
		RolesHandler:       roles.NewHandler(logger, roles.NewService(memRolesRepo{}), rbacMiddleware),
		ReportsHandler:     reports.NewHandler(logger, reports.NewService(memReportsRepo{}), rbacMiddleware),
		PermissionsHandler: rbac.NewPermissionsHandler(logger, rbacService),
		PageGuard:          pageGuard,
	})

	return &fixture{router: router, sessions: sessionManager}
}

func (f *fixture) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	res := httptest.NewRecorder()
	f.router.ServeHTTP(res, req)
	return res
}

func (f *fixture) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	res := httptest.NewRecorder()
	f.router.ServeHTTP(res, req)
	return res
}

func sessionCookie(t *testing.T, res *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range res.Result().Cookies() {
		if c.Name == "test_session" {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

// csrfToken reads the token stored in the committed session.
func (f *fixture) csrfToken(t *testing.T, cookie *http.Cookie) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	sess, err := f.sessions.Load(context.Background(), req)
	require.NoError(t, err)
	token := sess.Get(shared.CSRFSessionKey)
	require.NotEmpty(t, token, "csrf token must be present after rendering a page")
	return token
}

// login walks the real browser flow: fetch the login page, then post
// the credentials with the session cookie and CSRF token.
func (f *fixture) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	loginPage := f.get("/login", nil)
	require.Equal(t, http.StatusOK, loginPage.Code)
	cookie := sessionCookie(t, loginPage)

	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	form.Set(shared.CSRFFormField, f.csrfToken(t, cookie))

	res := f.postForm("/auth/login", form, cookie)
	require.Equal(t, http.StatusSeeOther, res.Code)
	require.Equal(t, "/", res.Header().Get("Location"))
	return cookie
}

func TestAnonymousNavigationRedirectsToLogin(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/", "/movements", "/movements/new", "/users", "/reports"} {
		res := f.get(path, nil)
		assert.Equal(t, http.StatusSeeOther, res.Code, path)
		assert.Equal(t, "/login", res.Header().Get("Location"), path)
	}

	res := f.get("/login", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "<form")
}

func TestAnonymousAPIRequestsAreUnauthenticated(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/api/movements", "/api/users", "/api/roles", "/api/reports/stats", "/api/me/permissions"} {
		res := f.get(path, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code, path)
		assert.JSONEq(t, `{"error":"Unauthenticated"}`, res.Body.String(), path)
	}
}

func TestLoginLogoutFlow(t *testing.T) {
	f := newFixture(t)
	cookie := f.login(t, "admin@fintrack.local", "admin123")

	home := f.get("/", cookie)
	assert.Equal(t, http.StatusOK, home.Code)

	perms := f.get("/api/me/permissions", cookie)
	require.Equal(t, http.StatusOK, perms.Code)
	assert.Contains(t, perms.Body.String(), rbac.PermUsersEdit)

	// Authenticated visitors bounce off the login page.
	login := f.get("/login", cookie)
	assert.Equal(t, http.StatusSeeOther, login.Code)
	assert.Equal(t, "/", login.Header().Get("Location"))

	form := url.Values{}
	form.Set(shared.CSRFFormField, f.csrfToken(t, cookie))
	logout := f.postForm("/auth/logout", form, cookie)
	assert.Equal(t, http.StatusSeeOther, logout.Code)
	assert.Equal(t, "/login", logout.Header().Get("Location"))

	afterLogout := f.get("/", cookie)
	assert.Equal(t, http.StatusSeeOther, afterLogout.Code)
	assert.Equal(t, "/login", afterLogout.Header().Get("Location"))
}

func TestBasicRoleIsScopedToMovements(t *testing.T) {
	f := newFixture(t)
	cookie := f.login(t, "basic@fintrack.local", "basic123")

	allowed := f.get("/movements", cookie)
	assert.Equal(t, http.StatusOK, allowed.Code)

	// Pages outside the grant bounce home, silently.
	for _, path := range []string{"/users", "/reports"} {
		res := f.get(path, cookie)
		assert.Equal(t, http.StatusSeeOther, res.Code, path)
		assert.Equal(t, "/", res.Header().Get("Location"), path)
	}

	// The matching API endpoints answer 403 instead of redirecting.
	for _, path := range []string{"/api/users", "/api/roles", "/api/reports/stats"} {
		res := f.get(path, cookie)
		assert.Equal(t, http.StatusForbidden, res.Code, path)
		assert.JSONEq(t, `{"error":"Forbidden"}`, res.Body.String(), path)
	}

	list := f.get("/api/movements", cookie)
	assert.Equal(t, http.StatusOK, list.Code)
}

func TestInvalidLoginStaysOnForm(t *testing.T) {
	f := newFixture(t)

	loginPage := f.get("/login", nil)
	cookie := sessionCookie(t, loginPage)

	form := url.Values{}
	form.Set("email", "admin@fintrack.local")
	form.Set("password", "wrong")
	form.Set(shared.CSRFFormField, f.csrfToken(t, cookie))

	res := f.postForm("/auth/login", form, cookie)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "Credenciales inválidas")

	after := f.get("/", cookie)
	assert.Equal(t, http.StatusSeeOther, after.Code, "failed login must not authenticate")
}

func TestFormPostWithoutCSRFTokenIsRejected(t *testing.T) {
	f := newFixture(t)

	loginPage := f.get("/login", nil)
	cookie := sessionCookie(t, loginPage)

	form := url.Values{}
	form.Set("email", "admin@fintrack.local")
	form.Set("password", "admin123")

	res := f.postForm("/auth/login", form, cookie)
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestJSONCreateThroughFullStack(t *testing.T) {
	f := newFixture(t)
	cookie := f.login(t, "basic@fintrack.local", "basic123")

	body := `{"concept":"Venta","amount":99.5,"date":"2026-08-15","type":"INCOME"}`
	req := httptest.NewRequest(http.MethodPost, "/api/movements", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	res := httptest.NewRecorder()
	f.router.ServeHTTP(res, req)

	require.Equal(t, http.StatusCreated, res.Code)
	assert.Contains(t, res.Body.String(), `"concept":"Venta"`)
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	res := f.get("/healthz", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"status":"ok"}`, res.Body.String())
}
