package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack/internal/shared"
)

func stackFor(t *testing.T, mr *miniredis.Miniredis) []func(http.Handler) http.Handler {
	t.Helper()
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return MiddlewareStack(MiddlewareConfig{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		SessionManager: shared.NewSessionManager(redisClient, "test_session", time.Hour, false),
		CSRFManager:    shared.NewCSRFManager("csrfsecret"),
	})
}

func chain(middlewares []func(http.Handler) http.Handler, final http.Handler) http.Handler {
	h := final
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func TestSessionMiddlewarePopulatesContext(t *testing.T) {
	mr := miniredis.RunT(t)

	var seen *shared.Session
	h := chain(stackFor(t, mr), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	res := httptest.NewRecorder()
	h.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, seen)
	assert.False(t, seen.Authenticated())

	// The fresh session is committed alongside the response.
	cookies := res.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "test_session", cookies[0].Name)
	assert.True(t, mr.Exists("session:"+seen.ID))
}

func TestSessionMiddlewareFailsClosedOnRedisOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	stack := stackFor(t, mr)
	mr.Close()

	var seen *shared.Session
	set := false
	h := chain(stack, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.SessionFromContext(r.Context())
		set = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: "sid"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	// The request proceeds anonymously; it is never treated as
	// authenticated.
	require.True(t, set)
	assert.Nil(t, seen)
	assert.Empty(t, seen.User())
}

func TestCSRFSkipsSafeMethodsAndJSON(t *testing.T) {
	mr := miniredis.RunT(t)
	stack := stackFor(t, mr)

	var calls int
	h := chain(stack, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	res := httptest.NewRecorder()
	h.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, res.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/movements", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	res = httptest.NewRecorder()
	h.ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)

	assert.Equal(t, 2, calls)
}

func TestCSRFBlocksFormPostWithoutToken(t *testing.T) {
	mr := miniredis.RunT(t)
	stack := stackFor(t, mr)

	var called bool
	h := chain(stack, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("email=a%40b.com"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)

	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.False(t, called)
}

func TestResponseWriterCommitsSessionOnce(t *testing.T) {
	mr := miniredis.RunT(t)

	h := chain(stackFor(t, mr), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		sess.SetUser("u-1")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("first"))
		_, _ = w.Write([]byte("second"))
	}))

	res := httptest.NewRecorder()
	h.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := res.Result().Cookies()
	require.Len(t, cookies, 1, "the cookie is written exactly once")

	// The mutation made inside the handler is persisted.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sm := shared.NewSessionManager(redisClient, "test_session", time.Hour, false)
	loaded, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "u-1", loaded.User())
}
