package server_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jrsteele09/afterschool-portal/internal/backendfake"
	"github.com/jrsteele09/afterschool-portal/internal/config"
	"github.com/jrsteele09/afterschool-portal/internal/errors"
	"github.com/jrsteele09/afterschool-portal/roles"
	"github.com/jrsteele09/afterschool-portal/server"
	"github.com/stretchr/testify/require"
)

type relayConfig struct {
	config.Config
	target  string
	origins config.AllowedOrigins
}

func (c relayConfig) GetTargetOrigin() string {
	return c.target
}

func (c relayConfig) GetAllowedOrigins() config.AllowedOrigins {
	if c.origins != nil {
		return c.origins
	}
	return c.Config.GetAllowedOrigins()
}

func newRelay(t *testing.T, target string) *server.Server {
	t.Helper()
	s, err := server.New(relayConfig{Config: config.Defaults(), target: target})
	require.NoError(t, err)
	return s
}

func serve(s http.Handler, req *http.Request) *http.Response {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec.Result()
}

func TestNew(t *testing.T) {
	t.Run("routes", func(t *testing.T) {
		s := newRelay(t, "http://backend.test")
		require.Equal(t, []string{"GET /healthz", "/api", "/api/"}, s.Routes())
	})

	t.Run("target without host", func(t *testing.T) {
		_, err := server.New(relayConfig{Config: config.Defaults(), target: "backend.test"})
		require.Error(t, err)
		require.True(t, errors.Is(err, errors.ErrValidation))
	})
}

func TestHealth(t *testing.T) {
	s := newRelay(t, "http://backend.test")

	resp := serve(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "ok http://backend.test\n", string(body))
	require.NotEmpty(t, resp.Header.Get(server.HeaderRequestID))
}

func TestProxy(t *testing.T) {
	b := backendfake.New(t)
	b.AddUser("k@x.com", "secret1", "Kim", roles.Teacher, "")
	s := newRelay(t, b.URL())

	t.Run("spoofs origin and referer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"k@x.com","password":"secret1"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Origin", "http://127.0.0.1:5500")
		req.Header.Set("Referer", "http://127.0.0.1:5500/login.html")

		resp := serve(s, req)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "http://127.0.0.1:5500", resp.Header.Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
		require.Len(t, resp.Header.Values("Access-Control-Allow-Origin"), 1)

		got, ok := b.LastRequest(http.MethodPost, "/api/auth/login")
		require.True(t, ok)
		require.Equal(t, "http://localhost:3000", got.Origin)
		require.Equal(t, "http://localhost:3000/", got.Referer)
		require.Equal(t, "application/json", got.ContentType)
	})

	t.Run("passes status, query and authorization through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/teachers/courses/9/attendance?classDate=2025-05-01", nil)
		req.Header.Set("Authorization", "Bearer "+b.IssueToken("k@x.com"))

		resp := serve(s, req)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		got, ok := b.LastRequest(http.MethodGet, "/api/teachers/courses/9/attendance")
		require.True(t, ok)
		require.Equal(t, "classDate=2025-05-01", got.Query)
		require.True(t, strings.HasPrefix(got.Authorization, "Bearer "))
	})

	t.Run("bare prefix is relayed, not redirected", func(t *testing.T) {
		resp := serve(s, httptest.NewRequest(http.MethodGet, "/api", nil))
		require.NotEqual(t, http.StatusMovedPermanently, resp.StatusCode)
		require.Empty(t, resp.Header.Get("Location"))

		_, ok := b.LastRequest(http.MethodGet, "/api")
		require.True(t, ok)
	})

	t.Run("preflight stays local", func(t *testing.T) {
		before := len(b.Requests())
		req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
		req.Header.Set("Origin", "http://127.0.0.1:5500")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "content-type,authorization")

		resp := serve(s, req)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		require.Equal(t, "http://127.0.0.1:5500", resp.Header.Get("Access-Control-Allow-Origin"))
		require.Equal(t, "GET, POST, PUT, DELETE, OPTIONS, PATCH", resp.Header.Get("Access-Control-Allow-Methods"))
		require.Equal(t, "content-type,authorization", resp.Header.Get("Access-Control-Allow-Headers"))
		require.Len(t, b.Requests(), before)
	})

	t.Run("request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/students/courses", nil)
		req.Header.Set(server.HeaderRequestID, "trace-42")
		resp := serve(s, req)
		require.Equal(t, "trace-42", resp.Header.Get(server.HeaderRequestID))

		resp = serve(s, httptest.NewRequest(http.MethodGet, "/api/students/courses", nil))
		_, err := uuid.Parse(resp.Header.Get(server.HeaderRequestID))
		require.NoError(t, err)
	})
}

func TestProxy_RestrictedOrigins(t *testing.T) {
	b := backendfake.New(t)
	s, err := server.New(relayConfig{
		Config:  config.Defaults(),
		target:  b.URL(),
		origins: config.AllowedOrigins{"http://portal.test": {}},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/students/courses", nil)
	req.Header.Set("Origin", "http://portal.test")
	resp := serve(s, req)
	require.Equal(t, "http://portal.test", resp.Header.Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/students/courses", nil)
	req.Header.Set("Origin", "http://elsewhere.test")
	resp = serve(s, req)
	require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestProxy_UpstreamDown(t *testing.T) {
	down := httptest.NewServer(http.NotFoundHandler())
	target := down.URL
	down.Close()

	s := newRelay(t, target)
	resp := serve(s, httptest.NewRequest(http.MethodGet, "/api/students/courses", nil))
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "Proxy Error", string(body))
}

func TestRecoverMiddleware(t *testing.T) {
	s := newRelay(t, "http://backend.test")
	h := server.ChainMiddleware(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}, s.RequestIDMiddleware, s.LoggingMiddleware, s.RecoverMiddleware)

	resp := serve(h, httptest.NewRequest(http.MethodGet, "/api/anything", nil))
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get(server.HeaderRequestID))
}
