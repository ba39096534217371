package apiclient_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/jrsteele09/afterschool-portal/apiclient"
	"github.com/jrsteele09/afterschool-portal/internal/config"
	"github.com/jrsteele09/afterschool-portal/page"
	"github.com/jrsteele09/afterschool-portal/session"
	"github.com/jrsteele09/afterschool-portal/storage/memstore"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	client   *apiclient.Client
	tab      *page.Tab
	sessions *session.Store
	hits     *atomic.Int32
}

func newFixture(t *testing.T, at page.Page, handler http.HandlerFunc) *fixture {
	t.Helper()
	hits := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := config.Defaults()
	tab := page.NewTab("portal.school.kr", at)
	sessions := session.NewStoreFromConfig(memstore.New(), cfg)
	client := apiclient.New(cfg, sessions, tab, apiclient.WithBaseURL(srv.URL))
	return &fixture{client: client, tab: tab, sessions: sessions, hits: hits}
}

func jsonResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func TestResolveBaseURL(t *testing.T) {
	cfg := config.Defaults()

	require.Equal(t, "http://localhost:4000", apiclient.ResolveBaseURL(cfg, page.Location{Hostname: "localhost"}))
	require.Equal(t, "http://localhost:4000", apiclient.ResolveBaseURL(cfg, page.Location{Hostname: "127.0.0.1"}))
	require.Equal(t, cfg.GetBackendOrigin(), apiclient.ResolveBaseURL(cfg, page.Location{Hostname: "portal.school.kr"}))

	client := apiclient.New(cfg, session.NewStoreFromConfig(memstore.New(), cfg), page.NewTab("localhost", page.Student))
	require.Equal(t, "http://localhost:4000", client.BaseURL())
}

func TestRequest_Headers(t *testing.T) {
	var got http.Header
	var gotBody string
	f := newFixture(t, page.Student, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.WriteHeader(http.StatusNoContent)
	})
	ctx := context.Background()

	t.Run("anonymous", func(t *testing.T) {
		_, err := f.client.Request(ctx, "/api/auth/login", apiclient.RequestOptions{Method: http.MethodPost, Body: map[string]string{"email": "k@x.com"}})
		require.NoError(t, err)
		require.Equal(t, "application/json", got.Get("Content-Type"))
		require.Empty(t, got.Get("Authorization"))
		require.JSONEq(t, `{"email":"k@x.com"}`, gotBody)
	})

	t.Run("bearer token and forced content type", func(t *testing.T) {
		require.NoError(t, f.sessions.Save(ctx, "a.b.c", "STUDENT", "Lee", "l@x.com"))
		_, err := f.client.Request(ctx, "/api/students/courses", apiclient.RequestOptions{
			Headers: map[string]string{"Content-Type": "text/plain", "X-Trace": "1"},
		})
		require.NoError(t, err)
		require.Equal(t, "Bearer a.b.c", got.Get("Authorization"))
		require.Equal(t, "application/json", got.Get("Content-Type"))
		require.Equal(t, "1", got.Get("X-Trace"))
	})
}

func TestRequest_Unauthorized(t *testing.T) {
	f := newFixture(t, page.Admin, jsonResponse(http.StatusUnauthorized, `{"message":"token expired"}`))
	ctx := context.Background()
	require.NoError(t, f.sessions.Save(ctx, "a.b.c", "ADMIN", "Kim", "k@x.com"))

	_, err := f.client.Request(ctx, "/api/admin/users", apiclient.RequestOptions{})
	require.ErrorIs(t, err, apiclient.ErrUnauthorized)
	require.Equal(t, apiclient.KindUnauthorized, apiclient.KindOf(err))

	_, ok, loadErr := f.sessions.Load(ctx)
	require.NoError(t, loadErr)
	require.False(t, ok)
	require.Equal(t, []page.Page{page.Login}, f.tab.Navigations())
	require.Equal(t, []string{apiclient.MsgSessionExpired}, f.tab.Notices())
}

func TestRequest_Forbidden(t *testing.T) {
	ctx := context.Background()

	t.Run("backend message surfaces verbatim", func(t *testing.T) {
		f := newFixture(t, page.Student, jsonResponse(http.StatusForbidden, `{"message":"이미 가입된 이메일입니다"}`))
		_, err := f.client.Request(ctx, "/api/auth/signup", apiclient.RequestOptions{Method: http.MethodPost})
		require.ErrorIs(t, err, apiclient.ErrForbidden)
		require.Equal(t, "이미 가입된 이메일입니다", err.Error())
		require.Equal(t, []string{"이미 가입된 이메일입니다"}, f.tab.Notices())
		require.Empty(t, f.tab.Navigations())
	})

	t.Run("session is kept", func(t *testing.T) {
		f := newFixture(t, page.Teacher, jsonResponse(http.StatusForbidden, `{}`))
		require.NoError(t, f.sessions.Save(ctx, "a.b.c", "TEACHER", "Park", "p@x.com"))
		_, err := f.client.Request(ctx, "/api/admin/users", apiclient.RequestOptions{})
		require.ErrorIs(t, err, apiclient.ErrForbidden)
		require.Equal(t, apiclient.MsgForbidden, err.Error())
		_, ok, loadErr := f.sessions.Load(ctx)
		require.NoError(t, loadErr)
		require.True(t, ok)
	})

	t.Run("no notice on the login page", func(t *testing.T) {
		f := newFixture(t, page.Login, jsonResponse(http.StatusForbidden, `{"message":"Password incorrect"}`))
		_, err := f.client.Request(ctx, "/api/auth/login", apiclient.RequestOptions{Method: http.MethodPost})
		require.ErrorIs(t, err, apiclient.ErrForbidden)
		require.Equal(t, apiclient.MsgWrongPassword, err.Error())
		require.Empty(t, f.tab.Notices())
	})

	t.Run("non json body keeps default", func(t *testing.T) {
		f := newFixture(t, page.Student, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, "Forbidden")
		})
		_, err := f.client.Request(ctx, "/api/x", apiclient.RequestOptions{})
		require.Equal(t, apiclient.MsgForbidden, err.Error())
	})
}

func TestFriendlyMessage(t *testing.T) {
	tests := map[string]string{
		"duplicate key value":      apiclient.MsgEmailTaken,
		"이미 존재하는 이메일입니다":           apiclient.MsgEmailTaken,
		"User not found":           apiclient.MsgEmailUnknown,
		"가입되지 않은 사용자":              apiclient.MsgEmailUnknown,
		"존재하지 않는 사용자입니다":           apiclient.MsgEmailUnknown,
		"비밀번호가 틀렸습니다":              apiclient.MsgWrongPassword,
		"incorrect credentials":    apiclient.MsgWrongPassword,
		"수강 정원이 초과되었습니다":           "수강 정원이 초과되었습니다",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			require.Equal(t, want, apiclient.FriendlyMessage(in))
		})
	}
}

func TestRequest_StatusMapping(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
		message string
	}{
		{"404", jsonResponse(http.StatusNotFound, `{"message":"no course"}`), apiclient.ErrNotFound, apiclient.MsgNotFound},
		{"500", jsonResponse(http.StatusInternalServerError, `{}`), apiclient.ErrServerError, apiclient.MsgServerError},
		{"503", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) }, apiclient.ErrServerError, apiclient.MsgServerError},
		{"400 with message", jsonResponse(http.StatusBadRequest, `{"message":"정원은 1명 이상이어야 합니다."}`), apiclient.ErrRequestFailed, "정원은 1명 이상이어야 합니다."},
		{"400 without message", jsonResponse(http.StatusBadRequest, `{"error":"bad"}`), apiclient.ErrRequestFailed, apiclient.MsgRequestFailed},
		{"409 text", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusConflict) }, apiclient.ErrRequestFailed, apiclient.MsgRequestFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, page.Student, tt.handler)
			_, err := f.client.Request(ctx, "/api/students/courses/1", apiclient.RequestOptions{})
			require.ErrorIs(t, err, tt.want)
			require.Equal(t, tt.message, err.Error())
			require.Equal(t, int32(1), f.hits.Load(), "no retries")
			require.Empty(t, f.tab.Navigations())
		})
	}
}

func TestRequest_Success(t *testing.T) {
	ctx := context.Background()

	t.Run("json body returned unchanged", func(t *testing.T) {
		body := `{"token":"a.b.c","role":"ADMIN","name":"Kim","email":"k@x.com"}`
		f := newFixture(t, page.Login, jsonResponse(http.StatusOK, body))
		raw, err := f.client.Request(ctx, "/api/auth/login", apiclient.RequestOptions{Method: http.MethodPost})
		require.NoError(t, err)
		require.Equal(t, body, string(raw))
	})

	t.Run("json with charset", func(t *testing.T) {
		f := newFixture(t, page.Student, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json;charset=UTF-8")
			_, _ = io.WriteString(w, `[1,2]`)
		})
		raw, err := f.client.Request(ctx, "/api/students/surveys", apiclient.RequestOptions{})
		require.NoError(t, err)
		require.JSONEq(t, `[1,2]`, string(raw))
	})

	t.Run("empty 204", func(t *testing.T) {
		f := newFixture(t, page.Student, func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
		raw, err := f.client.Request(ctx, "/api/students/courses/1/enroll", apiclient.RequestOptions{Method: http.MethodDelete})
		require.NoError(t, err)
		require.Nil(t, raw)
	})

	t.Run("plain text 200", func(t *testing.T) {
		f := newFixture(t, page.Student, func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, "ok") })
		raw, err := f.client.Request(ctx, "/api/x", apiclient.RequestOptions{})
		require.NoError(t, err)
		require.Nil(t, raw)
	})
}

func TestRequest_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cfg := config.Defaults()
	tab := page.NewTab("localhost", page.Student)
	client := apiclient.New(cfg, session.NewStoreFromConfig(memstore.New(), cfg), tab, apiclient.WithBaseURL(url))

	_, err := client.Request(context.Background(), "/api/students/courses", apiclient.RequestOptions{})
	require.ErrorIs(t, err, apiclient.ErrNetworkError)
	require.Equal(t, "서버에 연결할 수 없습니다. 네트워크 연결을 확인해주세요.", err.Error())

	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	require.Error(t, apiErr.Cause)
	require.Zero(t, apiErr.Status)
	require.Empty(t, tab.Navigations())
}

func TestCall(t *testing.T) {
	type course struct {
		CourseID   int64  `json:"courseId"`
		CourseName string `json:"courseName"`
	}
	ctx := context.Background()

	f := newFixture(t, page.Student, jsonResponse(http.StatusOK, `[{"courseId":7,"courseName":"로봇 코딩"}]`))
	got, err := apiclient.Get[[]course](ctx, f.client, "/api/students/courses")
	require.NoError(t, err)
	require.Equal(t, []course{{CourseID: 7, CourseName: "로봇 코딩"}}, got)

	empty := newFixture(t, page.Student, func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	none, err := apiclient.Call[*course](ctx, empty.client, http.MethodPost, "/api/x", struct{}{})
	require.NoError(t, err)
	require.Nil(t, none)

	wrong := newFixture(t, page.Student, jsonResponse(http.StatusOK, `{"courseId":"seven"}`))
	_, err = apiclient.Get[course](ctx, wrong.client, "/api/x")
	require.ErrorIs(t, err, apiclient.ErrRequestFailed)
}

func TestRequest_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := newFixture(t, page.Student, func(w http.ResponseWriter, r *http.Request) {
		cancel()
		<-r.Context().Done()
	})

	_, err := f.client.Request(ctx, "/api/students/my-courses", apiclient.RequestOptions{})
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, apiclient.ErrNetworkError)
	require.Empty(t, apiclient.KindOf(err))
	require.Equal(t, "fallback", apiclient.MessageOf(err, "fallback"))
	require.Empty(t, f.tab.Notices())
	require.Empty(t, f.tab.Navigations())
}
