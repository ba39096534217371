package backendfake_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/jrsteele09/afterschool-portal/internal/backendfake"
	"github.com/jrsteele09/afterschool-portal/portal/models"
	"github.com/jrsteele09/afterschool-portal/roles"
	"github.com/jrsteele09/afterschool-portal/token"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, url, bearer string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestLogin(t *testing.T) {
	b := backendfake.New(t)
	b.AddUser("k@x.com", "secret1", "Kim", roles.Admin, "")

	t.Run("success", func(t *testing.T) {
		resp := post(t, b.URL()+"/api/auth/login", "", models.LoginRequest{Email: "k@x.com", Password: "secret1"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.LoginResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.Equal(t, "ROLE_ADMIN", got.Role)
		require.Equal(t, "Kim", got.Name)

		exp, ok, err := token.ExpiresAt(got.Token)
		require.NoError(t, err)
		require.True(t, ok)
		require.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := post(t, b.URL()+"/api/auth/login", "", models.LoginRequest{Email: "k@x.com", Password: "nope"})
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown user", func(t *testing.T) {
		resp := post(t, b.URL()+"/api/auth/login", "", models.LoginRequest{Email: "x@x.com", Password: "secret1"})
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestAuthorize(t *testing.T) {
	b := backendfake.New(t)
	b.AddUser("s@x.com", "secret1", "Lee", roles.Student, "20301")

	resp := post(t, b.URL()+"/api/admin/courses/approve-all", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = post(t, b.URL()+"/api/admin/courses/approve-all", b.IssueToken("s@x.com"), nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	b.SetClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	stale := b.IssueToken("s@x.com")
	b.SetClock(time.Now)
	resp = post(t, b.URL()+"/api/students/courses/1/enroll", stale, struct{}{})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFailNext(t *testing.T) {
	b := backendfake.New(t)
	b.FailNext(http.MethodPost, "/api/auth/signup", http.StatusServiceUnavailable, "down")

	resp := post(t, b.URL()+"/api/auth/signup", "", models.SignupRequest{Email: "n@x.com", Password: "secret1", Name: "N", Role: "TEACHER"})
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = post(t, b.URL()+"/api/auth/signup", "", models.SignupRequest{Email: "n@x.com", Password: "secret1", Name: "N", Role: "TEACHER"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	role, ok := b.UserRole("n@x.com")
	require.True(t, ok)
	require.Equal(t, "TEACHER", role)
	require.Len(t, b.Requests(), 2)
}
