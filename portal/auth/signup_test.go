package auth_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/afterschool-portal/apiclient"
	"github.com/jrsteele09/afterschool-portal/internal/errors"
	"github.com/jrsteele09/afterschool-portal/internal/portaltest"
	"github.com/jrsteele09/afterschool-portal/page"
	"github.com/jrsteele09/afterschool-portal/portal"
	"github.com/jrsteele09/afterschool-portal/portal/auth"
	"github.com/jrsteele09/afterschool-portal/roles"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	lock sync.Mutex
	now  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = c.now.Add(d)
}

func newSignupPage(t *testing.T) (*portaltest.Env, *auth.Controller, *fakeClock) {
	env := portaltest.New(t, page.Login)
	clock := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	c := auth.New(env.Portal, env.Config)
	c.Verification = auth.NewVerification(env.Config.GetVerificationTTL(), clock.Now)
	return env, c, clock
}

func verify(t *testing.T, env *portaltest.Env, c *auth.Controller, email string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, c.SendCode(ctx, email))
	code, ok := env.Backend.VerificationCode(email)
	require.True(t, ok)
	require.NoError(t, c.VerifyCode(ctx, code))
}

func studentForm() auth.SignupForm {
	return auth.SignupForm{
		Name:            "Lee",
		Email:           "lee@x.com",
		Password:        "secret1",
		PasswordConfirm: "secret1",
		Role:            "STUDENT",
		StudentIDNo:     "20301",
	}
}

func TestVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("send and verify", func(t *testing.T) {
		env, c, clock := newSignupPage(t)
		require.NoError(t, c.SendCode(ctx, "lee@x.com"))
		require.Equal(t, auth.MsgCodeSent, c.Verification.Status())
		require.Equal(t, 180*time.Second, c.Verification.Remaining())

		clock.Advance(time.Minute)
		require.Equal(t, 2*time.Minute, c.Verification.Remaining())

		code, _ := env.Backend.VerificationCode("lee@x.com")
		require.NoError(t, c.VerifyCode(ctx, " "+code+" "))
		require.True(t, c.Verification.Verified("lee@x.com"))
		require.Equal(t, auth.MsgCodeVerified, c.Verification.Status())
		require.Zero(t, c.Verification.Remaining())
	})

	t.Run("verify before send", func(t *testing.T) {
		_, c, _ := newSignupPage(t)
		err := c.VerifyCode(ctx, "123456")
		require.Equal(t, auth.MsgCodeNotSent, portal.Message(err, ""))
	})

	t.Run("expired code", func(t *testing.T) {
		env, c, clock := newSignupPage(t)
		require.NoError(t, c.SendCode(ctx, "lee@x.com"))
		clock.Advance(181 * time.Second)

		code, _ := env.Backend.VerificationCode("lee@x.com")
		err := c.VerifyCode(ctx, code)
		require.ErrorIs(t, err, errors.ErrValidation)
		require.Equal(t, auth.MsgCodeExpired, c.Verification.Status())
		_, called := env.Backend.LastRequest(http.MethodPost, "/api/auth/email/send-code")
		require.False(t, called)
	})

	t.Run("empty code", func(t *testing.T) {
		_, c, _ := newSignupPage(t)
		require.NoError(t, c.SendCode(ctx, "lee@x.com"))
		require.Equal(t, auth.MsgCodeEmpty, portal.Message(c.VerifyCode(ctx, "  "), ""))
	})

	t.Run("wrong code", func(t *testing.T) {
		_, c, _ := newSignupPage(t)
		require.NoError(t, c.SendCode(ctx, "lee@x.com"))
		err := c.VerifyCode(ctx, "not-it")
		require.ErrorIs(t, err, apiclient.ErrRequestFailed)
		require.Equal(t, "인증코드가 일치하지 않습니다.", c.Verification.Status())
		require.False(t, c.Verification.Verified("lee@x.com"))
	})

	t.Run("bad address", func(t *testing.T) {
		env, c, _ := newSignupPage(t)
		require.Equal(t, auth.MsgInvalidEmail, portal.Message(c.SendCode(ctx, "lee"), ""))
		require.Empty(t, env.Backend.Requests())
	})

	t.Run("changing the address starts over", func(t *testing.T) {
		env, c, _ := newSignupPage(t)
		verify(t, env, c, "lee@x.com")

		c.Verification.EmailChanged("lee@x.com")
		require.True(t, c.Verification.Verified("lee@x.com"))

		c.Verification.EmailChanged("lee2@x.com")
		require.False(t, c.Verification.Verified("lee@x.com"))
		require.Equal(t, auth.MsgEmailChanged, c.Verification.Status())
	})
}

func TestSignupForm_Validate(t *testing.T) {
	tests := []struct {
		name string
		edit func(f *auth.SignupForm)
		want string
	}{
		{"missing name", func(f *auth.SignupForm) { f.Name = " " }, auth.MsgFieldsRequired},
		{"missing confirmation", func(f *auth.SignupForm) { f.PasswordConfirm = "" }, auth.MsgFieldsRequired},
		{"missing role", func(f *auth.SignupForm) { f.Role = "" }, auth.MsgRoleRequired},
		{"unknown role", func(f *auth.SignupForm) { f.Role = "PARENT" }, auth.MsgRoleRequired},
		{"student without number", func(f *auth.SignupForm) { f.StudentIDNo = "" }, auth.MsgStudentIDMissing},
		{"mismatch", func(f *auth.SignupForm) { f.PasswordConfirm = "secret2" }, auth.MsgPasswordMismatch},
		{"short", func(f *auth.SignupForm) { f.Password, f.PasswordConfirm = "abc12", "abc12" }, auth.MsgPasswordTooShort},
		{"bad email", func(f *auth.SignupForm) { f.Email = "lee@x" }, auth.MsgInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := studentForm()
			tt.edit(&f)
			err := f.Validate()
			require.ErrorIs(t, err, errors.ErrValidation)
			require.Equal(t, tt.want, portal.Message(err, ""))
		})
	}

	t.Run("teacher needs no student number", func(t *testing.T) {
		f := studentForm()
		f.Role, f.StudentIDNo = "TEACHER", ""
		require.NoError(t, f.Validate())
	})
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("unverified address", func(t *testing.T) {
		env, c, _ := newSignupPage(t)
		err := c.Signup(ctx, studentForm())
		require.Equal(t, auth.MsgEmailUnverified, portal.Message(err, ""))
		require.Empty(t, env.Backend.Requests())
	})

	t.Run("student account", func(t *testing.T) {
		env, c, _ := newSignupPage(t)
		verify(t, env, c, "lee@x.com")

		require.NoError(t, c.Signup(ctx, studentForm()))
		require.Equal(t, []string{auth.MsgSignupComplete}, env.Tab.Notices())
		require.False(t, c.Verification.Verified("lee@x.com"))

		role, ok := env.Backend.UserRole("lee@x.com")
		require.True(t, ok)
		require.Equal(t, roles.Student.String(), role)

		_, err := auth.New(env.Portal, env.Config).Login(ctx, "lee@x.com", "secret1")
		require.NoError(t, err)
	})

	t.Run("label role is sent as a code", func(t *testing.T) {
		env, c, _ := newSignupPage(t)
		verify(t, env, c, "park@x.com")
		f := studentForm()
		f.Email, f.Role, f.StudentIDNo = "park@x.com", "교사", ""
		require.NoError(t, c.Signup(ctx, f))
		role, _ := env.Backend.UserRole("park@x.com")
		require.Equal(t, "TEACHER", role)
	})

	t.Run("taken address", func(t *testing.T) {
		env, c, _ := newSignupPage(t)
		verify(t, env, c, "lee@x.com")
		env.Backend.AddUser("lee@x.com", "other12", "Other", roles.Student, "1")

		err := c.Signup(ctx, studentForm())
		require.ErrorIs(t, err, apiclient.ErrForbidden)
		require.Equal(t, auth.MsgEmailTaken, auth.SignupFailureMessage(err))
	})

	t.Run("server failure", func(t *testing.T) {
		env, c, _ := newSignupPage(t)
		verify(t, env, c, "lee@x.com")
		env.Backend.FailNext(http.MethodPost, "/api/auth/signup", http.StatusInternalServerError, "db down")

		err := c.Signup(ctx, studentForm())
		require.Equal(t, apiclient.MsgServerError, auth.SignupFailureMessage(err))
	})
}
