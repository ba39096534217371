// Package auth drives the login page: signing in and out, e-mail
// verification and account sign-up.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/afterschool-portal/apiclient"
	"github.com/jrsteele09/afterschool-portal/internal/config"
	"github.com/jrsteele09/afterschool-portal/internal/errors"
	"github.com/jrsteele09/afterschool-portal/page"
	"github.com/jrsteele09/afterschool-portal/portal"
	"github.com/jrsteele09/afterschool-portal/portal/models"
	"github.com/rs/zerolog/log"
)

const (
	loginPath        = "/api/auth/login"
	signupPath       = "/api/auth/signup"
	sendCodePath     = "/api/auth/send-verification"
	verifyCodePath   = "/api/auth/email/send-code"
	minPasswordRunes = 6
)

// Controller backs one login page. It is not safe for concurrent use by
// several pages; Verification is.
type Controller struct {
	pc           *portal.Context
	Verification *Verification
}

func New(pc *portal.Context, cfg config.ClientConfig) *Controller {
	return &Controller{
		pc:           pc,
		Verification: NewVerification(cfg.GetVerificationTTL(), time.Now),
	}
}

// Bootstrap runs when the login page opens. A signed-in user is sent to the
// landing page of their role and true is returned. A stored session with a
// role outside the table is dropped.
func (c *Controller) Bootstrap(ctx context.Context) bool {
	sess, ok := c.pc.CurrentUser(ctx)
	if !ok || !sess.HasToken() {
		return false
	}

	target := page.LandingFor(sess.Role)
	if target == page.Login {
		c.pc.Browser.Notify(MsgUnknownRole)
		if err := c.pc.Sessions.Clear(ctx); err != nil {
			log.Err(err).Msg("Failed to clear session with unknown role")
		}
		return false
	}
	c.pc.Browser.Navigate(target)
	return true
}

// Login signs in and moves the tab to the role's landing page. Input errors
// are returned before any request is made.
func (c *Controller) Login(ctx context.Context, email, password string) (models.LoginResponse, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return models.LoginResponse{}, portal.Invalid(MsgLoginEmpty)
	}
	if !portal.ValidEmail(email) {
		return models.LoginResponse{}, portal.Invalid(MsgInvalidEmail)
	}

	resp, err := apiclient.Call[models.LoginResponse](ctx, c.pc.Client, http.MethodPost, loginPath,
		models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return models.LoginResponse{}, err
	}

	if err := c.pc.Sessions.Save(ctx, resp.Token, resp.Role, resp.Name, resp.Email); err != nil {
		return models.LoginResponse{}, errors.Wrapf(err, "[auth Login] save session")
	}

	target := page.LandingFor(resp.Role)
	if target == page.Login {
		log.Warn().Str("role", resp.Role).Msg("Login returned an unknown role")
		if err := c.pc.Sessions.Clear(ctx); err != nil {
			log.Err(err).Msg("Failed to clear session with unknown role")
		}
		return resp, portal.InvalidBecause(errors.ErrUnknownRole, MsgUnknownUserRole)
	}

	log.Info().Str("email", resp.Email).Str("role", resp.Role).Msg("Signed in")
	c.pc.Browser.Notify(MsgLoginSuccess)
	c.pc.Browser.Navigate(target)
	return resp, nil
}

// LoginFailureMessage turns a Login error into the text shown on the page.
func LoginFailureMessage(err error) string {
	var inputErr *portal.InputError
	if errors.As(err, &inputErr) {
		return inputErr.Message
	}

	msg := apiclient.MessageOf(err, "")
	switch {
	case containsAny(msg, "가입되지 않은", "존재하지 않는", "not found"):
		return MsgEmailUnknown
	case containsAny(msg, "비밀번호", "password", "Unauthorized", "401", "403", "권한"):
		return MsgWrongPassword
	case msg == "":
		return MsgLoginFailed
	}
	return msg
}

// Logout asks for confirmation, then drops the session and returns to the
// login page. It reports whether the user confirmed.
func (c *Controller) Logout(ctx context.Context) bool {
	return Logout(ctx, c.pc)
}

// Logout is the sign-out action shared by every page.
func Logout(ctx context.Context, pc *portal.Context) bool {
	if !pc.Browser.Confirm(MsgLogoutConfirm) {
		return false
	}
	if err := pc.Sessions.Clear(ctx); err != nil {
		log.Err(err).Msg("Failed to clear session on logout")
	}
	pc.Browser.Navigate(page.Login)
	return true
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func trimmed(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
