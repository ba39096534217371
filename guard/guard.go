// Package guard decides, on every page load, whether the current tab may
// stay where it is.
package guard

import (
	"context"
	"fmt"

	"github.com/jrsteele09/afterschool-portal/internal/errors"
	"github.com/jrsteele09/afterschool-portal/page"
	"github.com/jrsteele09/afterschool-portal/roles"
	"github.com/jrsteele09/afterschool-portal/session"
	"github.com/jrsteele09/afterschool-portal/token"
	"github.com/rs/zerolog/log"
)

const (
	MsgTokenExpired = "로그인이 만료되었습니다. 다시 로그인해주세요."
	msgRoleMismatch = "접근 권한이 없습니다. (필요: %s, 현재: %s)"
)

// Sessions is the part of the session store the guard needs.
type Sessions interface {
	Load(ctx context.Context) (session.Session, bool, error)
	Clear(ctx context.Context) error
}

type Guard struct {
	sessions Sessions
	browser  page.Browser
	validate func(raw string) error
}

func New(sessions Sessions, browser page.Browser) *Guard {
	return &Guard{
		sessions: sessions,
		browser:  browser,
		validate: token.Validate,
	}
}

// RequireRole reports whether the stored session may view a page that needs
// the required role. An empty required role only demands a session. On
// failure the tab has already been sent elsewhere.
func (g *Guard) RequireRole(ctx context.Context, required string) bool {
	_, ok := g.requireRole(ctx, required)
	return ok
}

func (g *Guard) requireRole(ctx context.Context, required string) (page.Page, bool) {
	sess, ok := g.load(ctx)
	if !ok || !sess.HasToken() {
		g.browser.Navigate(page.Login)
		return page.Login, false
	}
	if required == "" || roles.Matches(required, sess.Role) {
		return "", true
	}

	target := page.LandingFor(sess.Role)
	log.Info().Str("required", required).Str("actual", sess.Role).Str("target", target.Name()).Msg("Role mismatch")
	g.browser.Notify(MismatchMessage(required, sess.Role))
	g.browser.Navigate(target)
	return target, false
}

// MismatchMessage names the required and the actual role, using labels where
// the role is known.
func MismatchMessage(required, actual string) string {
	return fmt.Sprintf(msgRoleMismatch, displayRole(required), displayRole(actual))
}

func displayRole(s string) string {
	if r, ok := roles.Parse(s); ok {
		return r.Label()
	}
	return s
}

// ValidateToken checks the stored token's shape and expiry. Without a token it
// returns false and does nothing else. A malformed or expired token clears the
// session and sends the tab to the login page; notify adds a notice when the
// token has expired.
func (g *Guard) ValidateToken(ctx context.Context, notify bool) bool {
	sess, ok := g.load(ctx)
	if !ok || !sess.HasToken() {
		return false
	}

	err := g.validate(sess.Token)
	if err == nil {
		return true
	}

	log.Info().Err(err).Msg("Stored token rejected")
	if clearErr := g.sessions.Clear(ctx); clearErr != nil {
		log.Err(clearErr).Msg("Failed to clear session")
	}
	if notify && errors.Is(err, errors.ErrTokenExpired) {
		g.browser.Notify(MsgTokenExpired)
	}
	g.browser.Navigate(page.Login)
	return false
}

func (g *Guard) load(ctx context.Context) (session.Session, bool) {
	sess, ok, err := g.sessions.Load(ctx)
	if err != nil {
		log.Err(err).Msg("Failed to load session")
		return session.Session{}, false
	}
	return sess, ok
}
