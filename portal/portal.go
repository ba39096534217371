// Package portal holds what every page controller shares: the API client,
// the session store, the tab and the guard, bundled per page load.
package portal

import (
	"context"
	"regexp"
	"strings"

	"github.com/jrsteele09/afterschool-portal/apiclient"
	"github.com/jrsteele09/afterschool-portal/guard"
	"github.com/jrsteele09/afterschool-portal/internal/config"
	"github.com/jrsteele09/afterschool-portal/page"
	"github.com/jrsteele09/afterschool-portal/session"
	"github.com/jrsteele09/afterschool-portal/storage"
	"github.com/rs/zerolog/log"
)

// Context is the explicit per-page state a controller works with.
type Context struct {
	Client   *apiclient.Client
	Sessions *session.Store
	Browser  page.Browser
	Guard    *guard.Guard
}

// New wires a page context over kv and the given tab.
func New(cfg config.ClientConfig, kv storage.Store, browser page.Browser, opts ...apiclient.Option) *Context {
	sessions := session.NewStoreFromConfig(kv, cfg)
	return &Context{
		Client:   apiclient.New(cfg, sessions, browser, opts...),
		Sessions: sessions,
		Browser:  browser,
		Guard:    guard.New(sessions, browser),
	}
}

// CurrentUser returns the signed-in user, or ok=false when there is none.
func (c *Context) CurrentUser(ctx context.Context) (session.Session, bool) {
	sess, ok, err := c.Sessions.Load(ctx)
	if err != nil {
		log.Err(err).Msg("Failed to load current user")
		return session.Session{}, false
	}
	return sess, ok
}

// Report shows err to the user, preferring its own message over fallback.
func (c *Context) Report(err error, fallback string) {
	c.Browser.Notify(Message(err, fallback))
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail applies the portal's loose address check.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}
