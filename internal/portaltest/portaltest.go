// Package portaltest wires a page context to a fake backend for controller
// tests.
package portaltest

import (
	"context"
	"testing"

	"github.com/jrsteele09/afterschool-portal/apiclient"
	"github.com/jrsteele09/afterschool-portal/internal/backendfake"
	"github.com/jrsteele09/afterschool-portal/internal/config"
	"github.com/jrsteele09/afterschool-portal/page"
	"github.com/jrsteele09/afterschool-portal/portal"
	"github.com/jrsteele09/afterschool-portal/roles"
	"github.com/jrsteele09/afterschool-portal/storage/memstore"
	"github.com/stretchr/testify/require"
)

const Password = "secret1"

type Env struct {
	Backend *backendfake.Backend
	Tab     *page.Tab
	Portal  *portal.Context
	Config  config.Config
}

// New opens a tab on at, talking to a fresh fake backend.
func New(t *testing.T, at page.Page, opts ...page.TabOption) *Env {
	t.Helper()
	cfg := config.Defaults()
	b := backendfake.New(t)
	tab := page.NewTab("localhost", at, opts...)
	return &Env{
		Backend: b,
		Tab:     tab,
		Portal:  portal.New(cfg, memstore.New(), tab, apiclient.WithBaseURL(b.URL())),
		Config:  cfg,
	}
}

// SignIn registers a user with Password and stores a session for them, as a
// completed login would.
func (e *Env) SignIn(t *testing.T, email, name string, role roles.Role) {
	t.Helper()
	if _, exists := e.Backend.UserRole(email); !exists {
		e.Backend.AddUser(email, Password, name, role, "20301")
	}
	require.NoError(t, e.Portal.Sessions.Save(context.Background(), e.Backend.IssueToken(email), role.String(), name, email))
}
