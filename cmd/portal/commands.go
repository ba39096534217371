package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jrsteele09/afterschool-portal/internal/config"
	"github.com/jrsteele09/afterschool-portal/internal/errors"
	"github.com/jrsteele09/afterschool-portal/page"
	"github.com/jrsteele09/afterschool-portal/portal"
	"github.com/jrsteele09/afterschool-portal/portal/auth"
	"github.com/jrsteele09/afterschool-portal/roles"
	"github.com/jrsteele09/afterschool-portal/storage"
	"github.com/jrsteele09/afterschool-portal/token"
)

type app struct {
	cfg    config.Config
	kv     storage.Store
	host   string
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	getenv func(string) string
}

// terminal is a headless tab whose confirmations are answered on stdin.
type terminal struct {
	*page.Tab
	in     *bufio.Reader
	out    io.Writer
	assume bool
}

func (t *terminal) Confirm(message string) bool {
	if t.assume {
		return true
	}
	fmt.Fprintf(t.out, "%s [y/N] ", message)
	line, _ := t.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (a *app) open(at page.Page, assume bool) (*terminal, *portal.Context) {
	term := &terminal{
		Tab:    page.NewTab(a.host, at),
		in:     bufio.NewReader(a.in),
		out:    a.out,
		assume: assume,
	}
	return term, portal.New(a.cfg, a.kv, term)
}

// flush prints what the page told the user.
func (a *app) flush(term *terminal) {
	for _, n := range term.Notices() {
		fmt.Fprintln(a.out, "! "+n)
	}
}

func (a *app) env(key string) string {
	if a.getenv == nil {
		return os.Getenv(key)
	}
	return a.getenv(key)
}

func (a *app) login(ctx context.Context, args []string) error {
	f, err := parseLogin(args, a.errOut, a.env)
	if err != nil {
		return err
	}

	term, pc := a.open(page.Login, true)
	resp, err := auth.New(pc, a.cfg).Login(ctx, f.email, f.password)
	a.flush(term)
	if err != nil {
		return errors.Wrapf(err, "login: %s", auth.LoginFailureMessage(err))
	}

	target, _ := term.LastNavigation()
	fmt.Fprintf(a.out, "signed in as %s <%s> (%s) -> %s\n", resp.Name, f.email, roleText(resp.Role), target.Name())
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	_, pc := a.open(page.Index, true)
	sess, ok := pc.CurrentUser(ctx)
	if !ok || !sess.HasToken() {
		fmt.Fprintln(a.out, "not signed in")
		return errors.ErrNoSession
	}

	fmt.Fprintf(a.out, "name:  %s\nemail: %s\nrole:  %s\n", sess.Name, sess.Email, roleText(sess.Role))
	exp, hasExp, err := token.ExpiresAt(sess.Token)
	switch {
	case err != nil:
		fmt.Fprintln(a.out, "token: malformed")
	case !hasExp:
		fmt.Fprintln(a.out, "token: no expiry")
	default:
		left := time.Until(exp).Round(time.Second)
		if left <= 0 {
			fmt.Fprintf(a.out, "token: expired at %s\n", exp.Format(time.RFC3339))
		} else {
			fmt.Fprintf(a.out, "token: valid for %s (until %s)\n", left, exp.Format(time.RFC3339))
		}
	}
	return nil
}

func (a *app) check(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.Wrapf(errors.ErrValidation, "check needs exactly one page")
	}
	at, required, err := pageFor(args[0])
	if err != nil {
		return err
	}

	term, pc := a.open(at, true)
	decision := pc.Guard.OnPageLoad(ctx, required)
	a.flush(term)
	if decision.Allowed() {
		fmt.Fprintf(a.out, "%s: %s\n", at.Name(), decision.Outcome)
		return nil
	}
	fmt.Fprintf(a.out, "%s: %s -> %s\n", at.Name(), decision.Outcome, decision.Target.Name())
	return errRedirected
}

func (a *app) logout(ctx context.Context, args []string) error {
	yes, err := parseLogout(args, a.errOut)
	if err != nil {
		return err
	}
	term, pc := a.open(page.Index, yes)
	if !auth.Logout(ctx, pc) {
		fmt.Fprintln(a.out, "cancelled")
		return nil
	}
	a.flush(term)
	fmt.Fprintln(a.out, "signed out")
	return nil
}

// pageFor resolves a page argument ("admin", "admin.html" or "./admin.html")
// and the role label the page requires.
func pageFor(arg string) (page.Page, string, error) {
	name := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(arg), "./"), ".html")
	switch name {
	case "login":
		return page.Login, "", nil
	case "index":
		return page.Index, "", nil
	case "admin":
		return page.Admin, roles.Admin.Label(), nil
	case "teacher":
		return page.Teacher, roles.Teacher.Label(), nil
	case "student":
		return page.Student, roles.Student.Label(), nil
	}
	return "", "", errors.Wrapf(errors.ErrNotFound, "page %q", arg)
}

func roleText(role string) string {
	if r, ok := roles.Parse(role); ok {
		return fmt.Sprintf("%s/%s", r.Label(), r)
	}
	return role
}
