package guard

import (
	"context"

	"github.com/jrsteele09/afterschool-portal/page"
)

// Outcome is the terminal state of a page load.
type Outcome int

const (
	Allowed Outcome = iota
	Redirected
)

func (o Outcome) String() string {
	switch o {
	case Allowed:
		return "allowed"
	case Redirected:
		return "redirected"
	}
	return "unknown"
}

// Decision is the result of OnPageLoad. Target is set when the tab was
// redirected.
type Decision struct {
	Outcome Outcome
	Target  page.Page
}

func (d Decision) Allowed() bool {
	return d.Outcome == Allowed
}

// OnPageLoad runs the checks for the tab's current page. Public pages are
// always allowed. Protected pages need a valid token and, when required is
// set, a matching role.
func (g *Guard) OnPageLoad(ctx context.Context, required string) Decision {
	if g.browser.Location().IsPublic() {
		return Decision{Outcome: Allowed}
	}

	if sess, ok := g.load(ctx); ok && sess.HasToken() && !g.ValidateToken(ctx, true) {
		return Decision{Outcome: Redirected, Target: page.Login}
	}
	if target, ok := g.requireRole(ctx, required); !ok {
		return Decision{Outcome: Redirected, Target: target}
	}
	return Decision{Outcome: Allowed}
}
