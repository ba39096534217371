// Package admin backs the administrator page: user management, course
// approval and closing, and school-wide surveys and notices.
package admin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/afterschool-portal/apiclient"
	"github.com/jrsteele09/afterschool-portal/guard"
	"github.com/jrsteele09/afterschool-portal/portal"
	"github.com/jrsteele09/afterschool-portal/portal/models"
	"github.com/jrsteele09/afterschool-portal/roles"
	"github.com/rs/zerolog/log"
)

const (
	usersPath          = "/api/admin/users"
	coursesPath        = "/api/admin/courses"
	pendingCoursesPath = "/api/admin/courses/pending"
	approveAllPath     = "/api/admin/courses/approve-all"
	surveysPath        = "/api/admin/surveys"
	noticesPath        = "/api/admin/notices"
)

type Controller struct {
	pc *portal.Context
}

func New(pc *portal.Context) *Controller {
	return &Controller{pc: pc}
}

// Open runs the page load checks for the admin page.
func (c *Controller) Open(ctx context.Context) guard.Decision {
	return c.pc.Guard.OnPageLoad(ctx, roles.Admin.Label())
}

// UserFilter narrows the user list. Role may be a label or a code.
type UserFilter struct {
	Role string
	Name string
}

func (f UserFilter) query() string {
	q := url.Values{}
	if role := strings.TrimSpace(f.Role); role != "" {
		if r, ok := roles.Parse(role); ok {
			role = r.String()
		}
		q.Set("role", role)
	}
	if name := strings.TrimSpace(f.Name); name != "" {
		q.Set("name", name)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// UserRow is a line of the user table.
type UserRow struct {
	ID        int64
	Name      string
	Email     string
	Role      roles.Role
	RoleLabel string
}

// Users lists users matching f. A failed load is reported to the user.
func (c *Controller) Users(ctx context.Context, f UserFilter) ([]UserRow, error) {
	users, err := apiclient.Get[[]models.User](ctx, c.pc.Client, usersPath+f.query())
	if err != nil {
		log.Err(err).Msg("Failed to load users")
		c.pc.Browser.Notify(MsgUsersLoadFailed)
		return nil, err
	}

	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		row := UserRow{ID: u.UserID, Name: u.Name, Email: u.Email, RoleLabel: u.Role}
		if r, ok := roles.Parse(u.Role); ok {
			row.Role = r
			row.RoleLabel = r.Label()
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ChangeRole assigns role, given as a label or a code, to a user.
func (c *Controller) ChangeRole(ctx context.Context, userID int64, role string) error {
	r, ok := roles.Parse(role)
	if !ok {
		err := portal.Invalid(MsgInvalidRole)
		c.pc.Report(err, MsgRoleChangeFailed)
		return err
	}

	path := fmt.Sprintf("%s/%d/role", usersPath, userID)
	if err := c.pc.Client.Send(ctx, http.MethodPut, path, models.RoleUpdate{Role: r.String()}); err != nil {
		log.Err(err).Int64("userId", userID).Msg("Failed to change user role")
		c.pc.Report(err, MsgRoleChangeFailed)
		return err
	}
	c.pc.Browser.Notify(MsgRoleChanged)
	return nil
}

// DeleteUser removes a user after confirmation. It reports whether the
// user was deleted.
func (c *Controller) DeleteUser(ctx context.Context, userID int64) (bool, error) {
	if !c.pc.Browser.Confirm(MsgDeleteConfirm) {
		return false, nil
	}
	if err := c.pc.Client.Send(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", usersPath, userID), nil); err != nil {
		log.Err(err).Int64("userId", userID).Msg("Failed to delete user")
		c.pc.Report(err, MsgDeleteFailed)
		return false, err
	}
	c.pc.Browser.Notify(MsgUserDeleted)
	return true, nil
}
