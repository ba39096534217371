package auth

import (
	"context"
	"net/http"

	"github.com/jrsteele09/afterschool-portal/portal"
	"github.com/jrsteele09/afterschool-portal/portal/models"
	"github.com/jrsteele09/afterschool-portal/roles"
	"github.com/rs/zerolog/log"
)

type SignupForm struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
	Role            string
	StudentIDNo     string
}

// Validate checks the form in the order the page reports problems.
func (f SignupForm) Validate() error {
	trimmed(&f.Name, &f.Email, &f.Password, &f.PasswordConfirm, &f.StudentIDNo)
	switch {
	case f.Name == "" || f.Email == "" || f.Password == "" || f.PasswordConfirm == "":
		return portal.Invalid(MsgFieldsRequired)
	case f.Role == "":
		return portal.Invalid(MsgRoleRequired)
	}
	role, ok := roles.Parse(f.Role)
	switch {
	case !ok:
		return portal.Invalid(MsgRoleRequired)
	case role == roles.Student && f.StudentIDNo == "":
		return portal.Invalid(MsgStudentIDMissing)
	case f.Password != f.PasswordConfirm:
		return portal.Invalid(MsgPasswordMismatch)
	case len([]rune(f.Password)) < minPasswordRunes:
		return portal.Invalid(MsgPasswordTooShort)
	case !portal.ValidEmail(f.Email):
		return portal.Invalid(MsgInvalidEmail)
	}
	return nil
}

// Signup creates the account once the form is valid and its address has
// been verified.
func (c *Controller) Signup(ctx context.Context, form SignupForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	trimmed(&form.Name, &form.Email, &form.Password, &form.StudentIDNo)
	if !c.Verification.Verified(form.Email) {
		return portal.Invalid(MsgEmailUnverified)
	}

	role, _ := roles.Parse(form.Role)
	req := models.SignupRequest{
		Email:    form.Email,
		Password: form.Password,
		Name:     form.Name,
		Role:     role.String(),
	}
	if role == roles.Student {
		req.StudentIDNo = &form.StudentIDNo
	}

	if err := c.pc.Client.Send(ctx, http.MethodPost, signupPath, req); err != nil {
		return err
	}

	log.Info().Str("email", form.Email).Str("role", role.String()).Msg("Signed up")
	c.Verification.Reset()
	c.pc.Browser.Notify(MsgSignupComplete)
	return nil
}

// SignupFailureMessage turns a Signup error into the text shown on the page.
func SignupFailureMessage(err error) string {
	msg := portal.Message(err, "")
	switch {
	case containsAny(msg, "이미", "duplicate", "already", "존재"):
		return MsgEmailTaken
	case msg == "":
		return MsgSignupFailed
	}
	return msg
}
