package auth

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/afterschool-portal/portal"
	"github.com/jrsteele09/afterschool-portal/portal/models"
)

// Verification tracks the e-mail code step of sign-up. A code is good for
// ttl after it was sent, and any change of address starts over.
type Verification struct {
	lock     sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	email    string
	sent     bool
	expireAt time.Time
	verified bool
	status   string
}

func NewVerification(ttl time.Duration, now func() time.Time) *Verification {
	return &Verification{ttl: ttl, now: now}
}

// Reset forgets any code and verified address.
func (v *Verification) Reset() {
	v.lock.Lock()
	defer v.lock.Unlock()
	v.resetLocked()
}

func (v *Verification) resetLocked() {
	v.email = ""
	v.sent = false
	v.expireAt = time.Time{}
	v.verified = false
}

// EmailChanged is called when the address field is edited.
func (v *Verification) EmailChanged(email string) {
	v.lock.Lock()
	defer v.lock.Unlock()
	if strings.TrimSpace(email) == v.email {
		return
	}
	if v.verified {
		v.status = MsgEmailChanged
	}
	v.resetLocked()
}

// Verified reports whether email completed verification.
func (v *Verification) Verified(email string) bool {
	v.lock.Lock()
	defer v.lock.Unlock()
	return v.verified && v.email == strings.TrimSpace(email)
}

// Remaining is the time left on the current code, zero when none is pending.
func (v *Verification) Remaining() time.Duration {
	v.lock.Lock()
	defer v.lock.Unlock()
	if !v.sent || v.verified {
		return 0
	}
	return max(v.expireAt.Sub(v.now()), 0)
}

// Status is the latest line shown next to the verification fields.
func (v *Verification) Status() string {
	v.lock.Lock()
	defer v.lock.Unlock()
	return v.status
}

func (v *Verification) setStatus(s string) {
	v.lock.Lock()
	v.status = s
	v.lock.Unlock()
}

// SendCode asks the backend to mail a code to email.
func (c *Controller) SendCode(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !portal.ValidEmail(email) {
		return portal.Invalid(MsgInvalidEmail)
	}

	v := c.Verification
	v.Reset()
	if err := c.pc.Client.Send(ctx, http.MethodPost, sendCodePath, models.EmailRequest{Email: email}); err != nil {
		v.setStatus("")
		return err
	}

	v.lock.Lock()
	v.email = email
	v.sent = true
	v.expireAt = v.now().Add(v.ttl)
	v.status = MsgCodeSent
	v.lock.Unlock()
	return nil
}

// VerifyCode submits the code typed by the user for the address the code was
// sent to.
func (c *Controller) VerifyCode(ctx context.Context, code string) error {
	v := c.Verification

	v.lock.Lock()
	sent, email, expired := v.sent, v.email, v.now().After(v.expireAt)
	if sent && expired {
		v.status = MsgCodeExpired
	}
	v.lock.Unlock()

	switch {
	case !sent:
		return portal.Invalid(MsgCodeNotSent)
	case expired:
		return portal.Invalid(MsgCodeExpired)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return portal.Invalid(MsgCodeEmpty)
	}

	err := c.pc.Client.Send(ctx, http.MethodPost, verifyCodePath, models.VerifyCodeRequest{Email: email, Code: code})
	if err != nil {
		v.setStatus(portal.Message(err, MsgCodeVerifyFailed))
		return err
	}

	v.lock.Lock()
	v.verified = true
	v.status = MsgCodeVerified
	v.lock.Unlock()
	return nil
}
