package backendfake

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/jrsteele09/afterschool-portal/portal/models"
)

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	b.lock.RLock()
	u := b.userByEmailLocked(req.Email)
	b.lock.RUnlock()

	// The backend's security layer turns these failures into 403s.
	if u == nil {
		writeMessage(w, http.StatusForbidden, "가입되지 않은 이메일입니다.")
		return
	}
	if !checkPassword(u.passwordHash, req.Password) {
		writeMessage(w, http.StatusForbidden, "잘못된 비밀번호입니다.")
		return
	}

	token, err := b.signToken(u)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, models.LoginResponse{
		Token: token,
		Role:  "ROLE_" + u.role,
		Name:  u.name,
		Email: u.email,
	})
}

func (b *Backend) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if !decode(w, r, &req) {
		return
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	b.lock.Lock()
	defer b.lock.Unlock()
	if b.userByEmailLocked(req.Email) != nil {
		writeMessage(w, http.StatusForbidden, "이미 가입된 이메일입니다.")
		return
	}
	studentIDNo := ""
	if req.StudentIDNo != nil {
		studentIDNo = *req.StudentIDNo
	}
	b.addUserLocked(req.Email, hash, req.Name, strings.ToUpper(req.Role), studentIDNo)
	writeMessage(w, http.StatusOK, "회원가입이 성공적으로 완료되었습니다.")
}

func (b *Backend) handleSendVerification(w http.ResponseWriter, r *http.Request) {
	var req models.EmailRequest
	if !decode(w, r, &req) {
		return
	}

	b.lock.Lock()
	defer b.lock.Unlock()
	if b.userByEmailLocked(req.Email) != nil {
		writeMessage(w, http.StatusBadRequest, "이미 가입된 이메일입니다.")
		return
	}
	b.codes[req.Email] = fmt.Sprintf("%06d", rand.IntN(1000000))
	delete(b.verified, req.Email)
	writeMessage(w, http.StatusOK, "인증코드가 발송되었습니다.")
}

func (b *Backend) handleVerifyCode(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyCodeRequest
	if !decode(w, r, &req) {
		return
	}

	b.lock.Lock()
	defer b.lock.Unlock()
	code, ok := b.codes[req.Email]
	if !ok || code != req.Code {
		writeMessage(w, http.StatusBadRequest, "인증코드가 일치하지 않습니다.")
		return
	}
	b.verified[req.Email] = true
	delete(b.codes, req.Email)
	writeMessage(w, http.StatusOK, "이메일 인증이 완료되었습니다.")
}
