// Package backendfake is an in-process stand-in for the school's REST
// backend. It keeps everything in memory, issues HS256 bearer tokens and
// answers with the same paths, payloads and error texts as the real service.
package backendfake

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/afterschool-portal/portal/models"
	"github.com/jrsteele09/afterschool-portal/roles"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = time.Hour

// Request is a call the backend received.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	ContentType   string
	Origin        string
	Referer       string
}

type failure struct {
	status  int
	message string
}

type Backend struct {
	lock sync.RWMutex

	clockLock sync.Mutex
	clock     func() time.Time
	tokenTTL  time.Duration

	secret   []byte
	server   *httptest.Server
	mux      *http.ServeMux
	requests []Request
	failures map[string]failure
	stalls   map[string]bool

	nextID      int64
	users       map[int64]*user
	courses     map[int64]*course
	enrollments map[int64]*enrollment
	attendance  map[int64]*attendanceRecord
	notices     map[int64]*notice
	surveys     map[int64]*survey
	submissions map[int64]map[int64][]models.SurveyAnswer
	codes       map[string]string
	verified    map[string]bool
}

// New starts a backend that is shut down when the test ends.
func New(t testing.TB) *Backend {
	t.Helper()
	b := NewBackend()
	b.server = httptest.NewServer(b)
	t.Cleanup(b.server.Close)
	return b
}

// NewBackend returns an unstarted backend; serve it with any http.Server.
func NewBackend() *Backend {
	b := &Backend{
		clock:       time.Now,
		tokenTTL:    defaultTokenTTL,
		secret:      []byte("backendfake-secret"),
		mux:         http.NewServeMux(),
		failures:    make(map[string]failure),
		stalls:      make(map[string]bool),
		users:       make(map[int64]*user),
		courses:     make(map[int64]*course),
		enrollments: make(map[int64]*enrollment),
		attendance:  make(map[int64]*attendanceRecord),
		notices:     make(map[int64]*notice),
		surveys:     make(map[int64]*survey),
		submissions: make(map[int64]map[int64][]models.SurveyAnswer),
		codes:       make(map[string]string),
		verified:    make(map[string]bool),
	}
	b.initRoutes()
	return b
}

// URL is the origin of the running backend.
func (b *Backend) URL() string {
	return b.server.URL
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.lock.Lock()
	b.requests = append(b.requests, Request{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Origin:        r.Header.Get("Origin"),
		Referer:       r.Header.Get("Referer"),
	})
	key := r.Method + " " + r.URL.Path
	f, failing := b.failures[key]
	delete(b.failures, key)
	stalled := b.stalls[key]
	delete(b.stalls, key)
	b.lock.Unlock()

	if failing {
		writeMessage(w, f.status, f.message)
		return
	}
	if stalled {
		<-r.Context().Done()
		return
	}
	b.mux.ServeHTTP(w, r)
}

// Requests returns every request received so far, oldest first.
func (b *Backend) Requests() []Request {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return append([]Request(nil), b.requests...)
}

// LastRequest returns the most recent request for method and path.
func (b *Backend) LastRequest(method, path string) (Request, bool) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	for i := len(b.requests) - 1; i >= 0; i-- {
		if b.requests[i].Method == method && b.requests[i].Path == path {
			return b.requests[i], true
		}
	}
	return Request{}, false
}

// FailNext makes the next request to method and path fail with status and a
// JSON message body.
func (b *Backend) FailNext(method, path string, status int, message string) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.failures[method+" "+path] = failure{status: status, message: message}
}

// StallNext makes the next request to method and path hang until the client
// gives up on it.
func (b *Backend) StallNext(method, path string) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.stalls[method+" "+path] = true
}

func (b *Backend) id() int64 {
	b.nextID++
	return b.nextID
}

// SetClock replaces the backend clock used for token expiry and course end
// dates.
func (b *Backend) SetClock(now func() time.Time) {
	b.clockLock.Lock()
	defer b.clockLock.Unlock()
	b.clock = now
}

// SetTokenTTL changes the lifetime of tokens issued from now on.
func (b *Backend) SetTokenTTL(ttl time.Duration) {
	b.clockLock.Lock()
	defer b.clockLock.Unlock()
	b.tokenTTL = ttl
}

func (b *Backend) now() time.Time {
	b.clockLock.Lock()
	defer b.clockLock.Unlock()
	return b.clock()
}

func (b *Backend) ttl() time.Duration {
	b.clockLock.Lock()
	defer b.clockLock.Unlock()
	return b.tokenTTL
}

// AddUser registers an account. studentIDNo is ignored for non-students.
func (b *Backend) AddUser(email, password, name string, role roles.Role, studentIDNo string) int64 {
	hash, err := hashPassword(password)
	if err != nil {
		panic(fmt.Sprintf("backendfake: hash password: %v", err))
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.addUserLocked(email, hash, name, role.String(), studentIDNo)
}

func (b *Backend) addUserLocked(email, hash, name, role, studentIDNo string) int64 {
	u := &user{id: b.id(), email: email, passwordHash: hash, name: name, role: role}
	if role == roles.Student.String() {
		u.studentIDNo = studentIDNo
	}
	b.users[u.id] = u
	return u.id
}

// IssueToken signs a token for the user with email. It panics for unknown
// users.
func (b *Backend) IssueToken(email string) string {
	b.lock.RLock()
	u := b.userByEmailLocked(email)
	b.lock.RUnlock()
	if u == nil {
		panic("backendfake: unknown user " + email)
	}
	raw, err := b.signToken(u)
	if err != nil {
		panic(fmt.Sprintf("backendfake: sign token: %v", err))
	}
	return raw
}

// VerificationCode returns the last code sent to email.
func (b *Backend) VerificationCode(email string) (string, bool) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	code, ok := b.codes[email]
	return code, ok
}

func (b *Backend) signToken(u *user) (string, error) {
	now := b.now()
	claims := jwtlib.MapClaims{
		"sub":  u.email,
		"role": u.role,
		"iat":  now.Unix(),
		"exp":  now.Add(b.ttl()).Unix(),
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(b.secret)
}

// authorize resolves the bearer token to a user and checks the role. It
// writes 401 or 403 itself and returns ok=false in that case.
func (b *Backend) authorize(w http.ResponseWriter, r *http.Request, allowed ...roles.Role) (*user, bool) {
	raw, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || raw == "" {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	parsed, err := jwtlib.Parse(raw, func(*jwtlib.Token) (any, error) { return b.secret, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(b.now),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	subject, err := parsed.Claims.GetSubject()
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	b.lock.RLock()
	u := b.userByEmailLocked(subject)
	b.lock.RUnlock()
	if u == nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	for _, role := range allowed {
		if u.role == role.String() {
			return u, true
		}
	}
	writeMessage(w, http.StatusForbidden, "Forbidden")
	return nil, false
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash), err
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "잘못된 요청 형식입니다.")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "잘못된 ID입니다.")
		return 0, false
	}
	return id, true
}
