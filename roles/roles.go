package roles

import "strings"

// Role is the canonical role code the backend issues.
type Role string

const (
	Student Role = "STUDENT"
	Teacher Role = "TEACHER"
	Admin   Role = "ADMIN"
)

// authorityPrefix is prepended by the backend's security layer on some responses.
const authorityPrefix = "ROLE_"

var labels = map[Role]string{
	Student: "학생",
	Teacher: "교사",
	Admin:   "관리자",
}

var byLabel = map[string]Role{
	"학생":  Student,
	"교사":  Teacher,
	"관리자": Admin,
}

// All returns every canonical role.
func All() []Role {
	return []Role{Student, Teacher, Admin}
}

// Label returns the localized label, or "" for an unknown role.
func (r Role) Label() string {
	return labels[r]
}

func (r Role) Valid() bool {
	_, ok := labels[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}

// Parse normalises a localized label, a canonical code or a ROLE_ authority
// into a canonical role.
func Parse(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	if r, ok := byLabel[s]; ok {
		return r, true
	}
	r := Role(strings.ToUpper(strings.TrimPrefix(strings.ToUpper(s), authorityPrefix)))
	if r.Valid() {
		return r, true
	}
	return "", false
}

// Matches reports whether actual satisfies required. Either side may be a
// label or a code; values outside the table only match themselves.
func Matches(required, actual string) bool {
	if required == actual {
		return true
	}
	req, reqOK := Parse(required)
	act, actOK := Parse(actual)
	return reqOK && actOK && req == act
}
