// Package page models the browser side effects the client core relies on:
// where the tab is, where it navigates to and what it tells the user.
package page

import (
	"strings"

	"github.com/jrsteele09/afterschool-portal/roles"
)

// Page is a navigable portal entry point.
type Page string

const (
	Login   Page = "./login.html"
	Index   Page = "./index.html"
	Admin   Page = "./admin.html"
	Teacher Page = "./teacher.html"
	Student Page = "./student.html"
)

func (p Page) String() string {
	return string(p)
}

// Name returns the file name of the page, e.g. "login.html".
func (p Page) Name() string {
	s := string(p)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// LandingFor returns the landing page for a role given as label or code.
// Anything unrecognised lands on the login page.
func LandingFor(role string) Page {
	r, ok := roles.Parse(role)
	if !ok {
		return Login
	}
	switch r {
	case roles.Admin:
		return Admin
	case roles.Teacher:
		return Teacher
	case roles.Student:
		return Student
	}
	return Login
}

// Location is the address of the current tab.
type Location struct {
	Hostname string
	Path     string
}

func (l Location) IsLoginPage() bool {
	return strings.Contains(l.Path, Login.Name())
}

// IsPublic reports whether the location needs no session.
func (l Location) IsPublic() bool {
	return l.IsLoginPage() || strings.Contains(l.Path, Index.Name())
}

// IsLoopback reports whether the tab is served from one of hosts.
func (l Location) IsLoopback(hosts []string) bool {
	for _, h := range hosts {
		if strings.EqualFold(l.Hostname, h) {
			return true
		}
	}
	return false
}

// Navigator moves the tab to another page.
type Navigator interface {
	Navigate(to Page)
}

// Notifier surfaces messages to the user.
type Notifier interface {
	Notify(message string)
	Confirm(message string) bool
}

// Locator reports where the tab currently is.
type Locator interface {
	Location() Location
}

// Browser is everything a page script can touch.
type Browser interface {
	Navigator
	Notifier
	Locator
}
