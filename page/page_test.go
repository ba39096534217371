package page_test

import (
	"testing"

	"github.com/jrsteele09/afterschool-portal/page"
	"github.com/stretchr/testify/require"
)

func TestLandingFor(t *testing.T) {
	require.Equal(t, page.Admin, page.LandingFor("ADMIN"))
	require.Equal(t, page.Admin, page.LandingFor("관리자"))
	require.Equal(t, page.Teacher, page.LandingFor("TEACHER"))
	require.Equal(t, page.Student, page.LandingFor("학생"))
	require.Equal(t, page.Login, page.LandingFor("GUEST"))
	require.Equal(t, page.Login, page.LandingFor(""))
}

func TestLocation(t *testing.T) {
	login := page.Location{Hostname: "localhost", Path: "/portal/login.html"}
	require.True(t, login.IsLoginPage())
	require.True(t, login.IsPublic())
	require.True(t, login.IsLoopback([]string{"localhost", "127.0.0.1"}))

	admin := page.Location{Hostname: "portal.school.kr", Path: "/admin.html"}
	require.False(t, admin.IsLoginPage())
	require.False(t, admin.IsPublic())
	require.False(t, admin.IsLoopback([]string{"localhost", "127.0.0.1"}))

	index := page.Location{Path: "/index.html"}
	require.True(t, index.IsPublic())
}

func TestTab(t *testing.T) {
	tab := page.NewTab("localhost", page.Student, page.WithConfirmAnswer(false))
	require.Equal(t, "/student.html", tab.Location().Path)

	_, ok := tab.LastNavigation()
	require.False(t, ok)

	tab.Navigate(page.Login)
	tab.Notify("hello")

	last, ok := tab.LastNavigation()
	require.True(t, ok)
	require.Equal(t, page.Login, last)
	require.True(t, tab.Location().IsLoginPage())
	require.Equal(t, []string{"hello"}, tab.Notices())
	require.False(t, tab.Confirm("sure?"))
}
