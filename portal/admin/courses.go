package admin

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/afterschool-portal/apiclient"
	"github.com/jrsteele09/afterschool-portal/portal"
	"github.com/jrsteele09/afterschool-portal/portal/models"
	"github.com/rs/zerolog/log"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

const dateLayout = "2006-01-02"

// Badge is the colour of a status badge.
type Badge string

const (
	BadgeGray   Badge = "gray"
	BadgeGreen  Badge = "green"
	BadgeRed    Badge = "red"
	BadgeYellow Badge = "yellow"
)

// CourseFilter narrows the course table. Keyword matches the course or the
// teacher name, ignoring case; Status must equal the course status.
type CourseFilter struct {
	Keyword string
	Status  string
}

func (f CourseFilter) keep(c models.AdminCourse) bool {
	if kw := strings.ToLower(strings.TrimSpace(f.Keyword)); kw != "" {
		if !strings.Contains(strings.ToLower(c.CourseName), kw) &&
			!strings.Contains(strings.ToLower(c.TeacherName), kw) {
			return false
		}
	}
	return f.Status == "" || c.Status == f.Status
}

// CourseRow is a line of the course table.
type CourseRow struct {
	ID         int64
	Name       string
	Teacher    string
	Quarter    string
	EndDate    string
	Capacity   int
	Enrollment string
	Status     string
	StatusText string
	Badge      Badge
	// CanDecide is set for courses waiting on approval.
	CanDecide bool
	// CanEnd is set for approved courses whose end date has passed.
	CanEnd bool
}

// NewCourseRow builds the table line for course as seen on day today
// (YYYY-MM-DD).
func NewCourseRow(course models.AdminCourse, today string) CourseRow {
	row := CourseRow{
		ID:         course.CourseID,
		Name:       course.CourseName,
		Teacher:    orDash(course.TeacherName),
		Quarter:    orDash(portal.QuarterLabel(course.Quarter, course.QuarterLabel)),
		EndDate:    orDash(course.EndDate),
		Capacity:   course.Capacity,
		Enrollment: strconv.FormatInt(course.CurrentEnrollmentCount, 10) + "/" + strconv.Itoa(course.Capacity),
		Status:     course.Status,
		CanDecide:  course.Status == models.StatusPending,
	}
	row.StatusText, row.Badge = statusBadge(course)
	row.CanEnd = !course.Ended && course.Status == models.StatusApproved &&
		course.EndDate != "" && course.EndDate <= today
	return row
}

func statusBadge(course models.AdminCourse) (string, Badge) {
	switch {
	case course.Ended:
		return "종료", BadgeGray
	case course.Status == models.StatusApproved:
		return "승인", BadgeGreen
	case course.Status == models.StatusRejected:
		return "반려", BadgeRed
	}
	return "대기", BadgeYellow
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Courses returns the course table filtered by f.
func (c *Controller) Courses(ctx context.Context, f CourseFilter) ([]CourseRow, error) {
	courses, err := apiclient.Get[[]models.AdminCourse](ctx, c.pc.Client, coursesPath)
	if err != nil {
		log.Err(err).Msg("Failed to load all courses")
		return nil, err
	}

	today := NowTimeFunc().Format(dateLayout)
	rows := make([]CourseRow, 0, len(courses))
	for _, course := range courses {
		if f.keep(course) {
			rows = append(rows, NewCourseRow(course, today))
		}
	}
	return rows, nil
}

// PendingCourses returns the courses waiting for approval.
func (c *Controller) PendingCourses(ctx context.Context) ([]models.AdminCourse, error) {
	courses, err := apiclient.Get[[]models.AdminCourse](ctx, c.pc.Client, pendingCoursesPath)
	if err != nil {
		log.Err(err).Msg("Failed to load pending courses")
		return nil, err
	}
	return courses, nil
}

// SetCourseStatus approves or rejects a course.
func (c *Controller) SetCourseStatus(ctx context.Context, courseID int64, status string) error {
	var verb string
	switch status {
	case models.StatusApproved:
		verb = "승인"
	case models.StatusRejected:
		verb = "반려"
	default:
		err := portal.Invalid(MsgInvalidStatus)
		c.pc.Report(err, MsgStatusFailed)
		return err
	}

	path := fmt.Sprintf("%s/%d/status", coursesPath, courseID)
	if err := c.pc.Client.Send(ctx, http.MethodPut, path, models.StatusUpdate{Status: status}); err != nil {
		log.Err(err).Int64("courseId", courseID).Str("status", status).Msg("Failed to change course status")
		c.pc.Report(err, MsgStatusFailed)
		return err
	}
	c.pc.Browser.Notify(fmt.Sprintf(msgCourseDecided, verb))
	return nil
}

// ApproveAll approves every pending course.
func (c *Controller) ApproveAll(ctx context.Context) error {
	if err := c.pc.Client.Send(ctx, http.MethodPost, approveAllPath, nil); err != nil {
		log.Err(err).Msg("Failed to approve all courses")
		c.pc.Report(err, MsgStatusFailed)
		return err
	}
	c.pc.Browser.Notify(MsgAllApproved)
	return nil
}

// EndCourse closes an approved course whose end date has passed.
func (c *Controller) EndCourse(ctx context.Context, courseID int64) error {
	if err := c.pc.Client.Send(ctx, http.MethodPost, fmt.Sprintf("%s/%d/end", coursesPath, courseID), nil); err != nil {
		log.Err(err).Int64("courseId", courseID).Msg("Failed to end course")
		c.pc.Report(err, MsgEndFailed)
		return err
	}
	c.pc.Browser.Notify(MsgCourseEnded)
	return nil
}
