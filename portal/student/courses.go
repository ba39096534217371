// Package student backs the student page: browsing and enrolling in
// courses, the enrolment history with attendance rates, and surveys.
package student

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/jrsteele09/afterschool-portal/apiclient"
	"github.com/jrsteele09/afterschool-portal/guard"
	"github.com/jrsteele09/afterschool-portal/internal/errors"
	"github.com/jrsteele09/afterschool-portal/internal/utils"
	"github.com/jrsteele09/afterschool-portal/portal"
	"github.com/jrsteele09/afterschool-portal/portal/models"
	"github.com/jrsteele09/afterschool-portal/roles"
	"github.com/rs/zerolog/log"
)

const (
	coursesPath   = "/api/students/courses"
	myCoursesPath = "/api/students/my-courses"
	surveysPath   = "/api/students/surveys"

	enrollmentActive = "ACTIVE"
)

type Controller struct {
	pc *portal.Context
}

func New(pc *portal.Context) *Controller {
	return &Controller{pc: pc}
}

// Open runs the page load checks for the student page.
func (c *Controller) Open(ctx context.Context) guard.Decision {
	return c.pc.Guard.OnPageLoad(ctx, roles.Student.Label())
}

func coursePath(courseID int64, rest ...string) string {
	p := coursesPath + "/" + strconv.FormatInt(courseID, 10)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

// Course is a course as the student page shows it.
type Course struct {
	ID          int64
	Name        string
	Teacher     string
	Category    string
	Days        []string
	Time        string
	Room        string
	Capacity    int
	Enrolled    int64
	Description string
	IsEnrolled  bool
	// CanEnroll is false when the backend blocks any change, e.g. after
	// attendance has started.
	CanEnroll bool
}

func NewCourse(sc models.StudentCourse) Course {
	course := Course{
		ID:          sc.CourseID,
		Name:        sc.CourseName,
		Teacher:     sc.TeacherName,
		Category:    sc.Category,
		Days:        utils.SplitList(sc.CourseDays),
		Time:        sc.CourseTime,
		Room:        sc.Location,
		Capacity:    sc.Capacity,
		Enrolled:    sc.CurrentEnrollment,
		Description: sc.Description,
		IsEnrolled:  sc.IsEnrolled || sc.Enrolled,
		CanEnroll:   utils.ValueOr(sc.CanEnroll, true),
	}
	if course.Category == "" {
		course.Category = defaultCategory
	}
	if course.Room == "" {
		course.Room = defaultRoom
	}
	return course
}

// RemainingSeats never goes below zero.
func (c Course) RemainingSeats() int64 {
	return max(int64(c.Capacity)-c.Enrolled, 0)
}

// Schedule reads like "월, 수 16:00-18:00".
func (c Course) Schedule() string {
	return strings.TrimSpace(strings.Join(c.Days, ", ") + " " + c.Time)
}

func (c Course) popularity() float64 {
	if c.Capacity <= 0 {
		return 0
	}
	return float64(c.Enrolled) / float64(c.Capacity)
}

// ApplyButton returns the label of the enrol button and whether it can be
// pressed.
func (c Course) ApplyButton() (string, bool) {
	switch {
	case c.IsEnrolled:
		return "수강 취소", c.CanEnroll
	case c.RemainingSeats() <= 0:
		return "정원 마감", false
	}
	return "수강 신청", c.CanEnroll
}

// CourseQuery is answered by the backend.
type CourseQuery struct {
	Keyword  string
	Category string
}

func (q CourseQuery) encode() string {
	v := url.Values{}
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		v.Set("keyword", kw)
	}
	if cat := strings.TrimSpace(q.Category); cat != "" {
		v.Set("category", cat)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// loadFailed logs a failed list load and tells the user, unless the caller
// abandoned the load.
func (c *Controller) loadFailed(err error, what, notice string) {
	if errors.Is(err, context.Canceled) {
		log.Debug().Err(err).Msgf("Load of %s cancelled", what)
		return
	}
	log.Err(err).Msgf("Failed to load %s", what)
	c.pc.Browser.Notify(notice)
}

// Courses loads the open courses matching q.
func (c *Controller) Courses(ctx context.Context, q CourseQuery) ([]Course, error) {
	list, err := apiclient.Get[[]models.StudentCourse](ctx, c.pc.Client, coursesPath+q.encode())
	if err != nil {
		c.loadFailed(err, "courses", MsgCoursesLoadFailed)
		return nil, err
	}
	courses := make([]Course, 0, len(list))
	for _, sc := range list {
		courses = append(courses, NewCourse(sc))
	}
	return courses, nil
}

// Course loads the detail of one course.
func (c *Controller) Course(ctx context.Context, courseID int64) (Course, error) {
	sc, err := apiclient.Get[models.StudentCourse](ctx, c.pc.Client, coursePath(courseID))
	if err != nil {
		log.Err(err).Int64("courseId", courseID).Msg("Failed to load course detail")
		return Course{}, err
	}
	return NewCourse(sc), nil
}

// Sort orders of the course grid.
const (
	SortPopular  = "popular"
	SortName     = "name"
	SortTeacher  = "teacher"
	SortCategory = "category"
	SortRemain   = "remain"
)

// Filter narrows and orders an already loaded course list. Search matches
// the course or teacher name ignoring case; several categories match any.
type Filter struct {
	Search     string
	Teacher    string
	Categories []string
	Sort       string
}

// Apply returns the courses kept by f in f's order. courses is not modified.
func (f Filter) Apply(courses []Course) []Course {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Course, 0, len(courses))
	for _, c := range courses {
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.Teacher), q) {
			continue
		}
		if f.Teacher != "" && c.Teacher != f.Teacher {
			continue
		}
		if len(f.Categories) > 0 && !slices.Contains(f.Categories, c.Category) {
			continue
		}
		out = append(out, c)
	}

	var less func(a, b Course) bool
	switch f.Sort {
	case SortName:
		less = func(a, b Course) bool { return a.Name < b.Name }
	case SortTeacher:
		less = func(a, b Course) bool { return a.Teacher < b.Teacher }
	case SortCategory:
		less = func(a, b Course) bool {
			if a.Category != b.Category {
				return a.Category < b.Category
			}
			return a.Name < b.Name
		}
	case SortRemain:
		less = func(a, b Course) bool { return a.RemainingSeats() > b.RemainingSeats() }
	default:
		less = func(a, b Course) bool { return a.popularity() > b.popularity() }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Popular returns the n fullest courses.
func Popular(courses []Course, n int) []Course {
	list := Filter{Sort: SortPopular}.Apply(courses)
	if len(list) > n {
		list = list[:n]
	}
	return list
}

// Teachers lists the distinct teacher names in order of first appearance.
func Teachers(courses []Course) []string {
	return distinct(courses, func(c Course) string { return c.Teacher })
}

// Categories lists the distinct categories in order of first appearance.
func Categories(courses []Course) []string {
	return distinct(courses, func(c Course) string { return c.Category })
}

func distinct(courses []Course, key func(Course) string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, c := range courses {
		k := strings.TrimSpace(key(c))
		if k == "" || k == "undefined" || k == "null" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// Enroll asks for confirmation and enrols in course. It reports whether the
// enrolment went through.
func (c *Controller) Enroll(ctx context.Context, course Course) (bool, error) {
	if course.RemainingSeats() <= 0 {
		err := portal.Invalid(MsgCourseFull)
		c.pc.Report(err, "")
		return false, err
	}
	if !c.pc.Browser.Confirm(fmt.Sprintf(msgEnrollConfirm, course.Name)) {
		return false, nil
	}
	if err := c.pc.Client.Send(ctx, http.MethodPost, coursePath(course.ID, "enroll"), struct{}{}); err != nil {
		log.Err(err).Int64("courseId", course.ID).Msg("Failed to enroll")
		c.pc.Report(err, MsgActionFailed)
		return false, err
	}
	c.pc.Browser.Notify(MsgEnrolled)
	return true, nil
}

// Cancel asks for confirmation and withdraws from a course. It reports
// whether the enrolment was cancelled.
func (c *Controller) Cancel(ctx context.Context, courseID int64, courseName string) (bool, error) {
	if !c.pc.Browser.Confirm(fmt.Sprintf(msgCancelConfirm, courseName)) {
		return false, nil
	}
	if err := c.pc.Client.Send(ctx, http.MethodDelete, coursePath(courseID, "enroll"), nil); err != nil {
		log.Err(err).Int64("courseId", courseID).Msg("Failed to cancel enrollment")
		c.pc.Report(err, MsgCancelFailed)
		return false, err
	}
	c.pc.Browser.Notify(MsgCancelled)
	return true, nil
}

// Toggle enrols in course, or cancels when already enrolled.
func (c *Controller) Toggle(ctx context.Context, course Course) (bool, error) {
	if course.IsEnrolled {
		return c.Cancel(ctx, course.ID, course.Name)
	}
	return c.Enroll(ctx, course)
}

// MyCourses returns the active enrolments with their attendance counts.
// Rows without a status are active.
func (c *Controller) MyCourses(ctx context.Context) (models.MyCourses, error) {
	mine, err := apiclient.Get[models.MyCourses](ctx, c.pc.Client, myCoursesPath)
	if err != nil {
		c.loadFailed(err, "my courses", MsgMyCoursesLoadFailed)
		return models.MyCourses{}, err
	}
	for i := range mine.Courses {
		if mine.Courses[i].Status == "" {
			mine.Courses[i].Status = enrollmentActive
		}
	}
	return mine, nil
}

// AttendancePercent rounds an attendance rate for display.
func AttendancePercent(rate float64) int {
	return int(math.Round(rate))
}
