// Package teacher backs the teacher page: course requests and edits, the
// roster, attendance, course notices and course surveys.
package teacher

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/afterschool-portal/apiclient"
	"github.com/jrsteele09/afterschool-portal/guard"
	"github.com/jrsteele09/afterschool-portal/portal"
	"github.com/jrsteele09/afterschool-portal/portal/models"
	"github.com/jrsteele09/afterschool-portal/roles"
	"github.com/rs/zerolog/log"
)

const (
	coursesPath   = "/api/teachers/courses"
	myCoursesPath = coursesPath + "/my"
)

type Controller struct {
	pc *portal.Context
}

func New(pc *portal.Context) *Controller {
	return &Controller{pc: pc}
}

// Open runs the page load checks for the teacher page.
func (c *Controller) Open(ctx context.Context) guard.Decision {
	return c.pc.Guard.OnPageLoad(ctx, roles.Teacher.Label())
}

func coursePath(courseID int64, rest ...string) string {
	p := coursesPath + "/" + strconv.FormatInt(courseID, 10)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

// CourseForm holds the course editor fields as typed.
type CourseForm struct {
	CourseName  string
	Category    string
	CourseDays  string
	CourseTime  string
	Capacity    string
	Location    string
	Description string
}

func (f CourseForm) trimmed() CourseForm {
	for _, s := range []*string{&f.CourseName, &f.Category, &f.CourseDays, &f.CourseTime, &f.Capacity, &f.Location, &f.Description} {
		*s = strings.TrimSpace(*s)
	}
	return f
}

func (f CourseForm) filled() bool {
	return f.CourseName != "" && f.Category != "" && f.CourseDays != "" && f.CourseTime != ""
}

func (f CourseForm) input(capacity int) models.CourseInput {
	return models.CourseInput{
		CourseName:  f.CourseName,
		Category:    f.Category,
		Description: f.Description,
		CourseDays:  f.CourseDays,
		CourseTime:  f.CourseTime,
		Location:    f.Location,
		Capacity:    capacity,
	}
}

// CreateInput validates the form for a new course request.
func (f CourseForm) CreateInput() (models.CourseInput, error) {
	f = f.trimmed()
	if !f.filled() || f.Capacity == "" {
		return models.CourseInput{}, portal.Invalid(MsgCreateRequired)
	}
	capacity, err := strconv.Atoi(f.Capacity)
	if err != nil || capacity < 1 {
		return models.CourseInput{}, portal.Invalid(MsgCapacityTooSmall)
	}
	return f.input(capacity), nil
}

// UpdateInput validates the form for an edit. A capacity that is missing,
// zero or not a number counts as a missing field.
func (f CourseForm) UpdateInput() (models.CourseInput, error) {
	f = f.trimmed()
	capacity, _ := strconv.Atoi(f.Capacity)
	if !f.filled() || capacity == 0 {
		return models.CourseInput{}, portal.Invalid(MsgUpdateRequired)
	}
	return f.input(capacity), nil
}

// StatusText is the label shown for a course status.
func StatusText(status string) string {
	switch strings.ToUpper(status) {
	case models.StatusPending:
		return "대기"
	case models.StatusApproved:
		return "승인"
	case models.StatusRejected:
		return "반려"
	}
	return status
}

// CourseCard is a course as shown in the teacher's list.
type CourseCard struct {
	models.Course
	StatusText string
	Enrollment string
	// CanManage opens the roster, attendance, notice and survey tabs.
	CanManage bool
	// CanEdit allows changes while the course is not approved.
	CanEdit bool
}

func NewCourseCard(course models.Course) CourseCard {
	status := strings.ToUpper(course.Status)
	return CourseCard{
		Course:     course,
		StatusText: StatusText(course.Status),
		Enrollment: fmt.Sprintf("%d/%d", course.CurrentEnrollmentCount, course.Capacity),
		CanManage:  status == models.StatusApproved,
		CanEdit:    status == models.StatusPending || status == models.StatusRejected,
	}
}

// MyCourses lists the signed-in teacher's courses. The backend answers with
// every course, so the list is narrowed to those whose teacher e-mail or
// name matches the session.
func (c *Controller) MyCourses(ctx context.Context) ([]CourseCard, error) {
	courses, err := apiclient.Get[[]models.Course](ctx, c.pc.Client, myCoursesPath)
	if err != nil {
		log.Err(err).Msg("Failed to load my courses")
		c.pc.Browser.Notify(MsgCoursesLoadFailed)
		return nil, err
	}

	me, signedIn := c.pc.CurrentUser(ctx)
	cards := make([]CourseCard, 0, len(courses))
	for _, course := range courses {
		if signedIn && me.Email != "" && course.TeacherEmail != me.Email && course.TeacherName != me.Name {
			continue
		}
		cards = append(cards, NewCourseCard(course))
	}
	log.Debug().Int("mine", len(cards)).Int("total", len(courses)).Msg("Filtered teacher courses")
	return cards, nil
}

// CreateCourse requests a new course. It starts out pending approval.
func (c *Controller) CreateCourse(ctx context.Context, form CourseForm) (models.Course, error) {
	in, err := form.CreateInput()
	if err != nil {
		c.pc.Report(err, MsgCourseRequestFailed)
		return models.Course{}, err
	}
	course, err := apiclient.Call[models.Course](ctx, c.pc.Client, http.MethodPost, coursesPath, in)
	if err != nil {
		log.Err(err).Msg("Failed to create course")
		c.pc.Report(err, MsgCourseRequestFailed)
		return models.Course{}, err
	}
	c.pc.Browser.Notify(MsgCourseRequested)
	return course, nil
}

// UpdateCourse edits a pending or rejected course.
func (c *Controller) UpdateCourse(ctx context.Context, courseID int64, form CourseForm) (models.Course, error) {
	in, err := form.UpdateInput()
	if err != nil {
		c.pc.Report(err, MsgCourseUpdateFailed)
		return models.Course{}, err
	}
	course, err := apiclient.Call[models.Course](ctx, c.pc.Client, http.MethodPut, coursePath(courseID), in)
	if err != nil {
		log.Err(err).Int64("courseId", courseID).Msg("Failed to update course")
		c.pc.Report(err, MsgCourseUpdateFailed)
		return models.Course{}, err
	}
	c.pc.Browser.Notify(MsgCourseUpdated)
	return course, nil
}

// Students returns the roster of a course.
func (c *Controller) Students(ctx context.Context, courseID int64) ([]models.EnrolledStudent, error) {
	students, err := apiclient.Get[[]models.EnrolledStudent](ctx, c.pc.Client, coursePath(courseID, "students"))
	if err != nil {
		log.Err(err).Int64("courseId", courseID).Msg("Failed to load students")
		return nil, err
	}
	return students, nil
}
