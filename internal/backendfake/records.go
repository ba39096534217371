package backendfake

import (
	"time"

	"github.com/jrsteele09/afterschool-portal/portal/models"
)

const (
	enrollmentActive    = "ACTIVE"
	enrollmentCancelled = "CANCELLED"
)

type user struct {
	id           int64
	email        string
	passwordHash string
	name         string
	role         string
	studentIDNo  string
}

type course struct {
	id        int64
	teacherID int64
	input     models.CourseInput
	status    string
	quarter   *int
	endDate   string
	ended     bool
	endedAt   *time.Time
	createdAt time.Time
}

type enrollment struct {
	id        int64
	courseID  int64
	studentID int64
	status    string
}

type attendanceRecord struct {
	id           int64
	enrollmentID int64
	classDate    string
	status       string
}

type notice struct {
	id        int64
	courseID  int64 // 0 for school-wide notices
	authorID  int64
	title     string
	content   string
	createdAt time.Time
}

type survey struct {
	id        int64
	courseID  int64 // 0 for school-wide surveys
	title     string
	startDate string
	endDate   string
	questions []models.Question
}

// CourseSeed describes a course created directly in the backend.
type CourseSeed struct {
	Input   models.CourseInput
	Status  string
	Quarter *int
	EndDate string
}

// AddCourse creates a course owned by the teacher with teacherEmail.
func (b *Backend) AddCourse(teacherEmail string, seed CourseSeed) int64 {
	b.lock.Lock()
	defer b.lock.Unlock()
	teacher := b.userByEmailLocked(teacherEmail)
	if teacher == nil {
		panic("backendfake: unknown teacher " + teacherEmail)
	}
	c := &course{
		id:        b.id(),
		teacherID: teacher.id,
		input:     seed.Input,
		status:    seed.Status,
		quarter:   seed.Quarter,
		endDate:   seed.EndDate,
		createdAt: b.now(),
	}
	if c.status == "" {
		c.status = models.StatusPending
	}
	b.courses[c.id] = c
	return c.id
}

// Enroll puts the student with studentEmail on the course.
func (b *Backend) Enroll(courseID int64, studentEmail string) int64 {
	b.lock.Lock()
	defer b.lock.Unlock()
	student := b.userByEmailLocked(studentEmail)
	if student == nil {
		panic("backendfake: unknown student " + studentEmail)
	}
	e := &enrollment{id: b.id(), courseID: courseID, studentID: student.id, status: enrollmentActive}
	b.enrollments[e.id] = e
	return e.id
}

// RecordAttendance stores one attendance mark.
func (b *Backend) RecordAttendance(enrollmentID int64, classDate, status string) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.upsertAttendanceLocked(enrollmentID, classDate, status)
}

// AddSurvey creates a survey; courseID 0 makes it school-wide.
func (b *Backend) AddSurvey(courseID int64, input models.SurveyInput) int64 {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.addSurveyLocked(courseID, input)
}

// Submissions returns the answers a student gave to a survey.
func (b *Backend) Submissions(surveyID int64, studentEmail string) []models.SurveyAnswer {
	b.lock.RLock()
	defer b.lock.RUnlock()
	student := b.userByEmailLocked(studentEmail)
	if student == nil {
		return nil
	}
	return b.submissions[surveyID][student.id]
}

// CourseStatus reports the status of a course and whether it has ended.
func (b *Backend) CourseStatus(courseID int64) (status string, ended bool, ok bool) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	c, ok := b.courses[courseID]
	if !ok {
		return "", false, false
	}
	return c.status, c.ended, true
}

// UserRole returns the stored role code of a user.
func (b *Backend) UserRole(email string) (string, bool) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	u := b.userByEmailLocked(email)
	if u == nil {
		return "", false
	}
	return u.role, true
}

func (b *Backend) userByEmailLocked(email string) *user {
	for _, u := range b.users {
		if u.email == email {
			return u
		}
	}
	return nil
}

func (b *Backend) addSurveyLocked(courseID int64, input models.SurveyInput) int64 {
	s := &survey{id: b.id(), courseID: courseID, title: input.Title, startDate: input.StartDate, endDate: input.EndDate}
	for _, q := range input.Questions {
		question := models.Question{QuestionID: b.id(), QuestionText: q.QuestionText, QuestionType: q.QuestionType}
		if q.Options != nil {
			question.Options = *q.Options
		}
		s.questions = append(s.questions, question)
	}
	b.surveys[s.id] = s
	return s.id
}

func (b *Backend) upsertAttendanceLocked(enrollmentID int64, classDate, status string) {
	for _, a := range b.attendance {
		if a.enrollmentID == enrollmentID && a.classDate == classDate {
			a.status = status
			return
		}
	}
	a := &attendanceRecord{id: b.id(), enrollmentID: enrollmentID, classDate: classDate, status: status}
	b.attendance[a.id] = a
}

func (b *Backend) activeCountLocked(courseID int64) int64 {
	var n int64
	for _, e := range b.enrollments {
		if e.courseID == courseID && e.status == enrollmentActive {
			n++
		}
	}
	return n
}

func (b *Backend) activeEnrollmentLocked(courseID, studentID int64) *enrollment {
	for _, e := range b.enrollments {
		if e.courseID == courseID && e.studentID == studentID && e.status == enrollmentActive {
			return e
		}
	}
	return nil
}

func (b *Backend) teacherNameLocked(c *course) string {
	if t, ok := b.users[c.teacherID]; ok {
		return t.name
	}
	return ""
}

func (b *Backend) courseDTOLocked(c *course) models.Course {
	dto := models.Course{
		CourseID:               c.id,
		CourseName:             c.input.CourseName,
		Category:               c.input.Category,
		Status:                 c.status,
		CourseDays:             c.input.CourseDays,
		CourseTime:             c.input.CourseTime,
		Location:               c.input.Location,
		Capacity:               c.input.Capacity,
		CurrentEnrollmentCount: b.activeCountLocked(c.id),
		CreatedAt:              &models.Timestamp{Time: c.createdAt},
		Description:            c.input.Description,
		Quarter:                c.quarter,
		EndDate:                c.endDate,
		Ended:                  c.ended,
		TeacherName:            b.teacherNameLocked(c),
	}
	if t, ok := b.users[c.teacherID]; ok {
		dto.TeacherEmail = t.email
	}
	if c.endedAt != nil {
		dto.EndedAt = &models.Timestamp{Time: *c.endedAt}
	}
	return dto
}

func (b *Backend) adminCourseDTOLocked(c *course) models.AdminCourse {
	dto := models.AdminCourse{
		CourseID:               c.id,
		CourseName:             c.input.CourseName,
		TeacherName:            b.teacherNameLocked(c),
		Status:                 c.status,
		Capacity:               c.input.Capacity,
		CurrentEnrollmentCount: b.activeCountLocked(c.id),
		Quarter:                c.quarter,
		EndDate:                c.endDate,
		Ended:                  c.ended,
	}
	if c.endedAt != nil {
		dto.EndedAt = &models.Timestamp{Time: *c.endedAt}
	}
	return dto
}
