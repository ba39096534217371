package backendfake

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/afterschool-portal/portal/models"
	"github.com/jrsteele09/afterschool-portal/roles"
)

func (b *Backend) handleStudentCourses(w http.ResponseWriter, r *http.Request) {
	student, ok := b.authorize(w, r, roles.Student)
	if !ok {
		return
	}
	keyword := strings.ToLower(r.URL.Query().Get("keyword"))
	category := r.URL.Query().Get("category")

	b.lock.RLock()
	defer b.lock.RUnlock()
	list := []models.StudentCourse{}
	for _, c := range b.sortedCoursesLocked() {
		if c.status != models.StatusApproved || c.ended {
			continue
		}
		if category != "" && c.input.Category != category {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(c.input.CourseName), keyword) &&
			!strings.Contains(strings.ToLower(b.teacherNameLocked(c)), keyword) {
			continue
		}
		dto := b.studentCourseDTOLocked(c, student.id)
		dto.CanEnroll = nil
		list = append(list, dto)
	}
	writeJSON(w, http.StatusOK, list)
}

func (b *Backend) handleStudentCourse(w http.ResponseWriter, r *http.Request) {
	student, ok := b.authorize(w, r, roles.Student)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	c, found := b.courses[id]
	if !found || c.status != models.StatusApproved {
		writeMessage(w, http.StatusNotFound, "강좌를 찾을 수 없습니다.")
		return
	}
	writeJSON(w, http.StatusOK, b.studentCourseDTOLocked(c, student.id))
}

func (b *Backend) handleStudentEnroll(w http.ResponseWriter, r *http.Request) {
	student, ok := b.authorize(w, r, roles.Student)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	b.lock.Lock()
	defer b.lock.Unlock()
	c, found := b.courses[id]
	switch {
	case !found:
		writeMessage(w, http.StatusNotFound, "강좌를 찾을 수 없습니다.")
		return
	case c.status != models.StatusApproved || c.ended:
		writeMessage(w, http.StatusBadRequest, "수강 신청할 수 없는 강좌입니다.")
		return
	case b.activeEnrollmentLocked(c.id, student.id) != nil:
		writeMessage(w, http.StatusBadRequest, "이미 수강 신청된 강좌입니다.")
		return
	case b.activeCountLocked(c.id) >= int64(c.input.Capacity):
		writeMessage(w, http.StatusBadRequest, "수강 정원이 초과되어 신청할 수 없습니다.")
		return
	}
	e := &enrollment{id: b.id(), courseID: c.id, studentID: student.id, status: enrollmentActive}
	b.enrollments[e.id] = e
	writeMessage(w, http.StatusOK, "수강 신청이 완료되었습니다.")
}

func (b *Backend) handleStudentCancel(w http.ResponseWriter, r *http.Request) {
	student, ok := b.authorize(w, r, roles.Student)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	b.lock.Lock()
	defer b.lock.Unlock()
	e := b.activeEnrollmentLocked(id, student.id)
	if e == nil {
		writeMessage(w, http.StatusBadRequest, "수강 신청 내역이 없습니다.")
		return
	}
	e.status = enrollmentCancelled
	writeMessage(w, http.StatusOK, "수강 신청이 취소되었습니다.")
}

func (b *Backend) handleStudentMyCourses(w http.ResponseWriter, r *http.Request) {
	student, ok := b.authorize(w, r, roles.Student)
	if !ok {
		return
	}

	b.lock.RLock()
	defer b.lock.RUnlock()
	out := models.MyCourses{Courses: []models.MyCourse{}}
	var rateSum float64
	for _, c := range b.sortedCoursesLocked() {
		e := b.activeEnrollmentLocked(c.id, student.id)
		if e == nil {
			continue
		}
		mc := models.MyCourse{CourseID: c.id, CourseName: c.input.CourseName, TeacherName: b.teacherNameLocked(c), Status: e.status}
		for _, a := range b.attendance {
			if a.enrollmentID != e.id {
				continue
			}
			switch a.status {
			case models.AttendancePresent:
				mc.PresentCount++
			case models.AttendanceAbsent:
				mc.AbsentCount++
			case models.AttendanceLate:
				mc.LateCount++
			}
		}
		if total := mc.PresentCount + mc.AbsentCount + mc.LateCount; total > 0 {
			mc.AttendanceRate = float64(mc.PresentCount+mc.LateCount) / float64(total) * 100
		}
		rateSum += mc.AttendanceRate
		out.Courses = append(out.Courses, mc)
	}
	if len(out.Courses) > 0 {
		out.OverallAttendanceRate = rateSum / float64(len(out.Courses))
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) handleStudentSurveys(w http.ResponseWriter, r *http.Request) {
	student, ok := b.authorize(w, r, roles.Student)
	if !ok {
		return
	}

	b.lock.RLock()
	defer b.lock.RUnlock()
	list := []models.StudentSurvey{}
	for _, s := range b.sortedSurveysLocked() {
		if !b.canSeeSurveyLocked(s, student.id) {
			continue
		}
		_, submitted := b.submissions[s.id][student.id]
		item := models.StudentSurvey{SurveyID: s.id, Title: s.title, StartDate: s.startDate, EndDate: s.endDate, IsSubmitted: submitted}
		if c, found := b.courses[s.courseID]; found {
			courseID, courseName := c.id, c.input.CourseName
			item.CourseID = &courseID
			item.CourseName = &courseName
		}
		list = append(list, item)
	}
	writeJSON(w, http.StatusOK, list)
}

func (b *Backend) handleStudentSurvey(w http.ResponseWriter, r *http.Request) {
	s, _, ok := b.visibleSurvey(w, r)
	if !ok {
		return
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	writeJSON(w, http.StatusOK, models.SurveyDetail{SurveyID: s.id, Title: s.title, Questions: s.questions})
}

func (b *Backend) handleStudentSubmitSurvey(w http.ResponseWriter, r *http.Request) {
	s, student, ok := b.visibleSurvey(w, r)
	if !ok {
		return
	}
	var req models.SurveySubmission
	if !decode(w, r, &req) {
		return
	}

	b.lock.Lock()
	defer b.lock.Unlock()
	if _, done := b.submissions[s.id][student.id]; done {
		writeMessage(w, http.StatusBadRequest, "You have already submitted this survey.")
		return
	}
	if b.submissions[s.id] == nil {
		b.submissions[s.id] = make(map[int64][]models.SurveyAnswer)
	}
	b.submissions[s.id][student.id] = append([]models.SurveyAnswer{}, req.Responses...)
	writeMessage(w, http.StatusOK, "설문이 성공적으로 제출되었습니다.")
}

func (b *Backend) visibleSurvey(w http.ResponseWriter, r *http.Request) (*survey, *user, bool) {
	student, ok := b.authorize(w, r, roles.Student)
	if !ok {
		return nil, nil, false
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return nil, nil, false
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	s, found := b.surveys[id]
	if !found {
		writeMessage(w, http.StatusNotFound, "설문을 찾을 수 없습니다.")
		return nil, nil, false
	}
	if !b.canSeeSurveyLocked(s, student.id) {
		writeMessage(w, http.StatusForbidden, "You do not have permission to view this survey.")
		return nil, nil, false
	}
	return s, student, true
}

func (b *Backend) canSeeSurveyLocked(s *survey, studentID int64) bool {
	return s.courseID == 0 || b.activeEnrollmentLocked(s.courseID, studentID) != nil
}

func (b *Backend) studentCourseDTOLocked(c *course, studentID int64) models.StudentCourse {
	count := b.activeCountLocked(c.id)
	canEnroll := count < int64(c.input.Capacity)
	return models.StudentCourse{
		CourseID:          c.id,
		CourseName:        c.input.CourseName,
		TeacherName:       b.teacherNameLocked(c),
		Category:          c.input.Category,
		Description:       c.input.Description,
		CourseDays:        c.input.CourseDays,
		CourseTime:        c.input.CourseTime,
		Location:          c.input.Location,
		CurrentEnrollment: count,
		Capacity:          c.input.Capacity,
		IsEnrolled:        b.activeEnrollmentLocked(c.id, studentID) != nil,
		CanEnroll:         &canEnroll,
	}
}
