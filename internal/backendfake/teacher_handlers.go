package backendfake

import (
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jrsteele09/afterschool-portal/portal/models"
	"github.com/jrsteele09/afterschool-portal/roles"
)

const dateLayout = "2006-01-02"

var courseDaysPattern = regexp.MustCompile(`^[월화수목금토일](,[월화수목금토일])*$`)

func validateCourse(in models.CourseInput) string {
	switch {
	case strings.TrimSpace(in.CourseName) == "":
		return "강좌명은 필수 입력 항목입니다."
	case strings.TrimSpace(in.CourseDays) == "":
		return "수업 요일은 필수 입력 항목입니다."
	case !courseDaysPattern.MatchString(in.CourseDays):
		return "요일은 '화,목'과 같이 쉼표로 구분된 형식이어야 합니다."
	case strings.TrimSpace(in.CourseTime) == "":
		return "수업 시간은 필수 입력 항목입니다."
	case in.Capacity < 1:
		return "정원은 1명 이상이어야 합니다."
	}
	return ""
}

func (b *Backend) handleTeacherCreateCourse(w http.ResponseWriter, r *http.Request) {
	teacher, ok := b.authorize(w, r, roles.Teacher)
	if !ok {
		return
	}
	var req models.CourseInput
	if !decode(w, r, &req) {
		return
	}
	if msg := validateCourse(req); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	b.lock.Lock()
	defer b.lock.Unlock()
	c := &course{id: b.id(), teacherID: teacher.id, input: req, status: models.StatusPending, createdAt: b.now()}
	b.courses[c.id] = c
	writeJSON(w, http.StatusCreated, b.courseDTOLocked(c))
}

// handleTeacherMyCourses answers with every course, like the deployed
// backend does; clients narrow the list down themselves.
func (b *Backend) handleTeacherMyCourses(w http.ResponseWriter, r *http.Request) {
	if _, ok := b.authorize(w, r, roles.Teacher); !ok {
		return
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	list := []models.Course{}
	for _, c := range b.sortedCoursesLocked() {
		list = append(list, b.courseDTOLocked(c))
	}
	writeJSON(w, http.StatusOK, list)
}

func (b *Backend) handleTeacherUpdateCourse(w http.ResponseWriter, r *http.Request) {
	c, ok := b.ownedCourse(w, r)
	if !ok {
		return
	}
	var req models.CourseInput
	if !decode(w, r, &req) {
		return
	}
	if msg := validateCourse(req); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	b.lock.Lock()
	defer b.lock.Unlock()
	if c.status != models.StatusPending && c.status != models.StatusRejected {
		writeMessage(w, http.StatusBadRequest, "Only courses with PENDING or REJECTED status can be updated.")
		return
	}
	c.input = req
	c.status = models.StatusPending
	writeJSON(w, http.StatusOK, b.courseDTOLocked(c))
}

func (b *Backend) handleTeacherStudents(w http.ResponseWriter, r *http.Request) {
	c, ok := b.ownedCourse(w, r)
	if !ok {
		return
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	list := []models.EnrolledStudent{}
	for _, e := range b.courseEnrollmentsLocked(c.id) {
		if s, found := b.users[e.studentID]; found {
			list = append(list, models.EnrolledStudent{StudentIDNo: s.studentIDNo, Name: s.name})
		}
	}
	writeJSON(w, http.StatusOK, list)
}

func (b *Backend) handleTeacherAttendance(w http.ResponseWriter, r *http.Request) {
	c, ok := b.ownedCourse(w, r)
	if !ok {
		return
	}
	classDate := r.URL.Query().Get("classDate")
	if _, err := time.Parse(dateLayout, classDate); err != nil {
		writeMessage(w, http.StatusBadRequest, "수업 날짜는 필수입니다.")
		return
	}

	b.lock.RLock()
	defer b.lock.RUnlock()
	list := []models.Attendance{}
	for _, e := range b.courseEnrollmentsLocked(c.id) {
		row := models.Attendance{ClassDate: classDate, Status: models.AttendanceNone, EnrollmentID: e.id, StudentID: e.studentID}
		if s, found := b.users[e.studentID]; found {
			row.StudentName = s.name
		}
		for _, a := range b.attendance {
			if a.enrollmentID == e.id && a.classDate == classDate {
				id := a.id
				row.AttendanceID = &id
				row.Status = a.status
			}
		}
		list = append(list, row)
	}
	writeJSON(w, http.StatusOK, list)
}

func (b *Backend) handleTeacherSaveAttendance(w http.ResponseWriter, r *http.Request) {
	c, ok := b.ownedCourse(w, r)
	if !ok {
		return
	}
	var req models.AttendanceUpdate
	if !decode(w, r, &req) {
		return
	}
	if req.ClassDate == "" {
		writeMessage(w, http.StatusBadRequest, "수업 날짜는 필수입니다.")
		return
	}

	b.lock.Lock()
	defer b.lock.Unlock()
	for _, s := range req.Students {
		e, found := b.enrollments[s.EnrollmentID]
		if !found || e.courseID != c.id {
			writeMessage(w, http.StatusForbidden, "Enrollment does not belong to this course")
			return
		}
		switch s.Status {
		case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate:
		default:
			writeMessage(w, http.StatusBadRequest, "출결 상태는 필수입니다.")
			return
		}
	}
	for _, s := range req.Students {
		b.upsertAttendanceLocked(s.EnrollmentID, req.ClassDate, s.Status)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) handleTeacherNotices(w http.ResponseWriter, r *http.Request) {
	c, ok := b.ownedCourse(w, r)
	if !ok {
		return
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	list := []models.Notice{}
	for _, n := range b.notices {
		if n.courseID == c.id {
			list = append(list, b.noticeDTOLocked(n))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	writeJSON(w, http.StatusOK, list)
}

func (b *Backend) handleTeacherCreateNotice(w http.ResponseWriter, r *http.Request) {
	c, ok := b.ownedCourse(w, r)
	if !ok {
		return
	}
	var req models.NoticeInput
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeMessage(w, http.StatusBadRequest, "제목은 필수 입력 항목입니다.")
		return
	}

	b.lock.Lock()
	defer b.lock.Unlock()
	n := &notice{id: b.id(), courseID: c.id, authorID: c.teacherID, title: req.Title, content: req.Content, createdAt: b.now()}
	b.notices[n.id] = n
	writeJSON(w, http.StatusCreated, b.noticeDTOLocked(n))
}

func (b *Backend) handleTeacherUpdateNotice(w http.ResponseWriter, r *http.Request) {
	n, ok := b.ownedNotice(w, r)
	if !ok {
		return
	}
	var req models.NoticeInput
	if !decode(w, r, &req) {
		return
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	n.title = req.Title
	n.content = req.Content
	writeJSON(w, http.StatusOK, b.noticeDTOLocked(n))
}

func (b *Backend) handleTeacherDeleteNotice(w http.ResponseWriter, r *http.Request) {
	n, ok := b.ownedNotice(w, r)
	if !ok {
		return
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	delete(b.notices, n.id)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) handleTeacherSurveys(w http.ResponseWriter, r *http.Request) {
	c, ok := b.ownedCourse(w, r)
	if !ok {
		return
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	list := []models.SurveySummary{}
	for _, s := range b.sortedSurveysLocked() {
		if s.courseID == c.id {
			list = append(list, surveySummary(s))
		}
	}
	writeJSON(w, http.StatusOK, list)
}

func (b *Backend) handleTeacherCreateSurvey(w http.ResponseWriter, r *http.Request) {
	c, ok := b.ownedCourse(w, r)
	if !ok {
		return
	}
	var req models.SurveyInput
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeMessage(w, http.StatusBadRequest, "설문 제목은 필수입니다.")
		return
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	id := b.addSurveyLocked(c.id, req)
	writeJSON(w, http.StatusCreated, surveySummary(b.surveys[id]))
}

// ownedCourse loads the course in the path and checks the caller teaches it.
func (b *Backend) ownedCourse(w http.ResponseWriter, r *http.Request) (*course, bool) {
	teacher, ok := b.authorize(w, r, roles.Teacher)
	if !ok {
		return nil, false
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return nil, false
	}

	b.lock.RLock()
	c, found := b.courses[id]
	b.lock.RUnlock()
	if !found {
		writeMessage(w, http.StatusNotFound, "강좌를 찾을 수 없습니다.")
		return nil, false
	}
	if c.teacherID != teacher.id {
		writeMessage(w, http.StatusForbidden, "You are not the owner of this course")
		return nil, false
	}
	return c, true
}

func (b *Backend) ownedNotice(w http.ResponseWriter, r *http.Request) (*notice, bool) {
	c, ok := b.ownedCourse(w, r)
	if !ok {
		return nil, false
	}
	nid, ok := pathID(w, r, "nid")
	if !ok {
		return nil, false
	}
	b.lock.RLock()
	n, found := b.notices[nid]
	b.lock.RUnlock()
	if !found || n.courseID != c.id {
		writeMessage(w, http.StatusNotFound, "공지사항을 찾을 수 없습니다.")
		return nil, false
	}
	return n, true
}

func (b *Backend) courseEnrollmentsLocked(courseID int64) []*enrollment {
	list := []*enrollment{}
	for _, e := range b.enrollments {
		if e.courseID == courseID && e.status == enrollmentActive {
			list = append(list, e)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].id < list[j].id })
	return list
}

func (b *Backend) sortedSurveysLocked() []*survey {
	list := make([]*survey, 0, len(b.surveys))
	for _, s := range b.surveys {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].id < list[j].id })
	return list
}
