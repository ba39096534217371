package backendfake

import (
	"net/http"
	"sort"
	"strings"

	"github.com/jrsteele09/afterschool-portal/portal/models"
	"github.com/jrsteele09/afterschool-portal/roles"
)

func (b *Backend) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := b.authorize(w, r, roles.Admin); !ok {
		return
	}
	role := r.URL.Query().Get("role")
	name := r.URL.Query().Get("name")

	b.lock.RLock()
	defer b.lock.RUnlock()
	list := []models.User{}
	for _, u := range b.users {
		if role != "" && u.role != role {
			continue
		}
		if name != "" && !strings.Contains(u.name, name) {
			continue
		}
		list = append(list, userDTO(u))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UserID < list[j].UserID })
	writeJSON(w, http.StatusOK, list)
}

func (b *Backend) handleAdminUserRole(w http.ResponseWriter, r *http.Request) {
	if _, ok := b.authorize(w, r, roles.Admin); !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.RoleUpdate
	if !decode(w, r, &req) {
		return
	}
	role, valid := roles.Parse(req.Role)
	if !valid {
		writeMessage(w, http.StatusBadRequest, "유효하지 않은 역할입니다.")
		return
	}

	b.lock.Lock()
	defer b.lock.Unlock()
	u, found := b.users[id]
	if !found {
		writeMessage(w, http.StatusBadRequest, "사용자를 찾을 수 없습니다. id: "+r.PathValue("id"))
		return
	}
	u.role = role.String()
	writeJSON(w, http.StatusOK, userDTO(u))
}

func (b *Backend) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := b.authorize(w, r, roles.Admin); !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	b.lock.Lock()
	defer b.lock.Unlock()
	if _, found := b.users[id]; !found {
		writeMessage(w, http.StatusBadRequest, "사용자를 찾을 수 없습니다. id: "+r.PathValue("id"))
		return
	}
	delete(b.users, id)
	writeMessage(w, http.StatusOK, "사용자가 성공적으로 삭제되었습니다.")
}

func (b *Backend) handleAdminPendingCourses(w http.ResponseWriter, r *http.Request) {
	if _, ok := b.authorize(w, r, roles.Admin); !ok {
		return
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	writeJSON(w, http.StatusOK, b.adminCoursesLocked(func(c *course) bool { return c.status == models.StatusPending }))
}

func (b *Backend) handleAdminCourses(w http.ResponseWriter, r *http.Request) {
	if _, ok := b.authorize(w, r, roles.Admin); !ok {
		return
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	writeJSON(w, http.StatusOK, b.adminCoursesLocked(func(*course) bool { return true }))
}

func (b *Backend) handleAdminCourseStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := b.authorize(w, r, roles.Admin); !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.StatusUpdate
	if !decode(w, r, &req) {
		return
	}
	if req.Status != models.StatusApproved && req.Status != models.StatusRejected {
		writeMessage(w, http.StatusBadRequest, "유효하지 않은 상태입니다.")
		return
	}

	b.lock.Lock()
	defer b.lock.Unlock()
	c, found := b.courses[id]
	if !found {
		writeMessage(w, http.StatusNotFound, "강좌를 찾을 수 없습니다.")
		return
	}
	c.status = req.Status
	writeJSON(w, http.StatusOK, b.adminCourseDTOLocked(c))
}

func (b *Backend) handleAdminApproveAll(w http.ResponseWriter, r *http.Request) {
	if _, ok := b.authorize(w, r, roles.Admin); !ok {
		return
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	for _, c := range b.courses {
		if c.status == models.StatusPending {
			c.status = models.StatusApproved
		}
	}
	writeMessage(w, http.StatusOK, "모든 대기 강좌가 승인되었습니다.")
}

func (b *Backend) handleAdminEndCourse(w http.ResponseWriter, r *http.Request) {
	if _, ok := b.authorize(w, r, roles.Admin); !ok {
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
	case c.status != models.StatusApproved:
		writeMessage(w, http.StatusBadRequest, "승인된 강좌만 종료할 수 있습니다.")
		return
	case c.ended:
		writeMessage(w, http.StatusBadRequest, "이미 종료된 강좌입니다.")
		return
	case c.endDate != "" && c.endDate > b.now().Format(dateLayout):
		writeMessage(w, http.StatusBadRequest, "종료일 이후에만 종료 처리할 수 있습니다.")
		return
	}
	now := b.now()
	c.ended = true
	c.endedAt = &now
	writeJSON(w, http.StatusOK, b.adminCourseDTOLocked(c))
}

func (b *Backend) handleAdminCreateSurvey(w http.ResponseWriter, r *http.Request) {
	if _, ok := b.authorize(w, r, roles.Admin); !ok {
		return
	}
	var req models.SurveyInput
	if !decode(w, r, &req) {
		return
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	id := b.addSurveyLocked(0, req)
	writeJSON(w, http.StatusCreated, surveySummary(b.surveys[id]))
}

func (b *Backend) handleAdminCreateNotice(w http.ResponseWriter, r *http.Request) {
	author, ok := b.authorize(w, r, roles.Admin)
	if !ok {
		return
	}
	var req models.NoticeInput
	if !decode(w, r, &req) {
		return
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	n := &notice{id: b.id(), authorID: author.id, title: req.Title, content: req.Content, createdAt: b.now()}
	b.notices[n.id] = n
	writeJSON(w, http.StatusCreated, b.noticeDTOLocked(n))
}

func (b *Backend) adminCoursesLocked(keep func(*course) bool) []models.AdminCourse {
	list := []models.AdminCourse{}
	for _, c := range b.sortedCoursesLocked() {
		if keep(c) {
			list = append(list, b.adminCourseDTOLocked(c))
		}
	}
	return list
}

func (b *Backend) sortedCoursesLocked() []*course {
	list := make([]*course, 0, len(b.courses))
	for _, c := range b.courses {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].id < list[j].id })
	return list
}

func userDTO(u *user) models.User {
	dto := models.User{UserID: u.id, Email: u.email, Name: u.name, Role: u.role}
	if u.studentIDNo != "" {
		studentIDNo := u.studentIDNo
		dto.StudentIDNo = &studentIDNo
	}
	return dto
}

func surveySummary(s *survey) models.SurveySummary {
	return models.SurveySummary{SurveyID: s.id, Title: s.title, StartDate: s.startDate, EndDate: s.endDate}
}

func (b *Backend) noticeDTOLocked(n *notice) models.Notice {
	dto := models.Notice{ID: n.id, Title: n.title, Content: n.content, CreatedAt: &models.Timestamp{Time: n.createdAt}}
	if author, ok := b.users[n.authorID]; ok {
		dto.AuthorName = author.name
	}
	return dto
}
