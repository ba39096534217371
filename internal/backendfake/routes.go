package backendfake

import "net/http"

const (
	authPrefix    = "/api/auth"
	adminPrefix   = "/api/admin"
	teacherPrefix = "/api/teachers/courses"
	studentPrefix = "/api/students"
)

func (b *Backend) initRoutes() {
	b.mux.HandleFunc("POST "+authPrefix+"/login", b.handleLogin)
	b.mux.HandleFunc("POST "+authPrefix+"/signup", b.handleSignup)
	b.mux.HandleFunc("POST "+authPrefix+"/send-verification", b.handleSendVerification)
	b.mux.HandleFunc("POST "+authPrefix+"/email/send-code", b.handleVerifyCode)

	b.mux.HandleFunc("GET "+adminPrefix+"/users", b.handleAdminUsers)
	b.mux.HandleFunc("PUT "+adminPrefix+"/users/{id}/role", b.handleAdminUserRole)
	b.mux.HandleFunc("DELETE "+adminPrefix+"/users/{id}", b.handleAdminDeleteUser)
	b.mux.HandleFunc("GET "+adminPrefix+"/courses/pending", b.handleAdminPendingCourses)
	b.mux.HandleFunc("PUT "+adminPrefix+"/courses/{id}/status", b.handleAdminCourseStatus)
	b.mux.HandleFunc("POST "+adminPrefix+"/courses/approve-all", b.handleAdminApproveAll)
	b.mux.HandleFunc("GET "+adminPrefix+"/courses", b.handleAdminCourses)
	b.mux.HandleFunc("POST "+adminPrefix+"/courses/{id}/end", b.handleAdminEndCourse)
	b.mux.HandleFunc("POST "+adminPrefix+"/surveys", b.handleAdminCreateSurvey)
	b.mux.HandleFunc("POST "+adminPrefix+"/notices", b.handleAdminCreateNotice)

	b.mux.HandleFunc("POST "+teacherPrefix, b.handleTeacherCreateCourse)
	b.mux.HandleFunc("GET "+teacherPrefix+"/my", b.handleTeacherMyCourses)
	b.mux.HandleFunc("PUT "+teacherPrefix+"/{id}", b.handleTeacherUpdateCourse)
	b.mux.HandleFunc("GET "+teacherPrefix+"/{id}/students", b.handleTeacherStudents)
	b.mux.HandleFunc("GET "+teacherPrefix+"/{id}/attendance", b.handleTeacherAttendance)
	b.mux.HandleFunc("POST "+teacherPrefix+"/{id}/attendance", b.handleTeacherSaveAttendance)
	b.mux.HandleFunc("GET "+teacherPrefix+"/{id}/notices", b.handleTeacherNotices)
	b.mux.HandleFunc("POST "+teacherPrefix+"/{id}/notices", b.handleTeacherCreateNotice)
	b.mux.HandleFunc("PUT "+teacherPrefix+"/{id}/notices/{nid}", b.handleTeacherUpdateNotice)
	b.mux.HandleFunc("DELETE "+teacherPrefix+"/{id}/notices/{nid}", b.handleTeacherDeleteNotice)
	b.mux.HandleFunc("GET "+teacherPrefix+"/{id}/surveys", b.handleTeacherSurveys)
	b.mux.HandleFunc("POST "+teacherPrefix+"/{id}/surveys", b.handleTeacherCreateSurvey)

	b.mux.HandleFunc("GET "+studentPrefix+"/courses", b.handleStudentCourses)
	b.mux.HandleFunc("GET "+studentPrefix+"/courses/{id}", b.handleStudentCourse)
	b.mux.HandleFunc("POST "+studentPrefix+"/courses/{id}/enroll", b.handleStudentEnroll)
	b.mux.HandleFunc("DELETE "+studentPrefix+"/courses/{id}/enroll", b.handleStudentCancel)
	b.mux.HandleFunc("GET "+studentPrefix+"/my-courses", b.handleStudentMyCourses)
	b.mux.HandleFunc("GET "+studentPrefix+"/surveys", b.handleStudentSurveys)
	b.mux.HandleFunc("GET "+studentPrefix+"/surveys/{id}", b.handleStudentSurvey)
	b.mux.HandleFunc("POST "+studentPrefix+"/surveys/{id}/responses", b.handleStudentSubmitSurvey)

	b.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "The requested URL was not found on this server.")
	})
}
