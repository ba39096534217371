package models

// StudentCourse is a course as listed to, or detailed for, a student.
// Older backends report enrolment as "enrolled", newer ones as "isEnrolled".
type StudentCourse struct {
	CourseID          int64  `json:"courseId"`
	CourseName        string `json:"courseName"`
	TeacherName       string `json:"teacherName"`
	Category          string `json:"category,omitempty"`
	Description       string `json:"description,omitempty"`
	CourseDays        string `json:"courseDays,omitempty"`
	CourseTime        string `json:"courseTime,omitempty"`
	Location          string `json:"location,omitempty"`
	CurrentEnrollment int64  `json:"currentEnrollment"`
	Capacity          int    `json:"capacity"`
	IsEnrolled        bool   `json:"isEnrolled"`
	Enrolled          bool   `json:"enrolled,omitempty"`
	CanEnroll         *bool  `json:"canEnroll,omitempty"`
}

type MyCourses struct {
	Courses               []MyCourse `json:"courses"`
	OverallAttendanceRate float64    `json:"overallAttendanceRate"`
}

type MyCourse struct {
	CourseID       int64   `json:"courseId"`
	CourseName     string  `json:"courseName"`
	TeacherName    string  `json:"teacherName"`
	Status         string  `json:"status"`
	AttendanceRate float64 `json:"attendanceRate"`
	PresentCount   int64   `json:"presentCount"`
	AbsentCount    int64   `json:"absentCount"`
	LateCount      int64   `json:"lateCount"`
}
