package models

// Course statuses.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Course is the full course record a teacher sees.
type Course struct {
	CourseID               int64      `json:"courseId"`
	CourseName             string     `json:"courseName"`
	Category               string     `json:"category,omitempty"`
	Status                 string     `json:"status"`
	CourseDays             string     `json:"courseDays,omitempty"`
	CourseTime             string     `json:"courseTime,omitempty"`
	Location               string     `json:"location,omitempty"`
	Capacity               int        `json:"capacity"`
	CurrentEnrollmentCount int64      `json:"currentEnrollmentCount"`
	CreatedAt              *Timestamp `json:"createdAt,omitempty"`
	Description            string     `json:"description,omitempty"`
	Quarter                *int       `json:"quarter,omitempty"`
	QuarterLabel           string     `json:"quarterLabel,omitempty"`
	EndDate                string     `json:"endDate,omitempty"`
	Ended                  bool       `json:"ended"`
	EndedAt                *Timestamp `json:"endedAt,omitempty"`
	TeacherName            string     `json:"teacherName,omitempty"`
	TeacherEmail           string     `json:"teacherEmail,omitempty"`
}

// CourseInput creates or updates a course.
type CourseInput struct {
	CourseName  string `json:"courseName"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	CourseDays  string `json:"courseDays"`
	CourseTime  string `json:"courseTime"`
	Location    string `json:"location,omitempty"`
	Capacity    int    `json:"capacity"`
}

type EnrolledStudent struct {
	StudentIDNo string `json:"studentIdNo"`
	Name        string `json:"name"`
}

// Attendance statuses. AttendanceNone marks a student with no record yet.
const (
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
	AttendanceLate    = "LATE"
	AttendanceNone    = "NONE"
)

type Attendance struct {
	AttendanceID *int64 `json:"attendanceId"`
	ClassDate    string `json:"classDate"`
	Status       string `json:"status"`
	EnrollmentID int64  `json:"enrollmentId"`
	StudentID    int64  `json:"studentId"`
	StudentName  string `json:"studentName"`
}

type AttendanceUpdate struct {
	ClassDate string              `json:"classDate"`
	Students  []StudentAttendance `json:"students"`
}

type StudentAttendance struct {
	EnrollmentID int64  `json:"enrollmentId"`
	Status       string `json:"status"`
}

type Notice struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	AuthorName string     `json:"authorName"`
	CreatedAt  *Timestamp `json:"createdAt,omitempty"`
}

type NoticeInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
