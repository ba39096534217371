package models

type User struct {
	UserID      int64   `json:"userId"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	StudentIDNo *string `json:"studentIdNo,omitempty"`
}

type RoleUpdate struct {
	Role string `json:"role"`
}

type StatusUpdate struct {
	Status string `json:"status"`
}

// AdminCourse is a row of the admin course table.
type AdminCourse struct {
	CourseID               int64      `json:"courseId"`
	CourseName             string     `json:"courseName"`
	TeacherName            string     `json:"teacherName"`
	Status                 string     `json:"status"`
	Capacity               int        `json:"capacity"`
	CurrentEnrollmentCount int64      `json:"currentEnrollmentCount"`
	Quarter                *int       `json:"quarter,omitempty"`
	QuarterLabel           string     `json:"quarterLabel,omitempty"`
	EndDate                string     `json:"endDate,omitempty"`
	Ended                  bool       `json:"ended"`
	EndedAt                *Timestamp `json:"endedAt,omitempty"`
}
