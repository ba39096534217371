package models

// Question types.
const (
	QuestionText           = "TEXT"
	QuestionSingleChoice   = "SINGLE_CHOICE"
	QuestionMultipleChoice = "MULTIPLE_CHOICE"
)

type SurveySummary struct {
	SurveyID  int64  `json:"surveyId"`
	Title     string `json:"title"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// SurveyInput creates a course survey or a school-wide survey.
type SurveyInput struct {
	Title     string          `json:"title"`
	StartDate string          `json:"startDate,omitempty"`
	EndDate   string          `json:"endDate,omitempty"`
	Questions []QuestionInput `json:"questions"`
}

type QuestionInput struct {
	QuestionText string `json:"questionText"`
	QuestionType string `json:"questionType"`
	// Options is a comma separated list, nil for free text questions.
	Options *string `json:"options"`
}

// StudentSurvey is a survey as listed to a student. CourseID is nil for
// school-wide surveys.
type StudentSurvey struct {
	SurveyID    int64   `json:"surveyId"`
	Title       string  `json:"title"`
	StartDate   string  `json:"startDate,omitempty"`
	EndDate     string  `json:"endDate,omitempty"`
	IsSubmitted bool    `json:"isSubmitted"`
	CourseID    *int64  `json:"courseId,omitempty"`
	CourseName  *string `json:"courseName,omitempty"`
}

type SurveyDetail struct {
	SurveyID  int64      `json:"surveyId"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

type Question struct {
	QuestionID   int64  `json:"questionId"`
	QuestionText string `json:"questionText"`
	QuestionType string `json:"questionType"`
	Options      string `json:"options,omitempty"`
}

type SurveySubmission struct {
	Responses []SurveyAnswer `json:"responses"`
}

type SurveyAnswer struct {
	QuestionID int64  `json:"questionId"`
	Content    string `json:"content"`
}
