package teacher

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/afterschool-portal/apiclient"
	"github.com/jrsteele09/afterschool-portal/portal"
	"github.com/jrsteele09/afterschool-portal/portal/models"
	"github.com/rs/zerolog/log"
)

func (c *Controller) Surveys(ctx context.Context, courseID int64) ([]models.SurveySummary, error) {
	surveys, err := apiclient.Get[[]models.SurveySummary](ctx, c.pc.Client, coursePath(courseID, "surveys"))
	if err != nil {
		log.Err(err).Int64("courseId", courseID).Msg("Failed to load surveys")
		return nil, err
	}
	return surveys, nil
}

// CreateSurvey adds a survey for the students of a course. Free text
// questions are sent without options.
func (c *Controller) CreateSurvey(ctx context.Context, courseID int64, in models.SurveyInput) (models.SurveySummary, error) {
	in.Title = strings.TrimSpace(in.Title)
	var err error
	switch {
	case in.Title == "":
		err = portal.Invalid(MsgSurveyTitle)
	case len(in.Questions) == 0:
		err = portal.Invalid(MsgQuestionsRequired)
	}
	if err != nil {
		c.pc.Report(err, "")
		return models.SurveySummary{}, err
	}

	questions := make([]models.QuestionInput, 0, len(in.Questions))
	for _, q := range in.Questions {
		if q.QuestionType == models.QuestionText {
			q.Options = nil
		}
		questions = append(questions, q)
	}
	in.Questions = questions

	s, err := apiclient.Call[models.SurveySummary](ctx, c.pc.Client, http.MethodPost, coursePath(courseID, "surveys"), in)
	if err != nil {
		log.Err(err).Int64("courseId", courseID).Msg("Failed to create survey")
		c.pc.Report(err, MsgSurveyFailed)
		return models.SurveySummary{}, err
	}
	c.pc.Browser.Notify(MsgSurveyCreated)
	return s, nil
}
