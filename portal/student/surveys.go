package student

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/afterschool-portal/apiclient"
	"github.com/jrsteele09/afterschool-portal/internal/utils"
	"github.com/jrsteele09/afterschool-portal/portal"
	"github.com/jrsteele09/afterschool-portal/portal/models"
	"github.com/rs/zerolog/log"
)

func surveyPath(surveyID int64, rest ...string) string {
	p := surveysPath + "/" + strconv.FormatInt(surveyID, 10)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

// Surveys lists the school-wide surveys and those of the student's courses.
func (c *Controller) Surveys(ctx context.Context) ([]models.StudentSurvey, error) {
	surveys, err := apiclient.Get[[]models.StudentSurvey](ctx, c.pc.Client, surveysPath)
	if err != nil {
		c.loadFailed(err, "surveys", MsgSurveyLoadFailed)
		return nil, err
	}
	return surveys, nil
}

// OpenSurvey loads the questions of s. A survey already answered is not
// opened again.
func (c *Controller) OpenSurvey(ctx context.Context, s models.StudentSurvey) (models.SurveyDetail, error) {
	if s.IsSubmitted {
		err := portal.Invalid(MsgSurveyDone)
		c.pc.Report(err, "")
		return models.SurveyDetail{}, err
	}
	detail, err := apiclient.Get[models.SurveyDetail](ctx, c.pc.Client, surveyPath(s.SurveyID))
	if err != nil {
		log.Err(err).Int64("surveyId", s.SurveyID).Msg("Failed to load survey detail")
		c.pc.Browser.Notify(MsgSurveyLoadFailed)
		return models.SurveyDetail{}, err
	}
	return detail, nil
}

// Options returns the choices of a choice question.
func Options(q models.Question) []string {
	return utils.SplitList(q.Options)
}

// Answers builds the submission for survey from answers keyed by question
// id. Every question needs a non blank answer.
func Answers(survey models.SurveyDetail, answers map[int64]string) (models.SurveySubmission, error) {
	sub := models.SurveySubmission{Responses: make([]models.SurveyAnswer, 0, len(survey.Questions))}
	for _, q := range survey.Questions {
		a := strings.TrimSpace(answers[q.QuestionID])
		if a == "" {
			return models.SurveySubmission{}, portal.Invalid(MsgAnswerAll)
		}
		sub.Responses = append(sub.Responses, models.SurveyAnswer{QuestionID: q.QuestionID, Content: a})
	}
	return sub, nil
}

// SubmitSurvey sends the student's answers.
func (c *Controller) SubmitSurvey(ctx context.Context, survey models.SurveyDetail, answers map[int64]string) error {
	sub, err := Answers(survey, answers)
	if err != nil {
		c.pc.Report(err, "")
		return err
	}
	if err := c.pc.Client.Send(ctx, http.MethodPost, surveyPath(survey.SurveyID, "responses"), sub); err != nil {
		log.Err(err).Int64("surveyId", survey.SurveyID).Msg("Failed to submit survey")
		c.pc.Report(err, MsgSurveySubmitFailed)
		return err
	}
	c.pc.Browser.Notify(MsgSurveySubmitted)
	return nil
}
