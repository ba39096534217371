package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/afterschool-portal/apiclient"
	"github.com/jrsteele09/afterschool-portal/portal"
	"github.com/jrsteele09/afterschool-portal/portal/models"
	"github.com/rs/zerolog/log"
)

// SurveyForm is the school-wide survey editor. Period reads
// "2025-10-01 ~ 2025-10-20".
type SurveyForm struct {
	Title     string
	Period    string
	Questions []models.QuestionInput
}

// Input validates the form and converts it to the request body.
func (f SurveyForm) Input() (models.SurveyInput, error) {
	title := strings.TrimSpace(f.Title)
	period := strings.TrimSpace(f.Period)
	if title == "" || period == "" {
		return models.SurveyInput{}, portal.Invalid(MsgSurveyRequired)
	}
	if len(f.Questions) == 0 {
		return models.SurveyInput{}, portal.Invalid(MsgQuestionsRequired)
	}
	dates := strings.Split(period, "~")
	if len(dates) != 2 {
		return models.SurveyInput{}, portal.Invalid(MsgPeriodFormat)
	}

	questions := make([]models.QuestionInput, 0, len(f.Questions))
	for _, q := range f.Questions {
		if q.QuestionType == models.QuestionText {
			q.Options = nil
		}
		questions = append(questions, q)
	}
	return models.SurveyInput{
		Title:     title,
		StartDate: strings.TrimSpace(dates[0]),
		EndDate:   strings.TrimSpace(dates[1]),
		Questions: questions,
	}, nil
}

// CreateSurvey publishes a survey to every student.
func (c *Controller) CreateSurvey(ctx context.Context, form SurveyForm) error {
	input, err := form.Input()
	if err != nil {
		c.pc.Report(err, MsgSurveyFailed)
		return err
	}
	if err := c.pc.Client.Send(ctx, http.MethodPost, surveysPath, input); err != nil {
		log.Err(err).Msg("Failed to create survey")
		c.pc.Report(err, MsgSurveyFailed)
		return err
	}
	c.pc.Browser.Notify(MsgSurveyCreated)
	return nil
}

// CreateNotice posts a school-wide notice.
func (c *Controller) CreateNotice(ctx context.Context, title, content string) (models.Notice, error) {
	in := models.NoticeInput{Title: strings.TrimSpace(title), Content: strings.TrimSpace(content)}
	if in.Title == "" || in.Content == "" {
		err := portal.Invalid(MsgNoticeRequired)
		c.pc.Report(err, MsgNoticeFailed)
		return models.Notice{}, err
	}

	notice, err := apiclient.Call[models.Notice](ctx, c.pc.Client, http.MethodPost, noticesPath, in)
	if err != nil {
		log.Err(err).Msg("Failed to create notice")
		c.pc.Report(err, MsgNoticeFailed)
		return models.Notice{}, err
	}
	c.pc.Browser.Notify(MsgNoticeCreated)
	return notice, nil
}
