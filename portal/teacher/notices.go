package teacher

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/afterschool-portal/apiclient"
	"github.com/jrsteele09/afterschool-portal/portal"
	"github.com/jrsteele09/afterschool-portal/portal/models"
	"github.com/rs/zerolog/log"
)

func noticeInput(title, content string) (models.NoticeInput, error) {
	in := models.NoticeInput{Title: strings.TrimSpace(title), Content: strings.TrimSpace(content)}
	if in.Title == "" || in.Content == "" {
		return in, portal.Invalid(MsgNoticeRequired)
	}
	return in, nil
}

func (c *Controller) Notices(ctx context.Context, courseID int64) ([]models.Notice, error) {
	notices, err := apiclient.Get[[]models.Notice](ctx, c.pc.Client, coursePath(courseID, "notices"))
	if err != nil {
		log.Err(err).Int64("courseId", courseID).Msg("Failed to load notices")
		return nil, err
	}
	return notices, nil
}

func (c *Controller) CreateNotice(ctx context.Context, courseID int64, title, content string) (models.Notice, error) {
	in, err := noticeInput(title, content)
	if err != nil {
		c.pc.Report(err, "")
		return models.Notice{}, err
	}
	n, err := apiclient.Call[models.Notice](ctx, c.pc.Client, http.MethodPost, coursePath(courseID, "notices"), in)
	if err != nil {
		log.Err(err).Int64("courseId", courseID).Msg("Failed to create notice")
		c.pc.Report(err, MsgNoticeCreateFail)
		return models.Notice{}, err
	}
	c.pc.Browser.Notify(MsgNoticeCreated)
	return n, nil
}

func (c *Controller) UpdateNotice(ctx context.Context, courseID, noticeID int64, title, content string) (models.Notice, error) {
	in, err := noticeInput(title, content)
	if err != nil {
		c.pc.Report(err, "")
		return models.Notice{}, err
	}
	path := coursePath(courseID, "notices", strconv.FormatInt(noticeID, 10))
	n, err := apiclient.Call[models.Notice](ctx, c.pc.Client, http.MethodPut, path, in)
	if err != nil {
		log.Err(err).Int64("noticeId", noticeID).Msg("Failed to update notice")
		c.pc.Report(err, MsgNoticeUpdateFail)
		return models.Notice{}, err
	}
	c.pc.Browser.Notify(MsgNoticeUpdated)
	return n, nil
}

// DeleteNotice removes a notice after confirmation and reports whether it
// was removed.
func (c *Controller) DeleteNotice(ctx context.Context, courseID, noticeID int64) (bool, error) {
	if !c.pc.Browser.Confirm(MsgNoticeDeleteAsk) {
		return false, nil
	}
	path := coursePath(courseID, "notices", strconv.FormatInt(noticeID, 10))
	if err := c.pc.Client.Send(ctx, http.MethodDelete, path, nil); err != nil {
		log.Err(err).Int64("noticeId", noticeID).Msg("Failed to delete notice")
		c.pc.Report(err, MsgNoticeDeleteFail)
		return false, err
	}
	c.pc.Browser.Notify(MsgNoticeDeleted)
	return true, nil
}
