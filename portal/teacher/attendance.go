package teacher

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jrsteele09/afterschool-portal/apiclient"
	"github.com/jrsteele09/afterschool-portal/portal"
	"github.com/jrsteele09/afterschool-portal/portal/models"
	"github.com/rs/zerolog/log"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// DefaultClassDate is the date the attendance picker starts on.
func DefaultClassDate() string {
	return NowTimeFunc().Format("2006-01-02")
}

// Attendance returns one row per enrolled student for classDate. Students
// without a mark have status NONE.
func (c *Controller) Attendance(ctx context.Context, courseID int64, classDate string) ([]models.Attendance, error) {
	classDate = strings.TrimSpace(classDate)
	if classDate == "" {
		err := portal.Invalid(MsgDateRequired)
		c.pc.Report(err, "")
		return nil, err
	}

	path := coursePath(courseID, "attendance") + "?" + url.Values{"classDate": {classDate}}.Encode()
	rows, err := apiclient.Get[[]models.Attendance](ctx, c.pc.Client, path)
	if err != nil {
		log.Err(err).Int64("courseId", courseID).Str("classDate", classDate).Msg("Failed to load attendance")
		return nil, err
	}
	return rows, nil
}

// SaveAttendance stores the marks for classDate. Marks left at NONE are not
// sent, and at least one real mark is needed.
func (c *Controller) SaveAttendance(ctx context.Context, courseID int64, classDate string, marks []models.StudentAttendance) error {
	classDate = strings.TrimSpace(classDate)
	if classDate == "" {
		err := portal.Invalid(MsgDateRequired)
		c.pc.Report(err, "")
		return err
	}

	update := models.AttendanceUpdate{ClassDate: classDate}
	for _, m := range marks {
		if m.Status == "" || m.Status == models.AttendanceNone || m.EnrollmentID == 0 {
			continue
		}
		update.Students = append(update.Students, m)
	}
	if len(update.Students) == 0 {
		err := portal.Invalid(MsgAttendanceEmpty)
		c.pc.Report(err, "")
		return err
	}

	if err := c.pc.Client.Send(ctx, http.MethodPost, coursePath(courseID, "attendance"), update); err != nil {
		log.Err(err).Int64("courseId", courseID).Msg("Failed to save attendance")
		c.pc.Report(err, MsgAttendanceFailed)
		return err
	}
	c.pc.Browser.Notify(MsgAttendanceSaved)
	return nil
}
