package student

import (
	"context"

	"github.com/jrsteele09/afterschool-portal/portal/models"
	"golang.org/x/sync/errgroup"
)

const popularCount = 6

// Dashboard is everything the student landing view shows.
type Dashboard struct {
	Courses   []Course
	Popular   []Course
	MyCourses models.MyCourses
	Surveys   []models.StudentSurvey
}

// Dashboard loads the course list, the enrolments and the surveys
// concurrently. The first failure cancels the other loads; only the failed
// load notifies the user.
func (c *Controller) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		courses, err := c.Courses(gctx, CourseQuery{})
		d.Courses = courses
		return err
	})
	g.Go(func() error {
		mine, err := c.MyCourses(gctx)
		d.MyCourses = mine
		return err
	})
	g.Go(func() error {
		surveys, err := c.Surveys(gctx)
		d.Surveys = surveys
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	d.Popular = Popular(d.Courses, popularCount)
	return d, nil
}
