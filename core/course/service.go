package course

import (
	"context"
	"time"

	"github.com/aulavivo/backend/core"
)

type (
	Repository interface {
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		GetCourse(ctx context.Context, id int) (Course, error)
		CreateLesson(ctx context.Context, lsn Lesson) (Lesson, error)
		GetLesson(ctx context.Context, id int) (Lesson, error)
		// QueryCourseLessons returns a course's lessons in no particular order.
		QueryCourseLessons(ctx context.Context, courseID int) ([]Lesson, error)
	}

	ServiceInterface interface {
		CreateCourse(ctx context.Context, nc NewCourse) (Course, error)
		CreateLesson(ctx context.Context, nl NewLesson) (Lesson, error)
		Get(ctx context.Context, id int) (Course, error)
		GetLesson(ctx context.Context, id int) (Lesson, error)
		Lessons(ctx context.Context, courseID int) ([]Lesson, error)
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CreateCourse(ctx context.Context, nc NewCourse) (Course, error) {
	crs := Course{
		Name:      core.CleanString(nc.Name),
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateCourse(ctx, crs)
}

func (svc *Service) CreateLesson(ctx context.Context, nl NewLesson) (Lesson, error) {
	lsn := Lesson{
		CourseID:     nl.CourseID,
		Title:        core.CleanString(nl.Title),
		Order:        nl.Order,
		DurationSecs: nl.DurationSecs,
		CreatedAt:    time.Now().UTC(),
	}
	return svc.repo.CreateLesson(ctx, lsn)
}

func (svc *Service) Get(ctx context.Context, id int) (Course, error) {
	return svc.repo.GetCourse(ctx, id)
}

func (svc *Service) GetLesson(ctx context.Context, id int) (Lesson, error) {
	return svc.repo.GetLesson(ctx, id)
}

// Lessons returns the course's lessons in canonical order. The ordering is
// recomputed on every call; nothing is cached.
func (svc *Service) Lessons(ctx context.Context, courseID int) ([]Lesson, error) {
	lessons, err := svc.repo.QueryCourseLessons(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return SortLessons(lessons), nil
}
