package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/aulavivo/backend/core/course"
)

type (
	courseRow struct {
		ID        int       `db:"id"`
		Name      string    `db:"name"`
		CreatedAt null.Time `db:"created_at"`
	}

	lessonRow struct {
		ID           int       `db:"id"`
		CourseID     int       `db:"course_id"`
		Title        string    `db:"title"`
		Ord          int       `db:"ord"`
		DurationSecs null.Int  `db:"duration_secs"`
		CreatedAt    null.Time `db:"created_at"`
	}
)

func (row courseRow) toCourse() course.Course {
	return course.Course{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt.Time,
	}
}

func (row lessonRow) toLesson() course.Lesson {
	return course.Lesson{
		ID:           row.ID,
		CourseID:     row.CourseID,
		Title:        row.Title,
		Order:        row.Ord,
		DurationSecs: int(row.DurationSecs.Int),
		CreatedAt:    row.CreatedAt.Time,
	}
}

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to course.ErrNotFound
func (repo courseRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return course.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	createdAt := crs.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	err := repo.db.QueryRowxContext(ctx,
		`INSERT INTO course (name, created_at) VALUES ($1, $2) RETURNING id`,
		crs.Name, createdAt,
	).Scan(&crs.ID)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	crs.CreatedAt = createdAt
	return crs, nil
}

func (repo courseRepository) GetCourse(ctx context.Context, id int) (course.Course, error) {
	var row courseRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT id, name, created_at FROM course WHERE id = $1`, id)
	if err != nil {
		return course.Course{}, repo.trapNoRowsErr(err, "finding course")
	}
	return row.toCourse(), nil
}

func (repo courseRepository) CreateLesson(ctx context.Context, lsn course.Lesson) (course.Lesson, error) {
	createdAt := lsn.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	err := repo.db.QueryRowxContext(ctx,
		`INSERT INTO lesson (course_id, title, ord, duration_secs, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		lsn.CourseID, lsn.Title, lsn.Order, lsn.DurationSecs, createdAt,
	).Scan(&lsn.ID)
	if err != nil {
		return course.Lesson{}, errors.Wrap(err, "inserting lesson")
	}
	lsn.CreatedAt = createdAt
	return lsn, nil
}

func (repo courseRepository) GetLesson(ctx context.Context, id int) (course.Lesson, error) {
	var row lessonRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT id, course_id, title, ord, duration_secs, created_at FROM lesson WHERE id = $1`, id)
	if err != nil {
		return course.Lesson{}, repo.trapNoRowsErr(err, "finding lesson")
	}
	return row.toLesson(), nil
}

func (repo courseRepository) QueryCourseLessons(ctx context.Context, courseID int) ([]course.Lesson, error) {
	var rows []lessonRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT id, course_id, title, ord, duration_secs, created_at FROM lesson WHERE course_id = $1`,
		courseID)
	if err != nil {
		return nil, errors.Wrap(err, "querying lessons")
	}

	lessons := make([]course.Lesson, 0, len(rows))
	for _, row := range rows {
		lessons = append(lessons, row.toLesson())
	}
	return lessons, nil
}
