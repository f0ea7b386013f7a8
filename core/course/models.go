package course

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("course not found")

type Course struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"` // UTC
}

// Lesson is an immutable-per-course catalog entry. Title encodes the
// session/class numbering used for canonical ordering; Order is only a
// stored hint and may be stale.
type Lesson struct {
	ID           int       `json:"id"`
	CourseID     int       `json:"courseId"`
	Title        string    `json:"title"`
	Order        int       `json:"order"`
	DurationSecs int       `json:"durationSecs"`
	CreatedAt    time.Time `json:"createdAt"` // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name string `json:"name" validate:"required"`
}

// NewLesson contains information needed to create a new Lesson.
type NewLesson struct {
	CourseID     int    `json:"courseId" validate:"required"`
	Title        string `json:"title" validate:"required"`
	Order        int    `json:"order"`
	DurationSecs int    `json:"durationSecs"`
}
