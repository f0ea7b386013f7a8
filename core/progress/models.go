package progress

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound         = errors.New("progress record not found")
	ErrActivityNotFound = errors.New("activity not found")
)

// Record is the per-(user, lesson) ledger row. It is created lazily on
// first access, Percent only ever grows and Locked only ever transitions
// from true to false.
type Record struct {
	ID        int       `json:"-"`
	UserID    int       `json:"userId"`
	LessonID  int       `json:"lessonId"`
	Percent   int       `json:"percentComplete"`
	Completed bool      `json:"isCompleted"`
	Locked    bool      `json:"isLocked"`
	New       bool      `json:"isNew"`
	UpdatedAt time.Time `json:"updatedAt"` // UTC
}

// Activity is an optional gating task attached to a lesson. Every activity
// of a lesson must be completed, on top of 100% playback, before the next
// lesson can unlock.
type Activity struct {
	ID       int    `json:"id"`
	LessonID int    `json:"lessonId"`
	Name     string `json:"name"`
}

// ProgressUpdate is a playback-progress event as reported by the player.
type ProgressUpdate struct {
	UserID   int  `json:"userId" validate:"required"`
	LessonID int  `json:"lessonId" validate:"required"`
	Percent  *int `json:"percent" validate:"required,min=0,max=100"`
}

func (pu *ProgressUpdate) Validate(validate *validator.Validate) error {
	return validate.Struct(pu)
}

// ActivityCompletion marks a gating activity done for a user.
type ActivityCompletion struct {
	UserID     int `json:"userId" validate:"required"`
	ActivityID int `json:"activityId" validate:"required"`
}

func (ac *ActivityCompletion) Validate(validate *validator.Validate) error {
	return validate.Struct(ac)
}

// NewActivity contains information needed to attach an Activity to a lesson.
type NewActivity struct {
	LessonID int    `json:"lessonId" validate:"required"`
	Name     string `json:"name" validate:"required"`
}
