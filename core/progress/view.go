package progress

import (
	"github.com/aulavivo/backend/core/course"
)

type (
	// LessonProgress is a lesson joined with a user's ledger row for it.
	LessonProgress struct {
		Lesson course.Lesson `json:"lesson"`
		Record Record        `json:"progress"`
	}

	// CourseProgressView is the authoritative snapshot of a user's position
	// in a course: every lesson in canonical order together with its record.
	// It is a plain value recomputed on demand; clients replace their copy
	// wholesale instead of merging fields.
	CourseProgressView struct {
		Course  course.Course    `json:"course"`
		UserID  int              `json:"userId"`
		Lessons []LessonProgress `json:"lessons"`
	}
)

// Resume returns the lesson the student should continue with: the first
// unlocked, un-completed lesson, falling back to the last unlocked one.
func (v CourseProgressView) Resume() (LessonProgress, bool) {
	var last LessonProgress
	var found bool
	for _, lp := range v.Lessons {
		if lp.Record.Locked {
			continue
		}
		if !lp.Record.Completed {
			return lp, true
		}
		last, found = lp, true
	}
	return last, found
}

// UnlockedCount reports how many lessons are currently playable.
func (v CourseProgressView) UnlockedCount() int {
	var n int
	for _, lp := range v.Lessons {
		if !lp.Record.Locked {
			n++
		}
	}
	return n
}
