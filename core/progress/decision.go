package progress

// Decision is the outcome of evaluating the unlock rule after a
// progress-affecting event. The zero value means "nothing to do", which is
// the expected steady-state outcome, not an error.
type Decision struct {
	Unlock       bool `json:"unlocked"`
	NextLessonID int  `json:"nextLessonId,omitempty"`
}

// DecideUnlock is the unlock rule. It is pure and cheap: callers re-evaluate
// it after every progress update or activity completion that could satisfy it.
//
// current is the just-updated lesson's record, gatingDone reports whether all
// of that lesson's activities are completed (vacuously true when it has
// none), and nextLocked is the lock state of the following lesson in
// canonical order (a record that does not exist yet counts as locked).
// hasNext is false at the end of the course.
func DecideUnlock(current Record, gatingDone bool, nextLessonID int, nextLocked, hasNext bool) Decision {
	if !hasNext {
		return Decision{}
	}
	if current.Percent < 100 {
		return Decision{}
	}
	if !gatingDone {
		return Decision{}
	}
	if !nextLocked {
		return Decision{} // already unlocked, nothing to do
	}
	return Decision{Unlock: true, NextLessonID: nextLessonID}
}
