package progress

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	pkgerrors "github.com/pkg/errors"

	"github.com/aulavivo/backend/core"
	"github.com/aulavivo/backend/core/course"
)

var errInvalidPercent = errors.New("percent must be between 0 and 100")

type (
	// Repository is the durable ledger. All mutations are single atomic
	// statements: GetOrCreateRecord is an upsert, UpdateRecordProgress
	// applies a monotonic max in-place and UnlockRecord is a conditional
	// update. No read-modify-write pairs.
	Repository interface {
		// GetOrCreateRecord returns the (userID, lessonID) record, creating
		// it with the given lock state and zero progress when absent. Safe
		// under concurrent first access.
		GetOrCreateRecord(ctx context.Context, userID, lessonID int, locked bool) (Record, error)
		// UpdateRecordProgress raises percent to max(stored, percent),
		// recomputes the completion flag from the raised percent and
		// gatingDone, and clears the "new" flag.
		UpdateRecordProgress(ctx context.Context, userID, lessonID, percent int, gatingDone bool) (Record, error)
		// UnlockRecord flips locked to false and marks the record new, only
		// if it is currently locked. Reports whether a transition happened;
		// false means it was already unlocked, which is not an error.
		UnlockRecord(ctx context.Context, userID, lessonID int) (bool, error)
		// QueryUserRecords returns the user's records for the given lessons;
		// lessons without a record yet are simply absent from the result.
		QueryUserRecords(ctx context.Context, userID int, lessonIDs []int) ([]Record, error)

		CreateActivity(ctx context.Context, act Activity) (Activity, error)
		GetActivity(ctx context.Context, activityID int) (Activity, error)
		QueryLessonActivities(ctx context.Context, lessonID int) ([]Activity, error)
		// CompleteActivity records the per-user completion flag; completing
		// twice is a no-op.
		CompleteActivity(ctx context.Context, userID, activityID int) error
		QueryCompletedActivityIDs(ctx context.Context, userID, lessonID int) ([]int, error)
	}

	ServiceInterface interface {
		Enroll(ctx context.Context, userID, courseID int) (CourseProgressView, error)
		UpdateProgress(ctx context.Context, userID, lessonID, percent int) (Record, error)
		CompleteActivity(ctx context.Context, userID, activityID int) error
		UnlockNext(ctx context.Context, userID, lessonID int) (Decision, error)
		CourseView(ctx context.Context, userID, courseID int) (CourseProgressView, error)
		CreateActivity(ctx context.Context, na NewActivity) (Activity, error)
	}

	Service struct {
		repo      Repository
		courseSvc course.ServiceInterface
		mailSvc   core.EmailService
		directory core.Directory
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, courseSvc course.ServiceInterface, mailSvc core.EmailService, directory core.Directory) *Service {
	return &Service{
		repo:      repo,
		courseSvc: courseSvc,
		mailSvc:   mailSvc,
		directory: directory,
	}
}

// Enroll lazily creates the user's ledger rows for every lesson of the
// course. Only the canonical-first lesson starts unlocked; re-enrolling is
// harmless since creation is an upsert.
func (svc *Service) Enroll(ctx context.Context, userID, courseID int) (CourseProgressView, error) {
	lessons, err := svc.courseSvc.Lessons(ctx, courseID)
	if err != nil {
		return CourseProgressView{}, err
	}
	for i, lsn := range lessons {
		if _, err = svc.repo.GetOrCreateRecord(ctx, userID, lsn.ID, i > 0); err != nil {
			return CourseProgressView{}, pkgerrors.Wrap(err, "creating progress record")
		}
	}
	return svc.CourseView(ctx, userID, courseID)
}

// UpdateProgress applies a playback-progress event: the stored percent only
// ever grows, completion is recomputed and the unlock rule is re-evaluated.
// Re-sending the same percent is harmless.
func (svc *Service) UpdateProgress(ctx context.Context, userID, lessonID, percent int) (Record, error) {
	if percent < 0 || percent > 100 {
		return Record{}, core.NewValidationError(errInvalidPercent, core.FieldError{
			Field: "percent", Error: errInvalidPercent.Error(),
		})
	}

	lessons, firstID, err := svc.lessonSet(ctx, lessonID)
	if err != nil {
		return Record{}, err
	}

	if _, err = svc.repo.GetOrCreateRecord(ctx, userID, lessonID, lessonID != firstID); err != nil {
		return Record{}, pkgerrors.Wrap(err, "creating progress record")
	}

	gating, err := svc.gatingDone(ctx, userID, lessonID)
	if err != nil {
		return Record{}, err
	}

	rec, err := svc.repo.UpdateRecordProgress(ctx, userID, lessonID, percent, gating)
	if err != nil {
		return Record{}, pkgerrors.Wrap(err, "updating progress record")
	}

	if _, err = svc.evaluate(ctx, userID, lessons, lessonID, rec, gating); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// CompleteActivity flips the per-user activity flag (idempotently),
// refreshes the lesson's completion state and re-evaluates the unlock rule.
func (svc *Service) CompleteActivity(ctx context.Context, userID, activityID int) error {
	act, err := svc.repo.GetActivity(ctx, activityID)
	if err != nil {
		return err
	}
	if err = svc.repo.CompleteActivity(ctx, userID, activityID); err != nil {
		return pkgerrors.Wrap(err, "completing activity")
	}

	lessons, firstID, err := svc.lessonSet(ctx, act.LessonID)
	if err != nil {
		return err
	}
	if _, err = svc.repo.GetOrCreateRecord(ctx, userID, act.LessonID, act.LessonID != firstID); err != nil {
		return pkgerrors.Wrap(err, "creating progress record")
	}

	gating, err := svc.gatingDone(ctx, userID, act.LessonID)
	if err != nil {
		return err
	}

	// refresh the completion flag; percent 0 leaves the stored value alone
	rec, err := svc.repo.UpdateRecordProgress(ctx, userID, act.LessonID, 0, gating)
	if err != nil {
		return pkgerrors.Wrap(err, "refreshing progress record")
	}

	_, err = svc.evaluate(ctx, userID, lessons, act.LessonID, rec, gating)
	return err
}

// UnlockNext re-evaluates the unlock rule for the lesson's successor and
// performs the transition when it fires. Decision.Unlock is false both when
// the rule does not fire and when a concurrent caller won the transition.
func (svc *Service) UnlockNext(ctx context.Context, userID, lessonID int) (Decision, error) {
	lessons, firstID, err := svc.lessonSet(ctx, lessonID)
	if err != nil {
		return Decision{}, err
	}
	rec, err := svc.repo.GetOrCreateRecord(ctx, userID, lessonID, lessonID != firstID)
	if err != nil {
		return Decision{}, pkgerrors.Wrap(err, "creating progress record")
	}
	gating, err := svc.gatingDone(ctx, userID, lessonID)
	if err != nil {
		return Decision{}, err
	}
	return svc.evaluate(ctx, userID, lessons, lessonID, rec, gating)
}

// CourseView assembles the authoritative course snapshot: lessons in
// canonical order joined with the user's records. Lessons without a record
// yet are rendered with a default row; rendering never writes.
func (svc *Service) CourseView(ctx context.Context, userID, courseID int) (CourseProgressView, error) {
	crs, err := svc.courseSvc.Get(ctx, courseID)
	if err != nil {
		return CourseProgressView{}, err
	}
	lessons, err := svc.courseSvc.Lessons(ctx, courseID)
	if err != nil {
		return CourseProgressView{}, err
	}

	ids := make([]int, 0, len(lessons))
	for _, lsn := range lessons {
		ids = append(ids, lsn.ID)
	}
	recs, err := svc.repo.QueryUserRecords(ctx, userID, ids)
	if err != nil {
		return CourseProgressView{}, pkgerrors.Wrap(err, "querying progress records")
	}
	byLesson := make(map[int]Record, len(recs))
	for _, rec := range recs {
		byLesson[rec.LessonID] = rec
	}

	view := CourseProgressView{Course: crs, UserID: userID, Lessons: make([]LessonProgress, 0, len(lessons))}
	for i, lsn := range lessons {
		rec, ok := byLesson[lsn.ID]
		if !ok {
			rec = Record{UserID: userID, LessonID: lsn.ID, Locked: i > 0}
		}
		view.Lessons = append(view.Lessons, LessonProgress{Lesson: lsn, Record: rec})
	}
	return view, nil
}

func (svc *Service) CreateActivity(ctx context.Context, na NewActivity) (Activity, error) {
	if _, err := svc.courseSvc.GetLesson(ctx, na.LessonID); err != nil {
		return Activity{}, err
	}
	return svc.repo.CreateActivity(ctx, Activity{LessonID: na.LessonID, Name: core.CleanString(na.Name)})
}

// lessonSet resolves the canonical lesson ordering of the course the lesson
// belongs to, along with the canonical-first lesson ID.
func (svc *Service) lessonSet(ctx context.Context, lessonID int) ([]course.Lesson, int, error) {
	lsn, err := svc.courseSvc.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, 0, err
	}
	lessons, err := svc.courseSvc.Lessons(ctx, lsn.CourseID)
	if err != nil {
		return nil, 0, err
	}
	if len(lessons) == 0 {
		return nil, 0, course.ErrNotFound
	}
	return lessons, lessons[0].ID, nil
}

// gatingDone reports whether every activity of the lesson is completed for
// the user. A lesson without activities gates nothing.
func (svc *Service) gatingDone(ctx context.Context, userID, lessonID int) (bool, error) {
	acts, err := svc.repo.QueryLessonActivities(ctx, lessonID)
	if err != nil {
		return false, pkgerrors.Wrap(err, "querying lesson activities")
	}
	if len(acts) == 0 {
		return true, nil
	}
	doneIDs, err := svc.repo.QueryCompletedActivityIDs(ctx, userID, lessonID)
	if err != nil {
		return false, pkgerrors.Wrap(err, "querying completed activities")
	}
	done := make(map[int]bool, len(doneIDs))
	for _, id := range doneIDs {
		done[id] = true
	}
	for _, act := range acts {
		if !done[act.ID] {
			return false, nil
		}
	}
	return true, nil
}

// evaluate runs the unlock rule and, when it fires, performs the at-most-once
// transition through the conditional update. Losing the race to a concurrent
// caller downgrades the decision to "already unlocked".
func (svc *Service) evaluate(ctx context.Context, userID int, lessons []course.Lesson, lessonID int, rec Record, gating bool) (Decision, error) {
	next, hasNext := course.NextLesson(lessons, lessonID)

	nextLocked := true
	if hasNext {
		nextRec, err := svc.repo.GetOrCreateRecord(ctx, userID, next.ID, true)
		if err != nil {
			return Decision{}, pkgerrors.Wrap(err, "creating next progress record")
		}
		nextLocked = nextRec.Locked
	}

	dec := DecideUnlock(rec, gating, next.ID, nextLocked, hasNext)
	if !dec.Unlock {
		return dec, nil
	}

	transitioned, err := svc.repo.UnlockRecord(ctx, userID, next.ID)
	if err != nil {
		return Decision{}, pkgerrors.Wrap(err, "unlocking progress record")
	}
	dec.Unlock = transitioned
	if transitioned {
		svc.notifyUnlocked(ctx, userID, next)
	}
	return dec, nil
}

// notifyUnlocked tells the student a new lesson opened up. Best effort: no
// address, no mail; sending failures are the email service's problem.
func (svc *Service) notifyUnlocked(ctx context.Context, userID int, lsn course.Lesson) {
	if svc.mailSvc == nil || svc.directory == nil {
		return
	}
	addr, ok := svc.directory.UserAddress(ctx, userID)
	if !ok {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{addr},
		Subject:      fmt.Sprintf("New lesson unlocked: %s", lsn.Title),
		TemplateName: "lesson-unlocked",
		TemplateData: struct {
			Title    string
			LessonID int
			CourseID int
		}{Title: lsn.Title, LessonID: lsn.ID, CourseID: lsn.CourseID},
	})
}
