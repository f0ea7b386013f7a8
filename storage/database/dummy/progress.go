package dummydb

import (
	"context"
	"time"

	"github.com/aulavivo/backend/core/progress"
)

type progressRepository struct {
	records     *recordTable
	activities  *activityTable
	completions *completionTable
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *DB) progress.Repository {
	return &progressRepository{
		records:     db.record,
		activities:  db.activity,
		completions: db.completion,
	}
}

func (repo *progressRepository) GetOrCreateRecord(_ context.Context, userID, lessonID int, locked bool) (progress.Record, error) {
	repo.records.Lock()
	defer repo.records.Unlock()

	key := recordKey{userID: userID, lessonID: lessonID}
	if rec, ok := repo.records.table[key]; ok {
		return *rec, nil
	}

	repo.records.seq++
	rec := &progress.Record{
		ID:        repo.records.seq,
		UserID:    userID,
		LessonID:  lessonID,
		Locked:    locked,
		UpdatedAt: time.Now().UTC(),
	}
	repo.records.table[key] = rec
	return *rec, nil
}

func (repo *progressRepository) UpdateRecordProgress(_ context.Context, userID, lessonID, percent int, gatingDone bool) (progress.Record, error) {
	repo.records.Lock()
	defer repo.records.Unlock()

	rec, ok := repo.records.table[recordKey{userID: userID, lessonID: lessonID}]
	if !ok {
		return progress.Record{}, progress.ErrNotFound
	}

	if percent > rec.Percent {
		rec.Percent = percent
	}
	rec.Completed = rec.Percent == 100 && gatingDone
	rec.New = false
	rec.UpdatedAt = time.Now().UTC()
	return *rec, nil
}

func (repo *progressRepository) UnlockRecord(_ context.Context, userID, lessonID int) (bool, error) {
	repo.records.Lock()
	defer repo.records.Unlock()

	rec, ok := repo.records.table[recordKey{userID: userID, lessonID: lessonID}]
	if !ok || !rec.Locked {
		return false, nil
	}
	rec.Locked = false
	rec.New = true
	rec.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (repo *progressRepository) QueryUserRecords(_ context.Context, userID int, lessonIDs []int) ([]progress.Record, error) {
	repo.records.RLock()
	defer repo.records.RUnlock()

	recs := make([]progress.Record, 0, len(lessonIDs))
	for _, id := range lessonIDs {
		if rec, ok := repo.records.table[recordKey{userID: userID, lessonID: id}]; ok {
			recs = append(recs, *rec)
		}
	}
	return recs, nil
}

func (repo *progressRepository) CreateActivity(_ context.Context, act progress.Activity) (progress.Activity, error) {
	repo.activities.Lock()
	defer repo.activities.Unlock()

	repo.activities.seq++
	act.ID = repo.activities.seq
	repo.activities.table[act.ID] = &act
	return act, nil
}

func (repo *progressRepository) GetActivity(_ context.Context, activityID int) (progress.Activity, error) {
	repo.activities.RLock()
	defer repo.activities.RUnlock()

	if act, ok := repo.activities.table[activityID]; ok {
		return *act, nil
	}
	return progress.Activity{}, progress.ErrActivityNotFound
}

func (repo *progressRepository) QueryLessonActivities(_ context.Context, lessonID int) ([]progress.Activity, error) {
	repo.activities.RLock()
	defer repo.activities.RUnlock()

	acts := make([]progress.Activity, 0)
	for _, act := range repo.activities.table {
		if act.LessonID == lessonID {
			acts = append(acts, *act)
		}
	}
	return acts, nil
}

func (repo *progressRepository) CompleteActivity(_ context.Context, userID, activityID int) error {
	repo.activities.RLock()
	_, ok := repo.activities.table[activityID]
	repo.activities.RUnlock()
	if !ok {
		return progress.ErrActivityNotFound
	}

	repo.completions.Lock()
	defer repo.completions.Unlock()
	repo.completions.table[completionKey{userID: userID, activityID: activityID}] = true
	return nil
}

func (repo *progressRepository) QueryCompletedActivityIDs(_ context.Context, userID, lessonID int) ([]int, error) {
	repo.activities.RLock()
	defer repo.activities.RUnlock()
	repo.completions.RLock()
	defer repo.completions.RUnlock()

	ids := make([]int, 0)
	for _, act := range repo.activities.table {
		if act.LessonID != lessonID {
			continue
		}
		if repo.completions.table[completionKey{userID: userID, activityID: act.ID}] {
			ids = append(ids, act.ID)
		}
	}
	return ids, nil
}
