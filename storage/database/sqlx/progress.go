package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/aulavivo/backend/core/progress"
)

type (
	recordRow struct {
		ID        int       `db:"id"`
		UserID    int       `db:"user_id"`
		LessonID  int       `db:"lesson_id"`
		Percent   int       `db:"percent"`
		Completed bool      `db:"completed"`
		Locked    bool      `db:"locked"`
		IsNew     bool      `db:"is_new"`
		UpdatedAt null.Time `db:"updated_at"`
	}

	activityRow struct {
		ID       int    `db:"id"`
		LessonID int    `db:"lesson_id"`
		Name     string `db:"name"`
	}
)

func (row recordRow) toRecord() progress.Record {
	return progress.Record{
		ID:        row.ID,
		UserID:    row.UserID,
		LessonID:  row.LessonID,
		Percent:   row.Percent,
		Completed: row.Completed,
		Locked:    row.Locked,
		New:       row.IsNew,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

func (row activityRow) toActivity() progress.Activity {
	return progress.Activity{ID: row.ID, LessonID: row.LessonID, Name: row.Name}
}

const recordColumns = `id, user_id, lesson_id, percent, completed, locked, is_new, updated_at`

type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *sqlx.DB) *progressRepository {
	return &progressRepository{db: db}
}

// GetOrCreateRecord relies on the unique (user_id, lesson_id) constraint:
// the insert is a no-op when the row exists, so two devices racing on first
// access can never produce duplicate rows.
func (repo progressRepository) GetOrCreateRecord(ctx context.Context, userID, lessonID int, locked bool) (progress.Record, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO progress_record (user_id, lesson_id, percent, completed, locked, is_new, updated_at)
		 VALUES ($1, $2, 0, FALSE, $3, FALSE, $4)
		 ON CONFLICT (user_id, lesson_id) DO NOTHING`,
		userID, lessonID, locked, time.Now().UTC())
	if err != nil {
		return progress.Record{}, errors.Wrap(err, "upserting progress record")
	}

	var row recordRow
	err = repo.db.GetContext(ctx, &row,
		`SELECT `+recordColumns+` FROM progress_record WHERE user_id = $1 AND lesson_id = $2`,
		userID, lessonID)
	if err != nil {
		return progress.Record{}, errors.Wrap(err, "finding progress record")
	}
	return row.toRecord(), nil
}

// UpdateRecordProgress is a single statement so two near-simultaneous
// updates cannot lose the larger percent: the max and the completion flag
// are both computed in-place.
func (repo progressRepository) UpdateRecordProgress(ctx context.Context, userID, lessonID, percent int, gatingDone bool) (progress.Record, error) {
	var row recordRow
	err := repo.db.QueryRowxContext(ctx,
		`UPDATE progress_record
		 SET percent = GREATEST(percent, $3),
		     completed = (GREATEST(percent, $3) = 100 AND $4),
		     is_new = FALSE,
		     updated_at = $5
		 WHERE user_id = $1 AND lesson_id = $2
		 RETURNING `+recordColumns,
		userID, lessonID, percent, gatingDone, time.Now().UTC(),
	).StructScan(&row)
	if err != nil {
		if err == sql.ErrNoRows {
			return progress.Record{}, progress.ErrNotFound
		}
		return progress.Record{}, errors.Wrap(err, "updating progress record")
	}
	return row.toRecord(), nil
}

// UnlockRecord is the one place the lock flag is written. The WHERE clause
// makes the locked->unlocked transition at-most-once: concurrent callers
// race on the same conditional update and all but one affect zero rows.
func (repo progressRepository) UnlockRecord(ctx context.Context, userID, lessonID int) (bool, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE progress_record
		 SET locked = FALSE, is_new = TRUE, updated_at = $3
		 WHERE user_id = $1 AND lesson_id = $2 AND locked`,
		userID, lessonID, time.Now().UTC())
	if err != nil {
		return false, errors.Wrap(err, "unlocking progress record")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "unlocking progress record")
	}
	return n == 1, nil
}

func (repo progressRepository) QueryUserRecords(ctx context.Context, userID int, lessonIDs []int) ([]progress.Record, error) {
	if len(lessonIDs) == 0 {
		return []progress.Record{}, nil
	}

	query, args, err := sqlx.In(
		`SELECT `+recordColumns+` FROM progress_record WHERE user_id = ? AND lesson_id IN (?)`,
		userID, lessonIDs)
	if err != nil {
		return nil, errors.Wrap(err, "building records query")
	}

	var rows []recordRow
	if err = repo.db.SelectContext(ctx, &rows, repo.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "querying progress records")
	}

	recs := make([]progress.Record, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, row.toRecord())
	}
	return recs, nil
}

func (repo progressRepository) CreateActivity(ctx context.Context, act progress.Activity) (progress.Activity, error) {
	err := repo.db.QueryRowxContext(ctx,
		`INSERT INTO activity (lesson_id, name) VALUES ($1, $2) RETURNING id`,
		act.LessonID, act.Name,
	).Scan(&act.ID)
	if err != nil {
		return progress.Activity{}, errors.Wrap(err, "inserting activity")
	}
	return act, nil
}

func (repo progressRepository) GetActivity(ctx context.Context, activityID int) (progress.Activity, error) {
	var row activityRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT id, lesson_id, name FROM activity WHERE id = $1`, activityID)
	if err != nil {
		if err == sql.ErrNoRows {
			return progress.Activity{}, progress.ErrActivityNotFound
		}
		return progress.Activity{}, errors.Wrap(err, "finding activity")
	}
	return row.toActivity(), nil
}

func (repo progressRepository) QueryLessonActivities(ctx context.Context, lessonID int) ([]progress.Activity, error) {
	var rows []activityRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT id, lesson_id, name FROM activity WHERE lesson_id = $1`, lessonID)
	if err != nil {
		return nil, errors.Wrap(err, "querying activities")
	}

	acts := make([]progress.Activity, 0, len(rows))
	for _, row := range rows {
		acts = append(acts, row.toActivity())
	}
	return acts, nil
}

// CompleteActivity is an upsert: completing the same activity twice leaves
// a single completion row behind.
func (repo progressRepository) CompleteActivity(ctx context.Context, userID, activityID int) error {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO activity_completion (user_id, activity_id, completed_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, activity_id) DO NOTHING`,
		userID, activityID, time.Now().UTC())
	return errors.Wrap(err, "upserting activity completion")
}

func (repo progressRepository) QueryCompletedActivityIDs(ctx context.Context, userID, lessonID int) ([]int, error) {
	var ids []int
	err := repo.db.SelectContext(ctx, &ids,
		`SELECT ac.activity_id
		 FROM activity_completion ac
		 JOIN activity a ON a.id = ac.activity_id
		 WHERE ac.user_id = $1 AND a.lesson_id = $2`,
		userID, lessonID)
	if err != nil {
		return nil, errors.Wrap(err, "querying activity completions")
	}
	return ids, nil
}
