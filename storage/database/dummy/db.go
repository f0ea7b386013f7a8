package dummydb

import (
	"sync"

	"github.com/aulavivo/backend/core/course"
	"github.com/aulavivo/backend/core/progress"
)

type (
	// DB is an in-memory stand-in for the real database, used by tests and
	// local tooling. Each table carries its own lock so the repositories can
	// honor the same atomicity guarantees as their SQL counterparts.
	DB struct {
		course     *courseTable
		lesson     *lessonTable
		activity   *activityTable
		record     *recordTable
		completion *completionTable
	}

	courseTable struct {
		sync.RWMutex
		seq   int
		table map[int]*course.Course
	}

	lessonTable struct {
		sync.RWMutex
		seq   int
		table map[int]*course.Lesson
	}

	activityTable struct {
		sync.RWMutex
		seq   int
		table map[int]*progress.Activity
	}

	recordKey struct {
		userID   int
		lessonID int
	}

	recordTable struct {
		sync.RWMutex
		seq   int
		table map[recordKey]*progress.Record
	}

	completionKey struct {
		userID     int
		activityID int
	}

	completionTable struct {
		sync.RWMutex
		table map[completionKey]bool
	}
)

func Open() (*DB, error) {
	db := &DB{
		course:     &courseTable{table: make(map[int]*course.Course)},
		lesson:     &lessonTable{table: make(map[int]*course.Lesson)},
		activity:   &activityTable{table: make(map[int]*progress.Activity)},
		record:     &recordTable{table: make(map[recordKey]*progress.Record)},
		completion: &completionTable{table: make(map[completionKey]bool)},
	}
	return db, nil
}
