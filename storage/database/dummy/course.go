package dummydb

import (
	"context"

	"github.com/aulavivo/backend/core/course"
)

type courseRepository struct {
	courses *courseTable
	lessons *lessonTable
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{courses: db.course, lessons: db.lesson}
}

func (repo *courseRepository) CreateCourse(_ context.Context, crs course.Course) (course.Course, error) {
	repo.courses.Lock()
	defer repo.courses.Unlock()

	repo.courses.seq++
	crs.ID = repo.courses.seq
	repo.courses.table[crs.ID] = &crs
	return crs, nil
}

func (repo *courseRepository) GetCourse(_ context.Context, id int) (course.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()

	if crs, ok := repo.courses.table[id]; ok {
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) CreateLesson(_ context.Context, lsn course.Lesson) (course.Lesson, error) {
	repo.lessons.Lock()
	defer repo.lessons.Unlock()

	repo.lessons.seq++
	lsn.ID = repo.lessons.seq
	repo.lessons.table[lsn.ID] = &lsn
	return lsn, nil
}

func (repo *courseRepository) GetLesson(_ context.Context, id int) (course.Lesson, error) {
	repo.lessons.RLock()
	defer repo.lessons.RUnlock()

	if lsn, ok := repo.lessons.table[id]; ok {
		return *lsn, nil
	}
	return course.Lesson{}, course.ErrNotFound
}

func (repo *courseRepository) QueryCourseLessons(_ context.Context, courseID int) ([]course.Lesson, error) {
	repo.lessons.RLock()
	defer repo.lessons.RUnlock()

	lessons := make([]course.Lesson, 0)
	for _, lsn := range repo.lessons.table {
		if lsn.CourseID == courseID {
			lessons = append(lessons, *lsn)
		}
	}
	return lessons, nil
}
