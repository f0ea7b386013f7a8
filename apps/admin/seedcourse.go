package main

import (
	"context"
	"fmt"

	"github.com/aulavivo/backend/core/course"
	"github.com/aulavivo/backend/core/progress"
)

// seedCourse creates a demo course with sessions*classes lessons titled the
// way the content team numbers them ("Sesión N, Clase M").
func (cli *commandLine) seedCourse(name string, sessions, classes int) error {
	ctx := context.Background()

	crs, err := cli.courseSvc.CreateCourse(ctx, course.NewCourse{Name: name})
	if err != nil {
		return err
	}
	logger.Printf("created course %d %q", crs.ID, crs.Name)

	ord := 0
	for s := 1; s <= sessions; s++ {
		for c := 1; c <= classes; c++ {
			ord++
			lsn, err := cli.courseSvc.CreateLesson(ctx, course.NewLesson{
				CourseID:     crs.ID,
				Title:        fmt.Sprintf("Sesión %d, Clase %d", s, c),
				Order:        ord,
				DurationSecs: 600,
			})
			if err != nil {
				return err
			}
			logger.Printf("created lesson %d %q", lsn.ID, lsn.Title)
		}
	}
	return nil
}

func (cli *commandLine) addActivity(lessonID int, name string) error {
	act, err := cli.progSvc.CreateActivity(context.Background(), progress.NewActivity{
		LessonID: lessonID,
		Name:     name,
	})
	if err != nil {
		return err
	}
	logger.Printf("created activity %d %q on lesson %d", act.ID, act.Name, act.LessonID)
	return nil
}
