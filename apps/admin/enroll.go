package main

import (
	"context"
)

// enroll creates the user's progress records for every lesson of the course;
// only the first lesson starts unlocked. Re-running is harmless.
func (cli *commandLine) enroll(userID, courseID int) error {
	view, err := cli.progSvc.Enroll(context.Background(), userID, courseID)
	if err != nil {
		return err
	}
	logger.Printf("user %d enrolled in course %d (%d lessons, %d unlocked)",
		userID, courseID, len(view.Lessons), view.UnlockedCount())
	return nil
}
