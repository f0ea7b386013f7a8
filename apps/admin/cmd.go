package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aulavivo/backend/core/course"
	"github.com/aulavivo/backend/core/progress"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db        *sqlx.DB
	courseSvc course.ServiceInterface
	progSvc   progress.ServiceInterface
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS...] - run a goose migration command (up, down, status, ...)")
	fmt.Println("  seedcourse -name NAME -sessions N -classes M - create a demo course with N*M lessons")
	fmt.Println("  addactivity -lesson ID -name NAME - attach a gating activity to a lesson")
	fmt.Println("  enroll -user ID -course ID - enroll a user in a course")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCourseCmd := flag.NewFlagSet("seedcourse", flag.ExitOnError)
	seedCourseName := seedCourseCmd.String("name", "", "The course name.")
	seedCourseSessions := seedCourseCmd.Int("sessions", 3, "Number of sessions to create.")
	seedCourseClasses := seedCourseCmd.Int("classes", 2, "Number of classes per session.")

	addActivityCmd := flag.NewFlagSet("addactivity", flag.ExitOnError)
	addActivityLesson := addActivityCmd.Int("lesson", 0, "The lesson ID.")
	addActivityName := addActivityCmd.String("name", "", "The activity name.")

	enrollCmd := flag.NewFlagSet("enroll", flag.ExitOnError)
	enrollUser := enrollCmd.Int("user", 0, "The user ID.")
	enrollCourse := enrollCmd.Int("course", 0, "The course ID.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seedcourse":
		if err := seedCourseCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *seedCourseName == "" || *seedCourseSessions < 1 || *seedCourseClasses < 1 {
			seedCourseCmd.Usage()
			return errHelp
		}
		return cli.seedCourse(*seedCourseName, *seedCourseSessions, *seedCourseClasses)
	case "addactivity":
		if err := addActivityCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addActivityLesson == 0 || *addActivityName == "" {
			addActivityCmd.Usage()
			return errHelp
		}
		return cli.addActivity(*addActivityLesson, *addActivityName)
	case "enroll":
		if err := enrollCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *enrollUser == 0 || *enrollCourse == 0 {
			enrollCmd.Usage()
			return errHelp
		}
		return cli.enroll(*enrollUser, *enrollCourse)
	default:
		cli.printUsage()
		return errHelp
	}
}
