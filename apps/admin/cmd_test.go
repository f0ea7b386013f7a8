package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"log"
	"strconv"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/aulavivo/backend/core"
	"github.com/aulavivo/backend/core/course"
	"github.com/aulavivo/backend/core/progress"
	directorysvc "github.com/aulavivo/backend/services/directory"
	emailsvc "github.com/aulavivo/backend/services/email"
	dummydb "github.com/aulavivo/backend/storage/database/dummy"
)

func setup(t *testing.T) *commandLine {
	t.Helper()
	logger = log.New(io.Discard, "", 0)

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("opening dummy DB: %v", err)
	}
	conf := core.NewConfig()
	conf.TestMode = true

	courseSvc := course.NewService(dummydb.NewCourseRepository(db))
	progSvc := progress.NewService(
		dummydb.NewProgressRepository(db),
		courseSvc,
		emailsvc.NewConsoleServiceMock(conf),
		directorysvc.NewNoopDirectory(),
	)

	return &commandLine{
		db:        &sqlx.DB{},
		courseSvc: courseSvc,
		progSvc:   progSvc,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_seedCourse(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"seedcourse"}, wantErr: errHelp},
		{name: "seed", args: []string{"seedcourse", "-name", "Guitarra desde cero", "-sessions", "2", "-classes", "3"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			lessons, err := cli.courseSvc.Lessons(context.Background(), 1)
			if err != nil {
				t.Fatalf("Lessons() failed, %v", err)
			}
			if len(lessons) != 6 {
				t.Errorf("len(lessons) = %d, want 6", len(lessons))
			}
			if lessons[0].Title != "Sesión 1, Clase 1" {
				t.Errorf("first lesson = %q, want %q", lessons[0].Title, "Sesión 1, Clase 1")
			}
		})
	}
}

func Test_commandLine_enroll(t *testing.T) {
	cli := setup(t)

	if err := cli.seedCourse("Piano básico", 2, 2); err != nil {
		t.Fatalf("seedCourse() failed, %v", err)
	}

	tests := []cliTest{
		{name: "no args", args: []string{"enroll"}, wantErr: errHelp},
		{name: "course not found", args: []string{"enroll", "-user", "1", "-course", "42"}, wantErr: course.ErrNotFound},
		{name: "enroll", args: []string{"enroll", "-user", "1", "-course", "1"}},
		{name: "re-enroll is harmless", args: []string{"enroll", "-user", "1", "-course", "1"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			view, err := cli.progSvc.CourseView(context.Background(), 1, 1)
			if err != nil {
				t.Fatalf("CourseView() failed, %v", err)
			}
			if got := view.UnlockedCount(); got != 1 {
				t.Errorf("UnlockedCount() = %d, want 1", got)
			}
			if view.Lessons[0].Record.Locked {
				t.Error("first lesson should start unlocked")
			}
		})
	}
}
