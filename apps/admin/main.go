package main

import (
	"log"
	"os"

	"github.com/aulavivo/backend/core"
	"github.com/aulavivo/backend/core/course"
	"github.com/aulavivo/backend/core/progress"
	directorysvc "github.com/aulavivo/backend/services/directory"
	emailsvc "github.com/aulavivo/backend/services/email"
	"github.com/aulavivo/backend/storage/database"
	sqlxrepos "github.com/aulavivo/backend/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	courseSvc := course.NewService(sqlxrepos.NewCourseRepository(db))
	progSvc := progress.NewService(
		sqlxrepos.NewProgressRepository(db),
		courseSvc,
		emailsvc.NewConsoleService(conf),
		directorysvc.NewNoopDirectory(),
	)

	// start CLI
	cli := commandLine{
		db:        db,
		courseSvc: courseSvc,
		progSvc:   progSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
