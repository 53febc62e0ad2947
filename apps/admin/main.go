package main

import (
	"log"
	"os"

	"github.com/careerpath/frontend/core"
	"github.com/careerpath/frontend/core/catalog"
	"github.com/careerpath/frontend/core/session"
	"github.com/careerpath/frontend/services/api"
	"github.com/careerpath/frontend/services/logger"
)

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()
	std := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var appLogger core.Logger
	if conf.Debug || conf.TestMode || conf.RollbarToken == "" {
		appLogger = logsvc.NewConsoleLogger(std)
	} else {
		appLogger = logsvc.NewRollbarLogger(std, conf)
	}

	sess := session.NewStore()
	if err := sess.Restore(conf.APIToken); err != nil {
		appLogger.Fatal("restoring session", err)
	}

	client := api.NewClient(&api.Options{
		BaseURL: conf.APIBaseURL,
		Tokens:  sess,
		Logger:  appLogger,
	})

	cli := commandLine{
		sess: sess,
		auth: api.NewAuthAPI(client),
		entities: map[string]entityOps{
			"courses":    ops[catalog.Course](api.NewResource[catalog.Course](client, "courses", "")),
			"ebooks":     ops[catalog.Ebook](api.NewResource[catalog.Ebook](client, "ebooks", "")),
			"livetests":  ops[catalog.LiveTest](api.NewResource[catalog.LiveTest](client, "livetests", "")),
			"materials":  ops[catalog.StudyMaterial](api.NewResource[catalog.StudyMaterial](client, "studymaterials", "materials")),
			"testseries": ops[catalog.TestSeries](api.NewResource[catalog.TestSeries](client, "testseries", "")),
			"videos":     ops[catalog.Video](api.NewResource[catalog.Video](client, "videos", "")),
			"notices":    ops[catalog.Notice](api.NewResource[catalog.Notice](client, "notices", "")),
			"orders":     ops[catalog.Order](api.NewResource[catalog.Order](client, "payments", "orders")),
		},
		out: os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
