package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/pars-health/triage-api/api/handlers"
	"github.com/pars-health/triage-api/api/scheduler"
	"github.com/pars-health/triage-api/config"
	"github.com/pars-health/triage-api/databases"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil { //initialize database, queue and router
		log.Fatal(err)
	}

	s := scheduler.NewScheduler(
		databases.NewPatientDatabase(a.DBHelper),
		databases.NewAssignmentDatabase(a.DBHelper),
	)
	s.Start()
	defer s.Stop()

	port := os.Getenv("PORT")
	baseURL := os.Getenv("BASE_URL")
	zap.S().Infow("triage-api is up and running",
		"port", port,
		"url", baseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), a.Router))
}
