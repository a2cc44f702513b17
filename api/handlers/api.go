package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/pars-health/triage-api/api"
	"github.com/pars-health/triage-api/config"
	"github.com/pars-health/triage-api/databases"
	"github.com/pars-health/triage-api/models"
	"github.com/pars-health/triage-api/triage"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router     *mux.Router
	Config     config.Config
	Queue      *triage.QueueStore
	Projection *triage.ActiveQueueProjection
	Triage     *triage.Client
	Hub        *Hub
	DBHelper   databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.DBHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	p := Patient{
		DB:     databases.NewPatientDatabase(a.DBHelper),
		ADB:    databases.NewAssignmentDatabase(a.DBHelper),
		Queue:  a.Queue,
		Active: a.Projection,
		Triage: a.Triage,
		Hub:    a.Hub,
	}
	t := Triage{
		Client:  a.Triage,
		Doctors: databases.NewDoctorDatabase(a.DBHelper),
	}
	as := Assignment{DB: databases.NewAssignmentDatabase(a.DBHelper)}
	st := Stats{
		DB:  databases.NewPatientDatabase(a.DBHelper),
		ADB: databases.NewAssignmentDatabase(a.DBHelper),
	}
	admin := Admin{UDB: databases.NewUserDatabase(a.DBHelper)}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/predict", api.Middleware(http.HandlerFunc(t.PredictHandler))).Methods("POST")
	apiCreate.Handle("/self-check-in", http.HandlerFunc(t.SelfCheckInHandler)).Methods("POST")

	apiCreate.Handle("/patients", api.Middleware(http.HandlerFunc(p.CreatePatientHandler))).Methods("POST")
	apiCreate.Handle("/patients", api.Middleware(http.HandlerFunc(p.PatientHandler))).Methods("GET")
	apiCreate.Handle("/patients/active", api.Middleware(http.HandlerFunc(p.ActivePatientsHandler))).Methods("GET")
	apiCreate.Handle("/patients/{patient_id}", api.Middleware(http.HandlerFunc(p.PatientByIDHandler))).Methods("GET")

	apiCreate.Handle("/assignments", api.Middleware(http.HandlerFunc(as.AssignmentHandler))).Methods("GET")

	apiCreate.Handle("/admin/login", http.HandlerFunc(admin.LoginHandler)).Methods("POST")
	apiCreate.Handle("/stats", admin.RequireToken(http.HandlerFunc(st.StatsHandler))).Methods("GET")

	r.HandleFunc("/ws/queue", a.Hub.QueueWebSocketHandler)

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.DBHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("triage-api has connected to the database")

	patientDB := databases.NewPatientDatabase(a.DBHelper)

	a.Triage = triage.NewClient(a.Config.ScoringURL, a.Config.ScoringTimeout)
	a.Queue = triage.NewQueueStore(patientDB)
	a.Projection = triage.NewActiveQueueProjection(a.Queue, a.Config.ActiveWindow)
	a.Hub = NewHub()

	// the hub mirrors every queue change to connected dashboards
	a.Queue.Subscribe(a.Hub.BroadcastQueue)

	if err := a.Queue.Load(context.Background()); err != nil {
		// non-fatal: the in-memory queue starts empty and fills as
		// submissions and live events arrive
		zap.S().With(err).Warn("initial patient load failed")
	}
	if err := a.Queue.WatchRemote(context.Background()); err != nil {
		zap.S().With(err).Warn("live patient subscription unavailable")
	}
	a.Projection.Start()

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
