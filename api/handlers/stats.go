package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/pars-health/triage-api/config"
	"github.com/pars-health/triage-api/databases"
	"github.com/pars-health/triage-api/triage"
)

// Stats exported for testing purposes
type Stats struct {
	DB  databases.PatientDatabase
	ADB databases.AssignmentDatabase
}

// StatsHandler aggregates the full patient set and the assignment log into
// the dashboard statistics
func (s Stats) StatsHandler(w http.ResponseWriter, r *http.Request) {
	patients, err := s.DB.Find(r.Context(), bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get patients", http.StatusNotFound, w, err)
		return
	}
	assignments, err := s.ADB.Find(r.Context(), bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get assignments", http.StatusNotFound, w, err)
		return
	}

	stats := triage.Aggregate(patients, assignments)

	b, err := json.Marshal(stats)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
