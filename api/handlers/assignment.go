package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/pars-health/triage-api/config"
	"github.com/pars-health/triage-api/databases"
	"github.com/pars-health/triage-api/models"
)

// Assignment exported for testing purposes
type Assignment struct {
	DB databases.AssignmentDatabase
}

// AssignmentHandler returns the full department assignment log
func (a Assignment) AssignmentHandler(w http.ResponseWriter, r *http.Request) {
	dbResp, err := a.DB.Find(r.Context(), bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get assignments", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Assignment{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
