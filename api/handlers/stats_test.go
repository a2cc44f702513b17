package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pars-health/triage-api/api/handlers"
	"github.com/pars-health/triage-api/databases"
	"github.com/pars-health/triage-api/databases/mocks"
	"github.com/pars-health/triage-api/models"
)

func TestStats_StatsHandler(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	patientConn := &mocks.CollectionHelper{}
	assignmentConn := &mocks.CollectionHelper{}
	patientCursor := &mocks.CursorHelper{}
	assignmentCursor := &mocks.CursorHelper{}

	patientCursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Patient)
		*arg = []models.Patient{
			{ID: "p1", Name: "Ada", Age: 40, RiskLabel: models.RiskLabelHigh},
			{ID: "p2", Name: "Grace", Age: 25, RiskLabel: models.RiskLabelLow},
		}
	})
	assignmentCursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Assignment)
		*arg = []models.Assignment{
			{ID: "a1", PatientID: "p1", PatientName: "Ada", Department: "Cardiology"},
		}
	})
	patientConn.On("Find", mock.Anything, mock.Anything).Return(patientCursor)
	assignmentConn.On("Find", mock.Anything, mock.Anything).Return(assignmentCursor)
	db.On("Collection", "patients").Return(patientConn)
	db.On("Collection", "patient_assignments").Return(assignmentConn)

	s := handlers.Stats{
		DB:  databases.NewPatientDatabase(db),
		ADB: databases.NewAssignmentDatabase(db),
	}

	req, err := http.NewRequest("GET", "/api/v1/stats", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(s.StatsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var stats models.Stats
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Len(t, stats.Departments, 12)
	assert.Equal(t, 2, stats.KPI.TotalPatients)
	assert.Equal(t, 1, stats.KPI.CriticalCases)
	assert.Equal(t, 1, stats.KPI.ActiveDepartments)

	for _, d := range stats.Departments {
		if d.Name == "Cardiology" {
			assert.Equal(t, 1, d.Total)
			assert.Equal(t, 1, d.High)
		}
	}
}

func TestStats_StatsHandlerPatientsError(t *testing.T) {
	patientDB := &mocks.PatientDatabase{}
	patientDB.On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

	s := handlers.Stats{DB: patientDB}

	req, err := http.NewRequest("GET", "/api/v1/stats", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(s.StatsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to get patients")
}

func TestStats_StatsHandlerAssignmentsError(t *testing.T) {
	patientDB := &mocks.PatientDatabase{}
	patientDB.On("Find", mock.Anything, mock.Anything).Return([]models.Patient{}, nil)
	assignmentDB := &mocks.AssignmentDatabase{}
	assignmentDB.On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

	s := handlers.Stats{DB: patientDB, ADB: assignmentDB}

	req, err := http.NewRequest("GET", "/api/v1/stats", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(s.StatsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to get assignments")
}
