package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/pars-health/triage-api/config"
	"github.com/pars-health/triage-api/databases"
	"github.com/pars-health/triage-api/models"
	"github.com/pars-health/triage-api/triage"
)

// Patient exported for testing purposes
type Patient struct {
	DB     databases.PatientDatabase
	ADB    databases.AssignmentDatabase
	Queue  *triage.QueueStore
	Active *triage.ActiveQueueProjection
	Triage *triage.Client
	Hub    *Hub
}

// PatientSubmission is the intake request body: the wire-schema vitals plus
// the patient's name.
type PatientSubmission struct {
	Name string `json:"name"`
	models.TriageInput
}

// PatientSubmissionResponse echoes the stored record, its assessment and
// whether the local fallback scorer answered.
type PatientSubmissionResponse struct {
	Patient  models.Patient      `json:"patient"`
	Result   models.TriageResult `json:"result"`
	Fallback bool                `json:"fallback"`
	Notice   string              `json:"notice,omitempty"`
}

// CreatePatientHandler runs the full submission path: assess the vitals,
// optimistically insert the record into the queue, and append the
// department assignment event.
func (p Patient) CreatePatientHandler(w http.ResponseWriter, r *http.Request) {
	var sub PatientSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		config.ErrorStatus("failed to decode patient submission", http.StatusBadRequest, w, err)
		return
	}

	result, assessErr := p.Triage.Assess(r.Context(), sub.TriageInput)
	if assessErr != nil {
		zap.S().With(assessErr).Warn("scored submission with local fallback")
	}

	score := result.RiskScore
	draft := models.Patient{
		Name:            sub.Name,
		Age:             sub.Age,
		Gender:          sub.Gender,
		HeartRate:       sub.HeartRate,
		SystolicBP:      sub.SystolicBP,
		DiastolicBP:     sub.DiastolicBP,
		O2Saturation:    sub.O2Saturation,
		Temperature:     sub.Temperature,
		RespiratoryRate: sub.RespiratoryRate,
		PainScore:       sub.PainScore,
		GCSScore:        sub.GCSScore,
		ArrivalMode:     sub.ArrivalMode,
		Diabetes:        sub.Diabetes,
		Hypertension:    sub.Hypertension,
		HeartDisease:    sub.HeartDisease,
		ChiefComplaint:  sub.ChiefComplaint,
		RiskScore:       &score,
		RiskLabel:       result.RiskLabel,
		Explanation:     result.Details,
	}
	if result.Referral != nil {
		draft.Department = result.Referral.Department
	} else {
		draft.Department = triage.DepartmentForComplaint(sub.ChiefComplaint)
	}

	patient, err := p.Queue.Insert(r.Context(), draft)
	if err != nil {
		// optimistic record already rolled back, nothing partial remains
		config.ErrorStatus("failed to save patient", http.StatusBadGateway, w, err)
		return
	}

	if _, err := p.ADB.InsertOne(r.Context(), models.Assignment{
		PatientID:   patient.ID,
		PatientName: patient.Name,
		Department:  patient.Department,
		AssignedAt:  time.Now(),
	}); err != nil {
		// the triage record is saved, losing the assignment event only
		// skews the analytics department counts
		zap.S().With(err).Warn("failed to record department assignment")
	}

	resp := PatientSubmissionResponse{Patient: patient, Result: result, Fallback: assessErr != nil}
	if assessErr != nil {
		resp.Notice = "risk model unavailable, assessment computed locally"
	}
	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// PatientHandler returns the full risk-sorted queue
func (p Patient) PatientHandler(w http.ResponseWriter, r *http.Request) {
	patients := p.Queue.Snapshot()
	if len(patients) == 0 {
		patients = []models.Patient{}
	}
	b, err := json.Marshal(patients)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ActivePatientsHandler returns the patients inside the display window
func (p Patient) ActivePatientsHandler(w http.ResponseWriter, r *http.Request) {
	patients := p.Active.Active()
	if len(patients) == 0 {
		patients = []models.Patient{}
	}
	b, err := json.Marshal(patients)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// PatientByIDHandler returns a patient by ID
func (p Patient) PatientByIDHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	zap.S().Debugf("patient_id: %v", patientID)

	dbResp, err := p.DB.FindOne(r.Context(), bson.M{"_id": patientID})
	if err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
