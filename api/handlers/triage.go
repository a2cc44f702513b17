package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/pars-health/triage-api/config"
	"github.com/pars-health/triage-api/databases"
	"github.com/pars-health/triage-api/models"
	"github.com/pars-health/triage-api/triage"
)

// Triage exported for testing purposes
type Triage struct {
	Client  *triage.Client
	Doctors databases.DoctorDatabase
}

// PredictHandler assesses one set of vitals. The remote model answers when
// reachable, the local scorer otherwise; either way the referral is
// enriched with the department's doctor directory.
func (t Triage) PredictHandler(w http.ResponseWriter, r *http.Request) {
	var in models.TriageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		config.ErrorStatus("failed to decode triage input", http.StatusBadRequest, w, err)
		return
	}

	result, err := t.Client.Assess(r.Context(), in)
	if err != nil {
		zap.S().With(err).Warn("served prediction from local fallback")
	}

	// The model picks the department from the chief complaint when given,
	// from the assessment text otherwise.
	reason := in.ChiefComplaint
	if reason == "" {
		reason = result.Details
	}
	existing := result.Referral
	if err != nil {
		// the offline scorer attaches a default-department placeholder,
		// complaint routing takes over instead
		existing = nil
	}
	result.Referral = t.referral(r, reason, existing)

	b, err := json.Marshal(result)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SelfCheckInRequest is the simplified intake body for non-emergency cases.
type SelfCheckInRequest struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Symptoms string `json:"symptoms"`
}

// SelfCheckInHandler handles low-acuity walk-ins: always LOW risk, with the
// department inferred from the reported symptoms.
func (t Triage) SelfCheckInHandler(w http.ResponseWriter, r *http.Request) {
	var req SelfCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode self check-in", http.StatusBadRequest, w, err)
		return
	}

	dept := triage.DepartmentForComplaint(req.Symptoms)
	result := models.TriageResult{
		RiskScore: 0.1,
		RiskLabel: models.RiskLabelLow,
		Details:   fmt.Sprintf("Self check-in completed. Based on '%s', we recommend visiting %s.", req.Symptoms, triage.DisplayName(dept)),
	}
	result.Referral = t.referral(r, req.Symptoms, nil)

	b, err := json.Marshal(result)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// referral looks up the doctor directory for the department implied by
// reason. A referral already naming a department keeps it; directory
// failures degrade to an empty doctor list rather than failing the request.
func (t Triage) referral(r *http.Request, reason string, existing *models.Referral) *models.Referral {
	dept := triage.DepartmentForComplaint(reason)
	if existing != nil && existing.Department != "" {
		dept = triage.CanonicalDepartment(existing.Department)
	}

	doctors, err := t.Doctors.Find(r.Context(), bson.M{"department": dept})
	if err != nil {
		zap.S().With(err).Warnf("doctor directory lookup failed for %v", dept)
		doctors = nil
	}
	if doctors == nil {
		doctors = []models.Doctor{}
	}
	return &models.Referral{Department: dept, Doctors: doctors}
}
