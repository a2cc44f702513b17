package models

import "time"

// Risk labels assigned by the scoring model and the local fallback scorer.
const (
	RiskLabelHigh   = "HIGH"
	RiskLabelMedium = "MEDIUM"
	RiskLabelLow    = "LOW"
)

// Patient holds the structure for the patients collection in mongo. One
// document is one triage event; the risk fields stay empty until an
// assessment has been copied onto the record.
type Patient struct {
	ID              string    `json:"_id" bson:"_id,omitempty"`
	UserID          string    `json:"user_id" bson:"user_id"`
	Name            string    `json:"name" bson:"name"`
	Age             int       `json:"age" bson:"age"`
	Gender          string    `json:"gender" bson:"gender"`
	HeartRate       int       `json:"heart_rate" bson:"heart_rate"`
	SystolicBP      int       `json:"systolic_bp" bson:"systolic_bp"`
	DiastolicBP     int       `json:"diastolic_bp" bson:"diastolic_bp"`
	O2Saturation    int       `json:"o2_saturation" bson:"o2_saturation"`
	Temperature     float64   `json:"temperature" bson:"temperature"`
	RespiratoryRate int       `json:"respiratory_rate" bson:"respiratory_rate"`
	PainScore       int       `json:"pain_score" bson:"pain_score"`
	GCSScore        int       `json:"gcs_score" bson:"gcs_score"`
	ArrivalMode     string    `json:"arrival_mode" bson:"arrival_mode"`
	Diabetes        bool      `json:"diabetes" bson:"diabetes"`
	Hypertension    bool      `json:"hypertension" bson:"hypertension"`
	HeartDisease    bool      `json:"heart_disease" bson:"heart_disease"`
	ChiefComplaint  string    `json:"chief_complaint,omitempty" bson:"chief_complaint,omitempty"`
	RiskScore       *float64  `json:"risk_score" bson:"risk_score,omitempty"`
	RiskLabel       string    `json:"risk_label" bson:"risk_label,omitempty"`
	Explanation     string    `json:"explanation" bson:"explanation,omitempty"`
	Department      string    `json:"department,omitempty" bson:"department,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
}

// SeverityRank maps a risk label to its queue ordering rank. Unassessed
// records sort after LOW.
func SeverityRank(label string) int {
	switch label {
	case RiskLabelHigh:
		return 0
	case RiskLabelMedium:
		return 1
	case RiskLabelLow:
		return 2
	default:
		return 3
	}
}
