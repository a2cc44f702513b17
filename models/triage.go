package models

// TriageInput is the request body for the scoring endpoint. Field casing
// matches the wire schema of the upstream model service.
type TriageInput struct {
	Age             int     `json:"Age"`
	Gender          string  `json:"Gender"`
	HeartRate       int     `json:"Heart_Rate"`
	SystolicBP      int     `json:"Systolic_BP"`
	DiastolicBP     int     `json:"Diastolic_BP"`
	O2Saturation    int     `json:"O2_Saturation"`
	Temperature     float64 `json:"Temperature"`
	RespiratoryRate int     `json:"Respiratory_Rate"`
	PainScore       int     `json:"Pain_Score"`
	GCSScore        int     `json:"GCS_Score"`
	ArrivalMode     string  `json:"Arrival_Mode"`
	Diabetes        bool    `json:"Diabetes"`
	Hypertension    bool    `json:"Hypertension"`
	HeartDisease    bool    `json:"Heart_Disease"`
	ChiefComplaint  string  `json:"Chief_Complaint,omitempty"`
}

// TriageResult is the output of one risk assessment. Only the scalar fields
// are persisted; the referral is transient display data.
type TriageResult struct {
	RiskScore float64   `json:"risk_score"`
	RiskLabel string    `json:"risk_label"`
	Details   string    `json:"details"`
	Referral  *Referral `json:"referral,omitempty"`
}

// Referral is a recommended department plus candidate specialists.
type Referral struct {
	Department string   `json:"department"`
	Doctors    []Doctor `json:"doctors"`
}

// Doctor holds the structure for one row of a department's doctor directory
// collection in mongo.
type Doctor struct {
	Name       string `json:"name" bson:"doc_name"`
	Experience int    `json:"experience" bson:"experience_years"`
	Available  bool   `json:"available" bson:"is_available"`
	Department string `json:"-" bson:"department"`
}
