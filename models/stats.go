package models

// DepartmentStat is one department bucket in the analytics view. Every known
// department appears, zero-filled, even with no volume.
type DepartmentStat struct {
	Name     string   `json:"name"`
	Total    int      `json:"total"`
	High     int      `json:"high"`
	Medium   int      `json:"medium"`
	Low      int      `json:"low"`
	Patients []string `json:"patients"`
}

// RiskSlice is one slice of the risk distribution pie. Zero-count labels
// are suppressed from the output.
type RiskSlice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// VitalsAverage holds the per-risk-label average vitals, rounded to the
// nearest integer, zero when no samples were seen for the label.
type VitalsAverage struct {
	Label        string `json:"label"`
	HeartRate    int    `json:"heart_rate"`
	SystolicBP   int    `json:"systolic_bp"`
	O2Saturation int    `json:"o2_saturation"`
}

// AgeBucket is one of the five fixed age ranges.
type AgeBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// KPISummary is the headline numbers row of the dashboard.
type KPISummary struct {
	TotalPatients     int    `json:"total_patients"`
	CriticalCases     int    `json:"critical_cases"`
	ActiveDepartments int    `json:"active_departments"`
	AverageWait       string `json:"average_wait"`
}

// Stats is the full derived analytics payload.
type Stats struct {
	Departments []DepartmentStat `json:"departments"`
	Risk        []RiskSlice      `json:"risk"`
	Vitals      []VitalsAverage  `json:"vitals"`
	Ages        []AgeBucket      `json:"ages"`
	KPI         KPISummary       `json:"kpi"`
}
