package triage

import (
	"math"
	"strings"

	"github.com/pars-health/triage-api/models"
)

// Risk label thresholds. A score lands in HIGH at or above the high
// threshold, MEDIUM at or above the medium threshold, LOW below it.
const (
	highThreshold   = 0.66
	mediumThreshold = 0.33
	maxScore        = 0.99
)

// Score computes a deterministic risk assessment from patient vitals. It is
// the offline fallback for the remote scoring model and documents the rule
// set the model is expected to approximate. It never fails: out-of-range
// input is a form-validation concern upstream.
func Score(in models.TriageInput) models.TriageResult {
	// Critical vitals dominate everything else.
	if in.HeartRate > 180 || in.SystolicBP < 70 || in.O2Saturation < 85 {
		details := "Critical vitals detected: "
		if in.HeartRate > 180 {
			details += "Severe tachycardia. "
		}
		if in.SystolicBP < 70 {
			details += "Hypotension detected. "
		}
		if in.O2Saturation < 85 {
			details += "Dangerous hypoxemia. "
		}
		return models.TriageResult{
			RiskScore: maxScore,
			RiskLabel: models.RiskLabelHigh,
			Details:   strings.TrimSpace(details),
			Referral:  fallbackReferral(),
		}
	}

	score := 0.0

	if in.Age > 70 {
		score += 0.15
	} else if in.Age > 50 {
		score += 0.08
	}

	if in.HeartRate > 120 {
		score += 0.15
	} else if in.HeartRate > 100 {
		score += 0.08
	} else if in.HeartRate < 50 {
		score += 0.12
	}

	if in.SystolicBP < 90 {
		score += 0.15
	} else if in.SystolicBP > 180 {
		score += 0.12
	}

	if in.O2Saturation < 90 {
		score += 0.20
	} else if in.O2Saturation < 94 {
		score += 0.10
	}

	if in.Temperature > 39.5 {
		score += 0.10
	} else if in.Temperature < 35 {
		score += 0.12
	}

	if in.GCSScore <= 8 {
		score += 0.25
	} else if in.GCSScore <= 12 {
		score += 0.12
	}

	if in.PainScore >= 8 {
		score += 0.10
	}

	if in.RespiratoryRate > 30 {
		score += 0.12
	} else if in.RespiratoryRate < 10 {
		score += 0.15
	}

	if in.Diabetes {
		score += 0.05
	}
	if in.Hypertension {
		score += 0.05
	}
	if in.HeartDisease {
		score += 0.08
	}
	if strings.EqualFold(in.ArrivalMode, "Ambulance") {
		score += 0.08
	}

	// Round before bucketing: the label must agree with the score the
	// caller sees, and float noise in the weight sums can straddle a
	// threshold (0.6599... reports as 0.66).
	final := math.Round(math.Min(score, maxScore)*100) / 100

	return models.TriageResult{
		RiskScore: final,
		RiskLabel: LabelForScore(final),
		Details:   describeFlags(in),
		Referral:  fallbackReferral(),
	}
}

// LabelForScore buckets a risk score into its label.
func LabelForScore(score float64) string {
	switch {
	case score >= highThreshold:
		return models.RiskLabelHigh
	case score >= mediumThreshold:
		return models.RiskLabelMedium
	default:
		return models.RiskLabelLow
	}
}

func describeFlags(in models.TriageInput) string {
	var flags []string
	if in.HeartRate > 120 {
		flags = append(flags, "Elevated heart rate")
	}
	if in.SystolicBP < 90 {
		flags = append(flags, "Low blood pressure")
	}
	if in.O2Saturation < 94 {
		flags = append(flags, "Low oxygen saturation")
	}
	if in.GCSScore <= 12 {
		flags = append(flags, "Reduced consciousness")
	}
	if in.Temperature > 39.5 {
		flags = append(flags, "High fever")
	}
	if in.PainScore >= 8 {
		flags = append(flags, "Severe pain")
	}
	if len(flags) == 0 {
		flags = append(flags, "Vitals within acceptable range")
	}
	return strings.Join(flags, ". ") + "."
}

// fallbackReferral attaches the default department with no doctor list;
// there is no live directory when scoring offline.
func fallbackReferral() *models.Referral {
	return &models.Referral{
		Department: DefaultDepartment,
		Doctors:    []models.Doctor{},
	}
}
