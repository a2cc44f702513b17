package triage

import (
	"math"

	"github.com/pars-health/triage-api/models"
)

var ageRanges = []string{"0-18", "19-35", "36-50", "51-65", "65+"}

type deptBucket struct {
	total  int
	high   int
	medium int
	low    int
	names  []string
}

type vitalsAccumulator struct {
	heartRate    int
	systolicBP   int
	o2Saturation int
	count        int
}

// Aggregate derives the dashboard statistics from the full patient set and
// the assignment-event log. Department volume is counted from the
// assignment log, which is the system of record for routing; risk
// distribution, vitals and ages come from the patient records. An
// assignment's risk label is resolved by patient id, falling back to a name
// match (fragile under duplicate names), defaulting to LOW when unresolved.
func Aggregate(patients []models.Patient, assignments []models.Assignment) models.Stats {
	buckets := make(map[string]*deptBucket, len(Departments))
	for _, dept := range Departments {
		buckets[dept] = &deptBucket{}
	}

	byID := make(map[string]models.Patient, len(patients))
	byName := make(map[string]models.Patient, len(patients))
	for _, p := range patients {
		byID[p.ID] = p
		if _, ok := byName[p.Name]; !ok {
			byName[p.Name] = p
		}
	}

	for _, a := range assignments {
		bucket := buckets[CanonicalDepartment(a.Department)]
		bucket.total++
		bucket.names = append(bucket.names, a.PatientName)

		label := models.RiskLabelLow
		if p, ok := byID[a.PatientID]; ok {
			if p.RiskLabel != "" {
				label = p.RiskLabel
			}
		} else if p, ok := byName[a.PatientName]; ok {
			if p.RiskLabel != "" {
				label = p.RiskLabel
			}
		}
		switch label {
		case models.RiskLabelHigh:
			bucket.high++
		case models.RiskLabelMedium:
			bucket.medium++
		default:
			bucket.low++
		}
	}

	riskCounts := map[string]int{}
	vitals := map[string]*vitalsAccumulator{
		models.RiskLabelHigh:   {},
		models.RiskLabelMedium: {},
		models.RiskLabelLow:    {},
	}
	ages := make([]int, len(ageRanges))

	for _, p := range patients {
		label := p.RiskLabel
		if label == "" {
			label = models.RiskLabelLow
		}
		riskCounts[label]++

		if acc, ok := vitals[p.RiskLabel]; ok {
			acc.heartRate += p.HeartRate
			acc.systolicBP += p.SystolicBP
			acc.o2Saturation += p.O2Saturation
			acc.count++
		}

		switch {
		case p.Age <= 18:
			ages[0]++
		case p.Age <= 35:
			ages[1]++
		case p.Age <= 50:
			ages[2]++
		case p.Age <= 65:
			ages[3]++
		default:
			ages[4]++
		}
	}

	stats := models.Stats{}

	activeDepartments := 0
	for _, dept := range Departments {
		bucket := buckets[dept]
		if bucket.total > 0 {
			activeDepartments++
		}
		names := bucket.names
		if names == nil {
			names = []string{}
		}
		stats.Departments = append(stats.Departments, models.DepartmentStat{
			Name:     DisplayName(dept),
			Total:    bucket.total,
			High:     bucket.high,
			Medium:   bucket.medium,
			Low:      bucket.low,
			Patients: names,
		})
	}

	for _, label := range []string{models.RiskLabelHigh, models.RiskLabelMedium, models.RiskLabelLow} {
		if riskCounts[label] > 0 {
			stats.Risk = append(stats.Risk, models.RiskSlice{Label: label, Count: riskCounts[label]})
		}
	}

	for _, label := range []string{models.RiskLabelLow, models.RiskLabelMedium, models.RiskLabelHigh} {
		acc := vitals[label]
		avg := models.VitalsAverage{Label: label}
		if acc.count > 0 {
			avg.HeartRate = roundDiv(acc.heartRate, acc.count)
			avg.SystolicBP = roundDiv(acc.systolicBP, acc.count)
			avg.O2Saturation = roundDiv(acc.o2Saturation, acc.count)
		}
		stats.Vitals = append(stats.Vitals, avg)
	}

	for i, r := range ageRanges {
		stats.Ages = append(stats.Ages, models.AgeBucket{Range: r, Count: ages[i]})
	}

	stats.KPI = models.KPISummary{
		TotalPatients:     len(patients),
		CriticalCases:     riskCounts[models.RiskLabelHigh],
		ActiveDepartments: activeDepartments,
		// wait-time tracking is not wired up yet, the dashboard shows a
		// static placeholder
		AverageWait: "12m",
	}

	return stats
}

func roundDiv(sum, count int) int {
	return int(math.Round(float64(sum) / float64(count)))
}
