package triage

import "strings"

// DefaultDepartment receives every record whose department cannot be
// matched against the known set. Analytics must never drop a record for an
// unknown department.
const DefaultDepartment = "General_Medicine"

// Departments is the closed set of department buckets in canonical form and
// fixed display order.
var Departments = []string{
	"Cardiology",
	"Neurology",
	"Gastroenterology",
	"Pulmonology",
	"Orthopedics",
	"Emergency_Trauma",
	"General_Medicine",
	"Dermatology",
	"ENT",
	"Urology_Nephrology",
	"Psychiatry",
	"Toxicology",
}

// departmentKeywords routes a chief complaint to a department. Entries are
// matched in order; the first department with a matching keyword wins.
var departmentKeywords = []struct {
	department string
	keywords   []string
}{
	{"Cardiology", []string{"chest pain", "angina", "heart attack", "heart failure", "arrhythmia", "chest tightness", "palpitations", "heart"}},
	{"Neurology", []string{"stroke", "migraine", "vertigo", "confusion", "syncope", "dizziness", "unresponsive", "headache", "blurry vision", "faint"}},
	{"Gastroenterology", []string{"gastric", "indigestion", "abdominal", "nausea", "vomiting", "appetite", "stomach", "belly"}},
	{"Pulmonology", []string{"pneumonia", "breath", "cough", "respiratory", "asthma", "chest heaviness", "lung"}},
	{"Orthopedics", []string{"sprain", "fracture", "bone", "joint", "back pain", "leg pain", "shoulder", "knee", "arm"}},
	{"Emergency_Trauma", []string{"crash", "trauma", "fall", "injury", "severe", "shock", "overdose", "accident", "bleed"}},
	{"General_Medicine", []string{"fever", "flu", "fatigue", "weakness", "checkup", "edema", "dehydration", "cold"}},
	{"Dermatology", []string{"rash", "skin", "itch", "redness"}},
	{"ENT", []string{"ear", "throat", "nose", "sinus"}},
	{"Urology_Nephrology", []string{"kidney", "urine", "urinary", "bladder", "stone"}},
	{"Psychiatry", []string{"anxiety", "depression", "suicide", "hallucination", "panic"}},
	{"Toxicology", []string{"poison", "drug", "pill", "chemical"}},
}

// CanonicalDepartment normalizes a free-form department string to exactly
// one canonical name. Matching is case-insensitive and treats spaces and
// underscores as equivalent; anything unmatched falls back to the default.
func CanonicalDepartment(name string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	for _, dept := range Departments {
		if strings.EqualFold(dept, normalized) {
			return dept
		}
	}
	return DefaultDepartment
}

// DepartmentForComplaint infers the destination department from a chief
// complaint by keyword match.
func DepartmentForComplaint(complaint string) string {
	if complaint == "" {
		return DefaultDepartment
	}
	complaint = strings.ToLower(complaint)
	for _, entry := range departmentKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(complaint, keyword) {
				return entry.department
			}
		}
	}
	return DefaultDepartment
}

// DisplayName converts a canonical department name to its display form.
func DisplayName(department string) string {
	return strings.ReplaceAll(department, "_", " ")
}
