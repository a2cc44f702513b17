package models

import "time"

// Assignment holds the structure for the patient_assignments collection in
// mongo. It records that a patient was routed to a department and is the
// system of record for department volume in the analytics view. The patient
// reference is weak: patient_id is looked up, not owned, and patient_name is
// denormalized for display when the lookup fails to resolve.
type Assignment struct {
	ID          string    `json:"_id" bson:"_id,omitempty"`
	PatientID   string    `json:"patient_id" bson:"patient_id"`
	PatientName string    `json:"patient_name" bson:"patient_name"`
	Department  string    `json:"department" bson:"department"`
	AssignedAt  time.Time `json:"assigned_at" bson:"assigned_at"`
}
