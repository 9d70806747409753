package models

import "time"

// Assignment is the care relationship between a practitioner and a patient.
// It carries no data-sharing permission on its own.
type Assignment struct {
	ID             string    `bson:"_id,omitempty" json:"id,omitempty"`
	PractitionerID string    `bson:"practitionerId" json:"practitioner_id"`
	PatientID      string    `bson:"patientId" json:"patient_id"`
	CreatedAt      time.Time `bson:"createdAt" json:"created_at"`
}

// Consent is the patient-controlled grant of data access to one practitioner.
// At most one record exists per (patient, practitioner) pair; it is never
// deleted, only transitioned between GRANTED and REVOKED.
type Consent struct {
	ID             string     `bson:"_id,omitempty" json:"id,omitempty"`
	PatientID      string     `bson:"patientId" json:"patient_id"`
	PractitionerID string     `bson:"practitionerId" json:"practitioner_id"`
	Status         string     `bson:"status" json:"status"`
	GrantedAt      *time.Time `bson:"grantedAt,omitempty" json:"granted_at,omitempty"`
	RevokedAt      *time.Time `bson:"revokedAt,omitempty" json:"revoked_at,omitempty"`
	CreatedAt      time.Time  `bson:"createdAt" json:"created_at"`
	UpdatedAt      time.Time  `bson:"updatedAt" json:"updated_at"`
}
