package models

import "time"

// AuditEvent records a consent-policy or submission transition for the audit
// trail. Published fire-and-forget; losing one never blocks the transition.
type AuditEvent struct {
	Event          string    `json:"event"`
	PatientID      string    `json:"patient_id,omitempty"`
	PractitionerID string    `json:"practitioner_id,omitempty"`
	Questionnaire  string    `json:"questionnaire,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
