package responses

import "time"

type Consent struct {
	PatientID      string     `json:"patient_id"`
	PractitionerID string     `json:"practitioner_id"`
	Status         string     `json:"status"`
	GrantedAt      *time.Time `json:"granted_at,omitempty"`
	RevokedAt      *time.Time `json:"revoked_at,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
