package responses

type AssignPatient struct {
	Assigned       bool   `json:"assigned"`
	Created        bool   `json:"created"`
	PractitionerID string `json:"practitioner_id"`
	PatientID      string `json:"patient_id"`
}

type UnassignPatient struct {
	Deleted   bool   `json:"deleted"`
	PatientID string `json:"patient_id"`
}

type AuthorizedPatients struct {
	PractitionerID string   `json:"practitioner_id"`
	PatientIDs     []string `json:"patient_ids"`
}
