package responses

type Patient struct {
	ID        string `json:"id"`
	Pseudonym string `json:"pseudonym"`
}

type MyPractitioners struct {
	PatientID       string   `json:"patient_id"`
	PractitionerIDs []string `json:"practitioner_ids"`
}
