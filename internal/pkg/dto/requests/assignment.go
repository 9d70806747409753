package requests

type AssignPatient struct {
	PatientID string `json:"patient_id" validate:"required"`
}

type UnassignPatient struct {
	PatientID string `json:"patient_id" validate:"required"`
}
