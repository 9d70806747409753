package requests

type ConsentAction struct {
	PractitionerID string `json:"practitioner_id" validate:"required"`
}
