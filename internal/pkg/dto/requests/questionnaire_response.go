package requests

import "somnolink-service/internal/pkg/fhir_dto"

// SubmitQuestionnaireResponse is the submission payload: the patient the
// answers belong to plus the raw FHIR-shaped item list.
type SubmitQuestionnaireResponse struct {
	PatientID    string                              `json:"patient_id" validate:"required"`
	FhirResponse *SubmitQuestionnaireResponsePayload `json:"fhir_response" validate:"required"`
}

type SubmitQuestionnaireResponsePayload struct {
	Item []fhir_dto.QuestionnaireResponseItem `json:"item"`
}
