package responses

import (
	"somnolink-service/internal/pkg/fhir_dto"
	"somnolink-service/internal/pkg/scoring"
)

type SubmitQuestionnaireResponse struct {
	QuestionnaireSlug string                          `json:"questionnaire_slug"`
	PatientID         string                          `json:"patient_id"`
	TotalScore        *float64                        `json:"total_score"`
	Interpretation    string                          `json:"interpretation"`
	Computed          *scoring.Result                 `json:"computed"`
	FhirResponse      *fhir_dto.QuestionnaireResponse `json:"fhir_response"`
}

type PatientQuestionnaireResponse struct {
	QuestionnaireSlug string                          `json:"questionnaire"`
	TotalScore        *float64                        `json:"score"`
	Interpretation    string                          `json:"interpretation"`
	Computed          *scoring.Result                 `json:"computed"`
	Authored          string                          `json:"authored"`
	Raw               *fhir_dto.QuestionnaireResponse `json:"raw"`
}

type PatientQuestionnaireResponses struct {
	PatientID string                         `json:"patient_id"`
	Responses []PatientQuestionnaireResponse `json:"responses"`
}
