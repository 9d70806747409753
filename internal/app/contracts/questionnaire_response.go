package contracts

import (
	"context"

	"somnolink-service/internal/app/models"
	"somnolink-service/internal/pkg/dto/requests"
	"somnolink-service/internal/pkg/dto/responses"
	"somnolink-service/internal/pkg/fhir_dto"
)

type QuestionnaireResponseUsecase interface {
	Submit(ctx context.Context, slug string, request *requests.SubmitQuestionnaireResponse) (*responses.SubmitQuestionnaireResponse, error)
	// ListByPatient re-derives every score from the stored raw envelopes and
	// returns them ordered by ascending authored timestamp.
	ListByPatient(ctx context.Context, requester models.Principal, patientID string) (*responses.PatientQuestionnaireResponses, error)
}

type QuestionnaireResponseFhirClient interface {
	CreateQuestionnaireResponse(ctx context.Context, questionnaireResponse *fhir_dto.QuestionnaireResponse) (*fhir_dto.QuestionnaireResponse, error)
	FindQuestionnaireResponsesBySubject(ctx context.Context, patientID string) ([]fhir_dto.QuestionnaireResponse, error)
}
