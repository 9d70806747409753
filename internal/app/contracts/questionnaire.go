package contracts

import (
	"context"

	"somnolink-service/internal/pkg/dto/responses"
	"somnolink-service/internal/pkg/fhir_dto"
)

type QuestionnaireUsecase interface {
	ListQuestionnaires(ctx context.Context) ([]responses.QuestionnaireSummary, error)
	FindQuestionnaireBySlug(ctx context.Context, slug string) (*fhir_dto.Questionnaire, error)
	UploadQuestionnaire(ctx context.Context, slug string) (*fhir_dto.Questionnaire, error)
}

// QuestionnaireTemplateStore exposes the static questionnaire templates. A
// missing slug is the UnknownQuestionnaire condition for submissions.
type QuestionnaireTemplateStore interface {
	Slugs() ([]string, error)
	Exists(slug string) bool
	Load(slug string) (*fhir_dto.Questionnaire, error)
}

type QuestionnaireFhirClient interface {
	CreateQuestionnaire(ctx context.Context, questionnaire *fhir_dto.Questionnaire) (*fhir_dto.Questionnaire, error)
}
