package questionnaires

import (
	"context"

	"somnolink-service/internal/app/contracts"
	"somnolink-service/internal/pkg/constvars"
	"somnolink-service/internal/pkg/dto/responses"
	"somnolink-service/internal/pkg/fhir_dto"

	"go.uber.org/zap"
)

type questionnaireUsecase struct {
	TemplateStore contracts.QuestionnaireTemplateStore
	FhirClient    contracts.QuestionnaireFhirClient
	Log           *zap.Logger
}

func NewQuestionnaireUsecase(
	templateStore contracts.QuestionnaireTemplateStore,
	fhirClient contracts.QuestionnaireFhirClient,
	logger *zap.Logger,
) contracts.QuestionnaireUsecase {
	return &questionnaireUsecase{
		TemplateStore: templateStore,
		FhirClient:    fhirClient,
		Log:           logger,
	}
}

func (uc *questionnaireUsecase) ListQuestionnaires(ctx context.Context) ([]responses.QuestionnaireSummary, error) {
	slugs, err := uc.TemplateStore.Slugs()
	if err != nil {
		return nil, err
	}

	summaries := make([]responses.QuestionnaireSummary, 0, len(slugs))
	for _, slug := range slugs {
		questionnaire, err := uc.TemplateStore.Load(slug)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, responses.QuestionnaireSummary{
			Slug:        slug,
			Title:       questionnaire.Title,
			Description: questionnaire.Description,
			Status:      questionnaire.Status,
		})
	}
	return summaries, nil
}

func (uc *questionnaireUsecase) FindQuestionnaireBySlug(ctx context.Context, slug string) (*fhir_dto.Questionnaire, error) {
	return uc.TemplateStore.Load(slug)
}

// UploadQuestionnaire pushes a local template to the FHIR store so responses
// can reference it by canonical id.
func (uc *questionnaireUsecase) UploadQuestionnaire(ctx context.Context, slug string) (*fhir_dto.Questionnaire, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	questionnaire, err := uc.TemplateStore.Load(slug)
	if err != nil {
		return nil, err
	}

	created, err := uc.FhirClient.CreateQuestionnaire(ctx, questionnaire)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("questionnaireUsecase.UploadQuestionnaire uploaded template",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireSlugKey, slug),
	)
	return created, nil
}
