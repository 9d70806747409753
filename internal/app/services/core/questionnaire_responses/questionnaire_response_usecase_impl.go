package questionnaire_responses

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"somnolink-service/internal/app/contracts"
	"somnolink-service/internal/app/models"
	"somnolink-service/internal/pkg/constvars"
	"somnolink-service/internal/pkg/dto/requests"
	"somnolink-service/internal/pkg/dto/responses"
	"somnolink-service/internal/pkg/exceptions"
	"somnolink-service/internal/pkg/fhir_dto"
	"somnolink-service/internal/pkg/scoring"

	"go.uber.org/zap"
)

type questionnaireResponseUsecase struct {
	TemplateStore  contracts.QuestionnaireTemplateStore
	FhirClient     contracts.QuestionnaireResponseFhirClient
	ConsentUsecase contracts.ConsentUsecase
	AuditPublisher contracts.AuditPublisher
	Log            *zap.Logger
}

func NewQuestionnaireResponseUsecase(
	templateStore contracts.QuestionnaireTemplateStore,
	fhirClient contracts.QuestionnaireResponseFhirClient,
	consentUsecase contracts.ConsentUsecase,
	auditPublisher contracts.AuditPublisher,
	logger *zap.Logger,
) contracts.QuestionnaireResponseUsecase {
	return &questionnaireResponseUsecase{
		TemplateStore:  templateStore,
		FhirClient:     fhirClient,
		ConsentUsecase: consentUsecase,
		AuditPublisher: auditPublisher,
		Log:            logger,
	}
}

// Submit validates the submission against the known templates, wraps the raw
// answers into a completed FHIR envelope, scores it and persists it. The
// score is computed before persistence so a storage failure surfaces as an
// error without any score attached.
func (uc *questionnaireResponseUsecase) Submit(ctx context.Context, slug string, request *requests.SubmitQuestionnaireResponse) (*responses.SubmitQuestionnaireResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	normalizedSlug := scoring.NormalizeSlug(slug)

	if !uc.TemplateStore.Exists(normalizedSlug) {
		return nil, exceptions.ErrQuestionnaireNotFound(normalizedSlug)
	}
	if request == nil || request.PatientID == "" || request.FhirResponse == nil || len(request.FhirResponse.Item) == 0 {
		return nil, exceptions.ErrMissingSubmissionFields(nil)
	}

	envelope := &fhir_dto.QuestionnaireResponse{
		ResourceType:  constvars.ResourceQuestionnaireResponse,
		Status:        constvars.FhirQuestionnaireResponseStatusCompleted,
		Questionnaire: fmt.Sprintf("%s/%s", constvars.ResourceQuestionnaire, normalizedSlug),
		Subject: fhir_dto.Reference{
			Reference: fmt.Sprintf("%s/%s", constvars.ResourcePatient, request.PatientID),
		},
		Authored: time.Now().UTC().Format(time.RFC3339),
		Item:     request.FhirResponse.Item,
	}

	result := scoring.Score(normalizedSlug, envelope.Item)
	interpretation := scoring.Interpret(normalizedSlug, result)

	stored, err := uc.FhirClient.CreateQuestionnaireResponse(ctx, envelope)
	if err != nil {
		uc.Log.Error("questionnaireResponseUsecase.Submit failed to persist response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQuestionnaireSlugKey, normalizedSlug),
			zap.String(constvars.LoggingPatientIDKey, request.PatientID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("questionnaireResponseUsecase.Submit stored response",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireSlugKey, normalizedSlug),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)
	uc.publishAudit(ctx, request.PatientID, normalizedSlug)

	return &responses.SubmitQuestionnaireResponse{
		QuestionnaireSlug: normalizedSlug,
		PatientID:         request.PatientID,
		TotalScore:        result.Total,
		Interpretation:    interpretation,
		Computed:          result,
		FhirResponse:      stored,
	}, nil
}

// ListByPatient fetches every stored response for the patient and re-derives
// scores and interpretations from the raw answers; nothing precomputed is
// trusted. Results come back in ascending authored order, responses without
// an authored timestamp first.
func (uc *questionnaireResponseUsecase) ListByPatient(ctx context.Context, requester models.Principal, patientID string) (*responses.PatientQuestionnaireResponses, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if requester.IsPatient() && requester.ID != patientID {
		return nil, exceptions.ErrPatientNotAccessible(nil)
	}
	if requester.IsPractitioner() {
		authorized, err := uc.ConsentUsecase.Authorize(ctx, requester.ID, patientID)
		if err != nil {
			return nil, err
		}
		if !authorized {
			return nil, exceptions.ErrPatientNotAccessible(nil)
		}
	}

	stored, err := uc.FhirClient.FindQuestionnaireResponsesBySubject(ctx, patientID)
	if err != nil {
		return nil, err
	}

	result := &responses.PatientQuestionnaireResponses{
		PatientID: patientID,
		Responses: make([]responses.PatientQuestionnaireResponse, 0, len(stored)),
	}
	for i := range stored {
		raw := stored[i]
		slug := slugFromQuestionnaireRef(raw.Questionnaire)
		computed := scoring.Score(slug, raw.Item)
		result.Responses = append(result.Responses, responses.PatientQuestionnaireResponse{
			QuestionnaireSlug: slug,
			TotalScore:        computed.Total,
			Interpretation:    scoring.Interpret(slug, computed),
			Computed:          computed,
			Authored:          raw.Authored,
			Raw:               &raw,
		})
	}

	sort.SliceStable(result.Responses, func(i, j int) bool {
		return result.Responses[i].Authored < result.Responses[j].Authored
	})

	uc.Log.Debug("questionnaireResponseUsecase.ListByPatient derived scores",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Int(constvars.LoggingResponseCountKey, len(result.Responses)),
	)
	return result, nil
}

// slugFromQuestionnaireRef recovers the slug from a stored questionnaire
// reference, accepting both the bare slug and the Questionnaire/{slug} form.
func slugFromQuestionnaireRef(ref string) string {
	trimmed := strings.TrimPrefix(ref, constvars.ResourceQuestionnaire+"/")
	return scoring.NormalizeSlug(trimmed)
}

func (uc *questionnaireResponseUsecase) publishAudit(ctx context.Context, patientID, slug string) {
	err := uc.AuditPublisher.Publish(ctx, &models.AuditEvent{
		Event:         constvars.AuditEventResponseSubmitted,
		PatientID:     patientID,
		Questionnaire: slug,
		OccurredAt:    time.Now(),
	})
	if err != nil {
		uc.Log.Warn("questionnaireResponseUsecase failed to publish audit event",
			zap.String(constvars.LoggingAuditEventKey, constvars.AuditEventResponseSubmitted),
			zap.Error(err),
		)
	}
}
