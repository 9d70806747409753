package questionnaire_responses

import (
	"context"
	"testing"

	"somnolink-service/internal/app/models"
	"somnolink-service/internal/pkg/constvars"
	"somnolink-service/internal/pkg/dto/requests"
	"somnolink-service/internal/pkg/exceptions"
	"somnolink-service/internal/pkg/fhir_dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTemplateStore struct {
	known map[string]bool
}

func (s *fakeTemplateStore) Slugs() ([]string, error) { return nil, nil }

func (s *fakeTemplateStore) Exists(slug string) bool { return s.known[slug] }

func (s *fakeTemplateStore) Load(slug string) (*fhir_dto.Questionnaire, error) {
	if !s.known[slug] {
		return nil, exceptions.ErrQuestionnaireNotFound(slug)
	}
	return &fhir_dto.Questionnaire{ResourceType: constvars.ResourceQuestionnaire}, nil
}

type fakeResponseFhirClient struct {
	stored    []*fhir_dto.QuestionnaireResponse
	bySubject map[string][]fhir_dto.QuestionnaireResponse
	createErr error
}

func (c *fakeResponseFhirClient) CreateQuestionnaireResponse(_ context.Context, qr *fhir_dto.QuestionnaireResponse) (*fhir_dto.QuestionnaireResponse, error) {
	if c.createErr != nil {
		return nil, c.createErr
	}
	qr.ID = "qr-1"
	c.stored = append(c.stored, qr)
	return qr, nil
}

func (c *fakeResponseFhirClient) FindQuestionnaireResponsesBySubject(_ context.Context, patientID string) ([]fhir_dto.QuestionnaireResponse, error) {
	return c.bySubject[patientID], nil
}

type fakeConsentGate struct {
	authorizedPairs map[string]bool
}

func (u *fakeConsentGate) Assign(_ context.Context, _, _ string) (*models.Assignment, bool, error) {
	return nil, false, nil
}

func (u *fakeConsentGate) Unassign(_ context.Context, _, _ string) (bool, error) { return false, nil }

func (u *fakeConsentGate) Grant(_ context.Context, _, _ string) (*models.Consent, error) {
	return nil, nil
}

func (u *fakeConsentGate) Revoke(_ context.Context, _, _ string) (*models.Consent, error) {
	return nil, nil
}

func (u *fakeConsentGate) Authorize(_ context.Context, practitionerID, patientID string) (bool, error) {
	return u.authorizedPairs[practitionerID+"|"+patientID], nil
}

func (u *fakeConsentGate) ListAuthorizedPatients(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (u *fakeConsentGate) ListConsentsByPatient(_ context.Context, _ string) ([]models.Consent, error) {
	return nil, nil
}

type recordingAuditPublisher struct {
	events []*models.AuditEvent
}

func (p *recordingAuditPublisher) Publish(_ context.Context, event *models.AuditEvent) error {
	p.events = append(p.events, event)
	return nil
}

func intAnswer(linkID string, v int) fhir_dto.QuestionnaireResponseItem {
	return fhir_dto.QuestionnaireResponseItem{
		LinkID: linkID,
		Answer: []fhir_dto.QuestionnaireResponseItemAnswer{{ValueInteger: &v}},
	}
}

func codedAnswer(linkID, code string) fhir_dto.QuestionnaireResponseItem {
	return fhir_dto.QuestionnaireResponseItem{
		LinkID: linkID,
		Answer: []fhir_dto.QuestionnaireResponseItemAnswer{{ValueCoding: &fhir_dto.Coding{Code: code}}},
	}
}

func newSubmitFixture(knownSlugs ...string) (*questionnaireResponseUsecase, *fakeResponseFhirClient, *recordingAuditPublisher) {
	known := make(map[string]bool)
	for _, slug := range knownSlugs {
		known[slug] = true
	}
	client := &fakeResponseFhirClient{bySubject: make(map[string][]fhir_dto.QuestionnaireResponse)}
	audit := &recordingAuditPublisher{}
	uc := NewQuestionnaireResponseUsecase(&fakeTemplateStore{known: known}, client, &fakeConsentGate{}, audit, zap.NewNop()).(*questionnaireResponseUsecase)
	return uc, client, audit
}

func TestSubmit_UnknownQuestionnaire(t *testing.T) {
	uc, _, _ := newSubmitFixture("irls")

	_, err := uc.Submit(context.Background(), "ghost", &requests.SubmitQuestionnaireResponse{
		PatientID:    "patient-1",
		FhirResponse: &requests.SubmitQuestionnaireResponsePayload{},
	})
	require.Error(t, err)
	assert.True(t, exceptions.IsStatus(err, constvars.StatusNotFound))
}

func TestSubmit_MissingFields(t *testing.T) {
	uc, _, _ := newSubmitFixture("irls")

	_, err := uc.Submit(context.Background(), "irls", &requests.SubmitQuestionnaireResponse{PatientID: "patient-1"})
	require.Error(t, err)
	assert.True(t, exceptions.IsStatus(err, constvars.StatusBadRequest))

	_, err = uc.Submit(context.Background(), "irls", &requests.SubmitQuestionnaireResponse{
		FhirResponse: &requests.SubmitQuestionnaireResponsePayload{},
	})
	require.Error(t, err)
	assert.True(t, exceptions.IsStatus(err, constvars.StatusBadRequest))
}

func TestSubmit_EmptyItemListIsRejected(t *testing.T) {
	uc, client, audit := newSubmitFixture("irls")

	_, err := uc.Submit(context.Background(), "irls", &requests.SubmitQuestionnaireResponse{
		PatientID: "patient-1",
		FhirResponse: &requests.SubmitQuestionnaireResponsePayload{
			Item: []fhir_dto.QuestionnaireResponseItem{},
		},
	})
	require.Error(t, err)
	assert.True(t, exceptions.IsStatus(err, constvars.StatusBadRequest))
	assert.Empty(t, client.stored)
	assert.Empty(t, audit.events)
}

func TestSubmit_BuildsCompletedEnvelopeAndScores(t *testing.T) {
	uc, client, audit := newSubmitFixture("irls")

	result, err := uc.Submit(context.Background(), "IRLS", &requests.SubmitQuestionnaireResponse{
		PatientID: "patient-1",
		FhirResponse: &requests.SubmitQuestionnaireResponsePayload{
			Item: []fhir_dto.QuestionnaireResponseItem{
				intAnswer("1", 2),
				codedAnswer("2", "3"),
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "irls", result.QuestionnaireSlug)
	require.NotNil(t, result.TotalScore)
	assert.Equal(t, 5.0, *result.TotalScore)
	assert.Equal(t, "mild", result.Interpretation)

	require.Len(t, client.stored, 1)
	stored := client.stored[0]
	assert.Equal(t, constvars.ResourceQuestionnaireResponse, stored.ResourceType)
	assert.Equal(t, constvars.FhirQuestionnaireResponseStatusCompleted, stored.Status)
	assert.Equal(t, "Questionnaire/irls", stored.Questionnaire)
	assert.Equal(t, "Patient/patient-1", stored.Subject.Reference)
	assert.NotEmpty(t, stored.Authored)

	require.Len(t, audit.events, 1)
	assert.Equal(t, constvars.AuditEventResponseSubmitted, audit.events[0].Event)
	assert.Equal(t, "irls", audit.events[0].Questionnaire)
}

func TestSubmit_StorageFailureCarriesNoScore(t *testing.T) {
	uc, client, audit := newSubmitFixture("irls")
	client.createErr = exceptions.ErrCreateFHIRResource(assert.AnError, constvars.ResourceQuestionnaireResponse)

	result, err := uc.Submit(context.Background(), "irls", &requests.SubmitQuestionnaireResponse{
		PatientID: "patient-1",
		FhirResponse: &requests.SubmitQuestionnaireResponsePayload{
			Item: []fhir_dto.QuestionnaireResponseItem{intAnswer("1", 2)},
		},
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, audit.events)
}

func TestSubmit_MHI5UsesInvertedTransform(t *testing.T) {
	uc, _, _ := newSubmitFixture("mhi-5")

	result, err := uc.Submit(context.Background(), "mhi-5", &requests.SubmitQuestionnaireResponse{
		PatientID: "patient-1",
		FhirResponse: &requests.SubmitQuestionnaireResponsePayload{
			Item: []fhir_dto.QuestionnaireResponseItem{
				intAnswer("a", 5),
				intAnswer("b", 4),
				intAnswer("c", 2),
				intAnswer("d", 3),
				intAnswer("e", 1),
			},
		},
	})
	require.NoError(t, err)

	// 5 + 4 + (7-2) + 3 + (7-1) = 23 -> ((23-5)/20)*100 = 90.0
	require.NotNil(t, result.TotalScore)
	assert.Equal(t, 90.0, *result.TotalScore)
	require.NotNil(t, result.Computed.RawSum)
	assert.Equal(t, 23, *result.Computed.RawSum)
	assert.Equal(t, "no interpretation available", result.Interpretation)
}

func TestListByPatient_RederivesAndSortsAscending(t *testing.T) {
	uc, client, _ := newSubmitFixture("irls")
	client.bySubject["patient-1"] = []fhir_dto.QuestionnaireResponse{
		{
			Questionnaire: "Questionnaire/irls",
			Authored:      "2026-02-01T00:00:00Z",
			Item:          []fhir_dto.QuestionnaireResponseItem{intAnswer("1", 15)},
		},
		{
			Questionnaire: "irls",
			Authored:      "",
			Item:          []fhir_dto.QuestionnaireResponseItem{intAnswer("1", 0)},
		},
		{
			Questionnaire: "Questionnaire/irls",
			Authored:      "2026-01-01T00:00:00Z",
			Item:          []fhir_dto.QuestionnaireResponseItem{intAnswer("1", 31)},
		},
	}

	self := models.Principal{ID: "patient-1", Role: constvars.RolePatient}
	result, err := uc.ListByPatient(context.Background(), self, "patient-1")
	require.NoError(t, err)
	require.Len(t, result.Responses, 3)

	// empty authored sorts first, then ascending
	assert.Equal(t, "", result.Responses[0].Authored)
	assert.Equal(t, "2026-01-01T00:00:00Z", result.Responses[1].Authored)
	assert.Equal(t, "2026-02-01T00:00:00Z", result.Responses[2].Authored)

	assert.Equal(t, "none", result.Responses[0].Interpretation)
	assert.Equal(t, "very severe", result.Responses[1].Interpretation)
	assert.Equal(t, "moderate", result.Responses[2].Interpretation)
}

func TestListByPatient_PatientsOnlySeeThemselves(t *testing.T) {
	uc, _, _ := newSubmitFixture("irls")

	other := models.Principal{ID: "patient-2", Role: constvars.RolePatient}
	_, err := uc.ListByPatient(context.Background(), other, "patient-1")
	require.Error(t, err)
	assert.True(t, exceptions.IsStatus(err, constvars.StatusForbidden))
}

func TestListByPatient_PractitionerNeedsAuthorization(t *testing.T) {
	known := map[string]bool{"irls": true}
	client := &fakeResponseFhirClient{bySubject: map[string][]fhir_dto.QuestionnaireResponse{"patient-1": {}}}
	gate := &fakeConsentGate{authorizedPairs: map[string]bool{"pract-1|patient-1": true}}
	uc := NewQuestionnaireResponseUsecase(&fakeTemplateStore{known: known}, client, gate, &recordingAuditPublisher{}, zap.NewNop())

	allowed := models.Principal{ID: "pract-1", Role: constvars.RolePractitioner}
	_, err := uc.ListByPatient(context.Background(), allowed, "patient-1")
	require.NoError(t, err)

	denied := models.Principal{ID: "pract-2", Role: constvars.RolePractitioner}
	_, err = uc.ListByPatient(context.Background(), denied, "patient-1")
	require.Error(t, err)
	assert.True(t, exceptions.IsStatus(err, constvars.StatusForbidden))
}
