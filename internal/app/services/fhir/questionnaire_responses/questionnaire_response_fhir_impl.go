package questionnaire_responses

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"somnolink-service/internal/app/contracts"
	"somnolink-service/internal/pkg/constvars"
	"somnolink-service/internal/pkg/exceptions"
	"somnolink-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	questionnaireResponseFhirClientInstance contracts.QuestionnaireResponseFhirClient
	onceQuestionnaireResponseFhirClient     sync.Once
)

type questionnaireResponseFhirClient struct {
	BaseUrl string
	Client  *http.Client
	Log     *zap.Logger
}

func NewQuestionnaireResponseFhirClient(baseUrl string, timeout time.Duration, logger *zap.Logger) contracts.QuestionnaireResponseFhirClient {
	onceQuestionnaireResponseFhirClient.Do(func() {
		questionnaireResponseFhirClientInstance = &questionnaireResponseFhirClient{
			BaseUrl: baseUrl + constvars.ResourceQuestionnaireResponse,
			Client:  &http.Client{Timeout: timeout},
			Log:     logger,
		}
	})
	return questionnaireResponseFhirClientInstance
}

func (c *questionnaireResponseFhirClient) CreateQuestionnaireResponse(ctx context.Context, questionnaireResponse *fhir_dto.QuestionnaireResponse) (*fhir_dto.QuestionnaireResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("questionnaireResponseFhirClient.CreateQuestionnaireResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFhirUrlKey, c.BaseUrl),
	)

	payload, err := json.Marshal(questionnaireResponse)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl, bytes.NewReader(payload))
	if err != nil {
		c.Log.Error("questionnaireResponseFhirClient.CreateQuestionnaireResponse error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.Client.Do(req)
	if err != nil {
		c.Log.Error("questionnaireResponseFhirClient.CreateQuestionnaireResponse error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK && resp.StatusCode != constvars.StatusCreated {
		return nil, c.fhirFailure(requestID, resp, "create")
	}

	created := new(fhir_dto.QuestionnaireResponse)
	if err := json.NewDecoder(resp.Body).Decode(created); err != nil {
		c.Log.Error("questionnaireResponseFhirClient.CreateQuestionnaireResponse error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceQuestionnaireResponse)
	}

	c.Log.Info("questionnaireResponseFhirClient.CreateQuestionnaireResponse succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, created.Subject.Reference),
	)
	return created, nil
}

func (c *questionnaireResponseFhirClient) FindQuestionnaireResponsesBySubject(ctx context.Context, patientID string) ([]fhir_dto.QuestionnaireResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	subject := fmt.Sprintf("%s/%s", constvars.ResourcePatient, patientID)
	searchUrl := fmt.Sprintf("%s?subject=%s", c.BaseUrl, url.QueryEscape(subject))
	c.Log.Info("questionnaireResponseFhirClient.FindQuestionnaireResponsesBySubject called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFhirUrlKey, searchUrl),
	)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, searchUrl, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.Client.Do(req)
	if err != nil {
		c.Log.Error("questionnaireResponseFhirClient.FindQuestionnaireResponsesBySubject error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return nil, c.fhirFailure(requestID, resp, "search")
	}

	bundle := new(fhir_dto.QuestionnaireResponseBundle)
	if err := json.NewDecoder(resp.Body).Decode(bundle); err != nil {
		c.Log.Error("questionnaireResponseFhirClient.FindQuestionnaireResponsesBySubject error decoding bundle",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceQuestionnaireResponse)
	}

	results := make([]fhir_dto.QuestionnaireResponse, 0, len(bundle.Entry))
	for _, entry := range bundle.Entry {
		results = append(results, entry.Resource)
	}

	c.Log.Info("questionnaireResponseFhirClient.FindQuestionnaireResponsesBySubject succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(results)),
	)
	return results, nil
}

// fhirFailure turns a non-2xx FHIR reply into an error, preferring the
// diagnostics of the first OperationOutcome issue when one is present.
func (c *questionnaireResponseFhirClient) fhirFailure(requestID string, resp *http.Response, operation string) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return exceptions.ErrReadBody(err)
	}

	var outcome fhir_dto.OperationOutcome
	if err := json.Unmarshal(bodyBytes, &outcome); err == nil && len(outcome.Issue) > 0 {
		fhirErrorIssue := errors.New(outcome.Issue[0].Diagnostics)
		c.Log.Error("questionnaireResponseFhirClient FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(fhirErrorIssue),
		)
		if operation == "create" {
			return exceptions.ErrCreateFHIRResource(fhirErrorIssue, constvars.ResourceQuestionnaireResponse)
		}
		return exceptions.ErrGetFHIRResource(fhirErrorIssue, constvars.ResourceQuestionnaireResponse)
	}

	statusErr := fmt.Errorf("unexpected status code during %s questionnaire response: %d", operation, resp.StatusCode)
	if operation == "create" {
		return exceptions.ErrCreateFHIRResource(statusErr, constvars.ResourceQuestionnaireResponse)
	}
	return exceptions.ErrGetFHIRResource(statusErr, constvars.ResourceQuestionnaireResponse)
}
