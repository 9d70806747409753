package questionnaires

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
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
	questionnaireFhirClientInstance contracts.QuestionnaireFhirClient
	onceQuestionnaireFhirClient     sync.Once
)

type questionnaireFhirClient struct {
	BaseUrl string
	Client  *http.Client
	Log     *zap.Logger
}

func NewQuestionnaireFhirClient(baseUrl string, timeout time.Duration, logger *zap.Logger) contracts.QuestionnaireFhirClient {
	onceQuestionnaireFhirClient.Do(func() {
		questionnaireFhirClientInstance = &questionnaireFhirClient{
			BaseUrl: baseUrl + constvars.ResourceQuestionnaire,
			Client:  &http.Client{Timeout: timeout},
			Log:     logger,
		}
	})
	return questionnaireFhirClientInstance
}

func (c *questionnaireFhirClient) CreateQuestionnaire(ctx context.Context, questionnaire *fhir_dto.Questionnaire) (*fhir_dto.Questionnaire, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("questionnaireFhirClient.CreateQuestionnaire called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFhirUrlKey, c.BaseUrl),
	)

	payload, err := json.Marshal(questionnaire)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl, bytes.NewReader(payload))
	if err != nil {
		c.Log.Error("questionnaireFhirClient.CreateQuestionnaire error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.Client.Do(req)
	if err != nil {
		c.Log.Error("questionnaireFhirClient.CreateQuestionnaire error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK && resp.StatusCode != constvars.StatusCreated {
		bodyBytes, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, exceptions.ErrReadBody(readErr)
		}

		var outcome fhir_dto.OperationOutcome
		if unmarshalErr := json.Unmarshal(bodyBytes, &outcome); unmarshalErr == nil && len(outcome.Issue) > 0 {
			fhirErrorIssue := errors.New(outcome.Issue[0].Diagnostics)
			c.Log.Error("questionnaireFhirClient.CreateQuestionnaire FHIR error",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(fhirErrorIssue),
			)
			return nil, exceptions.ErrCreateFHIRResource(fhirErrorIssue, constvars.ResourceQuestionnaire)
		}

		return nil, exceptions.ErrCreateFHIRResource(fmt.Errorf("unexpected status code during create questionnaire: %d", resp.StatusCode), constvars.ResourceQuestionnaire)
	}

	created := new(fhir_dto.Questionnaire)
	if err := json.NewDecoder(resp.Body).Decode(created); err != nil {
		c.Log.Error("questionnaireFhirClient.CreateQuestionnaire error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceQuestionnaire)
	}

	c.Log.Info("questionnaireFhirClient.CreateQuestionnaire succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireSlugKey, created.Name),
	)
	return created, nil
}
