package controllers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"somnolink-service/internal/app/contracts"
	"somnolink-service/internal/app/models"
	"somnolink-service/internal/pkg/constvars"
	"somnolink-service/internal/pkg/dto/requests"
	"somnolink-service/internal/pkg/exceptions"
	"somnolink-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type QuestionnaireResponseController struct {
	Log                          *zap.Logger
	QuestionnaireResponseUsecase contracts.QuestionnaireResponseUsecase
}

var (
	questionnaireResponseControllerInstance *QuestionnaireResponseController
	onceQuestionnaireResponseController     sync.Once
)

func NewQuestionnaireResponseController(logger *zap.Logger, usecase contracts.QuestionnaireResponseUsecase) *QuestionnaireResponseController {
	onceQuestionnaireResponseController.Do(func() {
		questionnaireResponseControllerInstance = &QuestionnaireResponseController{
			Log:                          logger,
			QuestionnaireResponseUsecase: usecase,
		}
	})
	return questionnaireResponseControllerInstance
}

// SubmitQuestionnaireResponse accepts a raw answer payload for the slugged
// questionnaire, scores it and stores the completed envelope.
func (ctrl *QuestionnaireResponseController) SubmitQuestionnaireResponse(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	slug := chi.URLParam(r, constvars.URLParamQuestionnaireSlug)
	if slug == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamQuestionnaireSlug))
		return
	}

	request := new(requests.SubmitQuestionnaireResponse)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctrl.Log.Debug("Questionnaire response submission started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireSlugKey, slug),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.QuestionnaireResponseUsecase.Submit(ctx, slug, request)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SubmitQuestionnaireResponseSuccessMessage, result)
}

// ListQuestionnaireResponses returns the patient's stored responses with
// freshly derived scores. Practitioners pass through the consent gate.
func (ctrl *QuestionnaireResponseController) ListQuestionnaireResponses(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	principal, ok := r.Context().Value(constvars.CONTEXT_PRINCIPAL_KEY).(models.Principal)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	patientID := chi.URLParam(r, constvars.URLParamPatientID)
	if patientID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamPatientID))
		return
	}

	ctrl.Log.Debug("Questionnaire response listing started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.QuestionnaireResponseUsecase.ListByPatient(ctx, principal, patientID)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListQuestionnaireResponsesSuccessMessage, result)
}
