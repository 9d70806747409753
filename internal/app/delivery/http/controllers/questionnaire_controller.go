package controllers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"somnolink-service/internal/app/contracts"
	"somnolink-service/internal/pkg/constvars"
	"somnolink-service/internal/pkg/exceptions"
	"somnolink-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type QuestionnaireController struct {
	Log                  *zap.Logger
	QuestionnaireUsecase contracts.QuestionnaireUsecase
}

var (
	questionnaireControllerInstance *QuestionnaireController
	onceQuestionnaireController     sync.Once
)

func NewQuestionnaireController(logger *zap.Logger, questionnaireUsecase contracts.QuestionnaireUsecase) *QuestionnaireController {
	onceQuestionnaireController.Do(func() {
		questionnaireControllerInstance = &QuestionnaireController{
			Log:                  logger,
			QuestionnaireUsecase: questionnaireUsecase,
		}
	})
	return questionnaireControllerInstance
}

func (ctrl *QuestionnaireController) ListQuestionnaires(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	summaries, err := ctrl.QuestionnaireUsecase.ListQuestionnaires(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListQuestionnairesSuccessMessage, summaries)
}

func (ctrl *QuestionnaireController) FindQuestionnaire(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, constvars.URLParamQuestionnaireSlug)
	if slug == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamQuestionnaireSlug))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	questionnaire, err := ctrl.QuestionnaireUsecase.FindQuestionnaireBySlug(ctx, slug)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindQuestionnaireSuccessMessage, questionnaire)
}

func (ctrl *QuestionnaireController) UploadQuestionnaire(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	slug := chi.URLParam(r, constvars.URLParamQuestionnaireSlug)
	if slug == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamQuestionnaireSlug))
		return
	}

	ctrl.Log.Debug("Questionnaire upload started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireSlugKey, slug),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := ctrl.QuestionnaireUsecase.UploadQuestionnaire(ctx, slug)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.UploadQuestionnaireSuccessMessage, created)
}
