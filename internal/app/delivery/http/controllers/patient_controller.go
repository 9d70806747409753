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
	"somnolink-service/internal/pkg/exceptions"
	"somnolink-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PatientController struct {
	Log            *zap.Logger
	PatientUsecase contracts.PatientUsecase
}

var (
	patientControllerInstance *PatientController
	oncePatientController     sync.Once
)

func NewPatientController(logger *zap.Logger, patientUsecase contracts.PatientUsecase) *PatientController {
	oncePatientController.Do(func() {
		patientControllerInstance = &PatientController{
			Log:            logger,
			PatientUsecase: patientUsecase,
		}
	})
	return patientControllerInstance
}

// FindPatient serves the pseudonymized patient detail. A patient looking up
// their own ID gets their profile created on first touch; practitioners go
// through the consent gate inside the usecase.
func (ctrl *PatientController) FindPatient(w http.ResponseWriter, r *http.Request) {
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

	ctrl.Log.Debug("Patient lookup started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if principal.IsPatient() && principal.ID == patientID {
		if _, err := ctrl.PatientUsecase.EnsureProfile(ctx, principal.ID); err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, err)
			return
		}
	}

	patient, err := ctrl.PatientUsecase.FindPatientByID(ctx, principal, patientID)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindPatientSuccessMessage, patient)
}

// MyPractitioners lists the practitioners assigned to the authenticated
// patient regardless of consent state.
func (ctrl *PatientController) MyPractitioners(w http.ResponseWriter, r *http.Request) {
	principal, ok := r.Context().Value(constvars.CONTEXT_PRINCIPAL_KEY).(models.Principal)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.PatientUsecase.MyPractitioners(ctx, principal.ID)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListMyPractitionersSuccessMessage, result)
}
