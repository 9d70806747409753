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
	"somnolink-service/internal/pkg/dto/responses"
	"somnolink-service/internal/pkg/exceptions"
	"somnolink-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ConsentController struct {
	Log            *zap.Logger
	ConsentUsecase contracts.ConsentUsecase
}

var (
	consentControllerInstance *ConsentController
	onceConsentController     sync.Once
)

func NewConsentController(logger *zap.Logger, consentUsecase contracts.ConsentUsecase) *ConsentController {
	onceConsentController.Do(func() {
		consentControllerInstance = &ConsentController{
			Log:            logger,
			ConsentUsecase: consentUsecase,
		}
	})
	return consentControllerInstance
}

// GrantConsent lets the authenticated patient grant a practitioner access to
// their questionnaire data. Granting the same practitioner again succeeds.
func (ctrl *ConsentController) GrantConsent(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	principal, ok := r.Context().Value(constvars.CONTEXT_PRINCIPAL_KEY).(models.Principal)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	request := new(requests.ConsentAction)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctrl.Log.Debug("Consent grant started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, principal.ID),
		zap.String(constvars.LoggingPractitionerIDKey, request.PractitionerID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	consent, err := ctrl.ConsentUsecase.Grant(ctx, principal.ID, request.PractitionerID)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GrantConsentSuccessMessage, buildConsentResponse(consent))
}

// RevokeConsent lets the authenticated patient revoke a previously granted
// consent. Revoking a consent that was never granted is NotFound.
func (ctrl *ConsentController) RevokeConsent(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	principal, ok := r.Context().Value(constvars.CONTEXT_PRINCIPAL_KEY).(models.Principal)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	request := new(requests.ConsentAction)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctrl.Log.Debug("Consent revoke started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, principal.ID),
		zap.String(constvars.LoggingPractitionerIDKey, request.PractitionerID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	consent, err := ctrl.ConsentUsecase.Revoke(ctx, principal.ID, request.PractitionerID)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RevokeConsentSuccessMessage, buildConsentResponse(consent))
}

// ListMyConsents returns every consent record of the authenticated patient,
// whatever its current status.
func (ctrl *ConsentController) ListMyConsents(w http.ResponseWriter, r *http.Request) {
	principal, ok := r.Context().Value(constvars.CONTEXT_PRINCIPAL_KEY).(models.Principal)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	consents, err := ctrl.ConsentUsecase.ListConsentsByPatient(ctx, principal.ID)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result := make([]responses.Consent, 0, len(consents))
	for i := range consents {
		result = append(result, *buildConsentResponse(&consents[i]))
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListConsentsSuccessMessage, result)
}

// AssignPatient records a care relationship between the authenticated
// practitioner and the given patient.
func (ctrl *ConsentController) AssignPatient(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	principal, ok := r.Context().Value(constvars.CONTEXT_PRINCIPAL_KEY).(models.Principal)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	request := new(requests.AssignPatient)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctrl.Log.Debug("Patient assignment started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, principal.ID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	assignment, created, err := ctrl.ConsentUsecase.Assign(ctx, principal.ID, request.PatientID)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AssignPatientSuccessMessage, responses.AssignPatient{
		Assigned:       true,
		Created:        created,
		PractitionerID: assignment.PractitionerID,
		PatientID:      assignment.PatientID,
	})
}

// UnassignPatient removes the care relationship. Consent records are left in
// place so a later re-assignment does not require the patient to grant again.
func (ctrl *ConsentController) UnassignPatient(w http.ResponseWriter, r *http.Request) {
	principal, ok := r.Context().Value(constvars.CONTEXT_PRINCIPAL_KEY).(models.Principal)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	request := new(requests.UnassignPatient)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	deleted, err := ctrl.ConsentUsecase.Unassign(ctx, principal.ID, request.PatientID)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UnassignPatientSuccessMessage, responses.UnassignPatient{
		Deleted:   deleted,
		PatientID: request.PatientID,
	})
}

// ListAuthorizedPatients returns the patients the authenticated practitioner
// may currently access: assigned AND consented.
func (ctrl *ConsentController) ListAuthorizedPatients(w http.ResponseWriter, r *http.Request) {
	principal, ok := r.Context().Value(constvars.CONTEXT_PRINCIPAL_KEY).(models.Principal)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	patientIDs, err := ctrl.ConsentUsecase.ListAuthorizedPatients(ctx, principal.ID)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListAuthorizedPatientsSuccessMessage, responses.AuthorizedPatients{
		PractitionerID: principal.ID,
		PatientIDs:     patientIDs,
	})
}

func buildConsentResponse(consent *models.Consent) *responses.Consent {
	return &responses.Consent{
		PatientID:      consent.PatientID,
		PractitionerID: consent.PractitionerID,
		Status:         consent.Status,
		GrantedAt:      consent.GrantedAt,
		RevokedAt:      consent.RevokedAt,
		UpdatedAt:      consent.UpdatedAt,
	}
}
