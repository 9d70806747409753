package patients

import (
	"context"
	"fmt"
	"time"

	"somnolink-service/internal/app/contracts"
	"somnolink-service/internal/app/models"
	"somnolink-service/internal/pkg/constvars"
	"somnolink-service/internal/pkg/dto/responses"
	"somnolink-service/internal/pkg/exceptions"
	"somnolink-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type patientUsecase struct {
	PatientRepository    contracts.PatientRepository
	AssignmentRepository contracts.AssignmentRepository
	ConsentUsecase       contracts.ConsentUsecase
	Log                  *zap.Logger
}

func NewPatientUsecase(
	patientRepository contracts.PatientRepository,
	assignmentRepository contracts.AssignmentRepository,
	consentUsecase contracts.ConsentUsecase,
	logger *zap.Logger,
) contracts.PatientUsecase {
	return &patientUsecase{
		PatientRepository:    patientRepository,
		AssignmentRepository: assignmentRepository,
		ConsentUsecase:       consentUsecase,
		Log:                  logger,
	}
}

// EnsureProfile returns the patient profile for a user, creating it with a
// fresh pseudonym on first touch. A collision on the random pseudonym is
// retried a bounded number of times.
func (uc *patientUsecase) EnsureProfile(ctx context.Context, userID string) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	existing, err := uc.PatientRepository.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	for attempt := 0; attempt < constvars.PatientPseudonymMaxRetries; attempt++ {
		pseudonym, err := utils.GeneratePseudonym(constvars.PatientPseudonymPrefix, constvars.PatientPseudonymRandomBucket)
		if err != nil {
			return nil, exceptions.ErrPseudonymExhausted(err)
		}

		taken, err := uc.PatientRepository.PseudonymExists(ctx, pseudonym)
		if err != nil {
			return nil, err
		}
		if taken {
			continue
		}

		patient, err := uc.PatientRepository.Insert(ctx, &models.Patient{
			UserID:    userID,
			Pseudonym: pseudonym,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return nil, err
		}

		uc.Log.Info("patientUsecase.EnsureProfile created profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, userID),
		)
		return patient, nil
	}

	return nil, exceptions.ErrPseudonymExhausted(fmt.Errorf("no free pseudonym after %d attempts", constvars.PatientPseudonymMaxRetries))
}

// FindPatientByID only reveals the pseudonymized profile. Practitioners must
// hold an active assignment and a granted consent; patients only ever see
// their own record.
func (uc *patientUsecase) FindPatientByID(ctx context.Context, requester models.Principal, patientID string) (*responses.Patient, error) {
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

	patient, err := uc.PatientRepository.FindByUserID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(patientID)
	}

	return &responses.Patient{
		ID:        patient.UserID,
		Pseudonym: patient.Pseudonym,
	}, nil
}

// MyPractitioners lists the practitioners currently assigned to the patient,
// whatever the consent state, so the patient knows who could request access.
func (uc *patientUsecase) MyPractitioners(ctx context.Context, patientID string) (*responses.MyPractitioners, error) {
	practitionerIDs, err := uc.AssignmentRepository.ListPractitionerIDsByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return &responses.MyPractitioners{
		PatientID:       patientID,
		PractitionerIDs: practitionerIDs,
	}, nil
}
