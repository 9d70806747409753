package consents

import (
	"context"
	"fmt"
	"time"

	"somnolink-service/internal/app/contracts"
	"somnolink-service/internal/app/models"
	"somnolink-service/internal/pkg/constvars"
	"somnolink-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

const (
	pairLockExpiration = 5 * time.Second
	pairLockRetryDelay = 25 * time.Millisecond
)

type consentUsecase struct {
	AssignmentRepository contracts.AssignmentRepository
	ConsentRepository    contracts.ConsentRepository
	PatientRepository    contracts.PatientRepository
	LockerService        contracts.LockerService
	AuditPublisher       contracts.AuditPublisher
	Log                  *zap.Logger
}

func NewConsentUsecase(
	assignmentRepository contracts.AssignmentRepository,
	consentRepository contracts.ConsentRepository,
	patientRepository contracts.PatientRepository,
	lockerService contracts.LockerService,
	auditPublisher contracts.AuditPublisher,
	logger *zap.Logger,
) contracts.ConsentUsecase {
	return &consentUsecase{
		AssignmentRepository: assignmentRepository,
		ConsentRepository:    consentRepository,
		PatientRepository:    patientRepository,
		LockerService:        lockerService,
		AuditPublisher:       auditPublisher,
		Log:                  logger,
	}
}

// Assign records the care relationship. Idempotent: assigning an already
// assigned pair returns the existing record with created=false.
func (uc *consentUsecase) Assign(ctx context.Context, practitionerID, patientID string) (*models.Assignment, bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	patient, err := uc.PatientRepository.FindByUserID(ctx, patientID)
	if err != nil {
		return nil, false, err
	}
	if patient == nil {
		return nil, false, exceptions.ErrRoleNotPatient(fmt.Errorf("user %s has no patient profile", patientID))
	}

	lockValue, err := uc.acquirePairLock(ctx, patientID, practitionerID)
	if err != nil {
		return nil, false, err
	}
	defer uc.releasePairLock(ctx, patientID, practitionerID, lockValue)

	existing, err := uc.AssignmentRepository.FindByPair(ctx, practitionerID, patientID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	assignment, err := uc.AssignmentRepository.Insert(ctx, &models.Assignment{
		PractitionerID: practitionerID,
		PatientID:      patientID,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		return nil, false, err
	}

	uc.Log.Info("consentUsecase.Assign created assignment",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	uc.publishAudit(ctx, constvars.AuditEventPatientAssigned, patientID, practitionerID)

	return assignment, true, nil
}

// Unassign removes the care relationship. It deliberately leaves any consent
// record untouched: a dangling GRANTED consent is inert because authorization
// also requires an active assignment.
func (uc *consentUsecase) Unassign(ctx context.Context, practitionerID, patientID string) (bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	lockValue, err := uc.acquirePairLock(ctx, patientID, practitionerID)
	if err != nil {
		return false, err
	}
	defer uc.releasePairLock(ctx, patientID, practitionerID, lockValue)

	deleted, err := uc.AssignmentRepository.DeleteByPair(ctx, practitionerID, patientID)
	if err != nil {
		return false, err
	}

	if deleted {
		uc.Log.Info("consentUsecase.Unassign deleted assignment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
		)
		uc.publishAudit(ctx, constvars.AuditEventPatientUnassigned, patientID, practitionerID)
	}

	return deleted, nil
}

// Grant transitions the pair's consent to GRANTED, creating the record on
// first grant. Re-granting always succeeds and only moves timestamps.
func (uc *consentUsecase) Grant(ctx context.Context, patientID, practitionerID string) (*models.Consent, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	lockValue, err := uc.acquirePairLock(ctx, patientID, practitionerID)
	if err != nil {
		return nil, err
	}
	defer uc.releasePairLock(ctx, patientID, practitionerID, lockValue)

	consent, err := uc.ConsentRepository.Grant(ctx, patientID, practitionerID)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("consentUsecase.Grant transitioned consent",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
		zap.String(constvars.LoggingConsentStatusKey, consent.Status),
	)
	uc.publishAudit(ctx, constvars.AuditEventConsentGranted, patientID, practitionerID)

	return consent, nil
}

// Revoke transitions an existing consent to REVOKED. Unlike Grant it never
// creates the record: revoking a consent that was never granted is NotFound.
func (uc *consentUsecase) Revoke(ctx context.Context, patientID, practitionerID string) (*models.Consent, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	lockValue, err := uc.acquirePairLock(ctx, patientID, practitionerID)
	if err != nil {
		return nil, err
	}
	defer uc.releasePairLock(ctx, patientID, practitionerID, lockValue)

	consent, err := uc.ConsentRepository.Revoke(ctx, patientID, practitionerID)
	if err != nil {
		return nil, err
	}
	if consent == nil {
		return nil, exceptions.ErrConsentNotFound(patientID, practitionerID)
	}

	uc.Log.Info("consentUsecase.Revoke transitioned consent",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
		zap.String(constvars.LoggingConsentStatusKey, consent.Status),
	)
	uc.publishAudit(ctx, constvars.AuditEventConsentRevoked, patientID, practitionerID)

	return consent, nil
}

// Authorize answers "may this practitioner view this patient's data right
// now". Both an active assignment and a GRANTED consent are required; absence
// of either is an ordinary false, never an error.
func (uc *consentUsecase) Authorize(ctx context.Context, practitionerID, patientID string) (bool, error) {
	assignment, err := uc.AssignmentRepository.FindByPair(ctx, practitionerID, patientID)
	if err != nil {
		return false, err
	}
	if assignment == nil {
		return false, nil
	}

	consent, err := uc.ConsentRepository.FindByPair(ctx, patientID, practitionerID)
	if err != nil {
		return false, err
	}
	if consent == nil || consent.Status != constvars.ConsentStatusGranted {
		return false, nil
	}

	return true, nil
}

// ListAuthorizedPatients intersects the practitioner's assigned patients with
// the patients that currently grant them consent.
func (uc *consentUsecase) ListAuthorizedPatients(ctx context.Context, practitionerID string) ([]string, error) {
	assignedIDs, err := uc.AssignmentRepository.ListPatientIDsByPractitioner(ctx, practitionerID)
	if err != nil {
		return nil, err
	}

	grantedIDs, err := uc.ConsentRepository.ListGrantedPatientIDsByPractitioner(ctx, practitionerID)
	if err != nil {
		return nil, err
	}

	granted := make(map[string]bool, len(grantedIDs))
	for _, id := range grantedIDs {
		granted[id] = true
	}

	authorized := make([]string, 0, len(assignedIDs))
	for _, id := range assignedIDs {
		if granted[id] {
			authorized = append(authorized, id)
		}
	}
	return authorized, nil
}

func (uc *consentUsecase) ListConsentsByPatient(ctx context.Context, patientID string) ([]models.Consent, error) {
	return uc.ConsentRepository.ListByPatient(ctx, patientID)
}

// acquirePairLock serializes every mutation on one (patient, practitioner)
// pair behind a single-writer section, retrying until the request context
// gives up.
func (uc *consentUsecase) acquirePairLock(ctx context.Context, patientID, practitionerID string) (string, error) {
	key := fmt.Sprintf(constvars.RedisKeyConsentPairLockFormat, patientID, practitionerID)
	for {
		acquired, lockValue, err := uc.LockerService.TryLock(ctx, key, pairLockExpiration)
		if err != nil {
			return "", err
		}
		if acquired {
			return lockValue, nil
		}

		select {
		case <-ctx.Done():
			return "", exceptions.ErrLockNotAcquired(ctx.Err())
		case <-time.After(pairLockRetryDelay):
		}
	}
}

func (uc *consentUsecase) releasePairLock(ctx context.Context, patientID, practitionerID, lockValue string) {
	key := fmt.Sprintf(constvars.RedisKeyConsentPairLockFormat, patientID, practitionerID)
	if err := uc.LockerService.Unlock(ctx, key, lockValue); err != nil {
		uc.Log.Warn("consentUsecase failed to release pair lock",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
}

// publishAudit is fire-and-forget; an unreachable broker must never block or
// fail a consent transition.
func (uc *consentUsecase) publishAudit(ctx context.Context, event, patientID, practitionerID string) {
	err := uc.AuditPublisher.Publish(ctx, &models.AuditEvent{
		Event:          event,
		PatientID:      patientID,
		PractitionerID: practitionerID,
		OccurredAt:     time.Now(),
	})
	if err != nil {
		uc.Log.Warn("consentUsecase failed to publish audit event",
			zap.String(constvars.LoggingAuditEventKey, event),
			zap.Error(err),
		)
	}
}
