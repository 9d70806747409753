package contracts

import (
	"context"

	"somnolink-service/internal/app/models"
)

// ConsentUsecase is the consent policy engine. Authorization requires both an
// active assignment and a GRANTED consent for the same pair; either one alone
// never suffices.
type ConsentUsecase interface {
	Assign(ctx context.Context, practitionerID, patientID string) (*models.Assignment, bool, error)
	Unassign(ctx context.Context, practitionerID, patientID string) (bool, error)
	Grant(ctx context.Context, patientID, practitionerID string) (*models.Consent, error)
	Revoke(ctx context.Context, patientID, practitionerID string) (*models.Consent, error)
	Authorize(ctx context.Context, practitionerID, patientID string) (bool, error)
	ListAuthorizedPatients(ctx context.Context, practitionerID string) ([]string, error)
	ListConsentsByPatient(ctx context.Context, patientID string) ([]models.Consent, error)
}

type AssignmentRepository interface {
	FindByPair(ctx context.Context, practitionerID, patientID string) (*models.Assignment, error)
	Insert(ctx context.Context, assignment *models.Assignment) (*models.Assignment, error)
	DeleteByPair(ctx context.Context, practitionerID, patientID string) (bool, error)
	ListPatientIDsByPractitioner(ctx context.Context, practitionerID string) ([]string, error)
	ListPractitionerIDsByPatient(ctx context.Context, patientID string) ([]string, error)
}

type ConsentRepository interface {
	FindByPair(ctx context.Context, patientID, practitionerID string) (*models.Consent, error)
	// Grant atomically upserts the pair's record into GRANTED state.
	Grant(ctx context.Context, patientID, practitionerID string) (*models.Consent, error)
	// Revoke atomically transitions an existing record to REVOKED; returns
	// nil when no record exists for the pair.
	Revoke(ctx context.Context, patientID, practitionerID string) (*models.Consent, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Consent, error)
	ListGrantedPatientIDsByPractitioner(ctx context.Context, practitionerID string) ([]string, error)
}
