package contracts

import (
	"context"

	"somnolink-service/internal/app/models"
	"somnolink-service/internal/pkg/dto/responses"
)

type PatientUsecase interface {
	// EnsureProfile lazily creates the pseudonymized profile for a patient
	// principal on first touch.
	EnsureProfile(ctx context.Context, userID string) (*models.Patient, error)
	// FindPatientByID is authorize-gated: practitioners only see patients
	// they are assigned to and consented by; patients only see themselves.
	FindPatientByID(ctx context.Context, requester models.Principal, patientID string) (*responses.Patient, error)
	MyPractitioners(ctx context.Context, patientID string) (*responses.MyPractitioners, error)
}

type PatientRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.Patient, error)
	PseudonymExists(ctx context.Context, pseudonym string) (bool, error)
	Insert(ctx context.Context, patient *models.Patient) (*models.Patient, error)
}
