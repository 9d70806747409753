package consents

import (
	"context"
	"testing"
	"time"

	"somnolink-service/internal/app/models"
	"somnolink-service/internal/pkg/constvars"
	"somnolink-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAssignmentRepository struct {
	assignments map[string]*models.Assignment
}

func newFakeAssignmentRepository() *fakeAssignmentRepository {
	return &fakeAssignmentRepository{assignments: make(map[string]*models.Assignment)}
}

func pairKey(practitionerID, patientID string) string {
	return practitionerID + "|" + patientID
}

func (r *fakeAssignmentRepository) FindByPair(_ context.Context, practitionerID, patientID string) (*models.Assignment, error) {
	return r.assignments[pairKey(practitionerID, patientID)], nil
}

func (r *fakeAssignmentRepository) Insert(_ context.Context, assignment *models.Assignment) (*models.Assignment, error) {
	assignment.ID = pairKey(assignment.PractitionerID, assignment.PatientID)
	r.assignments[assignment.ID] = assignment
	return assignment, nil
}

func (r *fakeAssignmentRepository) DeleteByPair(_ context.Context, practitionerID, patientID string) (bool, error) {
	key := pairKey(practitionerID, patientID)
	if _, ok := r.assignments[key]; !ok {
		return false, nil
	}
	delete(r.assignments, key)
	return true, nil
}

func (r *fakeAssignmentRepository) ListPatientIDsByPractitioner(_ context.Context, practitionerID string) ([]string, error) {
	var ids []string
	for _, a := range r.assignments {
		if a.PractitionerID == practitionerID {
			ids = append(ids, a.PatientID)
		}
	}
	return ids, nil
}

func (r *fakeAssignmentRepository) ListPractitionerIDsByPatient(_ context.Context, patientID string) ([]string, error) {
	var ids []string
	for _, a := range r.assignments {
		if a.PatientID == patientID {
			ids = append(ids, a.PractitionerID)
		}
	}
	return ids, nil
}

type fakeConsentRepository struct {
	consents map[string]*models.Consent
}

func newFakeConsentRepository() *fakeConsentRepository {
	return &fakeConsentRepository{consents: make(map[string]*models.Consent)}
}

func (r *fakeConsentRepository) FindByPair(_ context.Context, patientID, practitionerID string) (*models.Consent, error) {
	return r.consents[pairKey(practitionerID, patientID)], nil
}

func (r *fakeConsentRepository) Grant(_ context.Context, patientID, practitionerID string) (*models.Consent, error) {
	key := pairKey(practitionerID, patientID)
	now := time.Now()
	consent, ok := r.consents[key]
	if !ok {
		consent = &models.Consent{
			ID:             key,
			PatientID:      patientID,
			PractitionerID: practitionerID,
			CreatedAt:      now,
		}
		r.consents[key] = consent
	}
	consent.Status = constvars.ConsentStatusGranted
	consent.GrantedAt = &now
	consent.RevokedAt = nil
	consent.UpdatedAt = now
	return consent, nil
}

func (r *fakeConsentRepository) Revoke(_ context.Context, patientID, practitionerID string) (*models.Consent, error) {
	consent, ok := r.consents[pairKey(practitionerID, patientID)]
	if !ok {
		return nil, nil
	}
	now := time.Now()
	consent.Status = constvars.ConsentStatusRevoked
	consent.RevokedAt = &now
	consent.UpdatedAt = now
	return consent, nil
}

func (r *fakeConsentRepository) ListByPatient(_ context.Context, patientID string) ([]models.Consent, error) {
	var result []models.Consent
	for _, c := range r.consents {
		if c.PatientID == patientID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (r *fakeConsentRepository) ListGrantedPatientIDsByPractitioner(_ context.Context, practitionerID string) ([]string, error) {
	var ids []string
	for _, c := range r.consents {
		if c.PractitionerID == practitionerID && c.Status == constvars.ConsentStatusGranted {
			ids = append(ids, c.PatientID)
		}
	}
	return ids, nil
}

type fakePatientRepository struct {
	patients map[string]*models.Patient
}

func newFakePatientRepository(userIDs ...string) *fakePatientRepository {
	repo := &fakePatientRepository{patients: make(map[string]*models.Patient)}
	for _, id := range userIDs {
		repo.patients[id] = &models.Patient{ID: id, UserID: id, Pseudonym: "SL-00001"}
	}
	return repo
}

func (r *fakePatientRepository) FindByUserID(_ context.Context, userID string) (*models.Patient, error) {
	return r.patients[userID], nil
}

func (r *fakePatientRepository) PseudonymExists(_ context.Context, pseudonym string) (bool, error) {
	for _, p := range r.patients {
		if p.Pseudonym == pseudonym {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePatientRepository) Insert(_ context.Context, patient *models.Patient) (*models.Patient, error) {
	r.patients[patient.UserID] = patient
	return patient, nil
}

type fakeLockerService struct {
	lockCount   int
	unlockCount int
}

func (l *fakeLockerService) TryLock(_ context.Context, _ string, _ time.Duration) (bool, string, error) {
	l.lockCount++
	return true, "lock-value", nil
}

func (l *fakeLockerService) Unlock(_ context.Context, _, _ string) error {
	l.unlockCount++
	return nil
}

type fakeAuditPublisher struct {
	events []*models.AuditEvent
}

func (p *fakeAuditPublisher) Publish(_ context.Context, event *models.AuditEvent) error {
	p.events = append(p.events, event)
	return nil
}

type consentFixture struct {
	usecase        *consentUsecase
	assignmentRepo *fakeAssignmentRepository
	consentRepo    *fakeConsentRepository
	patientRepo    *fakePatientRepository
	locker         *fakeLockerService
	auditPublisher *fakeAuditPublisher
}

func newConsentFixture(patientUserIDs ...string) *consentFixture {
	assignmentRepo := newFakeAssignmentRepository()
	consentRepo := newFakeConsentRepository()
	patientRepo := newFakePatientRepository(patientUserIDs...)
	locker := &fakeLockerService{}
	auditPublisher := &fakeAuditPublisher{}
	usecase := NewConsentUsecase(assignmentRepo, consentRepo, patientRepo, locker, auditPublisher, zap.NewNop()).(*consentUsecase)
	return &consentFixture{
		usecase:        usecase,
		assignmentRepo: assignmentRepo,
		consentRepo:    consentRepo,
		patientRepo:    patientRepo,
		locker:         locker,
		auditPublisher: auditPublisher,
	}
}

func TestConsentUsecase_AssignIsIdempotent(t *testing.T) {
	fx := newConsentFixture("patient-1")
	ctx := context.Background()

	first, created, err := fx.usecase.Assign(ctx, "pract-1", "patient-1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, created)

	second, created, err := fx.usecase.Assign(ctx, "pract-1", "patient-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestConsentUsecase_AssignRejectsNonPatientTarget(t *testing.T) {
	fx := newConsentFixture()
	ctx := context.Background()

	_, _, err := fx.usecase.Assign(ctx, "pract-1", "not-a-patient")
	require.Error(t, err)
	assert.True(t, exceptions.IsStatus(err, constvars.StatusBadRequest))
}

func TestConsentUsecase_UnassignLeavesConsentIntact(t *testing.T) {
	fx := newConsentFixture("patient-1")
	ctx := context.Background()

	_, _, err := fx.usecase.Assign(ctx, "pract-1", "patient-1")
	require.NoError(t, err)
	_, err = fx.usecase.Grant(ctx, "patient-1", "pract-1")
	require.NoError(t, err)

	deleted, err := fx.usecase.Unassign(ctx, "pract-1", "patient-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	consent, err := fx.consentRepo.FindByPair(ctx, "patient-1", "pract-1")
	require.NoError(t, err)
	require.NotNil(t, consent)
	assert.Equal(t, constvars.ConsentStatusGranted, consent.Status)

	// the dangling consent no longer authorizes anything
	authorized, err := fx.usecase.Authorize(ctx, "pract-1", "patient-1")
	require.NoError(t, err)
	assert.False(t, authorized)
}

func TestConsentUsecase_UnassignMissingPairReportsNotDeleted(t *testing.T) {
	fx := newConsentFixture("patient-1")

	deleted, err := fx.usecase.Unassign(context.Background(), "pract-1", "patient-1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestConsentUsecase_GrantCreatesAndRegrantSucceeds(t *testing.T) {
	fx := newConsentFixture("patient-1")
	ctx := context.Background()

	consent, err := fx.usecase.Grant(ctx, "patient-1", "pract-1")
	require.NoError(t, err)
	assert.Equal(t, constvars.ConsentStatusGranted, consent.Status)
	require.NotNil(t, consent.GrantedAt)

	again, err := fx.usecase.Grant(ctx, "patient-1", "pract-1")
	require.NoError(t, err)
	assert.Equal(t, constvars.ConsentStatusGranted, again.Status)
}

func TestConsentUsecase_RevokeWithoutPriorGrantIsNotFound(t *testing.T) {
	fx := newConsentFixture("patient-1")

	_, err := fx.usecase.Revoke(context.Background(), "patient-1", "pract-1")
	require.Error(t, err)
	assert.True(t, exceptions.IsStatus(err, constvars.StatusNotFound))
}

func TestConsentUsecase_RevokeThenRegrant(t *testing.T) {
	fx := newConsentFixture("patient-1")
	ctx := context.Background()

	_, err := fx.usecase.Grant(ctx, "patient-1", "pract-1")
	require.NoError(t, err)

	revoked, err := fx.usecase.Revoke(ctx, "patient-1", "pract-1")
	require.NoError(t, err)
	assert.Equal(t, constvars.ConsentStatusRevoked, revoked.Status)
	require.NotNil(t, revoked.RevokedAt)

	regranted, err := fx.usecase.Grant(ctx, "patient-1", "pract-1")
	require.NoError(t, err)
	assert.Equal(t, constvars.ConsentStatusGranted, regranted.Status)
	assert.Nil(t, regranted.RevokedAt)
}

func TestConsentUsecase_AuthorizeRequiresBothRelations(t *testing.T) {
	fx := newConsentFixture("patient-1")
	ctx := context.Background()

	// neither relation
	authorized, err := fx.usecase.Authorize(ctx, "pract-1", "patient-1")
	require.NoError(t, err)
	assert.False(t, authorized)

	// assignment only
	_, _, err = fx.usecase.Assign(ctx, "pract-1", "patient-1")
	require.NoError(t, err)
	authorized, err = fx.usecase.Authorize(ctx, "pract-1", "patient-1")
	require.NoError(t, err)
	assert.False(t, authorized)

	// assignment plus grant
	_, err = fx.usecase.Grant(ctx, "patient-1", "pract-1")
	require.NoError(t, err)
	authorized, err = fx.usecase.Authorize(ctx, "pract-1", "patient-1")
	require.NoError(t, err)
	assert.True(t, authorized)

	// revoked grant flips it back
	_, err = fx.usecase.Revoke(ctx, "patient-1", "pract-1")
	require.NoError(t, err)
	authorized, err = fx.usecase.Authorize(ctx, "pract-1", "patient-1")
	require.NoError(t, err)
	assert.False(t, authorized)
}

func TestConsentUsecase_AuthorizeIgnoresOtherPairs(t *testing.T) {
	fx := newConsentFixture("patient-1", "patient-2")
	ctx := context.Background()

	_, _, err := fx.usecase.Assign(ctx, "pract-1", "patient-1")
	require.NoError(t, err)
	_, err = fx.usecase.Grant(ctx, "patient-2", "pract-1")
	require.NoError(t, err)

	// patient-1 is assigned but never granted; patient-2 granted but never assigned
	authorized, err := fx.usecase.Authorize(ctx, "pract-1", "patient-1")
	require.NoError(t, err)
	assert.False(t, authorized)

	authorized, err = fx.usecase.Authorize(ctx, "pract-1", "patient-2")
	require.NoError(t, err)
	assert.False(t, authorized)
}

func TestConsentUsecase_ListAuthorizedPatientsIntersects(t *testing.T) {
	fx := newConsentFixture("patient-1", "patient-2", "patient-3")
	ctx := context.Background()

	for _, patientID := range []string{"patient-1", "patient-2"} {
		_, _, err := fx.usecase.Assign(ctx, "pract-1", patientID)
		require.NoError(t, err)
	}
	for _, patientID := range []string{"patient-2", "patient-3"} {
		_, err := fx.usecase.Grant(ctx, patientID, "pract-1")
		require.NoError(t, err)
	}

	authorized, err := fx.usecase.ListAuthorizedPatients(ctx, "pract-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"patient-2"}, authorized)
}

func TestConsentUsecase_MutationsPublishAuditEvents(t *testing.T) {
	fx := newConsentFixture("patient-1")
	ctx := context.Background()

	_, _, err := fx.usecase.Assign(ctx, "pract-1", "patient-1")
	require.NoError(t, err)
	_, err = fx.usecase.Grant(ctx, "patient-1", "pract-1")
	require.NoError(t, err)
	_, err = fx.usecase.Revoke(ctx, "patient-1", "pract-1")
	require.NoError(t, err)
	_, err = fx.usecase.Unassign(ctx, "pract-1", "patient-1")
	require.NoError(t, err)

	require.Len(t, fx.auditPublisher.events, 4)
	assert.Equal(t, constvars.AuditEventPatientAssigned, fx.auditPublisher.events[0].Event)
	assert.Equal(t, constvars.AuditEventConsentGranted, fx.auditPublisher.events[1].Event)
	assert.Equal(t, constvars.AuditEventConsentRevoked, fx.auditPublisher.events[2].Event)
	assert.Equal(t, constvars.AuditEventPatientUnassigned, fx.auditPublisher.events[3].Event)
}

func TestConsentUsecase_MutationsReleaseTheirLocks(t *testing.T) {
	fx := newConsentFixture("patient-1")
	ctx := context.Background()

	_, _, err := fx.usecase.Assign(ctx, "pract-1", "patient-1")
	require.NoError(t, err)
	_, err = fx.usecase.Grant(ctx, "patient-1", "pract-1")
	require.NoError(t, err)
	_, err = fx.usecase.Revoke(ctx, "patient-1", "pract-1")
	require.NoError(t, err)

	assert.Equal(t, fx.locker.lockCount, fx.locker.unlockCount)
	assert.Equal(t, 3, fx.locker.lockCount)
}
