package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_PRINCIPAL_KEY            ContextKey = "principal"
)

const (
	RolePatient      = "patient"
	RolePractitioner = "practitioner"
)

const (
	ConsentStatusGranted = "GRANTED"
	ConsentStatusRevoked = "REVOKED"
)

const (
	MongoCollectionAssignments = "assignments"
	MongoCollectionConsents    = "consents"
	MongoCollectionPatients    = "patients"
)

const (
	RedisKeyConsentPairLockFormat = "lock:consent-pair:%s:%s"
)

const (
	AuditEventConsentGranted     = "consent.granted"
	AuditEventConsentRevoked     = "consent.revoked"
	AuditEventPatientAssigned    = "assignment.created"
	AuditEventPatientUnassigned  = "assignment.deleted"
	AuditEventResponseSubmitted  = "questionnaire_response.submitted"
	PatientPseudonymPrefix       = "SL"
	PatientPseudonymMaxRetries   = 10
	PatientPseudonymRandomBucket = 100000
)
