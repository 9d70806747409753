package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingPatientIDKey          = "patient_id"
	LoggingPractitionerIDKey     = "practitioner_id"
	LoggingQuestionnaireSlugKey  = "questionnaire_slug"
	LoggingConsentStatusKey      = "consent_status"
	LoggingFhirUrlKey            = "fhir_url"
	LoggingResponseCountKey      = "response_count"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingAuditEventKey         = "audit_event"
)
