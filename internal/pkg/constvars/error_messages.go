package constvars

// Client messages are safe to render to end users; dev messages carry the
// detail that ends up in logs and non-production responses.
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientQuestionnaireNotFound         = "questionnaire not found"
	ErrClientConsentNotFound               = "no consent record exists for this practitioner"
	ErrClientPatientNotFound               = "patient not found"
	ErrClientUserIsNotPatient              = "the selected user is not a patient"
	ErrClientMissingSubmissionFields       = "patient_id and response items are required"
)

const (
	ErrDevInvalidInput              = "invalid input"
	ErrDevValidationFailed          = "request validation failed"
	ErrDevCannotParseJSON           = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON         = "cannot convert struct or other data types to JSON"
	ErrDevCreateHTTPRequest         = "failed to create HTTP request"
	ErrDevSendHTTPRequest           = "failed to send HTTP request"
	ErrDevReadResponseBody          = "failed to read HTTP response body"
	ErrDevServerDeadlineExceeded    = "operation exceeded its deadline"
	ErrDevURLParamValidationFailed  = "URL param %s validation failed"
	ErrDevAuthTokenMissing          = "authorization token is missing"
	ErrDevAuthTokenInvalidOrExpired = "authorization token is invalid or expired"
	ErrDevRoleTypeDoesntMatch       = "request done by user with different role type"
	ErrDevRoleNotPatient            = "target user does not hold the patient role"
)

const (
	ErrDevDBFailedToFindDocument    = "failed to find document in database"
	ErrDevDBFailedToInsertDocument  = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument  = "failed to update document in database"
	ErrDevDBFailedToDeleteDocument  = "failed to delete document from database"
	ErrDevDBFailedToIterateDocument = "failed to iterate documents from database"
)

const (
	ErrDevRedisGetData       = "failed to get data from redis"
	ErrDevRedisSetData       = "failed to set data to redis"
	ErrDevRedisDeleteData    = "failed to delete data from redis"
	ErrDevRedisUnlock        = "failed to release redis lock"
	ErrDevLockNotAcquired    = "failed to acquire lock for consent pair"
	ErrDevRabbitMQPublish    = "failed to publish message to queue %s"
	ErrDevRabbitMQGetChannel = "failed to open channel on rabbitmq connection"
)

const (
	ErrDevCreateFHIRResource  = "failed to create FHIR %s on external store"
	ErrDevGetFHIRResource     = "failed to get FHIR %s from external store"
	ErrDevDecodeFHIRResource  = "failed to decode FHIR %s response"
	ErrDevQuestionnaireAbsent = "questionnaire template %s not found"
	ErrDevTemplateUnreadable  = "failed to read questionnaire template %s"
	ErrDevConsentNotFound     = "no consent record for pair patient=%s practitioner=%s"
	ErrDevPatientNotFound     = "patient %s not found"
	ErrDevPseudonymExhausted  = "failed to generate a unique pseudonym"
)
