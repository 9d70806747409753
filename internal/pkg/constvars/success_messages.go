package constvars

const (
	SubmitQuestionnaireResponseSuccessMessage = "Successfully submitted questionnaire response"
	ListQuestionnaireResponsesSuccessMessage  = "Successfully fetched questionnaire responses"
	ListQuestionnairesSuccessMessage          = "Successfully fetched questionnaires"
	FindQuestionnaireSuccessMessage           = "Successfully fetched questionnaire"
	UploadQuestionnaireSuccessMessage         = "Successfully uploaded questionnaire to FHIR store"
	GrantConsentSuccessMessage                = "Successfully granted consent"
	RevokeConsentSuccessMessage               = "Successfully revoked consent"
	ListConsentsSuccessMessage                = "Successfully fetched consents"
	AssignPatientSuccessMessage               = "Successfully assigned patient"
	UnassignPatientSuccessMessage             = "Successfully unassigned patient"
	ListAuthorizedPatientsSuccessMessage      = "Successfully fetched authorized patients"
	FindPatientSuccessMessage                 = "Successfully fetched patient"
	ListMyPractitionersSuccessMessage         = "Successfully fetched practitioners"
)
