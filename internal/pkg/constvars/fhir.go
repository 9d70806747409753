package constvars

const (
	ResourcePatient               = "Patient"
	ResourcePractitioner          = "Practitioner"
	ResourceQuestionnaire         = "Questionnaire"
	ResourceQuestionnaireResponse = "QuestionnaireResponse"
)

const (
	FhirQuestionnaireResponseStatusCompleted = "completed"
)
