package constvars

const (
	URLParamQuestionnaireSlug = "questionnaire_slug"
	URLParamPatientID         = "patient_id"
)
