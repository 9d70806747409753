package fhir_dto

type QuestionnaireResponseBundle struct {
	ResourceType string                             `json:"resourceType"`
	Type         string                             `json:"type,omitempty"`
	Total        int                                `json:"total,omitempty"`
	Entry        []QuestionnaireResponseBundleEntry `json:"entry,omitempty"`
}

type QuestionnaireResponseBundleEntry struct {
	FullUrl  string                `json:"fullUrl,omitempty"`
	Resource QuestionnaireResponse `json:"resource"`
}
