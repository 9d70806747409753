package fhir_dto

type Questionnaire struct {
	ResourceType string              `json:"resourceType"`
	ID           string              `json:"id,omitempty"`
	Url          string              `json:"url,omitempty"`
	Name         string              `json:"name,omitempty"`
	Title        string              `json:"title,omitempty"`
	Status       string              `json:"status,omitempty"`
	Description  string              `json:"description,omitempty"`
	Item         []QuestionnaireItem `json:"item,omitempty"`
}

type QuestionnaireItem struct {
	LinkID       string                    `json:"linkId"`
	Text         string                    `json:"text,omitempty"`
	Type         string                    `json:"type,omitempty"`
	Required     bool                      `json:"required,omitempty"`
	AnswerOption []QuestionnaireItemOption `json:"answerOption,omitempty"`
	Item         []QuestionnaireItem       `json:"item,omitempty"`
}

type QuestionnaireItemOption struct {
	ValueInteger *int    `json:"valueInteger,omitempty"`
	ValueString  *string `json:"valueString,omitempty"`
	ValueCoding  *Coding `json:"valueCoding,omitempty"`
}
