package config

type InternalConfig struct {
	App           App
	FHIR          FHIR
	JWT           JWT
	Questionnaire Questionnaire
	Audit         Audit
}

type App struct {
	Env                      string
	Port                     string
	Version                  string
	Timezone                 string
	EndpointPrefix           string
	MaxRequests              int
	ShutdownTimeoutInSeconds int
}

type FHIR struct {
	BaseUrl          string
	TimeoutInSeconds int
}

type JWT struct {
	Secret string
}

type Questionnaire struct {
	TemplateDir string
}

type Audit struct {
	QueueName string
}
