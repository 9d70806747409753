package routers

import (
	"fmt"

	"somnolink-service/internal/app/delivery/http/controllers"
	"somnolink-service/internal/app/delivery/http/middlewares"
	"somnolink-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	patientController *controllers.PatientController,
	questionnaireResponseController *controllers.QuestionnaireResponseController,
) {
	router.With(middlewares.Authenticate, middlewares.RequirePatient).Get("/my-practitioners", patientController.MyPractitioners)
	router.With(middlewares.Authenticate).Get(fmt.Sprintf("/{%s}", constvars.URLParamPatientID), patientController.FindPatient)
	router.With(middlewares.Authenticate).Get(fmt.Sprintf("/{%s}/responses", constvars.URLParamPatientID), questionnaireResponseController.ListQuestionnaireResponses)
}
