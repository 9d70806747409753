package routers

import (
	"somnolink-service/internal/app/delivery/http/controllers"
	"somnolink-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPractitionerRoutes(router chi.Router, middlewares *middlewares.Middlewares, consentController *controllers.ConsentController) {
	router.With(middlewares.Authenticate, middlewares.RequirePractitioner).Post("/assignments", consentController.AssignPatient)
	router.With(middlewares.Authenticate, middlewares.RequirePractitioner).Delete("/assignments", consentController.UnassignPatient)
	router.With(middlewares.Authenticate, middlewares.RequirePractitioner).Get("/patients", consentController.ListAuthorizedPatients)
}
