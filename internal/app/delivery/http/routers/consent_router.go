package routers

import (
	"somnolink-service/internal/app/delivery/http/controllers"
	"somnolink-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachConsentRoutes(router chi.Router, middlewares *middlewares.Middlewares, consentController *controllers.ConsentController) {
	router.With(middlewares.Authenticate, middlewares.RequirePatient).Post("/grant", consentController.GrantConsent)
	router.With(middlewares.Authenticate, middlewares.RequirePatient).Post("/revoke", consentController.RevokeConsent)
	router.With(middlewares.Authenticate, middlewares.RequirePatient).Get("/", consentController.ListMyConsents)
}
