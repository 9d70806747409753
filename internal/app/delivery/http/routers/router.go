package routers

import (
	"fmt"
	"time"

	"somnolink-service/internal/app/config"
	"somnolink-service/internal/app/delivery/http/controllers"
	"somnolink-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	consentController *controllers.ConsentController,
	patientController *controllers.PatientController,
	questionnaireController *controllers.QuestionnaireController,
	questionnaireResponseController *controllers.QuestionnaireResponseController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/consents", func(r chi.Router) {
				attachConsentRoutes(r, middlewares, consentController)
			})

			r.Route("/practitioners", func(r chi.Router) {
				attachPractitionerRoutes(r, middlewares, consentController)
			})

			r.Route("/patients", func(r chi.Router) {
				attachPatientRoutes(r, middlewares, patientController, questionnaireResponseController)
			})

			r.Route("/questionnaires", func(r chi.Router) {
				attachQuestionnaireRoutes(r, middlewares, questionnaireController, questionnaireResponseController)
			})
		})
	})
}
