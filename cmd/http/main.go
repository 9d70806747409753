package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"somnolink-service/internal/app/config"
	"somnolink-service/internal/app/delivery/http/controllers"
	"somnolink-service/internal/app/delivery/http/middlewares"
	"somnolink-service/internal/app/delivery/http/routers"
	"somnolink-service/internal/app/drivers/database"
	"somnolink-service/internal/app/drivers/logger"
	"somnolink-service/internal/app/drivers/messaging"
	"somnolink-service/internal/app/services/core/consents"
	"somnolink-service/internal/app/services/core/patients"
	"somnolink-service/internal/app/services/core/questionnaire_responses"
	"somnolink-service/internal/app/services/core/questionnaires"
	fhirQuestionnaireResponses "somnolink-service/internal/app/services/fhir/questionnaire_responses"
	fhirQuestionnaires "somnolink-service/internal/app/services/fhir/questionnaires"
	"somnolink-service/internal/app/services/shared/audit"
	"somnolink-service/internal/app/services/shared/locker"
	"somnolink-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading timezone", zap.Error(err))
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()
	log.Info("Server started", zap.String("port", internalConfig.App.Port))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests to finish..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Error("Error closing drivers", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapTheApp(bootstrap config.Bootstrap) {
	log := bootstrap.Logger

	// Shared infrastructure
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, log)
	auditPublisher := audit.NewAuditPublisher(bootstrap.RabbitMQ, bootstrap.InternalConfig.Audit.QueueName, log)

	// Middlewares
	appMiddlewares := middlewares.New(log, bootstrap.InternalConfig)

	// FHIR clients
	fhirBaseUrl := strings.TrimSuffix(bootstrap.InternalConfig.FHIR.BaseUrl, "/") + "/"
	fhirTimeout := time.Second * time.Duration(bootstrap.InternalConfig.FHIR.TimeoutInSeconds)
	questionnaireResponseFhirClient := fhirQuestionnaireResponses.NewQuestionnaireResponseFhirClient(fhirBaseUrl, fhirTimeout, log)
	questionnaireFhirClient := fhirQuestionnaires.NewQuestionnaireFhirClient(fhirBaseUrl, fhirTimeout, log)

	// Repositories
	assignmentRepository := consents.NewAssignmentMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	consentRepository := consents.NewConsentMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	patientRepository := patients.NewPatientMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)

	// Questionnaire templates
	templateStore, err := questionnaires.NewFileTemplateStore(bootstrap.InternalConfig.Questionnaire.TemplateDir)
	if err != nil {
		log.Fatal("Error loading questionnaire templates", zap.Error(err))
	}

	// Consents
	consentUsecase := consents.NewConsentUsecase(assignmentRepository, consentRepository, patientRepository, lockService, auditPublisher, log)
	consentController := controllers.NewConsentController(log, consentUsecase)

	// Patients
	patientUsecase := patients.NewPatientUsecase(patientRepository, assignmentRepository, consentUsecase, log)
	patientController := controllers.NewPatientController(log, patientUsecase)

	// Questionnaires
	questionnaireUsecase := questionnaires.NewQuestionnaireUsecase(templateStore, questionnaireFhirClient, log)
	questionnaireController := controllers.NewQuestionnaireController(log, questionnaireUsecase)

	// Questionnaire responses
	questionnaireResponseUsecase := questionnaire_responses.NewQuestionnaireResponseUsecase(templateStore, questionnaireResponseFhirClient, consentUsecase, auditPublisher, log)
	questionnaireResponseController := controllers.NewQuestionnaireResponseController(log, questionnaireResponseUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		appMiddlewares,
		consentController,
		patientController,
		questionnaireController,
		questionnaireResponseController,
	)
}
