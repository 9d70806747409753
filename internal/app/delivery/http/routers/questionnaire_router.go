package routers

import (
	"fmt"

	"somnolink-service/internal/app/delivery/http/controllers"
	"somnolink-service/internal/app/delivery/http/middlewares"
	"somnolink-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachQuestionnaireRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	questionnaireController *controllers.QuestionnaireController,
	questionnaireResponseController *controllers.QuestionnaireResponseController,
) {
	slugPath := fmt.Sprintf("/{%s}", constvars.URLParamQuestionnaireSlug)

	router.With(middlewares.Authenticate).Get("/", questionnaireController.ListQuestionnaires)
	router.With(middlewares.Authenticate).Get(slugPath, questionnaireController.FindQuestionnaire)
	router.With(middlewares.Authenticate, middlewares.RequirePractitioner).Post(slugPath+"/upload", questionnaireController.UploadQuestionnaire)
	router.With(middlewares.Authenticate).Post(slugPath+"/responses", questionnaireResponseController.SubmitQuestionnaireResponse)
}
