package routers

import (
	"tawjih-service/internal/app/delivery/http/middlewares"
	"tawjih-service/internal/app/services/core/assessments"

	"github.com/go-chi/chi/v5"
)

func attachAssessmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, assessmentController *assessments.AssessmentController) {
	router.Post("/", assessmentController.StartAssessment)
	router.Get("/{session_id}", assessmentController.FindSession)
	router.Post("/{session_id}/responses", assessmentController.SubmitResponses)
	router.Get("/{session_id}/profile", assessmentController.FindTherapeuticProfile)
	router.Get("/{session_id}/scores", assessmentController.FindScores)
}
