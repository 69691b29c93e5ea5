package routers

import (
	"fmt"
	"tawjih-service/internal/app/config"
	"tawjih-service/internal/app/delivery/http/middlewares"
	"tawjih-service/internal/app/services/core/assessments"
	"tawjih-service/internal/app/services/core/candidates"
	"tawjih-service/internal/app/services/core/matching"
	"tawjih-service/internal/app/services/core/rematch"
	"tawjih-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	assessmentController *assessments.AssessmentController,
	matchingController *matching.MatchingController,
	candidateController *candidates.CandidateController,
	rematchController *rematch.RematchController,
) {
	allowedOrigins := internalConfig.App.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	corsOptions := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", constvars.HeaderXRequestID},
		ExposedHeaders: []string{constvars.HeaderXRequestID},
		MaxAge:         300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.RateLimit())
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)

	router.NotFound(middlewares.NotFound)
	router.MethodNotAllowed(middlewares.MethodNotAllowed)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/assessments", func(r chi.Router) {
				attachAssessmentRoutes(r, middlewares, assessmentController)
			})

			r.Route("/matching", func(r chi.Router) {
				attachMatchingRoutes(r, middlewares, matchingController)
			})

			r.Route("/candidates", func(r chi.Router) {
				attachCandidateRoutes(r, middlewares, candidateController)
			})

			r.Route("/rematch", func(r chi.Router) {
				attachRematchRoutes(r, middlewares, rematchController)
			})
		})
	})
}
