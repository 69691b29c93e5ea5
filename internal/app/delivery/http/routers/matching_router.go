package routers

import (
	"tawjih-service/internal/app/delivery/http/middlewares"
	"tawjih-service/internal/app/services/core/matching"

	"github.com/go-chi/chi/v5"
)

func attachMatchingRoutes(router chi.Router, middlewares *middlewares.Middlewares, matchingController *matching.MatchingController) {
	router.Post("/", matchingController.MatchExpert)
	router.Post("/quick", matchingController.QuickMatch)
	router.Post("/voice", matchingController.AnalyzeVoice)
}
