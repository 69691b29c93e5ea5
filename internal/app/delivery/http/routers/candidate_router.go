package routers

import (
	"tawjih-service/internal/app/delivery/http/middlewares"
	"tawjih-service/internal/app/services/core/candidates"

	"github.com/go-chi/chi/v5"
)

func attachCandidateRoutes(router chi.Router, middlewares *middlewares.Middlewares, candidateController *candidates.CandidateController) {
	router.Get("/", candidateController.ListCandidates)
}
