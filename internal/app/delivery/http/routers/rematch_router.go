package routers

import (
	"tawjih-service/internal/app/delivery/http/middlewares"
	"tawjih-service/internal/app/services/core/rematch"

	"github.com/go-chi/chi/v5"
)

func attachRematchRoutes(router chi.Router, middlewares *middlewares.Middlewares, rematchController *rematch.RematchController) {
	router.Post("/evaluations", rematchController.EvaluateRematch)
	router.Get("/decisions/{snapshot_id}", rematchController.FindDecision)
}
