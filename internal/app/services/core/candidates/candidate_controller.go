package candidates

import (
	"net/http"
	"tawjih-service/internal/app/config"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type CandidateController struct {
	Log              *zap.Logger
	CandidateUsecase contracts.CandidateUsecase
	InternalConfig   *config.InternalConfig
}

func NewCandidateController(logger *zap.Logger, candidateUsecase contracts.CandidateUsecase, internalConfig *config.InternalConfig) *CandidateController {
	return &CandidateController{
		Log:              logger,
		CandidateUsecase: candidateUsecase,
		InternalConfig:   internalConfig,
	}
}

func (ctrl *CandidateController) ListCandidates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := utils.RequestContext(r, ctrl.InternalConfig.App.RequestTimeoutInSeconds)
	defer cancel()

	response, err := ctrl.CandidateUsecase.ListCandidates(ctx)
	if err != nil {
		utils.BuildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCandidatesSuccessMessage, response)
}
