package rematch

import (
	"net/http"
	"tawjih-service/internal/app/config"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/dto/requests"
	"tawjih-service/internal/pkg/exceptions"
	"tawjih-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type RematchController struct {
	Log            *zap.Logger
	RematchUsecase contracts.RematchUsecase
	InternalConfig *config.InternalConfig
}

func NewRematchController(logger *zap.Logger, rematchUsecase contracts.RematchUsecase, internalConfig *config.InternalConfig) *RematchController {
	return &RematchController{
		Log:            logger,
		RematchUsecase: rematchUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *RematchController) EvaluateRematch(w http.ResponseWriter, r *http.Request) {
	request := new(requests.EvaluateRematch)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeEvaluateRematchRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := utils.RequestContext(r, ctrl.InternalConfig.App.RequestTimeoutInSeconds)
	defer cancel()

	response, err := ctrl.RematchUsecase.EvaluateRematch(ctx, request)
	if err != nil {
		utils.BuildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.EvaluateRematchSuccessMessage, response)
}

func (ctrl *RematchController) FindDecision(w http.ResponseWriter, r *http.Request) {
	snapshotID := chi.URLParam(r, constvars.URLParamSnapshotID)
	err := utils.ValidateUrlParamSlug(snapshotID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamSnapshotID))
		return
	}

	ctx, cancel := utils.RequestContext(r, ctrl.InternalConfig.App.RequestTimeoutInSeconds)
	defer cancel()

	response, err := ctrl.RematchUsecase.FindDecision(ctx, snapshotID)
	if err != nil {
		utils.BuildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetRematchDecisionSuccessMessage, response)
}
