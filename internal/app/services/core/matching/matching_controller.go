package matching

import (
	"net/http"
	"tawjih-service/internal/app/config"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/dto/requests"
	"tawjih-service/internal/pkg/exceptions"
	"tawjih-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type MatchingController struct {
	Log             *zap.Logger
	MatchingUsecase contracts.MatchingUsecase
	InternalConfig  *config.InternalConfig
}

func NewMatchingController(logger *zap.Logger, matchingUsecase contracts.MatchingUsecase, internalConfig *config.InternalConfig) *MatchingController {
	return &MatchingController{
		Log:             logger,
		MatchingUsecase: matchingUsecase,
		InternalConfig:  internalConfig,
	}
}

func (ctrl *MatchingController) MatchExpert(w http.ResponseWriter, r *http.Request) {
	request := new(requests.MatchExpert)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := utils.RequestContext(r, ctrl.InternalConfig.App.RequestTimeoutInSeconds)
	defer cancel()

	response, err := ctrl.MatchingUsecase.MatchExpert(ctx, request)
	if err != nil {
		utils.BuildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.MatchExpertSuccessMessage, response)
}

func (ctrl *MatchingController) QuickMatch(w http.ResponseWriter, r *http.Request) {
	request := new(requests.QuickMatch)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeQuickMatchRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := utils.RequestContext(r, ctrl.InternalConfig.App.RequestTimeoutInSeconds)
	defer cancel()

	response, err := ctrl.MatchingUsecase.QuickMatch(ctx, request)
	if err != nil {
		utils.BuildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.QuickMatchSuccessMessage, response)
}

func (ctrl *MatchingController) AnalyzeVoice(w http.ResponseWriter, r *http.Request) {
	request := new(requests.VoiceCompatibility)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeVoiceCompatibilityRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := utils.RequestContext(r, ctrl.InternalConfig.App.RequestTimeoutInSeconds)
	defer cancel()

	response, err := ctrl.MatchingUsecase.AnalyzeVoice(ctx, request)
	if err != nil {
		utils.BuildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.VoiceCompatibilitySuccessMessage, response)
}
