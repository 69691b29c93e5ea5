package assessments

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

type AssessmentController struct {
	Log               *zap.Logger
	AssessmentUsecase contracts.AssessmentUsecase
	InternalConfig    *config.InternalConfig
}

func NewAssessmentController(logger *zap.Logger, assessmentUsecase contracts.AssessmentUsecase, internalConfig *config.InternalConfig) *AssessmentController {
	return &AssessmentController{
		Log:               logger,
		AssessmentUsecase: assessmentUsecase,
		InternalConfig:    internalConfig,
	}
}

func (ctrl *AssessmentController) StartAssessment(w http.ResponseWriter, r *http.Request) {
	request := new(requests.StartAssessment)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeStartAssessmentRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := utils.RequestContext(r, ctrl.InternalConfig.App.RequestTimeoutInSeconds)
	defer cancel()

	response, err := ctrl.AssessmentUsecase.StartAssessment(ctx, request)
	if err != nil {
		utils.BuildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.StartAssessmentSuccessMessage, response)
}

func (ctrl *AssessmentController) SubmitResponses(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, constvars.URLParamSessionID)
	err := utils.ValidateUrlParamID(sessionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamSessionID))
		return
	}

	request := new(requests.SubmitResponses)
	err = json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.SessionID = sessionID

	utils.SanitizeSubmitResponsesRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := utils.RequestContext(r, ctrl.InternalConfig.App.RequestTimeoutInSeconds)
	defer cancel()

	response, err := ctrl.AssessmentUsecase.SubmitResponses(ctx, request)
	if err != nil {
		utils.BuildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SubmitResponsesSuccessMessage, response)
}

func (ctrl *AssessmentController) FindSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := ctrl.sessionIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := utils.RequestContext(r, ctrl.InternalConfig.App.RequestTimeoutInSeconds)
	defer cancel()

	response, err := ctrl.AssessmentUsecase.FindSession(ctx, sessionID)
	if err != nil {
		utils.BuildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSessionSuccessMessage, response)
}

func (ctrl *AssessmentController) FindTherapeuticProfile(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := ctrl.sessionIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := utils.RequestContext(r, ctrl.InternalConfig.App.RequestTimeoutInSeconds)
	defer cancel()

	response, err := ctrl.AssessmentUsecase.FindTherapeuticProfile(ctx, sessionID)
	if err != nil {
		utils.BuildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetTherapeuticProfileSuccessMessage, response)
}

func (ctrl *AssessmentController) FindScores(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := ctrl.sessionIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := utils.RequestContext(r, ctrl.InternalConfig.App.RequestTimeoutInSeconds)
	defer cancel()

	response, err := ctrl.AssessmentUsecase.FindScores(ctx, sessionID)
	if err != nil {
		utils.BuildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetScoresSuccessMessage, response)
}

func (ctrl *AssessmentController) sessionIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := chi.URLParam(r, constvars.URLParamSessionID)
	err := utils.ValidateUrlParamID(sessionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamSessionID))
		return "", false
	}
	return sessionID, true
}
