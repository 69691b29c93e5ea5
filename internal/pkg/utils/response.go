package utils

import (
	"context"
	"errors"
	"net/http"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/dto/responses"
	"tawjih-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	code := constvars.StatusInternalServerError
	clientMessage := constvars.ErrClientSomethingWrongWithApplication

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		code = customErr.StatusCode
		clientMessage = customErr.ClientMessage
		for _, location := range customErr.Locations {
			location := map[string]interface{}{
				"file":          location.File,
				"line":          location.Line,
				"function_name": location.FunctionName,
			}
			log.Error(customErr.DevMessage,
				zap.String("code", customErr.Code),
				zap.String("kind", string(customErr.Kind)),
				zap.Any("location", location),
			)
		}
	} else {
		log.Error(err.Error())
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	response := exceptions.CustomError{
		StatusCode:    code,
		Success:       false,
		Code:          constvars.ErrCodeInternal,
		ClientMessage: clientMessage,
	}

	if customErr != nil {
		response.Code = customErr.Code
		response.Retryable = customErr.Retryable
		response.Details = customErr.Details
	}

	appEnvironment := GetEnvString("APP_ENV", constvars.EnvironmentDevelopment)
	if customErr != nil && appEnvironment != constvars.EnvironmentProduction {
		response.DevMessage = customErr.DevMessage
		response.Locations = customErr.Locations
	}
	json.NewEncoder(w).Encode(response)
}

// BuildUsecaseErrorResponse reports a usecase failure, turning an expired request context
// into a gateway timeout.
func BuildUsecaseErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) && exceptions.KindOf(err) != exceptions.KindTransient {
		BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	BuildErrorResponse(log, w, err)
}
