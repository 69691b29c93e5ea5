package exceptions

import (
	"errors"
	"fmt"
	"runtime"
	"tawjih-service/internal/pkg/constvars"
)

type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindNotFound      Kind = "not_found"
	KindValidation    Kind = "validation"
	KindState         Kind = "state"
	KindTransient     Kind = "transient"
	KindInternal      Kind = "internal"
)

type CustomError struct {
	StatusCode    int         `json:"status_code"`
	Success       bool        `json:"success"`
	Code          string      `json:"code,omitempty"`
	ClientMessage string      `json:"message"`
	Retryable     bool        `json:"retryable,omitempty"`
	Details       interface{} `json:"details,omitempty"`
	DevMessage    string      `json:"dev_message,omitempty"`
	Locations     []Location  `json:"locations,omitempty"`
	Kind          Kind        `json:"-"`
	cause         error
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

// BuildNewCustomError wraps err while keeping the locations of any CustomError underneath it,
// so a failure deep in a repository still shows its full path when logged at the controller.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(3)
	customErr := &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Kind:          kindFromStatus(statusCode),
		cause:         err,
	}

	var inner *CustomError
	if errors.As(err, &inner) {
		customErr.Locations = append(customErr.Locations, inner.Locations...)
		customErr.DevMessage = fmt.Sprintf("%s: %s", devMessage, inner.DevMessage)
	} else if err != nil {
		customErr.DevMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	customErr.Locations = append([]Location{location}, customErr.Locations...)
	return customErr
}

func (e *CustomError) withCode(code string, kind Kind) *CustomError {
	e.Code = code
	e.Kind = kind
	e.Retryable = kind == KindTransient
	return e
}

// WithDetails attaches client-visible data, such as the per-response rejections of a refused batch.
func (e *CustomError) WithDetails(details interface{}) *CustomError {
	e.Details = details
	return e
}

// KindOf returns the kind of the outermost CustomError in the chain, or KindInternal.
func KindOf(err error) Kind {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Kind
	}
	return KindInternal
}

// HasCode reports whether any CustomError in the chain carries code.
func HasCode(err error, code string) bool {
	for err != nil {
		var customErr *CustomError
		if !errors.As(err, &customErr) {
			return false
		}
		if customErr.Code == code {
			return true
		}
		err = customErr.cause
	}
	return false
}

func IsRetryable(err error) bool {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Retryable
	}
	return false
}

func kindFromStatus(statusCode int) Kind {
	switch {
	case statusCode == constvars.StatusNotFound:
		return KindNotFound
	case statusCode == constvars.StatusBadRequest || statusCode == constvars.StatusUnprocessableEntity:
		return KindValidation
	case statusCode == constvars.StatusConflict:
		return KindState
	case statusCode == constvars.StatusServiceUnavailable || statusCode == constvars.StatusGatewayTimeout:
		return KindTransient
	default:
		return KindInternal
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
