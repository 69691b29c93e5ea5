package exceptions

import (
	"fmt"
	"tawjih-service/internal/pkg/constvars"
)

var (
	ErrURLParamIDValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamIDValidationFailed, paramName)).withCode(constvars.ErrCodeValidation, KindValidation)
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed).withCode(constvars.ErrCodeValidation, KindValidation)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON).withCode(constvars.ErrCodeValidation, KindValidation)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON).withCode(constvars.ErrCodeInternal, KindInternal)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded).withCode(constvars.ErrCodeDeadlineExceeded, KindTransient)
	}
	ErrRouteNotFound = func(err error, method, path string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientRouteNotFound, fmt.Sprintf(constvars.ErrDevRouteNotFound, method, path)).withCode(constvars.ErrCodeRouteNotFound, KindNotFound)
	}
	ErrMethodNotAllowed = func(err error, method, path string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusMethodNotAllowed, constvars.ErrClientMethodNotAllowed, fmt.Sprintf(constvars.ErrDevMethodNotAllowed, method, path)).withCode(constvars.ErrCodeMethodNotAllowed, KindValidation)
	}
	ErrPanicRecovered = func(err error, method, path string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevPanicRecovered, method, path)).withCode(constvars.ErrCodeInternal, KindInternal)
	}
	ErrResponsesRejected = func(err error, count int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnprocessableEntity, constvars.ErrClientResponsesRejected, fmt.Sprintf(constvars.ErrDevResponsesRejected, count)).withCode(constvars.ErrCodeResponsesRejected, KindValidation)
	}
)

// Configuration errors are fatal authoring defects and are never corrected at runtime.
var (
	ErrInvalidTemplate = func(err error, templateID, reason string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevInvalidTemplate, templateID, reason)).withCode(constvars.ErrCodeInvalidTemplate, KindConfiguration)
	}
	ErrScoringConfiguration = func(err error, totalScore int, templateID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevScoreOutsideBands, totalScore, templateID)).withCode(constvars.ErrCodeScoringConfiguration, KindConfiguration)
	}
	ErrNoNumericResponses = func(err error, sessionID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevScoringNoNumericResponses, sessionID)).withCode(constvars.ErrCodeScoringConfiguration, KindConfiguration)
	}
	ErrInvalidRoster = func(err error, reason string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevInvalidRoster, reason)).withCode(constvars.ErrCodeInvalidRoster, KindConfiguration)
	}
	ErrCannotParseYAML = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotParseYAML).withCode(constvars.ErrCodeInvalidTemplate, KindConfiguration)
	}
)

var (
	ErrTemplateNotFound = func(err error, assessmentType, category, language string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientTemplateNotFound, fmt.Sprintf(constvars.ErrDevTemplateNotFound, assessmentType, category, language)).withCode(constvars.ErrCodeTemplateNotFound, KindNotFound)
	}
	ErrTemplateIDNotFound = func(err error, templateID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientTemplateNotFound, fmt.Sprintf(constvars.ErrDevTemplateIDNotFound, templateID)).withCode(constvars.ErrCodeTemplateNotFound, KindNotFound)
	}
	ErrSessionNotFound = func(err error, sessionID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientSessionNotFound, fmt.Sprintf(constvars.ErrDevSessionNotFound, sessionID)).withCode(constvars.ErrCodeSessionNotFound, KindNotFound)
	}
	ErrProfileNotFound = func(err error, sessionID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientProfileNotFound, fmt.Sprintf(constvars.ErrDevProfileNotFound, sessionID)).withCode(constvars.ErrCodeProfileNotFound, KindNotFound)
	}
	ErrCandidateNotFound = func(err error, candidateID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientCandidateNotFound, fmt.Sprintf(constvars.ErrDevCandidateNotFound, candidateID)).withCode(constvars.ErrCodeCandidateNotFound, KindNotFound)
	}
	ErrRematchDecisionNotFound = func(err error, snapshotID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientRematchDecisionNotFound, fmt.Sprintf(constvars.ErrDevRematchDecisionNotFound, snapshotID)).withCode(constvars.ErrCodeRematchDecisionNotFound, KindNotFound)
	}
)

var (
	ErrSessionAlreadyCompleted = func(err error, sessionID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientSessionAlreadyCompleted, fmt.Sprintf(constvars.ErrDevSessionAlreadyCompleted, sessionID)).withCode(constvars.ErrCodeSessionAlreadyCompleted, KindState)
	}
	ErrSessionNotCompleted = func(err error, sessionID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientSessionNotCompleted, fmt.Sprintf(constvars.ErrDevSessionNotCompleted, sessionID)).withCode(constvars.ErrCodeSessionNotCompleted, KindState)
	}
	ErrProfileAlreadyExists = func(err error, sessionID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevProfileAlreadyExists, sessionID)).withCode(constvars.ErrCodeProfileAlreadyExists, KindState)
	}
	ErrNoCandidatesAvailable = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientNoCandidatesAvailable, constvars.ErrDevNoCandidatesAvailable).withCode(constvars.ErrCodeNoCandidatesAvailable, KindState)
	}
	ErrNoAlternativeCandidate = func(err error, candidateID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientNoCandidatesAvailable, fmt.Sprintf(constvars.ErrDevNoAlternativeCandidate, candidateID)).withCode(constvars.ErrCodeNoAlternativeCandidate, KindState)
	}
)

// Transient errors are safe to retry with backoff.
var (
	ErrSessionVersionConflict = func(err error, sessionID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientSessionBusy, fmt.Sprintf(constvars.ErrDevSessionVersionConflict, sessionID)).withCode(constvars.ErrCodeSessionConflict, KindTransient)
	}
	ErrSessionLockNotAcquired = func(err error, sessionID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientSessionBusy, fmt.Sprintf(constvars.ErrDevSessionLockNotAcquired, sessionID)).withCode(constvars.ErrCodeSessionConflict, KindTransient)
	}
	ErrMongoDBFindDocument = func(err error, collection string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceTemporarilyUnavailable, fmt.Sprintf(constvars.ErrDevMongoDBFindDocument, collection)).withCode(constvars.ErrCodeTransient, KindTransient)
	}
	ErrMongoDBInsertDocument = func(err error, collection string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceTemporarilyUnavailable, fmt.Sprintf(constvars.ErrDevMongoDBInsertDocument, collection)).withCode(constvars.ErrCodeTransient, KindTransient)
	}
	ErrMongoDBUpdateDocument = func(err error, collection string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceTemporarilyUnavailable, fmt.Sprintf(constvars.ErrDevMongoDBUpdateDocument, collection)).withCode(constvars.ErrCodeTransient, KindTransient)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceTemporarilyUnavailable, constvars.ErrDevRedisSet).withCode(constvars.ErrCodeTransient, KindTransient)
	}
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceTemporarilyUnavailable, constvars.ErrDevRedisGet).withCode(constvars.ErrCodeTransient, KindTransient)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceTemporarilyUnavailable, constvars.ErrDevRedisDelete).withCode(constvars.ErrCodeTransient, KindTransient)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceTemporarilyUnavailable, constvars.ErrDevRedisUnlock).withCode(constvars.ErrCodeTransient, KindTransient)
	}
	ErrMinioGetObject = func(err error, object, bucket string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceTemporarilyUnavailable, fmt.Sprintf(constvars.ErrDevMinioGetObject, object, bucket)).withCode(constvars.ErrCodeTransient, KindTransient)
	}
	ErrRabbitMQPublish = func(err error, queue string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceTemporarilyUnavailable, fmt.Sprintf(constvars.ErrDevRabbitMQPublish, queue)).withCode(constvars.ErrCodeTransient, KindTransient)
	}
	ErrTooManyRequests = func(err error, remoteAddr string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, fmt.Sprintf(constvars.ErrDevTooManyRequests, remoteAddr)).withCode(constvars.ErrCodeRateLimited, KindTransient)
	}
	ErrRabbitMQConsume = func(err error, queue string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceTemporarilyUnavailable, fmt.Sprintf(constvars.ErrDevRabbitMQConsume, queue)).withCode(constvars.ErrCodeTransient, KindTransient)
	}
)
