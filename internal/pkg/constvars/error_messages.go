package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":         "is required",
	"alphanum":         "must contain only alphanumeric characters",
	"min":              "must be at least %s",
	"max":              "must be at most %s",
	"numeric":          "must be a number",
	"len":              "must be %s characters long",
	"oneof":            "must be one of [%s]",
	"gt":               "must be greater than %s",
	"gte":              "must be greater than or equal to %s",
	"lt":               "must be less than %s",
	"lte":              "must be less than or equal to %s",
	"uuid":             "must be a valid UUID",
	"dive":             "contains an invalid item",
	"required_without": "is required when %s is not present",
	"language_code":    "must be a supported language code",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":              true,
	"max":              true,
	"len":              true,
	"gt":               true,
	"gte":              true,
	"lt":               true,
	"lte":              true,
	"oneof":            true,
	"required_without": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientTemplateNotFound              = "no assessment is available for this category and language"
	ErrClientSessionNotFound               = "assessment session not found"
	ErrClientSessionAlreadyCompleted       = "this assessment is already completed"
	ErrClientSessionNotCompleted           = "this assessment is not completed yet"
	ErrClientSessionBusy                   = "this assessment is being updated, please retry"
	ErrClientProfileNotFound               = "therapeutic profile not found"
	ErrClientCandidateNotFound             = "expert not found"
	ErrClientNoCandidatesAvailable         = "no expert is available right now"
	ErrClientRematchDecisionNotFound       = "rematch decision not found"
	ErrClientResponsesRejected             = "some responses were rejected"
	ErrClientServiceTemporarilyUnavailable = "the service is temporarily unavailable, please retry"
	ErrClientTooManyRequests               = "too many requests, please slow down"
	ErrClientRouteNotFound                 = "the requested resource does not exist"
	ErrClientMethodNotAllowed              = "this method is not allowed on the requested resource"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevCannotParseJSON            = "cannot parse JSON"
	ErrDevCannotMarshalJSON          = "cannot marshal JSON"
	ErrDevCannotParseYAML            = "cannot parse YAML"
	ErrDevValidationFailed           = "validation failed"
	ErrDevURLParamIDValidationFailed = "url param %s validation failed"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevTemplateNotFound           = "no active template for type %s, category %s, language %s"
	ErrDevTemplateIDNotFound         = "template %s not found"
	ErrDevInvalidTemplate            = "template %s is invalid: %s"
	ErrDevSessionNotFound            = "session %s not found"
	ErrDevSessionAlreadyCompleted    = "session %s is already completed"
	ErrDevSessionNotCompleted        = "session %s is not completed"
	ErrDevSessionVersionConflict     = "session %s was modified concurrently"
	ErrDevSessionLockNotAcquired     = "session %s is locked by another writer"
	ErrDevScoreOutsideBands          = "total score %d of template %s is outside every severity band"
	ErrDevScoringNoNumericResponses  = "session %s has no numeric scored responses"
	ErrDevProfileNotFound            = "profile for session %s not found"
	ErrDevProfileAlreadyExists       = "profile for session %s already exists"
	ErrDevCandidateNotFound          = "candidate %s not found"
	ErrDevNoCandidatesAvailable      = "candidate registry is empty"
	ErrDevNoAlternativeCandidate     = "no alternative candidate besides %s"
	ErrDevInvalidRoster              = "candidate roster is invalid: %s"
	ErrDevRematchDecisionNotFound    = "rematch decision for snapshot %s not found"
	ErrDevResponsesRejected          = "%d responses rejected in all-or-nothing mode"
	ErrDevMongoDBFindDocument        = "failed to find document in collection %s"
	ErrDevMongoDBInsertDocument      = "failed to insert document in collection %s"
	ErrDevMongoDBUpdateDocument      = "failed to update document in collection %s"
	ErrDevRedisSet                   = "failed to set redis key"
	ErrDevRedisGet                   = "failed to get redis key"
	ErrDevRedisDelete                = "failed to delete redis key"
	ErrDevRedisUnlock                = "lock not owned by this client"
	ErrDevMinioGetObject             = "failed to get object %s from bucket %s"
	ErrDevRabbitMQPublish            = "failed to publish message to queue %s"
	ErrDevRabbitMQConsume            = "failed to consume queue %s"
	ErrDevTooManyRequests            = "rate limit exceeded for %s"
	ErrDevRouteNotFound              = "no route for %s %s"
	ErrDevMethodNotAllowed           = "method %s not allowed on %s"
	ErrDevPanicRecovered             = "panic recovered while serving %s %s"
)

// Machine readable error codes
const (
	ErrCodeValidation              = "VALIDATION_FAILED"
	ErrCodeTemplateNotFound        = "TEMPLATE_NOT_FOUND"
	ErrCodeInvalidTemplate         = "INVALID_TEMPLATE"
	ErrCodeScoringConfiguration    = "SCORING_CONFIGURATION_ERROR"
	ErrCodeSessionNotFound         = "SESSION_NOT_FOUND"
	ErrCodeSessionAlreadyCompleted = "SESSION_ALREADY_COMPLETED"
	ErrCodeSessionNotCompleted     = "SESSION_NOT_COMPLETED"
	ErrCodeSessionConflict         = "SESSION_CONFLICT"
	ErrCodeProfileNotFound         = "PROFILE_NOT_FOUND"
	ErrCodeProfileAlreadyExists    = "PROFILE_ALREADY_EXISTS"
	ErrCodeCandidateNotFound       = "CANDIDATE_NOT_FOUND"
	ErrCodeNoCandidatesAvailable   = "NO_CANDIDATES_AVAILABLE"
	ErrCodeNoAlternativeCandidate  = "NO_ALTERNATIVE_CANDIDATE"
	ErrCodeInvalidRoster           = "INVALID_ROSTER"
	ErrCodeRematchDecisionNotFound = "REMATCH_DECISION_NOT_FOUND"
	ErrCodeResponsesRejected       = "RESPONSES_REJECTED"
	ErrCodeDeadlineExceeded        = "DEADLINE_EXCEEDED"
	ErrCodeTransient               = "TRANSIENT_ERROR"
	ErrCodeInternal                = "INTERNAL_ERROR"
	ErrCodeRateLimited             = "RATE_LIMITED"
	ErrCodeRouteNotFound           = "ROUTE_NOT_FOUND"
	ErrCodeMethodNotAllowed        = "METHOD_NOT_ALLOWED"
)
