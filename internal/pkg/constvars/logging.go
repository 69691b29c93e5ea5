package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingRequestKey        = "request"
	LoggingResponseKey       = "response"
	LoggingResponseLengthKey = "response_length"
	LoggingOperationKey      = "operation"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingStatusCodeKey     = "status_code"
	LoggingMethodKey         = "method"
	LoggingPathKey           = "path"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingClientRequestKey  = "is_client_request_id"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"

	LoggingUserIDKey          = "user_id"
	LoggingSessionIDKey       = "session_id"
	LoggingTemplateIDKey      = "template_id"
	LoggingCategoryKey        = "category"
	LoggingLanguageKey        = "language"
	LoggingCulturalContextKey = "cultural_context"
	LoggingCandidateIDKey     = "candidate_id"
	LoggingCandidateCountKey  = "candidate_count"
	LoggingProfileIDKey       = "profile_id"
	LoggingSnapshotIDKey      = "snapshot_id"
	LoggingQueueKey           = "queue"
	LoggingBucketKey          = "bucket"
	LoggingObjectKey          = "object"
	LoggingStrategyKey        = "strategy"
	LoggingProgressKey        = "progress"
	LoggingTotalScoreKey      = "total_score"
	LoggingSeverityKey        = "severity"
	LoggingAcceptedCountKey   = "accepted_count"
	LoggingRejectedCountKey   = "rejected_count"
	LoggingChangeKey          = "change_recommended"
	LoggingTimingKey          = "timing"
)
