package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "TWJH_SVC_"
)

const (
	EnvironmentProduction  = "production"
	EnvironmentDevelopment = "development"
	EnvironmentLocal       = "local"
)

const (
	TemplateSourceEmbedded = "embedded"
	TemplateSourceMongoDB  = "mongodb"
)

const (
	MongoCollectionTemplates          = "assessment_templates"
	MongoCollectionSessions           = "assessment_sessions"
	MongoCollectionTherapeuticProfile = "therapeutic_profiles"
	MongoCollectionMatchingAudits     = "matching_audits"
	MongoCollectionRematchDecisions   = "rematch_decisions"
)

const (
	RedisKeySessionLockFormat = "assessment:session:%s:lock"
	RedisKeyLockValuePrefix   = "lock"
)

const (
	MessageTypeRematchDecision = "rematch.decision"
	MessageHeaderType          = "type"
	MessageHeaderSnapshotID    = "snapshot_id"
)
