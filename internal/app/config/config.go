package config

import (
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:                    utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:                    utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:                  utils.GetEnvString("MONGODB_DB_NAME", "tawjih"),
			Username:                utils.GetEnvString("MONGODB_USERNAME", ""),
			Password:                utils.GetEnvString("MONGODB_PASSWORD", ""),
			ConnectTimeoutInSeconds: utils.GetEnvInt("MONGODB_CONNECT_TIMEOUT_IN_SECONDS", 10),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:   utils.GetEnvString("MINIO_USERNAME", ""),
			Password:   utils.GetEnvString("MINIO_PASSWORD", ""),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "tawjih-config"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                     utils.GetEnvString("APP_ENV", constvars.EnvironmentDevelopment),
			Port:                    utils.GetEnvString("APP_PORT", "8080"),
			Version:                 utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:          utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:             utils.GetEnvInt("APP_MAX_REQUESTS", 20),
			ShutdownTimeout:         utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestTimeoutInSeconds: utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			AllowedOrigins:          utils.GetEnvStringSlice("APP_ALLOWED_ORIGINS", []string{"*"}),
		},
		Assessment: Assessment{
			BatchSize:                  utils.GetEnvInt("ASSESSMENT_BATCH_SIZE", 3),
			AdaptiveFractionPercent:    utils.GetEnvInt("ASSESSMENT_ADAPTIVE_FRACTION_PERCENT", 30),
			MinSecondsPerAnswer:        utils.GetEnvFloat("ASSESSMENT_MIN_SECONDS_PER_ANSWER", 2),
			SessionLockTTLInSeconds:    utils.GetEnvInt("ASSESSMENT_SESSION_LOCK_TTL_IN_SECONDS", 15),
			TemplateSource:             utils.GetEnvString("ASSESSMENT_TEMPLATE_SOURCE", constvars.TemplateSourceEmbedded),
			RepositoryTimeoutInSeconds: utils.GetEnvInt("ASSESSMENT_REPOSITORY_TIMEOUT_IN_SECONDS", 5),
		},
		Matching: Matching{
			MaxConcurrency:      utils.GetEnvInt("MATCHING_MAX_CONCURRENCY", 4),
			AuditEnabled:        utils.GetEnvBool("MATCHING_AUDIT_ENABLED", true),
			PercentileCacheSize: utils.GetEnvInt("MATCHING_PERCENTILE_CACHE_SIZE", 256),
			CandidateRosterKey:  utils.GetEnvString("CANDIDATE_ROSTER_OBJECT", ""),
		},
		Rematch: Rematch{
			ProgressQueue: utils.GetEnvString("REMATCH_PROGRESS_QUEUE", "rematch.progress"),
			DecisionQueue: utils.GetEnvString("REMATCH_DECISION_QUEUE", "rematch.decisions"),
			WorkerEnabled: utils.GetEnvBool("REMATCH_WORKER_ENABLED", false),
			PrefetchCount: utils.GetEnvInt("REMATCH_PREFETCH_COUNT", 8),
		},
	}
}
