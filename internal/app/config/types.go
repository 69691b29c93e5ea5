package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}
	MongoDB struct {
		Port                    string
		Host                    string
		DbName                  string
		Username                string
		Password                string
		ConnectTimeoutInSeconds int
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port       string
		Host       string
		Username   string
		Password   string
		BucketName string
		UseSSL     bool
	}
)

type (
	InternalConfig struct {
		App        App
		Assessment Assessment
		Matching   Matching
		Rematch    Rematch
	}

	App struct {
		Env                     string
		Port                    string
		Version                 string
		EndpointPrefix          string
		MaxRequests             int
		ShutdownTimeout         int
		RequestTimeoutInSeconds int
		AllowedOrigins          []string
	}

	Assessment struct {
		BatchSize                  int
		AdaptiveFractionPercent    int
		MinSecondsPerAnswer        float64
		SessionLockTTLInSeconds    int
		TemplateSource             string
		RepositoryTimeoutInSeconds int
	}

	Matching struct {
		MaxConcurrency      int
		AuditEnabled        bool
		PercentileCacheSize int
		// CandidateRosterKey is the object name of a YAML roster in the MinIO bucket; empty uses the embedded roster
		CandidateRosterKey string
	}

	Rematch struct {
		ProgressQueue string
		DecisionQueue string
		WorkerEnabled bool
		PrefetchCount int
	}
)
