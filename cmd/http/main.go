package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"tawjih-service/cmd/migration"
	"tawjih-service/internal/app/config"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/app/delivery/http/middlewares"
	"tawjih-service/internal/app/delivery/http/routers"
	"tawjih-service/internal/app/drivers/database"
	"tawjih-service/internal/app/drivers/logger"
	"tawjih-service/internal/app/drivers/messaging"
	"tawjih-service/internal/app/drivers/storage"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/app/services/core/assessments"
	"tawjih-service/internal/app/services/core/candidates"
	"tawjih-service/internal/app/services/core/matching"
	"tawjih-service/internal/app/services/core/profiles"
	"tawjih-service/internal/app/services/core/rematch"
	"tawjih-service/internal/app/services/core/scoring"
	"tawjih-service/internal/app/services/core/templates"
	"tawjih-service/internal/app/services/shared/locker"
	sharedMessaging "tawjih-service/internal/app/services/shared/messaging"
	sharedRedis "tawjih-service/internal/app/services/shared/redis"
	sharedStorage "tawjih-service/internal/app/services/shared/storage"
	"tawjih-service/internal/pkg/constvars"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	log.Info("Starting tawjih service", zap.String("version", Version), zap.String("tag", Tag))

	bootstrap := config.Bootstrap{
		Router:         chi.NewRouter(),
		MongoDB:        database.NewMongoDB(driverConfig),
		Redis:          database.NewRedisClient(driverConfig),
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if driverConfig.RabbitMQ.Host != "" {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}
	if internalConfig.Matching.CandidateRosterKey != "" {
		bootstrap.Minio = storage.NewMinio(driverConfig)
	}

	err := bootstrapingTheApp(&bootstrap)
	if err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    ":" + internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()
	log.Info("Server listening", zap.String("port", internalConfig.App.Port))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Templates
	catalog, err := templates.LoadEmbeddedCatalog()
	if err != nil {
		return err
	}
	var templateRepository contracts.TemplateRepository = templates.NewCatalogRepository(catalog)
	var seed []models.AssessmentTemplate
	if internalConfig.Assessment.TemplateSource == constvars.TemplateSourceMongoDB {
		templateRepository = templates.NewTemplateMongoRepository(bootstrap.MongoDB)
		seed = catalog
	}
	err = migration.Run(ctx, bootstrap.MongoDB, seed, log)
	if err != nil {
		return err
	}

	// Candidates
	var rosterSource contracts.CandidateRosterSource = candidates.NewEmbeddedRosterSource()
	if bootstrap.Minio != nil {
		rosterSource = candidates.NewMinioRosterSource(
			sharedStorage.NewMinioStorage(bootstrap.Minio),
			bootstrap.DriverConfig.Minio.BucketName,
			internalConfig.Matching.CandidateRosterKey,
			log,
		)
	}
	registry, err := candidates.LoadRegistry(ctx, rosterSource)
	if err != nil {
		return err
	}

	// Scoring
	percentileCache, err := scoring.NewPercentileCache(internalConfig.Matching.PercentileCacheSize)
	if err != nil {
		return err
	}
	percentileSource := scoring.NewCachedPercentileSource(scoring.NewNeutralPercentileSource(), percentileCache)
	scoringEngine := scoring.NewScoringEngine(percentileSource, internalConfig.Assessment.MinSecondsPerAnswer, log)

	// Matching
	matchingEngine := matching.NewMatchingEngine(registry, internalConfig.Matching.MaxConcurrency, log)
	var matchingAudits contracts.MatchingAuditRepository
	if internalConfig.Matching.AuditEnabled {
		matchingAudits = matching.NewMatchingAuditMongoRepository(bootstrap.MongoDB)
	}

	// Assessment
	lockerService := locker.NewLockService(sharedRedis.NewRedisRepository(bootstrap.Redis), log)
	assessmentUsecase := assessments.NewAssessmentUsecase(
		templateRepository,
		assessments.NewSessionMongoRepository(bootstrap.MongoDB),
		profiles.NewProfileMongoRepository(bootstrap.MongoDB),
		scoringEngine,
		profiles.NewProfileGenerator(log),
		matchingEngine,
		registry,
		lockerService,
		internalConfig.Assessment,
		log,
	)
	matchingUsecase := matching.NewMatchingUsecase(matchingEngine, registry, assessmentUsecase, matchingAudits, log)
	candidateUsecase := candidates.NewCandidateUsecase(registry, log)

	// Rematch
	var publisher contracts.MessagePublisher
	if bootstrap.RabbitMQ != nil {
		publisher, err = sharedMessaging.NewRabbitMQPublisher(bootstrap.RabbitMQ, log, internalConfig.Rematch.DecisionQueue)
		if err != nil {
			return err
		}
	}
	rematchUsecase := rematch.NewRematchUsecase(
		rematch.NewRematchEvaluator(registry, log),
		assessmentUsecase,
		rematch.NewRematchDecisionMongoRepository(bootstrap.MongoDB),
		publisher,
		internalConfig.Rematch.DecisionQueue,
		log,
	)

	if internalConfig.Rematch.WorkerEnabled && bootstrap.RabbitMQ != nil {
		channel, deliveries, err := sharedMessaging.NewConsumer(
			bootstrap.RabbitMQ,
			internalConfig.Rematch.ProgressQueue,
			"tawjih-rematch-worker",
			internalConfig.Rematch.PrefetchCount,
		)
		if err != nil {
			return err
		}
		worker := rematch.NewWorker(rematchUsecase, internalConfig.Rematch.ProgressQueue, 0, log)
		workerCtx, stopWorker := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			worker.Run(workerCtx, deliveries)
		}()
		bootstrap.WorkerStop = func() {
			stopWorker()
			<-done
			channel.Close()
		}
	}

	// Delivery
	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares.NewMiddlewares(log, internalConfig),
		assessments.NewAssessmentController(log, assessmentUsecase, internalConfig),
		matching.NewMatchingController(log, matchingUsecase, internalConfig),
		candidates.NewCandidateController(log, candidateUsecase, internalConfig),
		rematch.NewRematchController(log, rematchUsecase, internalConfig),
	)
	return nil
}
