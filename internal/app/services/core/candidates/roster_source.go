package candidates

import (
	"context"
	_ "embed"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

//go:embed roster.yaml
var embeddedRoster []byte

type embeddedRosterSource struct{}

// NewEmbeddedRosterSource serves the roster compiled into the binary.
func NewEmbeddedRosterSource() contracts.CandidateRosterSource {
	return embeddedRosterSource{}
}

func (embeddedRosterSource) LoadRoster(ctx context.Context) (*models.CandidateRoster, error) {
	return ParseRoster(embeddedRoster)
}

type minioRosterSource struct {
	Storage    contracts.Storage
	BucketName string
	ObjectName string
	Log        *zap.Logger
}

// NewMinioRosterSource reads the roster from an object in the same YAML shape as roster.yaml.
func NewMinioRosterSource(storage contracts.Storage, bucketName, objectName string, logger *zap.Logger) contracts.CandidateRosterSource {
	return &minioRosterSource{
		Storage:    storage,
		BucketName: bucketName,
		ObjectName: objectName,
		Log:        logger,
	}
}

func (s *minioRosterSource) LoadRoster(ctx context.Context) (*models.CandidateRoster, error) {
	s.Log.Info("minioRosterSource.LoadRoster called",
		zap.String(constvars.LoggingBucketKey, s.BucketName),
		zap.String(constvars.LoggingObjectKey, s.ObjectName),
	)

	raw, err := s.Storage.GetObject(ctx, s.BucketName, s.ObjectName)
	if err != nil {
		s.Log.Error("minioRosterSource.LoadRoster error fetching roster object",
			zap.Error(err),
		)
		return nil, err
	}

	roster, err := ParseRoster(raw)
	if err != nil {
		s.Log.Error("minioRosterSource.LoadRoster error parsing roster",
			zap.Error(err),
		)
		return nil, err
	}

	s.Log.Info("minioRosterSource.LoadRoster succeeded",
		zap.Int(constvars.LoggingCandidateCountKey, len(roster.Candidates)),
	)
	return roster, nil
}

// LoadRegistry loads and validates a roster from source.
func LoadRegistry(ctx context.Context, source contracts.CandidateRosterSource) (contracts.CandidateRegistry, error) {
	roster, err := source.LoadRoster(ctx)
	if err != nil {
		return nil, err
	}
	return NewRegistry(roster)
}
