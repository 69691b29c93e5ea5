package candidates

import (
	"context"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type candidateUsecase struct {
	Registry contracts.CandidateRegistry
	Log      *zap.Logger
}

func NewCandidateUsecase(registry contracts.CandidateRegistry, logger *zap.Logger) contracts.CandidateUsecase {
	return &candidateUsecase{
		Registry: registry,
		Log:      logger,
	}
}

func (uc *candidateUsecase) ListCandidates(ctx context.Context) ([]models.CandidateProfile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	candidates := uc.Registry.List()
	uc.Log.Info("candidateUsecase.ListCandidates succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCandidateCountKey, len(candidates)),
	)
	return candidates, nil
}
