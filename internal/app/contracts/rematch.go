package contracts

import (
	"context"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/pkg/dto/requests"
)

type RematchEvaluator interface {
	Evaluate(ctx context.Context, currentCandidateID string, profile *models.TherapeuticProfile, progress models.ProgressSnapshot) (*models.RematchDecision, error)
}

type RematchUsecase interface {
	EvaluateRematch(ctx context.Context, request *requests.EvaluateRematch) (*models.RematchDecision, error)
	// ProcessSnapshot evaluates a scheduler snapshot, stores the decision and publishes it when a change is advised.
	ProcessSnapshot(ctx context.Context, snapshot models.ProgressSnapshot) (*models.RematchDecision, error)
	FindDecision(ctx context.Context, snapshotID string) (*models.RematchDecision, error)
}

type RematchDecisionRepository interface {
	// Upsert keys the decision by snapshot id so redelivered snapshots overwrite rather than duplicate.
	Upsert(ctx context.Context, decision *models.RematchDecision) error
	FindBySnapshotID(ctx context.Context, snapshotID string) (*models.RematchDecision, error)
}
