package contracts

import (
	"context"
	"tawjih-service/internal/app/models"
)

type ProfileGenerator interface {
	Generate(ctx context.Context, template *models.AssessmentTemplate, session *models.AssessmentSession, scores *models.ScoreResult) (*models.TherapeuticProfile, error)
}

type ProfileRepository interface {
	// Insert fails with a duplicate error when a profile already exists for the session.
	Insert(ctx context.Context, profile *models.TherapeuticProfile) error
	FindBySessionID(ctx context.Context, sessionID string) (*models.TherapeuticProfile, error)
}

// ProfileLookup resolves the therapeutic profile of a completed session.
type ProfileLookup interface {
	FindTherapeuticProfile(ctx context.Context, sessionID string) (*models.TherapeuticProfile, error)
}
