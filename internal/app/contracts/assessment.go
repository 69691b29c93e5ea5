package contracts

import (
	"context"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/pkg/dto/requests"
	"tawjih-service/internal/pkg/dto/responses"
)

type AssessmentUsecase interface {
	StartAssessment(ctx context.Context, request *requests.StartAssessment) (*responses.StartAssessment, error)
	SubmitResponses(ctx context.Context, request *requests.SubmitResponses) (*responses.SubmitResponses, error)
	FindSession(ctx context.Context, sessionID string) (*responses.AssessmentSession, error)
	FindTherapeuticProfile(ctx context.Context, sessionID string) (*models.TherapeuticProfile, error)
	FindScores(ctx context.Context, sessionID string) (*models.ScoreResult, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.AssessmentSession) error
	FindByID(ctx context.Context, sessionID string) (*models.AssessmentSession, error)
	// Update writes the session only if its stored version equals expectedVersion.
	Update(ctx context.Context, session *models.AssessmentSession, expectedVersion int64) error
}
