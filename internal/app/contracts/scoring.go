package contracts

import (
	"context"
	"tawjih-service/internal/app/models"
)

type ScoringEngine interface {
	Compute(ctx context.Context, template *models.AssessmentTemplate, session *models.AssessmentSession) (*models.ScoreResult, error)
}

// PercentileSource answers normative lookups. It returns false when no dataset covers the template.
type PercentileSource interface {
	Percentile(ctx context.Context, templateID string, totalScore int) (int, bool, error)
}
