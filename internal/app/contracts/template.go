package contracts

import (
	"context"
	"tawjih-service/internal/app/models"
)

type TemplateRepository interface {
	FindActiveTemplate(ctx context.Context, assessmentType models.AssessmentType, category, language string) (*models.AssessmentTemplate, error)
	FindByID(ctx context.Context, templateID string) (*models.AssessmentTemplate, error)
}
