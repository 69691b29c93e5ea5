package templates

import (
	"context"
	"strings"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/pkg/exceptions"
)

type catalogRepository struct {
	templates []models.AssessmentTemplate
}

// NewCatalogRepository serves templates from memory. The slice is copied.
func NewCatalogRepository(templates []models.AssessmentTemplate) contracts.TemplateRepository {
	copied := make([]models.AssessmentTemplate, len(templates))
	copy(copied, templates)
	return &catalogRepository{templates: copied}
}

func (repo *catalogRepository) FindActiveTemplate(ctx context.Context, assessmentType models.AssessmentType, category, language string) (*models.AssessmentTemplate, error) {
	var latest *models.AssessmentTemplate
	for i := range repo.templates {
		template := &repo.templates[i]
		if !template.Active || template.AssessmentType != assessmentType {
			continue
		}
		if !SameKey(template.Category, category) || !SameKey(template.Language, language) {
			continue
		}
		if latest == nil || template.Version > latest.Version {
			latest = template
		}
	}
	if latest == nil {
		return nil, exceptions.ErrTemplateNotFound(nil, string(assessmentType), category, language)
	}
	found := *latest
	return &found, nil
}

func (repo *catalogRepository) FindByID(ctx context.Context, templateID string) (*models.AssessmentTemplate, error) {
	for i := range repo.templates {
		if repo.templates[i].ID == templateID {
			found := repo.templates[i]
			return &found, nil
		}
	}
	return nil, exceptions.ErrTemplateIDNotFound(nil, templateID)
}

// SameKey compares catalog keys such as categories and language codes.
func SameKey(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
