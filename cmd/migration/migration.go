package migration

import (
	"context"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/app/services/core/profiles"
	"tawjih-service/internal/app/services/core/templates"
	"tawjih-service/internal/pkg/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run prepares the database before the server accepts traffic. Templates are upserted only
// when seed is not empty, which is the case when they are served from MongoDB.
func Run(ctx context.Context, db *mongo.Database, seed []models.AssessmentTemplate, log *zap.Logger) error {
	err := utils.LogOperation(log, "ensure_profile_indexes", "", func() error {
		return profiles.NewProfileMongoRepository(db).EnsureIndexes(ctx)
	})
	if err != nil {
		return err
	}

	if len(seed) == 0 {
		return nil
	}
	err = utils.LogOperation(log, "seed_assessment_templates", "", func() error {
		return templates.NewTemplateMongoRepository(db).Seed(ctx, seed)
	})
	if err != nil {
		return err
	}
	log.Info("Seeded assessment templates", zap.Int("count", len(seed)))
	return nil
}
