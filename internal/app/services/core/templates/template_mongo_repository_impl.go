package templates

import (
	"context"
	"strings"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TemplateMongoRepository struct {
	Collection *mongo.Collection
}

func NewTemplateMongoRepository(db *mongo.Database) *TemplateMongoRepository {
	return &TemplateMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionTemplates),
	}
}

var _ contracts.TemplateRepository = (*TemplateMongoRepository)(nil)

// caseInsensitive compares accented categories the way SameKey does.
var caseInsensitive = &options.Collation{Locale: "fr", Strength: 2}

func (repo *TemplateMongoRepository) FindActiveTemplate(ctx context.Context, assessmentType models.AssessmentType, category, language string) (*models.AssessmentTemplate, error) {
	filter := bson.M{
		"active":          true,
		"assessment_type": assessmentType,
		"category":        strings.TrimSpace(category),
		"language":        strings.TrimSpace(language),
	}
	opts := options.FindOne().
		SetSort(bson.D{{Key: "version", Value: -1}}).
		SetCollation(caseInsensitive)

	var template models.AssessmentTemplate
	err := repo.Collection.FindOne(ctx, filter, opts).Decode(&template)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, exceptions.ErrTemplateNotFound(err, string(assessmentType), category, language)
		}
		return nil, exceptions.ErrMongoDBFindDocument(err, constvars.MongoCollectionTemplates)
	}
	return &template, nil
}

func (repo *TemplateMongoRepository) FindByID(ctx context.Context, templateID string) (*models.AssessmentTemplate, error) {
	var template models.AssessmentTemplate
	err := repo.Collection.FindOne(ctx, bson.M{"_id": templateID}).Decode(&template)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, exceptions.ErrTemplateIDNotFound(err, templateID)
		}
		return nil, exceptions.ErrMongoDBFindDocument(err, constvars.MongoCollectionTemplates)
	}
	return &template, nil
}

// Seed upserts templates by id. Templates are validated before anything is written.
func (repo *TemplateMongoRepository) Seed(ctx context.Context, templates []models.AssessmentTemplate) error {
	for i := range templates {
		if err := ValidateTemplate(&templates[i]); err != nil {
			return err
		}
	}
	for _, template := range templates {
		_, err := repo.Collection.ReplaceOne(ctx, bson.M{"_id": template.ID}, template, options.Replace().SetUpsert(true))
		if err != nil {
			return exceptions.ErrMongoDBUpdateDocument(err, constvars.MongoCollectionTemplates)
		}
	}
	return nil
}
