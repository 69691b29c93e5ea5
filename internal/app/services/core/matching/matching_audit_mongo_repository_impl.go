package matching

import (
	"context"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/mongo"
)

// MatchingAuditMongoRepository keeps every recommendation that was returned to a client.
type MatchingAuditMongoRepository struct {
	Collection *mongo.Collection
}

func NewMatchingAuditMongoRepository(db *mongo.Database) *MatchingAuditMongoRepository {
	return &MatchingAuditMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionMatchingAudits),
	}
}

var _ contracts.MatchingAuditRepository = (*MatchingAuditMongoRepository)(nil)

func (repo *MatchingAuditMongoRepository) Insert(ctx context.Context, recommendation *models.MatchingRecommendation) error {
	_, err := repo.Collection.InsertOne(ctx, recommendation)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err, constvars.MongoCollectionMatchingAudits)
	}
	return nil
}
