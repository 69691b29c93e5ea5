package rematch

import (
	"context"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RematchDecisionMongoRepository struct {
	Collection *mongo.Collection
}

func NewRematchDecisionMongoRepository(db *mongo.Database) *RematchDecisionMongoRepository {
	return &RematchDecisionMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionRematchDecisions),
	}
}

var _ contracts.RematchDecisionRepository = (*RematchDecisionMongoRepository)(nil)

// Upsert replaces the decision stored for the same snapshot. The caller derives decision.ID from
// the snapshot id so the replacement never changes _id.
func (repo *RematchDecisionMongoRepository) Upsert(ctx context.Context, decision *models.RematchDecision) error {
	_, err := repo.Collection.ReplaceOne(ctx,
		bson.M{"snapshot_id": decision.SnapshotID},
		decision,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err, constvars.MongoCollectionRematchDecisions)
	}
	return nil
}

func (repo *RematchDecisionMongoRepository) FindBySnapshotID(ctx context.Context, snapshotID string) (*models.RematchDecision, error) {
	var decision models.RematchDecision
	err := repo.Collection.FindOne(ctx, bson.M{"snapshot_id": snapshotID}).Decode(&decision)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, exceptions.ErrRematchDecisionNotFound(err, snapshotID)
		}
		return nil, exceptions.ErrMongoDBFindDocument(err, constvars.MongoCollectionRematchDecisions)
	}
	return &decision, nil
}
