package profiles

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

type ProfileMongoRepository struct {
	Collection *mongo.Collection
}

func NewProfileMongoRepository(db *mongo.Database) *ProfileMongoRepository {
	return &ProfileMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionTherapeuticProfile),
	}
}

var _ contracts.ProfileRepository = (*ProfileMongoRepository)(nil)

// EnsureIndexes makes session_id unique, which is what keeps one profile per session.
func (repo *ProfileMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := repo.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "session_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err, constvars.MongoCollectionTherapeuticProfile)
	}
	return nil
}

func (repo *ProfileMongoRepository) Insert(ctx context.Context, profile *models.TherapeuticProfile) error {
	_, err := repo.Collection.InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrProfileAlreadyExists(err, profile.SessionID)
		}
		return exceptions.ErrMongoDBInsertDocument(err, constvars.MongoCollectionTherapeuticProfile)
	}
	return nil
}

func (repo *ProfileMongoRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.TherapeuticProfile, error) {
	var profile models.TherapeuticProfile
	err := repo.Collection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, exceptions.ErrProfileNotFound(err, sessionID)
		}
		return nil, exceptions.ErrMongoDBFindDocument(err, constvars.MongoCollectionTherapeuticProfile)
	}
	return &profile, nil
}
