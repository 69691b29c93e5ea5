package assessments

import (
	"context"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SessionMongoRepository struct {
	Collection *mongo.Collection
}

func NewSessionMongoRepository(db *mongo.Database) *SessionMongoRepository {
	return &SessionMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionSessions),
	}
}

var _ contracts.SessionRepository = (*SessionMongoRepository)(nil)

func (repo *SessionMongoRepository) Create(ctx context.Context, session *models.AssessmentSession) error {
	_, err := repo.Collection.InsertOne(ctx, session)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err, constvars.MongoCollectionSessions)
	}
	return nil
}

func (repo *SessionMongoRepository) FindByID(ctx context.Context, sessionID string) (*models.AssessmentSession, error) {
	var session models.AssessmentSession
	err := repo.Collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, exceptions.ErrSessionNotFound(err, sessionID)
		}
		return nil, exceptions.ErrMongoDBFindDocument(err, constvars.MongoCollectionSessions)
	}
	return &session, nil
}

// Update replaces the session only if it is still at expectedVersion, and bumps the version.
// A writer that lost the race gets a retryable conflict and must reload.
func (repo *SessionMongoRepository) Update(ctx context.Context, session *models.AssessmentSession, expectedVersion int64) error {
	session.Version = expectedVersion + 1
	result, err := repo.Collection.ReplaceOne(ctx, bson.M{"_id": session.ID, "version": expectedVersion}, session)
	if err != nil {
		session.Version = expectedVersion
		return exceptions.ErrMongoDBUpdateDocument(err, constvars.MongoCollectionSessions)
	}
	if result.MatchedCount == 0 {
		session.Version = expectedVersion
		return exceptions.ErrSessionVersionConflict(nil, session.ID)
	}
	return nil
}
