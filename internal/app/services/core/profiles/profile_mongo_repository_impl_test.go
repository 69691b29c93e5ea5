package profiles

import (
	"context"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestProfileMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	profile := &models.TherapeuticProfile{ID: "profile-1", SessionID: "session-1", PrimaryDiagnosis: "anxiété_sociale"}

	mt.Run("Insert Stores The Profile", func(mt *mtest.T) {
		repo := NewProfileMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(t, repo.Insert(ctx, profile))
	})

	mt.Run("Second Insert For A Session Is Refused", func(mt *mtest.T) {
		repo := NewProfileMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))

		err := repo.Insert(ctx, profile)
		require.Error(t, err)
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeProfileAlreadyExists))
	})

	mt.Run("Find By Session Decodes The Stored Profile", func(mt *mtest.T) {
		repo := NewProfileMongoRepository(mt.DB)
		namespace := mt.DB.Name() + "." + constvars.MongoCollectionTherapeuticProfile
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "profile-1"},
			{Key: "session_id", Value: "session-1"},
			{Key: "primary_diagnosis", Value: "anxiété_sociale"},
		}))

		found, err := repo.FindBySessionID(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, "profile-1", found.ID)
		assert.Equal(t, "anxiété_sociale", found.PrimaryDiagnosis)
	})

	mt.Run("Missing Profile Is Not Found", func(mt *mtest.T) {
		repo := NewProfileMongoRepository(mt.DB)
		namespace := mt.DB.Name() + "." + constvars.MongoCollectionTherapeuticProfile
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace, mtest.FirstBatch))

		_, err := repo.FindBySessionID(ctx, "session-2")
		require.Error(t, err)
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeProfileNotFound))
	})
}
