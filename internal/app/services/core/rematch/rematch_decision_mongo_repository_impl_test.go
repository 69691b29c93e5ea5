package rematch

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

func TestRematchDecisionMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Upsert Replaces By Snapshot", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		repo := NewRematchDecisionMongoRepository(mt.DB)
		err := repo.Upsert(context.Background(), &models.RematchDecision{ID: "d-1", SnapshotID: "snap-1"})
		assert.NoError(mt, err)
	})

	mt.Run("Find Decodes The Decision", func(mt *mtest.T) {
		namespace := mt.DB.Name() + "." + constvars.MongoCollectionRematchDecisions
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "d-1"},
			{Key: "snapshot_id", Value: "snap-1"},
			{Key: "current_candidate_id", Value: "dr_claire"},
			{Key: "change_recommended", Value: true},
			{Key: "timing_recommendation", Value: "end_of_cycle"},
			{Key: "alternative_candidate_id", Value: "dr_karim"},
		}))
		repo := NewRematchDecisionMongoRepository(mt.DB)
		decision, err := repo.FindBySnapshotID(context.Background(), "snap-1")
		require.NoError(mt, err)
		assert.True(mt, decision.ChangeRecommended)
		assert.Equal(mt, models.RematchTimingEndOfCycle, decision.Timing)
		assert.Equal(mt, "dr_karim", decision.AlternativeCandidateID)
	})

	mt.Run("Missing Decision Is Not Found", func(mt *mtest.T) {
		namespace := mt.DB.Name() + "." + constvars.MongoCollectionRematchDecisions
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace, mtest.FirstBatch))
		repo := NewRematchDecisionMongoRepository(mt.DB)
		_, err := repo.FindBySnapshotID(context.Background(), "snap-x")
		assert.True(mt, exceptions.HasCode(err, constvars.ErrCodeRematchDecisionNotFound))
	})
}
