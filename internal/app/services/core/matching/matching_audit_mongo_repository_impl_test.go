package matching

import (
	"context"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMatchingAuditMongoRepositoryInsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	recommendation := &models.MatchingRecommendation{
		ID:          "rec-1",
		ProfileID:   "profile-1",
		Recommended: models.MatchScore{CandidateID: "dr_amina", Rank: 1},
		GeneratedAt: time.Now(),
	}

	mt.Run("Insert Succeeds", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMatchingAuditMongoRepository(mt.DB)
		assert.NoError(mt, repo.Insert(context.Background(), recommendation))
	})

	mt.Run("Insert Failure Is Transient", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 91, Message: "shutdown in progress"}))
		repo := NewMatchingAuditMongoRepository(mt.DB)
		err := repo.Insert(context.Background(), recommendation)
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeTransient))
		assert.True(t, exceptions.IsRetryable(err))
	})
}
