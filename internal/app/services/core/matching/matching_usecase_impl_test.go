package matching

import (
	"context"
	"errors"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/dto/requests"
	"tawjih-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProfileLookup struct {
	mock.Mock
}

func (m *mockProfileLookup) FindTherapeuticProfile(ctx context.Context, sessionID string) (*models.TherapeuticProfile, error) {
	args := m.Called(ctx, sessionID)
	profile, _ := args.Get(0).(*models.TherapeuticProfile)
	return profile, args.Error(1)
}

type mockAuditRepository struct {
	mock.Mock
}

func (m *mockAuditRepository) Insert(ctx context.Context, recommendation *models.MatchingRecommendation) error {
	return m.Called(ctx, recommendation).Error(0)
}

func TestMatchingUsecaseMatchExpert(t *testing.T) {
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
	registry := loadRegistry(t)
	engine := NewMatchingEngine(registry, 2, zap.NewNop())

	t.Run("Matches A Stored Profile And Records It", func(t *testing.T) {
		profiles := new(mockProfileLookup)
		audits := new(mockAuditRepository)
		profiles.On("FindTherapeuticProfile", ctx, "session-1").Return(socialAnxietyProfile(), nil).Once()
		audits.On("Insert", ctx, mock.MatchedBy(func(r *models.MatchingRecommendation) bool {
			return r.Recommended.CandidateID == "dr_amina" && r.SessionID == "session-1"
		})).Return(nil).Once()

		usecase := NewMatchingUsecase(engine, registry, profiles, audits, zap.NewNop())
		recommendation, err := usecase.MatchExpert(ctx, &requests.MatchExpert{SessionID: "session-1"})
		require.NoError(t, err)
		assert.Equal(t, "dr_amina", recommendation.Recommended.CandidateID)
		profiles.AssertExpectations(t)
		audits.AssertExpectations(t)
	})

	t.Run("Inline Profile Skips The Lookup", func(t *testing.T) {
		profiles := new(mockProfileLookup)
		profile := socialAnxietyProfile()
		profile.ID = ""

		usecase := NewMatchingUsecase(engine, registry, profiles, nil, zap.NewNop())
		recommendation, err := usecase.MatchExpert(ctx, &requests.MatchExpert{Profile: profile})
		require.NoError(t, err)
		assert.NotEmpty(t, recommendation.ProfileID)
		profiles.AssertNotCalled(t, "FindTherapeuticProfile", mock.Anything, mock.Anything)
	})

	t.Run("Audit Failure Does Not Fail The Match", func(t *testing.T) {
		audits := new(mockAuditRepository)
		audits.On("Insert", ctx, mock.Anything).Return(exceptions.ErrMongoDBInsertDocument(errors.New("down"), constvars.MongoCollectionMatchingAudits)).Once()

		usecase := NewMatchingUsecase(engine, registry, new(mockProfileLookup), audits, zap.NewNop())
		recommendation, err := usecase.MatchExpert(ctx, &requests.MatchExpert{Profile: socialAnxietyProfile()})
		require.NoError(t, err)
		assert.NotNil(t, recommendation)
	})

	t.Run("Missing Profile Is Returned As Is", func(t *testing.T) {
		profiles := new(mockProfileLookup)
		profiles.On("FindTherapeuticProfile", ctx, "session-2").Return(nil, exceptions.ErrSessionNotCompleted(nil, "session-2")).Once()

		usecase := NewMatchingUsecase(engine, registry, profiles, nil, zap.NewNop())
		_, err := usecase.MatchExpert(ctx, &requests.MatchExpert{SessionID: "session-2"})
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeSessionNotCompleted))
	})
}

func TestMatchingUsecaseQuickMatch(t *testing.T) {
	registry := loadRegistry(t)
	usecase := NewMatchingUsecase(NewMatchingEngine(registry, 1, zap.NewNop()), registry, nil, nil, zap.NewNop())

	result, err := usecase.QuickMatch(context.Background(), &requests.QuickMatch{Category: "anxiété", CulturalContext: "marocain", Language: "ar"})
	require.NoError(t, err)
	assert.Equal(t, "dr_amina", result.Candidate.ID)
	assert.Equal(t, 90, result.Confidence)
}

func TestMatchingUsecaseAnalyzeVoice(t *testing.T) {
	registry := loadRegistry(t)
	usecase := NewMatchingUsecase(NewMatchingEngine(registry, 1, zap.NewNop()), registry, nil, nil, zap.NewNop())

	t.Run("Known Candidate", func(t *testing.T) {
		result, err := usecase.AnalyzeVoice(context.Background(), &requests.VoiceCompatibility{CandidateID: "dr_lea"})
		require.NoError(t, err)
		assert.Equal(t, "dr_lea", result.CandidateID)
		assert.Equal(t, 80, result.Score)
	})

	t.Run("Unknown Candidate", func(t *testing.T) {
		_, err := usecase.AnalyzeVoice(context.Background(), &requests.VoiceCompatibility{CandidateID: "dr_nobody"})
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeCandidateNotFound))
	})
}
