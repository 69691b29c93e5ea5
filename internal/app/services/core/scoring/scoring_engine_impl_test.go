package scoring

import (
	"context"
	"errors"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/app/services/core/templates"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPercentileSource struct {
	mock.Mock
}

func (m *mockPercentileSource) Percentile(ctx context.Context, templateID string, totalScore int) (int, bool, error) {
	args := m.Called(ctx, templateID, totalScore)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func loadTemplate(t *testing.T, templateID string) *models.AssessmentTemplate {
	catalog, err := templates.LoadEmbeddedCatalog()
	require.NoError(t, err)
	template, err := templates.NewCatalogRepository(catalog).FindByID(context.Background(), templateID)
	require.NoError(t, err)
	return template
}

type answer struct {
	questionID string
	value      float64
}

func sessionWith(start time.Time, step time.Duration, answers ...answer) *models.AssessmentSession {
	session := &models.AssessmentSession{ID: "session-1", CreatedAt: start, Status: models.SessionStatusCompleted}
	for i, a := range answers {
		session.Responses = append(session.Responses, models.NumericResponse(a.questionID, a.value, start.Add(time.Duration(i+1)*step)))
	}
	return session
}

var severeAnxiety = []answer{
	{"a1", 3}, {"a2", 3}, {"a3", 3}, {"a4", 0}, {"a5", 2}, {"a6", 1}, {"a7", 1},
	{"a_sociale_evitement", 3}, {"s1", 1}, {"c1", 0}, {"m1", 9}, {"r1", 7},
}

func TestScoringEngineCompute(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	engine := NewScoringEngine(NewNeutralPercentileSource(), 2, zap.NewNop())

	t.Run("Reversed Sum Lands In The Severe Band", func(t *testing.T) {
		template := loadTemplate(t, "anxiete-initial-fr-v2")
		result, err := engine.Compute(ctx, template, sessionWith(start, 10*time.Second, severeAnxiety...))
		require.NoError(t, err)

		assert.Equal(t, 16.0, result.TotalScore)
		assert.Equal(t, 16, result.RoundedTotal)
		assert.Equal(t, "sévère", result.Severity.Label)
		assert.Equal(t, models.SeveritySevere, result.Severity.Level)
		assert.Equal(t, 0.0, result.TheoreticalMin)
		assert.Equal(t, 21.0, result.TheoreticalMax)
	})

	t.Run("Without Reversal The Same Answers Score Lower", func(t *testing.T) {
		template := loadTemplate(t, "anxiete-initial-fr-v1")
		result, err := engine.Compute(ctx, template, sessionWith(start, 10*time.Second, severeAnxiety...))
		require.NoError(t, err)
		assert.Equal(t, 13, result.RoundedTotal)
		assert.Equal(t, "modéré", result.Severity.Label)
	})

	t.Run("Subscales Are Rescaled To One Through Ten", func(t *testing.T) {
		template := loadTemplate(t, "anxiete-initial-fr-v2")
		result, err := engine.Compute(ctx, template, sessionWith(start, 10*time.Second, severeAnxiety...))
		require.NoError(t, err)

		assert.Equal(t, 10.0, result.SubscaleScores["generalisee"])
		assert.Equal(t, 7.0, result.SubscaleScores["sociale"])
		assert.Equal(t, 4.0, result.SubscaleScores["panique"])
	})

	t.Run("Weights Multiply After Reversal", func(t *testing.T) {
		template := loadTemplate(t, "anxiete-initial-ar-v1")
		answers := []answer{{"a1", 1}, {"a2", 1}, {"a3", 3}, {"a4", 3}, {"a5", 0}, {"a6", 0}, {"a7", 0}}
		result, err := engine.Compute(ctx, template, sessionWith(start, 10*time.Second, answers...))
		require.NoError(t, err)

		assert.Equal(t, 8.0, result.TotalScore)
		assert.Equal(t, "léger", result.Severity.Label)
		assert.Equal(t, 24.0, result.TheoreticalMax)
	})

	t.Run("Neutral Percentile Is Flagged As Approximate", func(t *testing.T) {
		template := loadTemplate(t, "anxiete-initial-fr-v2")
		result, err := engine.Compute(ctx, template, sessionWith(start, 10*time.Second, severeAnxiety...))
		require.NoError(t, err)

		assert.Equal(t, 50, result.Percentile.Value)
		assert.True(t, result.Percentile.Approximate)
		assert.Equal(t, models.PercentileSourceNeutral, result.Percentile.Source)
	})

	t.Run("Fast Completion Lowers Reliability", func(t *testing.T) {
		template := loadTemplate(t, "anxiete-initial-fr-v2")
		result, err := engine.Compute(ctx, template, sessionWith(start, 500*time.Millisecond, severeAnxiety...))
		require.NoError(t, err)

		assert.True(t, result.Reliability.LowReliability)
		assert.Contains(t, result.Reliability.Flags, models.ReliabilityFlagFastCompletion)
		assert.Equal(t, len(severeAnxiety), result.Reliability.AnsweredCount)
	})

	t.Run("Completion Rate Counts Only Applicable Questions", func(t *testing.T) {
		template := loadTemplate(t, "anxiete-initial-fr-v2")
		result, err := engine.Compute(ctx, template, sessionWith(start, 10*time.Second, severeAnxiety...))
		require.NoError(t, err)

		// w1, a_panique_crise and c2 are hidden; the optional and preference questions are unanswered
		assert.Less(t, result.Reliability.CompletionRate, 1.0)
		assert.Contains(t, result.Reliability.Flags, models.ReliabilityFlagIncomplete)
		assert.Equal(t, 20, result.Reliability.TotalQuestions)
	})

	t.Run("Score Outside Every Band Is A Configuration Error", func(t *testing.T) {
		template := loadTemplate(t, "anxiete-initial-fr-v2")
		template.Scoring.Bands = template.Scoring.Bands[:2]
		_, err := engine.Compute(ctx, template, sessionWith(start, 10*time.Second, severeAnxiety...))
		require.Error(t, err)
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeScoringConfiguration))
	})

	t.Run("Average Without Numeric Answers Fails", func(t *testing.T) {
		template := loadTemplate(t, "anxiete-initial-fr-v2")
		template.Scoring.Mode = models.AggregationAverage
		_, err := engine.Compute(ctx, template, sessionWith(start, 10*time.Second))
		require.Error(t, err)
		assert.Equal(t, exceptions.KindConfiguration, exceptions.KindOf(err))
	})

	t.Run("Average Divides By Scored Responses", func(t *testing.T) {
		template := loadTemplate(t, "anxiete-initial-fr-v2")
		template.Scoring.Mode = models.AggregationAverage
		template.Scoring.Bands = []models.SeverityBand{
			{Label: "léger", Level: models.SeverityMild, Min: 0, Max: 1},
			{Label: "sévère", Level: models.SeveritySevere, Min: 2, Max: 3},
		}
		result, err := engine.Compute(ctx, template, sessionWith(start, 10*time.Second, severeAnxiety...))
		require.NoError(t, err)
		assert.InDelta(t, 16.0/7.0, result.TotalScore, 0.01)
		assert.Equal(t, 2, result.RoundedTotal)
	})

	t.Run("Percentile Source Failure Is Returned", func(t *testing.T) {
		source := new(mockPercentileSource)
		source.On("Percentile", ctx, "anxiete-initial-fr-v2", 16).
			Return(0, false, exceptions.ErrMongoDBFindDocument(errors.New("timeout"), "norms"))

		failing := NewScoringEngine(source, 2, zap.NewNop())
		_, err := failing.Compute(ctx, loadTemplate(t, "anxiete-initial-fr-v2"), sessionWith(start, 10*time.Second, severeAnxiety...))
		require.Error(t, err)
		assert.True(t, exceptions.IsRetryable(err))
	})
}

func TestTotalStaysWithinTheoreticalRange(t *testing.T) {
	ctx := context.Background()
	engine := NewScoringEngine(NewNeutralPercentileSource(), 0, zap.NewNop())
	start := time.Now()

	for _, templateID := range []string{"anxiete-initial-fr-v2", "anxiete-initial-ar-v1", "depression-initial-fr-v1"} {
		template := loadTemplate(t, templateID)
		for _, extreme := range []string{"min", "max"} {
			t.Run(templateID+" "+extreme, func(t *testing.T) {
				var answers []answer
				for _, question := range template.Questions {
					if !question.IsNumeric() || question.IsConditional() {
						continue
					}
					low, high := question.Bounds()
					value := low
					if extreme == "max" {
						value = high
					}
					answers = append(answers, answer{question.ID, value})
				}

				result, err := engine.Compute(ctx, template, sessionWith(start, time.Second, answers...))
				require.NoError(t, err)
				assert.GreaterOrEqual(t, result.TotalScore, result.TheoreticalMin)
				assert.LessOrEqual(t, result.TotalScore, result.TheoreticalMax)
			})
		}
	}
}

func TestCachedPercentileSource(t *testing.T) {
	ctx := context.Background()
	source := new(mockPercentileSource)
	source.On("Percentile", ctx, "tpl", 12).Return(73, true, nil).Once()
	source.On("Percentile", ctx, "tpl", 13).Return(0, false, errors.New("unavailable")).Twice()

	cache, err := NewPercentileCache(8)
	require.NoError(t, err)
	cached := NewCachedPercentileSource(source, cache)

	t.Run("Hits Do Not Reach The Source", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			value, found, err := cached.Percentile(ctx, "tpl", 12)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, 73, value)
		}
	})

	t.Run("Failures Are Not Cached", func(t *testing.T) {
		_, _, err := cached.Percentile(ctx, "tpl", 13)
		assert.Error(t, err)
		_, _, err = cached.Percentile(ctx, "tpl", 13)
		assert.Error(t, err)
	})

	source.AssertExpectations(t)
}
