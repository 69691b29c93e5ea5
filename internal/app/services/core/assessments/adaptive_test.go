package assessments

import (
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/app/services/core/templates"
	"tawjih-service/internal/pkg/dto/requests"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anxietyTemplate(t *testing.T) *models.AssessmentTemplate {
	t.Helper()
	catalog, err := templates.LoadEmbeddedCatalog()
	require.NoError(t, err)
	for i := range catalog {
		if catalog[i].ID == "anxiete-initial-fr-v2" {
			return &catalog[i]
		}
	}
	t.Fatal("anxiete-initial-fr-v2 missing from the embedded catalog")
	return nil
}

func numeric(questionID string, value float64) models.AssessmentResponse {
	return models.NumericResponse(questionID, value, time.Now())
}

func TestEstimatedTotal(t *testing.T) {
	t.Run("Estimate Is Capped At The Bank Size", func(t *testing.T) {
		template := anxietyTemplate(t)
		assert.Len(t, template.Questions, 23)
		assert.Equal(t, 23, EstimatedTotal(template, 0.30))
	})

	t.Run("Estimate Adds The Adaptive Share To Unconditional Questions", func(t *testing.T) {
		condition := &models.Condition{QuestionID: "q0", Operator: models.OperatorEquals, Value: "1"}
		template := &models.AssessmentTemplate{}
		for i := 0; i < 10; i++ {
			question := models.AssessmentQuestion{ID: string(rune('a' + i)), Kind: models.QuestionKindBoolean}
			if i >= 5 {
				question.ShowIf = condition
			}
			template.Questions = append(template.Questions, question)
		}
		assert.Equal(t, 8, EstimatedTotal(template, 0.30))
	})
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0, Progress(0, 23))
	assert.Equal(t, 22, Progress(5, 23))
	assert.Equal(t, 100, Progress(30, 23))
	assert.Equal(t, 100, Progress(0, 0))
}

func TestNextBatch(t *testing.T) {
	template := anxietyTemplate(t)

	t.Run("First Batch Holds Unconditional Questions", func(t *testing.T) {
		batch := NextBatch(template, map[string]models.AssessmentResponse{}, map[string]bool{}, 3)
		assert.Equal(t, []string{"a1", "a2", "a3"}, questionIDs(batch))
	})

	t.Run("Satisfied Condition Unlocks A Follow Up", func(t *testing.T) {
		answers := map[string]models.AssessmentResponse{
			"a1": numeric("a1", 1), "a2": numeric("a2", 1), "a3": numeric("a3", 1),
			"a4": numeric("a4", 1), "a5": numeric("a5", 2), "a6": numeric("a6", 1),
		}
		batch := NextBatch(template, answers, map[string]bool{}, 3)
		assert.Equal(t, []string{"a7", "a_sociale_evitement", "s1"}, questionIDs(batch))
	})

	t.Run("Unresolved Conditions Wait", func(t *testing.T) {
		answers := map[string]models.AssessmentResponse{
			"a1": numeric("a1", 1), "a2": numeric("a2", 1), "a3": numeric("a3", 1),
			"a4": numeric("a4", 1), "a5": numeric("a5", 0), "a6": numeric("a6", 1),
		}
		batch := NextBatch(template, answers, map[string]bool{}, 3)
		assert.Equal(t, []string{"a7", "s1", "s2"}, questionIDs(batch))
	})

	t.Run("Skipped Questions Are Not Issued Again", func(t *testing.T) {
		batch := NextBatch(template, map[string]models.AssessmentResponse{}, map[string]bool{"a1": true}, 2)
		assert.Equal(t, []string{"a2", "a3"}, questionIDs(batch))
	})
}

func TestEvaluateBatch(t *testing.T) {
	template := anxietyTemplate(t)
	now := time.Now()
	newSession := func(pending ...string) *models.AssessmentSession {
		return &models.AssessmentSession{ID: "s-1", TemplateID: template.ID, PendingQuestionIDs: pending}
	}
	reasons := func(outcome *batchOutcome) map[string]models.RejectionReason {
		result := make(map[string]models.RejectionReason)
		for _, rejection := range outcome.rejections {
			result[rejection.QuestionID] = rejection.Reason
		}
		return result
	}

	t.Run("Invalid Responses Are Rejected One By One", func(t *testing.T) {
		outcome := evaluateBatch(template, newSession("a1", "a2", "a3"), []requests.ResponseInput{
			{QuestionID: "a1", Value: float64(2)},
			{QuestionID: "a2", Value: float64(5)},
			{QuestionID: "zz", Value: float64(1)},
		}, now)

		assert.Equal(t, []string{"a1"}, outcome.acceptedIDs())
		assert.Equal(t, map[string]models.RejectionReason{
			"a2": models.RejectionOutOfRange,
			"zz": models.RejectionUnknownQuestion,
			"a3": models.RejectionRequiredMissing,
		}, reasons(outcome))
	})

	t.Run("Duplicate Answers Are Rejected", func(t *testing.T) {
		session := newSession("a2")
		session.Responses = []models.AssessmentResponse{numeric("a1", 1)}
		outcome := evaluateBatch(template, session, []requests.ResponseInput{
			{QuestionID: "a1", Value: float64(2)},
			{QuestionID: "a2", Value: float64(2)},
			{QuestionID: "a2", Value: float64(3)},
		}, now)

		assert.Equal(t, []string{"a2"}, outcome.acceptedIDs())
		assert.Equal(t, 2.0, *outcome.answers["a2"].NumericValue)
		assert.Len(t, outcome.rejections, 2)
		for _, rejection := range outcome.rejections {
			assert.Equal(t, models.RejectionAlreadyAnswered, rejection.Reason)
		}
	})

	t.Run("Values Are Checked Against The Question Kind", func(t *testing.T) {
		outcome := evaluateBatch(template, newSession(), []requests.ResponseInput{
			{QuestionID: "a1", Value: 1.5},
			{QuestionID: "a2", Value: "deux"},
			{QuestionID: "s1", Value: true},
			{QuestionID: "c1", Value: float64(3)},
			{QuestionID: "p_approche", Value: "TCC"},
			{QuestionID: "p_voix_genre", Value: "robotique"},
		}, now)

		assert.Equal(t, []string{"s1", "p_approche"}, outcome.acceptedIDs())
		assert.Equal(t, 1.0, *outcome.answers["s1"].NumericValue)
		assert.Equal(t, "tcc", outcome.answers["p_approche"].TextValue)
		assert.Equal(t, map[string]models.RejectionReason{
			"a1":           models.RejectionInvalidType,
			"a2":           models.RejectionInvalidType,
			"c1":           models.RejectionOutOfRange,
			"p_voix_genre": models.RejectionInvalidOption,
		}, reasons(outcome))
	})

	t.Run("An Earlier Answer Of The Batch Unlocks A Later One", func(t *testing.T) {
		outcome := evaluateBatch(template, newSession(), []requests.ResponseInput{
			{QuestionID: "c1", Value: true},
			{QuestionID: "c2", Value: "  je pense parfois au suicide  "},
		}, now)

		assert.Equal(t, []string{"c1", "c2"}, outcome.acceptedIDs())
		assert.Equal(t, "je pense parfois au suicide", outcome.answers["c2"].TextValue)
	})

	t.Run("Conditional Question Before Its Trigger Does Not Apply", func(t *testing.T) {
		outcome := evaluateBatch(template, newSession(), []requests.ResponseInput{
			{QuestionID: "c2", Value: "texte"},
			{QuestionID: "c1", Value: false},
		}, now)

		assert.Equal(t, []string{"c1"}, outcome.acceptedIDs())
		assert.Equal(t, map[string]models.RejectionReason{"c2": models.RejectionNotApplicable}, reasons(outcome))
	})

	t.Run("Omitted Or Blank Optional Questions Are Skipped", func(t *testing.T) {
		outcome := evaluateBatch(template, newSession("s2", "t_extraversion", "m1"), []requests.ResponseInput{
			{QuestionID: "m1", Value: float64(7)},
			{QuestionID: "t_extraversion", Value: " "},
		}, now)

		assert.Equal(t, []string{"m1"}, outcome.acceptedIDs())
		assert.ElementsMatch(t, []string{"s2", "t_extraversion"}, outcome.skipped)
		assert.Empty(t, outcome.rejections)
		assert.True(t, outcome.skippedSet["s2"])
	})

	t.Run("Blank Required Answer Is Missing", func(t *testing.T) {
		outcome := evaluateBatch(template, newSession("a1"), []requests.ResponseInput{
			{QuestionID: "a1", Value: nil},
		}, now)

		assert.Empty(t, outcome.accepted)
		assert.Equal(t, map[string]models.RejectionReason{"a1": models.RejectionRequiredMissing}, reasons(outcome))
	})

	t.Run("Client Timestamp Is Kept", func(t *testing.T) {
		answeredAt := now.Add(-time.Minute)
		outcome := evaluateBatch(template, newSession(), []requests.ResponseInput{
			{QuestionID: "a1", Value: float64(1), AnsweredAt: &answeredAt},
		}, now)

		require.Len(t, outcome.accepted, 1)
		assert.Equal(t, answeredAt, outcome.accepted[0].AnsweredAt)
	})
}
