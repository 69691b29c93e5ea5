package scoring

import (
	"context"
	"sort"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/app/services/core/templates"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/exceptions"
	"tawjih-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const neutralPercentile = 50

type scoringEngine struct {
	PercentileSource    contracts.PercentileSource
	MinSecondsPerAnswer float64
	Log                 *zap.Logger
}

func NewScoringEngine(percentileSource contracts.PercentileSource, minSecondsPerAnswer float64, logger *zap.Logger) contracts.ScoringEngine {
	return &scoringEngine{
		PercentileSource:    percentileSource,
		MinSecondsPerAnswer: minSecondsPerAnswer,
		Log:                 logger,
	}
}

type itemScore struct {
	question models.AssessmentQuestion
	value    float64
	weight   float64
}

func (e *scoringEngine) Compute(ctx context.Context, template *models.AssessmentTemplate, session *models.AssessmentSession) (*models.ScoreResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	items := scoredItems(template, session)
	total, ok := aggregate(template.Scoring.Mode, items)
	if !ok {
		e.Log.Error("scoringEngine.Compute error aggregating",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, session.ID),
		)
		return nil, exceptions.ErrNoNumericResponses(nil, session.ID)
	}

	rounded := utils.RoundToInt(total)
	band, found := classify(template.Scoring.Bands, rounded)
	if !found {
		e.Log.Error("scoringEngine.Compute error classifying severity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTemplateIDKey, template.ID),
			zap.Int(constvars.LoggingTotalScoreKey, rounded),
		)
		return nil, exceptions.ErrScoringConfiguration(nil, rounded, template.ID)
	}

	percentile, err := e.percentile(ctx, template.ID, rounded)
	if err != nil {
		e.Log.Error("scoringEngine.Compute error looking up percentile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTemplateIDKey, template.ID),
			zap.Error(err),
		)
		return nil, err
	}

	low, high := templates.TheoreticalRange(template)
	result := &models.ScoreResult{
		SessionID:      session.ID,
		TemplateID:     template.ID,
		Mode:           template.Scoring.Mode,
		TotalScore:     utils.RoundTo(total, 2),
		RoundedTotal:   rounded,
		TheoreticalMin: low,
		TheoreticalMax: high,
		SubscaleScores: subscaleScores(template, session),
		Severity:       band,
		Reliability:    e.reliability(template, session),
		Percentile:     percentile,
		ComputedAt:     time.Now(),
	}

	e.Log.Info("scoringEngine.Compute succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, session.ID),
		zap.Float64(constvars.LoggingTotalScoreKey, result.TotalScore),
		zap.String(constvars.LoggingSeverityKey, band.Label),
	)
	return result, nil
}

// scoredItems reverses then weights every numeric response to a scored question.
func scoredItems(template *models.AssessmentTemplate, session *models.AssessmentSession) []itemScore {
	var items []itemScore
	for _, response := range session.Responses {
		question, ok := template.QuestionByID(response.QuestionID)
		if !ok || !question.Scored || !question.IsNumeric() || !response.IsNumeric() {
			continue
		}
		items = append(items, itemScore{
			question: question,
			value:    itemValue(template.Scoring, question, *response.NumericValue),
			weight:   template.Scoring.WeightOf(question.ID),
		})
	}
	return items
}

func itemValue(scoring models.ScoringAlgorithm, question models.AssessmentQuestion, raw float64) float64 {
	if !scoring.IsReversed(question.ID) {
		return raw
	}
	minValue, maxValue := question.Bounds()
	return minValue + maxValue - raw
}

// aggregate reports false when average mode has nothing to divide by.
func aggregate(mode models.AggregationMode, items []itemScore) (float64, bool) {
	var total float64
	for _, item := range items {
		total += item.value * item.weight
	}
	if mode == models.AggregationAverage {
		if len(items) == 0 {
			return 0, false
		}
		total /= float64(len(items))
	}
	return total, true
}

func classify(bands []models.SeverityBand, score int) (models.SeverityBand, bool) {
	for _, band := range bands {
		if band.Contains(score) {
			return band, true
		}
	}
	return models.SeverityBand{}, false
}

// subscaleScores averages the reversed, weighted items of each subscale on a 1-10 scale.
// Subscales without an answered item are left out.
func subscaleScores(template *models.AssessmentTemplate, session *models.AssessmentSession) map[string]float64 {
	sums := make(map[string]float64)
	weights := make(map[string]float64)
	for _, response := range session.Responses {
		question, ok := template.QuestionByID(response.QuestionID)
		if !ok || question.Subscale == "" || !question.IsNumeric() || !response.IsNumeric() {
			continue
		}
		minValue, maxValue := question.Bounds()
		value := itemValue(template.Scoring, question, *response.NumericValue)
		weight := template.Scoring.WeightOf(question.ID)

		sums[question.Subscale] += weight * utils.Rescale(value, minValue, maxValue, 1, 10)
		weights[question.Subscale] += weight
	}

	scores := make(map[string]float64, len(sums))
	for _, subscale := range template.Subscales {
		if weights[subscale.ID] == 0 {
			continue
		}
		scores[subscale.ID] = utils.RoundTo(sums[subscale.ID]/weights[subscale.ID], 1)
	}
	return scores
}

func (e *scoringEngine) reliability(template *models.AssessmentTemplate, session *models.AssessmentSession) models.ReliabilityIndicators {
	answers := session.AnswerIndex()
	states := templates.ResolveApplicability(template, answers, session.SkippedIndex())

	applicable := 0
	answeredApplicable := 0
	for _, question := range template.Questions {
		if states[question.ID] != templates.Applicable {
			continue
		}
		applicable++
		if _, ok := answers[question.ID]; ok {
			answeredApplicable++
		}
	}

	indicators := models.ReliabilityIndicators{
		AnsweredCount:  len(session.Responses),
		TotalQuestions: applicable,
	}
	if applicable > 0 {
		indicators.CompletionRate = utils.RoundTo(float64(answeredApplicable)/float64(applicable), 2)
	}
	if indicators.CompletionRate < 1 {
		indicators.Flags = append(indicators.Flags, models.ReliabilityFlagIncomplete)
	}

	if len(session.Responses) > 0 {
		last := lastAnsweredAt(session.Responses)
		elapsed := last.Sub(session.CreatedAt).Seconds()
		if elapsed < 0 {
			elapsed = 0
		}
		indicators.AverageSecondsPerAnswer = utils.RoundTo(elapsed/float64(len(session.Responses)), 2)
		if indicators.AverageSecondsPerAnswer < e.MinSecondsPerAnswer {
			indicators.LowReliability = true
			indicators.Flags = append(indicators.Flags, models.ReliabilityFlagFastCompletion)
		}
	}
	sort.Strings(indicators.Flags)
	return indicators
}

func lastAnsweredAt(responses []models.AssessmentResponse) time.Time {
	last := responses[0].AnsweredAt
	for _, response := range responses[1:] {
		if response.AnsweredAt.After(last) {
			last = response.AnsweredAt
		}
	}
	return last
}

func (e *scoringEngine) percentile(ctx context.Context, templateID string, totalScore int) (models.PercentileScore, error) {
	value, ok, err := e.PercentileSource.Percentile(ctx, templateID, totalScore)
	if err != nil {
		return models.PercentileScore{}, err
	}
	if !ok {
		return models.PercentileScore{Value: neutralPercentile, Approximate: true, Source: models.PercentileSourceNeutral}, nil
	}
	return models.PercentileScore{Value: value, Source: models.PercentileSourceNormative}, nil
}
