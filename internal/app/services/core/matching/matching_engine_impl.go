package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/app/services/core/templates"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/exceptions"
	"tawjih-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	quickMatchConfidenceCulture  = 90
	quickMatchConfidenceCategory = 75
	quickMatchConfidenceDefault  = 60

	minConfidence = 50
	maxConfidence = 95

	maxAlternatives   = 2
	maxExplainReasons = 3
)

type matchingEngine struct {
	Registry       contracts.CandidateRegistry
	MaxConcurrency int
	Log            *zap.Logger
}

func NewMatchingEngine(registry contracts.CandidateRegistry, maxConcurrency int, logger *zap.Logger) contracts.MatchingEngine {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &matchingEngine{
		Registry:       registry,
		MaxConcurrency: maxConcurrency,
		Log:            logger,
	}
}

// Match scores every candidate in parallel and ranks them. The ranking does not depend on
// goroutine scheduling: results land at their input index and the sort is stable on
// (overall desc, registry order asc).
func (e *matchingEngine) Match(ctx context.Context, profile *models.TherapeuticProfile, candidates []models.CandidateProfile) (*models.MatchingRecommendation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	e.Log.Info("matchingEngine.Match called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfileIDKey, profile.ID),
		zap.Int(constvars.LoggingCandidateCountKey, len(candidates)),
	)

	if len(candidates) == 0 {
		e.Log.Error("matchingEngine.Match error empty candidate registry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrNoCandidatesAvailable(nil)
	}

	rules := e.Registry.Rules()
	scores := make([]models.MatchScore, len(candidates))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.MaxConcurrency)
	for i := range candidates {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			scores[i] = e.scoreCandidate(rules, profile, candidates[i])
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		e.Log.Error("matchingEngine.Match error scoring candidates",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].OverallScore != scores[j].OverallScore {
			return scores[i].OverallScore > scores[j].OverallScore
		}
		return scores[i].CandidateOrder < scores[j].CandidateOrder
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}

	alternatives := scores[1:]
	if len(alternatives) > maxAlternatives {
		alternatives = alternatives[:maxAlternatives]
	}

	recommendation := &models.MatchingRecommendation{
		ID:           utils.GenerateID(),
		ProfileID:    profile.ID,
		SessionID:    profile.SessionID,
		Recommended:  scores[0],
		Alternatives: append([]models.MatchScore{}, alternatives...),
		Ranking:      scores,
		Explanation:  explain(scores[0]),
		GeneratedAt:  time.Now(),
	}

	e.Log.Info("matchingEngine.Match succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCandidateIDKey, recommendation.Recommended.CandidateID),
	)
	return recommendation, nil
}

func (e *matchingEngine) scoreCandidate(rules models.MatchingRules, profile *models.TherapeuticProfile, candidate models.CandidateProfile) models.MatchScore {
	diagnostic := scoreDiagnostic(rules.Diagnostic, profile, candidate)
	cultural, perfectCultural := scoreCultural(rules.Cultural, profile, candidate)
	personality := scorePersonality(rules.Personality, profile, candidate)
	approach := scoreApproach(rules.Approach, profile, candidate)
	voice := analyzeVoice(rules.Voice, profile.Preferences.Voice, candidate)

	dimensions := models.DimensionScores{
		Diagnostic:  diagnostic.score,
		Cultural:    cultural.score,
		Personality: personality.score,
		Approach:    approach.score,
		Voice:       voice.Score,
	}
	overall := OverallScore(dimensions)

	engagement := utils.ClampInt(utils.RoundToInt(float64(overall)+5*profile.MotivationLevel+3*profile.ReadinessLevel), 0, 100)

	reasons := []string{}
	concerns := []string{}
	for _, dimension := range []dimensionResult{diagnostic, cultural, personality, approach} {
		reasons = append(reasons, dimension.reasons...)
		concerns = append(concerns, dimension.concerns...)
	}
	if voice.Score >= 80 && profile.Preferences.Voice.IsSet() {
		reasons = append(reasons, "voix proche des préférences exprimées")
	}
	if voice.Score < 50 {
		concerns = append(concerns, "voix éloignée des préférences exprimées")
	}
	if len(profile.CrisisIndicators) > 0 {
		concerns = append(concerns, models.ContraindicationParallelClinicalFollowUp)
	}

	return models.MatchScore{
		CandidateID:            candidate.ID,
		DisplayName:            candidate.DisplayName,
		OverallScore:           overall,
		Dimensions:             dimensions,
		PredictedEngagement:    engagement,
		PredictedCompletion:    utils.RoundToInt(0.8 * float64(engagement)),
		EstimatedDurationWeeks: estimatedDuration(profile, engagement),
		ConfidenceLevel:        confidence(profile, overall, perfectCultural),
		Reasons:                reasons,
		Concerns:               concerns,
		Voice:                  &voice,
		CandidateOrder:         candidate.Order,
	}
}

// OverallScore is the weighted sum of the five dimensions, clipped to [0,100].
func OverallScore(d models.DimensionScores) int {
	weighted := models.WeightDiagnostic*float64(d.Diagnostic) +
		models.WeightCultural*float64(d.Cultural) +
		models.WeightPersonality*float64(d.Personality) +
		models.WeightApproach*float64(d.Approach) +
		models.WeightVoice*float64(d.Voice)
	return utils.ClampInt(utils.RoundToInt(weighted), 0, 100)
}

func estimatedDuration(profile *models.TherapeuticProfile, engagement int) int {
	weeks := 8
	if profile.Severity == models.SeveritySevere {
		weeks += 4
	}
	if engagement < 60 {
		weeks += 2
	}
	if profile.MotivationLevel > 8 {
		weeks--
	}
	return utils.ClampInt(weeks, 6, 16)
}

func confidence(profile *models.TherapeuticProfile, overall int, perfectCultural bool) int {
	level := overall
	if !profile.Preferences.Voice.IsSet() {
		level -= 5
	}
	if profile.Preferences.PreferredApproach == "" {
		level -= 5
	}
	if perfectCultural {
		level += 10
	}
	return utils.ClampInt(level, minConfidence, maxConfidence)
}

func explain(score models.MatchScore) string {
	reasons := score.Reasons
	if len(reasons) > maxExplainReasons {
		reasons = reasons[:maxExplainReasons]
	}
	if len(reasons) == 0 {
		return fmt.Sprintf("%s obtient le meilleur score de compatibilité (%d/100).", score.DisplayName, score.OverallScore)
	}
	return fmt.Sprintf("%s obtient le meilleur score de compatibilité (%d/100) : %s.", score.DisplayName, score.OverallScore, strings.Join(reasons, ", "))
}

// QuickMatch is the pre-profile path. Culture comes first, then the category table, then the
// generalist default.
func (e *matchingEngine) QuickMatch(ctx context.Context, category, culturalContext, language string) (*models.QuickMatchResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	candidates := e.Registry.List()
	if len(candidates) == 0 {
		return nil, exceptions.ErrNoCandidatesAvailable(nil)
	}

	if culturalContext != "" {
		for _, candidate := range candidates {
			if !candidate.Cultural.Specialized || !candidate.Cultural.TargetsCulture(culturalContext) {
				continue
			}
			reasoning := fmt.Sprintf("%s est spécialisé(e) dans le contexte culturel %s", candidate.DisplayName, culturalContext)
			if candidate.Cultural.SpeaksLanguage(language) {
				reasoning += fmt.Sprintf(" et consulte en %s", language)
			}
			return e.quickResult(requestID, candidate, quickMatchConfidenceCulture, models.QuickMatchStrategyCulture, reasoning), nil
		}
	}

	table := e.Registry.QuickMatchTable()
	if candidateID, ok := lookupCategory(table.ByCategory, category); ok {
		candidate, found := e.Registry.FindByID(candidateID)
		if !found {
			return nil, exceptions.ErrCandidateNotFound(nil, candidateID)
		}
		reasoning := fmt.Sprintf("%s est référent(e) pour la catégorie %s", candidate.DisplayName, category)
		return e.quickResult(requestID, candidate, quickMatchConfidenceCategory, models.QuickMatchStrategyCategory, reasoning), nil
	}

	candidate, found := e.Registry.FindByID(table.DefaultCandidateID)
	if !found {
		return nil, exceptions.ErrCandidateNotFound(nil, table.DefaultCandidateID)
	}
	reasoning := fmt.Sprintf("%s accompagne en première intention toutes les demandes", candidate.DisplayName)
	return e.quickResult(requestID, candidate, quickMatchConfidenceDefault, models.QuickMatchStrategyDefault, reasoning), nil
}

func (e *matchingEngine) quickResult(requestID string, candidate models.CandidateProfile, confidence int, strategy models.QuickMatchStrategy, reasoning string) *models.QuickMatchResult {
	e.Log.Info("matchingEngine.QuickMatch succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCandidateIDKey, candidate.ID),
		zap.String(constvars.LoggingStrategyKey, string(strategy)),
	)
	return &models.QuickMatchResult{
		Candidate:  candidate,
		Confidence: confidence,
		Strategy:   strategy,
		Reasoning:  reasoning,
	}
}

// lookupCategory tries the exact key first, then a case-insensitive match in sorted key order.
func lookupCategory(byCategory map[string]string, category string) (string, bool) {
	if candidateID, ok := byCategory[category]; ok {
		return candidateID, true
	}
	keys := make([]string, 0, len(byCategory))
	for key := range byCategory {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if templates.SameKey(key, category) {
			return byCategory[key], true
		}
	}
	return "", false
}

func (e *matchingEngine) AnalyzeVoiceCompatibility(preferences models.VoicePreferences, candidate models.CandidateProfile) models.VoiceCompatibility {
	return analyzeVoice(e.Registry.Rules().Voice, preferences, candidate)
}
