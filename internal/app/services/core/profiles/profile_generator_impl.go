package profiles

import (
	"context"
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
)

const (
	secondaryDiagnosisThreshold = 6
	maxSecondaryDiagnoses       = 2
	maxPrioritySubscales        = 3

	baseDurationWeeks = 8
	minDurationWeeks  = 6
	maxDurationWeeks  = 16

	baseImprovementRate = 80
)

type profileGenerator struct {
	Log *zap.Logger
}

func NewProfileGenerator(logger *zap.Logger) contracts.ProfileGenerator {
	return &profileGenerator{
		Log: logger,
	}
}

type rankedSubscale struct {
	id        string
	diagnosis string
	score     float64
	priority  int
}

// Generate derives the profile from the final responses, the scores and the template rules.
// It never reads or writes storage.
func (g *profileGenerator) Generate(ctx context.Context, template *models.AssessmentTemplate, session *models.AssessmentSession, scores *models.ScoreResult) (*models.TherapeuticProfile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	rules := template.ProfileRules

	ranked := rankSubscales(rules, scores.SubscaleScores)
	if len(ranked) == 0 {
		g.Log.Error("profileGenerator.Generate error no subscale score to derive a diagnosis from",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, session.ID),
		)
		return nil, exceptions.ErrNoNumericResponses(nil, session.ID)
	}
	primary := ranked[0]

	answers := session.AnswerIndex()
	riskFactors := matchFactors(rules.RiskFactors, answers)
	protectiveFactors := matchFactors(rules.ProtectiveFactors, answers)
	crisisIndicators := matchFactors(rules.CrisisIndicators, answers)
	motivation := levelOf(template, answers, rules.MotivationQuestionID)
	readiness := levelOf(template, answers, rules.ReadinessQuestionID)

	profile := &models.TherapeuticProfile{
		ID:                       utils.GenerateID(),
		SessionID:                session.ID,
		UserID:                   session.UserID,
		TemplateID:               template.ID,
		Category:                 template.Category,
		CulturalContext:          session.CulturalContext,
		Language:                 session.Language,
		PrimaryDiagnosis:         primary.diagnosis,
		SecondaryDiagnoses:       secondaryDiagnoses(ranked),
		Severity:                 scores.Severity.Level,
		SeverityLabel:            scores.Severity.Label,
		TotalScore:               scores.TotalScore,
		SubscaleScores:           scores.SubscaleScores,
		PersonalityTraits:        personalityTraits(template, answers),
		RiskFactors:              riskFactors,
		ProtectiveFactors:        protectiveFactors,
		CrisisIndicators:         crisisIndicators,
		MotivationLevel:          motivation,
		ReadinessLevel:           readiness,
		Preferences:              preferences(rules.Preferences, answers),
		RecommendedApproach:      recommendedApproach(rules, primary.diagnosis),
		RecommendedDurationWeeks: durationWeeks(scores.Severity.Level, len(riskFactors), len(protectiveFactors), motivation),
		TreatmentPriorities:      treatmentPriorities(primary.diagnosis, ranked),
		Contraindications:        []string{},
		Prognosis:                models.PrognosisIndicators{
			EstimatedImprovementRate: improvementRate(len(riskFactors), len(protectiveFactors)),
			RiskLevel:                riskLevel(scores.Severity.Level, len(riskFactors), len(crisisIndicators)),
		},
		GeneratedAt: time.Now(),
	}
	if len(crisisIndicators) > 0 {
		profile.Contraindications = append(profile.Contraindications, models.ContraindicationParallelClinicalFollowUp)
	}

	g.Log.Info("profileGenerator.Generate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, session.ID),
		zap.String(constvars.LoggingProfileIDKey, profile.ID),
		zap.String(constvars.LoggingSeverityKey, profile.SeverityLabel),
	)
	return profile, nil
}

// rankSubscales orders mapped subscales by descending score, then by declared priority.
func rankSubscales(rules models.ProfileRules, subscaleScores map[string]float64) []rankedSubscale {
	var ranked []rankedSubscale
	for priority, mapping := range rules.DiagnosisMapping {
		score, ok := subscaleScores[mapping.Subscale]
		if !ok {
			continue
		}
		ranked = append(ranked, rankedSubscale{
			id:        mapping.Subscale,
			diagnosis: mapping.Diagnosis,
			score:     score,
			priority:  priority,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].priority < ranked[j].priority
	})
	return ranked
}

func secondaryDiagnoses(ranked []rankedSubscale) []string {
	secondary := []string{}
	for _, subscale := range ranked[1:] {
		if len(secondary) == maxSecondaryDiagnoses {
			break
		}
		if subscale.score > secondaryDiagnosisThreshold && subscale.diagnosis != ranked[0].diagnosis {
			secondary = append(secondary, subscale.diagnosis)
		}
	}
	return secondary
}

func treatmentPriorities(primaryDiagnosis string, ranked []rankedSubscale) []string {
	priorities := []string{primaryDiagnosis}
	for i := 0; i < len(ranked) && i < maxPrioritySubscales; i++ {
		priorities = append(priorities, ranked[i].id)
	}
	return priorities
}

// DetectCrisisIndicators evaluates the crisis rules on a possibly partial answer set.
func DetectCrisisIndicators(rules models.ProfileRules, answers map[string]models.AssessmentResponse) []string {
	return matchFactors(rules.CrisisIndicators, answers)
}

// matchFactors returns the labels of the satisfied rules in declaration order, once each.
func matchFactors(rules []models.FactorRule, answers map[string]models.AssessmentResponse) []string {
	labels := []string{}
	seen := make(map[string]bool)
	for _, rule := range rules {
		if seen[rule.Label] {
			continue
		}
		if templates.EvaluateCondition(rule.Condition, answers) == templates.ConditionSatisfied {
			labels = append(labels, rule.Label)
			seen[rule.Label] = true
		}
	}
	return labels
}

// levelOf rescales a numeric answer to 1-10. Unanswered or unknown questions give 0.
func levelOf(template *models.AssessmentTemplate, answers map[string]models.AssessmentResponse, questionID string) float64 {
	if questionID == "" {
		return 0
	}
	question, ok := template.QuestionByID(questionID)
	answer, answered := answers[questionID]
	if !ok || !answered || !answer.IsNumeric() {
		return 0
	}
	minValue, maxValue := question.Bounds()
	return utils.RoundTo(utils.Rescale(*answer.NumericValue, minValue, maxValue, 1, 10), 1)
}

func personalityTraits(template *models.AssessmentTemplate, answers map[string]models.AssessmentResponse) map[string]float64 {
	traits := make(map[string]float64)
	for _, question := range template.Questions {
		if question.Trait == "" {
			continue
		}
		if level := levelOf(template, answers, question.ID); level > 0 {
			traits[question.Trait] = level
		}
	}
	return traits
}

func preferences(mapping models.PreferenceMapping, answers map[string]models.AssessmentResponse) models.UserPreferences {
	choice := func(questionID string) string {
		if questionID == "" {
			return ""
		}
		answer, ok := answers[questionID]
		if !ok || answer.IsNumeric() {
			return ""
		}
		value := strings.TrimSpace(answer.TextValue)
		if mapping.NoPreferenceValue != "" && strings.EqualFold(value, mapping.NoPreferenceValue) {
			return ""
		}
		return value
	}

	return models.UserPreferences{
		PreferredApproach: choice(mapping.ApproachQuestionID),
		Voice:             models.VoicePreferences{
			Gender:         choice(mapping.VoiceGenderQuestionID),
			Accent:         choice(mapping.VoiceAccentQuestionID),
			Pace:           choice(mapping.VoicePaceQuestionID),
			Expressiveness: choice(mapping.VoiceExpressivenessQuestionID),
		},
	}
}

func recommendedApproach(rules models.ProfileRules, primaryDiagnosis string) string {
	if approach, ok := rules.ApproachByDiagnosis[primaryDiagnosis]; ok && approach != "" {
		return approach
	}
	return rules.DefaultApproach
}

func durationWeeks(severity models.SeverityLevel, riskCount, protectiveCount int, motivation float64) int {
	weeks := baseDurationWeeks
	if severity == models.SeveritySevere {
		weeks += 4
	}
	if riskCount > 3 {
		weeks += 2
	}
	if protectiveCount > 3 || motivation > 8 {
		weeks--
	}
	return utils.ClampInt(weeks, minDurationWeeks, maxDurationWeeks)
}

func improvementRate(riskCount, protectiveCount int) int {
	return utils.ClampInt(baseImprovementRate-10*riskCount+5*protectiveCount, 20, 100)
}

func riskLevel(severity models.SeverityLevel, riskCount, crisisCount int) string {
	switch {
	case crisisCount > 0 || (severity == models.SeveritySevere && riskCount > 3):
		return models.RiskLevelHigh
	case severity == models.SeveritySevere || riskCount > 1:
		return models.RiskLevelElevated
	default:
		return models.RiskLevelLow
	}
}
