package matching

import (
	"fmt"
	"strings"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/app/services/core/templates"
	"tawjih-service/internal/pkg/utils"
)

// dimensionResult is one dimension score with the explanation it contributes.
type dimensionResult struct {
	score    int
	reasons  []string
	concerns []string
}

func normalizeDiagnosis(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	return strings.NewReplacer("_", " ", "-", " ").Replace(value)
}

// specialtyCovers treats a specialty as covering a diagnosis when either text contains the other.
func specialtyCovers(specialties []string, diagnosis string) (string, bool) {
	target := normalizeDiagnosis(diagnosis)
	if target == "" {
		return "", false
	}
	for _, specialty := range specialties {
		normalized := normalizeDiagnosis(specialty)
		if normalized == "" {
			continue
		}
		if normalized == target || strings.Contains(target, normalized) || strings.Contains(normalized, target) {
			return specialty, true
		}
	}
	return "", false
}

func scoreDiagnostic(rules models.DiagnosticRules, profile *models.TherapeuticProfile, candidate models.CandidateProfile) dimensionResult {
	var result dimensionResult

	if specialty, ok := specialtyCovers(candidate.Specialties, profile.PrimaryDiagnosis); ok {
		result.score = rules.SpecialtyMatch
		result.reasons = append(result.reasons, fmt.Sprintf("spécialité %s adaptée au diagnostic principal", specialty))
	} else if categoryCovered(candidate.Categories, profile.Category) {
		result.score = rules.CategoryMatch
		result.reasons = append(result.reasons, fmt.Sprintf("expérience dans la catégorie %s", profile.Category))
	} else {
		result.score = rules.Baseline
		result.concerns = append(result.concerns, "pas de spécialisation sur le diagnostic principal")
	}

	bonus := 0
	for _, diagnosis := range profile.SecondaryDiagnoses {
		if _, ok := specialtyCovers(candidate.Specialties, diagnosis); ok {
			bonus += rules.SecondaryBonus
			result.reasons = append(result.reasons, fmt.Sprintf("couvre aussi %s", diagnosis))
		}
	}
	if bonus > rules.SecondaryBonusCap {
		bonus = rules.SecondaryBonusCap
	}
	result.score = utils.ClampInt(result.score+bonus, 0, 100)
	return result
}

func categoryCovered(categories []string, category string) bool {
	for _, candidateCategory := range categories {
		if templates.SameKey(candidateCategory, category) {
			return true
		}
	}
	return false
}

// scoreCultural reports whether the candidate is a culture specialist matched on both culture and language.
func scoreCultural(rules models.CulturalFitRules, profile *models.TherapeuticProfile, candidate models.CandidateProfile) (dimensionResult, bool) {
	var result dimensionResult
	cultural := candidate.Cultural

	if !cultural.Specialized {
		result.score = rules.Neutral
		if cultural.SpeaksLanguage(profile.Language) {
			result.reasons = append(result.reasons, fmt.Sprintf("consulte en %s", profile.Language))
		}
		return result, false
	}

	if cultural.TargetsCulture(profile.CulturalContext) && cultural.SpeaksLanguage(profile.Language) {
		result.score = rules.SpecializedMatch
		result.reasons = append(result.reasons, fmt.Sprintf("spécialisation culturelle %s et consultation en %s", profile.CulturalContext, profile.Language))
		return result, true
	}

	result.score = rules.SpecializedFallback
	result.concerns = append(result.concerns, "spécialisation culturelle différente du contexte de l'utilisateur")
	return result, false
}

func scorePersonality(rules models.PersonalityRules, profile *models.TherapeuticProfile, candidate models.CandidateProfile) dimensionResult {
	result := dimensionResult{score: rules.Base}
	for _, rule := range rules.Rules {
		level, ok := profile.PersonalityTraits[rule.Trait]
		if !ok || !candidate.HasTrait(rule.CandidateTrait) {
			continue
		}
		if !templates.CompareNumber(rule.Operator, level, rule.Threshold) {
			continue
		}
		result.score += rule.Adjustment
		if rule.Adjustment >= 0 {
			result.reasons = append(result.reasons, rule.Reason)
		} else {
			result.concerns = append(result.concerns, rule.Reason)
		}
	}
	result.score = utils.ClampInt(result.score, 0, 100)
	return result
}

// scoreApproach prefers the approach the user asked for and falls back to the recommended one.
func scoreApproach(rules models.ApproachRules, profile *models.TherapeuticProfile, candidate models.CandidateProfile) dimensionResult {
	approach := profile.Preferences.PreferredApproach
	if approach == "" {
		approach = profile.RecommendedApproach
	}
	if approach != "" && candidate.DeclaresApproach(approach) {
		return dimensionResult{
			score:   rules.Exact,
			reasons: []string{fmt.Sprintf("pratique l'approche %s", approach)},
		}
	}
	return dimensionResult{score: rules.Neutral}
}
