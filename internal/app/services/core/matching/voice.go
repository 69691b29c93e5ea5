package matching

import (
	"fmt"
	"strings"
	"tawjih-service/internal/app/models"
)

const (
	voicePointsMatch      = 25
	voicePointsAcceptable = 20
	voicePointsMismatch   = 5
)

var voicePoints = map[models.MatchOutcome]int{
	models.MatchOutcomeMatch:      voicePointsMatch,
	models.MatchOutcomeAcceptable: voicePointsAcceptable,
	models.MatchOutcomeMismatch:   voicePointsMismatch,
}

// analyzeVoice scores the four voice dimensions independently. A dimension without a
// preference is acceptable, so a user with no preference at all scores 80.
func analyzeVoice(rules models.VoiceRules, preferences models.VoicePreferences, candidate models.CandidateProfile) models.VoiceCompatibility {
	voice := candidate.Voice
	dimensions := []models.VoiceDimensionResult{
		evaluateDimension(models.VoiceDimensionGender, preferences.Gender, voice.Gender, exactOutcome),
		evaluateDimension(models.VoiceDimensionAccent, preferences.Accent, voice.Accent, func(p, c string) models.MatchOutcome {
			return accentOutcome(rules, p, c)
		}),
		evaluateDimension(models.VoiceDimensionPace, preferences.Pace, voice.Pace, func(p, c string) models.MatchOutcome {
			return ordinalOutcome(rules.PaceScale, p, c)
		}),
		evaluateDimension(models.VoiceDimensionExpressiveness, preferences.Expressiveness, voice.Expressiveness, func(p, c string) models.MatchOutcome {
			return ordinalOutcome(rules.ExpressivenessScale, p, c)
		}),
	}

	result := models.VoiceCompatibility{
		CandidateID:           candidate.ID,
		Dimensions:            dimensions,
		Reasoning:             []string{},
		AdaptationSuggestions: []string{},
	}
	for _, dimension := range dimensions {
		result.Score += dimension.Points
		result.Reasoning = append(result.Reasoning, voiceReason(dimension))
		if suggestion := adaptationSuggestion(dimension); suggestion != "" {
			result.AdaptationSuggestions = append(result.AdaptationSuggestions, suggestion)
		}
	}
	return result
}

func evaluateDimension(dimension models.VoiceDimension, preference, candidateValue string, compare func(p, c string) models.MatchOutcome) models.VoiceDimensionResult {
	outcome := models.MatchOutcomeAcceptable
	if preference != "" {
		outcome = compare(normalizeVoice(preference), normalizeVoice(candidateValue))
	}
	return models.VoiceDimensionResult{
		Dimension:      dimension,
		Preference:     preference,
		CandidateValue: candidateValue,
		Outcome:        outcome,
		Points:         voicePoints[outcome],
	}
}

func exactOutcome(preference, candidateValue string) models.MatchOutcome {
	if preference == candidateValue {
		return models.MatchOutcomeMatch
	}
	return models.MatchOutcomeMismatch
}

func accentOutcome(rules models.VoiceRules, preference, candidateValue string) models.MatchOutcome {
	if preference == candidateValue {
		return models.MatchOutcomeMatch
	}
	if candidateValue == normalizeVoice(rules.NeutralAccent) {
		return models.MatchOutcomeAcceptable
	}
	for _, compatible := range rules.AccentCompatibility[preference] {
		if normalizeVoice(compatible) == candidateValue {
			return models.MatchOutcomeAcceptable
		}
	}
	return models.MatchOutcomeMismatch
}

// ordinalOutcome accepts neighbours on the scale. Values off the scale only match exactly.
func ordinalOutcome(scale []string, preference, candidateValue string) models.MatchOutcome {
	if preference == candidateValue {
		return models.MatchOutcomeMatch
	}
	p, c := indexOf(scale, preference), indexOf(scale, candidateValue)
	if p < 0 || c < 0 {
		return models.MatchOutcomeMismatch
	}
	if p-c == 1 || c-p == 1 {
		return models.MatchOutcomeAcceptable
	}
	return models.MatchOutcomeMismatch
}

func indexOf(scale []string, value string) int {
	for i, step := range scale {
		if normalizeVoice(step) == value {
			return i
		}
	}
	return -1
}

func normalizeVoice(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

var voiceDimensionLabels = map[models.VoiceDimension]string{
	models.VoiceDimensionGender:         "genre de voix",
	models.VoiceDimensionAccent:         "accent",
	models.VoiceDimensionPace:           "rythme",
	models.VoiceDimensionExpressiveness: "expressivité",
}

func voiceReason(dimension models.VoiceDimensionResult) string {
	label := voiceDimensionLabels[dimension.Dimension]
	if dimension.Preference == "" {
		return fmt.Sprintf("%s : aucune préférence exprimée", label)
	}
	switch dimension.Outcome {
	case models.MatchOutcomeMatch:
		return fmt.Sprintf("%s : %s correspond à la préférence", label, dimension.CandidateValue)
	case models.MatchOutcomeAcceptable:
		return fmt.Sprintf("%s : %s est proche de la préférence %s", label, dimension.CandidateValue, dimension.Preference)
	default:
		return fmt.Sprintf("%s : %s diffère de la préférence %s", label, dimension.CandidateValue, dimension.Preference)
	}
}

func adaptationSuggestion(dimension models.VoiceDimensionResult) string {
	if dimension.Preference == "" || dimension.Outcome == models.MatchOutcomeMatch {
		return ""
	}
	switch dimension.Dimension {
	case models.VoiceDimensionPace:
		return fmt.Sprintf("ajuster le débit de parole vers un rythme %s", dimension.Preference)
	case models.VoiceDimensionExpressiveness:
		return fmt.Sprintf("moduler l'expressivité vers un registre %s", dimension.Preference)
	case models.VoiceDimensionAccent:
		return "privilégier un registre linguistique neutre et des expressions familières à l'utilisateur"
	case models.VoiceDimensionGender:
		return fmt.Sprintf("proposer une voix %s pour les contenus audio si disponible", dimension.Preference)
	default:
		return ""
	}
}
