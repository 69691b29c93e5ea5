package templates

import (
	"fmt"
	"math"
	"strings"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/pkg/exceptions"
	"tawjih-service/internal/pkg/utils"
)

// TheoreticalRange is the span every total of the template falls into. Sum and weighted
// totals run from the required unconditional items at their minimum to every scored item at
// its maximum; average totals run between the extreme single-item contributions.
func TheoreticalRange(template *models.AssessmentTemplate) (float64, float64) {
	scoring := template.Scoring
	var low, high float64
	first := true

	for _, question := range template.Questions {
		if !question.Scored || !question.IsNumeric() {
			continue
		}
		minValue, maxValue := question.Bounds()
		weight := scoring.WeightOf(question.ID)

		switch scoring.Mode {
		case models.AggregationAverage:
			if first {
				low, high = weight*minValue, weight*maxValue
				first = false
				continue
			}
			low = math.Min(low, weight*minValue)
			high = math.Max(high, weight*maxValue)
		default:
			if question.Required && !question.IsConditional() {
				low += weight * minValue
			}
			high += weight * maxValue
		}
	}
	return low, high
}

// ValidateTemplate rejects malformed templates. It never corrects them.
func ValidateTemplate(template *models.AssessmentTemplate) error {
	var reasons []string
	fail := func(format string, args ...interface{}) {
		reasons = append(reasons, fmt.Sprintf(format, args...))
	}

	if template.ID == "" {
		fail("id is required")
	}
	if template.Version < 1 {
		fail("version must be at least 1")
	}
	if template.AssessmentType != models.AssessmentTypeInitial && template.AssessmentType != models.AssessmentTypeFollowUp {
		fail("unknown assessment type %q", template.AssessmentType)
	}
	if template.Category == "" || template.Language == "" {
		fail("category and language are required")
	}

	subscales := make(map[string]bool, len(template.Subscales))
	for _, subscale := range template.Subscales {
		if subscale.ID == "" || subscales[subscale.ID] {
			fail("subscale id %q is empty or duplicated", subscale.ID)
		}
		subscales[subscale.ID] = true
	}

	validateQuestions(template, subscales, fail)
	validateScoring(template, fail)
	validateProfileRules(template, subscales, fail)

	if len(reasons) > 0 {
		return exceptions.ErrInvalidTemplate(nil, template.ID, strings.Join(reasons, "; "))
	}
	return nil
}

func validateQuestions(template *models.AssessmentTemplate, subscales map[string]bool, fail func(string, ...interface{})) {
	if len(template.Questions) == 0 {
		fail("template has no questions")
		return
	}

	seen := make(map[string]bool, len(template.Questions))
	unconditional := 0
	scored := 0
	for _, question := range template.Questions {
		if question.ID == "" || seen[question.ID] {
			fail("question id %q is empty or duplicated", question.ID)
		}

		switch question.Kind {
		case models.QuestionKindScale:
			if question.ScaleMin < 0 || question.ScaleMax <= question.ScaleMin {
				fail("question %s has invalid scale [%d,%d]", question.ID, question.ScaleMin, question.ScaleMax)
			}
		case models.QuestionKindMultipleChoice:
			if len(question.Options) == 0 {
				fail("question %s has no options", question.ID)
			}
			options := make(map[string]bool, len(question.Options))
			for _, option := range question.Options {
				if option == "" || options[option] {
					fail("question %s has an empty or duplicated option %q", question.ID, option)
				}
				options[option] = true
			}
		case models.QuestionKindBoolean, models.QuestionKindFreeText:
		default:
			fail("question %s has unknown kind %q", question.ID, question.Kind)
		}

		if question.Scored {
			scored++
			if !question.IsNumeric() {
				fail("question %s is scored but not numeric", question.ID)
			}
		}
		if question.Subscale != "" && !subscales[question.Subscale] {
			fail("question %s references unknown subscale %s", question.ID, question.Subscale)
		}
		if question.Subscale != "" && !question.IsNumeric() {
			fail("question %s belongs to a subscale but is not numeric", question.ID)
		}

		// conditions may only look back, which keeps the branching acyclic
		for _, condition := range []*models.Condition{question.ShowIf, question.SkipIf} {
			if condition == nil {
				continue
			}
			if !IsKnownOperator(condition.Operator) {
				fail("question %s has unknown condition operator %q", question.ID, condition.Operator)
			}
			if !seen[condition.QuestionID] {
				fail("question %s condition references %q which is not an earlier question", question.ID, condition.QuestionID)
			}
		}
		if !question.IsConditional() {
			unconditional++
		}
		seen[question.ID] = true
	}

	if unconditional == 0 {
		fail("template has no unconditional question")
	}
	if scored == 0 {
		fail("template has no scored question")
	}
}

func validateScoring(template *models.AssessmentTemplate, fail func(string, ...interface{})) {
	scoring := template.Scoring
	switch scoring.Mode {
	case models.AggregationSum, models.AggregationWeighted, models.AggregationAverage:
	default:
		fail("unknown aggregation mode %q", scoring.Mode)
		return
	}

	isScored := func(questionID string) bool {
		question, ok := template.QuestionByID(questionID)
		return ok && question.Scored
	}
	for _, questionID := range scoring.ReverseScored {
		if !isScored(questionID) {
			fail("reverse scored item %s is not a scored question", questionID)
		}
	}
	for questionID, weight := range scoring.Weights {
		if !isScored(questionID) {
			fail("weighted item %s is not a scored question", questionID)
		}
		if weight <= 0 {
			fail("weight of %s must be positive", questionID)
		}
	}

	if len(scoring.Bands) == 0 {
		fail("scoring has no severity bands")
		return
	}
	for index, band := range scoring.Bands {
		if band.Label == "" {
			fail("band %d has no label", index)
		}
		switch band.Level {
		case models.SeverityMild, models.SeverityModerate, models.SeveritySevere:
		default:
			fail("band %s has unknown level %q", band.Label, band.Level)
		}
		if band.Min > band.Max {
			fail("band %s has min above max", band.Label)
		}
		if index > 0 && band.Min != scoring.Bands[index-1].Max+1 {
			fail("band %s does not start right after band %s", band.Label, scoring.Bands[index-1].Label)
		}
	}

	low, high := TheoreticalRange(template)
	if first := scoring.Bands[0]; first.Min != utils.RoundToInt(low) {
		fail("bands start at %d but the lowest possible score is %d", first.Min, utils.RoundToInt(low))
	}
	if last := scoring.Bands[len(scoring.Bands)-1]; last.Max != utils.RoundToInt(high) {
		fail("bands end at %d but the highest possible score is %d", last.Max, utils.RoundToInt(high))
	}
}

func validateProfileRules(template *models.AssessmentTemplate, subscales map[string]bool, fail func(string, ...interface{})) {
	rules := template.ProfileRules

	mapped := make(map[string]bool, len(rules.DiagnosisMapping))
	for _, mapping := range rules.DiagnosisMapping {
		if !subscales[mapping.Subscale] || mapped[mapping.Subscale] {
			fail("diagnosis mapping for subscale %q is unknown or duplicated", mapping.Subscale)
		}
		if mapping.Diagnosis == "" {
			fail("subscale %s maps to an empty diagnosis", mapping.Subscale)
		}
		mapped[mapping.Subscale] = true
	}
	for subscaleID := range subscales {
		if !mapped[subscaleID] {
			fail("subscale %s has no diagnosis mapping", subscaleID)
		}
	}
	if len(subscales) == 0 {
		fail("template declares no subscale to derive a diagnosis from")
	}

	for _, group := range [][]models.FactorRule{rules.RiskFactors, rules.ProtectiveFactors, rules.CrisisIndicators} {
		for _, rule := range group {
			if _, ok := template.QuestionByID(rule.QuestionID); !ok {
				fail("factor %s references unknown question %s", rule.Label, rule.QuestionID)
			}
			if !IsKnownOperator(rule.Operator) || rule.Label == "" {
				fail("factor rule on %s has an unknown operator or no label", rule.QuestionID)
			}
		}
	}

	for _, questionID := range []string{rules.MotivationQuestionID, rules.ReadinessQuestionID} {
		if questionID == "" {
			continue
		}
		if question, ok := template.QuestionByID(questionID); !ok || !question.IsNumeric() {
			fail("level question %s is unknown or not numeric", questionID)
		}
	}

	preferences := rules.Preferences
	for _, questionID := range []string{
		preferences.ApproachQuestionID,
		preferences.VoiceGenderQuestionID,
		preferences.VoiceAccentQuestionID,
		preferences.VoicePaceQuestionID,
		preferences.VoiceExpressivenessQuestionID,
	} {
		if questionID == "" {
			continue
		}
		if question, ok := template.QuestionByID(questionID); !ok || question.Kind != models.QuestionKindMultipleChoice {
			fail("preference question %s is unknown or not multiple choice", questionID)
		}
	}

	if rules.DefaultApproach == "" {
		fail("default approach is required")
	}
}
