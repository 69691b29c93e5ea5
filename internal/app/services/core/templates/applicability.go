package templates

import "tawjih-service/internal/app/models"

type Applicability int

const (
	// Pending questions depend on a question that can still be answered.
	Pending Applicability = iota
	Applicable
	NotApplicable
)

// ResolveApplicability walks the bank in order. A question whose condition references a
// question that can never be answered (skipped or itself not applicable) treats that
// condition as not satisfied.
func ResolveApplicability(template *models.AssessmentTemplate, answers map[string]models.AssessmentResponse, skipped map[string]bool) map[string]Applicability {
	result := make(map[string]Applicability, len(template.Questions))
	unanswerable := make(map[string]bool, len(skipped))
	for questionID := range skipped {
		unanswerable[questionID] = true
	}

	for _, question := range template.Questions {
		state := questionApplicability(question, answers, unanswerable)
		result[question.ID] = state
		if state == NotApplicable {
			if _, answered := answers[question.ID]; !answered {
				unanswerable[question.ID] = true
			}
		}
	}
	return result
}

func questionApplicability(question models.AssessmentQuestion, answers map[string]models.AssessmentResponse, unanswerable map[string]bool) Applicability {
	if question.ShowIf != nil {
		switch resolve(*question.ShowIf, answers, unanswerable) {
		case ConditionUnresolved:
			return Pending
		case ConditionNotSatisfied:
			return NotApplicable
		}
	}
	if question.SkipIf != nil {
		switch resolve(*question.SkipIf, answers, unanswerable) {
		case ConditionUnresolved:
			return Pending
		case ConditionSatisfied:
			return NotApplicable
		}
	}
	return Applicable
}

func resolve(condition models.Condition, answers map[string]models.AssessmentResponse, unanswerable map[string]bool) ConditionResult {
	result := EvaluateCondition(condition, answers)
	if result == ConditionUnresolved && unanswerable[condition.QuestionID] {
		return ConditionNotSatisfied
	}
	return result
}
