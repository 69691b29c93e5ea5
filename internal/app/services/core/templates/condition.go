package templates

import (
	"strconv"
	"strings"
	"tawjih-service/internal/app/models"
)

type ConditionResult int

const (
	// ConditionUnresolved means the referenced question has not been answered yet.
	ConditionUnresolved ConditionResult = iota
	ConditionSatisfied
	ConditionNotSatisfied
)

// EvaluateCondition checks a condition against the answers given so far.
func EvaluateCondition(condition models.Condition, answers map[string]models.AssessmentResponse) ConditionResult {
	answer, ok := answers[condition.QuestionID]
	if !ok {
		return ConditionUnresolved
	}
	if Compare(condition.Operator, answer, condition.Value) {
		return ConditionSatisfied
	}
	return ConditionNotSatisfied
}

// Compare applies operator between an answer and the expected literal. Numeric operators
// never match text answers.
func Compare(operator models.ConditionOperator, answer models.AssessmentResponse, expected string) bool {
	expectedNumber, expectedIsNumber := parseNumber(expected)

	switch operator {
	case models.OperatorEquals:
		if answer.IsNumeric() && expectedIsNumber {
			return *answer.NumericValue == expectedNumber
		}
		return strings.EqualFold(answerText(answer), strings.TrimSpace(expected))
	case models.OperatorNotEquals:
		return !Compare(models.OperatorEquals, answer, expected)
	case models.OperatorGreaterThan:
		return answer.IsNumeric() && expectedIsNumber && *answer.NumericValue > expectedNumber
	case models.OperatorLessThan:
		return answer.IsNumeric() && expectedIsNumber && *answer.NumericValue < expectedNumber
	case models.OperatorContains:
		return strings.Contains(strings.ToLower(answerText(answer)), strings.ToLower(strings.TrimSpace(expected)))
	default:
		return false
	}
}

// CompareNumber applies a numeric operator. Contains is meaningless on numbers and never matches.
func CompareNumber(operator models.ConditionOperator, actual, expected float64) bool {
	switch operator {
	case models.OperatorEquals:
		return actual == expected
	case models.OperatorNotEquals:
		return actual != expected
	case models.OperatorGreaterThan:
		return actual > expected
	case models.OperatorLessThan:
		return actual < expected
	default:
		return false
	}
}

func IsKnownOperator(operator models.ConditionOperator) bool {
	switch operator {
	case models.OperatorEquals, models.OperatorNotEquals, models.OperatorGreaterThan, models.OperatorLessThan, models.OperatorContains:
		return true
	default:
		return false
	}
}

func answerText(answer models.AssessmentResponse) string {
	if answer.IsNumeric() {
		return strconv.FormatFloat(*answer.NumericValue, 'f', -1, 64)
	}
	return strings.TrimSpace(answer.TextValue)
}

func parseNumber(value string) (float64, bool) {
	number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	return number, err == nil
}
