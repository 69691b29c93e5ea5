package assessments

import (
	"fmt"
	"math"
	"strings"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/app/services/core/templates"
	"tawjih-service/internal/pkg/dto/requests"
	"tawjih-service/internal/pkg/utils"
	"time"
	"unicode/utf8"
)

const (
	defaultBatchSize        = 3
	defaultAdaptiveFraction = 0.30
	maxFreeTextLength       = 2000
)

// EstimatedTotal approximates the number of questions a session will ask: every
// unconditional question plus an assumed share of the bank for the adaptive ones. The
// real count is only known once every condition resolves.
func EstimatedTotal(template *models.AssessmentTemplate, adaptiveFraction float64) int {
	bank := len(template.Questions)
	unconditional := 0
	for _, question := range template.Questions {
		if !question.IsConditional() {
			unconditional++
		}
	}
	estimate := unconditional + utils.RoundToInt(adaptiveFraction*float64(bank))
	if estimate > bank {
		return bank
	}
	return estimate
}

// Progress is answered over estimated, as a percentage capped at 100.
func Progress(answered, estimatedTotal int) int {
	if estimatedTotal <= 0 {
		return 100
	}
	return utils.ClampInt(utils.RoundToInt(float64(answered)*100/float64(estimatedTotal)), 0, 100)
}

// NextBatch returns, in bank order, up to batchSize questions that apply and are neither
// answered nor skipped. Questions whose condition is still unresolved wait for a later batch.
func NextBatch(template *models.AssessmentTemplate, answers map[string]models.AssessmentResponse, skipped map[string]bool, batchSize int) []models.AssessmentQuestion {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	applicability := templates.ResolveApplicability(template, answers, skipped)

	batch := make([]models.AssessmentQuestion, 0, batchSize)
	for _, question := range template.Questions {
		if len(batch) == batchSize {
			break
		}
		if _, answered := answers[question.ID]; answered || skipped[question.ID] {
			continue
		}
		if applicability[question.ID] == templates.Applicable {
			batch = append(batch, question)
		}
	}
	return batch
}

func questionIDs(questions []models.AssessmentQuestion) []string {
	ids := make([]string, 0, len(questions))
	for _, question := range questions {
		ids = append(ids, question.ID)
	}
	return ids
}

// batchOutcome is the effect of one submission, computed without touching the session.
type batchOutcome struct {
	accepted   []models.AssessmentResponse
	skipped    []string
	rejections []models.ResponseRejection
	answers    map[string]models.AssessmentResponse
	skippedSet map[string]bool
}

func (o *batchOutcome) acceptedIDs() []string {
	ids := make([]string, 0, len(o.accepted))
	for _, response := range o.accepted {
		ids = append(ids, response.QuestionID)
	}
	return ids
}

func (o *batchOutcome) reject(questionID string, reason models.RejectionReason, format string, args ...interface{}) {
	o.rejections = append(o.rejections, models.ResponseRejection{
		QuestionID: questionID,
		Reason:     reason,
		Message:    fmt.Sprintf(format, args...),
	})
}

// evaluateBatch validates the inputs in order against the session answers plus the ones
// accepted earlier in the same batch, so a question unlocked by an earlier answer of the
// batch can be answered right away. Pending questions that were left out are skipped when
// optional and reported when required.
func evaluateBatch(template *models.AssessmentTemplate, session *models.AssessmentSession, inputs []requests.ResponseInput, now time.Time) *batchOutcome {
	outcome := &batchOutcome{
		answers:    session.AnswerIndex(),
		skippedSet: session.SkippedIndex(),
	}
	touched := make(map[string]bool, len(inputs))

	for _, input := range inputs {
		question, ok := template.QuestionByID(input.QuestionID)
		if !ok {
			outcome.reject(input.QuestionID, models.RejectionUnknownQuestion, "question %s is not part of template %s", input.QuestionID, template.ID)
			continue
		}
		if _, answered := outcome.answers[question.ID]; answered || outcome.skippedSet[question.ID] || touched[question.ID] {
			outcome.reject(question.ID, models.RejectionAlreadyAnswered, "question %s was already answered", question.ID)
			continue
		}
		touched[question.ID] = true

		applicability := templates.ResolveApplicability(template, outcome.answers, outcome.skippedSet)
		if applicability[question.ID] != templates.Applicable {
			outcome.reject(question.ID, models.RejectionNotApplicable, "question %s does not apply to the answers given so far", question.ID)
			continue
		}

		answeredAt := now
		if input.AnsweredAt != nil && !input.AnsweredAt.IsZero() {
			answeredAt = *input.AnsweredAt
		}
		if isBlank(input.Value) {
			if question.Required {
				outcome.reject(question.ID, models.RejectionRequiredMissing, "question %s requires an answer", question.ID)
				continue
			}
			outcome.skipped = append(outcome.skipped, question.ID)
			outcome.skippedSet[question.ID] = true
			continue
		}

		response, rejection := normalizeResponse(question, input.Value, answeredAt)
		if rejection != nil {
			outcome.rejections = append(outcome.rejections, *rejection)
			continue
		}
		outcome.accepted = append(outcome.accepted, response)
		outcome.answers[question.ID] = response
	}

	for _, questionID := range session.PendingQuestionIDs {
		if touched[questionID] {
			continue
		}
		question, ok := template.QuestionByID(questionID)
		if !ok {
			continue
		}
		if question.Required {
			outcome.reject(questionID, models.RejectionRequiredMissing, "question %s requires an answer", questionID)
			continue
		}
		outcome.skipped = append(outcome.skipped, questionID)
		outcome.skippedSet[questionID] = true
	}
	return outcome
}

func isBlank(value interface{}) bool {
	if value == nil {
		return true
	}
	text, ok := value.(string)
	return ok && strings.TrimSpace(text) == ""
}

func normalizeResponse(question models.AssessmentQuestion, value interface{}, answeredAt time.Time) (models.AssessmentResponse, *models.ResponseRejection) {
	invalid := func(reason models.RejectionReason, format string, args ...interface{}) (models.AssessmentResponse, *models.ResponseRejection) {
		return models.AssessmentResponse{}, &models.ResponseRejection{
			QuestionID: question.ID,
			Reason:     reason,
			Message:    fmt.Sprintf(format, args...),
		}
	}

	switch question.Kind {
	case models.QuestionKindScale:
		number, ok := numericValue(value)
		if !ok || number != math.Trunc(number) {
			return invalid(models.RejectionInvalidType, "question %s expects a whole number", question.ID)
		}
		if number < float64(question.ScaleMin) || number > float64(question.ScaleMax) {
			return invalid(models.RejectionOutOfRange, "answer %v to question %s is outside [%d,%d]", number, question.ID, question.ScaleMin, question.ScaleMax)
		}
		return models.NumericResponse(question.ID, number, answeredAt), nil

	case models.QuestionKindBoolean:
		if flag, ok := value.(bool); ok {
			if flag {
				return models.NumericResponse(question.ID, 1, answeredAt), nil
			}
			return models.NumericResponse(question.ID, 0, answeredAt), nil
		}
		number, ok := numericValue(value)
		if !ok {
			return invalid(models.RejectionInvalidType, "question %s expects true or false", question.ID)
		}
		if number != 0 && number != 1 {
			return invalid(models.RejectionOutOfRange, "answer %v to question %s must be 0 or 1", number, question.ID)
		}
		return models.NumericResponse(question.ID, number, answeredAt), nil

	case models.QuestionKindMultipleChoice:
		text, ok := value.(string)
		if !ok {
			return invalid(models.RejectionInvalidType, "question %s expects one of its options", question.ID)
		}
		for _, option := range question.Options {
			if templates.SameKey(option, text) {
				return models.TextResponse(question.ID, option, answeredAt), nil
			}
		}
		return invalid(models.RejectionInvalidOption, "%q is not an option of question %s", text, question.ID)

	case models.QuestionKindFreeText:
		text, ok := value.(string)
		if !ok {
			return invalid(models.RejectionInvalidType, "question %s expects text", question.ID)
		}
		text = strings.TrimSpace(text)
		if utf8.RuneCountInString(text) > maxFreeTextLength {
			return invalid(models.RejectionOutOfRange, "answer to question %s is longer than %d characters", question.ID, maxFreeTextLength)
		}
		return models.TextResponse(question.ID, text, answeredAt), nil
	}
	return invalid(models.RejectionInvalidType, "question %s has unsupported kind %s", question.ID, question.Kind)
}

func numericValue(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
