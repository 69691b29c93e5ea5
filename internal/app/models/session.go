package models

import "time"

type SessionStatus string

const (
	SessionStatusCreated    SessionStatus = "created"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
)

// AssessmentSession is mutated only through response submission. Completed is terminal.
type AssessmentSession struct {
	ID                 string               `json:"id" bson:"_id"`
	UserID             string               `json:"user_id" bson:"user_id"`
	TemplateID         string               `json:"template_id" bson:"template_id"`
	Category           string               `json:"category" bson:"category"`
	CulturalContext    string               `json:"cultural_context,omitempty" bson:"cultural_context,omitempty"`
	Language           string               `json:"language" bson:"language"`
	Status             SessionStatus        `json:"status" bson:"status"`
	Responses          []AssessmentResponse `json:"responses" bson:"responses"`
	PendingQuestionIDs []string             `json:"pending_question_ids" bson:"pending_question_ids"`
	SkippedQuestionIDs []string             `json:"skipped_question_ids,omitempty" bson:"skipped_question_ids,omitempty"`
	ProgressPercentage int                  `json:"progress_percentage" bson:"progress_percentage"`
	EstimatedTotal     int                  `json:"estimated_total" bson:"estimated_total"`
	ProfileID          string               `json:"profile_id,omitempty" bson:"profile_id,omitempty"`
	Version            int64                `json:"version" bson:"version"`
	CreatedAt          time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at" bson:"updated_at"`
	CompletedAt        *time.Time           `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
}

func (s *AssessmentSession) IsCompleted() bool {
	return s.Status == SessionStatusCompleted
}

// AnswerIndex returns the responses keyed by question id.
func (s *AssessmentSession) AnswerIndex() map[string]AssessmentResponse {
	index := make(map[string]AssessmentResponse, len(s.Responses))
	for _, response := range s.Responses {
		index[response.QuestionID] = response
	}
	return index
}

// SkippedIndex returns the optional questions the user left unanswered.
func (s *AssessmentSession) SkippedIndex() map[string]bool {
	index := make(map[string]bool, len(s.SkippedQuestionIDs))
	for _, questionID := range s.SkippedQuestionIDs {
		index[questionID] = true
	}
	return index
}

// AssessmentResponse holds either a numeric or a text value. Boolean answers are numeric 0 or 1.
type AssessmentResponse struct {
	QuestionID   string    `json:"question_id" bson:"question_id"`
	NumericValue *float64  `json:"numeric_value,omitempty" bson:"numeric_value,omitempty"`
	TextValue    string    `json:"text_value,omitempty" bson:"text_value,omitempty"`
	AnsweredAt   time.Time `json:"answered_at" bson:"answered_at"`
}

func (r AssessmentResponse) IsNumeric() bool {
	return r.NumericValue != nil
}

func NumericResponse(questionID string, value float64, answeredAt time.Time) AssessmentResponse {
	return AssessmentResponse{QuestionID: questionID, NumericValue: &value, AnsweredAt: answeredAt}
}

func TextResponse(questionID, value string, answeredAt time.Time) AssessmentResponse {
	return AssessmentResponse{QuestionID: questionID, TextValue: value, AnsweredAt: answeredAt}
}

type RejectionReason string

const (
	RejectionUnknownQuestion RejectionReason = "unknown_question"
	RejectionOutOfRange      RejectionReason = "out_of_range"
	RejectionInvalidOption   RejectionReason = "invalid_option"
	RejectionAlreadyAnswered RejectionReason = "already_answered"
	RejectionNotApplicable   RejectionReason = "not_applicable"
	RejectionRequiredMissing RejectionReason = "required_missing"
	RejectionInvalidType     RejectionReason = "invalid_type"
)

type ResponseRejection struct {
	QuestionID string          `json:"question_id"`
	Reason     RejectionReason `json:"reason"`
	Message    string          `json:"message"`
}
