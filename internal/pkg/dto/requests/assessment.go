package requests

import "time"

type StartAssessment struct {
	UserID          string `json:"user_id" validate:"required,max=128"`
	Category        string `json:"category" validate:"required,max=64"`
	CulturalContext string `json:"cultural_context" validate:"omitempty,max=64"`
	Language        string `json:"language" validate:"required,language_code"`
	AssessmentType  string `json:"assessment_type" validate:"omitempty,oneof=initial follow_up"`
}

// SubmitResponses carries one batch. Omitted optional questions of the pending batch are
// recorded as skipped. Strict rejects the whole batch when any response is invalid.
type SubmitResponses struct {
	SessionID string          `json:"-" validate:"required,uuid"`
	Responses []ResponseInput `json:"responses" validate:"required,min=1,max=50,dive"`
	Strict    bool            `json:"strict"`
}

// ResponseInput.Value is a JSON number, string or boolean.
type ResponseInput struct {
	QuestionID string      `json:"question_id" validate:"required,max=64"`
	Value      interface{} `json:"value"`
	AnsweredAt *time.Time  `json:"answered_at,omitempty"`
}
