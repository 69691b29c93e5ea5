package responses

import (
	"tawjih-service/internal/app/models"
	"time"
)

// Question is the client view of a template question. Scoring metadata stays server side.
type Question struct {
	ID       string              `json:"id"`
	Text     string              `json:"text"`
	Kind     models.QuestionKind `json:"kind"`
	ScaleMin *int                `json:"scale_min,omitempty"`
	ScaleMax *int                `json:"scale_max,omitempty"`
	Options  []string            `json:"options,omitempty"`
	Required bool                `json:"required"`
}

func NewQuestion(question models.AssessmentQuestion) Question {
	view := Question{
		ID:       question.ID,
		Text:     question.Text,
		Kind:     question.Kind,
		Options:  question.Options,
		Required: question.Required,
	}
	if question.Kind == models.QuestionKindScale {
		minValue, maxValue := question.ScaleMin, question.ScaleMax
		view.ScaleMin = &minValue
		view.ScaleMax = &maxValue
	}
	return view
}

type StartAssessment struct {
	SessionID          string               `json:"session_id"`
	TemplateID         string               `json:"template_id"`
	TemplateVersion    int                  `json:"template_version"`
	Status             models.SessionStatus `json:"status"`
	Questions          []Question           `json:"questions"`
	ProgressPercentage int                  `json:"progress_percentage"`
	EstimatedTotal     int                  `json:"estimated_total"`
}

type SubmitResponses struct {
	SessionID          string                     `json:"session_id"`
	Status             models.SessionStatus       `json:"status"`
	NextQuestions      []Question                 `json:"next_questions"`
	ProgressPercentage int                        `json:"progress_percentage"`
	Complete           bool                       `json:"complete"`
	Accepted           []string                   `json:"accepted"`
	Rejected           []models.ResponseRejection `json:"rejected"`
	Insights           Insights                   `json:"insights"`
}

// Insights carries crisis indicators as soon as they are detected, and the outcome once
// the session completes.
type Insights struct {
	CrisisIndicators       []string             `json:"crisis_indicators"`
	Severity               models.SeverityLevel `json:"severity,omitempty"`
	SeverityLabel          string               `json:"severity_label,omitempty"`
	TotalScore             *float64             `json:"total_score,omitempty"`
	PrimaryDiagnosis       string               `json:"primary_diagnosis,omitempty"`
	ProfileID              string               `json:"profile_id,omitempty"`
	RecommendedCandidateID string               `json:"recommended_candidate_id,omitempty"`
}

type AssessmentSession struct {
	SessionID          string               `json:"session_id"`
	UserID             string               `json:"user_id"`
	TemplateID         string               `json:"template_id"`
	Category           string               `json:"category"`
	Language           string               `json:"language"`
	CulturalContext    string               `json:"cultural_context,omitempty"`
	Status             models.SessionStatus `json:"status"`
	ProgressPercentage int                  `json:"progress_percentage"`
	EstimatedTotal     int                  `json:"estimated_total"`
	AnsweredCount      int                  `json:"answered_count"`
	PendingQuestions   []Question           `json:"pending_questions"`
	ProfileID          string               `json:"profile_id,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
	CompletedAt        *time.Time           `json:"completed_at,omitempty"`
}
