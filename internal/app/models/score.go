package models

import "time"

type ScoreResult struct {
	SessionID      string                `json:"session_id" bson:"session_id"`
	TemplateID     string                `json:"template_id" bson:"template_id"`
	Mode           AggregationMode       `json:"mode" bson:"mode"`
	TotalScore     float64               `json:"total_score" bson:"total_score"`
	RoundedTotal   int                   `json:"rounded_total" bson:"rounded_total"`
	TheoreticalMin float64               `json:"theoretical_min" bson:"theoretical_min"`
	TheoreticalMax float64               `json:"theoretical_max" bson:"theoretical_max"`
	SubscaleScores map[string]float64    `json:"subscale_scores" bson:"subscale_scores"`
	Severity       SeverityBand          `json:"severity" bson:"severity"`
	Reliability    ReliabilityIndicators `json:"reliability" bson:"reliability"`
	Percentile     PercentileScore       `json:"percentile" bson:"percentile"`
	ComputedAt     time.Time             `json:"computed_at" bson:"computed_at"`
}

type ReliabilityIndicators struct {
	AnsweredCount           int      `json:"answered_count" bson:"answered_count"`
	TotalQuestions          int      `json:"total_questions" bson:"total_questions"`
	CompletionRate          float64  `json:"completion_rate" bson:"completion_rate"`
	AverageSecondsPerAnswer float64  `json:"average_seconds_per_answer" bson:"average_seconds_per_answer"`
	LowReliability          bool     `json:"low_reliability" bson:"low_reliability"`
	Flags                   []string `json:"flags,omitempty" bson:"flags,omitempty"`
}

// PercentileScore is Approximate when no normative dataset backs it.
type PercentileScore struct {
	Value       int    `json:"value" bson:"value"`
	Approximate bool   `json:"approximate" bson:"approximate"`
	Source      string `json:"source" bson:"source"`
}

const (
	ReliabilityFlagFastCompletion = "fast_completion"
	ReliabilityFlagIncomplete     = "incomplete"

	PercentileSourceNeutral   = "neutral_default"
	PercentileSourceNormative = "normative_dataset"
)
